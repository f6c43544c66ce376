package mesh

import (
	"io"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
	"github.com/pkg/errors"
	"github.com/surfsel/surfsel/surfsel"
)

var sIdent = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

var sMeshLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "comment", Pattern: `#[^\n]*`},
	{Name: "String", Pattern: `"(\\.|[^"\\])*"`},
	{Name: "Number", Pattern: `[-+]?(\d+\.\d*|\.\d+|\d+)([eE][-+]?\d+)?`},
	{Name: "Ident", Pattern: `[A-Za-z_][A-Za-z0-9_]*`},
	{Name: "Punct", Pattern: `[(),]`},
	{Name: "whitespace", Pattern: `\s+`},
})

var sParseMeshExpr = participle.MustBuild[meshExpr](
	participle.Lexer(sMeshLexer),
	participle.Unquote("String"),
	participle.Elide("comment", "whitespace"),
)

// ParseMesh reads a Mesh from its text description.
func ParseMesh(text string) (*Mesh, error) {
	ast, err := sParseMeshExpr.ParseString("", text)
	if err != nil {
		return nil, errors.Wrapf(surfsel.ErrBadMesh, "%v", err)
	}
	return ast.build()
}

// ReadMesh reads a Mesh description from r.
func ReadMesh(r io.Reader) (*Mesh, error) {
	text, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return ParseMesh(string(text))
}

func (expr *meshExpr) build() (*Mesh, error) {
	name := ""
	if expr.Name != nil {
		name = *expr.Name
	}
	m := New(name)

	for _, pe := range expr.Polys {
		def := PolyDef{
			ID:       surfsel.PolyID(pe.ID),
			Index:    -1,
			Normal:   pe.Normal.vector(),
			Selected: pe.Selected,
		}
		if pe.Index != nil {
			if *pe.Index < 0 {
				return nil, errors.Wrapf(surfsel.ErrBadMesh, "polygon %d has negative index %d", pe.ID, *pe.Index)
			}
			def.Index = *pe.Index
		}
		if pe.Material != nil {
			def.Material = *pe.Material
		}
		if _, err := m.Add(def); err != nil {
			return nil, err
		}
	}

	for _, pe := range expr.Polys {
		for _, adj := range pe.Adj {
			if err := m.Link(surfsel.PolyID(pe.ID), surfsel.PolyID(adj)); err != nil {
				return nil, err
			}
		}
	}

	return m, nil
}

// WriteTo writes this Mesh in the format read by ParseMesh.
func (m *Mesh) WriteTo(w io.Writer) (int64, error) {
	n, err := io.WriteString(w, m.String())
	return int64(n), err
}

func (m *Mesh) String() string {
	b := strings.Builder{}
	b.Grow(64 * (len(m.polys) + 1))

	if m.Name != "" {
		b.WriteString("mesh ")
		if sIdent.MatchString(m.Name) {
			b.WriteString(m.Name)
		} else {
			b.WriteString(strconv.Quote(m.Name))
		}
		b.WriteByte('\n')
	}

	for _, poly := range m.polys {
		b.WriteString("poly ")
		b.WriteString(strconv.FormatUint(uint64(poly.id), 10))
		b.WriteString(" index ")
		b.WriteString(strconv.Itoa(poly.index))
		b.WriteString(" normal (")
		b.WriteString(formatFloat(poly.normal.X))
		b.WriteString(", ")
		b.WriteString(formatFloat(poly.normal.Y))
		b.WriteString(", ")
		b.WriteString(formatFloat(poly.normal.Z))
		b.WriteByte(')')

		if poly.material != "" {
			b.WriteString(" material ")
			b.WriteString(strconv.Quote(poly.material))
		}

		// Each link is written once, from its lower id
		var adj []uint64
		for _, nb := range poly.neighbours {
			if nb.ID() > poly.id {
				adj = append(adj, uint64(nb.ID()))
			}
		}
		if len(adj) > 0 {
			sort.Slice(adj, func(i, j int) bool { return adj[i] < adj[j] })
			b.WriteString(" adj")
			for _, id := range adj {
				b.WriteByte(' ')
				b.WriteString(strconv.FormatUint(id, 10))
			}
		}

		if m.IsSelected(poly.id) {
			b.WriteString(" selected")
		}
		b.WriteByte('\n')
	}

	return b.String()
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
