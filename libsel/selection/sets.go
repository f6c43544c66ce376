package selection

import (
	"github.com/emirpasic/gods/maps/linkedhashmap"
	"github.com/emirpasic/gods/sets/hashset"
	"github.com/surfsel/surfsel/surfsel"
)

// PolySet maps PolyID to Polygon, preserving insertion order so host mutations are emitted deterministically.
type PolySet struct {
	polys *linkedhashmap.Map
}

func NewPolySet(polys ...surfsel.Polygon) *PolySet {
	set := &PolySet{
		polys: linkedhashmap.New(),
	}
	for _, poly := range polys {
		set.Add(poly)
	}
	return set
}

// Add adds the given polygon if it is not already present and returns true if it was added.
func (set *PolySet) Add(poly surfsel.Polygon) bool {
	if _, exists := set.polys.Get(poly.ID()); exists {
		return false
	}
	set.polys.Put(poly.ID(), poly)
	return true
}

func (set *PolySet) Contains(poly surfsel.Polygon) bool {
	return set.Has(poly.ID())
}

func (set *PolySet) Has(id surfsel.PolyID) bool {
	_, exists := set.polys.Get(id)
	return exists
}

func (set *PolySet) Remove(poly surfsel.Polygon) {
	set.polys.Remove(poly.ID())
}

func (set *PolySet) Len() int {
	return set.polys.Size()
}

func (set *PolySet) IsEmpty() bool {
	return set.polys.Empty()
}

func (set *PolySet) Clear() {
	set.polys.Clear()
}

// Polygons returns the polygons of this set in insertion order.
func (set *PolySet) Polygons() []surfsel.Polygon {
	polys := make([]surfsel.Polygon, 0, set.polys.Size())
	it := set.polys.Iterator()
	for it.Next() {
		polys = append(polys, it.Value().(surfsel.Polygon))
	}
	return polys
}

// IDs returns the PolyIDs of this set in insertion order.
func (set *PolySet) IDs() []surfsel.PolyID {
	ids := make([]surfsel.PolyID, 0, set.polys.Size())
	it := set.polys.Iterator()
	for it.Next() {
		ids = append(ids, it.Key().(surfsel.PolyID))
	}
	return ids
}

// Merge adds every polygon of src not already in this set.
func (set *PolySet) Merge(src *PolySet) {
	it := src.polys.Iterator()
	for it.Next() {
		set.Add(it.Value().(surfsel.Polygon))
	}
}

func (set *PolySet) Clone() *PolySet {
	dup := NewPolySet()
	dup.Merge(set)
	return dup
}

// Pair is an unordered polygon pair, stored with the lower polygon index first.
type Pair struct {
	Lo surfsel.PolyID
	Hi surfsel.PolyID
}

// MakePair returns the canonic Pair for two polygons, so (a, b) and (b, a) yield the same Pair.
//
// Polygons are ordered by Index(); ids break ties so that polygons with equal indices
// (e.g. from two different meshes) never collapse into the same Pair.
func MakePair(a, b surfsel.Polygon) Pair {
	ai, bi := a.Index(), b.Index()
	if ai > bi || (ai == bi && a.ID() > b.ID()) {
		a, b = b, a
	}
	return Pair{
		Lo: a.ID(),
		Hi: b.ID(),
	}
}

// PairSet allows adding polygon pairs to an internal set and returning if a given pair has already been added.
type PairSet interface {

	// TryAdd adds the given pair if it is not already present.
	//
	// If (a, b) or (b, a) is already in this PairSet, false is returned and this call has no effect.
	// Otherwise the pair is added and true is returned.
	TryAdd(a, b surfsel.Polygon) bool

	// Contains returns true if (a, b) or (b, a) was previously added.
	Contains(a, b surfsel.Polygon) bool

	// Len returns the number of pairs in this set.
	Len() int

	// Clear removes all previously added pairs.
	Clear()
}

func NewPairSet() PairSet {
	return &pairSet{
		pairs: hashset.New(),
	}
}

type pairSet struct {
	pairs *hashset.Set
}

func (set *pairSet) TryAdd(a, b surfsel.Polygon) bool {
	key := MakePair(a, b)
	if set.pairs.Contains(key) {
		return false
	}
	set.pairs.Add(key)
	return true
}

func (set *pairSet) Contains(a, b surfsel.Polygon) bool {
	return set.pairs.Contains(MakePair(a, b))
}

func (set *pairSet) Len() int {
	return set.pairs.Size()
}

func (set *pairSet) Clear() {
	set.pairs.Clear()
}
