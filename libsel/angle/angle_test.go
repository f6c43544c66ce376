package angle

import (
	"math"
	"testing"

	"github.com/golang/geo/r3"
	"github.com/golang/geo/s1"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/surfsel/surfsel/surfsel"
)

func TestSelfCompare(t *testing.T) {
	normals := []r3.Vector{
		{X: 0, Y: 0, Z: 1},
		{X: 1, Y: 2, Z: 3},
		{X: -0.3, Y: 0.1, Z: 1e-9},
		{},
	}
	for _, n := range normals {
		assert.Equal(t, s1.Angle(0), Compare(n, n))
		for _, threshold := range []s1.Angle{0, 0.1, math.Pi} {
			assert.True(t, WithinThreshold(n, n, threshold))
		}
	}
}

func TestRightAngle(t *testing.T) {
	up := r3.Vector{X: 0, Y: 0, Z: 1}
	side := r3.Vector{X: 1, Y: 0, Z: 0}

	angle, err := CompareErr(up, side)
	require.NoError(t, err)
	assert.InDelta(t, math.Pi/2, angle.Radians(), 1e-12)

	assert.False(t, WithinThreshold(up, side, FromDegrees(10)))
	assert.True(t, WithinThreshold(up, side, FromDegrees(95)))
}

func TestUnnormalizedInput(t *testing.T) {
	a := r3.Vector{X: 0, Y: 0, Z: 5}
	b := r3.Vector{X: 0, Y: 3, Z: 3}
	assert.InDelta(t, 45, Compare(a, b).Degrees(), 1e-9)
}

func TestDegenerateNormals(t *testing.T) {
	up := r3.Vector{X: 0, Y: 0, Z: 1}

	angle, err := CompareErr(up, r3.Vector{})
	assert.ErrorIs(t, err, surfsel.ErrDegenerateNormal)
	assert.Equal(t, s1.Angle(0), angle)

	nan := r3.Vector{X: math.NaN(), Y: 0, Z: 1}
	angle, err = CompareErr(up, nan)
	assert.ErrorIs(t, err, surfsel.ErrDegenerateNormal)
	assert.Equal(t, s1.Angle(0), angle)

	// degenerate pairs are treated as a match
	assert.True(t, WithinThreshold(up, r3.Vector{}, 0))
}

func TestRoundingOvershoot(t *testing.T) {
	// a and 3a are parallel, yet their normalized dot product rounds to just past +/-1
	a := r3.Vector{X: 0.437714187186980185906293, Y: 0.424637497071265690440356, Z: 0.686823072867109418737641}

	for _, b := range []r3.Vector{a.Mul(3), a.Mul(-3)} {
		cos := a.Dot(b) / (a.Norm() * b.Norm())
		require.Greater(t, math.Abs(cos), 1.0)

		angle, err := CompareErr(a, b)
		assert.ErrorIs(t, err, surfsel.ErrDegenerateNormal)
		assert.Equal(t, s1.Angle(0), angle)
		assert.True(t, WithinThreshold(a, b, FromDegrees(1)))
	}
}

func TestIsThreshold(t *testing.T) {
	assert.True(t, IsThreshold(1e-9))
	assert.True(t, IsThreshold(math.Pi))
	for _, rad := range []float64{0, -1, math.NaN(), math.Inf(1), math.Inf(-1)} {
		assert.False(t, IsThreshold(rad), "%v", rad)
	}
}

func TestAntiparallel(t *testing.T) {
	up := r3.Vector{X: 0, Y: 0, Z: 1}
	down := r3.Vector{X: 0, Y: 0, Z: -1}

	angle, err := CompareErr(up, down)
	require.NoError(t, err)
	assert.InDelta(t, math.Pi, angle.Radians(), 1e-12)
}
