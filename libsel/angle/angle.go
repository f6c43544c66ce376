package angle

import (
	"math"

	"github.com/golang/geo/r3"
	"github.com/golang/geo/s1"
	"github.com/surfsel/surfsel/surfsel"
)

// Compare returns the angle between two normals.
//
// Identical normals short-circuit to 0.  A degenerate pair (zero length, NaN, or a
// dot product outside [-1, 1]) also compares as 0, so a malformed normal over-includes
// rather than halting a traversal.
func Compare(a, b r3.Vector) s1.Angle {
	angle, _ := CompareErr(a, b)
	return angle
}

// CompareErr is Compare that also reports surfsel.ErrDegenerateNormal when the angle could
// not be computed and 0 was substituted.
func CompareErr(a, b r3.Vector) (s1.Angle, error) {
	if a == b {
		return 0, nil
	}

	na, nb := a.Norm(), b.Norm()
	if na == 0 || nb == 0 {
		return 0, surfsel.ErrDegenerateNormal
	}

	cos := a.Dot(b) / (na * nb)
	if math.IsNaN(cos) || cos < -1 || cos > 1 {
		return 0, surfsel.ErrDegenerateNormal
	}

	return s1.Angle(math.Acos(cos)) * s1.Radian, nil
}

// WithinThreshold returns true if the angle between a and b does not exceed threshold.
func WithinThreshold(a, b r3.Vector, threshold s1.Angle) bool {
	return Compare(a, b) <= threshold
}

// IsThreshold returns true if rad is usable as a selection threshold: positive and finite.
func IsThreshold(rad float64) bool {
	return rad > 0 && !math.IsInf(rad, 1)
}

// FromDegrees converts degrees to an s1.Angle.
func FromDegrees(deg float64) s1.Angle {
	return s1.Angle(deg) * s1.Degree
}
