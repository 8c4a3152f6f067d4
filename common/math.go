package common

import (
	"math"

	"github.com/jakecoffman/cp"
)

// AffineTransform maps value from [fromMin, fromMax] onto [toMin, toMax]
// without clamping. A degenerate source range maps everything to toMin.
func AffineTransform(value, fromMin, fromMax, toMin, toMax float64) float64 {
	if fromMax == fromMin {
		return toMin
	}
	return (value-fromMin)*((toMax-toMin)/(fromMax-fromMin)) + toMin
}

// BearingToTarget returns the sprite rotation that points from origin to
// target. Sprites face up, so a target straight to the right yields π/2.
func BearingToTarget(origin, target cp.Vector) float64 {
	d := target.Sub(origin)
	return math.Atan2(d.Y, d.X) + math.Pi/2
}

// RotateVector keeps the magnitude of v and points it along angle.
func RotateVector(v cp.Vector, angle float64) cp.Vector {
	return cp.ForAngle(angle).Mult(v.Length())
}

// Normalize returns the unit vector of v, or the zero vector when v has no
// length or is not finite.
func Normalize(v cp.Vector) cp.Vector {
	l := v.Length()
	if l == 0 || !IsFinite(v) {
		return cp.Vector{}
	}
	return v.Mult(1 / l)
}

// Limit scales v down to max length when it is longer. Non-finite vectors
// limit to zero.
func Limit(v cp.Vector, max float64) cp.Vector {
	if max <= 0 || !IsFinite(v) {
		return cp.Vector{}
	}
	if v.LengthSq() > max*max {
		return Normalize(v).Mult(max)
	}
	return v
}

// IsFinite reports whether both components are neither NaN nor infinite.
func IsFinite(v cp.Vector) bool {
	return !math.IsNaN(v.X) && !math.IsNaN(v.Y) && !math.IsInf(v.X, 0) && !math.IsInf(v.Y, 0)
}
