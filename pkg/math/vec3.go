// Package math provides the vector, matrix and rotation types used for
// earth-centered site geometry. All quantities are float64 meters.
package math

import (
	"errors"
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// Epsilon is the length below which a vector is treated as zero.
const Epsilon = 1e-12

// ErrDegenerateVector is returned when a zero-length vector is normalized.
var ErrDegenerateVector = errors.New("degenerate vector")

// Vec3 is a 3D vector or point. The layout matches r3.Vec so values
// convert freely between the two.
type Vec3 struct {
	X, Y, Z float64
}

// Add returns v + other.
func (v Vec3) Add(other Vec3) Vec3 {
	return Vec3(r3.Add(r3.Vec(v), r3.Vec(other)))
}

// Sub returns v - other.
func (v Vec3) Sub(other Vec3) Vec3 {
	return Vec3(r3.Sub(r3.Vec(v), r3.Vec(other)))
}

// Scale returns v * s.
func (v Vec3) Scale(s float64) Vec3 {
	return Vec3(r3.Scale(s, r3.Vec(v)))
}

// Dot returns the dot product.
func (v Vec3) Dot(other Vec3) float64 {
	return r3.Dot(r3.Vec(v), r3.Vec(other))
}

// Cross returns the cross product.
func (v Vec3) Cross(other Vec3) Vec3 {
	return Vec3(r3.Cross(r3.Vec(v), r3.Vec(other)))
}

// Length returns the magnitude.
func (v Vec3) Length() float64 {
	return r3.Norm(r3.Vec(v))
}

// Normalize returns the unit vector in the direction of v.
// It fails with ErrDegenerateVector instead of producing NaN.
func (v Vec3) Normalize() (Vec3, error) {
	l := v.Length()
	if l < Epsilon || math.IsNaN(l) {
		return Vec3{}, ErrDegenerateVector
	}
	return v.Scale(1 / l), nil
}

// Distance returns the distance to another point.
func (v Vec3) Distance(other Vec3) float64 {
	return v.Sub(other).Length()
}

// Negate returns -v.
func (v Vec3) Negate() Vec3 {
	return Vec3{-v.X, -v.Y, -v.Z}
}

// Lerp interpolates linearly between a and b. t=0 yields a, t=1 yields b.
func Lerp(a, b Vec3, t float64) Vec3 {
	return a.Add(b.Sub(a).Scale(t))
}

// ApproxEqual reports whether every component of a and b differs by at most tol.
func ApproxEqual(a, b Vec3, tol float64) bool {
	return math.Abs(a.X-b.X) <= tol && math.Abs(a.Y-b.Y) <= tol && math.Abs(a.Z-b.Z) <= tol
}

// unitOrZero is Normalize for callers that have already ruled out
// degenerate input (camera bases, projection setup).
func unitOrZero(v Vec3) Vec3 {
	n, err := v.Normalize()
	if err != nil {
		return Vec3{}
	}
	return n
}
