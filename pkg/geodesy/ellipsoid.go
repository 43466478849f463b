// Package geodesy converts between geodetic (longitude, latitude, height)
// coordinates and earth-centered, earth-fixed Cartesian positions on an
// ellipsoid of revolution, and provides the local east-north-up basis at a
// surface point.
//
// Angles are radians unless a function name says otherwise. Distances are
// meters.
package geodesy

import (
	"math"

	gmath "github.com/Faultbox/solar-roi/pkg/math"
)

// Ellipsoid is an ellipsoid of revolution with equatorial radius A and
// polar radius B.
type Ellipsoid struct {
	A, B float64
}

// WGS84 is the World Geodetic System 1984 ellipsoid.
var WGS84 = Ellipsoid{A: 6378137.0, B: 6356752.3142451793}

// Sphere returns a spherical "ellipsoid" of the given radius. Used by tests.
func Sphere(r float64) Ellipsoid {
	return Ellipsoid{A: r, B: r}
}

// Cartographic is a geodetic position.
type Cartographic struct {
	Longitude float64 // radians, east positive
	Latitude  float64 // radians, north positive
	Height    float64 // meters above the ellipsoid
}

// FromDegrees builds a Cartographic from longitude and latitude in degrees.
func FromDegrees(lonDeg, latDeg, height float64) Cartographic {
	return Cartographic{
		Longitude: lonDeg * math.Pi / 180,
		Latitude:  latDeg * math.Pi / 180,
		Height:    height,
	}
}

// Degrees returns longitude and latitude in degrees.
func (c Cartographic) Degrees() (lon, lat float64) {
	return c.Longitude * 180 / math.Pi, c.Latitude * 180 / math.Pi
}

func (e Ellipsoid) radiiSquared() gmath.Vec3 {
	return gmath.Vec3{X: e.A * e.A, Y: e.A * e.A, Z: e.B * e.B}
}

func (e Ellipsoid) oneOverRadiiSquared() gmath.Vec3 {
	return gmath.Vec3{X: 1 / (e.A * e.A), Y: 1 / (e.A * e.A), Z: 1 / (e.B * e.B)}
}

// ToCartesian converts a geodetic position to ECEF.
func (e Ellipsoid) ToCartesian(c Cartographic) gmath.Vec3 {
	cosLat := math.Cos(c.Latitude)
	n := gmath.Vec3{
		X: cosLat * math.Cos(c.Longitude),
		Y: cosLat * math.Sin(c.Longitude),
		Z: math.Sin(c.Latitude),
	}
	r2 := e.radiiSquared()
	k := gmath.Vec3{X: r2.X * n.X, Y: r2.Y * n.Y, Z: r2.Z * n.Z}
	gamma := math.Sqrt(n.Dot(k))
	return k.Scale(1 / gamma).Add(n.Scale(c.Height))
}

// ToCartographic converts an ECEF position to geodetic coordinates.
// It reports false for points too close to the ellipsoid center to project.
func (e Ellipsoid) ToCartographic(p gmath.Vec3) (Cartographic, bool) {
	surface, ok := e.ScaleToSurface(p)
	if !ok {
		return Cartographic{}, false
	}
	n := e.SurfaceNormal(surface)
	h := p.Sub(surface)
	height := h.Length()
	if h.Dot(p) < 0 {
		height = -height
	}
	return Cartographic{
		Longitude: math.Atan2(n.Y, n.X),
		Latitude:  math.Asin(clamp(n.Z, -1, 1)),
		Height:    height,
	}, true
}

// SurfaceNormal returns the geodetic surface normal at p. p need not lie on
// the surface; the normal of the ellipsoid scaled through p is returned.
func (e Ellipsoid) SurfaceNormal(p gmath.Vec3) gmath.Vec3 {
	o := e.oneOverRadiiSquared()
	n, err := gmath.Vec3{X: p.X * o.X, Y: p.Y * o.Y, Z: p.Z * o.Z}.Normalize()
	if err != nil {
		return gmath.Vec3{Z: 1}
	}
	return n
}

// centerToleranceSquared bounds how close to the center a point may be
// before ScaleToSurface refuses to project it.
const centerToleranceSquared = 0.1

// ScaleToSurface projects p along the geodetic normal onto the ellipsoid
// surface using Newton iteration.
func (e Ellipsoid) ScaleToSurface(p gmath.Vec3) (gmath.Vec3, bool) {
	oneOverA, oneOverB := 1/e.A, 1/e.B
	o := e.oneOverRadiiSquared()

	x2 := p.X * p.X * oneOverA * oneOverA
	y2 := p.Y * p.Y * oneOverA * oneOverA
	z2 := p.Z * p.Z * oneOverB * oneOverB

	squaredNorm := x2 + y2 + z2
	if squaredNorm == 0 {
		return gmath.Vec3{}, false
	}
	ratio := math.Sqrt(1 / squaredNorm)
	intersection := p.Scale(ratio)
	if squaredNorm < centerToleranceSquared {
		if math.IsInf(ratio, 0) || math.IsNaN(ratio) {
			return gmath.Vec3{}, false
		}
		return intersection, true
	}

	gradient := gmath.Vec3{
		X: intersection.X * o.X * 2,
		Y: intersection.Y * o.Y * 2,
		Z: intersection.Z * o.Z * 2,
	}
	lambda := (1 - ratio) * p.Length() / (0.5 * gradient.Length())
	correction := 0.0

	var xm, ym, zm float64
	for i := 0; i < 64; i++ {
		lambda -= correction

		xm = 1 / (1 + lambda*o.X)
		ym = 1 / (1 + lambda*o.Y)
		zm = 1 / (1 + lambda*o.Z)

		xm2, ym2, zm2 := xm*xm, ym*ym, zm*zm
		fn := x2*xm2 + y2*ym2 + z2*zm2 - 1
		if math.Abs(fn) <= 1e-12 {
			break
		}

		denominator := x2*xm2*xm*o.X + y2*ym2*ym*o.Y + z2*zm2*zm*o.Z
		correction = fn / (-2 * denominator)
	}

	return gmath.Vec3{X: p.X * xm, Y: p.Y * ym, Z: p.Z * zm}, true
}

// EastNorthUp returns the local tangent basis at p as the columns
// (east, north, up).
func (e Ellipsoid) EastNorthUp(p gmath.Vec3) gmath.Mat3 {
	up := e.SurfaceNormal(p)
	east, err := gmath.Vec3{X: -p.Y, Y: p.X}.Normalize()
	if err != nil {
		// On the polar axis east is arbitrary.
		east = gmath.Vec3{Y: 1}
	}
	north := up.Cross(east)
	return gmath.FromBasis(east, north, up)
}

// IntersectRay returns the distance along dir to the nearest point where the
// ray from origin meets the ellipsoid inflated by height. dir must be
// normalized. A ray starting inside the surface reports its exit point.
func (e Ellipsoid) IntersectRay(origin, dir gmath.Vec3, height float64) (float64, bool) {
	ra, rb := e.A+height, e.B+height
	o := gmath.Vec3{X: origin.X / ra, Y: origin.Y / ra, Z: origin.Z / rb}
	d := gmath.Vec3{X: dir.X / ra, Y: dir.Y / ra, Z: dir.Z / rb}

	a := d.Dot(d)
	b := 2 * o.Dot(d)
	c := o.Dot(o) - 1

	disc := b*b - 4*a*c
	if a == 0 || disc < 0 {
		return 0, false
	}

	// Numerically stable roots.
	q := -0.5 * (b + math.Copysign(math.Sqrt(disc), b))
	t0, t1 := q/a, c/q
	if q == 0 {
		t1 = t0
	}
	if t0 > t1 {
		t0, t1 = t1, t0
	}

	switch {
	case t0 >= 0:
		return t0, true
	case t1 >= 0:
		return t1, true
	}
	return 0, false
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
