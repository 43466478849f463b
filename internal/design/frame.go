package design

import (
	"fmt"

	"github.com/Faultbox/solar-roi/pkg/geodesy"
	"github.com/Faultbox/solar-roi/pkg/math"
)

// Terrain samples ground height at a geodetic position.
type Terrain interface {
	HeightAt(c geodesy.Cartographic) float64
}

// EllipsoidTerrain reports the sampled point's own height, which is what a
// globe without a terrain provider yields for a picked position.
type EllipsoidTerrain struct{}

// HeightAt implements Terrain.
func (EllipsoidTerrain) HeightAt(c geodesy.Cartographic) float64 {
	return c.Height
}

// ConstantTerrain places the ground at a fixed height above the ellipsoid.
type ConstantTerrain float64

// HeightAt implements Terrain.
func (t ConstantTerrain) HeightAt(geodesy.Cartographic) float64 {
	return float64(t)
}

// LocalFrame is an orthonormal frame anchored at a region's center.
// Local x runs along WidthAxis, y along LengthAxis and z along UpAxis.
type LocalFrame struct {
	Origin     math.Vec3
	WidthAxis  math.Vec3
	LengthAxis math.Vec3
	UpAxis     math.Vec3
}

// BuildFrame derives the local frame of r. The origin is the midpoint of
// the C0-C2 diagonal, moved to the terrain height there. A nil terrain
// keeps the midpoint as is.
func BuildFrame(r Region, terrain Terrain) (LocalFrame, error) {
	width, err := r.C1.Sub(r.C0).Normalize()
	if err != nil {
		return LocalFrame{}, fmt.Errorf("%w: width edge: %w", ErrDegenerateRegion, err)
	}
	lengthRaw, err := r.C3.Sub(r.C0).Normalize()
	if err != nil {
		return LocalFrame{}, fmt.Errorf("%w: length edge: %w", ErrDegenerateRegion, err)
	}
	up, err := lengthRaw.Cross(width).Normalize()
	if err != nil {
		return LocalFrame{}, fmt.Errorf("%w: parallel edges: %w", ErrDegenerateRegion, err)
	}

	return LocalFrame{
		Origin:     anchor(math.Lerp(r.C0, r.C2, 0.5), terrain),
		WidthAxis:  width,
		LengthAxis: up.Cross(width),
		UpAxis:     up,
	}, nil
}

func anchor(p math.Vec3, terrain Terrain) math.Vec3 {
	if terrain == nil {
		return p
	}
	carto, ok := geodesy.WGS84.ToCartographic(p)
	if !ok {
		return p
	}
	carto.Height = terrain.HeightAt(carto)
	return geodesy.WGS84.ToCartesian(carto)
}

// OutwardSign is +1 when UpAxis points away from the ellipsoid and -1 when
// it points into it. The cross product order makes UpAxis point down for
// regions drawn counter-clockwise as seen from above.
func (f LocalFrame) OutwardSign() float64 {
	if f.UpAxis.Dot(geodesy.WGS84.SurfaceNormal(f.Origin)) < 0 {
		return -1
	}
	return 1
}

// Outward returns the region plane normal that points away from the
// ellipsoid: UpAxis or its negation.
func (f LocalFrame) Outward() math.Vec3 {
	return f.UpAxis.Scale(f.OutwardSign())
}

// ToLocal expresses a global point in frame coordinates.
func (f LocalFrame) ToLocal(p math.Vec3) math.Vec3 {
	d := p.Sub(f.Origin)
	return math.Vec3{
		X: d.Dot(f.WidthAxis),
		Y: d.Dot(f.LengthAxis),
		Z: d.Dot(f.UpAxis),
	}
}

// ToGlobal is the inverse of ToLocal.
func (f LocalFrame) ToGlobal(l math.Vec3) math.Vec3 {
	return f.Origin.
		Add(f.WidthAxis.Scale(l.X)).
		Add(f.LengthAxis.Scale(l.Y)).
		Add(f.UpAxis.Scale(l.Z))
}

// Basis returns the rotation whose columns are the width, length and up axes.
func (f LocalFrame) Basis() math.Mat3 {
	return math.FromBasis(f.WidthAxis, f.LengthAxis, f.UpAxis)
}

// Orientation returns Basis as a quaternion.
func (f LocalFrame) Orientation() math.Quat {
	return math.QuatFromMat3(f.Basis())
}
