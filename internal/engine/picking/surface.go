package picking

import (
	"github.com/Faultbox/solar-roi/pkg/geodesy"
	"github.com/Faultbox/solar-roi/pkg/math"
)

// Camera is the view a picker casts rays through.
type Camera interface {
	InverseViewProjection() math.Mat4
	Viewport() (width, height float64)
}

// SurfacePicker resolves screen positions against an ellipsoid raised by a
// constant terrain height.
type SurfacePicker struct {
	Camera    Camera
	Ellipsoid geodesy.Ellipsoid
	Height    float64
}

// NewSurfacePicker creates a picker over the WGS84 ellipsoid.
func NewSurfacePicker(cam Camera, height float64) *SurfacePicker {
	return &SurfacePicker{Camera: cam, Ellipsoid: geodesy.WGS84, Height: height}
}

// Pick returns the surface position under the screen point. ok is false
// when the ray misses the globe.
func (p *SurfacePicker) Pick(x, y float64) (math.Vec3, bool) {
	w, h := p.Camera.Viewport()
	if w <= 0 || h <= 0 {
		return math.Vec3{}, false
	}
	ray := ScreenToRay(x, y, w, h, p.Camera.InverseViewProjection())
	if ray.Direction == (math.Vec3{}) {
		return math.Vec3{}, false
	}
	t, ok := p.Ellipsoid.IntersectRay(ray.Origin, ray.Direction, p.Height)
	if !ok {
		return math.Vec3{}, false
	}
	return ray.At(t), true
}
