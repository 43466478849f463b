package scene

import (
	"github.com/Faultbox/solar-roi/pkg/math"
)

// Kind identifies the type of a shape Spec.
type Kind int

const (
	KindPolyline Kind = iota
	KindPolygon
	KindModel
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindPolyline:
		return "polyline"
	case KindPolygon:
		return "polygon"
	case KindModel:
		return "model"
	default:
		return "unknown"
	}
}

// Color is a linear RGBA color with components in [0, 1].
type Color struct {
	R, G, B, A float64
}

// Common colors.
var (
	White  = Color{1, 1, 1, 1}
	Yellow = Color{1, 1, 0, 1}
	Cyan   = Color{0, 1, 1, 1}
)

// WithAlpha returns c with its alpha replaced.
func (c Color) WithAlpha(a float64) Color {
	c.A = a
	return c
}

// Style describes how a polyline or polygon is drawn.
type Style struct {
	Fill    Color
	Outline Color
	Width   float64 // outline width in pixels
}

// Spec is a drawable shape added to a Scene. Geometry is in the global
// earth-centered frame.
type Spec interface {
	Kind() Kind
}

// Polyline is an open line strip.
type Polyline struct {
	Points []math.Vec3
	Style  Style
}

// Kind implements Spec.
func (Polyline) Kind() Kind { return KindPolyline }

// Polygon is a filled polygon with an outline. Ring is closed: the first
// point is repeated at the end.
type Polygon struct {
	Ring  []math.Vec3
	Style Style
}

// Kind implements Spec.
func (Polygon) Kind() Kind { return KindPolygon }

// ModelInstance places a 3D model asset.
type ModelInstance struct {
	URI         string
	Position    math.Vec3
	Orientation math.Quat
	Scale       float64
}

// Kind implements Spec.
func (ModelInstance) Kind() Kind { return KindModel }
