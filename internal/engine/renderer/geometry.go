package renderer

import (
	"github.com/Faultbox/solar-roi/internal/engine/debug"
	"github.com/Faultbox/solar-roi/internal/engine/scene"
	"github.com/Faultbox/solar-roi/pkg/math"
)

// FloatsPerVertex is the vertex layout: position xyz then color rgba.
const FloatsPerVertex = 7

// modelColor is used for model instances, drawn as boxes.
var modelColor = scene.Cyan

// Geometry is the vertex data of one scene snapshot. Positions are relative
// to Origin so they keep centimeter precision in float32.
type Geometry struct {
	Origin    math.Vec3
	Lines     []float32 // GL_LINES pairs
	Triangles []float32 // GL_TRIANGLES, translucent fills
}

// LineVertices returns the number of line vertices.
func (g *Geometry) LineVertices() int { return len(g.Lines) / FloatsPerVertex }

// TriangleVertices returns the number of fill vertices.
func (g *Geometry) TriangleVertices() int { return len(g.Triangles) / FloatsPerVertex }

// ModelBox is the size of the box drawn for a model instance, measured
// along the model's rotated axes.
type ModelBox = math.Vec3

// Build converts shapes into vertex data around origin.
func Build(entries []scene.Entry, origin math.Vec3, model ModelBox) *Geometry {
	g := &Geometry{Origin: origin}
	for _, e := range entries {
		switch s := e.Spec.(type) {
		case scene.Polyline:
			g.addStrip(s.Points, s.Style.Outline, false)
		case scene.Polygon:
			g.addFill(s.Ring, s.Style.Fill)
			g.addStrip(s.Ring, s.Style.Outline, true)
		case scene.ModelInstance:
			size := model.Scale(s.Scale)
			corners := debug.OrientedBox(s.Position, s.Orientation, size)
			for _, p := range debug.BoxWireframe(corners) {
				g.Lines = g.vertex(g.Lines, p, modelColor)
			}
		}
	}
	return g
}

func (g *Geometry) vertex(buf []float32, p math.Vec3, c scene.Color) []float32 {
	l := p.Sub(g.Origin)
	return append(buf,
		float32(l.X), float32(l.Y), float32(l.Z),
		float32(c.R), float32(c.G), float32(c.B), float32(c.A))
}

// addStrip appends a line strip as segment pairs. closed joins the last
// point to the first unless the ring already repeats it.
func (g *Geometry) addStrip(pts []math.Vec3, c scene.Color, closed bool) {
	if len(pts) < 2 || c.A == 0 {
		return
	}
	for i := 0; i+1 < len(pts); i++ {
		g.Lines = g.vertex(g.Lines, pts[i], c)
		g.Lines = g.vertex(g.Lines, pts[i+1], c)
	}
	if closed && pts[0] != pts[len(pts)-1] {
		g.Lines = g.vertex(g.Lines, pts[len(pts)-1], c)
		g.Lines = g.vertex(g.Lines, pts[0], c)
	}
}

// addFill triangulates a convex ring as a fan around its first point.
func (g *Geometry) addFill(ring []math.Vec3, c scene.Color) {
	if c.A == 0 {
		return
	}
	n := len(ring)
	if n > 1 && ring[0] == ring[n-1] {
		n--
	}
	for i := 1; i+1 < n; i++ {
		g.Triangles = g.vertex(g.Triangles, ring[0], c)
		g.Triangles = g.vertex(g.Triangles, ring[i], c)
		g.Triangles = g.vertex(g.Triangles, ring[i+1], c)
	}
}
