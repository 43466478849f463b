package renderer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/solar-roi/internal/engine/scene"
	"github.com/Faultbox/solar-roi/pkg/math"
)

var origin = math.Vec3{X: -4.1e6, Y: 2.9e6, Z: -3.7e6}

func at(x, y, z float64) math.Vec3 {
	return origin.Add(math.Vec3{X: x, Y: y, Z: z})
}

func TestBuildPolyline(t *testing.T) {
	style := scene.Style{Outline: scene.Yellow, Width: 2}
	g := Build([]scene.Entry{{Handle: 1, Spec: scene.Polyline{
		Points: []math.Vec3{at(0, 0, 0), at(1, 0, 0), at(1, 2, 0)},
		Style:  style,
	}}}, origin, ModelBox{})

	assert.Equal(t, 4, g.LineVertices())
	assert.Zero(t, g.TriangleVertices())
	// Second vertex, relative to the origin.
	assert.Equal(t, []float32{1, 0, 0, 1, 1, 0, 1}, g.Lines[FloatsPerVertex:2*FloatsPerVertex])
}

func TestBuildPolygonFillsAndOutlines(t *testing.T) {
	ring := []math.Vec3{at(0, 0, 0), at(2, 0, 0), at(2, 1, 0), at(0, 1, 0), at(0, 0, 0)}
	g := Build([]scene.Entry{{Handle: 1, Spec: scene.Polygon{
		Ring:  ring,
		Style: scene.Style{Fill: scene.White.WithAlpha(0.5), Outline: scene.White},
	}}}, origin, ModelBox{})

	// Closed ring of four edges, two fan triangles.
	assert.Equal(t, 8, g.LineVertices())
	assert.Equal(t, 6, g.TriangleVertices())
	assert.InDelta(t, 0.5, g.Triangles[6], 1e-6)
}

func TestBuildSkipsTransparentParts(t *testing.T) {
	g := Build([]scene.Entry{{Handle: 1, Spec: scene.Polygon{
		Ring:  []math.Vec3{at(0, 0, 0), at(1, 0, 0), at(1, 1, 0)},
		Style: scene.Style{Outline: scene.Yellow},
	}}}, origin, ModelBox{})

	assert.Zero(t, g.TriangleVertices())
	assert.Equal(t, 6, g.LineVertices())
}

func TestBuildModelBox(t *testing.T) {
	g := Build([]scene.Entry{{Handle: 1, Spec: scene.ModelInstance{
		Position:    at(0, 0, 3),
		Orientation: math.QuatIdentity(),
		Scale:       2,
	}}}, origin, ModelBox{X: 2, Y: 1, Z: 0.05})

	require.Equal(t, 24, g.LineVertices())
	// First edge runs along x across the scaled 4 m width.
	x0, x1 := g.Lines[0], g.Lines[FloatsPerVertex]
	assert.InDelta(t, -2, x0, 1e-4)
	assert.InDelta(t, 2, x1, 1e-4)
	assert.InDelta(t, 2.95, g.Lines[2], 1e-4)
}

func TestBuildKeepsPrecisionFarFromEarthCenter(t *testing.T) {
	g := Build([]scene.Entry{{Handle: 1, Spec: scene.Polyline{
		Points: []math.Vec3{at(0.01, 0, 0), at(0.02, 0, 0)},
		Style:  scene.Style{Outline: scene.Yellow},
	}}}, origin, ModelBox{})

	assert.InDelta(t, 0.01, g.Lines[0], 1e-6)
	assert.InDelta(t, 0.02, g.Lines[FloatsPerVertex], 1e-6)
}
