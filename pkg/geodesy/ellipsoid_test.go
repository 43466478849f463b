package geodesy

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	gmath "github.com/Faultbox/solar-roi/pkg/math"
)

func TestToCartesianEquator(t *testing.T) {
	p := WGS84.ToCartesian(FromDegrees(0, 0, 0))
	assert.InDelta(t, WGS84.A, p.X, 1e-6)
	assert.InDelta(t, 0, p.Y, 1e-6)
	assert.InDelta(t, 0, p.Z, 1e-6)

	pole := WGS84.ToCartesian(FromDegrees(0, 90, 100))
	assert.InDelta(t, WGS84.B+100, pole.Z, 1e-6)
}

func TestCartographicRoundTrip(t *testing.T) {
	t.Parallel()

	sites := []Cartographic{
		FromDegrees(145.2678, -36.4369, 400),
		FromDegrees(-122.4194, 37.7749, 12.5),
		FromDegrees(0, 0, 0),
		FromDegrees(10, 89.9, -30),
		FromDegrees(-179.9, -60, 8848),
	}
	for _, c := range sites {
		p := WGS84.ToCartesian(c)
		back, ok := WGS84.ToCartographic(p)
		require.True(t, ok)
		assert.InDelta(t, c.Longitude, back.Longitude, 1e-11)
		assert.InDelta(t, c.Latitude, back.Latitude, 1e-11)
		assert.InDelta(t, c.Height, back.Height, 1e-6)
	}
}

func TestToCartographicCenter(t *testing.T) {
	_, ok := WGS84.ToCartographic(gmath.Vec3{})
	assert.False(t, ok)
}

func TestEastNorthUpIsOrthonormal(t *testing.T) {
	p := WGS84.ToCartesian(FromDegrees(145.2678, -36.4369, 0))
	enu := WGS84.EastNorthUp(p)

	east, north, up := enu.Col(0), enu.Col(1), enu.Col(2)
	for _, v := range []gmath.Vec3{east, north, up} {
		assert.InDelta(t, 1, v.Length(), 1e-12)
	}
	assert.InDelta(t, 0, east.Dot(north), 1e-12)
	assert.InDelta(t, 0, east.Dot(up), 1e-12)
	assert.InDelta(t, 0, north.Dot(up), 1e-12)
	assert.InDelta(t, 1, enu.Det(), 1e-12)

	// Southern hemisphere: north points toward +Z.
	assert.Greater(t, north.Z, 0.0)
}

func TestIntersectRayFromAbove(t *testing.T) {
	site := FromDegrees(145.2678, -36.4369, 0)
	ground := WGS84.ToCartesian(site)
	up := WGS84.SurfaceNormal(ground)
	eye := ground.Add(up.Scale(400))

	dist, ok := WGS84.IntersectRay(eye, up.Negate(), 0)
	require.True(t, ok)
	assert.InDelta(t, 400, dist, 1e-6)

	hit := eye.Add(up.Negate().Scale(dist))
	assert.True(t, gmath.ApproxEqual(hit, ground, 1e-6), "hit %v, want %v", hit, ground)
}

func TestIntersectRayMiss(t *testing.T) {
	s := Sphere(10)
	_, ok := s.IntersectRay(gmath.Vec3{X: 20}, gmath.Vec3{Y: 1}, 0)
	assert.False(t, ok, "ray parallel to the surface should miss")

	_, ok = s.IntersectRay(gmath.Vec3{X: 20}, gmath.Vec3{X: 1}, 0)
	assert.False(t, ok, "ray pointing away should miss")
}

func TestIntersectRayInflated(t *testing.T) {
	s := Sphere(10)
	dist, ok := s.IntersectRay(gmath.Vec3{X: 20}, gmath.Vec3{X: -1}, 2)
	require.True(t, ok)
	assert.InDelta(t, 8, dist, 1e-12)

	dist, ok = s.IntersectRay(gmath.Vec3{}, gmath.Vec3{Z: 1}, 0)
	require.True(t, ok, "ray from inside should exit")
	assert.InDelta(t, 10, dist, 1e-12)
}

func TestDegrees(t *testing.T) {
	lon, lat := FromDegrees(145.2678, -36.4369, 0).Degrees()
	assert.InDelta(t, 145.2678, lon, 1e-12)
	assert.InDelta(t, -36.4369, lat, 1e-12)
	assert.InDelta(t, math.Pi/2, FromDegrees(0, 90, 0).Latitude, 1e-15)
}
