package scene

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/solar-roi/pkg/math"
)

func line() Polyline {
	return Polyline{Points: []math.Vec3{{X: 0}, {X: 1}}, Style: Style{Outline: Yellow, Width: 2}}
}

func TestMemoryAddRemove(t *testing.T) {
	m := NewMemory()
	h1 := m.AddShape(line())
	h2 := m.AddShape(Polygon{Ring: []math.Vec3{{}, {X: 1}, {Y: 1}, {}}})
	require.NotEqual(t, h1, h2)
	assert.NotZero(t, h1)
	assert.Equal(t, 2, m.Len())
	assert.Equal(t, 1, m.Count(KindPolygon))

	v := m.Version()
	m.RemoveShape(h1)
	assert.Equal(t, 1, m.Len())
	assert.Greater(t, m.Version(), v)

	_, ok := m.Get(h1)
	assert.False(t, ok)

	// Removing twice is harmless and does not bump the version.
	v = m.Version()
	m.RemoveShape(h1)
	assert.Equal(t, v, m.Version())
}

func TestMemoryShapesInsertionOrder(t *testing.T) {
	m := NewMemory()
	a := m.AddShape(line())
	b := m.AddShape(ModelInstance{URI: "panel.gltf", Scale: 1})
	c := m.AddShape(line())
	m.RemoveShape(b)

	entries := m.Shapes()
	require.Len(t, entries, 2)
	assert.Equal(t, a, entries[0].Handle)
	assert.Equal(t, c, entries[1].Handle)
}

func TestArenaReleasesOnlyOwnShapes(t *testing.T) {
	m := NewMemory()
	foreign := m.AddShape(line())

	arena := NewArena(m)
	arena.Add(line())
	arena.Add(ModelInstance{URI: "panel.gltf"})
	assert.Equal(t, 2, arena.Len())
	assert.Equal(t, 3, m.Len())

	assert.Equal(t, 2, arena.Release())
	assert.Equal(t, 0, arena.Len())
	assert.Equal(t, 1, m.Len())
	_, ok := m.Get(foreign)
	assert.True(t, ok, "foreign shape must survive arena release")

	// Reusable after release.
	arena.Add(line())
	assert.Equal(t, 2, m.Len())
	assert.Equal(t, 1, arena.Release())
}

func TestArenaRemoveIgnoresForeign(t *testing.T) {
	m := NewMemory()
	foreign := m.AddShape(line())
	arena := NewArena(m)
	own := arena.Add(line())

	arena.Remove(foreign)
	assert.Equal(t, 2, m.Len())

	arena.Remove(own)
	assert.Equal(t, 1, m.Len())
	assert.Empty(t, arena.Handles())
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "polyline", KindPolyline.String())
	assert.Equal(t, "polygon", Polygon{}.Kind().String())
	assert.Equal(t, "model", ModelInstance{}.Kind().String())
	assert.Equal(t, 0.2, Yellow.WithAlpha(0.2).A)
}
