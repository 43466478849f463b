package export

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/plot/vg"

	"github.com/Faultbox/solar-roi/internal/design"
	"github.com/Faultbox/solar-roi/pkg/geodesy"
)

func siteLayout(t *testing.T) Layout {
	t.Helper()
	ell := geodesy.WGS84
	origin := ell.ToCartesian(geodesy.FromDegrees(145.2678, -36.4369, 0))
	enu := ell.EastNorthUp(origin)
	east, north := enu.Col(0), enu.Col(1)

	r, err := design.RegionFromClicks(origin, origin.Add(east.Scale(20)), origin.Add(north.Scale(10)))
	require.NoError(t, err)
	f, err := design.BuildFrame(r, design.EllipsoidTerrain{})
	require.NoError(t, err)

	return Layout{
		Region:      r,
		Frame:       f,
		Cells:       design.GenerateArray(r, f, design.ArrayConfig{Rows: 2, Columns: 3, PanelHeight: 1}),
		PanelWidth:  2,
		PanelLength: 1,
	}
}

func TestDirSink(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")
	sink := DirSink{Dir: dir}

	require.NoError(t, sink.Emit("roi.obj", []byte("v 0 0 0\n")))
	require.NoError(t, sink.Emit("roi.obj", []byte("v 1 1 1\n")))

	data, err := os.ReadFile(filepath.Join(dir, "roi.obj"))
	require.NoError(t, err)
	assert.Equal(t, "v 1 1 1\n", string(data))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "no temporary files left behind")
}

func TestDirSinkRejects(t *testing.T) {
	dir := t.TempDir()
	sink := DirSink{Dir: dir}

	assert.ErrorIs(t, sink.Emit("roi.obj", nil), ErrEmptyPayload)
	assert.Error(t, sink.Emit("../escape.obj", []byte("x")))
	assert.Error(t, sink.Emit("", []byte("x")))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestMemorySink(t *testing.T) {
	sink := NewMemorySink()
	require.NoError(t, sink.Emit("b.obj", []byte("b")))
	require.NoError(t, sink.Emit("a.obj", []byte("a")))
	assert.ErrorIs(t, sink.Emit("c.obj", []byte{}), ErrEmptyPayload)

	assert.Equal(t, []string{"a.obj", "b.obj"}, sink.Names())
	data, ok := sink.File("b.obj")
	require.True(t, ok)
	assert.Equal(t, "b", string(data))
}

func TestRegionGeoJSON(t *testing.T) {
	l := siteLayout(t)

	data, err := RegionGeoJSON(l)
	require.NoError(t, err)

	fc, err := geojson.UnmarshalFeatureCollection(data)
	require.NoError(t, err)
	require.Len(t, fc.Features, 1+len(l.Cells))

	region := fc.Features[0]
	assert.Equal(t, "region", region.Properties["kind"])
	assert.InDelta(t, 20, region.Properties["width_m"], 1e-9)
	assert.InDelta(t, 10, region.Properties["length_m"], 1e-9)
	assert.InDelta(t, 200, region.Properties["area_m2"], 1e-9)

	poly, ok := region.Geometry.(orb.Polygon)
	require.True(t, ok)
	require.Len(t, poly, 1)
	assert.Len(t, poly[0], 5)
	assert.True(t, poly[0].Closed())
	assert.Equal(t, orb.CCW, poly[0].Orientation())

	lon, lat := poly[0][0][0], poly[0][0][1]
	assert.InDelta(t, 145.2678, lon, 1e-6)
	assert.InDelta(t, -36.4369, lat, 1e-6)

	for i, f := range fc.Features[1:] {
		assert.Equal(t, "panel", f.Properties["kind"])
		assert.EqualValues(t, l.Cells[i].Row, f.Properties["row"])
		assert.EqualValues(t, l.Cells[i].Column, f.Properties["column"])
	}
}

func TestFootprintArea(t *testing.T) {
	l := siteLayout(t)
	// The spherical area formula differs from the planar product by well
	// under one percent at this scale.
	assert.InEpsilon(t, l.Region.Area(), FootprintArea(l.Region), 0.01)
}

func TestPanelFootprint(t *testing.T) {
	l := siteLayout(t)
	fp := l.PanelFootprint(l.Cells[0])
	assert.InDelta(t, 2, fp[0].Distance(fp[1]), 1e-9)
	assert.InDelta(t, 1, fp[1].Distance(fp[2]), 1e-9)

	center := l.Frame.ToLocal(l.Cells[0].Center)
	assert.InDelta(t, center.X, (fp[0].X+fp[2].X)/2, 1e-9)
	assert.InDelta(t, center.Y, (fp[0].Y+fp[2].Y)/2, 1e-9)
}

func TestPlotLayout(t *testing.T) {
	l := siteLayout(t)

	png, err := PlotLayout(l, 8*vg.Centimeter, 6*vg.Centimeter)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(png, []byte("\x89PNG\r\n\x1a\n")))
}
