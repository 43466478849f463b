package export

import (
	gomath "math"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geo"
	"github.com/paulmach/orb/geojson"

	"github.com/Faultbox/solar-roi/internal/design"
	"github.com/Faultbox/solar-roi/pkg/geodesy"
	"github.com/Faultbox/solar-roi/pkg/math"
)

// Layout is everything needed to describe a finished design.
type Layout struct {
	Region      design.Region
	Frame       design.LocalFrame
	Cells       []design.PanelCell
	PanelWidth  float64
	PanelLength float64
}

// PanelFootprint returns the frame-coordinate corners of the panel on cell.
func (l Layout) PanelFootprint(cell design.PanelCell) [4]math.Vec3 {
	return l.Frame.PanelFootprint(cell, l.PanelWidth, l.PanelLength)
}

// lonLatRing converts global points to a closed counter-clockwise ring.
func lonLatRing(points []math.Vec3) orb.Ring {
	ring := make(orb.Ring, 0, len(points)+1)
	for _, p := range points {
		c, ok := geodesy.WGS84.ToCartographic(p)
		if !ok {
			continue
		}
		lon, lat := c.Degrees()
		ring = append(ring, orb.Point{lon, lat})
	}
	if len(ring) > 0 && !ring.Closed() {
		ring = append(ring, ring[0])
	}
	if ring.Orientation() == orb.CW {
		ring.Reverse()
	}
	return ring
}

// RegionPolygon returns the region outline in longitude/latitude degrees.
func RegionPolygon(r design.Region) orb.Polygon {
	c := r.Corners()
	return orb.Polygon{lonLatRing(c[:])}
}

// FootprintArea returns the geodesic area of the region outline in square
// meters.
func FootprintArea(r design.Region) float64 {
	return gomath.Abs(geo.Area(RegionPolygon(r)))
}

// RegionGeoJSON encodes the region and every panel footprint as a GeoJSON
// FeatureCollection.
func RegionGeoJSON(l Layout) ([]byte, error) {
	fc := geojson.NewFeatureCollection()

	region := geojson.NewFeature(RegionPolygon(l.Region))
	region.Properties["kind"] = "region"
	region.Properties["width_m"] = round2(l.Region.Width())
	region.Properties["length_m"] = round2(l.Region.Length())
	region.Properties["area_m2"] = round2(l.Region.Area())
	region.Properties["geodesic_area_m2"] = round2(FootprintArea(l.Region))
	fc.Append(region)

	for _, cell := range l.Cells {
		local := l.PanelFootprint(cell)
		global := make([]math.Vec3, len(local))
		for i, p := range local {
			global[i] = l.Frame.ToGlobal(p)
		}

		panel := geojson.NewFeature(orb.Polygon{lonLatRing(global)})
		panel.Properties["kind"] = "panel"
		panel.Properties["row"] = cell.Row
		panel.Properties["column"] = cell.Column
		fc.Append(panel)
	}

	return fc.MarshalJSON()
}

func round2(v float64) float64 {
	return gomath.Round(v*100) / 100
}
