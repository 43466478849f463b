package designer

import (
	"fmt"

	"github.com/Faultbox/solar-roi/internal/export"
)

// Measurements describe the captured region.
type Measurements struct {
	Width  float64 `json:"width_m"`
	Length float64 `json:"length_m"`
	Area   float64 `json:"area_m2"`
	// Footprint is the geodesic area of the outline.
	Footprint float64 `json:"geodesic_area_m2"`
}

// String formats the measurements with two decimals.
func (m Measurements) String() string {
	return fmt.Sprintf("Width: %.2f m, Length: %.2f m, Area: %.2f m²", m.Width, m.Length, m.Area)
}

// Measurements returns the region measurements.
func (d *Designer) Measurements() (Measurements, error) {
	if !d.hasRegion {
		return Measurements{}, ErrNoRegion
	}
	return Measurements{
		Width:     d.region.Width(),
		Length:    d.region.Length(),
		Area:      d.region.Area(),
		Footprint: export.FootprintArea(d.region),
	}, nil
}
