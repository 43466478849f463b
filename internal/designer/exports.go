package designer

import (
	"fmt"

	"go.uber.org/zap"
	"gonum.org/v1/plot/vg"

	"github.com/Faultbox/solar-roi/internal/export"
	"github.com/Faultbox/solar-roi/internal/mesh"
)

// ExportRegion returns the region box as OBJ in local frame meters.
func (d *Designer) ExportRegion() ([]byte, error) {
	if !d.hasRegion {
		return nil, ErrNoRegion
	}
	m, err := mesh.RegionMesh(d.region, d.frame, d.cfg.RegionBoxHeight)
	if err != nil {
		return nil, err
	}
	return m.OBJ(
		"solar-roi region box",
		"session "+d.Session(),
		fmt.Sprintf("width %.2f m, length %.2f m, height %.2f m", d.region.Width(), d.region.Length(), d.cfg.RegionBoxHeight),
	), nil
}

// ExportArray returns one box per panel as OBJ in local frame meters.
func (d *Designer) ExportArray() ([]byte, error) {
	if !d.hasRegion {
		return nil, ErrNoRegion
	}
	m, err := mesh.ArrayMesh(d.frame, d.cells, d.cfg.PanelWidth, d.cfg.PanelLength, d.array.PanelHeight)
	if err != nil {
		return nil, err
	}
	return m.OBJ(
		"solar-roi panel array",
		"session "+d.Session(),
		fmt.Sprintf("%d rows x %d columns, panel %.2f x %.2f m, height %.2f m",
			d.array.Rows, d.array.Columns, d.cfg.PanelWidth, d.cfg.PanelLength, d.array.PanelHeight),
	), nil
}

// ExportGeoJSON returns the region and panel footprints as GeoJSON.
func (d *Designer) ExportGeoJSON() ([]byte, error) {
	l, err := d.Layout()
	if err != nil {
		return nil, err
	}
	return export.RegionGeoJSON(l)
}

// ExportPlot returns a top-down PNG of the layout.
func (d *Designer) ExportPlot() ([]byte, error) {
	l, err := d.Layout()
	if err != nil {
		return nil, err
	}
	return export.PlotLayout(l,
		vg.Length(d.files.PlotWidthCm)*vg.Centimeter,
		vg.Length(d.files.PlotHeightCm)*vg.Centimeter)
}

// SaveRegion emits ExportRegion under the configured region file name.
func (d *Designer) SaveRegion() error {
	return d.save(d.files.RegionFile, d.ExportRegion)
}

// SaveArray emits ExportArray under the configured array file name.
func (d *Designer) SaveArray() error {
	return d.save(d.files.ArrayFile, d.ExportArray)
}

// SaveGeoJSON emits ExportGeoJSON under the configured file name.
func (d *Designer) SaveGeoJSON() error {
	return d.save(d.files.GeoJSONFile, d.ExportGeoJSON)
}

// SaveLayoutPlot emits ExportPlot under the configured file name.
func (d *Designer) SaveLayoutPlot() error {
	return d.save(d.files.PlotFile, d.ExportPlot)
}

// SaveAll emits both meshes, then the GeoJSON and the plot unless skipped.
// It stops at the first failure.
func (d *Designer) SaveAll(geoJSON, plot bool) error {
	steps := []func() error{d.SaveRegion, d.SaveArray}
	if geoJSON {
		steps = append(steps, d.SaveGeoJSON)
	}
	if plot {
		steps = append(steps, d.SaveLayoutPlot)
	}
	for _, step := range steps {
		if err := step(); err != nil {
			return err
		}
	}
	return nil
}

func (d *Designer) save(name string, produce func() ([]byte, error)) error {
	data, err := produce()
	if err != nil {
		d.notifier.Notify(fmt.Sprintf("Export of %s failed: %v", name, err))
		return fmt.Errorf("export %s: %w", name, err)
	}
	if err := d.sink.Emit(name, data); err != nil {
		d.notifier.Notify(fmt.Sprintf("Writing %s failed: %v", name, err))
		return fmt.Errorf("export %s: %w", name, err)
	}
	d.log.Info("exported", zap.String("file", name), zap.Int("bytes", len(data)))
	return nil
}
