package design

import (
	"fmt"
	gomath "math"

	"github.com/Faultbox/solar-roi/pkg/math"
)

// ArrayConfig is the panel grid requested by the user.
type ArrayConfig struct {
	Rows        int     `yaml:"rows"`
	Columns     int     `yaml:"columns"`
	PanelHeight float64 `yaml:"panel_height"`
}

// Clamped returns c with at least one row and column and a non-negative
// panel height.
func (c ArrayConfig) Clamped() ArrayConfig {
	if c.Rows < 1 {
		c.Rows = 1
	}
	if c.Columns < 1 {
		c.Columns = 1
	}
	if c.PanelHeight < 0 || gomath.IsNaN(c.PanelHeight) {
		c.PanelHeight = 0
	}
	return c
}

// Validate rejects the values Clamped would change.
func (c ArrayConfig) Validate() error {
	switch {
	case c.Rows < 1:
		return fmt.Errorf("%w: rows %d < 1", ErrInvalidConfig, c.Rows)
	case c.Columns < 1:
		return fmt.Errorf("%w: columns %d < 1", ErrInvalidConfig, c.Columns)
	case c.PanelHeight < 0 || gomath.IsNaN(c.PanelHeight):
		return fmt.Errorf("%w: panel height %v", ErrInvalidConfig, c.PanelHeight)
	}
	return nil
}

// Count returns the number of cells the clamped config produces.
func (c ArrayConfig) Count() int {
	c = c.Clamped()
	return c.Rows * c.Columns
}

// PanelCell is one grid position of the array.
type PanelCell struct {
	Row         int
	Column      int
	Center      math.Vec3
	Orientation math.Quat
}

// GenerateArray tiles r edge to edge with cfg.Rows x cfg.Columns cells in
// row-major order. Each center is raised by PanelHeight along the frame's
// outward normal, so panels sit above the ground whichever way the region
// was drawn. Every cell shares the frame's orientation. The result is a new slice
// on every call.
//
// Rows advance from C0 towards C3. The frame's length axis points the
// other way for regions whose up axis is lengthRaw x width, so the walking
// direction is taken from the region edge.
func GenerateArray(r Region, f LocalFrame, cfg ArrayConfig) []PanelCell {
	cfg = cfg.Clamped()

	stepWidth := r.Width() / float64(cfg.Columns)
	stepLength := r.Length() / float64(cfg.Rows)
	orientation := f.Orientation()
	lift := f.Outward().Scale(cfg.PanelHeight)

	rowDir := f.LengthAxis
	if rowDir.Dot(r.C3.Sub(r.C0)) < 0 {
		rowDir = rowDir.Negate()
	}

	cells := make([]PanelCell, 0, cfg.Rows*cfg.Columns)
	for row := 0; row < cfg.Rows; row++ {
		for col := 0; col < cfg.Columns; col++ {
			cellOrigin := r.C0.
				Add(f.WidthAxis.Scale(float64(col) * stepWidth)).
				Add(rowDir.Scale(float64(row) * stepLength))
			center := cellOrigin.
				Add(f.WidthAxis.Scale(stepWidth / 2)).
				Add(rowDir.Scale(stepLength / 2)).
				Add(lift)

			cells = append(cells, PanelCell{
				Row:         row,
				Column:      col,
				Center:      center,
				Orientation: orientation,
			})
		}
	}
	return cells
}

// PanelFootprint returns the frame-coordinate corners of a width x length
// panel centered on cell. The first edge runs along the width axis and the
// corners wind counter-clockwise around the outward normal.
func (f LocalFrame) PanelFootprint(cell PanelCell, width, length float64) [4]math.Vec3 {
	c := f.ToLocal(cell.Center)
	hw, hl := width/2, length/2
	if f.OutwardSign() < 0 {
		return [4]math.Vec3{
			{X: c.X + hw, Y: c.Y - hl, Z: c.Z},
			{X: c.X - hw, Y: c.Y - hl, Z: c.Z},
			{X: c.X - hw, Y: c.Y + hl, Z: c.Z},
			{X: c.X + hw, Y: c.Y + hl, Z: c.Z},
		}
	}
	return [4]math.Vec3{
		{X: c.X - hw, Y: c.Y - hl, Z: c.Z},
		{X: c.X + hw, Y: c.Y - hl, Z: c.Z},
		{X: c.X + hw, Y: c.Y + hl, Z: c.Z},
		{X: c.X - hw, Y: c.Y + hl, Z: c.Z},
	}
}
