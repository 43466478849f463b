package export

import (
	"bytes"
	"fmt"
	"image/color"
	gomath "math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

var (
	regionFill = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	regionEdge = color.RGBA{R: 80, G: 80, B: 80, A: 255}
	panelFill  = color.RGBA{R: 40, G: 90, B: 200, A: 255}
	panelEdge  = color.RGBA{R: 20, G: 40, B: 100, A: 255}
)

// plotPadding is the margin around the layout as a fraction of its span.
const plotPadding = 0.05

// PlotLayout renders a top-down view of the layout in local frame meters
// and returns it as PNG. Both axes share one scale.
func PlotLayout(l Layout, width, height vg.Length) ([]byte, error) {
	p := plot.New()
	p.Title.Text = fmt.Sprintf("%d panels on %.2f x %.2f m", len(l.Cells), l.Region.Width(), l.Region.Length())
	p.X.Label.Text = "width (m)"
	p.Y.Label.Text = "length (m)"

	var region plotter.XYs
	for _, c := range l.Region.Corners() {
		local := l.Frame.ToLocal(c)
		region = append(region, plotter.XY{X: local.X, Y: local.Y})
	}
	poly, err := plotter.NewPolygon(region)
	if err != nil {
		return nil, err
	}
	poly.Color = regionFill
	poly.LineStyle.Color = regionEdge
	poly.LineStyle.Width = vg.Points(1)
	p.Add(poly)

	bounds := boundsOf(region)
	for _, cell := range l.Cells {
		var xys plotter.XYs
		for _, v := range l.PanelFootprint(cell) {
			xys = append(xys, plotter.XY{X: v.X, Y: v.Y})
		}
		panel, err := plotter.NewPolygon(xys)
		if err != nil {
			return nil, err
		}
		panel.Color = panelFill
		panel.LineStyle.Color = panelEdge
		panel.LineStyle.Width = vg.Points(0.5)
		p.Add(panel)
		bounds = bounds.union(boundsOf(xys))
	}

	// Square data range so the layout is not distorted.
	span := gomath.Max(bounds.maxX-bounds.minX, bounds.maxY-bounds.minY) * (1 + 2*plotPadding)
	cx, cy := (bounds.minX+bounds.maxX)/2, (bounds.minY+bounds.maxY)/2
	p.X.Min, p.X.Max = cx-span/2, cx+span/2
	p.Y.Min, p.Y.Max = cy-span/2, cy+span/2

	wt, err := p.WriterTo(width, height, "png")
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if _, err := wt.WriteTo(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

type bounds struct {
	minX, minY, maxX, maxY float64
}

func boundsOf(xys plotter.XYs) bounds {
	b := bounds{gomath.Inf(1), gomath.Inf(1), gomath.Inf(-1), gomath.Inf(-1)}
	for _, p := range xys {
		b.minX, b.maxX = gomath.Min(b.minX, p.X), gomath.Max(b.maxX, p.X)
		b.minY, b.maxY = gomath.Min(b.minY, p.Y), gomath.Max(b.maxY, p.Y)
	}
	return b
}

func (b bounds) union(o bounds) bounds {
	return bounds{
		gomath.Min(b.minX, o.minX), gomath.Min(b.minY, o.minY),
		gomath.Max(b.maxX, o.maxX), gomath.Max(b.maxY, o.maxY),
	}
}
