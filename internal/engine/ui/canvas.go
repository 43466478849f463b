package ui

import (
	gomath "math"

	"github.com/Faultbox/solar-roi/internal/engine/input"
	"github.com/Faultbox/solar-roi/pkg/geodesy"
	"github.com/Faultbox/solar-roi/pkg/math"
)

// Canvas is a top-down orthographic view of the ground around Center.
// Screen up is north. Screen coordinates are the ones ImGui reports, so
// Min is the canvas's top-left corner inside the window.
type Canvas struct {
	Ellipsoid geodesy.Ellipsoid
	Center    geodesy.Cartographic
	// MetersPerPixel is the ground distance one screen pixel covers.
	MetersPerPixel float64

	MinX, MinY    float64
	Width, Height float64
}

// NewCanvas creates a canvas over the WGS84 ellipsoid.
func NewCanvas(center geodesy.Cartographic, metersPerPixel float64) *Canvas {
	return &Canvas{Ellipsoid: geodesy.WGS84, Center: center, MetersPerPixel: metersPerPixel}
}

// SetBounds places the canvas on screen.
func (c *Canvas) SetBounds(minX, minY, width, height float64) {
	c.MinX, c.MinY, c.Width, c.Height = minX, minY, width, height
}

// Contains reports whether the screen point lies on the canvas.
func (c *Canvas) Contains(x, y float64) bool {
	return x >= c.MinX && y >= c.MinY && x < c.MinX+c.Width && y < c.MinY+c.Height
}

func (c *Canvas) frame() (origin math.Vec3, enu math.Mat3) {
	origin = c.Ellipsoid.ToCartesian(c.Center)
	return origin, c.Ellipsoid.EastNorthUp(origin)
}

// Pick returns the point on the ground under the screen position. Points
// outside the canvas miss.
func (c *Canvas) Pick(x, y float64) (math.Vec3, bool) {
	if !c.Contains(x, y) || c.MetersPerPixel <= 0 {
		return math.Vec3{}, false
	}
	origin, enu := c.frame()
	east := (x - c.MinX - c.Width/2) * c.MetersPerPixel
	north := -(y - c.MinY - c.Height/2) * c.MetersPerPixel
	p := origin.Add(enu.Col(0).Scale(east)).Add(enu.Col(1).Scale(north))

	carto, ok := c.Ellipsoid.ToCartographic(p)
	if !ok {
		return math.Vec3{}, false
	}
	carto.Height = c.Center.Height
	return c.Ellipsoid.ToCartesian(carto), true
}

// ToScreen returns the screen position of a global point, ignoring its
// height above the ground.
func (c *Canvas) ToScreen(p math.Vec3) (x, y float64) {
	origin, enu := c.frame()
	d := p.Sub(origin)
	east := d.Dot(enu.Col(0))
	north := d.Dot(enu.Col(1))
	mpp := c.MetersPerPixel
	if mpp <= 0 {
		mpp = 1
	}
	return c.MinX + c.Width/2 + east/mpp, c.MinY + c.Height/2 - north/mpp
}

// Zoom scales the view by wheel notches, keeping the center fixed.
func (c *Canvas) Zoom(wheel float64) {
	c.MetersPerPixel *= gomath.Pow(0.9, wheel)
	c.MetersPerPixel = gomath.Max(0.005, gomath.Min(c.MetersPerPixel, 50))
}

// Pan moves the center so the ground follows a drag of dx, dy pixels.
func (c *Canvas) Pan(dx, dy float64) {
	origin, enu := c.frame()
	moved := origin.
		Add(enu.Col(0).Scale(-dx * c.MetersPerPixel)).
		Add(enu.Col(1).Scale(dy * c.MetersPerPixel))
	if carto, ok := c.Ellipsoid.ToCartographic(moved); ok {
		carto.Height = c.Center.Height
		c.Center = carto
	}
}

// clickSlop is how far the pointer may travel between press and release
// for the pair to still count as a click.
const clickSlop = 4

// ClickTracker turns per-frame button state into pointer events.
type ClickTracker struct {
	down  bool
	press math.Vec2
	last  math.Vec2
	seen  bool
}

// Update takes the pointer position and left-button state of one frame and
// returns the events to publish: a move whenever the pointer moved, and a
// click when the button was released close to where it was pressed.
func (t *ClickTracker) Update(x, y float64, down bool) []input.Event {
	var out []input.Event
	pos := math.Vec2{X: x, Y: y}
	if !t.seen || pos != t.last {
		ev := input.Move(x, y)
		if t.seen {
			d := pos.Sub(t.last)
			ev.DX, ev.DY = d.X, d.Y
		}
		if down {
			ev.Held = input.ButtonLeft
		}
		out = append(out, ev)
	}
	t.last, t.seen = pos, true

	switch {
	case down && !t.down:
		t.press = pos
	case !down && t.down:
		if pos.Distance(t.press) <= clickSlop {
			out = append(out, input.Click(x, y))
		}
	}
	t.down = down
	return out
}
