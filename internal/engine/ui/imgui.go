// Package ui provides the ImGui backend and the top-down site canvas the
// design panel draws into.
package ui

import (
	"fmt"
	"os"

	"github.com/AllenDang/cimgui-go/backend"
	"github.com/AllenDang/cimgui-go/backend/sdlbackend"
	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/Faultbox/solar-roi/internal/engine/scene"
	"github.com/Faultbox/solar-roi/pkg/math"
)

// latinGlyphRanges covers Latin-1, which holds the degree and squared
// signs the measurements use. Pairs of [start, end], zero terminated.
var latinGlyphRanges = []imgui.Wchar{
	0x0020, 0x00FF,
	0,
}

// fontPaths are tried in order; the built-in font is used if none exists.
var fontPaths = []string{
	"/System/Library/Fonts/Supplemental/Arial.ttf",
	"C:\\Windows\\Fonts\\segoeui.ttf",
	"/usr/share/fonts/truetype/dejavu/DejaVuSans.ttf",
	"/usr/share/fonts/TTF/DejaVuSans.ttf",
}

// Backend wraps the ImGui SDL backend.
type Backend struct {
	backend backend.Backend[sdlbackend.SDLWindowFlags]
	width   int32
	height  int32
}

// NewBackend creates the window and the ImGui context.
func NewBackend(title string, width, height int32) (*Backend, error) {
	b := &Backend{
		width:  width,
		height: height,
	}

	var err error
	b.backend, err = backend.CreateBackend(sdlbackend.NewSDLBackend())
	if err != nil {
		return nil, fmt.Errorf("create backend: %w", err)
	}

	b.backend.SetAfterCreateContextHook(loadFont)
	b.backend.SetBgColor(imgui.NewVec4(0.1, 0.1, 0.12, 1.0))
	b.backend.CreateWindow(title, int(width), int(height))

	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("init opengl: %w", err)
	}

	return b, nil
}

func loadFont() {
	for _, path := range fontPaths {
		if _, err := os.Stat(path); err != nil {
			continue
		}
		fontCfg := imgui.NewFontConfig()
		defer fontCfg.Destroy()
		imgui.CurrentIO().Fonts().AddFontFromFileTTFV(path, 16.0, fontCfg, &latinGlyphRanges[0])
		return
	}
}

// Run starts the main render loop.
func (b *Backend) Run(renderFunc func()) {
	b.backend.Run(renderFunc)
}

// SetWindowTitle updates the window title.
func (b *Backend) SetWindowTitle(title string) {
	b.backend.SetWindowTitle(title)
}

// Viewport returns the main viewport work area.
func (b *Backend) Viewport() (posX, posY, width, height float32) {
	viewport := imgui.MainViewport()
	workPos := viewport.WorkPos()
	workSize := viewport.WorkSize()
	return workPos.X, workPos.Y, workSize.X, workSize.Y
}

// IsKeyPressed checks if a key was pressed this frame.
func IsKeyPressed(key imgui.Key) bool {
	return imgui.IsKeyChordPressed(imgui.KeyChord(key))
}

// Color converts a scene color for the draw list.
func Color(c scene.Color) uint32 {
	return imgui.ColorU32Vec4(imgui.NewVec4(float32(c.R), float32(c.G), float32(c.B), float32(c.A)))
}

// DrawShapes draws polylines and polygons onto the draw list through the
// canvas projection. Model instances are drawn as dots at their position.
func DrawShapes(dl *imgui.DrawList, c *Canvas, entries []scene.Entry) {
	for _, e := range entries {
		switch s := e.Spec.(type) {
		case scene.Polygon:
			pts := c.screen(s.Ring)
			if s.Style.Fill.A > 0 && len(pts) >= 3 {
				fill := Color(s.Style.Fill)
				for i := 1; i+1 < len(pts); i++ {
					dl.AddTriangleFilled(pts[0], pts[i], pts[i+1], fill)
				}
			}
			drawStrip(dl, pts, s.Style)
		case scene.Polyline:
			drawStrip(dl, c.screen(s.Points), s.Style)
		case scene.ModelInstance:
			x, y := c.ToScreen(s.Position)
			dl.AddCircleFilledV(imgui.NewVec2(float32(x), float32(y)), 4, Color(scene.Cyan), 8)
		}
	}
}

func drawStrip(dl *imgui.DrawList, pts []imgui.Vec2, style scene.Style) {
	if style.Outline.A == 0 {
		return
	}
	col := Color(style.Outline)
	width := float32(style.Width)
	if width <= 0 {
		width = 1
	}
	for i := 0; i+1 < len(pts); i++ {
		dl.AddLineV(pts[i], pts[i+1], col, width)
	}
}

func (c *Canvas) screen(pts []math.Vec3) []imgui.Vec2 {
	out := make([]imgui.Vec2, len(pts))
	for i, p := range pts {
		x, y := c.ToScreen(p)
		out[i] = imgui.NewVec2(float32(x), float32(y))
	}
	return out
}
