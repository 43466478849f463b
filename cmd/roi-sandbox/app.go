package main

import (
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/solar-roi/internal/config"
	"github.com/Faultbox/solar-roi/internal/design"
	"github.com/Faultbox/solar-roi/internal/designer"
	"github.com/Faultbox/solar-roi/internal/engine/camera"
	"github.com/Faultbox/solar-roi/internal/engine/debug"
	"github.com/Faultbox/solar-roi/internal/engine/input"
	"github.com/Faultbox/solar-roi/internal/engine/input/sdlinput"
	"github.com/Faultbox/solar-roi/internal/engine/picking"
	"github.com/Faultbox/solar-roi/internal/engine/renderer"
	"github.com/Faultbox/solar-roi/internal/engine/scene"
	"github.com/Faultbox/solar-roi/internal/engine/window"
	"github.com/Faultbox/solar-roi/internal/export"
	"github.com/Faultbox/solar-roi/internal/logger"
	"github.com/Faultbox/solar-roi/pkg/geodesy"
	"github.com/Faultbox/solar-roi/pkg/math"
)

const (
	title = "Solar ROI"

	// Panel height step for PageUp and PageDown, meters.
	heightStep = 0.5
)

type app struct {
	cfg *config.Config
	log *zap.Logger

	win      *window.Window
	renderer *renderer.Renderer
	input    *sdlinput.Input

	scene    *scene.Memory
	bus      *input.Bus
	camera   *camera.SiteCamera
	designer *designer.Designer
	sink     export.Sink

	// origin is the point all vertex data is expressed relative to.
	origin math.Vec3

	// wantScreenshot is set by P and served after the next draw, before
	// the buffers swap.
	wantScreenshot bool
}

func newApp(cfg *config.Config) (*app, error) {
	a := &app{
		cfg:   cfg,
		log:   logger.Named("sandbox"),
		input: sdlinput.New(),
		scene: scene.NewMemory(),
		bus:   input.NewBus(),
	}

	var err error
	a.win, err = window.New(window.Config{
		Title:      title,
		Width:      cfg.Viewer.Width,
		Height:     cfg.Viewer.Height,
		Fullscreen: cfg.Viewer.Fullscreen,
		VSync:      cfg.Viewer.VSync,
		Samples:    4,
	})
	if err != nil {
		return nil, err
	}

	dw, dh := a.win.DrawableSize()
	a.renderer, err = renderer.New(renderer.Config{
		Width:     dw,
		Height:    dh,
		Model:     renderer.ModelBox{X: cfg.Design.PanelWidth, Y: cfg.Design.PanelLength, Z: debug.DefaultPanelThickness},
		LineWidth: 2,
	})
	if err != nil {
		a.win.Close()
		return nil, err
	}

	site := cfg.Site.Cartographic()
	a.camera = camera.NewSiteCamera(site, cfg.Site.CameraAltitude, cfg.Site.Heading, cfg.Site.Pitch, cfg.Viewer.FovDegrees)
	w, h := a.win.Size()
	a.camera.SetViewport(float64(w), float64(h))
	a.origin = geodesy.WGS84.ToCartesian(site)

	a.sink = export.DirSink{Dir: cfg.Export.Dir}
	a.designer = designer.New(designer.Context{
		Scene:   a.scene,
		Bus:     a.bus,
		Picker:  picking.NewSurfacePicker(a.camera, cfg.Site.Height),
		Terrain: design.ConstantTerrain(cfg.Site.Height),
		Logger:  logger.Named("designer"),
	}, cfg.Design, cfg.Export, a.sink, designer.NotifierFunc(a.notify))

	a.log.Info("sandbox ready",
		zap.Float64("longitude", cfg.Site.Longitude),
		zap.Float64("latitude", cfg.Site.Latitude),
		zap.String("keys", "R capture, +/- rows, [/] columns, PgUp/PgDn height, E export, P screenshot, Esc quit"))
	return a, nil
}

func (a *app) notify(msg string) {
	a.log.Info(msg)
	a.win.SetTitle(title + " | " + msg)
}

// Close releases the designer's shapes and the GL and SDL resources.
func (a *app) Close() {
	a.designer.Close()
	a.renderer.Close()
	a.win.Close()
}

// Run runs the frame loop until the window closes or Escape is pressed.
func (a *app) Run() error {
	a.designer.BeginCapture()

	for {
		quit := a.input.Update()
		for _, e := range a.input.Events() {
			if a.handle(e) {
				quit = true
			}
		}
		if quit {
			return nil
		}

		a.renderer.Begin()
		a.renderer.DrawScene(a.scene, a.camera, a.origin)
		if a.wantScreenshot {
			a.wantScreenshot = false
			a.screenshot()
		}
		a.win.SwapBuffers()
	}
}

// handle routes one event and reports whether the viewer should quit.
func (a *app) handle(e input.Event) bool {
	switch e.Type {
	case input.EventResize:
		a.camera.SetViewport(float64(e.Width), float64(e.Height))
		a.renderer.Resize(a.win.DrawableSize())

	case input.EventWheel:
		a.camera.HandleZoom(e.Wheel)

	case input.EventPointerMove:
		switch e.Held {
		case input.ButtonRight:
			a.camera.HandlePan(e.DX, e.DY)
		case input.ButtonMiddle:
			a.camera.HandleRotate(e.DX)
		default:
			a.bus.Publish(e)
		}

	case input.EventPointerClick:
		a.bus.Publish(e)

	case input.EventKeyDown:
		return a.handleKey(e.Key)
	}
	return false
}

func (a *app) handleKey(k input.Key) bool {
	arr := a.designer.Array()
	switch k {
	case input.KeyEscape:
		return true
	case input.KeyR:
		a.designer.BeginCapture()
	case input.KeyC:
		a.camera.FlyTo(a.cfg.Site.Cartographic())
	case input.KeyPlus:
		a.configure(arr.Rows+1, arr.Columns, arr.PanelHeight)
	case input.KeyMinus:
		a.configure(arr.Rows-1, arr.Columns, arr.PanelHeight)
	case input.KeyRightBracket:
		a.configure(arr.Rows, arr.Columns+1, arr.PanelHeight)
	case input.KeyLeftBracket:
		a.configure(arr.Rows, arr.Columns-1, arr.PanelHeight)
	case input.KeyPageUp:
		a.configure(arr.Rows, arr.Columns, arr.PanelHeight+heightStep)
	case input.KeyPageDown:
		a.configure(arr.Rows, arr.Columns, arr.PanelHeight-heightStep)
	case input.KeyP:
		a.wantScreenshot = true
	case input.KeyE:
		if err := a.designer.SaveAll(true, true); err != nil {
			a.notify(fmt.Sprintf("Export failed: %v", err))
			return false
		}
		a.notify("Exported to " + a.cfg.Export.Dir)
	}
	return false
}

// screenshot reads back the framebuffer and writes it to the export
// directory.
func (a *app) screenshot() {
	w, h := a.win.DrawableSize()
	data, err := debug.EncodeScreenshot(a.renderer.ReadPixels(w, h), w, h)
	if err == nil {
		name := debug.ScreenshotName("roi", time.Now())
		if err = a.sink.Emit(name, data); err == nil {
			a.notify("Saved " + name)
			return
		}
	}
	a.log.Warn("screenshot failed", zap.Error(err))
}

func (a *app) configure(rows, columns int, panelHeight float64) {
	err := a.designer.OnConfigChange(rows, columns, panelHeight)
	if errors.Is(err, designer.ErrNoRegion) {
		a.notify("Capture a region first")
		return
	}
	if err != nil {
		a.log.Warn("configure failed", zap.Error(err))
		return
	}
	arr := a.designer.Array()
	a.notify(fmt.Sprintf("%d x %d panels at %.1f m", arr.Rows, arr.Columns, arr.PanelHeight))
}
