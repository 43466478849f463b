// Package designer is the session the UI shells drive: it runs the region
// capture, keeps the derived frame and panel array in sync with the scene,
// and produces the exports.
package designer

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/Faultbox/solar-roi/internal/capture"
	"github.com/Faultbox/solar-roi/internal/config"
	"github.com/Faultbox/solar-roi/internal/design"
	"github.com/Faultbox/solar-roi/internal/engine/input"
	"github.com/Faultbox/solar-roi/internal/engine/scene"
	"github.com/Faultbox/solar-roi/internal/export"
)

// ErrNoRegion is returned by operations that need a captured region.
var ErrNoRegion = errors.New("no region captured")

// RegionStyle is how a captured region is drawn.
var RegionStyle = scene.Style{Fill: scene.White.WithAlpha(0.5), Outline: scene.White, Width: 1}

// Notifier shows messages to the user.
type Notifier interface {
	Notify(msg string)
}

// NotifierFunc adapts a function to Notifier.
type NotifierFunc func(msg string)

// Notify implements Notifier.
func (f NotifierFunc) Notify(msg string) { f(msg) }

// Context carries the host collaborators.
type Context struct {
	Scene   scene.Scene
	Bus     *input.Bus
	Picker  capture.Picker
	Terrain design.Terrain
	Logger  *zap.Logger
}

// Designer is one design session. It is not safe for concurrent use; drive
// it from the goroutine that publishes input events.
type Designer struct {
	ctx      Context
	log      *zap.Logger
	cfg      config.DesignConfig
	files    config.ExportConfig
	sink     export.Sink
	notifier Notifier

	protocol *capture.Protocol

	region    design.Region
	frame     design.LocalFrame
	hasRegion bool
	array     design.ArrayConfig
	cells     []design.PanelCell

	regionShapes *scene.Arena
	panelShapes  *scene.Arena

	// OnChange is called after the region or the array changed.
	OnChange func()
}

// New creates a designer. notifier may be nil.
func New(ctx Context, cfg config.DesignConfig, files config.ExportConfig, sink export.Sink, notifier Notifier) *Designer {
	log := ctx.Logger
	if log == nil {
		log = zap.NewNop()
	}
	if notifier == nil {
		notifier = NotifierFunc(func(string) {})
	}

	d := &Designer{
		ctx:          ctx,
		log:          log,
		cfg:          cfg,
		files:        files,
		sink:         sink,
		notifier:     notifier,
		array:        cfg.Array().Clamped(),
		regionShapes: scene.NewArena(ctx.Scene),
		panelShapes:  scene.NewArena(ctx.Scene),
	}
	d.protocol = capture.New(capture.Context{
		Bus:    ctx.Bus,
		Scene:  ctx.Scene,
		Picker: ctx.Picker,
		Logger: log.Named("capture"),
	})
	d.protocol.OnComplete = d.complete
	d.protocol.OnError = d.captureFailed
	return d
}

// BeginCapture discards the current region and panels and starts a new
// capture.
func (d *Designer) BeginCapture() {
	d.clear()
	d.protocol.Begin()
	d.notifier.Notify("Click three points to define the region")
	d.changed()
}

// Close tears down the capture and removes every shape the session added.
func (d *Designer) Close() {
	d.protocol.Stop()
	d.clear()
}

func (d *Designer) clear() {
	d.regionShapes.Release()
	d.panelShapes.Release()
	d.region = design.Region{}
	d.frame = design.LocalFrame{}
	d.hasRegion = false
	d.cells = nil
}

func (d *Designer) complete(r design.Region) error {
	frame, err := design.BuildFrame(r, d.ctx.Terrain)
	if err != nil {
		return err
	}

	d.region, d.frame, d.hasRegion = r, frame, true
	d.regionShapes.Add(scene.Polygon{Ring: r.Ring(), Style: RegionStyle})
	d.regenerate()

	m, _ := d.Measurements()
	d.log.Info("region captured",
		zap.String("session", d.protocol.Session()),
		zap.Float64("width_m", m.Width),
		zap.Float64("length_m", m.Length),
		zap.Float64("area_m2", m.Area))
	d.notifier.Notify(m.String())
	d.changed()
	return nil
}

func (d *Designer) captureFailed(err error) {
	d.notifier.Notify(fmt.Sprintf("Region capture failed: %v. Click three points again.", err))
	d.changed()
}

// OnConfigChange regenerates the panel array. Rows and columns below one
// are clamped to one.
func (d *Designer) OnConfigChange(rows, columns int, panelHeight float64) error {
	if !d.hasRegion {
		return ErrNoRegion
	}
	d.array = design.ArrayConfig{Rows: rows, Columns: columns, PanelHeight: panelHeight}.Clamped()
	d.regenerate()
	d.changed()
	return nil
}

func (d *Designer) regenerate() {
	d.panelShapes.Release()
	d.cells = design.GenerateArray(d.region, d.frame, d.array)
	for _, c := range d.cells {
		d.panelShapes.Add(scene.ModelInstance{
			URI:         d.cfg.PanelModelURI,
			Position:    c.Center,
			Orientation: c.Orientation,
			Scale:       d.cfg.PanelModelScale,
		})
	}
	d.log.Debug("panel array regenerated",
		zap.Int("rows", d.array.Rows),
		zap.Int("columns", d.array.Columns),
		zap.Float64("panel_height", d.array.PanelHeight),
		zap.Int("cells", len(d.cells)))
}

func (d *Designer) changed() {
	if d.OnChange != nil {
		d.OnChange()
	}
}

// State returns the capture state.
func (d *Designer) State() capture.StateKind {
	return d.protocol.State()
}

// Session returns the capture session ID.
func (d *Designer) Session() string {
	return d.protocol.Session()
}

// Region returns the captured region.
func (d *Designer) Region() (design.Region, bool) {
	return d.region, d.hasRegion
}

// Frame returns the local frame of the captured region.
func (d *Designer) Frame() (design.LocalFrame, bool) {
	return d.frame, d.hasRegion
}

// Array returns the current (clamped) array configuration.
func (d *Designer) Array() design.ArrayConfig {
	return d.array
}

// Cells returns a copy of the current panel cells.
func (d *Designer) Cells() []design.PanelCell {
	out := make([]design.PanelCell, len(d.cells))
	copy(out, d.cells)
	return out
}

// Layout returns the current layout for export.
func (d *Designer) Layout() (export.Layout, error) {
	if !d.hasRegion {
		return export.Layout{}, ErrNoRegion
	}
	return export.Layout{
		Region:      d.region,
		Frame:       d.frame,
		Cells:       d.Cells(),
		PanelWidth:  d.cfg.PanelWidth,
		PanelLength: d.cfg.PanelLength,
	}, nil
}
