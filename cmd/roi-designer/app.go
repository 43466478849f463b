package main

import (
	"fmt"
	"time"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/sqweek/dialog"
	"go.uber.org/zap"

	"github.com/Faultbox/solar-roi/internal/config"
	"github.com/Faultbox/solar-roi/internal/design"
	"github.com/Faultbox/solar-roi/internal/designer"
	"github.com/Faultbox/solar-roi/internal/engine/input"
	"github.com/Faultbox/solar-roi/internal/engine/scene"
	"github.com/Faultbox/solar-roi/internal/engine/ui"
	"github.com/Faultbox/solar-roi/internal/export"
	"github.com/Faultbox/solar-roi/internal/logger"
	"github.com/Faultbox/solar-roi/internal/solar"
)

const (
	designPanelWidth = 320
	// initialMetersPerPixel frames roughly 100 m across a default window.
	initialMetersPerPixel = 0.1
)

// App holds the designer UI state.
type App struct {
	cfg     *config.Config
	log     *zap.Logger
	backend *ui.Backend

	scene    *scene.Memory
	bus      *input.Bus
	canvas   *ui.Canvas
	tracker  ui.ClickTracker
	designer *designer.Designer
	sink     *dirSink

	// Slider values; they mirror the designer's array.
	rows, columns int32
	panelHeight   float32

	status string

	lastMouse imgui.Vec2

	// exportDir receives directories picked in the dialog goroutine.
	exportDir chan string
}

// dirSink lets the export directory change between exports.
type dirSink struct {
	export.DirSink
}

// NewApp creates the window and wires the designer to the canvas.
func NewApp(cfg *config.Config) (*App, error) {
	app := &App{
		cfg:       cfg,
		log:       logger.Named("designer-ui"),
		scene:     scene.NewMemory(),
		bus:       input.NewBus(),
		canvas:    ui.NewCanvas(cfg.Site.Cartographic(), initialMetersPerPixel),
		sink:      &dirSink{export.DirSink{Dir: cfg.Export.Dir}},
		exportDir: make(chan string, 1),
		status:    "Press Begin capture, then click three points on the site",
	}

	var err error
	app.backend, err = ui.NewBackend("Solar ROI Designer", int32(cfg.Viewer.Width), int32(cfg.Viewer.Height))
	if err != nil {
		return nil, err
	}

	app.designer = designer.New(designer.Context{
		Scene:   app.scene,
		Bus:     app.bus,
		Picker:  app.canvas,
		Terrain: design.ConstantTerrain(cfg.Site.Height),
		Logger:  logger.Named("designer"),
	}, cfg.Design, cfg.Export, app.sink, designer.NotifierFunc(func(msg string) {
		app.status = msg
	}))
	app.syncSliders()

	return app, nil
}

// Close removes the designer's shapes.
func (app *App) Close() {
	app.designer.Close()
}

// Run starts the main application loop.
func (app *App) Run() {
	app.backend.Run(app.render)
}

func (app *App) syncSliders() {
	arr := app.designer.Array()
	app.rows, app.columns, app.panelHeight = int32(arr.Rows), int32(arr.Columns), float32(arr.PanelHeight)
}

func (app *App) render() {
	select {
	case dir := <-app.exportDir:
		app.exportTo(dir)
	default:
	}

	if ui.IsKeyPressed(imgui.KeyR) && !imgui.IsAnyItemActive() {
		app.designer.BeginCapture()
	}

	posX, posY, width, height := app.backend.Viewport()
	flags := imgui.WindowFlagsNoMove | imgui.WindowFlagsNoResize | imgui.WindowFlagsNoCollapse

	imgui.SetNextWindowPos(imgui.NewVec2(posX, posY))
	imgui.SetNextWindowSize(imgui.NewVec2(width-designPanelWidth, height))
	if imgui.BeginV("Site", nil, flags|imgui.WindowFlagsNoScrollbar) {
		app.renderSite()
	}
	imgui.End()

	imgui.SetNextWindowPos(imgui.NewVec2(posX+width-designPanelWidth, posY))
	imgui.SetNextWindowSize(imgui.NewVec2(designPanelWidth, height))
	if imgui.BeginV("Design", nil, flags) {
		app.renderDesign()
	}
	imgui.End()
}

func (app *App) renderSite() {
	drawList := imgui.WindowDrawList()
	cursor := imgui.CursorScreenPos()
	avail := imgui.ContentRegionAvail()
	app.canvas.SetBounds(float64(cursor.X), float64(cursor.Y), float64(avail.X), float64(avail.Y))

	bgMin := cursor
	bgMax := imgui.NewVec2(cursor.X+avail.X, cursor.Y+avail.Y)
	drawList.AddRectFilledV(bgMin, bgMax, imgui.ColorU32Vec4(imgui.NewVec4(0.12, 0.16, 0.12, 1.0)), 0, 0)
	app.drawScaleBar(drawList, bgMin, bgMax)

	ui.DrawShapes(drawList, app.canvas, app.scene.Shapes())
	drawList.AddRectV(bgMin, bgMax, imgui.ColorU32Vec4(imgui.NewVec4(0.5, 0.5, 0.5, 1.0)), 0, 0, 1)

	// Reserve the canvas area so the window hover test covers it.
	imgui.Dummy(avail)
	if !imgui.IsItemHovered() {
		return
	}

	mouse := imgui.MousePos()
	if wheel := imgui.CurrentIO().MouseWheel(); wheel != 0 {
		app.canvas.Zoom(float64(wheel))
	}
	if imgui.IsMouseDown(imgui.MouseButtonRight) {
		app.canvas.Pan(float64(mouse.X-app.lastMouse.X), float64(mouse.Y-app.lastMouse.Y))
	}
	app.lastMouse = mouse

	for _, e := range app.tracker.Update(float64(mouse.X), float64(mouse.Y), imgui.IsMouseDown(imgui.MouseButtonLeft)) {
		app.bus.Publish(e)
	}
}

// drawScaleBar draws a 10 m bar in the bottom-left corner.
func (app *App) drawScaleBar(dl *imgui.DrawList, bgMin, bgMax imgui.Vec2) {
	const meters = 10
	length := float32(meters / app.canvas.MetersPerPixel)
	y := bgMax.Y - 16
	x := bgMin.X + 16
	col := imgui.ColorU32Vec4(imgui.NewVec4(1, 1, 1, 0.8))
	dl.AddLineV(imgui.NewVec2(x, y), imgui.NewVec2(x+length, y), col, 2)
	dl.AddLineV(imgui.NewVec2(x, y-4), imgui.NewVec2(x, y+4), col, 2)
	dl.AddLineV(imgui.NewVec2(x+length, y-4), imgui.NewVec2(x+length, y+4), col, 2)
}

func (app *App) renderDesign() {
	imgui.TextWrapped(app.status)
	imgui.Separator()
	imgui.Spacing()

	if imgui.Button("Begin capture (R)") {
		app.designer.BeginCapture()
	}
	imgui.SameLine()
	imgui.TextDisabled(app.designer.State().String())

	imgui.Spacing()
	imgui.Text("Panel array")
	changed := imgui.SliderIntV("Rows", &app.rows, 1, 20, "%d", imgui.SliderFlagsNone)
	changed = imgui.SliderIntV("Columns", &app.columns, 1, 20, "%d", imgui.SliderFlagsNone) || changed
	changed = imgui.SliderFloatV("Height (m)", &app.panelHeight, 0, 10, "%.1f", imgui.SliderFlagsNone) || changed
	if changed {
		if err := app.designer.OnConfigChange(int(app.rows), int(app.columns), float64(app.panelHeight)); err != nil {
			app.status = err.Error()
			app.syncSliders()
		}
	}

	imgui.Spacing()
	imgui.Separator()
	m, err := app.designer.Measurements()
	if err != nil {
		imgui.TextDisabled("No region captured")
		return
	}
	imgui.Text(fmt.Sprintf("Width:  %.2f m", m.Width))
	imgui.Text(fmt.Sprintf("Length: %.2f m", m.Length))
	imgui.Text(fmt.Sprintf("Area:   %.2f m²", m.Area))
	imgui.Text(fmt.Sprintf("Panels: %d (%.2f m²)", len(app.designer.Cells()), m.Footprint))

	if frame, ok := app.designer.Frame(); ok {
		if report, err := solar.At(frame, time.Now()); err == nil {
			imgui.Spacing()
			imgui.Text("Sun now")
			imgui.TextWrapped(report.String())
		}
	}

	imgui.Spacing()
	imgui.Separator()
	if imgui.Button("Export...") {
		app.openExportDialog()
	}
	imgui.SameLine()
	imgui.TextDisabled(app.sink.Dir)
}

// openExportDialog shows a native directory picker. The dialog blocks, so
// it runs in a goroutine and hands the result back to render.
func (app *App) openExportDialog() {
	go func() {
		dir, err := dialog.Directory().Title("Export layout to").Browse()
		if err != nil {
			if err != dialog.ErrCancelled {
				app.log.Warn("directory dialog failed", zap.Error(err))
			}
			return
		}
		select {
		case app.exportDir <- dir:
		default:
		}
	}()
}

func (app *App) exportTo(dir string) {
	app.sink.Dir = dir
	if err := app.designer.SaveAll(true, true); err != nil {
		app.status = fmt.Sprintf("Export failed: %v", err)
		app.log.Warn("export failed", zap.String("dir", dir), zap.Error(err))
		return
	}
	app.status = "Exported to " + dir
	app.log.Info("layout exported", zap.String("dir", dir))
}
