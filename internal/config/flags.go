package config

import "github.com/spf13/pflag"

// Flags holds command-line overrides. Only flags the user set are applied.
type Flags struct {
	fs *pflag.FlagSet

	ConfigPath  string
	Debug       bool
	LogFormat   string
	Windowed    bool
	Fullscreen  bool
	Width       int
	Height      int
	Longitude   float64
	Latitude    float64
	Rows        int
	Columns     int
	PanelHeight float64
	OutDir      string
}

// BindFlags registers the shared flags on fs.
func BindFlags(fs *pflag.FlagSet) *Flags {
	f := &Flags{fs: fs}
	fs.StringVarP(&f.ConfigPath, "config", "c", "", "Path to config file")
	fs.BoolVar(&f.Debug, "debug", false, "Enable debug logging")
	fs.StringVar(&f.LogFormat, "log-format", "", "Console log format: console or json")
	fs.BoolVar(&f.Windowed, "windowed", false, "Run in windowed mode")
	fs.BoolVar(&f.Fullscreen, "fullscreen", false, "Run in fullscreen mode")
	fs.IntVar(&f.Width, "width", 0, "Window width")
	fs.IntVar(&f.Height, "height", 0, "Window height")
	fs.Float64Var(&f.Longitude, "lon", 0, "Site longitude in degrees")
	fs.Float64Var(&f.Latitude, "lat", 0, "Site latitude in degrees")
	fs.IntVar(&f.Rows, "rows", 0, "Panel rows")
	fs.IntVar(&f.Columns, "columns", 0, "Panel columns")
	fs.Float64Var(&f.PanelHeight, "panel-height", 0, "Panel height above the region in meters")
	fs.StringVarP(&f.OutDir, "out", "o", "", "Export directory")
	return f
}

func (f *Flags) changed(name string) bool {
	return f.fs != nil && f.fs.Changed(name)
}

// apply applies CLI flag overrides to the config.
func (f *Flags) apply(cfg *Config) {
	if f.Debug {
		cfg.Logging.Level = "debug"
	}
	if f.LogFormat != "" {
		cfg.Logging.Format = f.LogFormat
	}
	if f.Windowed {
		cfg.Viewer.Fullscreen = false
	}
	if f.Fullscreen {
		cfg.Viewer.Fullscreen = true
	}
	if f.Width > 0 {
		cfg.Viewer.Width = f.Width
	}
	if f.Height > 0 {
		cfg.Viewer.Height = f.Height
	}
	if f.changed("lon") {
		cfg.Site.Longitude = f.Longitude
	}
	if f.changed("lat") {
		cfg.Site.Latitude = f.Latitude
	}
	if f.changed("rows") {
		cfg.Design.Rows = f.Rows
	}
	if f.changed("columns") {
		cfg.Design.Columns = f.Columns
	}
	if f.changed("panel-height") {
		cfg.Design.PanelHeight = f.PanelHeight
	}
	if f.OutDir != "" {
		cfg.Export.Dir = f.OutDir
	}
}
