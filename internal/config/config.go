// Package config handles designer configuration loading and management.
package config

import (
	"os"

	"github.com/Faultbox/solar-roi/internal/design"
	"github.com/Faultbox/solar-roi/internal/logger"
	"github.com/Faultbox/solar-roi/pkg/geodesy"
)

// Config holds all designer settings.
type Config struct {
	Viewer  ViewerConfig  `yaml:"viewer"`
	Site    SiteConfig    `yaml:"site"`
	Design  DesignConfig  `yaml:"design"`
	Export  ExportConfig  `yaml:"export"`
	Logging LoggingConfig `yaml:"logging"`
}

// ViewerConfig holds window and camera lens settings.
type ViewerConfig struct {
	Width      int     `yaml:"width"`
	Height     int     `yaml:"height"`
	Fullscreen bool    `yaml:"fullscreen"`
	VSync      bool    `yaml:"vsync"`
	FovDegrees float64 `yaml:"fov_degrees"`
}

// SiteConfig holds the initial camera placement.
type SiteConfig struct {
	Longitude      float64 `yaml:"longitude"` // degrees
	Latitude       float64 `yaml:"latitude"`  // degrees
	Height         float64 `yaml:"height"`    // ground height, meters
	CameraAltitude float64 `yaml:"camera_altitude"`
	Heading        float64 `yaml:"heading"` // degrees
	Pitch          float64 `yaml:"pitch"`   // degrees
}

// Cartographic returns the site position.
func (s SiteConfig) Cartographic() geodesy.Cartographic {
	return geodesy.FromDegrees(s.Longitude, s.Latitude, s.Height)
}

// DesignConfig holds the panel array defaults and export geometry.
type DesignConfig struct {
	Rows            int     `yaml:"rows"`
	Columns         int     `yaml:"columns"`
	PanelHeight     float64 `yaml:"panel_height"`
	PanelWidth      float64 `yaml:"panel_width"`
	PanelLength     float64 `yaml:"panel_length"`
	RegionBoxHeight float64 `yaml:"region_box_height"`
	PanelModelURI   string  `yaml:"panel_model_uri"`
	PanelModelScale float64 `yaml:"panel_model_scale"`
}

// Array returns the configured array as a design.ArrayConfig.
func (d DesignConfig) Array() design.ArrayConfig {
	return design.ArrayConfig{Rows: d.Rows, Columns: d.Columns, PanelHeight: d.PanelHeight}
}

// ExportConfig holds output locations.
type ExportConfig struct {
	Dir          string  `yaml:"dir"`
	RegionFile   string  `yaml:"region_file"`
	ArrayFile    string  `yaml:"array_file"`
	GeoJSONFile  string  `yaml:"geojson_file"`
	PlotFile     string  `yaml:"plot_file"`
	PlotWidthCm  float64 `yaml:"plot_width_cm"`
	PlotHeightCm float64 `yaml:"plot_height_cm"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level      string `yaml:"level"`
	Format     string `yaml:"format"` // console or json
	LogFile    string `yaml:"log_file"`
	MaxSizeMB  int    `yaml:"max_size_mb"`
	MaxBackups int    `yaml:"max_backups"`
	MaxAgeDays int    `yaml:"max_age_days"`
}

// Options returns logger options writing to stderr and, when LogFile is
// set, to a rotated file.
func (l LoggingConfig) Options() logger.Options {
	opts := logger.Options{Level: l.Level, Format: l.Format, Console: os.Stderr}
	if l.LogFile != "" {
		opts.File = logger.DefaultFileConfig(l.LogFile)
		if l.MaxSizeMB > 0 {
			opts.File.MaxSizeMB = l.MaxSizeMB
		}
		if l.MaxBackups > 0 {
			opts.File.MaxBackups = l.MaxBackups
		}
		if l.MaxAgeDays > 0 {
			opts.File.MaxAgeDays = l.MaxAgeDays
		}
	}
	return opts
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Viewer: ViewerConfig{
			Width:      1280,
			Height:     720,
			Fullscreen: false,
			VSync:      true,
			FovDegrees: 60,
		},
		Site: SiteConfig{
			Longitude:      145.2678,
			Latitude:       -36.4369,
			Height:         0,
			CameraAltitude: 400,
			Heading:        0,
			Pitch:          -90,
		},
		Design: DesignConfig{
			Rows:            2,
			Columns:         2,
			PanelHeight:     3,
			PanelWidth:      2,
			PanelLength:     1,
			RegionBoxHeight: 1,
			PanelModelURI:   "./asset/solar_panel/scene.gltf",
			PanelModelScale: 1.0,
		},
		Export: ExportConfig{
			Dir:          ".",
			RegionFile:   "roi.obj",
			ArrayFile:    "solar_panels.obj",
			GeoJSONFile:  "roi.geojson",
			PlotFile:     "layout.png",
			PlotWidthCm:  16,
			PlotHeightCm: 12,
		},
		Logging: LoggingConfig{
			Level:      "info",
			Format:     "console",
			LogFile:    "",
			MaxSizeMB:  50,
			MaxBackups: 3,
			MaxAgeDays: 7,
		},
	}
}
