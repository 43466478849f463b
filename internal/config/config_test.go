package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	// Viewer defaults
	if cfg.Viewer.Width != 1280 {
		t.Errorf("expected width 1280, got %d", cfg.Viewer.Width)
	}
	if cfg.Viewer.Height != 720 {
		t.Errorf("expected height 720, got %d", cfg.Viewer.Height)
	}
	if cfg.Viewer.Fullscreen {
		t.Error("expected fullscreen to be false by default")
	}

	// Site defaults
	if cfg.Site.Longitude != 145.2678 || cfg.Site.Latitude != -36.4369 {
		t.Errorf("unexpected site %v, %v", cfg.Site.Longitude, cfg.Site.Latitude)
	}
	if cfg.Site.CameraAltitude != 400 {
		t.Errorf("expected camera altitude 400, got %v", cfg.Site.CameraAltitude)
	}
	if cfg.Site.Pitch != -90 {
		t.Errorf("expected pitch -90, got %v", cfg.Site.Pitch)
	}

	// Design defaults
	arr := cfg.Design.Array()
	if arr.Rows != 2 || arr.Columns != 2 || arr.PanelHeight != 3 {
		t.Errorf("unexpected array defaults %+v", arr)
	}
	if cfg.Design.PanelWidth != 2 || cfg.Design.PanelLength != 1 {
		t.Errorf("expected 2x1 panel footprint, got %vx%v", cfg.Design.PanelWidth, cfg.Design.PanelLength)
	}
	if cfg.Design.RegionBoxHeight != 1 {
		t.Errorf("expected region box height 1, got %v", cfg.Design.RegionBoxHeight)
	}

	// Export defaults
	if cfg.Export.RegionFile != "roi.obj" {
		t.Errorf("expected roi.obj, got %s", cfg.Export.RegionFile)
	}
	if cfg.Export.ArrayFile != "solar_panels.obj" {
		t.Errorf("expected solar_panels.obj, got %s", cfg.Export.ArrayFile)
	}

	// Logging defaults
	if cfg.Logging.Level != "info" {
		t.Errorf("expected log level 'info', got %s", cfg.Logging.Level)
	}
	if cfg.Logging.LogFile != "" {
		t.Errorf("expected empty log file, got %s", cfg.Logging.LogFile)
	}
}

func TestSiteCartographic(t *testing.T) {
	c := Default().Site.Cartographic()
	lon, lat := c.Degrees()
	if diff := lon - 145.2678; diff > 1e-9 || diff < -1e-9 {
		t.Errorf("expected lon 145.2678, got %v", lon)
	}
	if diff := lat + 36.4369; diff > 1e-9 || diff < -1e-9 {
		t.Errorf("expected lat -36.4369, got %v", lat)
	}
}

func TestLoadFromFile(t *testing.T) {
	// Create temporary config file
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	yamlContent := `
viewer:
  width: 1920
  height: 1080
  fullscreen: true

site:
  longitude: 10.5
  latitude: 52.25
  camera_altitude: 250

design:
  rows: 4
  columns: 6
  panel_height: 1.5

export:
  dir: "out"

logging:
  level: "debug"
  log_file: "designer.log"
`

	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	// Load config
	cfg := Default()
	if err := loadFromFile(cfg, configPath); err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	// Verify values were loaded
	if cfg.Viewer.Width != 1920 {
		t.Errorf("expected width 1920, got %d", cfg.Viewer.Width)
	}
	if !cfg.Viewer.Fullscreen {
		t.Error("expected fullscreen to be true")
	}
	if cfg.Site.Latitude != 52.25 {
		t.Errorf("expected latitude 52.25, got %v", cfg.Site.Latitude)
	}
	if cfg.Design.Rows != 4 || cfg.Design.Columns != 6 {
		t.Errorf("expected 4x6, got %dx%d", cfg.Design.Rows, cfg.Design.Columns)
	}
	if cfg.Export.Dir != "out" {
		t.Errorf("expected export dir 'out', got %s", cfg.Export.Dir)
	}
	if cfg.Logging.LogFile != "designer.log" {
		t.Errorf("expected log file 'designer.log', got %s", cfg.Logging.LogFile)
	}

	// Untouched keys keep their defaults
	if cfg.Export.ArrayFile != "solar_panels.obj" {
		t.Errorf("expected default array file, got %s", cfg.Export.ArrayFile)
	}
	if cfg.Design.PanelWidth != 2 {
		t.Errorf("expected default panel width, got %v", cfg.Design.PanelWidth)
	}
}

func TestLoadFromFileInvalid(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "invalid.yaml")

	invalidYAML := `
design:
  rows: not a number
  invalid syntax here
`

	if err := os.WriteFile(configPath, []byte(invalidYAML), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg := Default()
	if err := loadFromFile(cfg, configPath); err == nil {
		t.Error("expected error loading invalid YAML, got nil")
	}
}

func TestLoadFromFileMissing(t *testing.T) {
	cfg := Default()
	if err := loadFromFile(cfg, "/nonexistent/path/config.yaml"); err == nil {
		t.Error("expected error loading missing file, got nil")
	}
}

func TestConfigDir(t *testing.T) {
	dir := ConfigDir()
	if dir == "" {
		t.Error("ConfigDir returned empty string")
	}
	if !filepath.IsAbs(dir) {
		t.Errorf("ConfigDir should return absolute path, got %s", dir)
	}
}

func TestFindConfigFile(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	tmpDir := t.TempDir()
	t.Chdir(tmpDir)

	if path := findConfigFile(); path != "" {
		t.Errorf("expected empty path when no config exists, got %s", path)
	}

	if err := os.WriteFile(filepath.Join(tmpDir, FileName), []byte("viewer:\n  width: 800\n"), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	if path := findConfigFile(); path != "./"+FileName {
		t.Errorf("expected ./%s, got %s", FileName, path)
	}
}

func TestApplyFlags(t *testing.T) {
	tests := []struct {
		name   string
		args   []string
		verify func(t *testing.T, cfg *Config)
	}{
		{
			name: "no flags",
			args: nil,
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Design.Rows != 2 {
					t.Errorf("expected default rows, got %d", cfg.Design.Rows)
				}
			},
		},
		{
			name: "debug flag",
			args: []string{"--debug"},
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Logging.Level != "debug" {
					t.Errorf("expected debug level, got %s", cfg.Logging.Level)
				}
			},
		},
		{
			name: "fullscreen then windowed",
			args: []string{"--fullscreen", "--windowed"},
			verify: func(t *testing.T, cfg *Config) {
				if !cfg.Viewer.Fullscreen {
					t.Error("fullscreen wins when both are set")
				}
			},
		},
		{
			name: "explicit zero rows",
			args: []string{"--rows", "0", "--columns=5"},
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Design.Rows != 0 {
					t.Errorf("expected rows 0 from flag, got %d", cfg.Design.Rows)
				}
				if cfg.Design.Columns != 5 {
					t.Errorf("expected columns 5, got %d", cfg.Design.Columns)
				}
			},
		},
		{
			name: "site and output",
			args: []string{"--lat=-33.9", "--lon", "151.2", "-o", "/tmp/out", "--panel-height", "0.8"},
			verify: func(t *testing.T, cfg *Config) {
				if cfg.Site.Latitude != -33.9 || cfg.Site.Longitude != 151.2 {
					t.Errorf("unexpected site %v, %v", cfg.Site.Longitude, cfg.Site.Latitude)
				}
				if cfg.Export.Dir != "/tmp/out" {
					t.Errorf("expected /tmp/out, got %s", cfg.Export.Dir)
				}
				if cfg.Design.PanelHeight != 0.8 {
					t.Errorf("expected panel height 0.8, got %v", cfg.Design.PanelHeight)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
			flags := BindFlags(fs)
			if err := fs.Parse(tt.args); err != nil {
				t.Fatalf("parse: %v", err)
			}

			cfg := Default()
			flags.apply(cfg)
			tt.verify(t, cfg)
		})
	}
}

func TestLoadPriority(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	yamlContent := `
viewer:
  width: 1600
  height: 900
`
	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags := BindFlags(fs)
	if err := fs.Parse([]string{"--config", configPath, "--width", "1920"}); err != nil {
		t.Fatalf("parse: %v", err)
	}

	cfg, err := Load(flags)
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	// Width should be from flag (1920), not file (1600)
	if cfg.Viewer.Width != 1920 {
		t.Errorf("expected width 1920 from flag, got %d", cfg.Viewer.Width)
	}
	// Height should be from file (900) since no flag override
	if cfg.Viewer.Height != 900 {
		t.Errorf("expected height 900 from file, got %d", cfg.Viewer.Height)
	}
}

func TestSaveTo(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", FileName)

	cfg := Default()
	cfg.Design.Rows = 7
	if err := cfg.SaveTo(path); err != nil {
		t.Fatalf("save: %v", err)
	}

	loaded := Default()
	if err := loadFromFile(loaded, path); err != nil {
		t.Fatalf("load: %v", err)
	}
	if loaded.Design.Rows != 7 {
		t.Errorf("expected rows 7 after reload, got %d", loaded.Design.Rows)
	}
}

func TestLoggingOptions(t *testing.T) {
	l := Default().Logging
	opts := l.Options()
	if opts.File.Path != "" {
		t.Errorf("expected no file output, got %q", opts.File.Path)
	}
	if opts.Console != os.Stderr {
		t.Error("expected console output on stderr")
	}

	l.LogFile = "designer.log"
	l.MaxBackups = 9
	l.MaxSizeMB = 0
	opts = l.Options()
	if opts.File.Path != "designer.log" || opts.File.MaxBackups != 9 {
		t.Errorf("unexpected file config %+v", opts.File)
	}
	if opts.File.MaxSizeMB != 50 {
		t.Errorf("expected default max size for zero, got %d", opts.File.MaxSizeMB)
	}
	if opts.Format != "console" {
		t.Errorf("expected console format, got %q", opts.Format)
	}
}
