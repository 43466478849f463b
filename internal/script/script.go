// Package script replays recorded design sessions without a window. A
// script is a YAML list of steps: pointer events in window pixels or at
// geographic positions, capture restarts and array configuration changes.
package script

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/Faultbox/solar-roi/internal/design"
)

// ErrInvalidStep is returned for steps that name no action or several.
var ErrInvalidStep = errors.New("invalid script step")

// Script is a recorded session.
type Script struct {
	Name     string    `yaml:"name"`
	Site     *Site     `yaml:"site,omitempty"`
	Viewport *Viewport `yaml:"viewport,omitempty"`
	Steps    []Step    `yaml:"steps"`
}

// Site overrides the configured camera site.
type Site struct {
	Longitude      float64 `yaml:"longitude"`
	Latitude       float64 `yaml:"latitude"`
	Height         float64 `yaml:"height"`
	CameraAltitude float64 `yaml:"camera_altitude"`
}

// Viewport overrides the configured window size.
type Viewport struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// Step is one action. Exactly one field is set.
type Step struct {
	Begin     bool                `yaml:"begin,omitempty"`
	Click     []float64           `yaml:"click,omitempty"`    // [x, y] pixels
	Move      []float64           `yaml:"move,omitempty"`     // [x, y] pixels
	ClickAt   []float64           `yaml:"click_at,omitempty"` // [lon, lat] degrees
	MoveAt    []float64           `yaml:"move_at,omitempty"`  // [lon, lat] degrees
	Configure *design.ArrayConfig `yaml:"configure,omitempty"`
}

// Action names the action of a step.
func (s Step) Action() string {
	switch {
	case s.Begin:
		return "begin"
	case s.Click != nil:
		return "click"
	case s.Move != nil:
		return "move"
	case s.ClickAt != nil:
		return "click_at"
	case s.MoveAt != nil:
		return "move_at"
	case s.Configure != nil:
		return "configure"
	}
	return ""
}

func (s Step) validate() error {
	set := 0
	if s.Begin {
		set++
	}
	for _, pair := range [][]float64{s.Click, s.Move, s.ClickAt, s.MoveAt} {
		if pair == nil {
			continue
		}
		set++
		if len(pair) != 2 {
			return fmt.Errorf("%w: %s needs two numbers, got %d", ErrInvalidStep, s.Action(), len(pair))
		}
	}
	if s.Configure != nil {
		set++
	}
	switch set {
	case 0:
		return fmt.Errorf("%w: no action", ErrInvalidStep)
	case 1:
		return nil
	default:
		return fmt.Errorf("%w: %d actions in one step", ErrInvalidStep, set)
	}
}

// Parse decodes and validates a script.
func Parse(data []byte) (*Script, error) {
	var s Script
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parsing script: %w", err)
	}
	for i, step := range s.Steps {
		if err := step.validate(); err != nil {
			return nil, fmt.Errorf("step %d: %w", i+1, err)
		}
	}
	return &s, nil
}

// Load reads and parses a script file.
func Load(path string) (*Script, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	s, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if s.Name == "" {
		s.Name = path
	}
	return s, nil
}
