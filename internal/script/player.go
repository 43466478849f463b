package script

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/Faultbox/solar-roi/internal/engine/input"
	"github.com/Faultbox/solar-roi/pkg/geodesy"
	"github.com/Faultbox/solar-roi/pkg/math"
)

// Target receives the non-pointer steps.
type Target interface {
	BeginCapture()
	OnConfigChange(rows, columns int, panelHeight float64) error
}

// Projector maps a global point to window pixels.
type Projector interface {
	Project(p math.Vec3) (x, y float64, ok bool)
}

// Player publishes script steps on a Bus.
type Player struct {
	Bus       *input.Bus
	Target    Target
	Projector Projector
	// GroundHeight is the height used for geographic steps.
	GroundHeight float64
	Logger       *zap.Logger
}

// Play runs every step in order and stops at the first failing step.
func (p *Player) Play(s *Script) error {
	log := p.Logger
	if log == nil {
		log = zap.NewNop()
	}

	for i, step := range s.Steps {
		log.Debug("script step", zap.Int("step", i+1), zap.String("action", step.Action()))
		if err := p.step(step); err != nil {
			return fmt.Errorf("step %d (%s): %w", i+1, step.Action(), err)
		}
	}
	return nil
}

func (p *Player) step(s Step) error {
	switch {
	case s.Begin:
		p.Target.BeginCapture()
	case s.Click != nil:
		p.Bus.Publish(input.Click(s.Click[0], s.Click[1]))
	case s.Move != nil:
		p.Bus.Publish(input.Move(s.Move[0], s.Move[1]))
	case s.ClickAt != nil:
		x, y, err := p.project(s.ClickAt)
		if err != nil {
			return err
		}
		p.Bus.Publish(input.Click(x, y))
	case s.MoveAt != nil:
		x, y, err := p.project(s.MoveAt)
		if err != nil {
			return err
		}
		p.Bus.Publish(input.Move(x, y))
	case s.Configure != nil:
		c := s.Configure
		return p.Target.OnConfigChange(c.Rows, c.Columns, c.PanelHeight)
	default:
		return ErrInvalidStep
	}
	return nil
}

func (p *Player) project(lonLat []float64) (float64, float64, error) {
	if p.Projector == nil {
		return 0, 0, fmt.Errorf("geographic step without a camera")
	}
	pos := geodesy.WGS84.ToCartesian(geodesy.FromDegrees(lonLat[0], lonLat[1], p.GroundHeight))
	x, y, ok := p.Projector.Project(pos)
	if !ok {
		return 0, 0, fmt.Errorf("%.6f, %.6f is not in view", lonLat[0], lonLat[1])
	}
	return x, y, nil
}
