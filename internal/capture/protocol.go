// Package capture implements the three-click region capture.
//
// The first click sets the origin, the second the far end of the width
// edge, and the third the length of the rectangle. Each state owns the
// input subscriptions and preview shapes it needs; leaving the state
// cancels and removes them.
package capture

import (
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Faultbox/solar-roi/internal/design"
	"github.com/Faultbox/solar-roi/internal/engine/input"
	"github.com/Faultbox/solar-roi/internal/engine/scene"
	"github.com/Faultbox/solar-roi/pkg/math"
)

// Picker resolves a screen position to a point on the surface.
// ok is false when the position shows no surface.
type Picker interface {
	Pick(x, y float64) (p math.Vec3, ok bool)
}

// Preview styles.
var (
	PreviewLineStyle = scene.Style{Outline: scene.Yellow, Width: 2}
	PreviewRectStyle = scene.Style{Fill: scene.Yellow.WithAlpha(0.2), Outline: scene.Yellow, Width: 2}
)

// Context carries the collaborators a Protocol works against.
type Context struct {
	Bus    *input.Bus
	Scene  scene.Scene
	Picker Picker
	Logger *zap.Logger
}

// Protocol is the capture state machine. It is driven by the events
// published on the context's Bus and must be used from the goroutine that
// publishes them.
type Protocol struct {
	ctx     Context
	log     *zap.Logger
	current state
	session uuid.UUID

	// OnComplete receives the finished region. A returned error aborts
	// the capture as if the region were degenerate.
	OnComplete func(r design.Region) error
	// OnError receives geometry errors that aborted a capture.
	OnError func(err error)
}

// New creates an inactive protocol. Call Begin to start capturing.
func New(ctx Context) *Protocol {
	log := ctx.Logger
	if log == nil {
		log = zap.NewNop()
	}
	return &Protocol{ctx: ctx, log: log}
}

// Begin starts a new capture session. Any session in progress is torn
// down first: its subscriptions are cancelled and its preview removed.
func (p *Protocol) Begin() {
	p.session = uuid.New()
	p.log.Info("capture started", zap.String("session", p.session.String()))
	p.transition(&idle{})
}

// Stop tears down the current session and leaves the protocol inactive.
func (p *Protocol) Stop() {
	p.transition(nil)
}

// State returns the current state.
func (p *Protocol) State() StateKind {
	if p.current == nil {
		return StateInactive
	}
	return p.current.kind()
}

// Session returns the current session ID, or "" before the first Begin.
func (p *Protocol) Session() string {
	if p.session == uuid.Nil {
		return ""
	}
	return p.session.String()
}

// Region returns the captured region once the protocol is complete.
func (p *Protocol) Region() (design.Region, bool) {
	if c, ok := p.current.(*complete); ok {
		return c.region, true
	}
	return design.Region{}, false
}

func (p *Protocol) transition(next state) {
	if p.current != nil {
		p.current.exit()
	}
	from := p.State()
	p.current = next
	if next != nil {
		next.enter(p)
	}
	p.log.Debug("capture transition",
		zap.String("session", p.Session()),
		zap.Stringer("from", from),
		zap.Stringer("to", p.State()))
}

// fail aborts the session back to idle and reports err.
func (p *Protocol) fail(err error) {
	p.log.Warn("capture aborted", zap.String("session", p.Session()), zap.Error(err))
	p.transition(&idle{})
	if p.OnError != nil {
		p.OnError(err)
	}
}

func (p *Protocol) finish(r design.Region) {
	p.transition(&complete{region: r})
	p.log.Info("capture complete",
		zap.String("session", p.Session()),
		zap.Float64("width_m", r.Width()),
		zap.Float64("length_m", r.Length()))

	if p.OnComplete == nil {
		return
	}
	if err := p.OnComplete(r); err != nil {
		p.fail(err)
	}
}

// pick resolves an event position, logging misses.
func (p *Protocol) pick(e input.Event) (math.Vec3, bool) {
	pt, ok := p.ctx.Picker.Pick(e.X, e.Y)
	if !ok && e.Type == input.EventPointerClick {
		p.log.Debug("click missed the surface", zap.Float64("x", e.X), zap.Float64("y", e.Y))
	}
	return pt, ok
}
