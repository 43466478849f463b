package capture

import (
	"fmt"

	"github.com/Faultbox/solar-roi/internal/design"
	"github.com/Faultbox/solar-roi/internal/engine/input"
	"github.com/Faultbox/solar-roi/internal/engine/scene"
	"github.com/Faultbox/solar-roi/pkg/math"
)

// StateKind names a capture state.
type StateKind int

const (
	StateInactive StateKind = iota
	StateIdle
	StateAwaitingWidth
	StateAwaitingLength
	StateComplete
)

// String returns the state name.
func (k StateKind) String() string {
	switch k {
	case StateInactive:
		return "inactive"
	case StateIdle:
		return "idle"
	case StateAwaitingWidth:
		return "awaiting-width"
	case StateAwaitingLength:
		return "awaiting-length"
	case StateComplete:
		return "complete"
	default:
		return "unknown"
	}
}

// state is one variant of the machine. enter acquires the state's
// subscriptions and preview; exit releases all of them.
type state interface {
	kind() StateKind
	enter(p *Protocol)
	exit()
}

// idle waits for the origin click.
type idle struct {
	click *input.Subscription
}

func (s *idle) kind() StateKind { return StateIdle }

func (s *idle) enter(p *Protocol) {
	s.click = p.ctx.Bus.Subscribe(input.EventPointerClick, func(e input.Event) {
		origin, ok := p.pick(e)
		if !ok {
			return
		}
		p.transition(&awaitingWidth{origin: origin})
	})
}

func (s *idle) exit() {
	s.click.Cancel()
}

// awaitingWidth previews a line from the origin to the pointer.
type awaitingWidth struct {
	origin  math.Vec3
	click   *input.Subscription
	move    *input.Subscription
	preview *scene.Arena
}

func (s *awaitingWidth) kind() StateKind { return StateAwaitingWidth }

func (s *awaitingWidth) enter(p *Protocol) {
	s.preview = scene.NewArena(p.ctx.Scene)
	s.move = p.ctx.Bus.Subscribe(input.EventPointerMove, func(e input.Event) {
		pt, ok := p.pick(e)
		if !ok {
			return
		}
		s.preview.Release()
		s.preview.Add(scene.Polyline{
			Points: []math.Vec3{s.origin, pt},
			Style:  PreviewLineStyle,
		})
	})
	s.click = p.ctx.Bus.Subscribe(input.EventPointerClick, func(e input.Event) {
		widthPoint, ok := p.pick(e)
		if !ok {
			return
		}
		if widthPoint.Distance(s.origin) < design.MinEdgeLength {
			p.fail(fmt.Errorf("%w: width click on the origin", design.ErrDegenerateRegion))
			return
		}
		p.transition(&awaitingLength{origin: s.origin, widthPoint: widthPoint})
	})
}

func (s *awaitingWidth) exit() {
	s.click.Cancel()
	s.move.Cancel()
	s.preview.Release()
}

// awaitingLength previews the rectangle the third click would produce.
type awaitingLength struct {
	origin     math.Vec3
	widthPoint math.Vec3
	click      *input.Subscription
	move       *input.Subscription
	preview    *scene.Arena
}

func (s *awaitingLength) kind() StateKind { return StateAwaitingLength }

func (s *awaitingLength) enter(p *Protocol) {
	s.preview = scene.NewArena(p.ctx.Scene)
	s.move = p.ctx.Bus.Subscribe(input.EventPointerMove, func(e input.Event) {
		pt, ok := p.pick(e)
		if !ok {
			return
		}
		s.preview.Release()
		ring, err := design.PreviewRing(s.origin, s.widthPoint, pt)
		if err != nil {
			// Pointer on the width line; nothing to show.
			return
		}
		s.preview.Add(scene.Polygon{Ring: ring, Style: PreviewRectStyle})
	})
	s.click = p.ctx.Bus.Subscribe(input.EventPointerClick, func(e input.Event) {
		third, ok := p.pick(e)
		if !ok {
			return
		}
		r, err := design.RegionFromClicks(s.origin, s.widthPoint, third)
		if err != nil {
			p.fail(err)
			return
		}
		p.finish(r)
	})
}

func (s *awaitingLength) exit() {
	s.click.Cancel()
	s.move.Cancel()
	s.preview.Release()
}

// complete holds the captured region. It listens to nothing.
type complete struct {
	region design.Region
}

func (s *complete) kind() StateKind { return StateComplete }

func (s *complete) enter(*Protocol) {}

func (s *complete) exit() {}
