// Package sdlinput translates SDL2 events into input.Event values.
package sdlinput

import (
	"github.com/veandco/go-sdl2/sdl"

	"github.com/Faultbox/solar-roi/internal/engine/input"
)

// clickSlop is how far, in pixels, the pointer may travel between press
// and release for the pair to still count as a click.
const clickSlop = 4

// Input polls SDL and converts its events into input events.
type Input struct {
	events []input.Event

	pressX, pressY float64
	pressed        bool
	held           input.Button
	lastX, lastY   float64
}

// New creates a new input handler.
func New() *Input {
	return &Input{
		events: make([]input.Event, 0, 16),
	}
}

// Update polls SDL events and converts them to input events.
// Returns true if the viewer should quit.
func (i *Input) Update() bool {
	i.events = i.events[:0]

	for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
		switch e := event.(type) {
		case *sdl.QuitEvent:
			i.events = append(i.events, input.Event{Type: input.EventQuit})
			return true

		case *sdl.WindowEvent:
			if e.Event == sdl.WINDOWEVENT_RESIZED {
				i.events = append(i.events, input.Event{
					Type:   input.EventResize,
					Width:  int(e.Data1),
					Height: int(e.Data2),
				})
			}

		case *sdl.KeyboardEvent:
			typ := input.EventKeyDown
			if e.Type == sdl.KEYUP {
				typ = input.EventKeyUp
			}
			i.events = append(i.events, input.Event{Type: typ, Key: translateKey(e.Keysym.Scancode)})

		case *sdl.MouseMotionEvent:
			x, y := float64(e.X), float64(e.Y)
			i.events = append(i.events, input.Event{
				Type: input.EventPointerMove,
				X:    x,
				Y:    y,
				DX:   float64(e.XRel),
				DY:   float64(e.YRel),
				Held: i.held,
			})
			i.lastX, i.lastY = x, y

		case *sdl.MouseButtonEvent:
			i.handleButton(e)

		case *sdl.MouseWheelEvent:
			i.events = append(i.events, input.Event{
				Type:  input.EventWheel,
				X:     i.lastX,
				Y:     i.lastY,
				Wheel: float64(e.Y),
			})
		}
	}

	return false
}

func (i *Input) handleButton(e *sdl.MouseButtonEvent) {
	x, y := float64(e.X), float64(e.Y)
	button := translateButton(e.Button)

	if e.Type == sdl.MOUSEBUTTONDOWN {
		i.held = button
		if button == input.ButtonLeft {
			i.pressed = true
			i.pressX, i.pressY = x, y
		}
		i.events = append(i.events, input.Event{Type: input.EventPointerDown, X: x, Y: y, Button: button})
		return
	}

	i.held = input.ButtonNone
	i.events = append(i.events, input.Event{Type: input.EventPointerUp, X: x, Y: y, Button: button})
	if button == input.ButtonLeft && i.pressed {
		i.pressed = false
		dx, dy := x-i.pressX, y-i.pressY
		if dx*dx+dy*dy <= clickSlop*clickSlop {
			i.events = append(i.events, input.Click(x, y))
		}
	}
}

// Events returns the events from the last Update.
func (i *Input) Events() []input.Event {
	return i.events
}

// IsKeyPressed checks if a specific key was pressed this frame.
func (i *Input) IsKeyPressed(k input.Key) bool {
	for _, e := range i.events {
		if e.Type == input.EventKeyDown && e.Key == k {
			return true
		}
	}
	return false
}

func translateButton(b uint8) input.Button {
	switch b {
	case sdl.BUTTON_LEFT:
		return input.ButtonLeft
	case sdl.BUTTON_MIDDLE:
		return input.ButtonMiddle
	case sdl.BUTTON_RIGHT:
		return input.ButtonRight
	}
	return input.ButtonNone
}

func translateKey(sc sdl.Scancode) input.Key {
	switch sc {
	case sdl.SCANCODE_ESCAPE:
		return input.KeyEscape
	case sdl.SCANCODE_R:
		return input.KeyR
	case sdl.SCANCODE_E:
		return input.KeyE
	case sdl.SCANCODE_C:
		return input.KeyC
	case sdl.SCANCODE_P:
		return input.KeyP
	case sdl.SCANCODE_EQUALS, sdl.SCANCODE_KP_PLUS:
		return input.KeyPlus
	case sdl.SCANCODE_MINUS, sdl.SCANCODE_KP_MINUS:
		return input.KeyMinus
	case sdl.SCANCODE_LEFTBRACKET:
		return input.KeyLeftBracket
	case sdl.SCANCODE_RIGHTBRACKET:
		return input.KeyRightBracket
	case sdl.SCANCODE_PAGEUP:
		return input.KeyPageUp
	case sdl.SCANCODE_PAGEDOWN:
		return input.KeyPageDown
	}
	return input.KeyUnknown
}
