// Package input defines the viewer's typed input events and the Bus that
// delivers them to subscribers.
package input

// EventType identifies the kind of input event.
type EventType int

const (
	EventNone EventType = iota
	EventQuit
	EventResize
	EventKeyDown
	EventKeyUp
	EventPointerMove
	EventPointerDown
	EventPointerUp
	// EventPointerClick is a left press and release without a drag.
	EventPointerClick
	EventWheel
)

var eventNames = map[EventType]string{
	EventNone:         "none",
	EventQuit:         "quit",
	EventResize:       "resize",
	EventKeyDown:      "key-down",
	EventKeyUp:        "key-up",
	EventPointerMove:  "pointer-move",
	EventPointerDown:  "pointer-down",
	EventPointerUp:    "pointer-up",
	EventPointerClick: "pointer-click",
	EventWheel:        "wheel",
}

// String returns the event type name.
func (t EventType) String() string {
	if s, ok := eventNames[t]; ok {
		return s
	}
	return "unknown"
}

// Button is a pointer button.
type Button uint8

const (
	ButtonNone Button = iota
	ButtonLeft
	ButtonMiddle
	ButtonRight
)

// Key is a host-independent key code. Only the keys the viewers bind are
// named; everything else arrives as KeyUnknown.
type Key int

const (
	KeyUnknown Key = iota
	KeyEscape
	KeyR
	KeyE
	KeyC
	KeyPlus
	KeyMinus
	KeyLeftBracket
	KeyRightBracket
	KeyPageUp
	KeyPageDown
	KeyP
)

// Event is a processed input event. Positions are window pixels with the
// origin at the top-left corner.
type Event struct {
	Type   EventType
	X, Y   float64
	DX, DY float64 // pointer motion since the previous move event
	Button Button
	Held   Button // button held during a move, ButtonNone if none
	Key    Key
	Wheel  float64
	Width  int
	Height int
}

// Click builds a pointer-click event.
func Click(x, y float64) Event {
	return Event{Type: EventPointerClick, X: x, Y: y, Button: ButtonLeft}
}

// Move builds a pointer-move event.
func Move(x, y float64) Event {
	return Event{Type: EventPointerMove, X: x, Y: y}
}
