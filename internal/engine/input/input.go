// Package input turns SDL2 events into the camera and picking controls of
// the demo.
package input

import (
	"github.com/veandco/go-sdl2/sdl"
)

// EventType classifies an Event.
type EventType int

const (
	EventNone EventType = iota
	EventQuit
	EventWindowResize
	EventKeyDown
	EventKeyUp
	EventMouseMove
	EventMouseDown
	EventMouseUp
	EventMouseWheel
)

// Event is one translated SDL event.
type Event struct {
	Type EventType
	Key  sdl.Scancode
	// Width and Height are set on resizes.
	Width, Height int
	// MouseX and MouseY are window coordinates from the top-left corner.
	MouseX, MouseY int
	// DeltaX and DeltaY are relative mouse motion or wheel scroll.
	DeltaX, DeltaY int
	Button         uint8
}

// Input collects the events of one frame and tracks held keys and buttons.
type Input struct {
	events  []Event
	keys    map[sdl.Scancode]bool
	buttons map[uint8]bool
	quit    bool
}

// New creates an input handler with nothing held.
func New() *Input {
	return &Input{
		events:  make([]Event, 0, 16),
		keys:    make(map[sdl.Scancode]bool),
		buttons: make(map[uint8]bool),
	}
}

// Update drains the SDL queue into this frame's events. It returns true
// once a quit was requested.
func (in *Input) Update() bool {
	in.events = in.events[:0]
	for ev := sdl.PollEvent(); ev != nil; ev = sdl.PollEvent() {
		in.Feed(ev)
	}
	return in.quit
}

// Feed translates one SDL event. Key repeats are dropped.
func (in *Input) Feed(ev sdl.Event) {
	var out Event
	switch e := ev.(type) {
	case *sdl.QuitEvent:
		in.quit = true
		out = Event{Type: EventQuit}

	case *sdl.WindowEvent:
		if e.Event != sdl.WINDOWEVENT_RESIZED {
			return
		}
		out = Event{Type: EventWindowResize, Width: int(e.Data1), Height: int(e.Data2)}

	case *sdl.KeyboardEvent:
		if e.Repeat != 0 {
			return
		}
		down := e.Type == sdl.KEYDOWN
		in.keys[e.Keysym.Scancode] = down
		out = Event{Type: EventKeyUp, Key: e.Keysym.Scancode}
		if down {
			out.Type = EventKeyDown
		}

	case *sdl.MouseMotionEvent:
		out = Event{
			Type:   EventMouseMove,
			MouseX: int(e.X),
			MouseY: int(e.Y),
			DeltaX: int(e.XRel),
			DeltaY: int(e.YRel),
		}

	case *sdl.MouseButtonEvent:
		down := e.Type == sdl.MOUSEBUTTONDOWN
		in.buttons[e.Button] = down
		out = Event{Type: EventMouseUp, MouseX: int(e.X), MouseY: int(e.Y), Button: e.Button}
		if down {
			out.Type = EventMouseDown
		}

	case *sdl.MouseWheelEvent:
		out = Event{Type: EventMouseWheel, DeltaX: int(e.X), DeltaY: int(e.Y)}

	default:
		return
	}
	in.events = append(in.events, out)
}

// Events returns the events of the last Update.
func (in *Input) Events() []Event {
	return in.events
}

// IsKeyPressed reports whether key went down this frame.
func (in *Input) IsKeyPressed(key sdl.Scancode) bool {
	for _, e := range in.events {
		if e.Type == EventKeyDown && e.Key == key {
			return true
		}
	}
	return false
}

// IsKeyHeld reports whether key is down.
func (in *Input) IsKeyHeld(key sdl.Scancode) bool { return in.keys[key] }

// IsButtonHeld reports whether a mouse button is down.
func (in *Input) IsButtonHeld(button uint8) bool { return in.buttons[button] }
