package sketch

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/inamate/sketchpad/internal/canvas"
)

type EventType string

const (
	EventDown   EventType = "down"
	EventMove   EventType = "move"
	EventUp     EventType = "up"
	EventReset  EventType = "reset"
	EventResize EventType = "resize"
)

// Event is one recorded input. X and Y are used by down and move, Width and
// Height by resize.
type Event struct {
	Type   EventType `json:"type"`
	X      float64   `json:"x,omitempty"`
	Y      float64   `json:"y,omitempty"`
	Width  float64   `json:"width,omitempty"`
	Height float64   `json:"height,omitempty"`
}

// Script is a sequence of events replayed in order.
type Script []Event

var (
	ErrUnknownEvent = errors.New("unknown event type")
	ErrTooLarge     = fmt.Errorf("size exceeds %dx%d", canvas.MaxSize, canvas.MaxSize)
)

func (e Event) Validate() error {
	switch e.Type {
	case EventDown, EventMove, EventUp, EventReset:
		return nil
	case EventResize:
		if e.Width < 0 || e.Height < 0 {
			return fmt.Errorf("resize to %gx%g: negative size", e.Width, e.Height)
		}
		if e.Width > canvas.MaxSize || e.Height > canvas.MaxSize {
			return fmt.Errorf("resize to %gx%g: %w", e.Width, e.Height, ErrTooLarge)
		}
		return nil
	default:
		return fmt.Errorf("%w %q", ErrUnknownEvent, e.Type)
	}
}

// Apply delivers the event to l.
func (e Event) Apply(l Listener) {
	switch e.Type {
	case EventDown:
		l.PointerDown(e.X, e.Y)
	case EventMove:
		l.PointerMove(e.X, e.Y)
	case EventUp:
		l.PointerUp()
	case EventReset:
		l.Reset()
	case EventResize:
		l.Resize(e.Width, e.Height)
	}
}

// ParseScript decodes a JSON array of events.
func ParseScript(r io.Reader) (Script, error) {
	var s Script
	if err := json.NewDecoder(r).Decode(&s); err != nil {
		return nil, fmt.Errorf("decode script: %w", err)
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s Script) Validate() error {
	for i, e := range s {
		if err := e.Validate(); err != nil {
			return fmt.Errorf("event %d: %w", i, err)
		}
	}
	return nil
}

// Replay delivers every event of script to l in order.
func Replay(script Script, l Listener) {
	for _, e := range script {
		e.Apply(l)
	}
}

// Click is a press and release at (x, y).
func Click(x, y float64) Script {
	return Script{
		{Type: EventDown, X: x, Y: y},
		{Type: EventUp},
	}
}

// Drag presses at from, moves to to and releases.
func Drag(fromX, fromY, toX, toY float64) Script {
	return Script{
		{Type: EventDown, X: fromX, Y: fromY},
		{Type: EventMove, X: toX, Y: toY},
		{Type: EventUp},
	}
}
