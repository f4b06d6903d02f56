package session

import (
	"encoding/json"
	"fmt"

	"github.com/inamate/sketchpad/internal/canvas"
	"github.com/inamate/sketchpad/internal/sketch"
)

type Message struct {
	Type     string          `json:"type"`
	SketchID string          `json:"sketchId,omitempty"`
	ClientID string          `json:"clientId,omitempty"`
	Payload  json.RawMessage `json:"payload,omitempty"`
}

type PointerPayload struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

type ResizePayload struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

type WelcomePayload struct {
	SketchID string `json:"sketchId"`
	ClientID string `json:"clientId"`
}

// FramePayload is everything a client needs to draw the sketch: the commands
// to run against a 2D canvas context and the resulting state.
type FramePayload struct {
	Commands []canvas.Command `json:"commands"`
	State    sketch.State     `json:"state"`
}

type ErrorPayload struct {
	Message string `json:"message"`
}

const (
	// Client to server
	TypePointerDown = "pointer.down"
	TypePointerMove = "pointer.move"
	TypePointerUp   = "pointer.up"
	TypeReset       = "sketch.reset"
	TypeResize      = "sketch.resize"

	// Server to client
	TypeWelcome = "welcome"
	TypeFrame   = "frame"
	TypeError   = "error"
)

// Event converts a client message into the sketch event it stands for.
func (m *Message) Event() (sketch.Event, error) {
	switch m.Type {
	case TypePointerDown, TypePointerMove:
		var p PointerPayload
		if err := json.Unmarshal(m.Payload, &p); err != nil {
			return sketch.Event{}, fmt.Errorf("invalid %s payload: %w", m.Type, err)
		}
		t := sketch.EventDown
		if m.Type == TypePointerMove {
			t = sketch.EventMove
		}
		return sketch.Event{Type: t, X: p.X, Y: p.Y}, nil
	case TypePointerUp:
		return sketch.Event{Type: sketch.EventUp}, nil
	case TypeReset:
		return sketch.Event{Type: sketch.EventReset}, nil
	case TypeResize:
		var p ResizePayload
		if err := json.Unmarshal(m.Payload, &p); err != nil {
			return sketch.Event{}, fmt.Errorf("invalid %s payload: %w", m.Type, err)
		}
		e := sketch.Event{Type: sketch.EventResize, Width: p.Width, Height: p.Height}
		if err := e.Validate(); err != nil {
			return sketch.Event{}, err
		}
		return e, nil
	default:
		return sketch.Event{}, fmt.Errorf("unknown message type: %s", m.Type)
	}
}

func newMessage(typ string, payload interface{}) *Message {
	data, _ := json.Marshal(payload)
	return &Message{Type: typ, Payload: data}
}

func errorMessage(err error) *Message {
	return newMessage(TypeError, ErrorPayload{Message: err.Error()})
}
