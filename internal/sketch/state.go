package sketch

import (
	"fmt"

	"github.com/inamate/sketchpad/internal/geo"
)

type Mode int

const (
	Empty Mode = iota
	Placing
	Complete
	Dragging
)

func (m Mode) String() string {
	switch m {
	case Empty:
		return "empty"
	case Placing:
		return "placing"
	case Complete:
		return "complete"
	case Dragging:
		return "dragging"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

func (m Mode) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

func (s *Sketch) Mode() Mode {
	switch {
	case s.dragging != nil:
		return Dragging
	case len(s.points) == 0:
		return Empty
	case len(s.points) < MaxPoints:
		return Placing
	default:
		return Complete
	}
}

// Vec is a point on the wire.
type Vec struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

func vec(p geo.Point) Vec {
	return Vec{X: p.X, Y: p.Y}
}

// State is a read-only snapshot of a sketch.
type State struct {
	Mode     Mode    `json:"mode"`
	Width    float64 `json:"width"`
	Height   float64 `json:"height"`
	Points   []Vec   `json:"points"`
	Dragging int     `json:"dragging"` // index into Points, -1 when idle
	Derived  *Vec    `json:"derived,omitempty"`
	Centroid *Vec    `json:"centroid,omitempty"`
	Area     int     `json:"area"`
	Radius   float64 `json:"radius"`
}

func (s *Sketch) State() State {
	w, h := s.surface.Size()
	st := State{
		Mode:     s.Mode(),
		Width:    w,
		Height:   h,
		Points:   make([]Vec, 0, len(s.points)),
		Dragging: -1,
	}
	for i, p := range s.points {
		st.Points = append(st.Points, vec(p.Position()))
		if p == s.dragging {
			st.Dragging = i
		}
	}
	if s.quad != nil {
		d := vec(s.quad.Vertices()[3])
		c := vec(s.quad.Centroid())
		st.Derived = &d
		st.Centroid = &c
		st.Area = s.quad.Area()
	}
	if s.circle != nil {
		st.Radius = s.circle.Radius()
	}
	return st
}
