// Package sketch is the sketchpad controller. It owns the placed points and
// the shapes derived from them, turns pointer events into state changes and
// redraws the whole surface after every change.
//
// A Sketch is not safe for concurrent use. Every event must be delivered from
// the one goroutine (or JS event loop) that owns it.
package sketch

import (
	"log/slog"

	"github.com/inamate/sketchpad/internal/canvas"
	"github.com/inamate/sketchpad/internal/config"
	"github.com/inamate/sketchpad/internal/geo"
	"github.com/inamate/sketchpad/internal/shape"
)

// MaxPoints is how many points a user places before the parallelogram is
// completed.
const MaxPoints = 3

// Listener receives input events.
type Listener interface {
	PointerDown(x, y float64)
	PointerMove(x, y float64)
	PointerUp()
	Reset()
	Resize(w, h float64)
}

// EventSource delivers input events to a Listener.
type EventSource interface {
	Listen(l Listener)
}

type Option func(*Sketch)

func WithLogger(l *slog.Logger) Option {
	return func(s *Sketch) {
		s.log = l
	}
}

type Sketch struct {
	surface canvas.Surface
	theme   *config.Theme
	log     *slog.Logger

	points   []*shape.Point
	dragging *shape.Point

	// quad and circle exist exactly when len(points) == MaxPoints.
	quad   *shape.Quadrilateral
	circle *shape.Circle
}

// New creates a sketch drawing on surface, subscribes it to events (which may
// be nil when the caller delivers events itself) and draws the empty sketch.
func New(surface canvas.Surface, events EventSource, theme *config.Theme, opts ...Option) *Sketch {
	s := &Sketch{
		surface: surface,
		theme:   theme,
		log:     slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}

	if events != nil {
		events.Listen(s)
	}
	s.Render()
	return s
}

var _ Listener = (*Sketch)(nil)

// PointerDown grabs the first point under (x, y), or places a new one if
// fewer than MaxPoints exist.
func (s *Sketch) PointerDown(x, y float64) {
	at := geo.NewPoint(x, y)

	for i, p := range s.points {
		if p.IsHit(at) {
			s.dragging = p
			p.SetColor(s.theme.SelectedColor)
			s.log.Debug("point grabbed", "index", i)
			break
		}
	}

	if s.dragging == nil && len(s.points) < MaxPoints {
		s.points = append(s.points, shape.NewPoint(at, s.theme.PointColor, s.surface, s.theme))
		s.log.Debug("point placed", "x", x, "y", y, "count", len(s.points))
	}

	if len(s.points) == MaxPoints && (s.quad == nil || s.circle == nil) {
		s.updateDerived()
	}

	s.Render()
}

// PointerMove drags the grabbed point, if any, and recomputes the derived
// shapes.
func (s *Sketch) PointerMove(x, y float64) {
	if s.dragging == nil {
		return
	}

	s.dragging.SetPosition(geo.NewPoint(x, y))
	s.updateDerived()
	s.Render()
}

// PointerUp releases the grabbed point.
func (s *Sketch) PointerUp() {
	if s.dragging == nil {
		return
	}

	s.dragging.SetColor(s.theme.PointColor)
	s.dragging = nil
	s.Render()
}

// Reset forgets every point and shape and clears the surface.
func (s *Sketch) Reset() {
	s.points = nil
	s.dragging = nil
	s.quad = nil
	s.circle = nil

	canvas.Clear(s.surface)
	s.log.Debug("sketch reset")
}

func (s *Sketch) Resize(w, h float64) {
	s.surface.SetSize(w, h)
	s.Render()
}

// updateDerived builds or updates the parallelogram and its equal-area circle
// from the placed points. It does nothing until all points are placed.
func (s *Sketch) updateDerived() {
	if len(s.points) < MaxPoints {
		return
	}

	a, b, c := s.points[0].Position(), s.points[1].Position(), s.points[2].Position()
	vertices := []geo.Point{a, b, c, geo.FourthVertex(a, b, c)}

	if s.quad != nil {
		s.quad.SetVertices(vertices)
	} else {
		s.quad = shape.NewQuadrilateral(vertices, s.theme.QuadColor, s.surface, s.theme)
	}

	radius := geo.RadiusFromArea(float64(s.quad.Area()))
	center := s.quad.Centroid()

	if s.circle != nil {
		s.circle.SetPosition(center)
		s.circle.SetRadius(radius)
	} else {
		s.circle = shape.NewCircle(center, radius, s.theme.CircleColor, s.surface)
	}
}

// Render clears the surface and draws the points, the parallelogram and the
// circle, in that order.
func (s *Sketch) Render() {
	canvas.Clear(s.surface)

	for _, p := range s.points {
		p.Render()
	}
	if s.quad != nil {
		s.quad.Render()
	}
	if s.circle != nil {
		s.circle.Render()
	}
}
