package shape

import (
	"math"

	"github.com/inamate/sketchpad/internal/canvas"
	"github.com/inamate/sketchpad/internal/geo"
)

type Circle struct {
	position geo.Point
	radius   float64
	color    string
	surface  canvas.Surface
}

func NewCircle(position geo.Point, radius float64, color string, surface canvas.Surface) *Circle {
	return &Circle{
		position: position,
		radius:   radius,
		color:    color,
		surface:  surface,
	}
}

func (c *Circle) Position() geo.Point     { return c.position }
func (c *Circle) SetPosition(p geo.Point) { c.position = p }
func (c *Circle) Color() string           { return c.color }
func (c *Circle) SetColor(color string)   { c.color = color }
func (c *Circle) Radius() float64         { return c.radius }
func (c *Circle) SetRadius(r float64)     { c.radius = r }

// Render strokes the outline with a 1px line.
func (c *Circle) Render() {
	s := c.surface
	s.BeginPath()
	s.Arc(c.position.X, c.position.Y, c.radius, 0, 2*math.Pi, false)
	s.ClosePath()

	s.SetStrokeStyle(c.color)
	s.SetLineWidth(1)
	s.Stroke()
}
