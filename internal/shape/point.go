package shape

import (
	"math"

	"github.com/inamate/sketchpad/internal/canvas"
	"github.com/inamate/sketchpad/internal/config"
	"github.com/inamate/sketchpad/internal/geo"
)

// Point is a user placed point: a ring for grabbing it, a center dot and a
// coordinate label. The ring always sits on the point and shares its color.
type Point struct {
	position geo.Point
	color    string
	outer    *Circle
	surface  canvas.Surface
	theme    *config.Theme
}

func NewPoint(position geo.Point, color string, surface canvas.Surface, theme *config.Theme) *Point {
	return &Point{
		position: position,
		color:    color,
		outer:    NewCircle(position, theme.PointDiameter, color, surface),
		surface:  surface,
		theme:    theme,
	}
}

func (p *Point) Position() geo.Point { return p.position }
func (p *Point) Color() string       { return p.color }

func (p *Point) SetPosition(pos geo.Point) {
	p.position = pos
	p.outer.SetPosition(pos)
}

func (p *Point) SetColor(color string) {
	p.color = color
	p.outer.SetColor(color)
}

// IsHit reports whether t lies strictly inside the square of half-width
// PointDiameter centred on the point.
func (p *Point) IsHit(t geo.Point) bool {
	d := p.theme.PointDiameter
	return t.X > p.position.X-d && t.X < p.position.X+d &&
		t.Y > p.position.Y-d && t.Y < p.position.Y+d
}

func (p *Point) Render() {
	p.outer.Render()

	s := p.surface
	s.SetStrokeStyle(p.color)
	s.BeginPath()
	s.Arc(p.position.X, p.position.Y, 1, 0, 2*math.Pi, false)
	s.Stroke()

	offset := p.theme.PointDiameter
	s.SetStrokeStyle(p.theme.FontColor)
	s.SetFont(p.theme.Font)
	s.StrokeText(Label(p.position), p.position.X+offset, p.position.Y+offset)
}

// Label formats a position as "x, y".
func Label(pos geo.Point) string {
	return canvas.FormatNumber(pos.X) + ", " + canvas.FormatNumber(pos.Y)
}
