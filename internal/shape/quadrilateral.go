package shape

import (
	"strconv"

	"github.com/inamate/sketchpad/internal/canvas"
	"github.com/inamate/sketchpad/internal/config"
	"github.com/inamate/sketchpad/internal/geo"
)

// Quadrilateral is the parallelogram A, B, C, D where D was derived from the
// other three. Area and Centroid rely on that construction.
type Quadrilateral struct {
	vertices []geo.Point
	color    string
	surface  canvas.Surface
	theme    *config.Theme
}

func NewQuadrilateral(vertices []geo.Point, color string, surface canvas.Surface, theme *config.Theme) *Quadrilateral {
	q := &Quadrilateral{
		color:   color,
		surface: surface,
		theme:   theme,
	}
	q.SetVertices(vertices)
	return q
}

// SetVertices replaces the vertex list. It must hold A, B, C, D in that order;
// nothing is checked.
func (q *Quadrilateral) SetVertices(vertices []geo.Point) {
	q.vertices = append(q.vertices[:0], vertices...)
}

func (q *Quadrilateral) Vertices() []geo.Point {
	out := make([]geo.Point, len(q.vertices))
	copy(out, q.vertices)
	return out
}

func (q *Quadrilateral) Color() string         { return q.color }
func (q *Quadrilateral) SetColor(color string) { q.color = color }

func (q *Quadrilateral) Area() int {
	return geo.QuadrilateralArea(q.vertices)
}

// Centroid is the midpoint of the A-C diagonal.
func (q *Quadrilateral) Centroid() geo.Point {
	return geo.Midpoint(q.vertices[0], q.vertices[2])
}

func (q *Quadrilateral) Render() {
	s := q.surface
	s.BeginPath()
	for i, v := range q.vertices {
		if i == 0 {
			s.MoveTo(v.X, v.Y)
			continue
		}
		s.LineTo(v.X, v.Y)
	}
	s.ClosePath()
	s.SetStrokeStyle(q.color)
	s.Stroke()

	c := q.Centroid()
	s.SetStrokeStyle(q.theme.FontColor)
	s.SetFont(q.theme.Font)
	s.StrokeText(Label(c), c.X, c.Y)
	s.StrokeText("Area is: "+strconv.Itoa(q.Area()), c.X, c.Y+q.theme.LabelLineHeight)
}
