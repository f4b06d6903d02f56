package canvas

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/jbeda/geom"

	"github.com/inamate/sketchpad/internal/color"
	"github.com/inamate/sketchpad/internal/geo"
)

// SVG is a Surface that writes an SVG document. Strokes become <path>
// elements and stroked text becomes <text> elements.
type SVG struct {
	width, height float64

	stroke    string
	lineWidth float64
	font      string

	path       strings.Builder
	start, cur geo.Point
	hasCurrent bool

	body bytes.Buffer
}

func NewSVG(w, h float64) *SVG {
	return &SVG{
		width:     clampSide(w),
		height:    clampSide(h),
		stroke:    "#000000",
		lineWidth: 1,
		font:      "10px sans-serif",
	}
}

func (s *SVG) Size() (float64, float64) {
	return s.width, s.height
}

func (s *SVG) SetSize(w, h float64) {
	s.width, s.height = clampSide(w), clampSide(h)
	s.body.Reset()
	s.BeginPath()
}

func (s *SVG) ClearRect(x, y, w, h float64) {
	if coversSurface(x, y, w, h, s.width, s.height) {
		s.body.Reset()
		return
	}
	fmt.Fprintf(&s.body, "<rect x='%g' y='%g' width='%g' height='%g' fill='white'/>\n", x, y, w, h)
}

func (s *SVG) BeginPath() {
	s.path.Reset()
	s.hasCurrent = false
}

func (s *SVG) MoveTo(x, y float64) {
	fmt.Fprintf(&s.path, "M%g,%g ", x, y)
	s.start = geo.NewPoint(x, y)
	s.cur = s.start
	s.hasCurrent = true
}

func (s *SVG) LineTo(x, y float64) {
	if !s.hasCurrent {
		s.MoveTo(x, y)
		return
	}
	fmt.Fprintf(&s.path, "L%g,%g ", x, y)
	s.cur = geo.NewPoint(x, y)
}

func (s *SVG) Arc(x, y, r, start, end float64, ccw bool) {
	sweep := arcSweep(start, end, ccw)
	from := geo.NewPoint(x+r*math.Cos(start), y+r*math.Sin(start))
	if s.hasCurrent {
		s.LineTo(from.X, from.Y)
	} else {
		s.MoveTo(from.X, from.Y)
	}

	sweepFlag := 1
	if sweep < 0 {
		sweepFlag = 0
	}
	// An SVG arc cannot close on itself, so a full turn is two half turns.
	if math.Abs(sweep) >= 2*math.Pi {
		mid := geo.NewPoint(x+r*math.Cos(start+math.Pi), y+r*math.Sin(start+math.Pi))
		fmt.Fprintf(&s.path, "A%g,%g 0 0,%d %g,%g ", r, r, sweepFlag, mid.X, mid.Y)
		fmt.Fprintf(&s.path, "A%g,%g 0 0,%d %g,%g ", r, r, sweepFlag, from.X, from.Y)
		s.cur = from
		return
	}

	to := geo.NewPoint(x+r*math.Cos(start+sweep), y+r*math.Sin(start+sweep))
	largeArc := 0
	if math.Abs(sweep) > math.Pi {
		largeArc = 1
	}
	fmt.Fprintf(&s.path, "A%g,%g 0 %d,%d %g,%g ", r, r, largeArc, sweepFlag, to.X, to.Y)
	s.cur = to
}

func (s *SVG) ClosePath() {
	if !s.hasCurrent {
		return
	}
	s.path.WriteString("Z ")
	s.cur = s.start
}

func (s *SVG) SetStrokeStyle(c string) {
	s.stroke = c
}

func (s *SVG) SetLineWidth(w float64) {
	s.lineWidth = w
}

func (s *SVG) SetFont(font string) {
	s.font = font
}

func (s *SVG) Stroke() {
	d := strings.TrimSpace(s.path.String())
	if d == "" {
		return
	}
	fmt.Fprintf(&s.body, "<path d='%s' fill='none' stroke='%s' stroke-width='%g'/>\n",
		d, s.strokeHex(), s.lineWidth)
}

func (s *SVG) StrokeText(text string, x, y float64) {
	fmt.Fprintf(&s.body, "<text x='%g' y='%g' style='font: %s' fill='none' stroke='%s' stroke-width='%g'>",
		x, y, escape(s.font), s.strokeHex(), s.lineWidth)
	xml.EscapeText(&s.body, []byte(text))
	s.body.WriteString("</text>\n")
}

func (s *SVG) strokeHex() string {
	h, err := color.Hex(s.stroke)
	if err != nil {
		return escape(s.stroke)
	}
	return h
}

// WriteTo writes the complete SVG document.
func (s *SVG) WriteTo(w io.Writer) (int64, error) {
	var buf bytes.Buffer

	viewBox := geom.Rect{}
	viewBox.ExpandToContainCoord(geo.NewPoint(s.width, s.height))

	fmt.Fprintf(&buf, `<?xml version="1.0"?>
<svg version="1.1" xmlns="http://www.w3.org/2000/svg" width="%g" height="%g" viewBox="%g %g %g %g">
`, s.width, s.height, viewBox.Min.X, viewBox.Min.Y, viewBox.Width(), viewBox.Height())
	buf.Write(s.body.Bytes())
	buf.WriteString("</svg>\n")

	return buf.WriteTo(w)
}

func escape(s string) string {
	var b strings.Builder
	xml.EscapeText(&b, []byte(s))
	return b.String()
}
