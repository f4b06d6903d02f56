// Package canvas defines the 2D drawing surface sketches render onto and the
// non-browser implementations of it.
//
// The method set mirrors the subset of CanvasRenderingContext2D the shapes use,
// so the browser implementation is a direct forward.
package canvas

import (
	"math"
	"regexp"
	"strconv"

	"github.com/inamate/sketchpad/internal/geo"
)

type Surface interface {
	Size() (w, h float64)
	SetSize(w, h float64)

	ClearRect(x, y, w, h float64)

	BeginPath()
	MoveTo(x, y float64)
	LineTo(x, y float64)
	Arc(x, y, r, start, end float64, ccw bool)
	ClosePath()

	SetStrokeStyle(color string)
	SetLineWidth(w float64)
	SetFont(font string)

	Stroke()
	StrokeText(text string, x, y float64)
}

// MaxSize caps either side of a Raster or SVG surface.
const MaxSize = 4096

// clampSide limits one side of a surface to [0, MaxSize].
func clampSide(v float64) float64 {
	return math.Max(0, math.Min(v, MaxSize))
}

// Clear clears the whole surface.
func Clear(s Surface) {
	w, h := s.Size()
	s.ClearRect(0, 0, w, h)
}

// coversSurface reports whether the rect spans the whole w*h surface.
func coversSurface(x, y, rw, rh, w, h float64) bool {
	return x <= 0 && y <= 0 && x+rw >= w && y+rh >= h
}

// arcSweep returns the signed angle an arc from start to end covers, following
// the canvas rules: a clockwise arc whose span reaches 2π is a full circle.
func arcSweep(start, end float64, ccw bool) float64 {
	const tau = 2 * math.Pi
	if !ccw {
		if end-start >= tau {
			return tau
		}
		s := math.Mod(end-start, tau)
		if s < 0 {
			s += tau
		}
		return s
	}
	if start-end >= tau {
		return -tau
	}
	s := math.Mod(start-end, tau)
	if s < 0 {
		s += tau
	}
	return -s
}

// arcPoints flattens an arc into a polyline that starts at the arc's start
// angle.
func arcPoints(x, y, r, start, end float64, ccw bool) []geo.Point {
	sweep := arcSweep(start, end, ccw)
	n := int(math.Ceil(math.Abs(sweep) * math.Max(r, 1) / 2))
	if n < 16 {
		n = 16
	}
	pts := make([]geo.Point, 0, n+1)
	for i := 0; i <= n; i++ {
		a := start + sweep*float64(i)/float64(n)
		pts = append(pts, geo.NewPoint(x+r*math.Cos(a), y+r*math.Sin(a)))
	}
	return pts
}

var fontSizeRe = regexp.MustCompile(`(\d+(?:\.\d+)?)px`)

// FontSize returns the pixel size named in a CSS font shorthand such as
// "normal 12px Arial", or 12 if there is none.
func FontSize(font string) float64 {
	m := fontSizeRe.FindStringSubmatch(font)
	if m == nil {
		return 12
	}
	px, err := strconv.ParseFloat(m[1], 64)
	if err != nil || px <= 0 {
		return 12
	}
	return px
}

// FormatNumber formats a coordinate the way a browser prints a number: the
// shortest decimal that round-trips, without exponent for ordinary values.
func FormatNumber(f float64) string {
	if f == 0 {
		return "0"
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}
