// Package geo holds the plane geometry the sketch is built from.
//
// Every formula here assumes the shape was constructed as a parallelogram from
// three placed points and one derived point. QuadrilateralArea and the
// diagonal-midpoint centroid are not general polygon formulas.
package geo

import (
	"math"

	"github.com/jbeda/geom"
)

// Point is a position on the drawing surface. Y grows downward.
type Point = geom.Coord

func NewPoint(x, y float64) Point {
	return Point{X: x, Y: y}
}

// Midpoint returns the arithmetic mean of a and b.
func Midpoint(a, b Point) Point {
	return a.Plus(b).Times(0.5)
}

// Reflect returns the point d such that b is the midpoint of a and d.
func Reflect(a, b Point) Point {
	return b.Times(2).Minus(a)
}

// Vector returns b - a.
func Vector(a, b Point) Point {
	return b.Minus(a)
}

// Cross is the z component of the 3D cross product of u and v.
func Cross(u, v Point) float64 {
	return u.X*v.Y - u.Y*v.X
}

// FourthVertex completes the parallelogram a, b, c, d by reflecting b through
// the midpoint of the a-c diagonal.
func FourthVertex(a, b, c Point) Point {
	return Reflect(b, Midpoint(a, c))
}

// QuadrilateralArea returns the area spanned by the first three vertices,
// rounded to the nearest integer. vertices must hold at least three points.
func QuadrilateralArea(vertices []Point) int {
	ab := Vector(vertices[0], vertices[1])
	ac := Vector(vertices[0], vertices[2])
	return int(math.Round(math.Abs(Cross(ab, ac))))
}

// RadiusFromArea returns the radius of the circle with the given area.
func RadiusFromArea(area float64) float64 {
	return math.Sqrt(area / math.Pi)
}
