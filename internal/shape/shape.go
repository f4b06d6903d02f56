// Package shape holds the drawable elements of a sketch. Each element borrows
// the surface it draws on; none of them own it.
package shape

import (
	"github.com/inamate/sketchpad/internal/geo"
)

// Drawable is the capability set shared by positioned elements.
type Drawable interface {
	Position() geo.Point
	SetPosition(p geo.Point)
	Color() string
	SetColor(c string)
	Render()
}

var (
	_ Drawable = (*Circle)(nil)
	_ Drawable = (*Point)(nil)
)
