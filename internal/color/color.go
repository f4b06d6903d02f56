// Package color converts CSS color strings for the non-browser surfaces.
package color

import (
	"image/color"
	"math"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/mazznoer/csscolorparser"
)

// RGBA parses any CSS color ("green", "#FF0000", "rgb(0 0 255)") into a
// premultiplied color.RGBA.
func RGBA(s string) (color.RGBA, error) {
	c, err := csscolorparser.Parse(s)
	if err != nil {
		return color.RGBA{}, err
	}
	n := color.NRGBA{
		R: to8(c.R),
		G: to8(c.G),
		B: to8(c.B),
		A: to8(c.A),
	}
	return color.RGBAModel.Convert(n).(color.RGBA), nil
}

// Hex normalizes a CSS color to #rrggbb.
func Hex(s string) (string, error) {
	c, err := csscolorparser.Parse(s)
	if err != nil {
		return "", err
	}
	return colorful.Color{R: c.R, G: c.G, B: c.B}.Hex(), nil
}

// Darken lowers the HSL lightness of a CSS color by 10%.
func Darken(s string) (string, error) {
	c, err := csscolorparser.Parse(s)
	if err != nil {
		return "", err
	}
	h, sat, l := colorful.Color{R: c.R, G: c.G, B: c.B}.Hsl()
	return colorful.Hsl(h, sat, l-.1).Clamped().Hex(), nil
}

func to8(f float64) uint8 {
	return uint8(math.Round(math.Max(0, math.Min(1, f)) * 255))
}
