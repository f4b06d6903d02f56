// Package export renders sketches to PNG and SVG, either by replaying an input
// script on a fresh sketch or by replaying the draw commands of a live one.
package export

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/inamate/sketchpad/internal/canvas"
	"github.com/inamate/sketchpad/internal/config"
	"github.com/inamate/sketchpad/internal/sketch"
)

const (
	MaxSize       = canvas.MaxSize
	DefaultWidth  = 800
	DefaultHeight = 600
)

type Format string

const (
	PNG Format = "png"
	SVG Format = "svg"
)

var ErrFormat = errors.New("invalid format: must be png or svg")

func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(s)) {
	case PNG:
		return PNG, nil
	case SVG:
		return SVG, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrFormat, s)
	}
}

// FormatFromPath picks the format from a file extension.
func FormatFromPath(path string) (Format, error) {
	i := strings.LastIndexByte(path, '.')
	if i < 0 {
		return "", fmt.Errorf("%w: %q has no extension", ErrFormat, path)
	}
	return ParseFormat(path[i+1:])
}

func (f Format) ContentType() string {
	if f == SVG {
		return "image/svg+xml"
	}
	return "image/png"
}

// ClampSize falls back to the defaults for non-positive sizes and caps both
// sides at MaxSize.
func ClampSize(w, h, defW, defH int) (int, int) {
	clamp := func(v, def int) int {
		if v <= 0 {
			v = def
		}
		if v > MaxSize {
			v = MaxSize
		}
		return v
	}
	return clamp(w, defW), clamp(h, defH)
}

// target is a drawing surface that can write itself out.
type target interface {
	canvas.Surface
	encode(w io.Writer) error
}

type svgTarget struct{ *canvas.SVG }

func (t svgTarget) encode(w io.Writer) error {
	if _, err := t.WriteTo(w); err != nil {
		return fmt.Errorf("write svg: %w", err)
	}
	return nil
}

type pngTarget struct{ *canvas.Raster }

func (t pngTarget) encode(w io.Writer) error {
	return t.EncodePNG(w)
}

func newTarget(f Format, w, h float64) target {
	if f == SVG {
		return svgTarget{canvas.NewSVG(w, h)}
	}
	return pngTarget{canvas.NewRaster(w, h)}
}

// Script replays script on a new sketch of the given size and writes the
// final picture.
func Script(out io.Writer, f Format, width, height int, script sketch.Script, theme *config.Theme) (sketch.State, error) {
	if err := script.Validate(); err != nil {
		return sketch.State{}, err
	}

	t := newTarget(f, float64(width), float64(height))
	s := sketch.New(t, nil, theme)
	sketch.Replay(script, s)

	if err := t.encode(out); err != nil {
		return sketch.State{}, err
	}
	return s.State(), nil
}

// Commands replays recorded draw commands onto a surface of the given size and
// writes the result.
func Commands(out io.Writer, f Format, width, height float64, cmds []canvas.Command) error {
	t := newTarget(f, width, height)
	if err := canvas.Replay(cmds, t); err != nil {
		return fmt.Errorf("replay frame: %w", err)
	}
	return t.encode(out)
}
