//go:build js && wasm

package main

import (
	"syscall/js"

	"github.com/inamate/sketchpad/internal/canvas"
)

// canvasSurface draws on an HTML canvas through its 2D context.
type canvasSurface struct {
	el  js.Value
	ctx js.Value
}

func newCanvasSurface(el js.Value) *canvasSurface {
	return &canvasSurface{el: el, ctx: el.Call("getContext", "2d")}
}

var _ canvas.Surface = (*canvasSurface)(nil)

func (c *canvasSurface) Size() (float64, float64) {
	return c.el.Get("width").Float(), c.el.Get("height").Float()
}

func (c *canvasSurface) SetSize(w, h float64) {
	c.el.Set("width", w)
	c.el.Set("height", h)
}

func (c *canvasSurface) ClearRect(x, y, w, h float64) {
	c.ctx.Call("clearRect", x, y, w, h)
}

func (c *canvasSurface) BeginPath() { c.ctx.Call("beginPath") }
func (c *canvasSurface) ClosePath() { c.ctx.Call("closePath") }
func (c *canvasSurface) Stroke()    { c.ctx.Call("stroke") }

func (c *canvasSurface) MoveTo(x, y float64) { c.ctx.Call("moveTo", x, y) }
func (c *canvasSurface) LineTo(x, y float64) { c.ctx.Call("lineTo", x, y) }

func (c *canvasSurface) Arc(x, y, radius, start, end float64, ccw bool) {
	c.ctx.Call("arc", x, y, radius, start, end, ccw)
}

func (c *canvasSurface) SetStrokeStyle(color string) { c.ctx.Set("strokeStyle", color) }
func (c *canvasSurface) SetLineWidth(w float64)      { c.ctx.Set("lineWidth", w) }
func (c *canvasSurface) SetFont(font string)         { c.ctx.Set("font", font) }

func (c *canvasSurface) StrokeText(text string, x, y float64) {
	c.ctx.Call("strokeText", text, x, y)
}
