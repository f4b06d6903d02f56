//go:build js && wasm

package main

import (
	"syscall/js"

	"github.com/inamate/sketchpad/internal/sketch"
)

// domEvents feeds mouse, resize and reset-button events to a sketch.
type domEvents struct {
	window js.Value
	canvas js.Value
	reset  js.Value

	funcs []js.Func
}

func (d *domEvents) on(target js.Value, event string, fn func(e js.Value)) {
	f := js.FuncOf(func(this js.Value, args []js.Value) interface{} {
		var e js.Value
		if len(args) > 0 {
			e = args[0]
		}
		fn(e)
		return nil
	})
	d.funcs = append(d.funcs, f)
	target.Call("addEventListener", event, f)
}

// Listen registers the DOM listeners. The canvas is sized to the window
// first so the sketch's initial render covers it.
func (d *domEvents) Listen(l sketch.Listener) {
	d.canvas.Set("width", d.window.Get("innerWidth"))
	d.canvas.Set("height", d.window.Get("innerHeight"))

	d.on(d.canvas, "mousedown", func(e js.Value) {
		l.PointerDown(e.Get("clientX").Float(), e.Get("clientY").Float())
	})
	d.on(d.canvas, "mousemove", func(e js.Value) {
		l.PointerMove(e.Get("clientX").Float(), e.Get("clientY").Float())
	})
	d.on(d.canvas, "mouseup", func(js.Value) {
		l.PointerUp()
	})
	d.on(d.window, "resize", func(js.Value) {
		l.Resize(d.window.Get("innerWidth").Float(), d.window.Get("innerHeight").Float())
	})
	d.on(d.reset, "click", func(js.Value) {
		l.Reset()
	})
}

// togglePopup shows and hides the info popup from its open and close
// buttons, loading its content from /info on first show.
func (d *domEvents) togglePopup(doc js.Value) {
	popup := doc.Call("querySelector", "#info-popup")
	content := doc.Call("querySelector", "#info-popup__content")
	loaded := false

	toggle := func(js.Value) {
		classes := popup.Get("classList")
		if classes.Call("contains", shownClass).Bool() {
			classes.Call("remove", shownClass)
			return
		}
		classes.Call("add", shownClass)
		if !loaded {
			loaded = true
			loadInfo(content)
		}
	}

	d.on(doc.Call("querySelector", "#info-button"), "click", toggle)
	d.on(doc.Call("querySelector", "#info-popup__close-button"), "click", toggle)
}

const shownClass = "popup--shown"

func loadInfo(content js.Value) {
	var onText, onResponse js.Func
	onText = js.FuncOf(func(this js.Value, args []js.Value) interface{} {
		content.Set("innerHTML", args[0])
		onText.Release()
		return nil
	})
	onResponse = js.FuncOf(func(this js.Value, args []js.Value) interface{} {
		onResponse.Release()
		return args[0].Call("text").Call("then", onText)
	})
	js.Global().Call("fetch", "/info").Call("then", onResponse)
}
