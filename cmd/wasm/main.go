//go:build js && wasm

package main

import (
	"encoding/json"
	"log/slog"
	"syscall/js"

	"github.com/inamate/sketchpad/internal/config"
	"github.com/inamate/sketchpad/internal/sketch"
)

var app *sketch.Sketch

func main() {
	doc := js.Global().Get("document")

	el := doc.Call("querySelector", "#shapesCanvas")
	if el.IsNull() {
		slog.Error("canvas #shapesCanvas not found")
		return
	}

	events := &domEvents{
		window: js.Global(),
		canvas: el,
		reset:  doc.Call("querySelector", "#reset-button"),
	}
	app = sketch.New(newCanvasSurface(el), events, config.DefaultTheme())
	events.togglePopup(doc)

	// --- Queries (page ← sketch) ---
	api := js.Global().Get("Object").New()
	api.Set("state", js.FuncOf(state))
	js.Global().Set("sketchpad", api)

	// Keep Go runtime alive
	select {}
}

func state(this js.Value, args []js.Value) interface{} {
	data, err := json.Marshal(app.State())
	if err != nil {
		return js.ValueOf(map[string]interface{}{"error": err.Error()})
	}
	return js.ValueOf(string(data))
}
