// Package info serves the help text shown in the front end's info popup.
package info

import (
	"bytes"
	_ "embed"
	"fmt"
	"net/http"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	goldmarkHtml "github.com/yuin/goldmark/renderer/html"
)

//go:embed info.md
var source []byte

var markdownRenderer = goldmark.New(
	goldmark.WithRendererOptions(
		goldmarkHtml.WithXHTML(),
	),
	goldmark.WithExtensions(
		extension.Strikethrough,
		extension.Table,
	),
)

// Render converts markdown to an HTML fragment.
func Render(md []byte) ([]byte, error) {
	var output bytes.Buffer
	if err := markdownRenderer.Convert(md, &output); err != nil {
		return nil, fmt.Errorf("render markdown: %w", err)
	}
	return output.Bytes(), nil
}

type Handler struct {
	html []byte
}

// NewHandler renders the embedded help text once.
func NewHandler() (*Handler, error) {
	html, err := Render(source)
	if err != nil {
		return nil, err
	}
	return &Handler{html: html}, nil
}

// ServeHTTP handles GET /info.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "public, max-age=3600")
	w.Write(h.html)
}
