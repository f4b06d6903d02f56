package export

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/inamate/sketchpad/internal/config"
	"github.com/inamate/sketchpad/internal/session"
	"github.com/inamate/sketchpad/internal/sketch"
	"github.com/inamate/sketchpad/internal/typeid"
)

const maxBodySize = 1 << 20 // 1MB

// Request is the body of POST /export/{format}.
type Request struct {
	Width  int           `json:"width"`
	Height int           `json:"height"`
	Events sketch.Script `json:"events"`
}

// FrameSource looks up the current frame of a live sketch.
type FrameSource interface {
	Frame(ctx context.Context, sketchID string) (session.Frame, error)
}

type Handler struct {
	frames        FrameSource
	theme         *config.Theme
	width, height int
}

// NewHandler creates an export handler. width and height are the defaults for
// requests that do not give a size.
func NewHandler(frames FrameSource, theme *config.Theme, width, height int) *Handler {
	if width <= 0 {
		width = DefaultWidth
	}
	if height <= 0 {
		height = DefaultHeight
	}
	return &Handler{frames: frames, theme: theme, width: width, height: height}
}

// ExportScript handles POST /export/{format}.
func (h *Handler) ExportScript(w http.ResponseWriter, r *http.Request) {
	format, err := ParseFormat(mux.Vars(r)["format"])
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxBodySize)

	var req Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if err := req.Events.Validate(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	width, height := ClampSize(req.Width, req.Height, h.width, h.height)

	var buf bytes.Buffer
	state, err := Script(&buf, format, width, height, req.Events, h.theme)
	if err != nil {
		slog.Error("render script", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	h.write(w, format, buf.Bytes())
	slog.Info("export complete", "format", format, "events", len(req.Events), "mode", state.Mode, "size", buf.Len())
}

// State handles GET /api/sketches/{sketchId}.
func (h *Handler) State(w http.ResponseWriter, r *http.Request) {
	frame, ok := h.lookup(w, r)
	if !ok {
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(frame.State)
}

// ExportSketch handles GET /api/sketches/{sketchId}/export.{format}.
func (h *Handler) ExportSketch(w http.ResponseWriter, r *http.Request) {
	format, err := ParseFormat(mux.Vars(r)["format"])
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	frame, ok := h.lookup(w, r)
	if !ok {
		return
	}

	width, height := ClampSize(int(frame.State.Width), int(frame.State.Height), h.width, h.height)

	var buf bytes.Buffer
	if err := Commands(&buf, format, float64(width), float64(height), frame.Commands); err != nil {
		slog.Error("render sketch", "error", err, "sketch", mux.Vars(r)["sketchId"])
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	h.write(w, format, buf.Bytes())
}

func (h *Handler) lookup(w http.ResponseWriter, r *http.Request) (session.Frame, bool) {
	id := mux.Vars(r)["sketchId"]
	if err := typeid.Validate(id, typeid.PrefixSketch); err != nil {
		http.Error(w, "invalid sketch id", http.StatusBadRequest)
		return session.Frame{}, false
	}

	frame, err := h.frames.Frame(r.Context(), id)
	if errors.Is(err, session.ErrNotFound) {
		http.Error(w, "sketch not found", http.StatusNotFound)
		return session.Frame{}, false
	}
	if err != nil {
		slog.Error("get sketch frame", "error", err, "sketch", id)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return session.Frame{}, false
	}
	return frame, true
}

func (h *Handler) write(w http.ResponseWriter, format Format, body []byte) {
	w.Header().Set("Content-Type", format.ContentType())
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s.%s"`, typeid.NewExportID(), format))
	w.Header().Set("Content-Length", strconv.Itoa(len(body)))
	w.Write(body)
}
