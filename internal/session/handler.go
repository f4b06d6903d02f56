package session

import (
	"log/slog"
	"net/http"
	"net/url"

	"github.com/coder/websocket"
	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/inamate/sketchpad/internal/typeid"
)

// NewSketch is the sketch ID a client uses to ask for a fresh room.
const NewSketch = "new"

type Handler struct {
	hub            *Hub
	originPatterns []string
}

// NewHandler serves WebSocket connections for hub. origins are full origin
// URLs ("http://localhost:5173") allowed to connect cross-origin.
func NewHandler(hub *Hub, origins []string) *Handler {
	var patterns []string
	for _, o := range origins {
		u, err := url.Parse(o)
		if err != nil || u.Host == "" {
			patterns = append(patterns, o)
			continue
		}
		patterns = append(patterns, u.Host)
	}
	return &Handler{hub: hub, originPatterns: patterns}
}

// ServeHTTP upgrades /ws/sketch/{sketchId} and joins the client to its room.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	sketchID := mux.Vars(r)["sketchId"]
	if sketchID == NewSketch {
		sketchID = typeid.NewSketchID()
	} else if err := typeid.Validate(sketchID, typeid.PrefixSketch); err != nil {
		http.Error(w, "invalid sketch id", http.StatusBadRequest)
		return
	}

	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		OriginPatterns: h.originPatterns,
	})
	if err != nil {
		slog.Error("websocket accept", "error", err)
		return
	}

	clientID := uuid.New().String()
	client := NewClient(h.hub, conn, sketchID, clientID)

	if err := h.hub.Register(client); err != nil {
		conn.Close(websocket.StatusGoingAway, "server shutting down")
		return
	}

	ctx := r.Context()
	go client.WritePump(ctx)
	client.ReadPump(ctx)
}
