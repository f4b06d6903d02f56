package main

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/inamate/sketchpad/internal/config"
	"github.com/inamate/sketchpad/internal/export"
	"github.com/inamate/sketchpad/internal/info"
	mw "github.com/inamate/sketchpad/internal/middleware"
	"github.com/inamate/sketchpad/internal/session"
	"github.com/inamate/sketchpad/internal/web"
)

func newRouter(cfg *config.Config, hub *session.Hub, width, height int) (*mux.Router, error) {
	infoHandler, err := info.NewHandler()
	if err != nil {
		return nil, err
	}
	exportHandler := export.NewHandler(hub, &cfg.Theme, width, height)
	wsHandler := session.NewHandler(hub, cfg.Origins())

	r := mux.NewRouter()

	// Global middleware
	r.Use(mw.Recovery)
	r.Use(mw.Logger)
	r.Use(mw.CORS(cfg.Origins()))

	// Health check
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	}).Methods("GET")

	r.Handle("/info", infoHandler).Methods("GET")

	// Stateless export of an input script. OPTIONS must match the route for
	// mw.CORS to answer the preflight.
	r.HandleFunc("/export/{format}", exportHandler.ExportScript).Methods("POST", "OPTIONS")

	// Live sketches
	api := r.PathPrefix("/api").Subrouter()
	api.HandleFunc("/sketches/{sketchId}", exportHandler.State).Methods("GET")
	api.HandleFunc("/sketches/{sketchId}/export.{format}", exportHandler.ExportSketch).Methods("GET")

	// WebSocket endpoint
	r.Handle("/ws/sketch/{sketchId}", wsHandler)

	// Front end
	r.PathPrefix("/").Handler(web.Handler(web.Files(cfg.StaticDir))).Methods("GET")

	return r, nil
}
