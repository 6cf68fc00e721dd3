// Package api declares HTTP contracts and route registration helpers.
//
// The pipeline core is an in-process computation; this package is the
// presentation-layer consumer given a concrete read-only surface. Nothing
// here mutates pipeline state.
package api

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/okian/wingspan/internal/domain/model"
)

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	// Latest returns the current measurement, or false before the first
	// processed frame.
	Latest(ctx context.Context) (model.Measurement, bool)

	// Err returns the terminal pipeline error, if any.
	Err() error
}

// Server wires HTTP routes for the read-only API.
type Server struct {
	healthHandler      *HealthHandler
	statsHandler       *StatsHandler
	measurementHandler *MeasurementHandler
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, statsProvider StatsProvider) *Server {
	return &Server{
		healthHandler:      NewHealthHandler(),
		statsHandler:       NewStatsHandler(statsProvider),
		measurementHandler: NewMeasurementHandler(deps),
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(ctx context.Context, mux *http.ServeMux) {
	mux.HandleFunc("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("/stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))
	mux.HandleFunc("/measurement", MetricsMiddleware(s.measurementHandler.HandleGetMeasurement, "measurement"))
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}
