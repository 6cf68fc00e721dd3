// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"net/http"

	"github.com/okian/wingspan/internal/domain/types"
)

// measurementResponse mirrors the GET /measurement schema. Status is one of
// "ok", "waiting" (no frame processed yet), or "error" (terminal pipeline
// failure). An unavailable measurement is an expected state, reported with
// status "ok" and available=false quantities.
type measurementResponse struct {
	Status      string             `json:"status"`
	Error       string             `json:"error,omitempty"`
	Measurement *types.Measurement `json:"measurement,omitempty"`
}

// MeasurementHandler handles latest-measurement requests.
type MeasurementHandler struct {
	deps Dependencies
}

// NewMeasurementHandler creates a new measurement handler.
func NewMeasurementHandler(deps Dependencies) *MeasurementHandler {
	return &MeasurementHandler{deps: deps}
}

// HandleGetMeasurement handles GET /measurement requests.
func (h *MeasurementHandler) HandleGetMeasurement(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", nil)
		return
	}

	if err := h.deps.Err(); err != nil {
		// Terminal upstream failure is a distinct state, not a 500 per
		// request: the pipeline will not recover without a restart.
		writeJSON(w, http.StatusServiceUnavailable, measurementResponse{
			Status: "error",
			Error:  err.Error(),
		})
		return
	}

	m, ok := h.deps.Latest(r.Context())
	if !ok {
		writeJSON(w, http.StatusOK, measurementResponse{Status: "waiting"})
		return
	}

	view := types.FromModel(m)
	writeJSON(w, http.StatusOK, measurementResponse{Status: "ok", Measurement: &view})
}
