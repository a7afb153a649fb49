// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"net/http"
	"time"
)

// healthResponse mirrors the health endpoint's wire shape.
type healthResponse struct {
	Status      string `json:"status"`
	Message     string `json:"message"`
	Timestamp   string `json:"timestamp"`
	Environment string `json:"environment"`
}

// HealthHandler handles health check requests.
type HealthHandler struct {
	environment string
}

// NewHealthHandler creates a new health handler.
func NewHealthHandler(environment string) *HealthHandler {
	return &HealthHandler{environment: environment}
}

// HandleHealth handles GET /api/health requests.
func (h *HealthHandler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	writeJSON(w, http.StatusOK, healthResponse{
		Status:      "OK",
		Message:     "Server is running",
		Timestamp:   time.Now().UTC().Format(time.RFC3339),
		Environment: h.environment,
	})
}
