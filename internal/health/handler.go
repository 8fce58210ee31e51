package health

import (
	"encoding/json"
	"net/http"
)

// Handler exposes the registry over HTTP for applications that embed the
// data-access layer and serve probe endpoints.
type Handler struct {
	registry *Registry
}

// NewHandler creates a handler for the given registry.
func NewHandler(registry *Registry) *Handler {
	return &Handler{registry: registry}
}

// HealthHandler serves GET /health with all check details.
func (h *Handler) HealthHandler(w http.ResponseWriter, r *http.Request) {
	h.writeResponse(w, h.registry.Health(r.Context()))
}

// LivenessHandler serves GET /health/live for liveness probes.
func (h *Handler) LivenessHandler(w http.ResponseWriter, r *http.Request) {
	h.writeResponse(w, h.registry.Liveness(r.Context()))
}

// ReadinessHandler serves GET /health/ready for readiness probes. It
// returns 503 while a critical dependency is unavailable.
func (h *Handler) ReadinessHandler(w http.ResponseWriter, r *http.Request) {
	h.writeResponse(w, h.registry.Readiness(r.Context()))
}

func (h *Handler) writeResponse(w http.ResponseWriter, resp Response) {
	w.Header().Set("Content-Type", "application/json")

	status := http.StatusOK
	if resp.Status == StatusUnhealthy {
		status = http.StatusServiceUnavailable
	}

	w.WriteHeader(status)
	json.NewEncoder(w).Encode(resp)
}

// RegisterRoutes registers the probe endpoints on the mux.
func (h *Handler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/health", h.HealthHandler)
	mux.HandleFunc("/health/live", h.LivenessHandler)
	mux.HandleFunc("/health/ready", h.ReadinessHandler)
}
