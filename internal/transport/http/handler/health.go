package handler

import (
	"context"
	"net/http"

	"github.com/waitlist-api/internal/config"
)

// Diagnostic status strings reported by the /test endpoint.
const (
	StatusRunning      = "running"
	StatusConnected    = "connected"
	StatusNotConnected = "not connected"
	StatusNotAvailable = "not available"
	statusSet          = "set"
	statusNotSet       = "not set"
)

// maxProbeCollections caps how many collection names /test reports.
const maxProbeCollections = 10

// StoreProbe is what the diagnostic endpoint needs from the document store.
type StoreProbe interface {
	ListCollections(ctx context.Context, limit int32) ([]string, error)
}

// HealthHandler handles the static hello endpoints and the database probe.
type HealthHandler struct {
	cfg   *config.Config
	probe StoreProbe
}

func NewHealthHandler(cfg *config.Config, probe StoreProbe) *HealthHandler {
	return &HealthHandler{cfg: cfg, probe: probe}
}

func (h *HealthHandler) Root(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, MessageEnvelope{Message: "Hello from the waitlist backend!"})
}

func (h *HealthHandler) Hello(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, MessageEnvelope{Message: "Hello from the backend API!"})
}

// Test reports backend liveness, database connectivity and up to ten
// collection names. It always answers 200: any probe failure is folded into
// the database status string instead of an HTTP error.
func (h *HealthHandler) Test(w http.ResponseWriter, r *http.Request) {
	resp := StatusEnvelope{
		Backend:          StatusRunning,
		Database:         StatusNotAvailable,
		DatabaseURL:      setOrNot(h.cfg.DatabaseURL),
		DatabaseName:     setOrNot(h.cfg.DatabaseName),
		ConnectionStatus: StatusNotConnected,
		Collections:      []string{},
	}

	if h.probe != nil {
		names, err := h.probe.ListCollections(r.Context(), maxProbeCollections)
		if err != nil {
			resp.Database = "error: " + truncate(err.Error(), 50)
		} else {
			resp.Database = StatusConnected
			resp.ConnectionStatus = StatusConnected
			resp.Collections = names
		}
	}

	writeJSON(w, http.StatusOK, resp)
}

func setOrNot(v string) string {
	if v != "" {
		return statusSet
	}
	return statusNotSet
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
