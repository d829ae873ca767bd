package rest

import (
	"context"
	"net/http"
	"time"
)

// pinger defines the minimal interface for dependency health checks.
type pinger interface {
	Ping(ctx context.Context) error
}

// HealthHandler serves health check endpoints for the durable store and
// the word cache.
type HealthHandler struct {
	db      pinger
	cache   pinger
	version string
}

// NewHealthHandler creates a HealthHandler.
func NewHealthHandler(db, cache pinger, version string) *HealthHandler {
	return &HealthHandler{db: db, cache: cache, version: version}
}

// HealthResponse is the JSON response for /health and /ready.
type HealthResponse struct {
	Status     string                `json:"status"`
	Version    string                `json:"version,omitempty"`
	Components map[string]CompStatus `json:"components,omitempty"`
	Timestamp  time.Time             `json:"timestamp"`
}

// CompStatus is the status of an individual component.
type CompStatus struct {
	Status  string `json:"status"`
	Latency string `json:"latency,omitempty"`
}

// Live is the liveness probe. Always returns 200.
func (h *HealthHandler) Live(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{
		Status:    "ok",
		Timestamp: time.Now(),
	})
}

// Ready is the readiness probe. Only the database gates readiness; the
// cache is not authoritative and a cache outage degrades to misses.
func (h *HealthHandler) Ready(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	if err := h.db.Ping(ctx); err != nil {
		writeJSON(w, http.StatusServiceUnavailable, HealthResponse{
			Status:    "down",
			Timestamp: time.Now(),
		})
		return
	}

	writeJSON(w, http.StatusOK, HealthResponse{
		Status:    "ok",
		Timestamp: time.Now(),
	})
}

// Health is the full health check with per-component latency. A database
// outage is "down" (503); a cache outage alone is "degraded" (200).
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	components := map[string]CompStatus{
		"database": check(ctx, h.db),
		"cache":    check(ctx, h.cache),
	}

	overall, status := "ok", http.StatusOK
	switch {
	case components["database"].Status != "ok":
		overall, status = "down", http.StatusServiceUnavailable
	case components["cache"].Status != "ok":
		overall = "degraded"
	}

	writeJSON(w, status, HealthResponse{
		Status:     overall,
		Version:    h.version,
		Components: components,
		Timestamp:  time.Now(),
	})
}

func check(ctx context.Context, p pinger) CompStatus {
	start := time.Now()
	if err := p.Ping(ctx); err != nil {
		return CompStatus{Status: "down"}
	}
	return CompStatus{Status: "ok", Latency: time.Since(start).String()}
}
