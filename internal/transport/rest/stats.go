package rest

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/heartmarshall/lexitrack/internal/domain"
	"github.com/heartmarshall/lexitrack/internal/service/stats"
	"github.com/heartmarshall/lexitrack/pkg/ctxutil"
)

type statsQuerier interface {
	Get(ctx context.Context, userID int64, days int) (*domain.UserStats, error)
}

// StatsHandler serves per-user statistics.
type StatsHandler struct {
	svc statsQuerier
	log *slog.Logger
}

// NewStatsHandler creates a StatsHandler.
func NewStatsHandler(svc statsQuerier, logger *slog.Logger) *StatsHandler {
	return &StatsHandler{svc: svc, log: logger.With("handler", "stats")}
}

type statsResponse struct {
	Success bool `json:"success"`
	*domain.UserStats
}

// Get handles GET /api/users/{id}/stats?days=N.
func (h *StatsHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || userID <= 0 {
		handleError(h.log, w, r, domain.NewValidationError("id", "must be a positive integer"))
		return
	}

	if caller, ok := ctxutil.UserIDFromCtx(r.Context()); ok && caller != userID {
		handleError(h.log, w, r, domain.ErrForbidden)
		return
	}

	days := stats.DefaultDays
	if raw := r.URL.Query().Get("days"); raw != "" {
		days, err = strconv.Atoi(raw)
		if err != nil {
			handleError(h.log, w, r, domain.NewValidationError("days", "must be an integer"))
			return
		}
	}

	result, err := h.svc.Get(r.Context(), userID, days)
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, statsResponse{Success: true, UserStats: result})
}
