package rest

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/heartmarshall/lexitrack/internal/domain"
)

// maxBodyBytes bounds request bodies read by JSON handlers.
const maxBodyBytes = 1 << 20

type errorResponse struct {
	Success bool          `json:"success"`
	Error   string        `json:"error"`
	Details []fieldDetail `json:"details,omitempty"`
}

type fieldDetail struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Error: message})
}

// handleError maps domain errors to HTTP statuses. Anything unclassified is
// logged and answered with a generic 500.
func handleError(log *slog.Logger, w http.ResponseWriter, r *http.Request, err error) {
	var verr *domain.ValidationError
	switch {
	case errors.As(err, &verr):
		details := make([]fieldDetail, 0, len(verr.Errors))
		for _, fe := range verr.Errors {
			details = append(details, fieldDetail{Field: fe.Field, Message: fe.Message})
		}
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: verr.Error(), Details: details})
	case errors.Is(err, domain.ErrValidation):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrUnauthorized):
		writeError(w, http.StatusUnauthorized, "unauthorized")
	case errors.Is(err, domain.ErrForbidden):
		writeError(w, http.StatusForbidden, "forbidden")
	default:
		log.ErrorContext(r.Context(), "internal error", slog.String("error", err.Error()))
		writeError(w, http.StatusInternalServerError, "internal server error")
	}
}
