package rest

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/heartmarshall/lexitrack/internal/service/pipeline"
	"github.com/heartmarshall/lexitrack/pkg/ctxutil"
)

type sentenceProcessor interface {
	Process(ctx context.Context, input pipeline.ProcessInput) (*pipeline.ProcessResult, error)
}

// WordsHandler serves sentence submissions.
type WordsHandler struct {
	svc sentenceProcessor
	log *slog.Logger
}

// NewWordsHandler creates a WordsHandler.
func NewWordsHandler(svc sentenceProcessor, logger *slog.Logger) *WordsHandler {
	return &WordsHandler{svc: svc, log: logger.With("handler", "words")}
}

type processRequest struct {
	Sentence string `json:"sentence"`
	UserID   int64  `json:"userId"`
}

// Process handles POST /api/words. An authenticated caller is always
// processed as itself; the body userId is only used for anonymous calls.
func (h *WordsHandler) Process(w http.ResponseWriter, r *http.Request) {
	var req processRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	userID := req.UserID
	if id, ok := ctxutil.UserIDFromCtx(r.Context()); ok {
		userID = id
	}

	result, err := h.svc.Process(r.Context(), pipeline.ProcessInput{
		UserID:   userID,
		Sentence: req.Sentence,
	})
	if err != nil {
		handleError(h.log, w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}
