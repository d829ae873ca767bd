package rest

import "net/http"

// Handlers groups the REST handlers mounted by NewRouter.
type Handlers struct {
	Words  *WordsHandler
	Stats  *StatsHandler
	Health *HealthHandler

	// WordsMiddleware wraps only POST /api/words (rate limiting).
	WordsMiddleware func(http.Handler) http.Handler
}

// NewRouter registers all routes on a new ServeMux.
func NewRouter(h Handlers) *http.ServeMux {
	mux := http.NewServeMux()

	var words http.Handler = http.HandlerFunc(h.Words.Process)
	if h.WordsMiddleware != nil {
		words = h.WordsMiddleware(words)
	}
	mux.Handle("POST /api/words", words)
	mux.HandleFunc("GET /api/users/{id}/stats", h.Stats.Get)

	mux.HandleFunc("GET /live", h.Health.Live)
	mux.HandleFunc("GET /ready", h.Health.Ready)
	mux.HandleFunc("GET /health", h.Health.Health)

	return mux
}
