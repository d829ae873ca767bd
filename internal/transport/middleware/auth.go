package middleware

import (
	"net/http"
	"strings"

	"github.com/heartmarshall/lexitrack/pkg/ctxutil"
)

type tokenValidator interface {
	ValidateAccessToken(token string) (int64, error)
}

// Auth resolves a bearer token into a user id stored in the request context.
// Requests without a bearer token pass through anonymously; handlers decide
// whether the caller must be identified.
func Auth(validator tokenValidator) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := extractBearerToken(r)
			if token == "" {
				next.ServeHTTP(w, r) // Anonymous
				return
			}
			userID, err := validator.ValidateAccessToken(token)
			if err != nil {
				http.Error(w, "unauthorized", http.StatusUnauthorized)
				return
			}
			if rec, ok := w.(userIDRecorder); ok {
				rec.recordUserID(userID)
			}
			ctx := ctxutil.WithUserID(r.Context(), userID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func extractBearerToken(r *http.Request) string {
	scheme, token, ok := strings.Cut(r.Header.Get("Authorization"), " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}
