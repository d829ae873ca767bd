package middleware

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/heartmarshall/lexitrack/pkg/ctxutil"
)

// RequestIDHeader carries the request correlation id in both directions.
const RequestIDHeader = "X-Request-Id"

const maxRequestIDLength = 128

// RequestID reuses a well-formed incoming X-Request-Id or generates a new
// one, stores it in the context and echoes it in the response.
func RequestID() Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := r.Header.Get(RequestIDHeader)
			if !validRequestID(id) {
				id = uuid.NewString()
			}
			ctx := ctxutil.WithRequestID(r.Context(), id)
			w.Header().Set(RequestIDHeader, id)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func validRequestID(id string) bool {
	if id == "" || len(id) > maxRequestIDLength {
		return false
	}
	for i := 0; i < len(id); i++ {
		if id[i] < 0x21 || id[i] > 0x7e {
			return false
		}
	}
	return true
}
