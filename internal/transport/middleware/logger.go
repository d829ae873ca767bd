package middleware

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/heartmarshall/lexitrack/pkg/ctxutil"
)

// Logger returns middleware that logs each HTTP request with method, path,
// status code, response size, duration and the request/user identifiers.
// 5xx responses are logged at error level, 4xx at warn.
func Logger(logger *slog.Logger) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}

			next.ServeHTTP(sw, r)

			attrs := []slog.Attr{
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.Int("status", sw.status),
				slog.Int("bytes", sw.bytes),
				slog.Duration("duration", time.Since(start)),
				slog.String("request_id", ctxutil.RequestIDFromCtx(r.Context())),
			}
			// Auth runs inside Logger, so the user id is only visible via the writer.
			if sw.userID > 0 {
				attrs = append(attrs, slog.Int64("user_id", sw.userID))
			} else if userID, ok := ctxutil.UserIDFromCtx(r.Context()); ok {
				attrs = append(attrs, slog.Int64("user_id", userID))
			}

			level := slog.LevelInfo
			switch {
			case sw.status >= 500:
				level = slog.LevelError
			case sw.status >= 400:
				level = slog.LevelWarn
			}
			logger.LogAttrs(r.Context(), level, "http.request", attrs...)
		})
	}
}

// statusWriter wraps http.ResponseWriter to capture the response status code
// and body size.
type statusWriter struct {
	http.ResponseWriter
	status      int
	bytes       int
	userID      int64
	wroteHeader bool
}

func (w *statusWriter) WriteHeader(code int) {
	if !w.wroteHeader {
		w.status = code
		w.wroteHeader = true
	}
	w.ResponseWriter.WriteHeader(code)
}

func (w *statusWriter) Write(b []byte) (int, error) {
	w.wroteHeader = true
	n, err := w.ResponseWriter.Write(b)
	w.bytes += n
	return n, err
}

// Unwrap lets http.ResponseController reach the underlying writer.
func (w *statusWriter) Unwrap() http.ResponseWriter {
	return w.ResponseWriter
}

// userIDRecorder is implemented by writers that want to learn the
// authenticated user of a request.
type userIDRecorder interface {
	recordUserID(id int64)
}

func (w *statusWriter) recordUserID(id int64) {
	w.userID = id
}
