package middleware

import (
	"net/http"
	"strings"

	"github.com/rs/cors"

	"github.com/heartmarshall/lexitrack/internal/config"
)

// CORS returns middleware that handles Cross-Origin Resource Sharing,
// including preflight OPTIONS requests, for the configured origins.
func CORS(cfg config.CORSConfig) Middleware {
	c := cors.New(cors.Options{
		AllowedOrigins:   splitList(cfg.AllowedOrigins),
		AllowedMethods:   splitList(cfg.AllowedMethods),
		AllowedHeaders:   splitList(cfg.AllowedHeaders),
		AllowCredentials: cfg.AllowCredentials,
		MaxAge:           cfg.MaxAge,
	})
	return func(next http.Handler) http.Handler {
		return c.Handler(next)
	}
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
