package middleware

import "net/http"

// Middleware wraps an http.Handler.
type Middleware func(http.Handler) http.Handler

// Chain composes mws so that the first one is the outermost wrapper.
// Nil entries are skipped, which lets callers pass optional middleware
// (auth, rate limiting) without branching.
func Chain(mws ...Middleware) Middleware {
	return func(h http.Handler) http.Handler {
		for i := len(mws) - 1; i >= 0; i-- {
			if mws[i] == nil {
				continue
			}
			h = mws[i](h)
		}
		return h
	}
}
