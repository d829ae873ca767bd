package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func tracing(name string, trace *[]string) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			*trace = append(*trace, name+">")
			next.ServeHTTP(w, r)
			*trace = append(*trace, "<"+name)
		})
	}
}

func TestChain_OutermostFirst(t *testing.T) {
	t.Parallel()

	var trace []string
	h := Chain(tracing("recovery", &trace), tracing("logger", &trace))(
		http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			trace = append(trace, "words")
			w.WriteHeader(http.StatusAccepted)
		}),
	)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/words", nil))

	assert.Equal(t, http.StatusAccepted, rec.Code)
	assert.Equal(t, []string{"recovery>", "logger>", "words", "<logger", "<recovery"}, trace)
}

func TestChain_SkipsNil(t *testing.T) {
	t.Parallel()

	var trace []string
	var auth Middleware // disabled
	h := Chain(tracing("cors", &trace), auth, tracing("loaders", &trace))(
		http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			trace = append(trace, "stats")
		}),
	)

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/users/1/stats", nil))

	assert.Equal(t, []string{"cors>", "loaders>", "stats", "<loaders", "<cors"}, trace)
}

func TestChain_Empty(t *testing.T) {
	t.Parallel()

	called := false
	h := Chain()(http.HandlerFunc(func(http.ResponseWriter, *http.Request) { called = true }))

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/live", nil))

	assert.True(t, called)
}
