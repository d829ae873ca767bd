//go:build e2e

package e2e_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"

	"github.com/heartmarshall/lexitrack/internal/adapter/postgres/testhelper"
	"github.com/heartmarshall/lexitrack/internal/adapter/redis"
	"github.com/heartmarshall/lexitrack/internal/app"
	"github.com/heartmarshall/lexitrack/internal/auth"
	"github.com/heartmarshall/lexitrack/internal/config"
)

const (
	testJWTSecret = "e2e-secret-at-least-32-characters-long"
	testJWTIssuer = "lexitrack-e2e"
)

// testLogWriter routes slog output through t.Log.
type testLogWriter struct {
	t *testing.T
}

func (w testLogWriter) Write(p []byte) (int, error) {
	w.t.Helper()
	w.t.Log(strings.TrimRight(string(p), "\n"))
	return len(p), nil
}

// fakeLemmatizer mimics the external NLP service: it splits the sentence on
// whitespace and looks each word up in a fixed table. Other words ending in
// "s" are treated as plurals; everything else is reported as canonical.
type fakeLemmatizer struct {
	down  atomic.Bool
	calls atomic.Int64
}

var lemmaTable = map[string][2]string{
	"cats":    {"cat", "NOUN"},
	"dogs":    {"dog", "NOUN"},
	"running": {"run", "VERB"},
	"ran":     {"run", "VERB"},
	"jumped":  {"jump", "VERB"},
	"quickly": {"quick", "ADV"},
}

type lemmaTuple struct {
	Word string  `json:"word"`
	Root *string `json:"root"`
	POS  string  `json:"pos"`
}

func (f *fakeLemmatizer) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.calls.Add(1)
	if f.down.Load() {
		http.Error(w, "model not loaded", http.StatusServiceUnavailable)
		return
	}
	var req struct {
		Sentence string `json:"sentence"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}

	out := []lemmaTuple{}
	for _, word := range strings.Fields(req.Sentence) {
		key := strings.ToLower(strings.Trim(word, ".,!?;:"))
		tuple := lemmaTuple{Word: word, POS: "NOUN"}
		if entry, ok := lemmaTable[key]; ok {
			root := entry[0]
			tuple.Root = &root
			tuple.POS = entry[1]
		} else if len(key) > 3 && strings.HasSuffix(key, "s") {
			root := strings.TrimSuffix(key, "s")
			tuple.Root = &root
		}
		out = append(out, tuple)
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(out) //nolint:errcheck
}

type testServer struct {
	URL        string
	Pool       *pgxpool.Pool
	Client     *http.Client
	Lemmatizer *fakeLemmatizer
	jwt        *auth.JWTManager
}

// setupTestServer wires the full application handler against the shared
// Postgres and Redis containers and a fake lemmatizer.
func setupTestServer(t *testing.T) *testServer {
	t.Helper()

	pool := testhelper.SetupTestDB(t)
	rdb := testhelper.SetupTestRedis(t)

	lemmatizer := &fakeLemmatizer{}
	lemmaSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/lemmatize" || r.Method != http.MethodPost {
			http.NotFound(w, r)
			return
		}
		lemmatizer.ServeHTTP(w, r)
	}))
	t.Cleanup(lemmaSrv.Close)

	cfg := &config.Config{
		Redis: config.RedisConfig{CacheTTL: time.Hour},
		Lemmatizer: config.LemmatizerConfig{
			BaseURL:        lemmaSrv.URL,
			ConnectTimeout: time.Second,
			ReadTimeout:    2 * time.Second,
			MaxIdleConns:   4,
		},
		Pipeline: config.PipelineConfig{
			StoreConcurrency:  4,
			MostUsedLimit:     5,
			MaxSentenceLength: 5000,
		},
		Auth: config.AuthConfig{
			JWTSecret:      testJWTSecret,
			JWTIssuer:      testJWTIssuer,
			AccessTokenTTL: 15 * time.Minute,
		},
		CORS: config.CORSConfig{
			AllowedOrigins: "*",
			AllowedMethods: "GET,POST,OPTIONS",
			AllowedHeaders: "Authorization,Content-Type",
			MaxAge:         60,
		},
	}

	logger := slog.New(slog.NewTextHandler(testLogWriter{t: t}, &slog.HandlerOptions{Level: slog.LevelWarn}))
	handler, cleanup := app.NewHandler(cfg, logger, pool, redis.NewWordCache(rdb, cfg.Redis.CacheTTL))
	t.Cleanup(cleanup)

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	return &testServer{
		URL:        srv.URL,
		Pool:       pool,
		Client:     srv.Client(),
		Lemmatizer: lemmatizer,
		jwt:        auth.NewJWTManager(testJWTSecret, testJWTIssuer, 15*time.Minute),
	}
}

// tokenFor returns a valid bearer token for userID.
func (ts *testServer) tokenFor(t *testing.T, userID int64) string {
	t.Helper()
	token, err := ts.jwt.GenerateAccessToken(userID)
	require.NoError(t, err)
	return token
}

// do sends a request with an optional JSON body and bearer token and decodes
// the JSON response into a generic map.
func (ts *testServer) do(t *testing.T, method, path string, body any, token string) (int, map[string]any) {
	t.Helper()
	status, result, err := ts.request(method, path, body, token)
	require.NoError(t, err)
	return status, result
}

// request is do without test assertions, safe to call from goroutines.
func (ts *testServer) request(method, path string, body any, token string) (int, map[string]any, error) {
	raw := []byte{}
	if body != nil {
		var err error
		if raw, err = json.Marshal(body); err != nil {
			return 0, nil, err
		}
	}

	req, err := http.NewRequest(method, ts.URL+path, bytes.NewReader(raw))
	if err != nil {
		return 0, nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := ts.Client.Do(req)
	if err != nil {
		return 0, nil, err
	}
	defer resp.Body.Close()

	var result map[string]any
	if resp.Header.Get("Content-Type") == "application/json" {
		if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
			return resp.StatusCode, nil, err
		}
	}
	return resp.StatusCode, result, nil
}

// processSentence posts a sentence for userID anonymously and requires 200.
func (ts *testServer) processSentence(t *testing.T, userID int64, sentence string) map[string]any {
	t.Helper()
	status, result := ts.do(t, http.MethodPost, "/api/words", map[string]any{
		"userId":   userID,
		"sentence": sentence,
	}, "")
	require.Equal(t, http.StatusOK, status, "process %q: %v", sentence, result)
	return result
}

func statsPath(userID int64, days int) string {
	if days == 0 {
		return fmt.Sprintf("/api/users/%d/stats", userID)
	}
	return fmt.Sprintf("/api/users/%d/stats?days=%d", userID, days)
}

// stringsOf converts a decoded JSON array of strings.
func stringsOf(t *testing.T, v any) []string {
	t.Helper()
	arr, ok := v.([]any)
	require.True(t, ok, "expected array, got %T", v)
	out := make([]string, 0, len(arr))
	for _, item := range arr {
		s, ok := item.(string)
		require.True(t, ok, "expected string, got %T", item)
		out = append(out, s)
	}
	return out
}
