// Package lemmatizer implements the Lemma Resolver: an HTTP client for the
// external NLP lemmatization service.
package lemmatizer

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/heartmarshall/lexitrack/internal/config"
	"github.com/heartmarshall/lexitrack/internal/domain"
)

const (
	lemmatizePath = "/lemmatize"
	identityPOS   = "NOUN"
	maxBodyBytes  = 4 << 20
	retryDelay    = 200 * time.Millisecond
)

// Client calls the lemmatization service. It is safe for concurrent use and
// meant to be created once per process so connections are reused.
type Client struct {
	baseURL    string
	budget     time.Duration
	httpClient *http.Client
	tracer     trace.Tracer
	log        *slog.Logger
}

// NewClient creates a Client with a pooled transport bounded by the
// configured connect and read timeouts.
func NewClient(cfg config.LemmatizerConfig, logger *slog.Logger) *Client {
	transport := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   cfg.ConnectTimeout,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		TLSHandshakeTimeout:   cfg.ConnectTimeout,
		ResponseHeaderTimeout: cfg.ReadTimeout,
		MaxIdleConns:          cfg.MaxIdleConns,
		MaxIdleConnsPerHost:   cfg.MaxIdleConns,
		IdleConnTimeout:       90 * time.Second,
	}

	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		budget:  cfg.ConnectTimeout + cfg.ReadTimeout,
		httpClient: &http.Client{
			Transport: transport,
			Timeout:   cfg.ConnectTimeout + cfg.ReadTimeout,
		},
		tracer: otel.Tracer("lexitrack/lemmatizer"),
		log:    logger.With("adapter", "lemmatizer"),
	}
}

type request struct {
	Sentence string `json:"sentence"`
}

type tuple struct {
	Word string  `json:"word"`
	Root *string `json:"root"`
	POS  string  `json:"pos"`
}

// Resolve sends tokens to the service as one space-joined sentence and
// returns its tuples in the order received. The service tokenizes on its own,
// so the result may hold more tuples than tokens (punctuation split off).
//
// A 4xx response yields the identity mapping instead of an error. Transport
// failures, timeouts, 5xx responses and malformed bodies return an error
// wrapping domain.ErrServiceUnavailable. All attempts, retry included, share
// one connect+read deadline.
func (c *Client) Resolve(ctx context.Context, tokens []string) ([]domain.ResolvedToken, error) {
	if len(tokens) == 0 {
		return []domain.ResolvedToken{}, nil
	}

	ctx, span := c.tracer.Start(ctx, "lemmatizer.Resolve",
		trace.WithAttributes(attribute.Int("lemmatizer.tokens", len(tokens))))
	defer span.End()

	if c.budget > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.budget)
		defer cancel()
	}

	out, err := c.resolve(ctx, tokens)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	span.SetAttributes(attribute.Int("lemmatizer.tuples", len(out)))
	return out, nil
}

func (c *Client) resolve(ctx context.Context, tokens []string) ([]domain.ResolvedToken, error) {
	body, err := json.Marshal(request{Sentence: strings.Join(tokens, " ")})
	if err != nil {
		return nil, fmt.Errorf("lemmatizer: encode request: %w", err)
	}

	c.log.DebugContext(ctx, "lemmatizer request", slog.Int("tokens", len(tokens)))

	start := time.Now()
	resp, err := c.doWithRetry(ctx, body)
	if err != nil {
		return nil, fmt.Errorf("lemmatizer: request failed: %w: %w", domain.ErrServiceUnavailable, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode >= http.StatusInternalServerError:
		return nil, fmt.Errorf("lemmatizer: status %d: %w", resp.StatusCode, domain.ErrServiceUnavailable)
	case resp.StatusCode >= http.StatusBadRequest:
		c.log.WarnContext(ctx, "lemmatizer rejected request, using identity mapping",
			slog.Int("status", resp.StatusCode))
		return identity(tokens), nil
	case resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices:
		return nil, fmt.Errorf("lemmatizer: unexpected status %d: %w", resp.StatusCode, domain.ErrServiceUnavailable)
	}

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("lemmatizer: read body: %w: %w", domain.ErrServiceUnavailable, err)
	}

	var tuples []tuple
	if err := json.Unmarshal(raw, &tuples); err != nil {
		return nil, fmt.Errorf("lemmatizer: decode json: %w: %w", domain.ErrServiceUnavailable, err)
	}
	if tuples == nil {
		return nil, fmt.Errorf("lemmatizer: null body: %w", domain.ErrServiceUnavailable)
	}

	out := make([]domain.ResolvedToken, 0, len(tuples))
	for _, t := range tuples {
		rt := domain.ResolvedToken{Surface: t.Word, POS: t.POS}
		if t.Root != nil && *t.Root != "" {
			root := *t.Root
			rt.Lemma = &root
		}
		out = append(out, rt)
	}

	c.log.DebugContext(ctx, "lemmatizer response",
		slog.Int("status", resp.StatusCode),
		slog.Int("tuples", len(out)),
		slog.Duration("took", time.Since(start)),
	)

	return out, nil
}

// doWithRetry executes the request with a single retry on 5xx or network
// errors. The retry is skipped once ctx is done or its deadline leaves no
// room past retryDelay.
func (c *Client) doWithRetry(ctx context.Context, body []byte) (*http.Response, error) {
	resp, err := c.do(ctx, body)

	shouldRetry := err != nil || resp.StatusCode >= http.StatusInternalServerError
	if !shouldRetry || ctx.Err() != nil || isTimeout(err) || !roomForRetry(ctx) {
		return resp, err
	}

	reason := "network error"
	if err == nil {
		reason = fmt.Sprintf("status %d", resp.StatusCode)
		resp.Body.Close()
	}
	c.log.WarnContext(ctx, "lemmatizer retry", slog.String("reason", reason))

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-time.After(retryDelay):
	}

	return c.do(ctx, body)
}

func (c *Client) do(ctx context.Context, body []byte) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+lemmatizePath, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	return c.httpClient.Do(req)
}

func roomForRetry(ctx context.Context) bool {
	deadline, ok := ctx.Deadline()
	return !ok || time.Until(deadline) > 2*retryDelay
}

// isTimeout reports whether err is a timeout. A timed-out call already spent
// the read budget, so it is not retried.
func isTimeout(err error) bool {
	if err == nil {
		return false
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}

// identity maps every token to its lowercased self tagged as a noun.
func identity(tokens []string) []domain.ResolvedToken {
	out := make([]domain.ResolvedToken, len(tokens))
	for i, tok := range tokens {
		lemma := strings.ToLower(tok)
		out[i] = domain.ResolvedToken{Surface: tok, Lemma: &lemma, POS: identityPOS}
	}
	return out
}
