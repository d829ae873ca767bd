package middleware

import (
	"math"
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/heartmarshall/lexitrack/pkg/ctxutil"
)

const (
	// idleBucketTTL is how long a caller's bucket survives without requests.
	idleBucketTTL = 10 * time.Minute

	rateLimitedBody = `{"success":false,"error":"rate limit exceeded"}` + "\n"
)

// RateLimiter throttles sentence submissions with one token bucket per
// caller. Authenticated callers are keyed by user id so users behind a
// shared address do not starve each other; anonymous callers are keyed by
// client IP.
type RateLimiter struct {
	buckets sync.Map // callerKey -> *bucket
	stop    chan struct{}
}

type bucket struct {
	mu       sync.Mutex
	tokens   float64
	capacity float64
	perSec   float64
	seen     time.Time
}

// NewRateLimiter starts the idle-bucket sweeper; Stop ends it.
func NewRateLimiter(sweepEvery time.Duration) *RateLimiter {
	rl := &RateLimiter{stop: make(chan struct{})}
	go rl.sweep(sweepEvery)
	return rl
}

func (rl *RateLimiter) Stop() {
	close(rl.stop)
}

// Limit allows each caller perMinute submissions per minute with bursts up
// to perMinute. Rejected requests get 429 with Retry-After in seconds.
func (rl *RateLimiter) Limit(perMinute int) Middleware {
	retryAfter := strconv.Itoa(int(math.Ceil(60 / float64(perMinute))))

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !rl.bucketFor(callerKey(r), perMinute).take(time.Now()) {
				w.Header().Set("Retry-After", retryAfter)
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusTooManyRequests)
				_, _ = w.Write([]byte(rateLimitedBody))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func callerKey(r *http.Request) string {
	if id, ok := ctxutil.UserIDFromCtx(r.Context()); ok {
		return "user:" + strconv.FormatInt(id, 10)
	}
	return "ip:" + clientIP(r)
}

// clientIP drops the port so every connection from one host shares a bucket.
func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

func (rl *RateLimiter) bucketFor(key string, perMinute int) *bucket {
	if b, ok := rl.buckets.Load(key); ok {
		return b.(*bucket)
	}
	capacity := float64(perMinute)
	b, _ := rl.buckets.LoadOrStore(key, &bucket{
		tokens:   capacity,
		capacity: capacity,
		perSec:   capacity / 60,
		seen:     time.Now(),
	})
	return b.(*bucket)
}

func (b *bucket) take(now time.Time) bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.tokens = math.Min(b.capacity, b.tokens+now.Sub(b.seen).Seconds()*b.perSec)
	b.seen = now
	if b.tokens < 1 {
		return false
	}
	b.tokens--
	return true
}

func (b *bucket) idleSince(now time.Time) time.Duration {
	b.mu.Lock()
	defer b.mu.Unlock()
	return now.Sub(b.seen)
}

func (rl *RateLimiter) sweep(every time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()

	for {
		select {
		case <-rl.stop:
			return
		case now := <-ticker.C:
			rl.buckets.Range(func(key, value any) bool {
				if value.(*bucket).idleSince(now) > idleBucketTTL {
					rl.buckets.Delete(key)
				}
				return true
			})
		}
	}
}
