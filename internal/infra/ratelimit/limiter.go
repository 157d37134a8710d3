package ratelimit

import (
	"context"
	"math"
	"net"
	"net/http"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/experttechtutors/tutor-leads/internal/infra/metrics"
)

// Contact form submissions: 3 per client every 15 minutes.
const (
	SubmissionWindow  = 15 * time.Minute
	SubmissionLimit   = 3
	SubmissionMessage = "Too many contact form submissions, please try again later."
)

type Result struct {
	Allowed   bool
	Limit     int
	Remaining int
	ResetAt   time.Time
}

// Limiter is a fixed-window counter over a Store.
type Limiter struct {
	store  Store
	limit  int
	window time.Duration
	logger *zap.Logger
	now    func() time.Time
}

func NewLimiter(store Store, limit int, window time.Duration, logger *zap.Logger) *Limiter {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Limiter{store: store, limit: limit, window: window, logger: logger, now: time.Now}
}

// Allow counts one hit for key. When the store fails the request is let
// through and the error is returned for logging.
func (l *Limiter) Allow(ctx context.Context, key string) (Result, error) {
	count, resetAt, err := l.store.Increment(ctx, key, l.window)
	if err != nil {
		return Result{
			Allowed:   true,
			Limit:     l.limit,
			Remaining: l.limit,
			ResetAt:   l.now().Add(l.window),
		}, err
	}

	remaining := l.limit - int(count)
	if remaining < 0 {
		remaining = 0
	}
	return Result{
		Allowed:   count <= int64(l.limit),
		Limit:     l.limit,
		Remaining: remaining,
		ResetAt:   resetAt,
	}, nil
}

// KeyFunc extracts the client identity from a request.
type KeyFunc func(r *http.Request) string

// ClientIP keys on the connection address without its port. Put
// middleware.RealIP in front of the limiter when running behind a proxy.
func ClientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

// Middleware applies the limiter to every request it wraps. onLimited
// writes the rejection; when nil a plain-text 429 is sent.
func (l *Limiter) Middleware(keyFn KeyFunc, onLimited func(w http.ResponseWriter, r *http.Request, res Result)) func(http.Handler) http.Handler {
	if keyFn == nil {
		keyFn = ClientIP
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := keyFn(r)

			res, err := l.Allow(r.Context(), key)
			if err != nil {
				l.logger.Error("rate limit store unavailable, allowing request",
					zap.String("client", key),
					zap.Error(err),
				)
			}

			l.writeHeaders(w, res)

			if !res.Allowed {
				metrics.RecordRateLimited()
				l.logger.Info("rate limit exceeded",
					zap.String("client", key),
					zap.String("path", r.URL.Path),
				)
				w.Header().Set("Retry-After", strconv.Itoa(l.secondsUntil(res.ResetAt)))
				if onLimited != nil {
					onLimited(w, r, res)
					return
				}
				w.Header().Set("Content-Type", "text/plain; charset=utf-8")
				w.WriteHeader(http.StatusTooManyRequests)
				_, _ = w.Write([]byte(SubmissionMessage))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func (l *Limiter) writeHeaders(w http.ResponseWriter, res Result) {
	h := w.Header()
	h.Set("RateLimit-Limit", strconv.Itoa(res.Limit))
	h.Set("RateLimit-Remaining", strconv.Itoa(res.Remaining))
	h.Set("RateLimit-Reset", strconv.Itoa(l.secondsUntil(res.ResetAt)))
}

func (l *Limiter) secondsUntil(t time.Time) int {
	secs := int(math.Ceil(t.Sub(l.now()).Seconds()))
	if secs < 0 {
		return 0
	}
	return secs
}
