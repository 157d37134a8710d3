package ratelimit

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failingStore struct{}

func (failingStore) Increment(context.Context, string, time.Duration) (int64, time.Time, error) {
	return 0, time.Time{}, errors.New("redis: connection refused")
}

func newTestLimiter(clock *fakeClock) *Limiter {
	store := NewMemoryStore(0)
	store.now = clock.Now
	l := NewLimiter(store, SubmissionLimit, SubmissionWindow, nil)
	l.now = clock.Now
	return l
}

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func post(h http.Handler, remoteAddr string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/contact", nil)
	req.RemoteAddr = remoteAddr
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestLimiter_FourthRequestIsRejected(t *testing.T) {
	clock := newClock()
	h := newTestLimiter(clock).Middleware(ClientIP, nil)(okHandler())

	for i := 0; i < 3; i++ {
		rec := post(h, "203.0.113.7:5000")
		require.Equal(t, http.StatusOK, rec.Code, "request %d", i+1)
		assert.Equal(t, "3", rec.Header().Get("RateLimit-Limit"))
	}

	rec := post(h, "203.0.113.7:5001")
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, SubmissionMessage, rec.Body.String())
	assert.Equal(t, "0", rec.Header().Get("RateLimit-Remaining"))
	assert.Equal(t, "900", rec.Header().Get("RateLimit-Reset"))
	assert.Equal(t, "900", rec.Header().Get("Retry-After"))
}

func TestLimiter_RemainingCountsDown(t *testing.T) {
	h := newTestLimiter(newClock()).Middleware(ClientIP, nil)(okHandler())

	for _, want := range []string{"2", "1", "0"} {
		rec := post(h, "198.51.100.1:1")
		assert.Equal(t, want, rec.Header().Get("RateLimit-Remaining"))
	}
}

func TestLimiter_ClientsAreIsolated(t *testing.T) {
	h := newTestLimiter(newClock()).Middleware(ClientIP, nil)(okHandler())

	for i := 0; i < 4; i++ {
		post(h, "198.51.100.1:1")
	}
	assert.Equal(t, http.StatusOK, post(h, "198.51.100.2:1").Code)
}

func TestLimiter_WindowExpiryAllowsAgain(t *testing.T) {
	clock := newClock()
	h := newTestLimiter(clock).Middleware(ClientIP, nil)(okHandler())

	for i := 0; i < 4; i++ {
		post(h, "198.51.100.1:1")
	}
	clock.Advance(SubmissionWindow)

	assert.Equal(t, http.StatusOK, post(h, "198.51.100.1:1").Code)
}

func TestLimiter_CustomRejection(t *testing.T) {
	var got Result
	onLimited := func(w http.ResponseWriter, r *http.Request, res Result) {
		got = res
		w.WriteHeader(http.StatusTeapot)
	}
	h := newTestLimiter(newClock()).Middleware(ClientIP, onLimited)(okHandler())

	for i := 0; i < 3; i++ {
		post(h, "198.51.100.1:1")
	}
	rec := post(h, "198.51.100.1:1")

	assert.Equal(t, http.StatusTeapot, rec.Code)
	assert.False(t, got.Allowed)
	assert.Equal(t, 0, got.Remaining)
}

func TestLimiter_StoreFailureFailsOpen(t *testing.T) {
	l := NewLimiter(failingStore{}, 3, time.Minute, nil)

	res, err := l.Allow(context.Background(), "k")
	assert.Error(t, err)
	assert.True(t, res.Allowed)

	h := l.Middleware(ClientIP, nil)(okHandler())
	for i := 0; i < 5; i++ {
		assert.Equal(t, http.StatusOK, post(h, "198.51.100.1:1").Code)
	}
}

func TestClientIP(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)

	req.RemoteAddr = "203.0.113.7:5000"
	assert.Equal(t, "203.0.113.7", ClientIP(req))

	req.RemoteAddr = "[2001:db8::1]:443"
	assert.Equal(t, "2001:db8::1", ClientIP(req))

	req.RemoteAddr = "203.0.113.7"
	assert.Equal(t, "203.0.113.7", ClientIP(req))
}
