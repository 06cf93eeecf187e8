package limiter

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"golang.org/x/time/rate"
)

func requestFrom(addr string) *http.Request {
	r := httptest.NewRequest(http.MethodPost, "/api/auth/login", nil)
	r.RemoteAddr = addr
	return r
}

func TestMiddleware_BurstThenReject(t *testing.T) {
	l := NewIPRateLimiter(rate.Limit(0.001), 2)
	defer l.Stop()

	h := l.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, requestFrom("198.51.100.7:1234"))
		codes = append(codes, rec.Code)
	}

	assert.Equal(t, []int{http.StatusNoContent, http.StatusNoContent, http.StatusTooManyRequests}, codes)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, requestFrom("198.51.100.8:1234"))
	assert.Equal(t, http.StatusNoContent, rec.Code, "other IPs have their own bucket")
}

func TestEvictIdle(t *testing.T) {
	l := NewIPRateLimiter(rate.Limit(1), 1)
	defer l.Stop()

	l.GetLimiter("a").Allow()
	l.GetLimiter("b")

	removed, remaining := l.evictIdle(time.Now())
	assert.Equal(t, 1, removed)
	assert.Equal(t, 1, remaining)

	removed, remaining = l.evictIdle(time.Now().Add(time.Minute))
	assert.Equal(t, 1, removed)
	assert.Equal(t, 0, remaining)
}

func TestClientIP(t *testing.T) {
	assert.Equal(t, "10.0.0.1", ClientIP(requestFrom("10.0.0.1:9")))
	assert.Equal(t, "10.0.0.1", ClientIP(requestFrom("10.0.0.1")))
	assert.Equal(t, "unknown_ip", ClientIP(requestFrom("")))
}

func TestStop_Idempotent(t *testing.T) {
	l := NewIPRateLimiter(rate.Limit(1), 1)
	assert.NotPanics(t, func() {
		l.Stop()
		l.Stop()
	})
}
