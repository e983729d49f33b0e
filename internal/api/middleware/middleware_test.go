package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"golang.org/x/time/rate"

	"github.com/1122padelclub/padel-app-sub002/pkg/metrics"
)

func newRouter(mw ...mux.MiddlewareFunc) *mux.Router {
	r := mux.NewRouter()
	r.Use(mw...)
	r.HandleFunc("/venues/{venueId}/slots", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}).Methods(http.MethodGet)
	return r
}

func TestMetricsMiddleware_UsesRouteTemplate(t *testing.T) {
	m := metrics.NewWithRegistry("test", prometheus.NewRegistry())
	router := newRouter(MetricsMiddleware(m))

	for _, venue := range []string{"a", "b"} {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/venues/"+venue+"/slots", nil))
		assert.Equal(t, http.StatusTeapot, rec.Code)
	}

	count := testutil.ToFloat64(m.HTTPRequestsTotal.WithLabelValues(http.MethodGet, "/venues/{venueId}/slots", "418"))
	assert.Equal(t, float64(2), count)
}

func TestMetricsMiddleware_NilMetrics(t *testing.T) {
	router := newRouter(MetricsMiddleware(nil))

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/venues/a/slots", nil))
	assert.Equal(t, http.StatusTeapot, rec.Code)
}

func TestRateLimit(t *testing.T) {
	m := metrics.NewWithRegistry("test", prometheus.NewRegistry())
	limiter := NewIPRateLimiter(rate.Limit(1), 2)
	fixed := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	limiter.now = func() time.Time { return fixed }

	router := newRouter(RateLimit(limiter, m))

	do := func(ip string) int {
		req := httptest.NewRequest(http.MethodGet, "/venues/a/slots", nil)
		req.RemoteAddr = ip + ":5555"
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		return rec.Code
	}

	assert.Equal(t, http.StatusTeapot, do("10.0.0.1"))
	assert.Equal(t, http.StatusTeapot, do("10.0.0.1"))
	assert.Equal(t, http.StatusTooManyRequests, do("10.0.0.1"))

	// другой клиент имеет свой лимит
	assert.Equal(t, http.StatusTeapot, do("10.0.0.2"))

	// через секунду токен восстанавливается
	fixed = fixed.Add(time.Second)
	assert.Equal(t, http.StatusTeapot, do("10.0.0.1"))

	assert.Equal(t, float64(1), testutil.ToFloat64(m.HTTPRateLimited.WithLabelValues("/venues/{venueId}/slots")))
}

func TestIPRateLimiter_Cleanup(t *testing.T) {
	limiter := NewIPRateLimiter(rate.Limit(1), 1)
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	limiter.now = func() time.Time { return now }

	limiter.Allow("a")
	now = now.Add(idleTTL / 2)
	limiter.Allow("b")
	assert.Equal(t, 2, limiter.Len())

	now = now.Add(idleTTL/2 + time.Second)
	limiter.Cleanup()
	assert.Equal(t, 1, limiter.Len())
}

func TestClientIP(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "192.168.1.10:1234"
	assert.Equal(t, "192.168.1.10", clientIP(req))

	req.Header.Set("X-Forwarded-For", "203.0.113.5, 10.0.0.1")
	assert.Equal(t, "203.0.113.5", clientIP(req))
}
