package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

// newTestLimiter pins the limiter's clock so window expiry can be stepped
// without sleeping.
func newTestLimiter(requests int, window time.Duration, now *time.Time) *RateLimiter {
	rl := NewRateLimiter(requests, window)
	rl.now = func() time.Time { return *now }
	return rl
}

func doRequest(handler http.Handler, headers map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest("GET", "/api/feed", nil)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	return rr
}

func TestRateLimiter_FixedWindow(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	rl := newTestLimiter(2, time.Minute, &now)
	handler := rl.Middleware(okHandler())

	assert.Equal(t, http.StatusOK, doRequest(handler, nil).Code)
	assert.Equal(t, http.StatusOK, doRequest(handler, nil).Code)

	denied := doRequest(handler, nil)
	require.Equal(t, http.StatusTooManyRequests, denied.Code)
	assert.NotEmpty(t, denied.Header().Get("Retry-After"))
}

func TestRateLimiter_WindowReset(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	rl := newTestLimiter(1, time.Minute, &now)
	handler := rl.Middleware(okHandler())

	assert.Equal(t, http.StatusOK, doRequest(handler, nil).Code)
	assert.Equal(t, http.StatusTooManyRequests, doRequest(handler, nil).Code)

	now = now.Add(61 * time.Second)
	assert.Equal(t, http.StatusOK, doRequest(handler, nil).Code, "count resets once the window passes")
}

func TestRateLimiter_KeysAuthenticatedClientsByViewer(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	rl := newTestLimiter(1, time.Minute, &now)
	viewer := NewViewerMiddleware(testSecret)

	// Same chain order as the route group: viewer resolution first, then the
	// limiter, so authenticated requests are keyed by viewer id.
	handler := viewer.OptionalViewer(rl.Middleware(okHandler()))

	tokenA := map[string]string{"Authorization": "Bearer " + mintToken(t, testSecret, "1", time.Hour)}
	tokenB := map[string]string{"Authorization": "Bearer " + mintToken(t, testSecret, "2", time.Hour)}

	// Two viewers behind the same address each get their own budget.
	assert.Equal(t, http.StatusOK, doRequest(handler, tokenA).Code)
	assert.Equal(t, http.StatusOK, doRequest(handler, tokenB).Code)
	assert.Equal(t, http.StatusTooManyRequests, doRequest(handler, tokenA).Code)

	// The anonymous budget for that address is still untouched.
	assert.Equal(t, http.StatusOK, doRequest(handler, nil).Code)
	assert.Equal(t, http.StatusTooManyRequests, doRequest(handler, nil).Code)
}
