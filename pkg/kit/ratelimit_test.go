package kit

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func limited(t *testing.T, limit int) http.Handler {
	t.Helper()

	rl := NewIPRateLimiter(limit, 60)
	return rl.Middleware(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
}

func hit(h http.Handler, remoteAddr, xff string) int {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = remoteAddr
	if xff != "" {
		req.Header.Set("X-Forwarded-For", xff)
	}

	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w.Code
}

func TestIPRateLimiter_BlocksOverLimit(t *testing.T) {
	h := limited(t, 3)

	for i := 0; i < 3; i++ {
		if code := hit(h, "10.0.0.1:1234", ""); code != http.StatusOK {
			t.Fatalf("hit %d code=%d", i, code)
		}
	}
	if code := hit(h, "10.0.0.1:1234", ""); code != http.StatusTooManyRequests {
		t.Fatalf("code=%d", code)
	}
}

func TestIPRateLimiter_IPsAreIndependent(t *testing.T) {
	h := limited(t, 1)

	if code := hit(h, "10.0.0.1:1234", ""); code != http.StatusOK {
		t.Fatalf("code=%d", code)
	}
	if code := hit(h, "10.0.0.2:1234", ""); code != http.StatusOK {
		t.Fatalf("second ip blocked: %d", code)
	}
	if code := hit(h, "10.0.0.1:9999", ""); code != http.StatusTooManyRequests {
		t.Fatalf("same ip new port not counted: %d", code)
	}
}

func TestIPRateLimiter_UsesForwardedFor(t *testing.T) {
	h := limited(t, 1)

	if code := hit(h, "127.0.0.1:1", "203.0.113.7, 10.0.0.1"); code != http.StatusOK {
		t.Fatalf("code=%d", code)
	}
	if code := hit(h, "127.0.0.1:2", "203.0.113.7"); code != http.StatusTooManyRequests {
		t.Fatalf("forwarded ip not keyed: %d", code)
	}
}
