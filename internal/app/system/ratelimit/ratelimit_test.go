package ratelimit

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestLimiter_AllowAndExpire(t *testing.T) {
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	l := New(2, time.Minute)
	l.now = func() time.Time { return now }

	if !l.Allow("a") || !l.Allow("a") {
		t.Fatal("first two requests should be allowed")
	}
	if l.Allow("a") {
		t.Error("third request should be limited")
	}
	if got := l.Remaining("a"); got != 0 {
		t.Errorf("Remaining = %d, want 0", got)
	}
	if !l.Allow("b") {
		t.Error("other keys are independent")
	}

	now = now.Add(time.Minute + time.Second)
	if !l.Allow("a") {
		t.Error("request after the window should be allowed")
	}
	if got := l.Remaining("a"); got != 1 {
		t.Errorf("Remaining = %d, want 1", got)
	}
}

func TestSweep_StopsWithContext(t *testing.T) {
	l := New(1, time.Millisecond)
	l.Allow("a")

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		l.Sweep(ctx, time.Millisecond)
		close(done)
	}()

	time.Sleep(20 * time.Millisecond)
	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Sweep did not return after cancel")
	}

	l.mu.Lock()
	n := len(l.windows)
	l.mu.Unlock()
	if n != 0 {
		t.Errorf("windows = %d, want expired entries removed", n)
	}
}

func TestMiddleware(t *testing.T) {
	ok := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusNoContent) })
	h := Middleware(New(1, time.Minute), nil)(ok)

	tests := []struct {
		ip     string
		status int
	}{
		{"10.0.0.1", http.StatusNoContent},
		{"10.0.0.1", http.StatusTooManyRequests},
		{"10.0.0.2", http.StatusNoContent},
	}
	for i, tt := range tests {
		req := httptest.NewRequest("POST", "/coleccion", nil)
		req.Header.Set("X-Forwarded-For", tt.ip+", 192.168.1.1")
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		if rec.Code != tt.status {
			t.Errorf("request %d from %s: status %d, want %d", i+1, tt.ip, rec.Code, tt.status)
		}
		if tt.status == http.StatusTooManyRequests && rec.Header().Get("Retry-After") != "60" {
			t.Errorf("Retry-After = %q, want 60", rec.Header().Get("Retry-After"))
		}
	}

	if Middleware(nil, nil)(ok) == nil {
		t.Error("nil limiter should pass through")
	}
}

func TestClientIP(t *testing.T) {
	tests := []struct {
		name    string
		headers map[string]string
		remote  string
		want    string
	}{
		{"forwarded", map[string]string{"X-Forwarded-For": "1.2.3.4, 5.6.7.8"}, "9.9.9.9:1234", "1.2.3.4"},
		{"real ip", map[string]string{"X-Real-IP": " 1.2.3.4 "}, "9.9.9.9:1234", "1.2.3.4"},
		{"remote addr", nil, "9.9.9.9:1234", "9.9.9.9"},
		{"remote without port", nil, "9.9.9.9", "9.9.9.9"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/", nil)
			req.RemoteAddr = tt.remote
			for k, v := range tt.headers {
				req.Header.Set(k, v)
			}
			if got := ClientIP(req); got != tt.want {
				t.Errorf("ClientIP() = %q, want %q", got, tt.want)
			}
		})
	}
}
