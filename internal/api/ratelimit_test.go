package api

import (
	"net/http/httptest"
	"testing"
	"time"
)

func TestIPRateLimiterBurst(t *testing.T) {
	rl := NewIPRateLimiter(RateLimitConfig{RequestsPerSecond: 0.001, Burst: 3, CleanupInterval: time.Hour})
	defer rl.Stop()

	for i := 0; i < 3; i++ {
		if !rl.Allow("10.0.0.1") {
			t.Fatalf("Request %d should be allowed", i)
		}
	}
	if rl.Allow("10.0.0.1") {
		t.Error("Request past burst should be rejected")
	}
	if !rl.Allow("10.0.0.2") {
		t.Error("Other IPs have their own bucket")
	}

	stats := rl.GetStats()
	if stats["allowed"] != 4 || stats["rejected"] != 1 {
		t.Errorf("Unexpected stats: %v", stats)
	}
}

func TestWebSocketRateLimiter(t *testing.T) {
	wrl := NewWebSocketRateLimiter(2)

	if !wrl.Allow("a") || !wrl.Allow("a") {
		t.Fatal("First two connections should be allowed")
	}
	if wrl.Allow("a") {
		t.Error("Third connection should be rejected")
	}

	wrl.Release("a")
	if !wrl.Allow("a") {
		t.Error("Released slot should be reusable")
	}

	// Extra releases never push the count negative
	for i := 0; i < 5; i++ {
		wrl.Release("a")
	}
	if got := wrl.GetConnectionCount("a"); got != 0 {
		t.Errorf("Expected count 0, got %d", got)
	}
	wrl.Release("unknown")
}

func TestIsAllowedOrigin(t *testing.T) {
	tests := []struct {
		origin string
		want   bool
	}{
		{"", false},
		{"http://localhost", true},
		{"http://localhost:5173", true},
		{"http://127.0.0.1", true},
		{"http://127.0.0.1:3000", true},
		{"http://localhost.evil.example", false},
		{"https://example.com", false},
	}

	for _, tt := range tests {
		t.Run(tt.origin, func(t *testing.T) {
			if got := IsAllowedOrigin(tt.origin); got != tt.want {
				t.Errorf("IsAllowedOrigin(%q) = %v, want %v", tt.origin, got, tt.want)
			}
		})
	}
}

func TestGetClientIP(t *testing.T) {
	tests := []struct {
		name   string
		header string
		value  string
		want   string
	}{
		{"remote addr", "", "", "192.0.2.1"},
		{"forwarded chain", "X-Forwarded-For", "203.0.113.5, 10.0.0.1", "203.0.113.5"},
		{"real ip", "X-Real-IP", " 198.51.100.7 ", "198.51.100.7"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest("GET", "/", nil)
			if tt.header != "" {
				r.Header.Set(tt.header, tt.value)
			}
			if got := GetClientIP(r); got != tt.want {
				t.Errorf("GetClientIP = %q, want %q", got, tt.want)
			}
		})
	}
}
