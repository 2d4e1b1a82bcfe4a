package reqctx

import (
	"context"
	"net/http/httptest"
	"testing"
)

func TestGetClientIP(t *testing.T) {
	tests := []struct {
		name       string
		remoteAddr string
		xff        string
		xri        string
		want       string
	}{
		{"remote addr with port", "192.168.1.10:54321", "", "", "192.168.1.10"},
		{"remote addr without port", "192.168.1.10", "", "", "192.168.1.10"},
		{"ipv6 with port", "[::1]:8080", "", "", "::1"},
		{"ipv6 without port", "[::1]", "", "", "::1"},
		{"single forwarded", "10.0.0.1:80", "203.0.113.5", "", "203.0.113.5"},
		{"forwarded chain", "10.0.0.1:80", "203.0.113.5, 10.0.0.2, 10.0.0.3", "", "203.0.113.5"},
		{"real ip", "10.0.0.1:80", "", "203.0.113.9", "203.0.113.9"},
		{"forwarded beats real ip", "10.0.0.1:80", "203.0.113.5", "203.0.113.9", "203.0.113.5"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest("GET", "/", nil)
			r.RemoteAddr = tt.remoteAddr
			if tt.xff != "" {
				r.Header.Set("X-Forwarded-For", tt.xff)
			}
			if tt.xri != "" {
				r.Header.Set("X-Real-IP", tt.xri)
			}
			if got := GetClientIP(r); got != tt.want {
				t.Errorf("GetClientIP() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestContextRoundTrip(t *testing.T) {
	ctx := context.Background()
	if ClientIP(ctx) != "" || Admin(ctx) != "" {
		t.Error("empty context should yield empty values")
	}
	ctx = WithClientIP(ctx, "1.2.3.4")
	ctx = WithAdmin(ctx, "admin")
	if got := ClientIP(ctx); got != "1.2.3.4" {
		t.Errorf("ClientIP = %q", got)
	}
	if got := Admin(ctx); got != "admin" {
		t.Errorf("Admin = %q", got)
	}
}
