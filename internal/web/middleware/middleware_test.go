package middleware

import (
	"bytes"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/JonMunkholm/prospect-explorer/internal/config"
	"github.com/JonMunkholm/prospect-explorer/internal/logging"
)

var okHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
	w.Write([]byte(r.RemoteAddr))
})

func TestTrustedRealIP(t *testing.T) {
	handler := TrustedRealIP([]string{"10.0.0.0/8", "127.0.0.1", "not-a-cidr"})(okHandler)

	tests := []struct {
		name       string
		remoteAddr string
		headers    map[string]string
		want       string
	}{
		{"untrusted peer keeps address", "203.0.113.9:4000", map[string]string{"X-Real-IP": "1.2.3.4"}, "203.0.113.9:4000"},
		{"trusted X-Real-IP", "10.1.2.3:4000", map[string]string{"X-Real-IP": "198.51.100.7"}, "198.51.100.7"},
		{"trusted single IP", "127.0.0.1:4000", map[string]string{"X-Real-IP": "198.51.100.8"}, "198.51.100.8"},
		{"first X-Forwarded-For hop", "10.1.2.3:4000", map[string]string{"X-Forwarded-For": "198.51.100.9, 10.0.0.2"}, "198.51.100.9"},
		{"invalid header ignored", "10.1.2.3:4000", map[string]string{"X-Real-IP": "garbage"}, "10.1.2.3:4000"},
		{"invalid X-Real-IP falls back to X-Forwarded-For", "10.1.2.3:4000", map[string]string{"X-Real-IP": "garbage", "X-Forwarded-For": "198.51.100.10"}, "198.51.100.10"},
		{"untrusted IPv6 peer", "[::1]:4000", map[string]string{"X-Real-IP": "198.51.100.11"}, "[::1]:4000"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.RemoteAddr = tt.remoteAddr
			for k, v := range tt.headers {
				req.Header.Set(k, v)
			}
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			if got := rec.Body.String(); got != tt.want {
				t.Errorf("RemoteAddr = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestClientIP(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "[2001:db8::1]:443"
	if got := ClientIP(req); got != "2001:db8::1" {
		t.Errorf("ClientIP() = %q", got)
	}
	req.RemoteAddr = "unix"
	if got := ClientIP(req); got != "unix" {
		t.Errorf("ClientIP() = %q, want raw RemoteAddr", got)
	}
}

func TestAPIKeyAuth(t *testing.T) {
	tests := []struct {
		name string
		cfg  config.SecurityConfig
		key  string
		want int
	}{
		{"disabled", config.SecurityConfig{}, "", http.StatusOK},
		{"missing key", config.SecurityConfig{RequireAPIKey: true, APIKeys: []string{"k1"}}, "", http.StatusUnauthorized},
		{"wrong key", config.SecurityConfig{RequireAPIKey: true, APIKeys: []string{"k1"}}, "k2", http.StatusForbidden},
		{"second key", config.SecurityConfig{RequireAPIKey: true, APIKeys: []string{"k1", "k2"}}, "k2", http.StatusOK},
		{"no keys configured", config.SecurityConfig{RequireAPIKey: true}, "k1", http.StatusForbidden},
		{"bearer token", config.SecurityConfig{RequireAPIKey: true, APIKeys: []string{"k1"}}, "Bearer k1", http.StatusOK},
		{"wrong bearer token", config.SecurityConfig{RequireAPIKey: true, APIKeys: []string{"k1"}}, "Bearer k2", http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/columns", nil)
			if token, ok := strings.CutPrefix(tt.key, "Bearer "); ok {
				req.Header.Set("Authorization", "Bearer "+token)
			} else if tt.key != "" {
				req.Header.Set("X-API-Key", tt.key)
			}
			rec := httptest.NewRecorder()
			APIKeyAuth(&tt.cfg)(okHandler).ServeHTTP(rec, req)

			if rec.Code != tt.want {
				t.Errorf("status = %d, want %d", rec.Code, tt.want)
			}
			if tt.want != http.StatusOK && rec.Header().Get("Content-Type") != "application/json" {
				t.Errorf("Content-Type = %q, want application/json", rec.Header().Get("Content-Type"))
			}
		})
	}
}

func TestLogger(t *testing.T) {
	var buf bytes.Buffer
	prev := slog.Default()
	logging.SetupWriter(&buf, "info", "text")
	t.Cleanup(func() { slog.SetDefault(prev) })

	handler := Logger(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
		w.WriteHeader(http.StatusOK) // ignored
	}))

	req := httptest.NewRequest(http.MethodPost, "/mapping", nil)
	req.RemoteAddr = "192.0.2.10:5555"
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	line := buf.String()
	for _, want := range []string{"msg=request", "method=POST", "path=/mapping", "status=418", "ip=192.0.2.10"} {
		if !strings.Contains(line, want) {
			t.Errorf("log line %q does not contain %q", line, want)
		}
	}
	if rec.Code != http.StatusTeapot {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusTeapot)
	}
}

func TestLogger_LevelAndBytes(t *testing.T) {
	tests := []struct {
		status int
		level  string
	}{
		{http.StatusOK, "level=INFO"},
		{http.StatusNotFound, "level=WARN"},
		{http.StatusBadGateway, "level=ERROR"},
	}

	for _, tt := range tests {
		t.Run(http.StatusText(tt.status), func(t *testing.T) {
			var buf bytes.Buffer
			prev := slog.Default()
			logging.SetupWriter(&buf, "debug", "text")
			t.Cleanup(func() { slog.SetDefault(prev) })

			handler := Logger(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte("hello"))
			}))
			handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))

			assert.Contains(t, buf.String(), tt.level)
			assert.Contains(t, buf.String(), "bytes=5")
		})
	}
}
