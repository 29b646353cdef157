package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func echoRemoteAddr() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(r.RemoteAddr))
	})
}

func TestTrustedRealIP(t *testing.T) {
	tests := []struct {
		name    string
		trusted []string
		remote  string
		headers map[string]string
		want    string
	}{
		{
			name:    "trusted proxy real ip",
			trusted: []string{"10.0.0.0/8"},
			remote:  "10.1.2.3:5000",
			headers: map[string]string{"X-Real-IP": "203.0.113.7"},
			want:    "203.0.113.7",
		},
		{
			name:    "trusted proxy forwarded for takes first",
			trusted: []string{"10.0.0.1"},
			remote:  "10.0.0.1:5000",
			headers: map[string]string{"X-Forwarded-For": "198.51.100.4, 10.0.0.1"},
			want:    "198.51.100.4",
		},
		{
			name:    "untrusted source ignored",
			trusted: []string{"10.0.0.0/8"},
			remote:  "192.0.2.9:4000",
			headers: map[string]string{"X-Real-IP": "203.0.113.7"},
			want:    "192.0.2.9:4000",
		},
		{
			name:    "invalid header ignored",
			trusted: []string{"127.0.0.1/32"},
			remote:  "127.0.0.1:1234",
			headers: map[string]string{"X-Real-IP": "not-an-ip"},
			want:    "127.0.0.1:1234",
		},
		{
			name:    "bad cidr skipped",
			trusted: []string{"garbage", ""},
			remote:  "127.0.0.1:1234",
			headers: map[string]string{"X-Real-IP": "203.0.113.7"},
			want:    "127.0.0.1:1234",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.RemoteAddr = tt.remote
			for k, v := range tt.headers {
				req.Header.Set(k, v)
			}
			rec := httptest.NewRecorder()

			TrustedRealIP(tt.trusted)(echoRemoteAddr()).ServeHTTP(rec, req)
			assert.Equal(t, tt.want, rec.Body.String())
		})
	}
}

func TestClientIP(t *testing.T) {
	tests := map[string]string{
		"203.0.113.7:50001": "203.0.113.7",
		"[2001:db8::1]:443": "2001:db8::1",
		"203.0.113.7":       "203.0.113.7",
		"2001:db8::1":       "2001:db8::1",
	}
	for addr, want := range tests {
		assert.Equal(t, want, ClientIP(addr), addr)
	}
}

func TestAPIKeyAuth(t *testing.T) {
	tests := []struct {
		name   string
		keys   []string
		header string
		want   int
	}{
		{"disabled", nil, "", http.StatusOK},
		{"missing key", []string{"k1"}, "", http.StatusUnauthorized},
		{"wrong key", []string{"k1"}, "nope", http.StatusForbidden},
		{"valid second key", []string{"k1", "k2"}, "k2", http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/tables", nil)
			if tt.header != "" {
				req.Header.Set("X-API-Key", tt.header)
			}
			rec := httptest.NewRecorder()

			APIKeyAuth(tt.keys)(echoRemoteAddr()).ServeHTTP(rec, req)
			assert.Equal(t, tt.want, rec.Code)
		})
	}
}

func TestLogger_CapturesStatusAndBytes(t *testing.T) {
	var captured *responseWriter
	h := Logger(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		captured = w.(*responseWriter)
		w.WriteHeader(http.StatusTeapot)
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("short and stout"))
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusTeapot, rec.Code)
	assert.Equal(t, http.StatusTeapot, captured.status)
	assert.Equal(t, len("short and stout"), captured.bytes)
}
