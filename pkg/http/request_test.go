package http_test

import (
	"net/http/httptest"
	"testing"

	pkghttp "github.com/mshepherd/apilens/pkg/http"
	"github.com/stretchr/testify/assert"
)

func TestClientIdentity_ForwardedForTakesFirstEntry(t *testing.T) {
	req := httptest.NewRequest("POST", "/api/verify-key", nil)
	req.Header.Set("X-Forwarded-For", "203.0.113.7, 10.0.0.1, 10.0.0.2")
	req.Header.Set("X-Real-IP", "10.0.0.9")

	assert.Equal(t, "203.0.113.7", pkghttp.ClientIdentity(req))
}

func TestClientIdentity_HeaderPriority(t *testing.T) {
	tests := []struct {
		name     string
		headers  map[string]string
		expected string
	}{
		{
			name: "cloudflare beats akamai",
			headers: map[string]string{
				"CF-Connecting-IP": "198.51.100.1",
				"True-Client-IP":   "198.51.100.2",
				"X-Real-IP":        "198.51.100.3",
			},
			expected: "198.51.100.1",
		},
		{
			name: "akamai beats nginx",
			headers: map[string]string{
				"True-Client-IP": "198.51.100.2",
				"X-Real-IP":      "198.51.100.3",
			},
			expected: "198.51.100.2",
		},
		{
			name:     "nginx real ip",
			headers:  map[string]string{"X-Real-IP": "198.51.100.3"},
			expected: "198.51.100.3",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("POST", "/api/verify-key", nil)
			for k, v := range tt.headers {
				req.Header.Set(k, v)
			}
			assert.Equal(t, tt.expected, pkghttp.ClientIdentity(req))
		})
	}
}

func TestClientIdentity_FallsBackToHost(t *testing.T) {
	req := httptest.NewRequest("POST", "http://example.com:8080/api/verify-key", nil)

	assert.Equal(t, "example.com", pkghttp.ClientIdentity(req))
}
