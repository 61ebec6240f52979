package gemini_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/mshepherd/apilens/internal/gemini"
	"github.com/stretchr/testify/assert"
)

func newTestClient(baseURL string) *gemini.Client {
	return gemini.NewClient(gemini.Config{
		APIKey:         "test-key",
		Model:          "gemini-2.0-flash",
		BaseURL:        baseURL,
		RequestTimeout: 5 * time.Second,
	})
}

func TestGenerateText_ParsesFirstCandidate(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1beta/models/gemini-2.0-flash:generateContent", r.URL.Path)
		assert.Equal(t, "test-key", r.URL.Query().Get("key"))

		var req map[string]interface{}
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"candidates":[{"content":{"parts":[{"text":"# API Documentation"}]}}]}`))
	}))
	defer upstream.Close()

	client := newTestClient(upstream.URL)
	text, err := client.GenerateText(context.Background(), "document this")

	assert.NoError(t, err)
	assert.Equal(t, "# API Documentation", text)
}

func TestGenerateText_UpstreamError(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer upstream.Close()

	client := newTestClient(upstream.URL)
	_, err := client.GenerateText(context.Background(), "document this")

	assert.ErrorContains(t, err, "api request failed")
}

func TestGenerateText_EmptyCandidates(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"candidates":[]}`))
	}))
	defer upstream.Close()

	client := newTestClient(upstream.URL)
	_, err := client.GenerateText(context.Background(), "document this")

	assert.ErrorContains(t, err, "no candidates")
}

func TestConfigured(t *testing.T) {
	assert.True(t, newTestClient("http://example.com").Configured())
	assert.False(t, gemini.NewClient(gemini.Config{}).Configured())
}
