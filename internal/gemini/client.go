// Package gemini is a thin HTTP client for the Google Generative Language
// API. The service is an opaque collaborator: it receives a prompt string
// and returns a text blob.
package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// Config holds client configuration.
type Config struct {
	APIKey         string
	Model          string
	BaseURL        string
	RequestTimeout time.Duration
}

// Client calls the generateContent endpoint for a fixed model.
type Client struct {
	config Config
	client *http.Client
}

// NewClient creates a new Client.
func NewClient(config Config) *Client {
	return &Client{
		config: config,
		client: &http.Client{Timeout: config.RequestTimeout},
	}
}

// Configured reports whether the client has an API key.
func (c *Client) Configured() bool {
	return c.config.APIKey != ""
}

// generateContent request/response wire types. Only the fields this
// service reads are modeled.

type generateRequest struct {
	Contents []content `json:"contents"`
}

type content struct {
	Parts []part `json:"parts"`
}

type part struct {
	Text string `json:"text"`
}

type generateResponse struct {
	Candidates []struct {
		Content struct {
			Parts []part `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

// GenerateText sends prompt to the model and returns the first candidate
// text.
func (c *Client) GenerateText(ctx context.Context, prompt string) (string, error) {
	endpoint := fmt.Sprintf("%s/v1beta/models/%s:generateContent?key=%s",
		c.config.BaseURL, c.config.Model, url.QueryEscape(c.config.APIKey))

	payload, err := json.Marshal(generateRequest{
		Contents: []content{{Parts: []part{{Text: prompt}}}},
	})
	if err != nil {
		return "", fmt.Errorf("failed to encode prompt: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		// Drain a bounded amount so the connection can be reused.
		io.CopyN(io.Discard, resp.Body, 4096)
		return "", fmt.Errorf("api request failed: %s", resp.Status)
	}

	var decoded generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return "", fmt.Errorf("failed to decode response: %w", err)
	}

	if len(decoded.Candidates) == 0 || len(decoded.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("response contained no candidates")
	}
	return decoded.Candidates[0].Content.Parts[0].Text, nil
}
