package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/mshepherd/apilens/internal/services"
	pkghttp "github.com/mshepherd/apilens/pkg/http"
	"github.com/stretchr/testify/assert"
)

// NewTestRequest creates an HTTP request with JSON body for testing
func NewTestRequest(t *testing.T, method, url string, body interface{}) *http.Request {
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("failed to encode request body: %v", err)
		}
	}
	req := httptest.NewRequest(method, url, &buf)
	req.Header.Set("Content-Type", "application/json")
	return req
}

// AssertJSONResponse checks that response has correct status and decodes JSON body
func AssertJSONResponse(t *testing.T, w *httptest.ResponseRecorder, expectedStatus int, target interface{}) {
	assert.Equal(t, expectedStatus, w.Code, "Response status mismatch")

	contentType := w.Header().Get("Content-Type")
	assert.Equal(t, "application/json", contentType, "Content-Type should be application/json")

	if target != nil {
		err := json.Unmarshal(w.Body.Bytes(), target)
		assert.NoError(t, err, "Failed to decode response JSON")
	}
}

// AssertErrorResponse checks that response carries the failure envelope
func AssertErrorResponse(t *testing.T, w *httptest.ResponseRecorder, expectedStatus int, expectedError string) {
	assert.Equal(t, expectedStatus, w.Code, "Response status mismatch")

	var resp pkghttp.ErrorResponse
	err := json.Unmarshal(w.Body.Bytes(), &resp)
	assert.NoError(t, err, "Failed to decode error response")
	assert.False(t, resp.Success)
	assert.Equal(t, expectedError, resp.Error, "Error message mismatch")
}

// MockKeyVerifier implements KeyVerifier for testing
type MockKeyVerifier struct {
	VerifyKeyFunc func(ctx context.Context, identity, submitted string) (*services.VerifyResult, error)
	LastIdentity  string
	LastSubmitted string
}

func (m *MockKeyVerifier) VerifyKey(ctx context.Context, identity, submitted string) (*services.VerifyResult, error) {
	m.LastIdentity = identity
	m.LastSubmitted = submitted
	if m.VerifyKeyFunc == nil {
		return &services.VerifyResult{Success: true}, nil
	}
	return m.VerifyKeyFunc(ctx, identity, submitted)
}

// MockEndpointAnalyzer implements EndpointAnalyzer for testing
type MockEndpointAnalyzer struct {
	AnalyzeFunc func(ctx context.Context, rawURL, method string, headers map[string]string, body string) (*services.AnalysisResult, error)
}

func (m *MockEndpointAnalyzer) Analyze(ctx context.Context, rawURL, method string, headers map[string]string, body string) (*services.AnalysisResult, error) {
	if m.AnalyzeFunc == nil {
		return &services.AnalysisResult{URL: rawURL, Method: method}, nil
	}
	return m.AnalyzeFunc(ctx, rawURL, method, headers, body)
}

// MockDocsGenerator implements DocsGenerator for testing
type MockDocsGenerator struct {
	GenerateDocumentationFunc func(ctx context.Context, result *services.AnalysisResult) (*services.DocumentationResult, error)
	AnswerQuestionFunc        func(ctx context.Context, result *services.AnalysisResult, question string) (*services.DocumentationResult, error)
}

func (m *MockDocsGenerator) GenerateDocumentation(ctx context.Context, result *services.AnalysisResult) (*services.DocumentationResult, error) {
	if m.GenerateDocumentationFunc == nil {
		return &services.DocumentationResult{Content: "docs", Provider: "Gemini API"}, nil
	}
	return m.GenerateDocumentationFunc(ctx, result)
}

func (m *MockDocsGenerator) AnswerQuestion(ctx context.Context, result *services.AnalysisResult, question string) (*services.DocumentationResult, error) {
	if m.AnswerQuestionFunc == nil {
		return &services.DocumentationResult{Content: "answer", Provider: "Gemini API"}, nil
	}
	return m.AnswerQuestionFunc(ctx, result, question)
}
