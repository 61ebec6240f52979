package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/mshepherd/apilens/internal/services"
	pkghttp "github.com/mshepherd/apilens/pkg/http"
)

// EndpointAnalyzer defines the interface for the analyzer business logic
type EndpointAnalyzer interface {
	Analyze(ctx context.Context, rawURL, method string, headers map[string]string, body string) (*services.AnalysisResult, error)
}

// AnalyzerHandler handles analysis requests for arbitrary endpoints
type AnalyzerHandler struct {
	service EndpointAnalyzer
}

// NewAnalyzerHandler creates a new AnalyzerHandler
func NewAnalyzerHandler(service EndpointAnalyzer) *AnalyzerHandler {
	return &AnalyzerHandler{
		service: service,
	}
}

// AnalyzeRequest represents the request body for endpoint analysis
type AnalyzeRequest struct {
	URL     string            `json:"url" validate:"required,url"`
	Method  string            `json:"method" validate:"required,oneof=GET POST PUT PATCH DELETE HEAD OPTIONS"`
	Headers map[string]string `json:"headers"`
	Body    string            `json:"body"`
}

// Analyze fetches the requested endpoint and returns the graded result.
func (h *AnalyzerHandler) Analyze(w http.ResponseWriter, r *http.Request) {
	var req AnalyzeRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		pkghttp.WriteBadRequest(w, "Invalid request body")
		return
	}

	if err := ValidateRequest(req); err != nil {
		pkghttp.WriteBadRequest(w, err.Error())
		return
	}

	result, err := h.service.Analyze(r.Context(), req.URL, req.Method, req.Headers, req.Body)
	if err != nil {
		pkghttp.WriteBadGateway(w, "Endpoint request failed")
		return
	}

	pkghttp.WriteJSON(w, http.StatusOK, result)
}
