package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/mshepherd/apilens/internal/models"
	"github.com/mshepherd/apilens/internal/services"
	pkghttp "github.com/mshepherd/apilens/pkg/http"
)

// DocsGenerator defines the interface for the AI documentation logic
type DocsGenerator interface {
	GenerateDocumentation(ctx context.Context, result *services.AnalysisResult) (*services.DocumentationResult, error)
	AnswerQuestion(ctx context.Context, result *services.AnalysisResult, question string) (*services.DocumentationResult, error)
}

// AIHandler handles documentation and chat requests backed by the AI
// collaborator
type AIHandler struct {
	service DocsGenerator
}

// NewAIHandler creates a new AIHandler
func NewAIHandler(service DocsGenerator) *AIHandler {
	return &AIHandler{
		service: service,
	}
}

// DocsRequest represents the request body for documentation generation.
// The analysis result is echoed back by the client, keeping the server
// stateless across the analyze/document round trip.
type DocsRequest struct {
	Analysis *services.AnalysisResult `json:"analysis" validate:"required"`
}

// ChatRequest represents the request body for a follow-up question
type ChatRequest struct {
	Analysis *services.AnalysisResult `json:"analysis" validate:"required"`
	Question string                   `json:"question" validate:"required,min=1,max=2000"`
}

// GenerateDocs produces markdown documentation for an analyzed endpoint.
func (h *AIHandler) GenerateDocs(w http.ResponseWriter, r *http.Request) {
	var req DocsRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		pkghttp.WriteBadRequest(w, "Invalid request body")
		return
	}

	if err := ValidateRequest(req); err != nil {
		pkghttp.WriteBadRequest(w, err.Error())
		return
	}

	result, err := h.service.GenerateDocumentation(r.Context(), req.Analysis)
	if err != nil {
		writeAIError(w, err)
		return
	}

	pkghttp.WriteJSON(w, http.StatusOK, result)
}

// Chat answers a question about an analyzed endpoint.
func (h *AIHandler) Chat(w http.ResponseWriter, r *http.Request) {
	var req ChatRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		pkghttp.WriteBadRequest(w, "Invalid request body")
		return
	}

	if err := ValidateRequest(req); err != nil {
		pkghttp.WriteBadRequest(w, err.Error())
		return
	}

	result, err := h.service.AnswerQuestion(r.Context(), req.Analysis, req.Question)
	if err != nil {
		writeAIError(w, err)
		return
	}

	pkghttp.WriteJSON(w, http.StatusOK, result)
}

func writeAIError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, models.ErrAIKeyNotConfigured):
		pkghttp.WriteInternalError(w, "AI provider not configured")
	case errors.Is(err, models.ErrAIUpstream):
		pkghttp.WriteBadGateway(w, "AI provider request failed")
	default:
		pkghttp.WriteInternalError(w, "Internal server error")
	}
}
