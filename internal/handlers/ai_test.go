package handlers_test

import (
	"context"
	"net/http/httptest"
	"testing"

	"github.com/mshepherd/apilens/internal/handlers"
	"github.com/mshepherd/apilens/internal/models"
	"github.com/mshepherd/apilens/internal/services"
	"github.com/stretchr/testify/assert"
)

func analysisFixture() *services.AnalysisResult {
	return &services.AnalysisResult{
		URL:        "https://api.example.com/v1/orders",
		Method:     "GET",
		StatusCode: 200,
	}
}

func TestGenerateDocs_Success(t *testing.T) {
	mock := &handlers.MockDocsGenerator{
		GenerateDocumentationFunc: func(ctx context.Context, result *services.AnalysisResult) (*services.DocumentationResult, error) {
			assert.Equal(t, "https://api.example.com/v1/orders", result.URL)
			return &services.DocumentationResult{Content: "# Orders API", Provider: "Gemini API"}, nil
		},
	}

	handler := handlers.NewAIHandler(mock)
	req := handlers.NewTestRequest(t, "POST", "/api/docs", handlers.DocsRequest{Analysis: analysisFixture()})

	w := httptest.NewRecorder()
	handler.GenerateDocs(w, req)

	var resp services.DocumentationResult
	handlers.AssertJSONResponse(t, w, 200, &resp)
	assert.Equal(t, "# Orders API", resp.Content)
}

func TestGenerateDocs_MissingAnalysis(t *testing.T) {
	handler := handlers.NewAIHandler(&handlers.MockDocsGenerator{})
	req := handlers.NewTestRequest(t, "POST", "/api/docs", handlers.DocsRequest{})

	w := httptest.NewRecorder()
	handler.GenerateDocs(w, req)

	assert.Equal(t, 400, w.Code)
}

func TestGenerateDocs_ProviderNotConfigured(t *testing.T) {
	mock := &handlers.MockDocsGenerator{
		GenerateDocumentationFunc: func(ctx context.Context, result *services.AnalysisResult) (*services.DocumentationResult, error) {
			return nil, models.ErrAIKeyNotConfigured
		},
	}

	handler := handlers.NewAIHandler(mock)
	req := handlers.NewTestRequest(t, "POST", "/api/docs", handlers.DocsRequest{Analysis: analysisFixture()})

	w := httptest.NewRecorder()
	handler.GenerateDocs(w, req)

	handlers.AssertErrorResponse(t, w, 500, "AI provider not configured")
}

func TestChat_Success(t *testing.T) {
	mock := &handlers.MockDocsGenerator{
		AnswerQuestionFunc: func(ctx context.Context, result *services.AnalysisResult, question string) (*services.DocumentationResult, error) {
			assert.Equal(t, "Is this endpoint paginated?", question)
			return &services.DocumentationResult{Content: "Yes, by cursor.", Provider: "Gemini API"}, nil
		},
	}

	handler := handlers.NewAIHandler(mock)
	req := handlers.NewTestRequest(t, "POST", "/api/chat", handlers.ChatRequest{
		Analysis: analysisFixture(),
		Question: "Is this endpoint paginated?",
	})

	w := httptest.NewRecorder()
	handler.Chat(w, req)

	var resp services.DocumentationResult
	handlers.AssertJSONResponse(t, w, 200, &resp)
	assert.Equal(t, "Yes, by cursor.", resp.Content)
}

func TestChat_RequiresQuestion(t *testing.T) {
	handler := handlers.NewAIHandler(&handlers.MockDocsGenerator{})
	req := handlers.NewTestRequest(t, "POST", "/api/chat", handlers.ChatRequest{Analysis: analysisFixture()})

	w := httptest.NewRecorder()
	handler.Chat(w, req)

	assert.Equal(t, 400, w.Code)
}

func TestChat_UpstreamFailure(t *testing.T) {
	mock := &handlers.MockDocsGenerator{
		AnswerQuestionFunc: func(ctx context.Context, result *services.AnalysisResult, question string) (*services.DocumentationResult, error) {
			return nil, models.ErrAIUpstream
		},
	}

	handler := handlers.NewAIHandler(mock)
	req := handlers.NewTestRequest(t, "POST", "/api/chat", handlers.ChatRequest{
		Analysis: analysisFixture(),
		Question: "why",
	})

	w := httptest.NewRecorder()
	handler.Chat(w, req)

	handlers.AssertErrorResponse(t, w, 502, "AI provider request failed")
}
