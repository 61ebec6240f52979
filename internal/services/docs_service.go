package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/mshepherd/apilens/internal/models"
)

// TextGenerator is the AI collaborator: prompt in, text blob out.
type TextGenerator interface {
	Configured() bool
	GenerateText(ctx context.Context, prompt string) (string, error)
}

// DocumentationResult wraps generated text with its provenance.
type DocumentationResult struct {
	Content   string    `json:"content"`
	Provider  string    `json:"provider"`
	Timestamp time.Time `json:"timestamp"`
}

// DocsService turns analysis results into documentation and answers
// follow-up questions, delegating all generation to the AI collaborator.
type DocsService struct {
	generator TextGenerator
	logger    *slog.Logger
}

// NewDocsService creates a new DocsService.
func NewDocsService(generator TextGenerator, logger *slog.Logger) *DocsService {
	return &DocsService{
		generator: generator,
		logger:    logger,
	}
}

// GenerateDocumentation asks the AI service to document an analyzed
// endpoint.
func (s *DocsService) GenerateDocumentation(ctx context.Context, result *AnalysisResult) (*DocumentationResult, error) {
	if !s.generator.Configured() {
		return nil, models.ErrAIKeyNotConfigured
	}

	prompt := documentationPrompt(result)
	text, err := s.generator.GenerateText(ctx, prompt)
	if err != nil {
		s.logger.Error("documentation generation failed", slog.Any("error", err))
		return nil, fmt.Errorf("%w: %v", models.ErrAIUpstream, err)
	}

	return &DocumentationResult{
		Content:   text,
		Provider:  "Gemini API",
		Timestamp: time.Now().UTC(),
	}, nil
}

// AnswerQuestion asks the AI service a question about an analyzed
// endpoint.
func (s *DocsService) AnswerQuestion(ctx context.Context, result *AnalysisResult, question string) (*DocumentationResult, error) {
	if !s.generator.Configured() {
		return nil, models.ErrAIKeyNotConfigured
	}

	prompt := chatPrompt(result, question)
	text, err := s.generator.GenerateText(ctx, prompt)
	if err != nil {
		s.logger.Error("chat generation failed", slog.Any("error", err))
		return nil, fmt.Errorf("%w: %v", models.ErrAIUpstream, err)
	}

	return &DocumentationResult{
		Content:   text,
		Provider:  "Gemini API",
		Timestamp: time.Now().UTC(),
	}, nil
}

func documentationPrompt(result *AnalysisResult) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Generate comprehensive API documentation based on this API response:\n\n")
	fmt.Fprintf(&b, "URL: %s\nMethod: %s\nStatus Code: %d\nResponse Time: %.2fms\n\n",
		result.URL, result.Method, result.StatusCode, result.ResponseTimeMs)

	b.WriteString("Headers:\n")
	for k, v := range result.Headers {
		fmt.Fprintf(&b, "%s: %s\n", k, v)
	}

	fmt.Fprintf(&b, "\nResponse Body:\n%s\n\n", string(result.Body))

	b.WriteString(`Please include:
1. Endpoint description
2. Request parameters
3. Response structure
4. Example usage with code samples
5. Error handling recommendations
6. Authentication requirements (if detected)
7. Rate limiting information (if detected)

Format the documentation in clean markdown with proper HTML-compatible syntax.
Use --- for horizontal rules.
Use proper code block formatting with language hints.
Use tables where appropriate.`)

	return b.String()
}

func chatPrompt(result *AnalysisResult, question string) string {
	var b strings.Builder
	b.WriteString("You are an API expert assistant. Answer the following question about this API:\n\n")
	b.WriteString("API Context:\n")
	fmt.Fprintf(&b, "- Endpoint: %s\n- Method: %s\n- Status Code: %d\n", result.URL, result.Method, result.StatusCode)
	fmt.Fprintf(&b, "- Security Score: %d/100\n- Response Time: %.2fms\n", result.SecurityScore, result.ResponseTimeMs)
	fmt.Fprintf(&b, "- Total Issues Found: %d\n- Security Issues: %s\n\n",
		len(result.SecurityIssues), strings.Join(result.SecurityIssues, ", "))
	fmt.Fprintf(&b, "Question: %s\n\n", question)
	b.WriteString("Answer in concise markdown. Include code samples only when they help.")
	return b.String()
}
