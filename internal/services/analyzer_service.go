package services

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
)

// AnalyzerConfig holds configuration for outbound analysis requests.
type AnalyzerConfig struct {
	RequestTimeout time.Duration
	MaxBodyBytes   int64
}

// AnalysisResult captures one probed endpoint: the relayed response plus
// derived security findings.
type AnalysisResult struct {
	ID             string            `json:"id"`
	URL            string            `json:"url"`
	Method         string            `json:"method"`
	StatusCode     int               `json:"statusCode"`
	ResponseTimeMs float64           `json:"responseTimeMs"`
	Headers        map[string]string `json:"headers"`
	Body           json.RawMessage   `json:"body,omitempty"`
	BodyTruncated  bool              `json:"bodyTruncated"`
	SecurityScore  int               `json:"securityScore"`
	SecurityIssues []string          `json:"securityIssues"`
	Timestamp      time.Time         `json:"timestamp"`
}

// AnalyzerService fetches arbitrary endpoints on behalf of the dashboard
// and grades their response headers. It holds no state shared with the
// security gate.
type AnalyzerService struct {
	client *http.Client
	config AnalyzerConfig
	logger *slog.Logger
}

// NewAnalyzerService creates a new AnalyzerService.
func NewAnalyzerService(config AnalyzerConfig, logger *slog.Logger) *AnalyzerService {
	return &AnalyzerService{
		client: &http.Client{Timeout: config.RequestTimeout},
		config: config,
		logger: logger,
	}
}

// Analyze performs the request and derives the security findings.
func (s *AnalyzerService) Analyze(ctx context.Context, rawURL, method string, headers map[string]string, body string) (*AnalysisResult, error) {
	var reqBody io.Reader
	if body != "" {
		reqBody = strings.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, rawURL, reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to build analysis request: %w", err)
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	start := time.Now()
	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("endpoint request failed: %w", err)
	}
	defer resp.Body.Close()

	elapsed := time.Since(start)

	limited := io.LimitReader(resp.Body, s.config.MaxBodyBytes+1)
	payload, err := io.ReadAll(limited)
	if err != nil {
		return nil, fmt.Errorf("failed to read endpoint response: %w", err)
	}
	truncated := int64(len(payload)) > s.config.MaxBodyBytes
	if truncated {
		payload = payload[:s.config.MaxBodyBytes]
	}

	respHeaders := make(map[string]string, len(resp.Header))
	for k := range resp.Header {
		respHeaders[k] = resp.Header.Get(k)
	}

	score, issues := gradeSecurityHeaders(resp.Header)

	result := &AnalysisResult{
		ID:             uuid.NewString(),
		URL:            rawURL,
		Method:         method,
		StatusCode:     resp.StatusCode,
		ResponseTimeMs: float64(elapsed.Microseconds()) / 1000.0,
		Headers:        respHeaders,
		Body:           normalizeBody(payload),
		BodyTruncated:  truncated,
		SecurityScore:  score,
		SecurityIssues: issues,
		Timestamp:      time.Now().UTC(),
	}

	s.logger.Info("endpoint analyzed",
		slog.String("analysis_id", result.ID),
		slog.String("method", method),
		slog.Int("status", resp.StatusCode),
		slog.Int("security_score", score),
		slog.Duration("elapsed", elapsed))

	return result, nil
}

// normalizeBody returns the payload as raw JSON when it already is valid
// JSON, otherwise re-encodes it as a JSON string so the result always
// marshals cleanly.
func normalizeBody(payload []byte) json.RawMessage {
	if len(payload) == 0 {
		return nil
	}
	if json.Valid(payload) {
		return json.RawMessage(payload)
	}
	quoted, err := json.Marshal(string(payload))
	if err != nil {
		return nil
	}
	return json.RawMessage(quoted)
}

// securityHeaderChecks maps recommended response headers to the weight
// they carry in the score and the issue reported when missing.
var securityHeaderChecks = []struct {
	header string
	weight int
	issue  string
}{
	{"Strict-Transport-Security", 25, "Missing Strict-Transport-Security header"},
	{"Content-Security-Policy", 25, "Missing Content-Security-Policy header"},
	{"X-Content-Type-Options", 20, "Missing X-Content-Type-Options header"},
	{"X-Frame-Options", 20, "Missing X-Frame-Options header"},
	{"Referrer-Policy", 10, "Missing Referrer-Policy header"},
}

// gradeSecurityHeaders scores a response 0-100 based on which of the
// recommended security headers it carries.
func gradeSecurityHeaders(h http.Header) (int, []string) {
	score := 100
	issues := []string{}
	for _, check := range securityHeaderChecks {
		if h.Get(check.header) == "" {
			score -= check.weight
			issues = append(issues, check.issue)
		}
	}
	if score < 0 {
		score = 0
	}
	return score, issues
}
