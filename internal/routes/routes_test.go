package routes_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/mshepherd/apilens/internal/auth"
	"github.com/mshepherd/apilens/internal/handlers"
	"github.com/mshepherd/apilens/internal/routes"
	"github.com/mshepherd/apilens/internal/services"
	"github.com/stretchr/testify/assert"
)

func newRouter() chi.Router {
	verifier := &handlers.MockKeyVerifier{
		VerifyKeyFunc: func(ctx context.Context, identity, submitted string) (*services.VerifyResult, error) {
			return &services.VerifyResult{Success: true}, nil
		},
	}

	router := chi.NewRouter()
	routes.RegisterRoutes(router,
		handlers.NewSecurityHandler(verifier, auth.CookieConfig{}),
		handlers.NewAnalyzerHandler(&handlers.MockEndpointAnalyzer{}),
		handlers.NewAIHandler(&handlers.MockDocsGenerator{}),
	)
	return router
}

func TestRoutes_VerifyKeyIsPublic(t *testing.T) {
	router := newRouter()

	req := httptest.NewRequest("POST", "/api/verify-key", strings.NewReader(`{"key":"k"}`))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRoutes_CheckVerificationIsPublic(t *testing.T) {
	router := newRouter()

	req := httptest.NewRequest("GET", "/api/check-verification", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"isVerified":false}`, w.Body.String())
}

func TestRoutes_AnalyzeRequiresVerification(t *testing.T) {
	router := newRouter()

	req := httptest.NewRequest("POST", "/api/analyze", strings.NewReader(`{"url":"https://example.com","method":"GET"}`))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)

	req = httptest.NewRequest("POST", "/api/analyze", strings.NewReader(`{"url":"https://example.com","method":"GET"}`))
	req.AddCookie(&http.Cookie{Name: "securityVerified", Value: "true"})
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRoutes_DocsAndChatRequireVerification(t *testing.T) {
	router := newRouter()

	for _, path := range []string{"/api/docs", "/api/chat"} {
		req := httptest.NewRequest("POST", path, strings.NewReader(`{}`))
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusUnauthorized, w.Code, path)
	}
}
