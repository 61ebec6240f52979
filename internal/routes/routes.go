package routes

import (
	"github.com/go-chi/chi/v5"
	"github.com/mshepherd/apilens/internal/handlers"
	"github.com/mshepherd/apilens/internal/middleware"
)

// RegisterRoutes registers all application routes
func RegisterRoutes(
	router chi.Router,
	securityHandler *handlers.SecurityHandler,
	analyzerHandler *handlers.AnalyzerHandler,
	aiHandler *handlers.AIHandler,
) {
	verifyLimit := middleware.DefaultVerifyRateLimit()
	analyzerLimit := middleware.DefaultAnalyzerRateLimit()

	// Security checkpoint - open to unverified clients
	router.With(middleware.RateLimitByIP(verifyLimit)).Post("/api/verify-key", securityHandler.VerifyKey)
	router.Get("/api/check-verification", securityHandler.CheckVerification)
	router.Post("/api/logout", securityHandler.Logout)

	// Gated endpoints - verification cookie required
	router.Group(func(r chi.Router) {
		r.Use(middleware.RequireVerificationJSON)
		r.Use(middleware.RateLimitByIP(analyzerLimit))

		r.Post("/api/analyze", analyzerHandler.Analyze)
		r.Post("/api/docs", aiHandler.GenerateDocs)
		r.Post("/api/chat", aiHandler.Chat)
	})
}
