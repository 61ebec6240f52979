package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/mshepherd/apilens/internal/auth"
	"github.com/mshepherd/apilens/internal/background"
	"github.com/mshepherd/apilens/internal/config"
	"github.com/mshepherd/apilens/internal/gemini"
	"github.com/mshepherd/apilens/internal/handlers"
	"github.com/mshepherd/apilens/internal/ledger"
	middlewareCustom "github.com/mshepherd/apilens/internal/middleware"
	"github.com/mshepherd/apilens/internal/routes"
	"github.com/mshepherd/apilens/internal/services"
	pkglogger "github.com/mshepherd/apilens/pkg/logger"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load configuration", slog.Any("error", err))
		os.Exit(1)
	}

	logger.Info("configuration loaded", slog.String("env", cfg.Server.Env))

	if cfg.Security.Key == "" {
		// Not fatal: the verify endpoint reports this per request.
		logger.Warn("SECURITY_KEY is not set, all verification attempts will fail with a configuration error")
	}

	// Attempt ledger and its background sweeper
	attemptLedger := ledger.New()
	sweeper := background.NewSweeper(attemptLedger, logger, cfg.Security.SweepInterval)

	// Initialize services
	auditLogger := pkglogger.NewAuditLogger(logger)
	securityService := services.NewSecurityService(attemptLedger, cfg.Security.Key, logger, auditLogger)
	analyzerService := services.NewAnalyzerService(services.AnalyzerConfig{
		RequestTimeout: cfg.Analyzer.RequestTimeout,
		MaxBodyBytes:   cfg.Analyzer.MaxBodyBytes,
	}, logger)
	geminiClient := gemini.NewClient(gemini.Config{
		APIKey:         cfg.AI.APIKey,
		Model:          cfg.AI.Model,
		BaseURL:        cfg.AI.BaseURL,
		RequestTimeout: cfg.AI.RequestTimeout,
	})
	docsService := services.NewDocsService(geminiClient, logger)

	// Initialize handlers
	cookieConfig := auth.CookieConfig{
		Domain: cfg.Security.CookieDomain,
		Secure: cfg.Server.Env == "production",
	}
	securityHandler := handlers.NewSecurityHandler(securityService, cookieConfig)
	analyzerHandler := handlers.NewAnalyzerHandler(analyzerService)
	aiHandler := handlers.NewAIHandler(docsService)

	// Setup CORS middleware
	corsConfig := middlewareCustom.DefaultCORSConfig()
	corsConfig.AllowedOrigins = cfg.Server.AllowedOrigins

	// Setup router
	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(middlewareCustom.SecurityHeaders(middlewareCustom.SecurityHeadersConfig{Env: cfg.Server.Env}))
	router.Use(middlewareCustom.CORS(corsConfig))
	router.Use(middlewareCustom.SecureLogger(logger))
	router.Use(middlewareCustom.RequireVerification(middlewareCustom.DefaultGuardConfig()))
	router.Use(middleware.Recoverer)
	router.Use(middleware.Timeout(60 * time.Second))

	// Register routes
	routes.RegisterRoutes(router, securityHandler, analyzerHandler, aiHandler)

	// Health check
	router.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"healthy"}`))
	})

	// Create server
	server := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start sweep task
	sweepCtx, sweepCancel := context.WithCancel(context.Background())
	defer sweepCancel()

	go sweeper.Start(sweepCtx)

	// Start server
	go func() {
		logger.Info("starting server", slog.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", slog.Any("error", err))
			os.Exit(1)
		}
	}()

	// Graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan

	logger.Info("shutdown signal received")

	sweepCancel()
	sweeper.Stop()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown error", slog.Any("error", err))
		os.Exit(1)
	}

	logger.Info("server stopped gracefully")
}
