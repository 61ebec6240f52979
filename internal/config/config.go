package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Server   ServerConfig
	Security SecurityConfig
	Analyzer AnalyzerConfig
	AI       AIConfig
}

type ServerConfig struct {
	Port           string
	Env            string
	LogLevel       string
	AllowedOrigins []string
}

type SecurityConfig struct {
	// Key is the shared secret guarding the dashboard. Its absence is a
	// per-request configuration error on the verify endpoint, not a boot
	// failure.
	Key           string
	SweepInterval time.Duration
	CookieDomain  string
}

type AnalyzerConfig struct {
	RequestTimeout time.Duration
	MaxBodyBytes   int64
}

type AIConfig struct {
	APIKey         string
	Model          string
	BaseURL        string
	RequestTimeout time.Duration
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	env := getEnv("ENV", "development")

	cfg := &Config{
		Server: ServerConfig{
			Port:           getEnv("PORT", "8080"),
			Env:            env,
			LogLevel:       getEnv("LOG_LEVEL", "info"),
			AllowedOrigins: parseAllowedOrigins(env),
		},
		Security: SecurityConfig{
			Key:           os.Getenv("SECURITY_KEY"),
			SweepInterval: getEnvAsDuration("LEDGER_SWEEP_INTERVAL", 1*time.Hour),
			CookieDomain:  getEnv("COOKIE_DOMAIN", ""),
		},
		Analyzer: AnalyzerConfig{
			RequestTimeout: getEnvAsDuration("ANALYZER_TIMEOUT", 30*time.Second),
			MaxBodyBytes:   int64(getEnvAsInt("ANALYZER_MAX_BODY_BYTES", 1<<20)),
		},
		AI: AIConfig{
			APIKey:         os.Getenv("GEMINI_API_KEY"),
			Model:          getEnv("GEMINI_MODEL", "gemini-2.0-flash"),
			BaseURL:        getEnv("GEMINI_BASE_URL", "https://generativelanguage.googleapis.com"),
			RequestTimeout: getEnvAsDuration("GEMINI_TIMEOUT", 60*time.Second),
		},
	}

	if cfg.Security.SweepInterval <= 0 {
		return nil, fmt.Errorf("LEDGER_SWEEP_INTERVAL must be positive")
	}

	return cfg, nil
}

func getEnv(key, defaultVal string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultVal
}

func getEnvAsInt(key string, defaultVal int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultVal
}

func getEnvAsDuration(key string, defaultVal time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultVal
}

func parseAllowedOrigins(env string) []string {
	if env == "production" {
		originsStr := getEnv("ALLOWED_ORIGINS", "")
		if originsStr == "" {
			return []string{} // Default to no origins in production
		}
		origins := strings.Split(originsStr, ",")
		for i, origin := range origins {
			origins[i] = strings.TrimSpace(origin)
		}
		return origins
	}

	// Development: allow localhost variants
	return []string{
		"http://localhost:3000",
		"http://localhost:8080",
		"http://localhost:5173", // Vite default
		"http://127.0.0.1:3000",
		"http://127.0.0.1:8080",
		"http://127.0.0.1:5173",
	}
}
