package config

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
)

// Provider names for the turn-resolution service.
const (
	ProviderGemini = "gemini"
	ProviderOpenAI = "openai"
	ProviderMock   = "mock"
)

type Config struct {
	Environment string
	LogLevel    slog.Level

	// Turn-resolution service.
	Provider   string
	GeminiKey  string
	LLMAPIKey  string
	LLMBaseURL string
	LLMModel   string

	// Persistence. RedisURL empty disables the session store; saves
	// always work through SaveDir.
	RedisURL string
	SaveDir  string
}

func Load() (*Config, error) {
	cfg := &Config{
		Environment: getEnv("ENVIRONMENT", "development"),
		LogLevel:    parseLogLevel(getEnv("LOG_LEVEL", "info")),
		Provider:    strings.ToLower(getEnv("LLM_PROVIDER", ProviderGemini)),
		GeminiKey:   os.Getenv("GEMINI_API_KEY"),
		LLMAPIKey:   os.Getenv("LLM_API_KEY"),
		LLMBaseURL:  getEnv("LLM_BASE_URL", "https://api.openai.com/v1"),
		LLMModel:    getEnv("LLM_MODEL", "gemini-2.5-flash"),
		RedisURL:    os.Getenv("REDIS_URL"),
		SaveDir:     getEnv("SAVE_DIR", "saves"),
	}

	switch cfg.Provider {
	case ProviderGemini:
		if cfg.GeminiKey == "" {
			return nil, fmt.Errorf("GEMINI_API_KEY is required when LLM_PROVIDER=gemini")
		}
	case ProviderOpenAI:
		if cfg.LLMAPIKey == "" {
			return nil, fmt.Errorf("LLM_API_KEY is required when LLM_PROVIDER=openai")
		}
	case ProviderMock:
	default:
		return nil, fmt.Errorf("unknown LLM_PROVIDER %q", cfg.Provider)
	}
	return cfg, nil
}

func parseLogLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
