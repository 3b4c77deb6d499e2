package main

import (
	"context"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"
	"github.com/kvhuynh/sovereign/internal/config"
	"github.com/kvhuynh/sovereign/internal/engine"
	"github.com/kvhuynh/sovereign/internal/logger"
	"github.com/kvhuynh/sovereign/internal/services"
	"github.com/kvhuynh/sovereign/internal/storage"
	"github.com/kvhuynh/sovereign/internal/tui"
)

func main() {
	// Optional; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Configuration error: %v\n", err)
		os.Exit(1)
	}
	log := logger.Setup(cfg)

	ctx := context.Background()

	var store storage.SessionStore
	if cfg.RedisURL != "" {
		redisStore := storage.NewRedisStore(cfg.RedisURL, log)
		if err := redisStore.Ping(ctx); err != nil {
			log.Warn("Redis unavailable, autosave disabled", "error", err)
		} else {
			store = redisStore
			defer func() { _ = redisStore.Close() }()
		}
	}

	resolver, err := buildResolver(ctx, cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize turn service: %v\n", err)
		os.Exit(1)
	}
	if closer, ok := resolver.(interface{ Close() }); ok {
		defer closer.Close()
	}
	log.Info("Turn service ready", "provider", resolver.Name(), "model", cfg.LLMModel)

	e := engine.New(resolver, store, log)

	ui, err := tui.New(e, cfg.SaveDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize UI: %v\n", err)
		os.Exit(1)
	}

	p := tea.NewProgram(ui,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion())
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error running program: %v\n", err)
		os.Exit(1)
	}
}

func buildResolver(ctx context.Context, cfg *config.Config) (services.TurnResolver, error) {
	switch cfg.Provider {
	case config.ProviderGemini:
		return services.NewGeminiResolver(ctx, cfg.GeminiKey, cfg.LLMModel)
	case config.ProviderOpenAI:
		return services.NewOpenAIResolver(cfg.LLMAPIKey, cfg.LLMBaseURL, cfg.LLMModel), nil
	case config.ProviderMock:
		return services.NewMockResolver(), nil
	default:
		return nil, fmt.Errorf("unknown provider %q", cfg.Provider)
	}
}
