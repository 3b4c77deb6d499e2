package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/kvhuynh/sovereign/pkg/turn"
)

// TurnResolver resolves one player action into a structured turn result.
// Implementations call an LLM provider; the engine treats them uniformly.
type TurnResolver interface {
	// ResolveTurn submits the request and returns the parsed result.
	ResolveTurn(ctx context.Context, req *turn.Request) (*turn.Result, error)

	// Name identifies the provider for logging.
	Name() string
}

// decodeResult parses a provider's raw text into a turn result. Providers are
// asked for bare JSON, but models occasionally wrap it in a code fence, so the
// fence is stripped before parsing.
func decodeResult(raw string) (*turn.Result, error) {
	cleaned := strings.TrimSpace(raw)
	cleaned = strings.TrimPrefix(cleaned, "```json")
	cleaned = strings.TrimPrefix(cleaned, "```")
	cleaned = strings.TrimSuffix(cleaned, "```")
	cleaned = strings.TrimSpace(cleaned)

	var result turn.Result
	if err := json.Unmarshal([]byte(cleaned), &result); err != nil {
		return nil, fmt.Errorf("failed to parse turn result: %w", err)
	}
	if result.Narrative == "" {
		return nil, fmt.Errorf("turn result has no narrative")
	}
	return &result, nil
}
