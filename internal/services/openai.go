package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/kvhuynh/sovereign/pkg/prompts"
	"github.com/kvhuynh/sovereign/pkg/turn"
)

const (
	DefaultOpenAITemperature = 0.9
	DefaultOpenAIMaxTokens   = 4096
)

// OpenAIResolver implements TurnResolver against any OpenAI-compatible chat
// completions endpoint.
type OpenAIResolver struct {
	apiKey     string
	baseURL    string
	modelName  string
	httpClient *http.Client
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponseFormat struct {
	Type       string         `json:"type"`
	JSONSchema chatJSONSchema `json:"json_schema"`
}

type chatJSONSchema struct {
	Name   string                 `json:"name"`
	Strict bool                   `json:"strict"`
	Schema map[string]interface{} `json:"schema"`
}

type chatRequest struct {
	Model          string              `json:"model"`
	Messages       []chatMessage       `json:"messages"`
	Temperature    float64             `json:"temperature,omitempty"`
	MaxTokens      int                 `json:"max_tokens,omitempty"`
	Stream         bool                `json:"stream"`
	ResponseFormat *chatResponseFormat `json:"response_format,omitempty"`
}

type chatChoice struct {
	Index   int `json:"index"`
	Message struct {
		Role    string `json:"role"`
		Content string `json:"content"`
	} `json:"message"`
	FinishReason string `json:"finish_reason"`
}

type chatResponse struct {
	ID      string       `json:"id"`
	Model   string       `json:"model"`
	Choices []chatChoice `json:"choices"`
	Error   *struct {
		Message string `json:"message"`
		Type    string `json:"type"`
		Code    string `json:"code"`
	} `json:"error,omitempty"`
}

// NewOpenAIResolver creates a resolver for an OpenAI-compatible endpoint.
func NewOpenAIResolver(apiKey, baseURL, modelName string) *OpenAIResolver {
	return &OpenAIResolver{
		apiKey:    apiKey,
		baseURL:   baseURL,
		modelName: modelName,
		httpClient: &http.Client{
			Timeout: 120 * time.Second,
		},
	}
}

func (o *OpenAIResolver) Name() string { return "openai" }

func (o *OpenAIResolver) ResolveTurn(ctx context.Context, req *turn.Request) (*turn.Result, error) {
	prompt, err := prompts.BuildPrompt(req)
	if err != nil {
		return nil, err
	}

	chatReq := chatRequest{
		Model:          o.modelName,
		Messages:       []chatMessage{{Role: "user", Content: prompt}},
		Temperature:    DefaultOpenAITemperature,
		MaxTokens:      DefaultOpenAIMaxTokens,
		Stream:         false,
		ResponseFormat: turnResponseFormat(),
	}

	reqBody, err := json.Marshal(chatReq)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, "POST", o.baseURL+"/chat/completions", bytes.NewBuffer(reqBody))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Authorization", "Bearer "+o.apiKey)
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := o.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("failed to make request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("API request failed with status %d: %s", resp.StatusCode, string(body))
	}

	var chatResp chatResponse
	if err := json.Unmarshal(body, &chatResp); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}
	if chatResp.Error != nil {
		return nil, fmt.Errorf("API error: %s", chatResp.Error.Message)
	}
	if len(chatResp.Choices) == 0 {
		return nil, fmt.Errorf("API returned no choices")
	}

	return decodeResult(chatResp.Choices[0].Message.Content)
}

// turnResponseFormat declares the structured response shape for providers
// that support the json_schema response format. Nested update payloads are
// left open-shaped; strict validation happens at decode time.
func turnResponseFormat() *chatResponseFormat {
	intDelta := map[string]interface{}{
		"type":                 "object",
		"additionalProperties": map[string]interface{}{"type": "integer"},
	}
	stringArray := map[string]interface{}{
		"type":  "array",
		"items": map[string]interface{}{"type": "string"},
	}

	return &chatResponseFormat{
		Type: "json_schema",
		JSONSchema: chatJSONSchema{
			Name:   "resolve_turn",
			Strict: false,
			Schema: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"narrative":    map[string]interface{}{"type": "string"},
					"eventTitle":   map[string]interface{}{"type": "string"},
					"monthsPassed": map[string]interface{}{"type": "integer"},
					"statsChange":  intDelta,
					"suggestedActions": map[string]interface{}{
						"type": "array",
						"items": map[string]interface{}{
							"type": "object",
							"properties": map[string]interface{}{
								"label":  map[string]interface{}{"type": "string"},
								"action": map[string]interface{}{"type": "string"},
								"style":  map[string]interface{}{"type": "string"},
							},
							"required": []string{"label", "action"},
						},
					},
					"otherKingdomsActions": map[string]interface{}{
						"type": "array",
						"items": map[string]interface{}{"type": "object"},
					},
					"map_grid":        stringArray,
					"worldUpdate":     map[string]interface{}{"type": "object"},
					"politicalUpdate": map[string]interface{}{"type": "object"},
					"buffsUpdate":     map[string]interface{}{"type": "object"},
					"initialStats":    map[string]interface{}{"type": "object"},
					"isGameOver":      map[string]interface{}{"type": "boolean"},
					"gameOverReason":  map[string]interface{}{"type": "string"},
				},
				"required": []string{"narrative", "statsChange", "suggestedActions", "isGameOver"},
			},
		},
	}
}
