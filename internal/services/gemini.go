package services

import (
	"context"
	"fmt"

	"github.com/google/generative-ai-go/genai"
	"github.com/kvhuynh/sovereign/pkg/prompts"
	"github.com/kvhuynh/sovereign/pkg/turn"
	"google.golang.org/api/option"
)

const DefaultGeminiTemperature = 0.9

// GeminiResolver implements TurnResolver for Google Gemini.
type GeminiResolver struct {
	client *genai.Client
	model  *genai.GenerativeModel
}

// NewGeminiResolver creates a Gemini-backed resolver. The model is configured
// for structured JSON output so results parse without fence stripping.
func NewGeminiResolver(ctx context.Context, apiKey string, modelName string) (*GeminiResolver, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}

	model := client.GenerativeModel(modelName)
	temp := float32(DefaultGeminiTemperature)
	model.Temperature = &temp
	model.ResponseMIMEType = "application/json"
	model.ResponseSchema = turnResultSchema()

	return &GeminiResolver{client: client, model: model}, nil
}

func (g *GeminiResolver) Name() string { return "gemini" }

// Close releases the underlying client.
func (g *GeminiResolver) Close() {
	g.client.Close()
}

func (g *GeminiResolver) ResolveTurn(ctx context.Context, req *turn.Request) (*turn.Result, error) {
	prompt, err := prompts.BuildPrompt(req)
	if err != nil {
		return nil, err
	}

	resp, err := g.model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return nil, fmt.Errorf("gemini request failed: %w", err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return nil, fmt.Errorf("gemini returned no content")
	}

	text, ok := resp.Candidates[0].Content.Parts[0].(genai.Text)
	if !ok {
		return nil, fmt.Errorf("gemini returned a non-text part")
	}
	return decodeResult(string(text))
}

// turnResultSchema declares the response shape for Gemini's structured
// output mode. It mirrors the JSON tags on turn.Result.
func turnResultSchema() *genai.Schema {
	statsProps := map[string]*genai.Schema{
		"gold":          {Type: genai.TypeInteger},
		"food":          {Type: genai.TypeInteger},
		"population":    {Type: genai.TypeInteger},
		"army":          {Type: genai.TypeInteger},
		"happiness":     {Type: genai.TypeInteger},
		"wood":          {Type: genai.TypeInteger},
		"stone":         {Type: genai.TypeInteger},
		"manpower":      {Type: genai.TypeInteger},
		"supplies":      {Type: genai.TypeInteger},
		"economicPower": {Type: genai.TypeInteger},
	}

	personSchema := &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"id":             {Type: genai.TypeString},
			"name":           {Type: genai.TypeString},
			"role":           {Type: genai.TypeString},
			"age":            {Type: genai.TypeInteger},
			"personality":    {Type: genai.TypeString},
			"description":    {Type: genai.TypeString},
			"status":         {Type: genai.TypeString},
			"familyRelation": {Type: genai.TypeString},
		},
		Required: []string{"id", "name", "status"},
	}

	divisionSchema := &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"id":          {Type: genai.TypeString},
			"name":        {Type: genai.TypeString},
			"type":        {Type: genai.TypeString},
			"rulerName":   {Type: genai.TypeString},
			"description": {Type: genai.TypeString},
		},
		Required: []string{"id", "name", "type"},
	}

	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"narrative":    {Type: genai.TypeString},
			"eventTitle":   {Type: genai.TypeString},
			"monthsPassed": {Type: genai.TypeInteger},
			"statsChange": {
				Type:       genai.TypeObject,
				Properties: statsProps,
			},
			"suggestedActions": {
				Type: genai.TypeArray,
				Items: &genai.Schema{
					Type: genai.TypeObject,
					Properties: map[string]*genai.Schema{
						"label":  {Type: genai.TypeString},
						"action": {Type: genai.TypeString},
						"style":  {Type: genai.TypeString},
					},
					Required: []string{"label", "action"},
				},
			},
			"otherKingdomsActions": {
				Type: genai.TypeArray,
				Items: &genai.Schema{
					Type: genai.TypeObject,
					Properties: map[string]*genai.Schema{
						"entityId":    {Type: genai.TypeString},
						"entityName":  {Type: genai.TypeString},
						"actionType":  {Type: genai.TypeString},
						"description": {Type: genai.TypeString},
					},
					Required: []string{"entityId", "actionType"},
				},
			},
			"map_grid": {
				Type:  genai.TypeArray,
				Items: &genai.Schema{Type: genai.TypeString},
			},
			"worldUpdate": {
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"newEntities": {
						Type: genai.TypeArray,
						Items: &genai.Schema{
							Type: genai.TypeObject,
							Properties: map[string]*genai.Schema{
								"id":          {Type: genai.TypeString},
								"name":        {Type: genai.TypeString},
								"type":        {Type: genai.TypeString},
								"relation":    {Type: genai.TypeString},
								"description": {Type: genai.TypeString},
								"liegeId":     {Type: genai.TypeString},
								"color":       {Type: genai.TypeString},
							},
							Required: []string{"id", "name", "type", "relation"},
						},
					},
					"newPeople": {Type: genai.TypeArray, Items: personSchema},
					"newRumors": {
						Type: genai.TypeArray,
						Items: &genai.Schema{
							Type: genai.TypeObject,
							Properties: map[string]*genai.Schema{
								"id":             {Type: genai.TypeString},
								"title":          {Type: genai.TypeString},
								"content":        {Type: genai.TypeString},
								"type":           {Type: genai.TypeString},
								"possibleImpact": {Type: genai.TypeString},
							},
							Required: []string{"id", "title", "type"},
						},
					},
					"resolvedRumorIds": {Type: genai.TypeArray, Items: &genai.Schema{Type: genai.TypeString}},
				},
			},
			"politicalUpdate": {
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"newFamilyMembers":     {Type: genai.TypeArray, Items: personSchema},
					"updatedFamilyMembers": {Type: genai.TypeArray, Items: personSchema},
					"newDivisions":         {Type: genai.TypeArray, Items: divisionSchema},
					"updatedDivisions":     {Type: genai.TypeArray, Items: divisionSchema},
				},
			},
			"buffsUpdate": {
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"newBuffs": {
						Type: genai.TypeArray,
						Items: &genai.Schema{
							Type: genai.TypeObject,
							Properties: map[string]*genai.Schema{
								"id":          {Type: genai.TypeString},
								"name":        {Type: genai.TypeString},
								"type":        {Type: genai.TypeString},
								"description": {Type: genai.TypeString},
								"effect":      {Type: genai.TypeString},
							},
							Required: []string{"id", "name", "type"},
						},
					},
					"removedBuffIds": {Type: genai.TypeArray, Items: &genai.Schema{Type: genai.TypeString}},
				},
			},
			"initialStats": {
				Type:       genai.TypeObject,
				Properties: statsProps,
			},
			"isGameOver":     {Type: genai.TypeBoolean},
			"gameOverReason": {Type: genai.TypeString},
		},
		Required: []string{"narrative", "statsChange", "suggestedActions", "isGameOver"},
	}
}
