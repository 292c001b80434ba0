// Package gemini provides a Generator backed by Google Gemini.
package gemini

import (
	"context"
	"fmt"

	"arnavsurve/nara-othello/server/pkg/schema"
	"arnavsurve/nara-othello/server/pkg/utils"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

const DefaultModel = "gemini-2.0-flash"

type contentGenerator interface {
	GenerateContent(ctx context.Context, parts ...genai.Part) (*genai.GenerateContentResponse, error)
}

// Generator implements llm.Generator using the Gemini structured output API.
type Generator struct {
	client      *genai.Client
	model       string
	temperature float32

	// newModel is swapped out in tests.
	newModel func(out *schema.Schema) contentGenerator
}

// New constructs a Gemini generator. Close releases the underlying client.
func New(ctx context.Context, apiKey, model string, temperature float32) (*Generator, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("gemini: api key is required")
	}
	if model == "" {
		model = DefaultModel
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("gemini: new client: %w", err)
	}

	g := &Generator{
		client:      client,
		model:       model,
		temperature: temperature,
	}
	g.newModel = g.configuredModel

	return g, nil
}

func (g *Generator) configuredModel(out *schema.Schema) contentGenerator {
	model := g.client.GenerativeModel(g.model)
	model.GenerationConfig = genai.GenerationConfig{
		ResponseMIMEType: "application/json",
		ResponseSchema:   ToGenaiSchema(out),
		Temperature:      utils.PtrFloat32(g.temperature),
	}
	return model
}

// GenerateJSON implements llm.Generator. An empty string with a nil error
// means Gemini answered without any content.
func (g *Generator) GenerateJSON(ctx context.Context, prompt string, out *schema.Schema) (string, error) {
	resp, err := g.newModel(out).GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("gemini: generate content: %w", err)
	}
	return textFromResponse(resp)
}

func (g *Generator) Close() error {
	if g.client == nil {
		return nil
	}
	return g.client.Close()
}

func textFromResponse(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", nil
	}

	part := resp.Candidates[0].Content.Parts[0]
	text, ok := part.(genai.Text)
	if !ok {
		return "", fmt.Errorf("gemini: expected text part, got %T", part)
	}
	return string(text), nil
}

// ToGenaiSchema converts a schema descriptor into Gemini's response schema.
func ToGenaiSchema(s *schema.Schema) *genai.Schema {
	if s == nil {
		return nil
	}

	out := &genai.Schema{
		Type:        genaiType(s.Type),
		Description: s.Description,
		Required:    append([]string(nil), s.Required...),
	}
	if len(s.Properties) > 0 {
		out.Properties = make(map[string]*genai.Schema, len(s.Properties))
		for name, prop := range s.Properties {
			out.Properties[name] = ToGenaiSchema(prop)
		}
	}
	return out
}

func genaiType(t schema.Type) genai.Type {
	switch t {
	case schema.TypeObject:
		return genai.TypeObject
	case schema.TypeString:
		return genai.TypeString
	case schema.TypeInteger:
		return genai.TypeInteger
	case schema.TypeNumber:
		return genai.TypeNumber
	default:
		return genai.TypeUnspecified
	}
}
