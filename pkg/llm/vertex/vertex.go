// Package vertex provides a Generator backed by Gemini models on Vertex AI,
// using the unified Google Gen AI SDK.
package vertex

import (
	"context"
	"fmt"

	"arnavsurve/nara-othello/server/pkg/schema"

	"google.golang.org/genai"
)

const (
	DefaultModel    = "gemini-2.0-flash"
	DefaultLocation = "us-central1"
)

type contentGenerator interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

// Generator implements llm.Generator against a Vertex AI project.
// Credentials come from Application Default Credentials.
type Generator struct {
	models      contentGenerator
	model       string
	temperature float32
}

func New(ctx context.Context, project, location, model string, temperature float32) (*Generator, error) {
	if project == "" {
		return nil, fmt.Errorf("vertex: project is required")
	}
	if location == "" {
		location = DefaultLocation
	}
	if model == "" {
		model = DefaultModel
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		Backend:  genai.BackendVertexAI,
		Project:  project,
		Location: location,
	})
	if err != nil {
		return nil, fmt.Errorf("vertex: new client: %w", err)
	}

	return &Generator{
		models:      client.Models,
		model:       model,
		temperature: temperature,
	}, nil
}

// GenerateJSON implements llm.Generator.
func (g *Generator) GenerateJSON(ctx context.Context, prompt string, out *schema.Schema) (string, error) {
	resp, err := g.models.GenerateContent(ctx, g.model, genai.Text(prompt), &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
		ResponseSchema:   ToGenaiSchema(out),
		Temperature:      genai.Ptr(g.temperature),
	})
	if err != nil {
		return "", fmt.Errorf("vertex: generate content: %w", err)
	}
	if resp == nil {
		return "", nil
	}

	return resp.Text(), nil
}

// Close is a no-op; the SDK client holds no connections of its own.
func (g *Generator) Close() error {
	return nil
}

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
