// Package llm defines the generative-text collaborator the move suggester
// talks to, and builds one from configuration.
package llm

import (
	"context"
	"fmt"
	"strings"

	"arnavsurve/nara-othello/server/pkg/config"
	"arnavsurve/nara-othello/server/pkg/llm/gemini"
	"arnavsurve/nara-othello/server/pkg/llm/ollama"
	"arnavsurve/nara-othello/server/pkg/llm/vertex"
	"arnavsurve/nara-othello/server/pkg/schema"
)

const (
	ProviderGemini = "gemini"
	ProviderOllama = "ollama"
	ProviderVertex = "vertex"
)

// Generator asks a model for a response conforming to out and returns the
// raw text. An empty string with a nil error means the model produced nothing.
type Generator interface {
	GenerateJSON(ctx context.Context, prompt string, out *schema.Schema) (string, error)
}

// New creates a Generator for the configured provider. The returned close
// function releases provider resources.
func New(ctx context.Context, cfg config.LLM) (Generator, func() error, error) {
	switch strings.ToLower(strings.TrimSpace(cfg.Provider)) {
	case "", ProviderGemini:
		g, err := gemini.New(ctx, cfg.Gemini.APIKey, cfg.Gemini.Model, cfg.Temperature)
		if err != nil {
			return nil, nil, err
		}
		return g, g.Close, nil

	case ProviderOllama:
		g, err := ollama.New(cfg.Ollama.Model, cfg.Ollama.ServerURL, float64(cfg.Temperature))
		if err != nil {
			return nil, nil, err
		}
		return g, g.Close, nil

	case ProviderVertex:
		g, err := vertex.New(ctx, cfg.Vertex.Project, cfg.Vertex.Location, cfg.Vertex.Model, cfg.Temperature)
		if err != nil {
			return nil, nil, err
		}
		return g, g.Close, nil
	}

	return nil, nil, fmt.Errorf("unknown llm provider %q", cfg.Provider)
}
