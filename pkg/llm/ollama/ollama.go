// Package ollama provides a Generator backed by a local Ollama model.
package ollama

import (
	"context"
	"fmt"

	"arnavsurve/nara-othello/server/pkg/schema"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/ollama"
)

const DefaultModel = "llama3.1"

// Generator implements llm.Generator. Ollama has no native response schema,
// so the schema is spelled out in the prompt and JSON mode is switched on.
type Generator struct {
	model       llms.Model
	temperature float64
}

// New constructs Ollama support for the named model.
func New(model string, serverURL string, temperature float64) (*Generator, error) {
	if model == "" {
		model = DefaultModel
	}

	opts := []ollama.Option{ollama.WithModel(model)}
	if serverURL != "" {
		opts = append(opts, ollama.WithServerURL(serverURL))
	}

	llm, err := ollama.New(opts...)
	if err != nil {
		return nil, fmt.Errorf("ollama: %w", err)
	}

	return NewWithModel(llm, temperature), nil
}

// NewWithModel wraps any langchaingo model.
func NewWithModel(model llms.Model, temperature float64) *Generator {
	return &Generator{
		model:       model,
		temperature: temperature,
	}
}

// GenerateJSON implements llm.Generator.
func (g *Generator) GenerateJSON(ctx context.Context, prompt string, out *schema.Schema) (string, error) {
	content := []llms.MessageContent{
		llms.TextParts(llms.ChatMessageTypeHuman, withSchema(prompt, out)),
	}

	resp, err := g.model.GenerateContent(ctx, content, llms.WithTemperature(g.temperature), llms.WithJSONMode())
	if err != nil {
		return "", fmt.Errorf("ollama: generate content: %w", err)
	}

	if resp == nil || len(resp.Choices) == 0 {
		return "", nil
	}

	return resp.Choices[0].Content, nil
}

func (g *Generator) Close() error {
	return nil
}

func withSchema(prompt string, out *schema.Schema) string {
	if out == nil {
		return prompt
	}

	return fmt.Sprintf(`%s

Output your response strictly as a JSON object matching this JSON schema:
%s

Do NOT include anything outside the JSON object.`, prompt, out.String())
}
