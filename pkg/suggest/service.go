// Package suggest asks a generative model for an Othello move and validates
// the answer. Move legality is left entirely to the model.
package suggest

import (
	"context"
	"encoding/json"
	"fmt"
	"math/big"
	"strings"

	"arnavsurve/nara-othello/server/pkg/llm"
	"arnavsurve/nara-othello/server/pkg/prompts"
	"arnavsurve/nara-othello/server/pkg/schema"
	"arnavsurve/nara-othello/server/pkg/types"

	"go.uber.org/zap"
)

type Suggester interface {
	Suggest(ctx context.Context, boardState, player string) (*types.MoveSuggestion, error)
}

// Service is stateless; one value can serve any number of concurrent calls.
type Service struct {
	generator llm.Generator
	logger    *zap.Logger
}

func NewService(generator llm.Generator, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		generator: generator,
		logger:    logger,
	}
}

// Suggest makes exactly one backend call. It fails with ErrCollaboratorUnavailable,
// ErrEmptyResult or ErrSchemaValidation and never returns a partial result.
func (s *Service) Suggest(ctx context.Context, boardState, player string) (*types.MoveSuggestion, error) {
	prompt, err := prompts.SuggestMove(boardState, player)
	if err != nil {
		return nil, err
	}

	s.logger.Debug("requesting move suggestion", zap.String("player", player), zap.Int("prompt_len", len(prompt)))

	raw, err := s.generator.GenerateJSON(ctx, prompt, schema.MoveSuggestion)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCollaboratorUnavailable, err)
	}

	s.logger.Debug("raw move suggestion", zap.String("raw", raw))

	suggestion, err := ParseMoveSuggestion(raw)
	if err != nil {
		s.logger.Warn("rejected move suggestion", zap.Error(err), zap.String("raw", raw))
		return nil, err
	}

	return suggestion, nil
}

// ParseMoveSuggestion validates raw model output and decodes it.
func ParseMoveSuggestion(raw string) (*types.MoveSuggestion, error) {
	text := trimCodeFence(strings.TrimSpace(raw))
	if text == "" || text == "null" {
		return nil, ErrEmptyResult
	}

	if err := schema.MoveSuggestion.Validate([]byte(text)); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSchemaValidation, err)
	}

	dec := json.NewDecoder(strings.NewReader(text))
	dec.UseNumber()

	var wire struct {
		Move struct {
			Row json.Number `json:"row"`
			Col json.Number `json:"col"`
		} `json:"move"`
		Rationale string `json:"rationale"`
	}
	if err := dec.Decode(&wire); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSchemaValidation, err)
	}

	row, err := coordinate(wire.Move.Row)
	if err != nil {
		return nil, fmt.Errorf("%w: move.row: %w", ErrSchemaValidation, err)
	}
	col, err := coordinate(wire.Move.Col)
	if err != nil {
		return nil, fmt.Errorf("%w: move.col: %w", ErrSchemaValidation, err)
	}

	return &types.MoveSuggestion{
		Move: types.Move{
			Row: row,
			Col: col,
		},
		Rationale: wire.Rationale,
	}, nil
}

// coordinate converts an integral JSON number such as 3, -1 or 2.0 to an int.
// Values an int cannot hold exactly are rejected rather than rounded.
func coordinate(n json.Number) (int, error) {
	r, ok := new(big.Rat).SetString(n.String())
	if !ok || !r.IsInt() {
		return 0, fmt.Errorf("%q is not an integer", n)
	}

	num := r.Num()
	if !num.IsInt64() {
		return 0, fmt.Errorf("%s is out of range", n)
	}
	i := num.Int64()
	if int64(int(i)) != i {
		return 0, fmt.Errorf("%s is out of range", n)
	}

	return int(i), nil
}

func trimCodeFence(text string) string {
	if !strings.HasPrefix(text, "```") {
		return text
	}
	text = strings.TrimPrefix(text, "```")

	// Drop a language tag on the opening fence, with or without a line break after it.
	tag := strings.IndexFunc(text, func(r rune) bool {
		return !('a' <= r && r <= 'z' || 'A' <= r && r <= 'Z')
	})
	if tag > 0 && strings.ContainsRune(" \t\r\n{[", rune(text[tag])) {
		text = text[tag:]
	}

	text = strings.TrimSpace(text)
	text = strings.TrimSuffix(text, "```")

	return strings.TrimSpace(text)
}
