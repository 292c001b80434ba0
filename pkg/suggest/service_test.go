package suggest

import (
	"context"
	"errors"
	"testing"

	"arnavsurve/nara-othello/server/pkg/schema"
	"arnavsurve/nara-othello/server/pkg/types"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const openingBoard = "________\n________\n________\n___WB___\n___BW___\n________\n________\n________"

var errBackendDown = errors.New("backend down")

type fakeGenerator struct {
	GenerateJSONFunc func(ctx context.Context, prompt string, out *schema.Schema) (string, error)

	calls  int
	prompt string
	schema *schema.Schema
}

func (f *fakeGenerator) GenerateJSON(ctx context.Context, prompt string, out *schema.Schema) (string, error) {
	f.calls++
	f.prompt = prompt
	f.schema = out
	return f.GenerateJSONFunc(ctx, prompt, out)
}

func returning(raw string) *fakeGenerator {
	return &fakeGenerator{GenerateJSONFunc: func(context.Context, string, *schema.Schema) (string, error) {
		return raw, nil
	}}
}

func TestService_Suggest(t *testing.T) {
	ctx := context.Background()

	t.Run("returns the stub suggestion unchanged", func(t *testing.T) {
		// Given: a backend answering with a conformant suggestion
		gen := returning(`{"move":{"row":2,"col":3},"rationale":"flips one piece"}`)
		svc := NewService(gen, nil)

		// When: asking for a move in the opening position
		got, err := svc.Suggest(ctx, openingBoard, "black")

		// Then: the suggestion comes back exactly as sent
		require.NoError(t, err)
		assert.Equal(t, &types.MoveSuggestion{
			Move:      types.Move{Row: 2, Col: 3},
			Rationale: "flips one piece",
		}, got)

		// And: the backend saw one prompt carrying the board, player and output schema
		assert.Equal(t, 1, gen.calls)
		assert.Contains(t, gen.prompt, openingBoard)
		assert.Contains(t, gen.prompt, "Current Player: black")
		assert.Same(t, schema.MoveSuggestion, gen.schema)
	})

	t.Run("does not range check coordinates", func(t *testing.T) {
		svc := NewService(returning(`{"move":{"row":9,"col":-2},"rationale":"off board"}`), nil)

		got, err := svc.Suggest(ctx, openingBoard, "white")

		require.NoError(t, err)
		assert.Equal(t, types.Move{Row: 9, Col: -2}, got.Move)
	})

	t.Run("missing rationale fails validation", func(t *testing.T) {
		svc := NewService(returning(`{"move":{"row":2,"col":3}}`), nil)

		got, err := svc.Suggest(ctx, openingBoard, "black")

		require.ErrorIs(t, err, ErrSchemaValidation)
		assert.Nil(t, got)
	})

	t.Run("string row fails validation", func(t *testing.T) {
		svc := NewService(returning(`{"move":{"row":"2","col":3},"rationale":"r"}`), nil)

		got, err := svc.Suggest(ctx, openingBoard, "black")

		require.ErrorIs(t, err, ErrSchemaValidation)
		var verr *schema.ValidationError
		assert.ErrorAs(t, err, &verr)
		assert.Nil(t, got)
	})

	t.Run("malformed json fails validation", func(t *testing.T) {
		svc := NewService(returning(`I think d3 is best`), nil)

		_, err := svc.Suggest(ctx, openingBoard, "black")

		require.ErrorIs(t, err, ErrSchemaValidation)
	})

	t.Run("backend error is collaborator unavailable", func(t *testing.T) {
		gen := &fakeGenerator{GenerateJSONFunc: func(context.Context, string, *schema.Schema) (string, error) {
			return `{"move":{"row":2,"col":3},"rationale":"partial"}`, errBackendDown
		}}
		svc := NewService(gen, nil)

		got, err := svc.Suggest(ctx, openingBoard, "black")

		require.ErrorIs(t, err, ErrCollaboratorUnavailable)
		require.ErrorIs(t, err, errBackendDown)
		assert.Nil(t, got)
		assert.Equal(t, 1, gen.calls)
	})

	t.Run("context cancellation surfaces as collaborator unavailable", func(t *testing.T) {
		cctx, cancel := context.WithCancel(ctx)
		cancel()
		gen := &fakeGenerator{GenerateJSONFunc: func(ctx context.Context, _ string, _ *schema.Schema) (string, error) {
			return "", ctx.Err()
		}}

		_, err := NewService(gen, nil).Suggest(cctx, openingBoard, "black")

		require.ErrorIs(t, err, ErrCollaboratorUnavailable)
		require.ErrorIs(t, err, context.Canceled)
	})

	for name, raw := range map[string]string{
		"empty":      "",
		"whitespace": " \n\t",
		"null":       "null",
	} {
		t.Run(name+" output is an empty result", func(t *testing.T) {
			got, err := NewService(returning(raw), nil).Suggest(ctx, openingBoard, "black")

			require.ErrorIs(t, err, ErrEmptyResult)
			assert.Nil(t, got)
		})
	}
}

func TestParseMoveSuggestion(t *testing.T) {
	t.Run("strips a code fence", func(t *testing.T) {
		got, err := ParseMoveSuggestion("```json\n{\"move\":{\"row\":4,\"col\":5},\"rationale\":\"edge\"}\n```")

		require.NoError(t, err)
		assert.Equal(t, types.Move{Row: 4, Col: 5}, got.Move)
		assert.Equal(t, "edge", got.Rationale)
	})

	t.Run("accepts integral floats", func(t *testing.T) {
		got, err := ParseMoveSuggestion(`{"move":{"row":2.0,"col":3},"rationale":"r"}`)

		require.NoError(t, err)
		assert.Equal(t, types.Move{Row: 2, Col: 3}, got.Move)
	})

	t.Run("rejects fractional coordinates", func(t *testing.T) {
		_, err := ParseMoveSuggestion(`{"move":{"row":2.5,"col":3},"rationale":"r"}`)

		require.ErrorIs(t, err, ErrSchemaValidation)
	})

	t.Run("strips a one-line fence with a language tag", func(t *testing.T) {
		got, err := ParseMoveSuggestion("```json{\"move\":{\"row\":4,\"col\":5},\"rationale\":\"edge\"}```")

		require.NoError(t, err)
		assert.Equal(t, types.Move{Row: 4, Col: 5}, got.Move)
	})

	t.Run("strips a one-line fence without a tag", func(t *testing.T) {
		got, err := ParseMoveSuggestion("```{\"move\":{\"row\":1,\"col\":6},\"rationale\":\"r\"}```")

		require.NoError(t, err)
		assert.Equal(t, types.Move{Row: 1, Col: 6}, got.Move)
	})

	t.Run("keeps large coordinates exact", func(t *testing.T) {
		got, err := ParseMoveSuggestion(`{"move":{"row":9007199254740993,"col":-1},"rationale":"r"}`)

		require.NoError(t, err)
		assert.Equal(t, types.Move{Row: 9007199254740993, Col: -1}, got.Move)
	})

	t.Run("accepts integral exponent notation", func(t *testing.T) {
		got, err := ParseMoveSuggestion(`{"move":{"row":3e0,"col":2E1},"rationale":"r"}`)

		require.NoError(t, err)
		assert.Equal(t, types.Move{Row: 3, Col: 20}, got.Move)
	})

	t.Run("rejects coordinates an int cannot hold", func(t *testing.T) {
		for _, raw := range []string{
			`{"move":{"row":1e20,"col":3},"rationale":"r"}`,
			`{"move":{"row":2,"col":9223372036854775808},"rationale":"r"}`,
			`{"move":{"row":-9223372036854775809,"col":3},"rationale":"r"}`,
		} {
			got, err := ParseMoveSuggestion(raw)

			require.ErrorIs(t, err, ErrSchemaValidation, raw)
			assert.Nil(t, got)
		}
	})

	t.Run("fence with nothing inside is empty", func(t *testing.T) {
		_, err := ParseMoveSuggestion("```json\n```")

		require.ErrorIs(t, err, ErrEmptyResult)
	})
}
