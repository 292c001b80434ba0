package prompts

import (
	"fmt"

	"github.com/tmc/langchaingo/prompts"
)

const suggestMoveTemplate = `You are an expert Othello player and strategist. Given the current state of the board and the current player, suggest a good move and explain your reasoning. The top-left corner is row 0, col 0.

Board State (B=Black, W=White, _=Empty):
{{.boardState}}

Current Player: {{.player}}

Consider the following when making your suggestion:
* Maximize your potential to flip opponent's pieces.
* Position yourself for future strategic advantages.
* Avoid moves that immediately benefit your opponent.

Return the suggested move as a row and column index.`

var suggestMove = prompts.NewPromptTemplate(suggestMoveTemplate, []string{"boardState", "player"})

// SuggestMove renders the move suggestion instruction for the given board and player.
func SuggestMove(boardState, player string) (string, error) {
	text, err := suggestMove.Format(map[string]any{
		"boardState": boardState,
		"player":     player,
	})
	if err != nil {
		return "", fmt.Errorf("render suggest move prompt: %w", err)
	}
	return text, nil
}
