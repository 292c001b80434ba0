package schema

// SuggestMoveInput describes a suggestion request as callers send it over
// HTTP, WebSocket and MCP.
var SuggestMoveInput = &Schema{
	Type: TypeObject,
	Properties: map[string]*Schema{
		"board_state": {
			Type:        TypeString,
			Description: "The current state of the Othello board: 8 lines of 8 characters (B=Black, W=White, _=Empty).",
		},
		"player": {
			Type:        TypeString,
			Description: "The current player (black or white).",
		},
	},
	Required: []string{"board_state", "player"},
}

// MoveSuggestion describes the model's answer. Row and col are not range
// checked; the description is the only hint that they belong in 0-7.
var MoveSuggestion = &Schema{
	Type:        TypeObject,
	Description: "A suggested Othello move and the reasoning behind it.",
	Properties: map[string]*Schema{
		"move": {
			Type:        TypeObject,
			Description: "The suggested move coordinates.",
			Properties: map[string]*Schema{
				"row": {
					Type:        TypeInteger,
					Description: "The row index of the suggested move (0-7).",
				},
				"col": {
					Type:        TypeInteger,
					Description: "The column index of the suggested move (0-7).",
				},
			},
			Required: []string{"row", "col"},
		},
		"rationale": {
			Type:        TypeString,
			Description: "The rationale behind the suggested move.",
		},
	},
	Required: []string{"move", "rationale"},
}
