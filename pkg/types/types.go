package types

type SuggestMoveRequest struct {
	BoardState string `json:"board_state"`
	Player     string `json:"player"`
}

// Move is a 0-indexed board coordinate. Row 0 is the top row, col 0 the left column.
type Move struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

type MoveSuggestion struct {
	Move      Move   `json:"move"`
	Rationale string `json:"rationale"`
}

type SocketResponse struct {
	Suggestion *MoveSuggestion `json:"suggestion,omitempty"`
	Error      string          `json:"error,omitempty"`
}
