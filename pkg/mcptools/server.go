// Package mcptools exposes the move suggester as an MCP tool so agents can
// ask for Othello moves over stdio or HTTP.
package mcptools

import (
	"context"
	"encoding/json"
	"io"
	"net/http"

	"arnavsurve/nara-othello/server/pkg/schema"
	"arnavsurve/nara-othello/server/pkg/suggest"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"go.uber.org/zap"
)

const (
	ServerName    = "nara-othello"
	ServerVersion = "1.0.0"

	ToolSuggestMove = "suggest_move"
)

type Tools struct {
	svc       suggest.Suggester
	logger    *zap.Logger
	mcpServer *server.MCPServer
}

func New(svc suggest.Suggester, logger *zap.Logger) *Tools {
	if logger == nil {
		logger = zap.NewNop()
	}

	t := &Tools{
		svc:    svc,
		logger: logger,
		mcpServer: server.NewMCPServer(
			ServerName,
			ServerVersion,
			server.WithToolCapabilities(true),
			server.WithInstructions(`Othello move suggestions.

Call suggest_move with the board as 8 lines of 8 characters (B=Black, W=White, _=Empty)
and the player to move ("black" or "white"). Row 0 is the top row, col 0 the left column.
The suggested move is not checked for legality.`),
		),
	}
	t.registerTools()

	return t
}

func (t *Tools) registerTools() {
	input := schema.SuggestMoveInput.Document()
	properties, _ := input["properties"].(map[string]any)

	t.mcpServer.AddTool(mcp.Tool{
		Name:        ToolSuggestMove,
		Description: "Suggest a good Othello move for the current player and explain why",
		InputSchema: mcp.ToolInputSchema{
			Type:       string(schema.SuggestMoveInput.Type),
			Properties: properties,
			Required:   schema.SuggestMoveInput.Required,
		},
	}, t.handleSuggestMove)
}

func (t *Tools) handleSuggestMove(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, _ := request.Params.Arguments.(map[string]interface{})

	raw, err := json.Marshal(args)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if err := schema.SuggestMoveInput.Validate(raw); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	boardState, _ := args["board_state"].(string)
	player, _ := args["player"].(string)
	if boardState == "" || player == "" {
		return mcp.NewToolResultError("board_state and player must not be empty"), nil
	}

	suggestion, err := t.svc.Suggest(ctx, boardState, player)
	if err != nil {
		t.logger.Error("mcp move suggestion failed", zap.Error(err))
		return mcp.NewToolResultError(err.Error()), nil
	}

	out, err := json.Marshal(suggestion)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(string(out)), nil
}

// ServeStdio blocks serving MCP over stdin/stdout.
func (t *Tools) ServeStdio() error {
	return server.ServeStdio(t.mcpServer)
}

// ServeHTTP handles a single JSON-RPC message per POST request.
func (t *Tools) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, 1<<20))
	if err != nil {
		http.Error(w, "Failed to read request", http.StatusBadRequest)
		return
	}
	defer r.Body.Close()

	response := t.mcpServer.HandleMessage(r.Context(), body)
	if response == nil {
		// Notifications carry no response.
		w.WriteHeader(http.StatusAccepted)
		return
	}

	responseData, err := json.Marshal(response)
	if err != nil {
		http.Error(w, "Failed to marshal response", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Write(responseData)
}
