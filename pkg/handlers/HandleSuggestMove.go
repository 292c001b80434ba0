package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"arnavsurve/nara-othello/server/pkg/suggest"
	"arnavsurve/nara-othello/server/pkg/types"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

func HandleSuggestMove(svc suggest.Suggester, timeout time.Duration, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}

		log := logger.With(zap.String("request_id", uuid.NewString()))

		var req types.SuggestMoveRequest

		r.Body = http.MaxBytesReader(w, r.Body, 1<<20) // Limit body size to 1MB

		decoder := json.NewDecoder(r.Body)
		decoder.DisallowUnknownFields()

		if err := decoder.Decode(&req); err != nil {
			http.Error(w, "Invalid JSON", http.StatusBadRequest)
			return
		}

		if msg := validateRequest(req); msg != "" {
			http.Error(w, msg, http.StatusBadRequest)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), timeout)
		defer cancel()

		start := time.Now()
		log.Info("requesting move suggestion", zap.String("player", req.Player))

		suggestion, err := svc.Suggest(ctx, req.BoardState, req.Player)
		if err != nil {
			log.Error("move suggestion failed", zap.Error(err), zap.Duration("latency", time.Since(start)))
			status, msg := errorStatus(err)
			http.Error(w, msg, status)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		if err := json.NewEncoder(w).Encode(suggestion); err != nil {
			log.Error("encoding JSON response for client", zap.Error(err))
		}

		log.Info("suggested move",
			zap.Int("row", suggestion.Move.Row),
			zap.Int("col", suggestion.Move.Col),
			zap.Duration("latency", time.Since(start)),
		)
	}
}

func validateRequest(req types.SuggestMoveRequest) string {
	if req.BoardState == "" {
		return "Request must contain the current board state (board_state field)"
	}
	if req.Player == "" {
		return "Request must contain the current player (player field)"
	}
	return ""
}

func errorStatus(err error) (int, string) {
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout, "Analysis request timed out"
	case errors.Is(err, suggest.ErrEmptyResult):
		return http.StatusBadGateway, "Received empty analysis response"
	case errors.Is(err, suggest.ErrSchemaValidation):
		return http.StatusBadGateway, "Failed to parse move suggestion"
	default:
		return http.StatusBadGateway, "Failed to get move suggestion from service"
	}
}
