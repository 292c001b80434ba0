package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"arnavsurve/nara-othello/server/pkg/suggest"
	"arnavsurve/nara-othello/server/pkg/types"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

// HandleSuggestSocket answers one suggestion per incoming frame on a
// long-lived connection. A bad frame gets an error reply; the socket stays up.
func HandleSuggestSocket(svc suggest.Suggester, timeout time.Duration, allowedOrigin string, logger *zap.Logger) http.HandlerFunc {
	upgrader := websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin: func(r *http.Request) bool {
			origin := r.Header.Get("Origin")
			return origin == "" || allowedOrigin == "*" || origin == allowedOrigin
		},
	}

	return func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			logger.Warn("websocket upgrade failed", zap.Error(err))
			return
		}
		defer conn.Close()

		conn.SetReadLimit(1 << 20)
		log := logger.With(zap.String("connection_id", uuid.NewString()))
		log.Info("websocket connected", zap.String("remote", r.RemoteAddr))

		for {
			_, data, err := conn.ReadMessage()
			if err != nil {
				log.Info("websocket closed", zap.Error(err))
				return
			}

			var req types.SuggestMoveRequest
			if err := json.Unmarshal(data, &req); err != nil {
				if err := conn.WriteJSON(types.SocketResponse{Error: "Invalid JSON"}); err != nil {
					return
				}
				continue
			}

			if msg := validateRequest(req); msg != "" {
				if err := conn.WriteJSON(types.SocketResponse{Error: msg}); err != nil {
					return
				}
				continue
			}

			ctx, cancel := context.WithTimeout(r.Context(), timeout)
			suggestion, err := svc.Suggest(ctx, req.BoardState, req.Player)
			cancel()

			var resp types.SocketResponse
			if err != nil {
				log.Error("move suggestion failed", zap.Error(err))
				_, resp.Error = errorStatus(err)
			} else {
				resp.Suggestion = suggestion
			}

			if err := conn.WriteJSON(resp); err != nil {
				log.Warn("websocket write failed", zap.Error(err))
				return
			}
		}
	}
}
