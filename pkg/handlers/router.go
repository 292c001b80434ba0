package handlers

import (
	"net/http"
	"time"

	"arnavsurve/nara-othello/server/pkg/suggest"

	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

type RouterConfig struct {
	Suggester      suggest.Suggester
	MCP            http.Handler
	RequestTimeout time.Duration
	AllowedOrigin  string
	Logger         *zap.Logger
}

func NewRouter(cfg RouterConfig) http.Handler {
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	r := mux.NewRouter()
	r.HandleFunc("/suggestMove", HandleSuggestMove(cfg.Suggester, cfg.RequestTimeout, logger)).Methods(http.MethodPost)
	r.HandleFunc("/ws", HandleSuggestSocket(cfg.Suggester, cfg.RequestTimeout, cfg.AllowedOrigin, logger)).Methods(http.MethodGet)
	if cfg.MCP != nil {
		r.Handle("/mcp", cfg.MCP).Methods(http.MethodPost)
	}
	r.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	}).Methods(http.MethodGet)

	return CORSMiddleware(cfg.AllowedOrigin, r)
}

func CORSMiddleware(allowedOrigin string, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", allowedOrigin)
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}
