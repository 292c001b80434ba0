package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"arnavsurve/nara-othello/server/pkg/config"
	"arnavsurve/nara-othello/server/pkg/handlers"
	"arnavsurve/nara-othello/server/pkg/llm"
	"arnavsurve/nara-othello/server/pkg/logger"
	"arnavsurve/nara-othello/server/pkg/mcptools"
	"arnavsurve/nara-othello/server/pkg/suggest"

	"github.com/redis/go-redis/v9"
	"github.com/urfave/cli/v3"
	"go.uber.org/zap"
)

type app struct {
	cfg       *config.Config
	logger    *zap.Logger
	suggester suggest.Suggester
	closers   []func() error
}

// newApp wires config, logging, the model backend and the optional cache.
// Commands that speak on stdout log to stderr instead.
func newApp(ctx context.Context, cmd *cli.Command, logToStderr bool) (*app, error) {
	cfg, err := config.Load(cmd.String("config"))
	if err != nil {
		return nil, err
	}

	a := &app{cfg: cfg}
	if logToStderr {
		a.logger = logger.NewStderr(cfg.LogLevel)
	} else {
		a.logger = logger.New(cfg.LogLevel, cfg.LogFormat)
	}

	generator, closeGenerator, err := llm.New(ctx, cfg.LLM)
	if err != nil {
		return nil, fmt.Errorf("init llm: %w", err)
	}
	a.closers = append(a.closers, closeGenerator)

	var s suggest.Suggester = suggest.NewService(generator, a.logger)

	if cfg.Redis.Enabled {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err := rdb.Ping(ctx).Err(); err != nil {
			a.close()
			return nil, fmt.Errorf("failed to connect to Redis: %w", err)
		}
		a.closers = append(a.closers, rdb.Close)
		s = suggest.NewCache(s, rdb, cfg.Redis.TTL, a.logger)
		a.logger.Info("suggestion cache enabled", zap.String("addr", cfg.Redis.Addr), zap.Duration("ttl", cfg.Redis.TTL))
	}

	a.suggester = s
	a.logger.Info("move suggester ready", zap.String("provider", cfg.LLM.Provider))

	return a, nil
}

func (a *app) close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil && a.logger != nil {
			a.logger.Warn("shutdown", zap.Error(err))
		}
	}
	if a.logger != nil {
		_ = a.logger.Sync()
	}
}

func serveCommand() *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "run the HTTP server (REST, WebSocket and MCP endpoints)",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			a, err := newApp(ctx, cmd, false)
			if err != nil {
				return err
			}
			defer a.close()

			tools := mcptools.New(a.suggester, a.logger)
			router := handlers.NewRouter(handlers.RouterConfig{
				Suggester:      a.suggester,
				MCP:            tools,
				RequestTimeout: a.cfg.HTTP.RequestTimeout,
				AllowedOrigin:  a.cfg.HTTP.AllowedOrigin,
				Logger:         a.logger,
			})

			srv := &http.Server{
				Addr:         a.cfg.HTTP.Addr,
				Handler:      router,
				ReadTimeout:  15 * time.Second,
				WriteTimeout: a.cfg.HTTP.RequestTimeout + 15*time.Second,
				IdleTimeout:  60 * time.Second,
			}

			ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
			defer stop()

			errCh := make(chan error, 1)
			go func() {
				a.logger.Info("serving", zap.String("addr", a.cfg.HTTP.Addr))
				errCh <- srv.ListenAndServe()
			}()

			select {
			case err := <-errCh:
				if !errors.Is(err, http.ErrServerClosed) {
					return fmt.Errorf("failed to start server: %w", err)
				}
				return nil
			case <-ctx.Done():
			}

			a.logger.Info("shutting down")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()

			return srv.Shutdown(shutdownCtx)
		},
	}
}

func mcpCommand() *cli.Command {
	return &cli.Command{
		Name:  "mcp",
		Usage: "serve the suggest_move tool over MCP stdio",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			a, err := newApp(ctx, cmd, true)
			if err != nil {
				return err
			}
			defer a.close()

			a.logger.Info("MCP stdio server ready")
			return mcptools.New(a.suggester, a.logger).ServeStdio()
		},
	}
}

func suggestCommand() *cli.Command {
	return &cli.Command{
		Name:  "suggest",
		Usage: "print one move suggestion as JSON",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "board",
				Usage:    "file holding the board (8 lines of B, W, _), or - for stdin",
				Required: true,
			},
			&cli.StringFlag{
				Name:     "player",
				Usage:    "player to move (black or white)",
				Required: true,
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			board, err := readBoard(cmd.String("board"), os.Stdin)
			if err != nil {
				return err
			}

			a, err := newApp(ctx, cmd, true)
			if err != nil {
				return err
			}
			defer a.close()

			ctx, cancel := context.WithTimeout(ctx, a.cfg.HTTP.RequestTimeout)
			defer cancel()

			suggestion, err := a.suggester.Suggest(ctx, board, cmd.String("player"))
			if err != nil {
				return err
			}

			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(suggestion)
		},
	}
}

func readBoard(path string, stdin io.Reader) (string, error) {
	var (
		data []byte
		err  error
	)
	if path == "-" {
		data, err = io.ReadAll(stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return "", fmt.Errorf("read board: %w", err)
	}

	board := strings.TrimRight(strings.ReplaceAll(string(data), "\r\n", "\n"), "\n ")
	if board == "" {
		return "", errors.New("read board: board is empty")
	}
	return board, nil
}
