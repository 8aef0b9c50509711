package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/noodle/internal/platform/httpenv"
)

var (
	flagEnvAddr     string
	flagMaxSessions int
)

var envCmd = &cobra.Command{
	Use:   "env",
	Short: "Serve the RL environment over HTTP",
	Long: `Serve the snake environment as a JSON API so agents in any language
can train against it.

Endpoints:
  POST /env/reset   {"seed": 42}                   start an episode
  POST /env/step    {"action": "left"}             relative move
                    {"direction": "up"}            or absolute heading
  GET  /env/state                                  board, snake, fruit, metrics
  POST /env/close                                  drop the session
  GET  /healthz

Sessions are picked with the X-Session-ID header ("default" when absent).

Examples:
  noodle env
  noodle env --addr :9000 --config ./small-board.yaml`,
	Args: cobra.NoArgs,
	RunE: runEnv,
}

func init() {
	envCmd.Flags().StringVar(&flagEnvAddr, "addr", httpenv.DefaultAddr, "HTTP listen address")
	envCmd.Flags().IntVar(&flagMaxSessions, "max-sessions", httpenv.DefaultMaxSessions, "Maximum concurrent sessions")
}

func runEnv(_ *cobra.Command, _ []string) error {
	logger, err := newLogger("env")
	if err != nil {
		return err
	}
	cfg, err := loadSnakeConfig("")
	if err != nil {
		return err
	}

	server := httpenv.NewServer(httpenv.ServerConfig{
		Addr:        flagEnvAddr,
		MaxSessions: flagMaxSessions,
		Snake:       cfg,
	}, logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return server.ListenAndServe(ctx)
}
