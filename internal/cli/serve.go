package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/graphologue/internal/metrics"
	"github.com/matzehuels/graphologue/internal/server"
)

// serveCommand serves the pipeline over HTTP.
func (c *CLI) serveCommand() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the pipeline over HTTP",
		Long: `Serve the pipeline over HTTP.

Endpoints:
  POST /v1/relations  extract relation triplets from {"text": ...}
  POST /v1/layout     lay out {"triplets": [...], "engine": ...}
  POST /v1/graph      run the whole pipeline
  GET  /v1/papers     find papers for ?keyword=... (repeatable)
  POST /v1/explain    elaborate on {"text": ...}
  GET  /healthz       liveness
  GET  /metrics       Prometheus metrics

The server stops gracefully on SIGINT or SIGTERM.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if addr != "" {
				c.cfg.Server.Addr = addr
			}
			return c.runServe(cmd.Context())
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config, :8080)")

	return cmd
}

func (c *CLI) runServe(ctx context.Context) error {
	runner, backend, err := c.newRunner(ctx, false)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer backend.Close()
	if runner.Completer == nil {
		c.Logger.Warn("no completion API key configured; relations and explain are disabled")
	}

	metrics.Register()

	srv := server.New(runner, c.Logger)
	return srv.Run(ctx, server.Config{
		Addr:         c.cfg.Server.Addr,
		ReadTimeout:  c.cfg.Server.ReadTimeout.Duration,
		WriteTimeout: c.cfg.Server.WriteTimeout.Duration,
	})
}
