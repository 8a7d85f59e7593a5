package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/IshaanNene/ShopScope/internal/api"
)

// serveCmd creates the "serve" subcommand.
func serveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the analyzers over HTTP",
		Long: `Start the HTTP API.

Endpoints:
  GET /health
  GET /metrics
  GET /api/v1/analyzers
  GET /api/v1/analyze?url=URL&analyzer=NAME[&format=text|markdown|yaml]`,
		Args: cobra.NoArgs,
		RunE: runServe,
	}

	cmd.Flags().IntVarP(&port, "port", "p", 0, "listen port (default from config: 8080)")

	return cmd
}

func runServe(cmd *cobra.Command, args []string) error {
	s, err := newSession(cmd)
	if err != nil {
		return err
	}
	defer s.Close()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	server := api.NewServer(s.Client, s.logger)
	if err := server.Start(ctx); err != nil {
		return fmt.Errorf("serve: %w", err)
	}
	return nil
}
