package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/RadixSeven/MealPortionCalculator/internal/server"
)

func newServeCmd(a *app) *cobra.Command {
	var host string
	var port int

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the mixer as MCP tools over HTTP",
		Long: `Starts an HTTP endpoint accepting MCP tools/call payloads.

Tools:
  mix_portions      - same inputs as the command line, unset ones use config defaults
  list_ingredients  - per-portion profiles of Soylent and HLTH Code`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("host") {
				a.cfg.Server.Host = host
			}
			if cmd.Flags().Changed("port") {
				a.cfg.Server.Port = port
			}
			return a.runServe()
		},
	}

	cmd.Flags().StringVar(&host, "host", "0.0.0.0", "Host address")
	cmd.Flags().IntVar(&port, "port", 8011, "Port for HTTP transport")
	return cmd
}

func (a *app) runServe() error {
	srv, err := server.NewMixServer(a.cfg, a.logger)
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start(ctx)
	}()

	select {
	case <-sigCh:
		a.logger.Info("Received shutdown signal")
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	}

	a.logger.Info("Shutting down")
	cancel()
	if err := srv.Stop(); err != nil {
		a.logger.Error("Error during shutdown", zap.Error(err))
		return err
	}
	return nil
}
