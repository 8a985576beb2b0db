package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/spiffcs/ghdash/config"
	"github.com/spiffcs/ghdash/internal/activity"
	"github.com/spiffcs/ghdash/internal/api"
	"github.com/spiffcs/ghdash/internal/engagement"
	"github.com/spiffcs/ghdash/internal/gh"
	"github.com/spiffcs/ghdash/internal/log"
)

const shutdownGrace = 10 * time.Second

// NewCmdServe creates the serve command.
func NewCmdServe(opts *Options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the dashboard HTTP API",
		Long: `Starts the JSON HTTP API the dashboard frontend talks to. Endpoints:
/api/health, /api/metrics and /api/team-engagement.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(opts)
		},
	}
	cmd.Flags().StringVar(&opts.Addr, "addr", "", "Listen address (default from config)")
	return cmd
}

func runServe(opts *Options) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	if opts.Addr != "" {
		cfg.ListenAddr = opts.Addr
	}

	client, err := gh.NewClient(cfg.GetGitHubToken())
	if err != nil {
		return err
	}

	server := api.NewServer(cfg, activity.NewService(client), engagement.NewService(client))
	httpServer := server.HTTPServer()

	errCh := make(chan error, 1)
	go func() {
		log.Info("dashboard API listening", "addr", cfg.ListenAddr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return fmt.Errorf("server error: %w", err)
	case sig := <-stop:
		log.Info("shutting down", "signal", sig.String())
	}

	ctx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
	defer cancel()
	if err := httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("shutdown failed: %w", err)
	}
	return nil
}
