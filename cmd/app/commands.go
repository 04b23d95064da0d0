package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"eiborservice/internal/api"
	"eiborservice/internal/repository"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API, ingestion worker and daily scheduler",
	RunE: func(cmd *cobra.Command, args []string) error {
		logger.Infow("Starting EIBOR Rate Service", "port", cfg.Server.Port)

		app, err := NewApp(cfg, logger)
		if err != nil {
			return fmt.Errorf("initialize app: %w", err)
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		return app.Run(ctx)
	},
}

var errIngestFailed = errors.New("ingestion failed")

var ingestCmd = &cobra.Command{
	Use:   "ingest",
	Short: "Run one ingestion cycle and print the result as JSON",
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := NewIngestApp(cfg, logger)
		if err != nil {
			return fmt.Errorf("initialize app: %w", err)
		}
		defer func() {
			if err := app.close(); err != nil {
				logger.Warnw("Cleanup failed", "error", err)
			}
		}()

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")

		res, runErr := app.ingestService.Run(ctx)
		if runErr != nil {
			_ = enc.Encode(api.NewFailureResponse(runErr))
			return fmt.Errorf("%w: %w", errIngestFailed, runErr)
		}
		return enc.Encode(api.NewFetchResponse(res))
	},
}

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply pending database migrations and exit",
	RunE: func(cmd *cobra.Command, args []string) error {
		return repository.RunMigrations(cfg.Database.DSN, logger)
	},
}
