package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/warp/roster-engine/api"
	"github.com/warp/roster-engine/internal/config"
	"github.com/warp/roster-engine/store/sqlite"
)

// serveCmd runs the read-only reporting API from the configured data
// directory. Same flow as cmd/server, driven by roster.yaml.
func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the read-only reporting API",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}

			dataset, batch, err := loadDataset(cfg)
			if err != nil {
				return err
			}

			if cfg.Data.DatabasePath != "" {
				store, err := sqlite.New(cfg.Data.DatabasePath)
				if err != nil {
					return fmt.Errorf("failed to open database: %w", err)
				}
				defer store.Close()

				ctx := context.Background()
				if err := store.SaveRecords(ctx, batch.Records); err != nil {
					return fmt.Errorf("failed to persist records: %w", err)
				}
				if err := store.RecordImport(ctx, sqlite.ImportBatch{
					ID:             batch.ID,
					SourceDir:      batch.SourceDir,
					FilesProcessed: batch.FilesProcessed,
					Stats:          batch.Stats,
					CreatedAt:      batch.CreatedAt,
				}); err != nil {
					return fmt.Errorf("failed to record import batch: %w", err)
				}
			}

			handler := api.NewHandler(dataset, logger)
			router := api.NewRouter(handler)

			server := &http.Server{
				Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
				Handler:      router,
				ReadTimeout:  15 * time.Second,
				WriteTimeout: 15 * time.Second,
				IdleTimeout:  60 * time.Second,
			}

			go func() {
				logger.Info().
					Int("port", cfg.Server.Port).
					Int("employees", len(dataset.Summaries)).
					Msg("server starting")
				if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					logger.Fatal().Err(err).Msg("server failed")
				}
			}()

			quit := make(chan os.Signal, 1)
			signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
			<-quit

			logger.Info().Msg("shutting down server")

			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()
			return server.Shutdown(ctx)
		},
	}
}
