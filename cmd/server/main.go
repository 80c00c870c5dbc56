/*
main.go - Reporting server entry point

PURPOSE:
  Loads a directory of monthly roster files, computes the aggregate
  views, and serves them over the read-only HTTP API. Handles
  configuration, dependency wiring, and graceful shutdown.

STARTUP SEQUENCE:
  1. Parse command-line flags
  2. Load and adjust the roster files
  3. Load the initial saved-rest-days offsets
  4. Build the dataset (monthly aggregates + cross-period summaries)
  5. Optionally persist the adjusted records to SQLite
  6. Start server with graceful shutdown

COMMAND-LINE FLAGS:
  -port     HTTP server port (default: 8080)
  -data     Directory of YYYY-MM.csv roster files (default: ./data)
  -offsets  Initial saved-rest-days JSON file (default: none)
  -db       SQLite path to persist records into; empty disables
  -legacy   Use the legacy nursing-shift work values

GRACEFUL SHUTDOWN:
  On SIGINT/SIGTERM:
  1. Stop accepting new connections
  2. Wait for active requests to complete (30s timeout)
  3. Exit

EXAMPLES:
  # Serve roster files from ./rosters
  ./server -data=./rosters -offsets=./initial_saved_rest_days.json

  # Also keep a queryable SQLite copy
  ./server -data=./rosters -db=./roster.db

SEE ALSO:
  - api/server.go: Router configuration
  - ingest/loader.go: Directory loading and adjustment
  - cmd/roster: The cobra CLI wrapping the same flow
*/
package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/warp/roster-engine/api"
	"github.com/warp/roster-engine/ingest"
	"github.com/warp/roster-engine/roster"
	"github.com/warp/roster-engine/store/sqlite"
)

func main() {
	port := flag.Int("port", 8080, "HTTP server port")
	dataDir := flag.String("data", "./data", "directory of YYYY-MM.csv roster files")
	offsetsPath := flag.String("offsets", "", "initial saved-rest-days JSON file")
	dbPath := flag.String("db", "", "SQLite path to persist records into (empty disables)")
	legacy := flag.Bool("legacy", false, "use legacy nursing-shift work values")
	flag.Parse()

	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

	version := roster.VersionCurrent
	if *legacy {
		version = roster.VersionLegacy
	}
	table := roster.NewTable(version)

	// Load and adjust the roster files
	loader := ingest.NewLoader(table, log)
	batch, err := loader.LoadDir(*dataDir)
	if err != nil {
		log.Fatal().Err(err).Str("dir", *dataDir).Msg("failed to load roster files")
	}

	// Initial offsets
	var offsets roster.OffsetTable
	if *offsetsPath != "" {
		offsets, err = ingest.LoadOffsets(*offsetsPath)
		if err != nil {
			log.Fatal().Err(err).Str("file", *offsetsPath).Msg("failed to load offsets")
		}
	}

	dataset, err := api.BuildDataset(batch.Records, offsets)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to build dataset")
	}

	// Optional persistence
	if *dbPath != "" {
		store, err := sqlite.New(*dbPath)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to open database")
		}
		defer store.Close()

		ctx := context.Background()
		if err := store.SaveRecords(ctx, batch.Records); err != nil {
			log.Fatal().Err(err).Msg("failed to persist records")
		}
		if err := store.RecordImport(ctx, sqlite.ImportBatch{
			ID:             batch.ID,
			SourceDir:      batch.SourceDir,
			FilesProcessed: batch.FilesProcessed,
			Stats:          batch.Stats,
			CreatedAt:      batch.CreatedAt,
		}); err != nil {
			log.Fatal().Err(err).Msg("failed to record import batch")
		}
		log.Info().Str("db", *dbPath).Int("records", len(batch.Records)).Msg("records persisted")
	}

	handler := api.NewHandler(dataset, log)
	router := api.NewRouter(handler)

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", *port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info().
			Int("port", *port).
			Int("employees", len(dataset.Summaries)).
			Int("records", len(dataset.Records)).
			Msg("server starting")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server stopped")
}
