/*
main.go - roster CLI entry point

PURPOSE:
  Command-line frontend for the roster engine. Wraps the same load,
  adjust, and aggregate flow as cmd/server behind subcommands driven by
  a roster.yaml config file.

COMMANDS:
  convert   Normalize roster files and write records + aggregates
  report    Print per-employee banked-rest summaries to stdout
  serve     Serve the read-only reporting API

CONFIG (roster.yaml):
  data:
    dir: ./data                  # YYYY-MM.csv roster files
    offsets_file: ./offsets.json # initial saved-rest-days, optional
    database_path: ""            # SQLite persistence, empty disables
    table_version: current       # or legacy
    output_dir: ./out            # convert output
  server:
    port: 8080
  log:
    level: info

SEE ALSO:
  - internal/config/config.go: Config loading and validation
  - cmd/server/main.go: The flag-based server entry point
*/
package main

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/warp/roster-engine/api"
	"github.com/warp/roster-engine/ingest"
	"github.com/warp/roster-engine/internal/config"
	"github.com/warp/roster-engine/roster"
)

var (
	configPath string
	logger     zerolog.Logger
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "roster",
		Short: "Shift roster normalization and banked-rest reporting",
		Long:  "Normalizes monthly shift rosters, applies cross-day adjustment rules, and reports banked and owed rest days per employee",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			level, err := zerolog.ParseLevel(cfg.Log.Level)
			if err != nil {
				level = zerolog.InfoLevel
			}
			logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
				Level(level).With().Timestamp().Logger()
			return nil
		},
	}

	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "config file path (default roster.yaml)")

	rootCmd.AddCommand(convertCmd())
	rootCmd.AddCommand(reportCmd())
	rootCmd.AddCommand(serveCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// loadDataset runs the shared load path: roster files, offsets, dataset.
func loadDataset(cfg *config.Config) (*api.Dataset, ingest.Batch, error) {
	version := roster.VersionCurrent
	if cfg.Data.TableVersion == "legacy" {
		version = roster.VersionLegacy
	}
	table := roster.NewTable(version)

	loader := ingest.NewLoader(table, logger)
	batch, err := loader.LoadDir(cfg.Data.Dir)
	if err != nil {
		return nil, ingest.Batch{}, err
	}

	var offsets roster.OffsetTable
	if cfg.Data.OffsetsFile != "" {
		offsets, err = ingest.LoadOffsets(cfg.Data.OffsetsFile)
		if err != nil {
			return nil, ingest.Batch{}, err
		}
	}

	dataset, err := api.BuildDataset(batch.Records, offsets)
	if err != nil {
		return nil, ingest.Batch{}, err
	}
	return dataset, batch, nil
}
