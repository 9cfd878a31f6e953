package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/cwbudde/cuckoofit/internal/store"
	"github.com/spf13/cobra"
)

var (
	logLevel  string
	logger    *slog.Logger
	dataDir   string
	storeKind string
)

var rootCmd = &cobra.Command{
	Use:   "cuckoofit",
	Short: "Cuckoo Search optimization of bounded real-valued functions",
	Long: `cuckoofit maximizes a fitness function over a box in R^D with Cuckoo Search:
Lévy-flight candidates replace the worst nests and a fixed share of the
population is regenerated every generation.`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		var level slog.Level
		switch logLevel {
		case "debug":
			level = slog.LevelDebug
		case "warn":
			level = slog.LevelWarn
		case "error":
			level = slog.LevelError
		default:
			level = slog.LevelInfo
		}

		handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level})
		logger = slog.New(handler)
		slog.SetDefault(logger)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&dataDir, "data-dir", "./data", "Base directory for stored runs and traces")
	rootCmd.PersistentFlags().StringVar(&storeKind, "store", "fs", "Result store backend (fs, sqlite)")
}

// openStore opens the configured result store. Callers must close it with
// store.CloseIfSupported.
func openStore(ctx context.Context) (store.Store, error) {
	s, err := store.NewStore(ctx, storeKind, dataDir)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s store: %w", storeKind, err)
	}
	return s, nil
}
