package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"panmixia/internal/storage"
	"panmixia/pkg/panmixia"
)

var (
	flagStore   string
	flagDBPath  string
	flagVerbose bool
)

var rootCmd = &cobra.Command{
	Use:           "panmixiactl",
	Short:         "Run and inspect evolutionary optimization runs",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagStore, "store", storage.DefaultStoreKind(), "store backend: memory|sqlite")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db-path", "panmixia.db", "sqlite database path")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "enable debug logging")
}

func newClient(ctx context.Context) (*panmixia.Client, error) {
	level := slog.LevelInfo
	if flagVerbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	client, err := panmixia.New(panmixia.Options{
		StoreKind: flagStore,
		DBPath:    flagDBPath,
		Logger:    logger,
	})
	if err != nil {
		return nil, err
	}
	if err := client.Init(ctx); err != nil {
		_ = client.Close()
		return nil, err
	}
	return client, nil
}
