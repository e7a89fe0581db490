// Package cli implements the cortex command line interface.
package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/agenthands/cortex/internal/config"
	"github.com/agenthands/cortex/internal/core"
)

var (
	configPath string
	spaces     []string
	verbose    bool
)

var rootCmd = &cobra.Command{
	Use:   "cortex",
	Short: "Knowledge graph analytics for document collections",
	Long: `Cortex analyzes linked document collections: it suggests missing
links, detects gaps between clusters, summarizes clusters, and answers
retrieval queries over the embedded corpus.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level := slog.LevelInfo
		if verbose {
			level = slog.LevelDebug
		}
		slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "config/config.toml", "path to config file")
	rootCmd.PersistentFlags().StringSliceVarP(&spaces, "space", "s", nil, "spaces to include (default: all configured)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		color.New(color.FgRed).Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// newEngine loads configuration and builds the shared engine.
func newEngine(ctx context.Context) (*core.Engine, error) {
	cfg, err := config.LoadOrDefault(configPath)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	return core.New(ctx, cfg)
}
