// cppbonsai parses C++ sources into normalized syntax trees, stores them,
// and serves them over MCP.
package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/cppbonsai/cppbonsai/internal/config"
	"github.com/cppbonsai/cppbonsai/internal/pipeline"
	"github.com/cppbonsai/cppbonsai/internal/store"
)

var version = "dev"

var (
	dbPath  string
	verbose bool
)

// Execute is the entry point for the CLI.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// NewRootCmd wires the cobra tree.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "cppbonsai",
		Short:         "C++ source normalizer: parse trees into attributed syntax trees",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := slog.LevelInfo
			if verbose {
				level = slog.LevelDebug
			}
			slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
				Level: level,
			})))
		},
	}
	root.PersistentFlags().StringVar(&dbPath, "db", "", "SQLite database path (default: per-workspace cache)")
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")

	root.AddCommand(
		newParseCmd(),
		newDumpCmd(),
		newLsCmd(),
		newStatsCmd(),
		newRmCmd(),
		newWatchCmd(),
		newServeCmd(),
	)
	return root
}

// openStore resolves the database location: the --db flag wins, then the
// workspace config, then the default per-workspace cache path.
func openStore(dir string, cfg *config.Config) (*store.Store, error) {
	if dbPath != "" {
		return store.OpenPath(dbPath)
	}
	if cfg != nil && cfg.Store.Path != "" {
		path := cfg.Store.Path
		if !filepath.IsAbs(path) {
			path = filepath.Join(dir, path)
		}
		return store.OpenPath(path)
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, err
	}
	return store.Open(pipeline.WorkspaceName(abs))
}
