package main

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/cppbonsai/cppbonsai/internal/config"
	"github.com/cppbonsai/cppbonsai/internal/pipeline"
	"github.com/cppbonsai/cppbonsai/internal/watcher"
)

func newWatchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "watch [dir]",
		Short: "Parse a workspace and reparse whenever sources change",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			target := "."
			if len(args) == 1 {
				target = args[0]
			}
			abs, err := filepath.Abs(target)
			if err != nil {
				return err
			}

			cfg := config.Load(abs)
			s, err := openStore(abs, cfg)
			if err != nil {
				return err
			}
			defer s.Close()

			p := pipeline.New(s, cfg, abs)
			summary, err := p.Run(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "parsed %d, skipped %d, failed %d (%d nodes); watching %s\n",
				summary.Parsed, summary.Skipped, summary.Failed, summary.Nodes, p.Workspace)

			w := watcher.New(p.Workspace, cfg.EffectiveExtensions(), func(ctx context.Context) error {
				_, runErr := p.Run(ctx)
				return runErr
			})
			err = w.Run(cmd.Context())
			if errors.Is(err, context.Canceled) {
				return nil
			}
			return err
		},
	}
}
