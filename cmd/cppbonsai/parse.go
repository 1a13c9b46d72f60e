package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/cppbonsai/cppbonsai/internal/config"
	"github.com/cppbonsai/cppbonsai/internal/cst/tsfront"
	"github.com/cppbonsai/cppbonsai/internal/extract"
	"github.com/cppbonsai/cppbonsai/internal/pipeline"
	"github.com/cppbonsai/cppbonsai/internal/store"
)

func newParseCmd() *cobra.Command {
	var print bool

	cmd := &cobra.Command{
		Use:   "parse [dir-or-file]",
		Short: "Parse C++ sources into normalized trees and store them",
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
			info, err := os.Stat(abs)
			if err != nil {
				return err
			}

			// Single-file mode prints the tree and skips the store.
			if !info.IsDir() {
				return parseSingle(cmd, abs)
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
			for _, w := range summary.Warnings {
				fmt.Fprintln(cmd.ErrOrStderr(), "warning:", w)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "parsed %d, skipped %d, failed %d (%d nodes)\n",
				summary.Parsed, summary.Skipped, summary.Failed, summary.Nodes)
			if print {
				return dumpWorkspace(cmd, s)
			}
			return nil
		},
	}
	cmd.Flags().BoolVarP(&print, "print", "p", false, "Print every stored tree after parsing")
	return cmd
}

func parseSingle(cmd *cobra.Command, path string) error {
	unit, err := tsfront.ParseFile(path)
	if err != nil {
		return err
	}
	for _, w := range unit.Warnings {
		fmt.Fprintln(cmd.ErrOrStderr(), "warning:", w)
	}
	tree, err := extract.Build(unit.Root, extract.Options{Name: filepath.Base(path)})
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), tree.PrettyString())
	return nil
}

func dumpWorkspace(cmd *cobra.Command, s *store.Store) error {
	units, err := s.ListUnits()
	if err != nil {
		return err
	}
	for _, u := range units {
		tree, err := s.LoadAST(u.Name)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), tree.PrettyString())
	}
	return nil
}
