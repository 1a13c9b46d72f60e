package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func newDumpCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "dump <unit>",
		Short: "Render a stored unit's normalized tree",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openStore(".", nil)
			if err != nil {
				return err
			}
			defer s.Close()

			tree, err := s.LoadAST(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), tree.PrettyString())
			return nil
		},
	}
}

func newLsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "ls",
		Short: "List stored translation units",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openStore(".", nil)
			if err != nil {
				return err
			}
			defer s.Close()

			units, err := s.ListUnits()
			if err != nil {
				return err
			}
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "UNIT\tNODES\tPARSED AT")
			for _, u := range units {
				fmt.Fprintf(w, "%s\t%d\t%s\n", u.Name, u.NodeCount, u.ParsedAt)
			}
			return w.Flush()
		},
	}
}

func newStatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats <unit>",
		Short: "Show node statistics for a stored unit",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openStore(".", nil)
			if err != nil {
				return err
			}
			defer s.Close()

			stats, err := s.GetStats(args[0])
			if err != nil {
				return err
			}
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintf(w, "unit\t%s\n", stats.Unit)
			fmt.Fprintf(w, "nodes\t%d\n", stats.NodeCount)
			for _, kc := range stats.KindCounts {
				fmt.Fprintf(w, "%s\t%d\n", kc.Kind, kc.Count)
			}
			return w.Flush()
		},
	}
}

func newRmCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rm <unit>",
		Short: "Remove a stored translation unit",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openStore(".", nil)
			if err != nil {
				return err
			}
			defer s.Close()

			if _, err := s.GetUnit(args[0]); err != nil {
				return err
			}
			return s.DeleteUnit(args[0])
		},
	}
}
