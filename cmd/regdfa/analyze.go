package main

import (
	"fmt"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"github.com/KromDaniel/regdfa/pkg/regdfa"
)

func newAnalyzeCmd() *cobra.Command {
	var (
		pattern  string
		strategy string
	)

	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Print the size of every pipeline stage as JSON",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			result, err := regdfa.AnalyzeWithStrategy(pattern, strategy)
			if err != nil {
				return err
			}
			data, err := json.MarshalIndent(result, "", "  ")
			if err != nil {
				return fmt.Errorf("failed to encode analysis: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(data))
			return nil
		},
	}

	cmd.Flags().StringVarP(&pattern, "pattern", "p", "", "regular expression to analyze")
	cmd.Flags().StringVarP(&strategy, "strategy", "s", "reachable", "subset construction: reachable or powerset")
	_ = cmd.MarkFlagRequired("pattern")
	return cmd
}
