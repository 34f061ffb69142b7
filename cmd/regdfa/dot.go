package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/KromDaniel/regdfa/internal/compiler"
	"github.com/KromDaniel/regdfa/internal/dot"
	"github.com/KromDaniel/regdfa/internal/nfa"
)

func newDotCmd() *cobra.Command {
	var (
		pattern  string
		strategy string
		showNFA  bool
	)

	cmd := &cobra.Command{
		Use:     "dot",
		Short:   "Print the automaton in Graphviz DOT format",
		Example: `  regdfa dot -p '(a|b)*c' | dot -Tsvg > dfa.svg`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := nfa.ParseStrategy(strategy)
			if err != nil {
				return err
			}
			res, err := compiler.New(compiler.Config{Pattern: pattern, Strategy: s}).Build()
			if err != nil {
				return err
			}

			var graph string
			if showNFA {
				graph, err = dot.FromNFA(res.NFA)
			} else {
				graph, err = dot.FromDFA(res.DFA.Prune())
			}
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), graph)
			return nil
		},
	}

	cmd.Flags().StringVarP(&pattern, "pattern", "p", "", "regular expression to compile")
	cmd.Flags().StringVarP(&strategy, "strategy", "s", "reachable", "subset construction: reachable or powerset")
	cmd.Flags().BoolVar(&showNFA, "nfa", false, "print the Thompson NFA instead of the DFA")
	_ = cmd.MarkFlagRequired("pattern")
	return cmd
}
