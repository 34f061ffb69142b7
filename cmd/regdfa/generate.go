package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/KromDaniel/regdfa/internal/nfa"
	"github.com/KromDaniel/regdfa/pkg/regdfa"
)

func newGenerateCmd(global *globalOptions) *cobra.Command {
	var opts regdfa.Options

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a matcher program",
		Example: `  regdfa generate -p '(a|b)*c' -o match.go
  regdfa generate -p 'ab' -o match.c --backend c`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			opts.Verbose = global.verbose
			if err := regdfa.Compile(opts); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", opts.OutputFile)
			return nil
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&opts.Pattern, "pattern", "p", "", "regular expression to compile")
	flags.StringVarP(&opts.Name, "name", "n", "", "suffix for the generated match function")
	flags.StringVarP(&opts.OutputFile, "output", "o", "", "output file")
	flags.StringVarP(&opts.Backend, "backend", "b", "go", "program language")
	flags.StringVarP(&opts.Strategy, "strategy", "s", "reachable", "subset construction: reachable or powerset")
	flags.IntVar(&opts.MaxStates, "max-states", 0, "cap on DFA states for the reachable strategy (0 = default)")
	flags.IntVar(&opts.MaxUniverse, "max-universe", 0,
		fmt.Sprintf("cap on NFA states for the powerset strategy (0 = %d, at most %d)", nfa.DefaultMaxUniverse, nfa.MaxUniverse))
	_ = cmd.MarkFlagRequired("pattern")
	_ = cmd.MarkFlagRequired("output")
	return cmd
}
