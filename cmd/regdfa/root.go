package main

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/KromDaniel/regdfa/internal/codegen"
)

type globalOptions struct {
	verbose bool
}

func newRootCmd() *cobra.Command {
	var global globalOptions

	root := &cobra.Command{
		Use:   "regdfa",
		Short: "Compile regular expressions into DFA matcher programs",
		Long: `regdfa parses a pattern, builds a Thompson NFA, determinizes it by
subset construction and emits a standalone program that reads one token
from stdin and prints "accept" or "reject".

Pattern syntax: literal symbols, "|" alternation, "*" Kleene star,
concatenation and parentheses. There is no escaping.

Backends: ` + strings.Join(codegen.Names(), ", "),
		SilenceUsage: true,
	}
	root.PersistentFlags().BoolVarP(&global.verbose, "verbose", "v", false, "log every pipeline stage to stderr")

	root.AddCommand(
		newGenerateCmd(&global),
		newMatchCmd(),
		newDotCmd(),
		newAnalyzeCmd(),
		newBatchCmd(&global),
	)
	return root
}
