package main

import (
	"bufio"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/KromDaniel/regdfa/pkg/regdfa"
)

func newMatchCmd() *cobra.Command {
	var (
		pattern string
		trace   bool
	)

	cmd := &cobra.Command{
		Use:   "match -p PATTERN [INPUT...]",
		Short: "Match inputs in process and print accept or reject for each",
		Long: `Match compiles the pattern and runs the dense recognizer over every
INPUT. Without arguments, whitespace-delimited tokens are read from stdin.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			re, err := regdfa.New(pattern)
			if err != nil {
				return err
			}

			inputs := args
			if len(inputs) == 0 {
				if inputs, err = readTokens(cmd.InOrStdin()); err != nil {
					return err
				}
			}

			out := cmd.OutOrStdout()
			for _, in := range inputs {
				fmt.Fprintln(out, verdict(re.MatchString(in)))
				if trace {
					printTrace(out, "nfa", re.TraceNFA(in))
					printTrace(out, "dfa", re.TraceDFA(in))
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&pattern, "pattern", "p", "", "regular expression to compile")
	cmd.Flags().BoolVarP(&trace, "trace", "t", false, "print the NFA and DFA traces")
	_ = cmd.MarkFlagRequired("pattern")
	return cmd
}

func verdict(accepted bool) string {
	if accepted {
		return "accept"
	}
	return "reject"
}

func printTrace(w io.Writer, kind string, tr regdfa.Trace) {
	suffix := ""
	if tr.Halted {
		suffix = " (halted)"
	}
	fmt.Fprintf(w, "  %s: %v%s\n", kind, tr.Steps, suffix)
}

func readTokens(r io.Reader) ([]string, error) {
	scanner := bufio.NewScanner(r)
	scanner.Split(bufio.ScanWords)
	var tokens []string
	for scanner.Scan() {
		tokens = append(tokens, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read input: %w", err)
	}
	return tokens, nil
}
