package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/hashicorp/go-multierror"
	"github.com/spf13/cobra"

	"github.com/KromDaniel/regdfa/internal/manifest"
	"github.com/KromDaniel/regdfa/pkg/regdfa"
)

func newBatchCmd(global *globalOptions) *cobra.Command {
	var path string

	cmd := &cobra.Command{
		Use:   "batch",
		Short: "Generate every program listed in a YAML or TOML manifest",
		Example: `  regdfa batch -m regdfa.yaml

  # regdfa.yaml
  backend: go
  jobs:
    - name: Tail
      pattern: (a|b)*c
      output: gen/tail.go`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			m, err := manifest.Load(path)
			if err != nil {
				return err
			}

			var result *multierror.Error
			for _, job := range m.Jobs {
				if err := runJob(job, global.verbose); err != nil {
					result = multierror.Append(result, fmt.Errorf("%s: %w", job.Output, err))
					continue
				}
				fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", job.Output)
			}
			return result.ErrorOrNil()
		},
	}

	cmd.Flags().StringVarP(&path, "manifest", "m", "", "manifest file (.yaml, .yml or .toml)")
	_ = cmd.MarkFlagRequired("manifest")
	return cmd
}

func runJob(job manifest.Job, verbose bool) error {
	if err := os.MkdirAll(filepath.Dir(job.Output), 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	return regdfa.Compile(regdfa.Options{
		Pattern:    job.Pattern,
		Name:       job.Name,
		OutputFile: job.Output,
		Backend:    job.Backend,
		Strategy:   job.Strategy,
		Verbose:    verbose,
	})
}
