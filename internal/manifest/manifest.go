// Package manifest loads batch generation manifests from YAML or TOML.
package manifest

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/hashicorp/go-multierror"
	"gopkg.in/yaml.v3"

	"github.com/KromDaniel/regdfa/internal/codegen"
	"github.com/KromDaniel/regdfa/internal/nfa"
	"github.com/KromDaniel/regdfa/internal/parser"
)

// Format is a manifest encoding.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
)

// FormatOf picks the encoding from the file extension.
func FormatOf(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".toml":
		return FormatTOML, nil
	default:
		return "", fmt.Errorf("unsupported manifest extension %q", filepath.Ext(path))
	}
}

// Job is one program to generate.
type Job struct {
	Name     string `yaml:"name" toml:"name"`
	Pattern  string `yaml:"pattern" toml:"pattern"`
	Output   string `yaml:"output" toml:"output"`
	Backend  string `yaml:"backend,omitempty" toml:"backend,omitempty"`
	Strategy string `yaml:"strategy,omitempty" toml:"strategy,omitempty"`
}

// Manifest lists jobs plus defaults applied to jobs that leave a field empty.
type Manifest struct {
	Backend  string `yaml:"backend,omitempty" toml:"backend,omitempty"`
	Strategy string `yaml:"strategy,omitempty" toml:"strategy,omitempty"`
	Jobs     []Job  `yaml:"jobs" toml:"jobs"`
}

// Load reads and validates the manifest at path. Relative job outputs are
// resolved against the manifest's directory.
func Load(path string) (*Manifest, error) {
	format, err := FormatOf(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest: %w", err)
	}

	m, err := Parse(data, format)
	if err != nil {
		return nil, err
	}

	dir := filepath.Dir(path)
	for i := range m.Jobs {
		if out := m.Jobs[i].Output; out != "" && !filepath.IsAbs(out) {
			m.Jobs[i].Output = filepath.Join(dir, out)
		}
	}
	return m, nil
}

// Parse decodes and validates a manifest, then fills job defaults.
func Parse(data []byte, format Format) (*Manifest, error) {
	var m Manifest
	switch format {
	case FormatYAML:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&m); err != nil {
			return nil, fmt.Errorf("failed to parse manifest: %w", err)
		}
	case FormatTOML:
		md, err := toml.Decode(string(data), &m)
		if err != nil {
			return nil, fmt.Errorf("failed to parse manifest: %w", err)
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			return nil, fmt.Errorf("failed to parse manifest: unknown field %q", undecoded[0].String())
		}
	default:
		return nil, fmt.Errorf("unsupported manifest format %q", format)
	}

	m.applyDefaults()
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return &m, nil
}

func (m *Manifest) applyDefaults() {
	for i := range m.Jobs {
		if m.Jobs[i].Backend == "" {
			m.Jobs[i].Backend = m.Backend
		}
		if m.Jobs[i].Strategy == "" {
			m.Jobs[i].Strategy = m.Strategy
		}
	}
}

// Validate reports every problem in the manifest at once.
func (m *Manifest) Validate() error {
	var result *multierror.Error

	if len(m.Jobs) == 0 {
		result = multierror.Append(result, fmt.Errorf("manifest has no jobs"))
	}
	if _, err := codegen.Lookup(m.Backend); err != nil {
		result = multierror.Append(result, err)
	}
	if _, err := nfa.ParseStrategy(m.Strategy); err != nil {
		result = multierror.Append(result, err)
	}

	outputs := make(map[string]int)
	for i, job := range m.Jobs {
		label := fmt.Sprintf("job %d", i)
		if job.Name != "" {
			label = fmt.Sprintf("job %d (%s)", i, job.Name)
		}

		if job.Pattern == "" {
			result = multierror.Append(result, fmt.Errorf("%s: pattern is required", label))
		} else if _, err := parser.Parse(job.Pattern); err != nil {
			result = multierror.Append(result, fmt.Errorf("%s: %w", label, err))
		}

		if job.Output == "" {
			result = multierror.Append(result, fmt.Errorf("%s: output is required", label))
		} else if prev, ok := outputs[job.Output]; ok {
			result = multierror.Append(result, fmt.Errorf("%s: output %s already written by job %d", label, job.Output, prev))
		} else {
			outputs[job.Output] = i
		}

		if _, err := codegen.Lookup(job.Backend); err != nil {
			result = multierror.Append(result, fmt.Errorf("%s: %w", label, err))
		}
		if _, err := nfa.ParseStrategy(job.Strategy); err != nil {
			result = multierror.Append(result, fmt.Errorf("%s: %w", label, err))
		}
	}

	return result.ErrorOrNil()
}
