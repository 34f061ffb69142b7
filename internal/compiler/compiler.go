// Package compiler drives the pattern -> tree -> NFA -> DFA -> table ->
// program pipeline.
package compiler

import (
	"bytes"
	"fmt"
	"go/format"
	"io"
	"os"

	"github.com/KromDaniel/regdfa/internal/codegen"
	"github.com/KromDaniel/regdfa/internal/dfa"
	"github.com/KromDaniel/regdfa/internal/nfa"
	"github.com/KromDaniel/regdfa/internal/parser"
	"github.com/KromDaniel/regdfa/internal/recognizer"
)

// Config holds the configuration for compilation and code generation.
type Config struct {
	Pattern     string
	Name        string       // Suffix for the generated match function
	OutputFile  string       // Destination of Generate
	Backend     string       // Registered codegen backend, "go" when empty
	Strategy    nfa.Strategy // Subset construction strategy
	MaxStates   int          // Reachable strategy cap (0 = nfa.DefaultMaxStates)
	MaxUniverse int          // Power-set strategy cap (0 = nfa.DefaultMaxUniverse)
	Verbose     bool         // Enable verbose logging of pipeline decisions
}

// Result holds every intermediate artifact of one compilation.
type Result struct {
	Tree  *parser.Node
	NFA   *nfa.NFA[int, rune]
	DFA   *dfa.DFA[dfa.SetState[int], rune]
	Table *recognizer.Table[rune]
}

// Compiler compiles one pattern into a recognizer.
type Compiler struct {
	config Config
	logger *Logger
}

// New creates a new compiler instance.
func New(config Config) *Compiler {
	return &Compiler{
		config: config,
		logger: NewLogger(config.Verbose),
	}
}

// SetLogOutput redirects verbose output.
func (c *Compiler) SetLogOutput(w io.Writer) {
	c.logger.SetOutput(w)
}

// Build runs the pipeline up to the dense table.
func (c *Compiler) Build() (*Result, error) {
	c.logger.Section("Pattern Analysis")
	c.logger.Log("Pattern: %q", c.config.Pattern)

	tree, err := parser.Parse(c.config.Pattern)
	if err != nil {
		return nil, fmt.Errorf("failed to parse pattern: %w", err)
	}
	c.logger.Log("Tree: %s", tree)
	c.logger.Log("Tree nodes: %d", tree.Size())

	c.logger.Section("Thompson Construction")
	n, err := nfa.FromTree(tree)
	if err != nil {
		return nil, fmt.Errorf("failed to build NFA: %w", err)
	}
	c.logger.Log("NFA states: %d", len(n.States()))
	c.logger.Log("NFA transitions: %d", n.NumTransitions())

	c.logger.Section("Subset Construction")
	opts := nfa.Options{
		Strategy:    c.config.Strategy,
		MaxStates:   c.config.MaxStates,
		MaxUniverse: c.config.MaxUniverse,
	}
	c.logger.Log("Strategy: %s", opts.Strategy)
	d, err := nfa.Determinize(n, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to build DFA: %w", err)
	}
	c.logger.Log("DFA states: %d", len(d.States()))
	c.logger.Log("DFA transitions: %d", d.NumTransitions())
	c.logger.Log("DFA accept states: %d", len(d.AcceptStates()))

	lowered := d
	if opts.Strategy == nfa.StrategyPowerSet {
		lowered = d.Prune()
		c.logger.Log("Pruned to %d reachable states", len(lowered.States()))
	}

	table := recognizer.FromDFA(lowered)
	c.logger.Log("Table states: %d, accept ids: %v", table.NumStates(), table.Accept())

	return &Result{Tree: tree, NFA: n, DFA: d, Table: table}, nil
}

// Render serializes the table of res with the configured backend. Go
// output is gofmt'ed.
func (c *Compiler) Render(res *Result) ([]byte, error) {
	backend, err := codegen.Lookup(c.config.Backend)
	if err != nil {
		return nil, err
	}

	c.logger.Section("Code Generation")
	c.logger.Log("Backend: %s", backend.Name())

	var buf bytes.Buffer
	meta := codegen.Meta{Pattern: c.config.Pattern, Name: c.config.Name}
	if err := backend.Generate(&buf, res.Table, meta); err != nil {
		return nil, fmt.Errorf("failed to generate %s program: %w", backend.Name(), err)
	}

	src := buf.Bytes()
	if backend.Name() == "go" {
		if src, err = format.Source(src); err != nil {
			return nil, fmt.Errorf("failed to format file: %w", err)
		}
	}
	c.logger.Log("Generated %d bytes", len(src))
	return src, nil
}

// WriteTo builds and renders the program into w.
func (c *Compiler) WriteTo(w io.Writer) error {
	res, err := c.Build()
	if err != nil {
		return err
	}
	src, err := c.Render(res)
	if err != nil {
		return err
	}
	if _, err := w.Write(src); err != nil {
		return fmt.Errorf("failed to write program: %w", err)
	}
	return nil
}

// Generate builds and renders the program into the configured output file.
func (c *Compiler) Generate() error {
	if c.config.OutputFile == "" {
		return fmt.Errorf("output file is required")
	}

	res, err := c.Build()
	if err != nil {
		return err
	}
	src, err := c.Render(res)
	if err != nil {
		return err
	}

	if err := os.WriteFile(c.config.OutputFile, src, 0644); err != nil {
		return fmt.Errorf("failed to save file: %w", err)
	}
	c.logger.Log("Wrote %s", c.config.OutputFile)
	return nil
}
