// Package regdfa compiles regular expressions into deterministic
// recognizers and generates standalone matcher programs from them.
//
// The pattern language is deliberately small: literal symbols, "|"
// alternation, "*" Kleene star, concatenation and parentheses. There is no
// escaping; every other character is a literal.
package regdfa

import (
	"fmt"
	"go/token"
	"slices"

	mapset "github.com/deckarep/golang-set/v2"
	"github.com/hashicorp/go-multierror"

	"github.com/KromDaniel/regdfa/internal/automaton"
	"github.com/KromDaniel/regdfa/internal/codegen"
	"github.com/KromDaniel/regdfa/internal/compiler"
	"github.com/KromDaniel/regdfa/internal/dfa"
	"github.com/KromDaniel/regdfa/internal/nfa"
	"github.com/KromDaniel/regdfa/internal/recognizer"
)

// Options configures the regex compilation process.
type Options struct {
	// Pattern is the regular expression to compile
	Pattern string

	// Name is appended to the generated match function (e.g., "Email" generates "matchEmail")
	Name string

	// OutputFile is the path where the generated program will be written
	OutputFile string

	// Backend selects the program language: "go" (default) or "c"
	Backend string

	// Strategy selects subset construction: "reachable" (default) or "powerset"
	Strategy string

	// MaxStates caps the DFA size for the reachable strategy (0 = default)
	MaxStates int

	// MaxUniverse caps the NFA size for the powerset strategy (0 = default,
	// values above nfa.MaxUniverse are clamped)
	MaxUniverse int

	// Verbose logs every pipeline stage to stderr
	Verbose bool
}

// Validate checks if the options are valid. All problems are reported
// together.
func (o Options) Validate() error {
	var result *multierror.Error
	if o.Pattern == "" {
		result = multierror.Append(result, fmt.Errorf("pattern cannot be empty"))
	}
	if o.Name != "" && !token.IsIdentifier(o.Name) {
		result = multierror.Append(result, fmt.Errorf("name %q is not a valid identifier", o.Name))
	}
	if o.OutputFile == "" {
		result = multierror.Append(result, fmt.Errorf("output file cannot be empty"))
	}
	if _, err := codegen.Lookup(o.Backend); err != nil {
		result = multierror.Append(result, err)
	}
	if _, err := nfa.ParseStrategy(o.Strategy); err != nil {
		result = multierror.Append(result, err)
	}
	if o.MaxStates < 0 {
		result = multierror.Append(result, fmt.Errorf("max states cannot be negative"))
	}
	if o.MaxUniverse < 0 {
		result = multierror.Append(result, fmt.Errorf("max universe cannot be negative"))
	}
	return result.ErrorOrNil()
}

func (o Options) config() compiler.Config {
	strategy, _ := nfa.ParseStrategy(o.Strategy)
	return compiler.Config{
		Pattern:     o.Pattern,
		Name:        o.Name,
		OutputFile:  o.OutputFile,
		Backend:     o.Backend,
		Strategy:    strategy,
		MaxStates:   o.MaxStates,
		MaxUniverse: o.MaxUniverse,
		Verbose:     o.Verbose,
	}
}

// Compile generates a matcher program for the given pattern.
// It returns an error if the pattern is malformed or code generation fails.
func Compile(opts Options) error {
	if err := opts.Validate(); err != nil {
		return fmt.Errorf("invalid options: %w", err)
	}

	if err := compiler.New(opts.config()).Generate(); err != nil {
		return fmt.Errorf("failed to generate code: %w", err)
	}
	return nil
}

// Regexp is a compiled pattern that can be matched in process.
type Regexp struct {
	pattern string
	nfa     *nfa.NFA[int, rune]
	dfa     *dfa.DFA[dfa.SetState[int], rune]
	table   *recognizer.Table[rune]
}

// New compiles pattern with the default reachable strategy.
func New(pattern string) (*Regexp, error) {
	res, err := compiler.New(compiler.Config{Pattern: pattern}).Build()
	if err != nil {
		return nil, err
	}
	return &Regexp{pattern: pattern, nfa: res.NFA, dfa: res.DFA, table: res.Table}, nil
}

// MustCompile is like New but panics if the pattern cannot be compiled.
func MustCompile(pattern string) *Regexp {
	re, err := New(pattern)
	if err != nil {
		panic(fmt.Sprintf("regdfa: New(%q): %v", pattern, err))
	}
	return re
}

// String returns the source pattern.
func (re *Regexp) String() string {
	return re.pattern
}

// NumStates returns the number of dense recognizer states.
func (re *Regexp) NumStates() int {
	return re.table.NumStates()
}

// MatchString reports whether s, as a whole, is in the pattern's language.
func (re *Regexp) MatchString(s string) bool {
	return re.table.Match(automaton.Symbols(s))
}

// Trace is the outcome of simulating an automaton over an input. Steps
// holds one state set per position: before each symbol, then after the
// last one. A halted trace stopped early on a symbol with no transition.
type Trace struct {
	Accepted bool
	Halted   bool
	Steps    [][]int
}

// TraceNFA simulates the Thompson NFA. Each step is the sorted set of
// active NFA states.
func (re *Regexp) TraceNFA(s string) Trace {
	return runTrace(re.nfa, s, func(set mapset.Set[int]) []int {
		members := set.ToSlice()
		slices.Sort(members)
		return members
	})
}

// TraceDFA simulates the subset-construction DFA. Each step lists the NFA
// states making up the current DFA state.
func (re *Regexp) TraceDFA(s string) Trace {
	return runTrace(re.dfa, s, dfa.SetState[int].Members)
}

func runTrace[S any](r automaton.Runner[rune, S], s string, members func(S) []int) Trace {
	tr := r.Run(automaton.Symbols(s))
	steps := make([][]int, 0, tr.Len())
	for _, st := range tr.States() {
		steps = append(steps, members(st))
	}
	return Trace{Accepted: tr.Accept(), Halted: tr.Halted(), Steps: steps}
}
