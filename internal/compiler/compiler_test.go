package compiler

import (
	"bytes"
	"errors"
	"go/parser"
	"go/token"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KromDaniel/regdfa/internal/codegen"
	"github.com/KromDaniel/regdfa/internal/nfa"
	regparser "github.com/KromDaniel/regdfa/internal/parser"
)

func TestCompilerGenerate(t *testing.T) {
	tests := []struct {
		name    string
		pattern string
		backend string
	}{
		{"simple", "ab", "go"},
		{"alternation", "a|b", "go"},
		{"star", "(a|b)*c", "go"},
		{"simple c", "ab", "c"},
		{"star c", "(a|b)*c", "c"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			outputFile := filepath.Join(t.TempDir(), "main."+tt.backend)

			c := New(Config{
				Pattern:    tt.pattern,
				OutputFile: outputFile,
				Backend:    tt.backend,
			})
			require.NoError(t, c.Generate())

			src, err := os.ReadFile(outputFile)
			require.NoError(t, err)
			assert.NotEmpty(t, src)

			if tt.backend == "go" {
				_, err := parser.ParseFile(token.NewFileSet(), outputFile, src, 0)
				assert.NoError(t, err)
			}
		})
	}
}

func TestBuildArtifacts(t *testing.T) {
	res, err := New(Config{Pattern: "ab"}).Build()
	require.NoError(t, err)

	assert.Equal(t, "(concat a b)", res.Tree.String())
	assert.Len(t, res.NFA.States(), 4)
	assert.Len(t, res.DFA.States(), 3)
	assert.Equal(t, 3, res.Table.NumStates())
	assert.True(t, res.Table.Match([]rune("ab")))
	assert.False(t, res.Table.Match([]rune("ba")))
}

func TestBuildPowerSetPrunesTable(t *testing.T) {
	reachable, err := New(Config{Pattern: "ab"}).Build()
	require.NoError(t, err)
	powerset, err := New(Config{Pattern: "ab", Strategy: nfa.StrategyPowerSet}).Build()
	require.NoError(t, err)

	assert.Greater(t, len(powerset.DFA.States()), len(reachable.DFA.States()))
	assert.Equal(t, reachable.Table.NumStates(), powerset.Table.NumStates())
	for _, in := range []string{"", "a", "ab", "ba", "abb"} {
		assert.Equal(t, reachable.Table.Match([]rune(in)), powerset.Table.Match([]rune(in)), in)
	}
}

func TestBuildErrors(t *testing.T) {
	tests := []struct {
		name   string
		config Config
		target error
	}{
		{"malformed", Config{Pattern: "(a"}, regparser.ErrMalformedPattern},
		{"empty", Config{Pattern: ""}, regparser.ErrMalformedPattern},
		{"reachable cap", Config{Pattern: "abc", MaxStates: 2}, nfa.ErrStateSpaceExplosion},
		{"universe cap", Config{Pattern: "ab", Strategy: nfa.StrategyPowerSet, MaxUniverse: 2}, nfa.ErrStateSpaceExplosion},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.config).Build()
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.target), "got %v", err)
		})
	}
}

func TestRenderUnknownBackend(t *testing.T) {
	c := New(Config{Pattern: "a", Backend: "cobol"})
	res, err := c.Build()
	require.NoError(t, err)

	_, err = c.Render(res)
	assert.True(t, errors.Is(err, codegen.ErrUnknownBackend))
}

func TestGenerateRequiresOutputFile(t *testing.T) {
	assert.Error(t, New(Config{Pattern: "a"}).Generate())
}

func TestWriteTo(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, New(Config{Pattern: "a*", Name: "stars"}).WriteTo(&buf))
	assert.Contains(t, buf.String(), "func matchStars(input string) bool")
}

func TestVerboseLogging(t *testing.T) {
	var logs bytes.Buffer
	c := New(Config{Pattern: "ab", Verbose: true})
	c.SetLogOutput(&logs)

	require.NoError(t, c.WriteTo(&bytes.Buffer{}))

	out := logs.String()
	for _, want := range []string{
		"[regdfa] === Pattern Analysis ===\n",
		`[regdfa] Pattern: "ab"`,
		"[regdfa] Tree: (concat a b)",
		"[regdfa] === Thompson Construction ===",
		"[regdfa] NFA states: 4",
		"[regdfa] Strategy: reachable",
		"[regdfa] DFA states: 3",
		"[regdfa] === Code Generation ===",
		"[regdfa] Backend: go",
	} {
		assert.Contains(t, out, want)
	}
}
