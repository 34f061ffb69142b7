package regdfa

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"testing"

	"github.com/hashicorp/go-multierror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KromDaniel/regdfa/internal/nfa"
	"github.com/KromDaniel/regdfa/internal/parser"
)

func TestOptionsValidate(t *testing.T) {
	tests := []struct {
		name       string
		opts       Options
		wantErrors int
	}{
		{"valid", Options{Pattern: "ab", OutputFile: "out.go"}, 0},
		{"valid with everything", Options{Pattern: "ab", Name: "Email", OutputFile: "out.c", Backend: "c", Strategy: "powerset", MaxStates: 10}, 0},
		{"empty pattern", Options{OutputFile: "out.go"}, 1},
		{"bad name", Options{Pattern: "a", Name: "not an ident", OutputFile: "out.go"}, 1},
		{"everything wrong", Options{Name: "1x", Backend: "cobol", Strategy: "sideways", MaxStates: -1, MaxUniverse: -1}, 7},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.opts.Validate()
			if tt.wantErrors == 0 {
				assert.NoError(t, err)
				return
			}
			var merr *multierror.Error
			require.True(t, errors.As(err, &merr), "got %v", err)
			assert.Len(t, merr.Errors, tt.wantErrors)
		})
	}
}

func TestCompile(t *testing.T) {
	for _, backend := range []string{"go", "c"} {
		t.Run(backend, func(t *testing.T) {
			out := filepath.Join(t.TempDir(), "match."+backend)
			require.NoError(t, Compile(Options{Pattern: "ab", Name: "AB", OutputFile: out, Backend: backend}))

			src, err := os.ReadFile(out)
			require.NoError(t, err)
			assert.Contains(t, string(src), "Code generated by regdfa. DO NOT EDIT.")
		})
	}
}

func TestCompileErrors(t *testing.T) {
	err := Compile(Options{})
	assert.ErrorContains(t, err, "invalid options")

	err = Compile(Options{Pattern: "a||b", OutputFile: filepath.Join(t.TempDir(), "x.go")})
	require.Error(t, err)
	assert.True(t, errors.Is(err, parser.ErrMalformedPattern))
}

func TestCompilePowerSetUniverse(t *testing.T) {
	dir := t.TempDir()
	opts := Options{Pattern: "ab", Strategy: "powerset", OutputFile: filepath.Join(dir, "tight.go"), MaxUniverse: 2}
	err := Compile(opts)
	require.Error(t, err)
	assert.True(t, errors.Is(err, nfa.ErrStateSpaceExplosion))
	assert.NoFileExists(t, opts.OutputFile)

	opts.OutputFile = filepath.Join(dir, "fits.go")
	opts.MaxUniverse = 4
	require.NoError(t, Compile(opts))
	assert.FileExists(t, opts.OutputFile)
}

func TestMatchStringScenarios(t *testing.T) {
	tests := []struct {
		pattern string
		accept  []string
		reject  []string
	}{
		{"a", []string{"a"}, []string{"", "aa"}},
		{"a|b", []string{"a", "b"}, []string{"ab", ""}},
		{"a*", []string{"", "a", "aaaa"}, []string{"b"}},
		{"(a|b)*c", []string{"c", "ac", "bbbbc"}, []string{"ab", ""}},
		{"ab", []string{"ab"}, []string{"ba"}},
	}

	for _, tt := range tests {
		t.Run(tt.pattern, func(t *testing.T) {
			re := MustCompile(tt.pattern)
			for _, in := range tt.accept {
				assert.True(t, re.MatchString(in), "%q should accept %q", tt.pattern, in)
			}
			for _, in := range tt.reject {
				assert.False(t, re.MatchString(in), "%q should reject %q", tt.pattern, in)
			}
		})
	}
}

// TestMatchStringAgainstRegexp compares full-string matches with the
// standard library for every input over the pattern alphabet.
func TestMatchStringAgainstRegexp(t *testing.T) {
	patterns := []string{"ab", "a|b", "a*", "(a|b)*c", "a(b|c)*a", "(ab)*|c", "((a|b)(a|b))*", "(a*)*", "(a*b*)*c"}
	inputs := allStrings("abc", 4)

	for _, pattern := range patterns {
		t.Run(pattern, func(t *testing.T) {
			re := MustCompile(pattern)
			oracle := regexp.MustCompile("^(?:" + pattern + ")$")
			for _, in := range inputs {
				if got, want := re.MatchString(in), oracle.MatchString(in); got != want {
					t.Errorf("MatchString(%q) = %v, want %v", in, got, want)
				}
			}
		})
	}
}

func TestTraces(t *testing.T) {
	re := MustCompile("ab")

	nfaTrace := re.TraceNFA("ab")
	assert.True(t, nfaTrace.Accepted)
	assert.False(t, nfaTrace.Halted)
	assert.Equal(t, [][]int{{0}, {1, 2}, {3}}, nfaTrace.Steps)

	dfaTrace := re.TraceDFA("ab")
	assert.True(t, dfaTrace.Accepted)
	assert.Equal(t, [][]int{{0}, {1, 2}, {3}}, dfaTrace.Steps)

	nfaTrace = re.TraceNFA("ba")
	assert.False(t, nfaTrace.Accepted)
	assert.False(t, nfaTrace.Halted)
	require.Len(t, nfaTrace.Steps, 3)
	assert.Empty(t, nfaTrace.Steps[1])
	assert.Empty(t, nfaTrace.Steps[2])

	dfaTrace = re.TraceDFA("ba")
	assert.False(t, dfaTrace.Accepted)
	assert.True(t, dfaTrace.Halted)
	assert.Equal(t, [][]int{{0}}, dfaTrace.Steps)
}

func TestNewMalformed(t *testing.T) {
	for _, pattern := range []string{"", "(", "a)", "|", "*a"} {
		t.Run(fmt.Sprintf("%q", pattern), func(t *testing.T) {
			_, err := New(pattern)
			assert.True(t, errors.Is(err, parser.ErrMalformedPattern), "got %v", err)
		})
	}
	assert.Panics(t, func() { MustCompile("(") })
}

func TestRegexpAccessors(t *testing.T) {
	re := MustCompile("a|b")
	assert.Equal(t, "a|b", re.String())
	assert.Equal(t, 3, re.NumStates())
}

func TestAnalyze(t *testing.T) {
	result, err := Analyze("(a|b)*c")
	require.NoError(t, err)
	assert.Equal(t, []string{"Alternation", "Concatenation", "KleeneStar"}, result.FeatureLabels)
	assert.Equal(t, 4, result.DFAStates)
	assert.Equal(t, "abc", result.Alphabet)
	assert.False(t, result.AcceptsEmpty)

	_, err = AnalyzeWithStrategy("a", "sideways")
	assert.Error(t, err)

	powerset, err := AnalyzeWithStrategy("(a|b)*c", "powerset")
	require.NoError(t, err)
	assert.Greater(t, powerset.DFAStates, result.DFAStates)
}

func allStrings(alphabet string, maxLen int) []string {
	out := []string{""}
	frontier := []string{""}
	for n := 0; n < maxLen; n++ {
		var next []string
		for _, prefix := range frontier {
			for _, c := range alphabet {
				next = append(next, prefix+string(c))
			}
		}
		out = append(out, next...)
		frontier = next
	}
	return out
}
