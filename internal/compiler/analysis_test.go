package compiler

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnalyzePattern(t *testing.T) {
	tests := []struct {
		pattern string
		want    AnalysisResult
	}{
		{
			pattern: "a",
			want: AnalysisResult{
				FeatureLabels:  []string{"Literal"},
				Tree:           "a",
				TreeNodes:      1,
				Alphabet:       "a",
				NFAStates:      2,
				NFATransitions: 1,
				DFAStates:      2,
				DFATransitions: 1,
				AcceptStates:   1,
			},
		},
		{
			pattern: "ab",
			want: AnalysisResult{
				FeatureLabels:  []string{"Concatenation"},
				Tree:           "(concat a b)",
				TreeNodes:      3,
				Alphabet:       "ab",
				NFAStates:      4,
				NFATransitions: 3,
				DFAStates:      3,
				DFATransitions: 2,
				AcceptStates:   1,
			},
		},
		{
			pattern: "a*",
			want: AnalysisResult{
				FeatureLabels:  []string{"KleeneStar"},
				Tree:           "(star a)",
				TreeNodes:      2,
				Alphabet:       "a",
				NFAStates:      4,
				NFATransitions: 4,
				DFAStates:      2,
				DFATransitions: 2,
				AcceptStates:   2,
				AcceptsEmpty:   true,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.pattern, func(t *testing.T) {
			got, err := AnalyzePattern(Config{Pattern: tt.pattern})
			require.NoError(t, err)
			if diff := cmp.Diff(&tt.want, got); diff != "" {
				t.Errorf("AnalyzePattern(%q) mismatch (-want +got):\n%s", tt.pattern, diff)
			}
		})
	}
}

func TestFeatureLabels(t *testing.T) {
	tests := []struct {
		pattern string
		want    []string
	}{
		{"(a|b)*c", []string{"Alternation", "Concatenation", "KleeneStar"}},
		{"(a*)*", []string{"KleeneStar", "NestedStar"}},
		{"a|b", []string{"Alternation"}},
	}

	for _, tt := range tests {
		t.Run(tt.pattern, func(t *testing.T) {
			got, err := AnalyzePattern(Config{Pattern: tt.pattern})
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.FeatureLabels)
		})
	}
}

func TestAnalyzePatternMalformed(t *testing.T) {
	_, err := AnalyzePattern(Config{Pattern: "a|"})
	assert.Error(t, err)
}
