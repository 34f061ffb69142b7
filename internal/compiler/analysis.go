package compiler

import (
	"slices"

	"github.com/KromDaniel/regdfa/internal/parser"
)

// AnalysisResult contains the results of pattern analysis without code generation.
type AnalysisResult struct {
	// FeatureLabels are derived from pattern structure (sorted alphabetically)
	FeatureLabels []string `json:"feature_labels"`

	Tree           string `json:"tree"`
	TreeNodes      int    `json:"tree_nodes"`
	Alphabet       string `json:"alphabet"`
	NFAStates      int    `json:"nfa_states"`
	NFATransitions int    `json:"nfa_transitions"`
	DFAStates      int    `json:"dfa_states"`
	DFATransitions int    `json:"dfa_transitions"`
	AcceptStates   int    `json:"accept_states"`
	AcceptsEmpty   bool   `json:"accepts_empty"`
}

// AnalyzePattern runs the pipeline up to the DFA and reports its shape.
// It returns an error if the pattern is malformed or determinization
// exceeds its limits.
func AnalyzePattern(config Config) (*AnalysisResult, error) {
	res, err := New(config).Build()
	if err != nil {
		return nil, err
	}

	return &AnalysisResult{
		FeatureLabels:  deriveFeatureLabels(res.Tree),
		Tree:           res.Tree.String(),
		TreeNodes:      res.Tree.Size(),
		Alphabet:       alphabet(res.Tree),
		NFAStates:      len(res.NFA.States()),
		NFATransitions: res.NFA.NumTransitions(),
		DFAStates:      len(res.DFA.States()),
		DFATransitions: res.DFA.NumTransitions(),
		AcceptStates:   len(res.DFA.AcceptStates()),
		AcceptsEmpty:   res.DFA.IsAccepting(res.DFA.Start()),
	}, nil
}

// deriveFeatureLabels extracts feature labels from the pattern structure.
// Labels are sorted alphabetically.
func deriveFeatureLabels(root *parser.Node) []string {
	seen := make(map[string]bool)
	if root.IsLeaf() {
		seen["Literal"] = true
	}
	collectFeatures(root, false, seen)

	labels := make([]string, 0, len(seen))
	for label := range seen {
		labels = append(labels, label)
	}
	slices.Sort(labels)
	return labels
}

func collectFeatures(node *parser.Node, underStar bool, seen map[string]bool) {
	tok := node.Token()
	if tok.IsOperator() {
		switch tok.Op {
		case parser.Alter:
			seen["Alternation"] = true
		case parser.Concat:
			seen["Concatenation"] = true
		case parser.Star:
			seen["KleeneStar"] = true
			if underStar {
				seen["NestedStar"] = true
			}
			underStar = true
		}
	}
	for _, child := range node.Children() {
		collectFeatures(child, underStar, seen)
	}
}

// alphabet returns the distinct symbols of the pattern in sorted order.
func alphabet(root *parser.Node) string {
	var symbols []rune
	root.Walk(func(node *parser.Node, _ int) bool {
		if tok := node.Token(); tok.IsSymbol() {
			symbols = append(symbols, tok.Symbol)
		}
		return true
	})
	slices.Sort(symbols)
	return string(slices.Compact(symbols))
}
