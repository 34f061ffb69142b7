package regdfa

import (
	"github.com/KromDaniel/regdfa/internal/compiler"
	"github.com/KromDaniel/regdfa/internal/nfa"
)

// AnalysisResult contains the results of pattern analysis without code generation.
type AnalysisResult = compiler.AnalysisResult

// Analyze compiles the pattern up to its DFA and reports the size of every
// stage along with labels describing the pattern structure.
//
// Example:
//
//	result, err := regdfa.Analyze("(a|b)*c")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(result.FeatureLabels) // [Alternation Concatenation KleeneStar]
//	fmt.Println(result.DFAStates)     // 4
func Analyze(pattern string) (*AnalysisResult, error) {
	return AnalyzeWithStrategy(pattern, "")
}

// AnalyzeWithStrategy performs pattern analysis with the named subset
// construction strategy.
func AnalyzeWithStrategy(pattern, strategy string) (*AnalysisResult, error) {
	s, err := nfa.ParseStrategy(strategy)
	if err != nil {
		return nil, err
	}
	return compiler.AnalyzePattern(compiler.Config{Pattern: pattern, Strategy: s})
}
