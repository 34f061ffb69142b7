package codegen

import (
	"fmt"
	"io"

	"github.com/dave/jennifer/jen"

	"github.com/KromDaniel/regdfa/internal/recognizer"
)

// GoBackend emits a standalone "package main" Go program.
type GoBackend struct{}

// Name implements Backend.
func (GoBackend) Name() string { return "go" }

// FileExtension implements Backend.
func (GoBackend) FileExtension() string { return ".go" }

// Generate implements Backend.
func (GoBackend) Generate(w io.Writer, table *recognizer.Table[rune], meta Meta) error {
	f := jen.NewFile("main")
	f.HeaderComment("Code generated by regdfa. DO NOT EDIT.")
	f.HeaderComment(fmt.Sprintf("Pattern: %q", meta.Pattern))

	f.Const().Id(MaxTokenLenName).Op("=").Lit(MaxTokenLen)
	f.Line()

	matchName := goMatchName(meta.Name)
	f.Func().Id("main").Params().Block(generateMain(matchName)...)
	f.Line()

	f.Commentf("%s reports whether %s is in the language of the compiled DFA.", matchName, InputName)
	f.Func().Id(matchName).
		Params(jen.Id(InputName).String()).
		Params(jen.Bool()).
		Block(generateMatch(table)...)

	if err := f.Render(w); err != nil {
		return fmt.Errorf("failed to render Go program: %w", err)
	}
	return nil
}

func goMatchName(name string) string {
	if name == "" {
		return MatchFuncName
	}
	return MatchFuncName + UpperFirst(name)
}

func printVerdict(verdict string) *jen.Statement {
	return jen.Qual("fmt", "Println").Call(jen.Lit(verdict))
}

// generateMain reads one token and prints the verdict. A missing token is
// the empty input; an over-long one is rejected.
func generateMain(matchName string) []jen.Code {
	return []jen.Code{
		jen.Id(ScannerName).Op(":=").Qual("bufio", "NewScanner").Call(jen.Qual("os", "Stdin")),
		jen.Id(ScannerName).Dot("Buffer").Call(
			jen.Make(jen.Index().Byte(), jen.Lit(0), jen.Lit(64)),
			jen.Id(MaxTokenLenName).Op("+").Lit(1),
		),
		jen.Id(ScannerName).Dot("Split").Call(jen.Qual("bufio", "ScanWords")),
		jen.Line(),
		jen.Id(InputName).Op(":=").Lit(""),
		jen.If(jen.Id(ScannerName).Dot("Scan").Call()).Block(
			jen.Id(InputName).Op("=").Id(ScannerName).Dot("Text").Call(),
		).Else().If(jen.Id(ScannerName).Dot("Err").Call().Op("!=").Nil()).Block(
			printVerdict(RejectVerdict),
			jen.Return(),
		),
		jen.Line(),
		jen.If(jen.Id(matchName).Call(jen.Id(InputName))).Block(
			printVerdict(AcceptVerdict),
		).Else().Block(
			printVerdict(RejectVerdict),
		),
	}
}

// generateMatch emits the branch table: one case per state with outgoing
// transitions, one guarded branch per symbol, and a reject path for every
// unmatched (state, symbol) pair.
func generateMatch(table *recognizer.Table[rune]) []jen.Code {
	if table.NumTransitions() == 0 {
		if table.IsAccepting(table.Start()) {
			return []jen.Code{jen.Return(jen.Id(InputName).Op("==").Lit(""))}
		}
		return []jen.Code{jen.Return(jen.False())}
	}

	sources, groups := table.Branches()
	cases := make([]jen.Code, 0, len(sources))
	for _, src := range sources {
		var branches []jen.Code
		for _, b := range groups[src] {
			branches = append(branches,
				jen.If(jen.Id(SymbolName).Op("==").LitRune(b.Symbol)).Block(
					jen.Id(StateName).Op("=").Lit(b.Target),
					jen.Continue(),
				),
			)
		}
		cases = append(cases, jen.Case(jen.Lit(src)).Block(
			append([]jen.Code{jen.Comment(StateComment(src))}, branches...)...,
		))
	}

	return []jen.Code{
		jen.Id(StateName).Op(":=").Lit(table.Start()),
		jen.For(jen.List(jen.Id("_"), jen.Id(SymbolName)).Op(":=").Range().Id(InputName)).Block(
			jen.Switch(jen.Id(StateName)).Block(cases...),
			jen.Return(jen.False()),
		),
		jen.Return(acceptExpr(table.Accept())),
	}
}

// acceptExpr builds "state == a || state == b ...".
func acceptExpr(accept []int) *jen.Statement {
	if len(accept) == 0 {
		return jen.False()
	}
	expr := jen.Id(StateName).Op("==").Lit(accept[0])
	for _, id := range accept[1:] {
		expr = expr.Op("||").Id(StateName).Op("==").Lit(id)
	}
	return expr
}
