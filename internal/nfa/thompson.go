package nfa

import (
	"fmt"

	"github.com/KromDaniel/regdfa/internal/parser"
)

// IDs is the next unused state id. Every lowering step takes the allocator
// and returns the advanced one, so state numbering depends only on the
// shape of the tree.
type IDs int

// take reserves n consecutive ids and returns the first one.
func (ids IDs) take(n int) (first int, next IDs) {
	return int(ids), ids + IDs(n)
}

// FromTree lowers a parsed pattern with Thompson's construction. State ids
// start at 0. A symbol uses two fresh ids, concatenation none, alternation
// one (the new start) and star two (new start, new accept).
func FromTree(t *parser.Node) (*NFA[int, rune], error) {
	n, _, err := lower(t, 0)
	return n, err
}

// Compile parses pattern and lowers it.
func Compile(pattern string) (*NFA[int, rune], error) {
	t, err := parser.Parse(pattern)
	if err != nil {
		return nil, err
	}
	return FromTree(t)
}

func lower(t *parser.Node, ids IDs) (*NFA[int, rune], IDs, error) {
	tok := t.Token()
	if tok.IsSymbol() {
		first, next := ids.take(2)
		n := New[int, rune](first, first+1)
		n.AddTransition(first, Symbol(tok.Symbol), first+1)
		return n, next, nil
	}

	if t.Arity() != tok.Op.Arity() || tok.Op.Arity() == 0 {
		return nil, ids, fmt.Errorf("unexpected %s node with %d children", tok.Op, t.Arity())
	}

	switch tok.Op {
	case parser.Concat, parser.Alter:
		left, next, err := lower(t.Child(0), ids)
		if err != nil {
			return nil, next, err
		}
		right, next, err := lower(t.Child(1), next)
		if err != nil {
			return nil, next, err
		}
		if tok.Op == parser.Concat {
			return Concat(left, right), next, nil
		}
		start, next := next.take(1)
		return Union(left, right, start), next, nil

	case parser.Star:
		inner, next, err := lower(t.Child(0), ids)
		if err != nil {
			return nil, next, err
		}
		start, next := next.take(2)
		return Star(inner, start, start+1), next, nil
	}
	return nil, ids, fmt.Errorf("unexpected operator %s", tok.Op)
}
