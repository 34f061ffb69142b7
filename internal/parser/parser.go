// Package parser turns a pattern string into a syntax tree.
//
// The grammar is deliberately small: literal characters, alternation "|",
// Kleene star "*", grouping "(" ")" and implicit concatenation. Parsing
// uses the two-stack operator-precedence (shunting-yard) algorithm.
package parser

import (
	"errors"
	"fmt"

	"github.com/KromDaniel/regdfa/internal/tree"
)

// ErrMalformedPattern is returned (wrapped in a *SyntaxError) when a pattern
// cannot be reduced to a single tree.
var ErrMalformedPattern = errors.New("malformed pattern")

// SyntaxError describes where and why a pattern is malformed.
type SyntaxError struct {
	Pattern string
	Offset  int // byte offset into Pattern
	Reason  string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("malformed pattern %q at offset %d: %s", e.Pattern, e.Offset, e.Reason)
}

func (e *SyntaxError) Unwrap() error {
	return ErrMalformedPattern
}

// Node is a parsed pattern node.
type Node = tree.Tree[Token]

type pending struct {
	op     Operator
	offset int
}

type parser struct {
	pattern  string
	operands []*Node
	ops      []pending
	// endsOperand is true when the previous token closed an operand
	// (a symbol, ")" or "*"). It is false at the start and after "(" or "|".
	endsOperand bool
}

// Parse parses pattern into a tree whose leaves are symbols and whose
// inner nodes are Concat, Alter and Star operators.
func Parse(pattern string) (*Node, error) {
	p := &parser{pattern: pattern}
	if pattern == "" {
		return nil, p.errorf(0, "empty pattern")
	}

	for offset, c := range pattern {
		if err := p.consume(offset, Lex(c)); err != nil {
			return nil, err
		}
	}
	return p.finish()
}

// MustParse is like Parse but panics on error.
func MustParse(pattern string) *Node {
	n, err := Parse(pattern)
	if err != nil {
		panic(err)
	}
	return n
}

func (p *parser) consume(offset int, tok Token) error {
	if tok.IsSymbol() {
		if p.endsOperand {
			if err := p.implicitConcat(offset); err != nil {
				return err
			}
		}
		p.operands = append(p.operands, tree.New(tok))
		p.endsOperand = true
		return nil
	}

	switch tok.Op {
	case Left:
		if p.endsOperand {
			if err := p.implicitConcat(offset); err != nil {
				return err
			}
		}
		p.ops = append(p.ops, pending{op: Left, offset: offset})
		p.endsOperand = false

	case Alter, Star:
		if !p.endsOperand {
			return p.errorf(offset, "%q has no left operand", p.pattern[offset:offset+1])
		}
		if err := p.reduce(tok.Op.Precedence()); err != nil {
			return err
		}
		p.ops = append(p.ops, pending{op: tok.Op, offset: offset})
		p.endsOperand = tok.Op == Star

	case Right:
		if !p.endsOperand {
			return p.errorf(offset, "missing operand before ')'")
		}
		if err := p.closeGroup(offset); err != nil {
			return err
		}
		p.endsOperand = true
	}
	return nil
}

// implicitConcat drains operators binding at least as tightly as Concat and
// pushes a Concat in front of the operand that starts at offset.
func (p *parser) implicitConcat(offset int) error {
	if err := p.reduce(Concat.Precedence()); err != nil {
		return err
	}
	p.ops = append(p.ops, pending{op: Concat, offset: offset})
	return nil
}

// reduce applies pending operators with precedence >= minPrec. It stops at
// a "(" marker and leaves it on the stack.
func (p *parser) reduce(minPrec int) error {
	for len(p.ops) > 0 {
		top := p.ops[len(p.ops)-1]
		if top.op == Left || top.op.Precedence() < minPrec {
			return nil
		}
		p.ops = p.ops[:len(p.ops)-1]
		if err := p.apply(top); err != nil {
			return err
		}
	}
	return nil
}

// closeGroup applies pending operators down to the matching "(" and drops it.
func (p *parser) closeGroup(offset int) error {
	for len(p.ops) > 0 {
		top := p.ops[len(p.ops)-1]
		p.ops = p.ops[:len(p.ops)-1]
		if top.op == Left {
			return nil
		}
		if err := p.apply(top); err != nil {
			return err
		}
	}
	return p.errorf(offset, "unmatched ')'")
}

// apply pops the operator's operands, keeping their left-to-right order,
// and pushes the combined node.
func (p *parser) apply(pd pending) error {
	n := pd.op.Arity()
	if len(p.operands) < n {
		return p.errorf(pd.offset, "%s needs %d operands, have %d", pd.op, n, len(p.operands))
	}
	children := p.operands[len(p.operands)-n:]
	node := tree.New(Op(pd.op), children...)
	p.operands = append(p.operands[:len(p.operands)-n], node)
	return nil
}

func (p *parser) finish() (*Node, error) {
	if !p.endsOperand {
		return nil, p.errorf(len(p.pattern), "pattern ends without an operand")
	}
	for len(p.ops) > 0 {
		top := p.ops[len(p.ops)-1]
		p.ops = p.ops[:len(p.ops)-1]
		if top.op == Left {
			return nil, p.errorf(top.offset, "unmatched '('")
		}
		if err := p.apply(top); err != nil {
			return nil, err
		}
	}
	if len(p.operands) != 1 {
		return nil, p.errorf(len(p.pattern), "expected a single expression, have %d", len(p.operands))
	}
	return p.operands[0], nil
}

func (p *parser) errorf(offset int, format string, args ...interface{}) error {
	return &SyntaxError{
		Pattern: p.pattern,
		Offset:  offset,
		Reason:  fmt.Sprintf(format, args...),
	}
}
