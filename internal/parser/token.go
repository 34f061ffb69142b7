package parser

import "fmt"

// Operator is a regex operator or grouping marker.
type Operator int

const (
	// Left is the "(" grouping marker.
	Left Operator = iota
	// Right is the ")" grouping marker. It is never pushed onto the operator stack.
	Right
	// Alter is alternation, "|".
	Alter
	// Concat is implicit concatenation.
	Concat
	// Star is the Kleene star, "*".
	Star
)

// Precedence returns the binding strength used by the shunting-yard parser.
func (o Operator) Precedence() int {
	switch o {
	case Alter:
		return 1
	case Concat:
		return 2
	case Star:
		return 3
	default:
		return 0
	}
}

// Arity returns how many operands the operator takes.
func (o Operator) Arity() int {
	switch o {
	case Concat, Alter:
		return 2
	case Star:
		return 1
	default:
		return 0
	}
}

func (o Operator) String() string {
	switch o {
	case Left:
		return "("
	case Right:
		return ")"
	case Alter:
		return "alter"
	case Concat:
		return "concat"
	case Star:
		return "star"
	default:
		return fmt.Sprintf("Operator(%d)", int(o))
	}
}

// Kind distinguishes literal symbols from operators.
type Kind uint8

const (
	KindSymbol Kind = iota
	KindOperator
)

// Token is a node label of a parsed pattern: a literal symbol or an operator.
type Token struct {
	Kind   Kind
	Symbol rune
	Op     Operator
}

// Sym returns a literal symbol token.
func Sym(c rune) Token {
	return Token{Kind: KindSymbol, Symbol: c}
}

// Op returns an operator token.
func Op(op Operator) Token {
	return Token{Kind: KindOperator, Op: op}
}

// Lex classifies a single pattern character. There is no escape mechanism:
// '*', '|', '(' and ')' are always metacharacters.
func Lex(c rune) Token {
	switch c {
	case '*':
		return Op(Star)
	case '|':
		return Op(Alter)
	case '(':
		return Op(Left)
	case ')':
		return Op(Right)
	default:
		return Sym(c)
	}
}

// IsSymbol reports whether the token is a literal.
func (t Token) IsSymbol() bool {
	return t.Kind == KindSymbol
}

// IsOperator reports whether the token is an operator.
func (t Token) IsOperator() bool {
	return t.Kind == KindOperator
}

func (t Token) String() string {
	if t.IsSymbol() {
		return string(t.Symbol)
	}
	return t.Op.String()
}
