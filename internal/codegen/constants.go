// Package codegen lowers dense recognizer tables into standalone programs.
package codegen

import (
	"fmt"
	"unicode"
	"unicode/utf8"
)

// Identifiers used in generated code
const (
	InputName       = "input"
	StateName       = "state"
	SymbolName      = "c"
	ScannerName     = "scanner"
	MatchFuncName   = "match"
	MaxTokenLenName = "maxTokenLen"
)

// Verdicts printed by generated programs
const (
	AcceptVerdict = "accept"
	RejectVerdict = "reject"
)

// MaxTokenLen is the longest input token, in bytes, a generated program reads.
// Longer tokens are rejected.
const MaxTokenLen = 4096

// StateComment returns the comment placed above the branch table of a state.
func StateComment(id int) string {
	return fmt.Sprintf("state %d", id)
}

// UpperFirst converts the first character of a string to uppercase.
func UpperFirst(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if size == 0 {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}
