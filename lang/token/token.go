// Package token defines the lexical tokens produced by the tokenizer and
// consumed by the reader.
package token

import "fmt"

// Kind identifies the lexical class of a Token.
type Kind uint8

//nolint:revive
const (
	ILLEGAL Kind = iota
	EOF

	LPAREN // (
	RPAREN // )
	QUOTE  // '
	QUASI  // `
	UNQUOTE    // ,
	UNQUOTE_SPLICE // ,@

	INT    // 123
	DOUBLE // 1.23
	STRING // "foo"
	BOOL   // #t / #f
	NIL    // nil / NIL
	SYMBOL // anything else

	COMMENT    // ;...
	WHITESPACE // spaces, tabs, newlines

	maxKind
)

var kindNames = [...]string{
	ILLEGAL:        "illegal",
	EOF:            "eof",
	LPAREN:         "(",
	RPAREN:         ")",
	QUOTE:          "'",
	QUASI:          "`",
	UNQUOTE:        ",",
	UNQUOTE_SPLICE: ",@",
	INT:            "int",
	DOUBLE:         "double",
	STRING:         "string",
	BOOL:           "bool",
	NIL:            "nil",
	SYMBOL:         "symbol",
	COMMENT:        "comment",
	WHITESPACE:     "whitespace",
}

func (k Kind) String() string {
	if int(k) >= len(kindNames) || kindNames[k] == "" {
		return fmt.Sprintf("<invalid kind %d>", k)
	}
	return kindNames[k]
}

// Token is a single lexeme with its exact source position. Tokens are
// immutable after creation.
type Token struct {
	Kind Kind
	Text string // text of the lexeme as it appeared in the source; for STRING, the decoded contents without quotes

	Line  int // 1-based source line number
	Start int // byte offset of the first rune of the lexeme
	Stop  int // byte offset one past the last rune of the lexeme
}

// Make builds an immutable Token value.
func Make(kind Kind, text string, line, start, stop int) Token {
	return Token{Kind: kind, Text: text, Line: line, Start: start, Stop: stop}
}

func (t Token) String() string {
	return fmt.Sprintf("%s(%q) @%d:%d-%d", t.Kind, t.Text, t.Line, t.Start, t.Stop)
}

// IsDiscardable reports whether the token is whitespace or a comment, and so
// is never handed to the reader.
func (t Token) IsDiscardable() bool {
	return t.Kind == WHITESPACE || t.Kind == COMMENT
}
