// Package scanner implements the FUEL tokenizer: it turns source text into a
// finite, non-restartable sequence of token.Token values with exact source
// positions.
package scanner

import (
	"fmt"
	"go/scanner"
	"strings"
	"unicode/utf8"

	"github.com/maze516/fuel-lang/lang/token"
)

type (
	// Error is a single positioned lexical error.
	Error = scanner.Error
	// ErrorList accumulates positioned lexical errors across a whole scan, so
	// callers can be told about every bad string literal instead of just the
	// first.
	ErrorList = scanner.ErrorList
)

// Scanner tokenizes a single in-memory source string. FUEL scripts are one
// string handed to the facade by the host application; there is no
// multi-file compilation unit, so unlike a general-purpose language scanner
// there is no file set to track.
type Scanner struct {
	src  string
	pos  int // byte offset of the next unread rune
	line int

	errs ErrorList
}

// New creates a Scanner over src.
func New(src string) *Scanner {
	return &Scanner{src: src, pos: 0, line: 1}
}

// ScanAll tokenizes the whole source and returns every token, including
// whitespace and comments (discarded later by the reader), terminated by a
// single EOF token. It only fails for a malformed string literal
// (unterminated, or containing an invalid escape sequence); any other byte
// sequence is folded into a symbol token.
func ScanAll(src string) ([]token.Token, error) {
	s := New(src)
	var toks []token.Token
	for {
		tok := s.Next()
		toks = append(toks, tok)
		if tok.Kind == token.EOF {
			break
		}
	}
	return toks, s.errs.Err()
}

func (s *Scanner) position(line int) scanner.Position {
	return scanner.Position{Line: line}
}

func (s *Scanner) errorf(line int, format string, args ...interface{}) {
	s.errs.Add(s.position(line), fmt.Sprintf(format, args...))
}

// Next scans and returns the next token. Once it returns a token of kind
// token.EOF, further calls keep returning the same EOF token.
func (s *Scanner) Next() token.Token {
	if s.pos >= len(s.src) {
		return token.Make(token.EOF, "", s.line, s.pos, s.pos)
	}

	start := s.pos
	startLine := s.line
	r, size := s.peek()

	switch {
	case r == '\n':
		s.advance(size)
		s.line++
		return s.collectWhitespace(start, startLine)
	case isSpace(r):
		s.advance(size)
		return s.collectWhitespace(start, startLine)
	case r == ';':
		return s.scanComment(start, startLine)
	case r == '(':
		s.advance(size)
		return token.Make(token.LPAREN, "(", startLine, start, s.pos)
	case r == ')':
		s.advance(size)
		return token.Make(token.RPAREN, ")", startLine, start, s.pos)
	case r == '\'':
		s.advance(size)
		return token.Make(token.QUOTE, "'", startLine, start, s.pos)
	case r == '`':
		s.advance(size)
		return token.Make(token.QUASI, "`", startLine, start, s.pos)
	case r == ',':
		s.advance(size)
		if r2, size2 := s.peek(); r2 == '@' {
			s.advance(size2)
			return token.Make(token.UNQUOTE_SPLICE, ",@", startLine, start, s.pos)
		}
		return token.Make(token.UNQUOTE, ",", startLine, start, s.pos)
	case r == '"':
		return s.scanString(start, startLine)
	default:
		return s.scanAtom(start, startLine)
	}
}

func (s *Scanner) collectWhitespace(start, startLine int) token.Token {
	for s.pos < len(s.src) {
		r, size := s.peek()
		if r == '\n' {
			s.advance(size)
			s.line++
			continue
		}
		if !isSpace(r) {
			break
		}
		s.advance(size)
	}
	return token.Make(token.WHITESPACE, s.src[start:s.pos], startLine, start, s.pos)
}

func (s *Scanner) scanComment(start, startLine int) token.Token {
	for s.pos < len(s.src) {
		r, size := s.peek()
		if r == '\n' {
			break
		}
		s.advance(size)
	}
	return token.Make(token.COMMENT, s.src[start:s.pos], startLine, start, s.pos)
}

func (s *Scanner) scanString(start, startLine int) token.Token {
	var sb strings.Builder
	s.advance(1) // opening quote
	closed := false
	for s.pos < len(s.src) {
		r, size := s.peek()
		if r == '"' {
			s.advance(size)
			closed = true
			break
		}
		if r == '\n' {
			// unterminated strings do not span lines
			break
		}
		if r == '\\' {
			s.advance(size)
			if s.pos >= len(s.src) {
				break
			}
			esc, escSize := s.peek()
			switch esc {
			case '\\':
				sb.WriteByte('\\')
			case '"':
				sb.WriteByte('"')
			case 'n':
				sb.WriteByte('\n')
			case 'r':
				sb.WriteByte('\r')
			case 't':
				sb.WriteByte('\t')
			default:
				s.errorf(s.line, "invalid escape sequence '\\%c' in string literal", esc)
				sb.WriteRune(esc)
			}
			s.advance(escSize)
			continue
		}
		sb.WriteRune(r)
		s.advance(size)
	}
	if !closed {
		s.errorf(startLine, "unterminated string literal")
	}
	return token.Make(token.STRING, sb.String(), startLine, start, s.pos)
}

// isAtomBoundary reports whether r terminates a bare (unquoted) atom, i.e. a
// symbol or numeric/boolean/nil literal.
func isAtomBoundary(r rune) bool {
	switch r {
	case '(', ')', '\'', '`', ',', '"', ';':
		return true
	}
	return isSpace(r) || r == '\n'
}

func (s *Scanner) scanAtom(start, startLine int) token.Token {
	for s.pos < len(s.src) {
		r, size := s.peek()
		if isAtomBoundary(r) {
			break
		}
		s.advance(size)
	}
	text := s.src[start:s.pos]
	return classifyAtom(text, startLine, start, s.pos)
}

func classifyAtom(text string, line, start, stop int) token.Token {
	switch text {
	case "#t", "#f":
		return token.Make(token.BOOL, text, line, start, stop)
	case "nil", "NIL":
		return token.Make(token.NIL, text, line, start, stop)
	}
	if looksNumeric(text) {
		if strings.ContainsRune(text, '.') {
			return token.Make(token.DOUBLE, text, line, start, stop)
		}
		return token.Make(token.INT, text, line, start, stop)
	}
	return token.Make(token.SYMBOL, text, line, start, stop)
}

// looksNumeric reports whether text is a (possibly signed) integer or
// floating point literal. A lone "+"/"-" is a symbol, not a number.
func looksNumeric(text string) bool {
	i := 0
	if len(text) == 0 {
		return false
	}
	if text[0] == '+' || text[0] == '-' {
		i++
	}
	if i >= len(text) {
		return false
	}
	sawDigit := false
	sawDot := false
	for ; i < len(text); i++ {
		c := text[i]
		switch {
		case c >= '0' && c <= '9':
			sawDigit = true
		case c == '.':
			// allow a single dot; additional dots fall through to "not numeric"
			if sawDot {
				return false
			}
			sawDot = true
		default:
			return false
		}
	}
	return sawDigit
}

func (s *Scanner) peek() (rune, int) {
	if s.pos >= len(s.src) {
		return 0, 0
	}
	return utf8.DecodeRuneInString(s.src[s.pos:])
}

func (s *Scanner) advance(size int) {
	s.pos += size
}

func isSpace(r rune) bool {
	return r == ' ' || r == '\t' || r == '\r'
}
