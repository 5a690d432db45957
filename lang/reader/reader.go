// Package reader folds a token stream into the Value tree the evaluator
// walks: a reader shorthand table for quote/quasiquote/unquote, list
// nesting via parentheses, and literal parsing for every atomic token kind.
package reader

import (
	"fmt"
	"strconv"

	"github.com/maze516/fuel-lang/lang/scanner"
	"github.com/maze516/fuel-lang/lang/token"
	"github.com/maze516/fuel-lang/lang/types"
)

// Reader consumes a fixed token slice and produces Value trees.
type Reader struct {
	toks []token.Token
	pos  int
}

// New creates a Reader over an already-discardable-free token slice (use
// significant() to filter out whitespace/comments first, or pass the raw
// scanner output - New filters internally).
func New(toks []token.Token) *Reader {
	return &Reader{toks: significant(toks)}
}

func significant(toks []token.Token) []token.Token {
	out := make([]token.Token, 0, len(toks))
	for _, t := range toks {
		if t.IsDiscardable() {
			continue
		}
		out = append(out, t)
	}
	return out
}

// ReadScript tokenizes and reads src as a single top-level expression. It is
// an error for more than one top-level form to follow ("script too long").
func ReadScript(src string) (*types.Value, error) {
	toks, err := scanner.ScanAll(src)
	if err != nil {
		return nil, err
	}
	r := New(toks)
	if r.atEOF() {
		return types.Nil(), nil
	}
	val, err := r.ReadOne()
	if err != nil {
		return nil, err
	}
	if !r.atEOF() {
		return nil, fmt.Errorf("script too long: unexpected input after top-level expression at line %d", r.peek().Line)
	}
	return val, nil
}

// ReadAll reads every remaining top-level form (used by the facade's Eval,
// and so by the REPL, which evaluates one input line at a time, and by
// tests).
func ReadAll(src string) ([]*types.Value, error) {
	toks, err := scanner.ScanAll(src)
	if err != nil {
		return nil, err
	}
	r := New(toks)
	var vals []*types.Value
	for !r.atEOF() {
		v, err := r.ReadOne()
		if err != nil {
			return nil, err
		}
		vals = append(vals, v)
	}
	return vals, nil
}

func (r *Reader) atEOF() bool {
	return r.pos >= len(r.toks) || r.toks[r.pos].Kind == token.EOF
}

func (r *Reader) peek() token.Token {
	if r.pos >= len(r.toks) {
		return token.Make(token.EOF, "", 0, 0, 0)
	}
	return r.toks[r.pos]
}

func (r *Reader) next() token.Token {
	t := r.peek()
	if r.pos < len(r.toks) {
		r.pos++
	}
	return t
}

// ReadOne reads a single top-level form from the stream.
func (r *Reader) ReadOne() (*types.Value, error) {
	return r.readForm()
}

func (r *Reader) readForm() (*types.Value, error) {
	tok := r.next()
	switch tok.Kind {
	case token.EOF:
		return nil, fmt.Errorf("unexpected end of input")
	case token.RPAREN:
		return nil, fmt.Errorf("unmatched ')' at line %d", tok.Line)
	case token.LPAREN:
		return r.readList(tok)
	case token.QUOTE:
		return r.readShorthand(tok, "quote")
	case token.QUASI:
		return r.readShorthand(tok, "quasiquote")
	case token.UNQUOTE:
		return r.readShorthand(tok, "unquote")
	case token.UNQUOTE_SPLICE:
		return r.readShorthand(tok, "unquote-splicing")
	case token.INT:
		i, err := strconv.ParseInt(tok.Text, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("malformed integer literal %q at line %d", tok.Text, tok.Line)
		}
		return types.NewInt(i).WithToken(&tok), nil
	case token.DOUBLE:
		d, err := strconv.ParseFloat(tok.Text, 64)
		if err != nil {
			return nil, fmt.Errorf("malformed double literal %q at line %d", tok.Text, tok.Line)
		}
		return types.NewDouble(d).WithToken(&tok), nil
	case token.STRING:
		return types.NewString(tok.Text).WithToken(&tok), nil
	case token.BOOL:
		return types.NewBool(tok.Text == "#t").WithToken(&tok), nil
	case token.NIL:
		return types.Nil().WithToken(&tok), nil
	case token.SYMBOL:
		return types.NewSymbol(tok.Text).WithToken(&tok), nil
	default:
		return nil, fmt.Errorf("unexpected token %s at line %d", tok.Kind, tok.Line)
	}
}

func (r *Reader) readShorthand(tok token.Token, head string) (*types.Value, error) {
	inner, err := r.readForm()
	if err != nil {
		return nil, err
	}
	list := types.NewList([]*types.Value{types.NewSymbol(head), inner})
	return list.WithToken(&tok), nil
}

func (r *Reader) readList(openTok token.Token) (*types.Value, error) {
	var items []*types.Value
	for {
		if r.atEOF() {
			return nil, fmt.Errorf("unmatched '(' opened at line %d", openTok.Line)
		}
		if r.peek().Kind == token.RPAREN {
			r.next()
			break
		}
		item, err := r.readForm()
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return types.NewList(items).WithToken(&openTok), nil
}
