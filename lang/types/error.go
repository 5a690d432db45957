package types

import (
	"fmt"

	"github.com/maze516/fuel-lang/lang/token"
)

// LispError is the error carried by every failure raised by the
// interpreter: a message, the token (hence line and module) where it
// occurred, and a snapshot of the call stack at the point it was
// constructed.
type LispError struct {
	Message string
	Tok     *token.Token
	Module  string
	Stack   []string
}

func (e *LispError) Error() string {
	if e.Tok != nil {
		return fmt.Sprintf("%s (module %s, line %d)", e.Message, e.Module, e.Tok.Line)
	}
	if e.Module != "" {
		return fmt.Sprintf("%s (module %s)", e.Message, e.Module)
	}
	return e.Message
}

// StackTrace renders the captured call-stack snapshot, most recent call
// first.
func (e *LispError) StackTrace() []string { return e.Stack }

// NewError builds a LispError, capturing the current token and a stack
// snapshot from sc (which may be nil, e.g. for errors raised before any
// scope exists).
func NewError(sc *Scope, format string, args ...interface{}) *LispError {
	e := &LispError{Message: fmt.Sprintf(format, args...)}
	if sc != nil {
		e.Tok = sc.CurrentToken
		e.Module = sc.ModuleName
		e.Stack = sc.StackSnapshot()
	}
	return e
}
