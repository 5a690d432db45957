// Package types defines the runtime data model of FUEL: the tagged Value
// variant every expression evaluates to, function and macro wrappers, the
// lexical Scope a value is evaluated against, and the error type raised by
// the interpreter.
//
// Value, Function/Macro and Scope live in one package rather than three
// because they are mutually referential (a Function closes over a *Scope, a
// Scope holds bound Values, a Value can itself be a Function) and Go does
// not allow import cycles between packages; splitting them would just move
// the same coupling into an interface at one of the seams for no benefit.
package types

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/maze516/fuel-lang/lang/token"
)

// Kind is the tag of a Value's variant. The numeric values match the type
// codes returned by the "type" builtin.
type Kind uint8

const (
	KindUndefined Kind = iota
	KindNil
	KindBool
	KindInt
	KindDouble
	KindString
	KindList
	KindFunction
	KindSymbol
	KindNativeObject
	KindError
)

var kindNames = [...]string{
	KindUndefined:    "Undefined",
	KindNil:          "Nil",
	KindBool:         "Bool",
	KindInt:          "Int",
	KindDouble:       "Double",
	KindString:       "String",
	KindList:         "List",
	KindFunction:     "Function",
	KindSymbol:       "Symbol",
	KindNativeObject: "NativeObject",
	KindError:        "Error",
}

func (k Kind) String() string {
	if int(k) >= len(kindNames) {
		return "Unknown"
	}
	return kindNames[k]
}

// List is the mutable backing store of a Value of KindList. It is always
// referenced through a pointer so that two Values sharing the same list see
// each other's mutations, as required by push/pop/setf.
type List struct {
	Items []*Value
}

// Value is the tagged variant every FUEL expression evaluates to.
type Value struct {
	Kind Kind

	boolVal   bool
	intVal    int64
	doubleVal float64
	strVal    string // String and Symbol payload
	list      *List
	fn        *Function
	native    interface{}
	err       *LispError
	returnTag *returnTag // set only on values produced by the "return" special form

	tok *token.Token // originating token, for diagnostics; may be nil
}

// Undefined is the zero-ish "no value" variant, distinct from Nil.
func Undefined() *Value { return &Value{Kind: KindUndefined} }

// Nil constructs the Nil value (also the empty list, for equality/is-nil
// purposes).
func Nil() *Value { return &Value{Kind: KindNil} }

// NewBool constructs a Bool value.
func NewBool(b bool) *Value { return &Value{Kind: KindBool, boolVal: b} }

// NewInt constructs an Int value.
func NewInt(i int64) *Value { return &Value{Kind: KindInt, intVal: i} }

// NewDouble constructs a Double value.
func NewDouble(d float64) *Value { return &Value{Kind: KindDouble, doubleVal: d} }

// NewString constructs a String value.
func NewString(s string) *Value { return &Value{Kind: KindString, strVal: s} }

// NewSymbol constructs a Symbol value. A symbol's textual name is its
// identity; comparison between symbols is by name.
func NewSymbol(name string) *Value { return &Value{Kind: KindSymbol, strVal: name} }

// NewList constructs a List value wrapping items. An empty items slice
// produces a value that behaves like Nil for equality/is-nil purposes.
func NewList(items []*Value) *Value {
	return &Value{Kind: KindList, list: &List{Items: items}}
}

// NewFunctionValue wraps fn as a Value.
func NewFunctionValue(fn *Function) *Value { return &Value{Kind: KindFunction, fn: fn} }

// NewNativeObject wraps an opaque host value.
func NewNativeObject(v interface{}) *Value { return &Value{Kind: KindNativeObject, native: v} }

// NewErrorValue wraps err as a Value (distinct from returning err as a Go
// error) so it can be bound and passed around like any other first-class
// value.
func NewErrorValue(err *LispError) *Value {
	return &Value{Kind: KindError, err: err, strVal: err.Message}
}

// returnTag marks a Value produced by the "return" special form so EvalBody
// can stop at it as an early exit and propagate it, still tagged, up to the
// enclosing function call, which unwraps it, rather than treating it as the
// literal result of the last expression.
type returnTag struct{ val *Value }

// NewReturn wraps v as a "return" short-circuit marker: a shallow copy of v
// with the return tag attached, so it still prints and type-checks exactly
// like the value it carries everywhere except the AsReturn checks.
func NewReturn(v *Value) *Value {
	cp := *v
	cp.returnTag = &returnTag{val: v}
	return &cp
}

// AsReturn reports whether v was produced by "return", unwrapping the
// underlying value it carries.
func (v *Value) AsReturn() (*Value, bool) {
	if v == nil || v.returnTag == nil {
		return nil, false
	}
	return v.returnTag.val, true
}

// WithToken returns a shallow copy of v carrying tok as its originating
// token, for diagnostics.
func (v *Value) WithToken(tok *token.Token) *Value {
	if v == nil {
		return v
	}
	cp := *v
	cp.tok = tok
	return &cp
}

// Token returns the token v originated from, or nil if none was recorded.
func (v *Value) Token() *token.Token { return v.tok }

// IsNil reports whether v is Nil or an empty list; per spec, Nil equals the
// empty list for equality/is-nil purposes.
func (v *Value) IsNil() bool {
	if v == nil {
		return true
	}
	if v.Kind == KindNil {
		return true
	}
	return v.Kind == KindList && len(v.list.Items) == 0
}

// IsList reports whether v is a List (including the empty list).
func (v *Value) IsList() bool { return v.Kind == KindList }

// IsSymbol reports whether v is a Symbol.
func (v *Value) IsSymbol() bool { return v.Kind == KindSymbol }

// IsFunction reports whether v is a Function.
func (v *Value) IsFunction() bool { return v.Kind == KindFunction }

// IsString reports whether v is a String.
func (v *Value) IsString() bool { return v.Kind == KindString }

// SymbolName returns the symbol's name. It panics if v is not a Symbol;
// callers must check IsSymbol first.
func (v *Value) SymbolName() string {
	if !v.IsSymbol() {
		panic("SymbolName called on non-symbol value")
	}
	return v.strVal
}

// StringValue returns the raw string payload of a String value.
func (v *Value) StringValue() string { return v.strVal }

// ListItems returns the live item slice of a List value (nil for any other
// kind). Mutating the returned slice's elements mutates the list seen by
// every Value sharing it; append results must be written back with
// SetListItems to preserve sharing.
func (v *Value) ListItems() []*Value {
	if v.list == nil {
		return nil
	}
	return v.list.Items
}

// SetListItems replaces the live contents of a List value in place, so every
// Value sharing this list's backing store observes the change.
func (v *Value) SetListItems(items []*Value) {
	if v.list == nil {
		v.list = &List{}
	}
	v.list.Items = items
}

// FunctionValue returns the Function payload, or nil if v is not a Function.
func (v *Value) FunctionValue() *Function { return v.fn }

// NativeValue returns the opaque native payload.
func (v *Value) NativeValue() interface{} { return v.native }

// ErrorValue returns the LispError payload, or nil if v is not an Error.
func (v *Value) ErrorValue() *LispError { return v.err }

// TypeCode returns the numeric type code used by the "type" builtin.
func (v *Value) TypeCode() int { return int(v.Kind) }

// ToBool converts v following the language's truthiness rule: only Nil,
// Undefined and Bool(false) are falsy, everything else (including Int 0) is
// truthy.
func (v *Value) ToBool() bool {
	switch v.Kind {
	case KindNil:
		return false
	case KindBool:
		return v.boolVal
	case KindUndefined:
		return false
	default:
		return true
	}
}

// BoolValue returns the raw bool payload (only meaningful for Kind==KindBool).
func (v *Value) BoolValue() bool { return v.boolVal }

// ToInt converts v to an int64: Bool true/false become 1/0, Double
// truncates, String is parsed (returning 0 on failure; the "int" builtin
// does not use ToInt for strings and returns Undefined on failure instead).
func (v *Value) ToInt() int64 {
	switch v.Kind {
	case KindInt:
		return v.intVal
	case KindDouble:
		return int64(v.doubleVal)
	case KindBool:
		if v.boolVal {
			return 1
		}
		return 0
	case KindString:
		i, err := strconv.ParseInt(strings.TrimSpace(v.strVal), 10, 64)
		if err != nil {
			return 0
		}
		return i
	default:
		return 0
	}
}

// ToFloat converts v to a float64, analogous to ToInt.
func (v *Value) ToFloat() float64 {
	switch v.Kind {
	case KindDouble:
		return v.doubleVal
	case KindInt:
		return float64(v.intVal)
	case KindBool:
		if v.boolVal {
			return 1
		}
		return 0
	case KindString:
		f, err := strconv.ParseFloat(strings.TrimSpace(v.strVal), 64)
		if err != nil {
			return 0
		}
		return f
	default:
		return 0
	}
}

// IntValue returns the raw int64 payload (only meaningful for Kind==KindInt).
func (v *Value) IntValue() int64 { return v.intVal }

// DoubleValue returns the raw float64 payload (only meaningful for
// Kind==KindDouble).
func (v *Value) DoubleValue() float64 { return v.doubleVal }

// String renders v the way it appears embedded in a larger printed value:
// strings are quoted, Nil prints as "NIL", booleans print literally, doubles
// use fixed 6-digit fractional notation.
func (v *Value) String() string {
	if v == nil {
		return "NIL"
	}
	switch v.Kind {
	case KindUndefined:
		return "#undefined"
	case KindNil:
		return "NIL"
	case KindBool:
		if v.boolVal {
			return "#t"
		}
		return "#f"
	case KindInt:
		return strconv.FormatInt(v.intVal, 10)
	case KindDouble:
		return strconv.FormatFloat(v.doubleVal, 'f', 6, 64)
	case KindString:
		return strconv.Quote(v.strVal)
	case KindSymbol:
		return v.strVal
	case KindList:
		if len(v.list.Items) == 0 {
			return "()"
		}
		parts := make([]string, len(v.list.Items))
		for i, it := range v.list.Items {
			parts[i] = it.String()
		}
		return "(" + strings.Join(parts, " ") + ")"
	case KindFunction:
		return v.fn.String()
	case KindNativeObject:
		return fmt.Sprintf("native<%v>", v.native)
	case KindError:
		return "Error: " + v.err.Message
	default:
		return "?"
	}
}

// Display renders v the way "print"/"println" do at top level: strings are
// emitted without surrounding quotes, everything else matches String.
func (v *Value) Display() string {
	if v.Kind == KindString {
		return v.strVal
	}
	return v.String()
}

// Equal implements the "==" primitive's notion of equality: Nil equals the
// empty list, numeric values promote across Int/Double, strings compare
// lexicographically, lists compare elementwise, everything else compares by
// identity of underlying payload.
func Equal(a, b *Value) bool {
	if a.IsNil() && b.IsNil() {
		return true
	}
	if a.IsNil() != b.IsNil() {
		return false
	}
	if isNumeric(a) && isNumeric(b) {
		return a.ToFloat() == b.ToFloat()
	}
	if a.Kind != b.Kind {
		return false
	}
	switch a.Kind {
	case KindBool:
		return a.boolVal == b.boolVal
	case KindString:
		return a.strVal == b.strVal
	case KindSymbol:
		return a.strVal == b.strVal
	case KindList:
		if len(a.list.Items) != len(b.list.Items) {
			return false
		}
		for i := range a.list.Items {
			if !Equal(a.list.Items[i], b.list.Items[i]) {
				return false
			}
		}
		return true
	case KindFunction:
		return a.fn == b.fn
	case KindNativeObject:
		return a.native == b.native
	case KindError:
		return a.err == b.err
	default:
		return true
	}
}

func isNumeric(v *Value) bool { return v.Kind == KindInt || v.Kind == KindDouble }
