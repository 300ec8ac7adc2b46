package types

import (
	"math/big"
	"strings"
)

// Value is a tagged variant for runtime values, matching the teacher's
// pattern of one small struct per variant implementing a shared
// interface (see parser.Expr / parser.Node in the adapted parser
// package). Values are acyclic: lists are Cons/Nil constructor values,
// and closures capture their environment by reference but never form a
// cycle back into a value.
type Value interface {
	valueNode()
	// String renders the value in canonical BLisp surface syntax.
	String() string
}

// IntValue is an arbitrary-precision integer. No example repository in
// the reference corpus imports a bignum library; math/big is the
// standard library's answer and is used directly here (see SPEC_FULL.md
// section 3).
type IntValue struct{ Val *big.Int }

func NewInt(i int64) IntValue       { return IntValue{big.NewInt(i)} }
func NewIntFromBig(b *big.Int) IntValue { return IntValue{new(big.Int).Set(b)} }

func (IntValue) valueNode()        {}
func (v IntValue) String() string  { return v.Val.String() }

// BoolValue is a boolean.
type BoolValue struct{ Val bool }

func NewBool(b bool) BoolValue { return BoolValue{b} }
func (BoolValue) valueNode()   {}
func (v BoolValue) String() string {
	if v.Val {
		return "true"
	}
	return "false"
}

// CharValue is a single character.
type CharValue struct{ Val rune }

func NewChar(r rune) CharValue { return CharValue{r} }
func (CharValue) valueNode()   {}
func (v CharValue) String() string {
	return "#\\" + escapeRune(v.Val)
}

// StrValue is a string.
type StrValue struct{ Val string }

func NewStr(s string) StrValue { return StrValue{s} }
func (StrValue) valueNode()    {}
func (v StrValue) String() string {
	return "\"" + escapeString(v.Val) + "\""
}

// TupleValue is a fixed-arity product value [v1 ... vn].
type TupleValue struct{ Elems []Value }

func (TupleValue) valueNode() {}
func (v TupleValue) String() string {
	parts := make([]string, len(v.Elems))
	for i, e := range v.Elems {
		parts[i] = e.String()
	}
	return "[" + strings.Join(parts, " ") + "]"
}

// DataValue is a constructor applied to its field values: (Ctor v1 ...)
// or the bare name Ctor if nullary. Cons/Nil/Some/None are ordinary
// DataValues built from the prelude's and built-ins' constructors.
type DataValue struct {
	Ctor   string
	Fields []Value
}

func (DataValue) valueNode() {}

// String renders in canonical surface syntax, per spec.md section 4.4:
// a Cons/Nil chain anywhere in a value tree prints as '(v1 ... vn),
// not as nested (Cons ...) applications, so the special case lives
// here rather than only at the top-level Display entry point.
func (v DataValue) String() string {
	if v.IsList() {
		return v.ListString()
	}
	if len(v.Fields) == 0 {
		return v.Ctor
	}
	parts := make([]string, len(v.Fields))
	for i, f := range v.Fields {
		parts[i] = f.String()
	}
	return "(" + v.Ctor + " " + strings.Join(parts, " ") + ")"
}

// IsList reports whether this value is the head of a Cons/Nil chain.
func (v DataValue) IsList() bool {
	return v.Ctor == "Nil" || v.Ctor == "Cons"
}

// ListString renders a Cons/Nil chain as '(v1 v2 ...).
func (v DataValue) ListString() string {
	var parts []string
	cur := Value(v)
	for {
		dv, ok := cur.(DataValue)
		if !ok || !dv.IsList() {
			break
		}
		if dv.Ctor == "Nil" {
			break
		}
		parts = append(parts, dv.Fields[0].String())
		cur = dv.Fields[1]
	}
	return "'(" + strings.Join(parts, " ") + ")"
}

// ClosureValue is a lambda or top-level function bound to its captured
// lexical environment. Env is an opaque interface{} to avoid an import
// cycle between types and eval; the eval package supplies the concrete
// *eval.Environment and type-asserts it back on application.
type ClosureValue struct {
	Params []string
	Body   interface{} // parser.Expr, typed this way to avoid an import cycle
	Env    interface{} // *eval.Environment
	Name   string      // non-empty for a top-level function reference
}

func (ClosureValue) valueNode()        {}
func (v ClosureValue) String() string  { return "<closure>" }

// PrimValue is a built-in primitive function referenced as a value,
// e.g. passing `+` itself to `map`.
type PrimValue struct{ Name string }

func (PrimValue) valueNode()       {}
func (v PrimValue) String() string { return "<builtin:" + v.Name + ">" }

func escapeRune(r rune) string {
	switch r {
	case '\n':
		return "\\n"
	case '\t':
		return "\\t"
	case '\\':
		return "\\\\"
	case '\'':
		return "\\'"
	default:
		return string(r)
	}
}

func escapeString(s string) string {
	var b strings.Builder
	for _, r := range s {
		switch r {
		case '\n':
			b.WriteString("\\n")
		case '\t':
			b.WriteString("\\t")
		case '\\':
			b.WriteString("\\\\")
		case '"':
			b.WriteString("\\\"")
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

// Equal is used by literal patterns.
func Equal(a, b Value) bool {
	switch x := a.(type) {
	case IntValue:
		y, ok := b.(IntValue)
		return ok && x.Val.Cmp(y.Val) == 0
	case BoolValue:
		y, ok := b.(BoolValue)
		return ok && x.Val == y.Val
	case CharValue:
		y, ok := b.(CharValue)
		return ok && x.Val == y.Val
	case StrValue:
		y, ok := b.(StrValue)
		return ok && x.Val == y.Val
	case TupleValue:
		y, ok := b.(TupleValue)
		if !ok || len(x.Elems) != len(y.Elems) {
			return false
		}
		for i := range x.Elems {
			if !Equal(x.Elems[i], y.Elems[i]) {
				return false
			}
		}
		return true
	case DataValue:
		y, ok := b.(DataValue)
		if !ok || x.Ctor != y.Ctor || len(x.Fields) != len(y.Fields) {
			return false
		}
		for i := range x.Fields {
			if !Equal(x.Fields[i], y.Fields[i]) {
				return false
			}
		}
		return true
	default:
		return false
	}
}

// Display renders a top-level evaluation result in canonical surface
// syntax, per spec.md section 4.4. Value.String() already applies the
// full canonical rendering (including the Cons/Nil-as-'(...) special
// case at any depth), so this is a thin, self-documenting alias for
// call sites that produce a final result string.
func Display(v Value) string {
	return v.String()
}
