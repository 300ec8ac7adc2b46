package types

import (
	"fmt"
	"strings"
)

// Type is the static type representation built during elaboration and
// manipulated by the inferencer. It is a tagged variant implemented as
// an interface with a small closed set of Go struct implementations,
// matching the AST's own Node/Expr pattern.
type Type interface {
	typeNode()
	String() string
}

// TCon is an atomic type constructor: Int, Bool, Char, String.
type TCon struct{ Name string }

func (TCon) typeNode()       {}
func (t TCon) String() string { return t.Name }

var (
	TInt    Type = TCon{"Int"}
	TBool   Type = TCon{"Bool"}
	TChar   Type = TCon{"Char"}
	TString Type = TCon{"String"}
)

// TVar is a type variable, identified by a unique integer id assigned
// during inference plus the surface name it was parsed from (if any).
// Var is a union-find cell: Link is non-nil once the variable has been
// unified with something.
type TVar struct {
	ID    int
	Name  string
	Link  *Type // nil until bound
	Rigid bool  // true while checking a body against its own declared scheme
}

func (*TVar) typeNode() {}
func (v *TVar) String() string {
	if v.Link != nil {
		return (*v.Link).String()
	}
	if v.Name != "" {
		return v.Name
	}
	return fmt.Sprintf("t%d", v.ID)
}

// TTuple is a fixed-arity product type [T1 ... Tn].
type TTuple struct{ Elems []Type }

func (TTuple) typeNode() {}
func (t TTuple) String() string {
	parts := make([]string, len(t.Elems))
	for i, e := range t.Elems {
		parts[i] = e.String()
	}
	return "[" + strings.Join(parts, " ") + "]"
}

// TList is the homogeneous inductive list type '(T).
type TList struct{ Elem Type }

func (TList) typeNode()       {}
func (t TList) String() string { return "'(" + t.Elem.String() + ")" }

// TData is an application of a user data constructor by name with type
// arguments, e.g. (Option Int).
type TData struct {
	Name string
	Args []Type
}

func (TData) typeNode() {}
func (t TData) String() string {
	if len(t.Args) == 0 {
		return t.Name
	}
	parts := make([]string, len(t.Args))
	for i, a := range t.Args {
		parts[i] = a.String()
	}
	return "(" + t.Name + " " + strings.Join(parts, " ") + ")"
}

// TFunc is a function type tagged with its effect row.
type TFunc struct {
	Effect Effect
	Params []Type
	Ret    Type
}

func (TFunc) typeNode() {}
func (t TFunc) String() string {
	parts := make([]string, len(t.Params))
	for i, p := range t.Params {
		parts[i] = p.String()
	}
	return fmt.Sprintf("(%s (-> (%s) %s))", t.Effect, strings.Join(parts, " "), t.Ret.String())
}

// Prune follows a chain of bound type variables to its representative.
// It does not recurse into compound types; callers that need a fully
// resolved type should use Resolve.
func Prune(t Type) Type {
	for {
		v, ok := t.(*TVar)
		if !ok || v.Link == nil {
			return t
		}
		t = *v.Link
	}
}

// Resolve fully substitutes bound type variables throughout a compound
// type, producing a type with no more indirection than necessary.
func Resolve(t Type) Type {
	t = Prune(t)
	switch x := t.(type) {
	case TTuple:
		elems := make([]Type, len(x.Elems))
		for i, e := range x.Elems {
			elems[i] = Resolve(e)
		}
		return TTuple{elems}
	case TList:
		return TList{Resolve(x.Elem)}
	case TData:
		args := make([]Type, len(x.Args))
		for i, a := range x.Args {
			args[i] = Resolve(a)
		}
		return TData{x.Name, args}
	case TFunc:
		params := make([]Type, len(x.Params))
		for i, p := range x.Params {
			params[i] = Resolve(p)
		}
		return TFunc{x.Effect, params, Resolve(x.Ret)}
	default:
		return t
	}
}

// Scheme is a universally quantified type attached to a top-level
// binding: forall Vars. Body.
type Scheme struct {
	Vars []*TVar
	Body Type
}
