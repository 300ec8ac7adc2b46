// Package semantics elaborates a parsed expression forest into a typed
// Context: it registers algebraic data declarations, builds the typing
// environment for top-level functions, and performs Hindley–Milner
// inference extended with a Pure/IO effect row (spec.md section 4).
package semantics

import (
	"github.com/fumisaitou/blisp/parser"
	"github.com/fumisaitou/blisp/types"
)

// CtorInfo records a single data constructor's shape.
type CtorInfo struct {
	DataName string
	Fields   []types.Type // may reference the data's own type parameters
}

func (c *CtorInfo) Arity() int { return len(c.Fields) }

// DataDecl is a registered algebraic data type. ParamVars are the exact
// type variable pointers used while parsing constructor field types, so
// every constructor of the same data type shares the same variable
// identity for the same surface parameter name.
type DataDecl struct {
	Name      string
	Params    []string
	ParamVars []*types.TVar
	Ctors     []string // constructor names, in declaration order
}

// Binding is a registered top-level function: its generalized scheme
// plus the AST it was elaborated from, for the evaluator to run later.
type Binding struct {
	Name     string
	Params   []string
	Scheme   *types.Scheme
	Body     parser.Expr
	Exported bool
}

// Context is the output of semantic analysis (spec.md section 3). It is
// read-mostly after Elaborate returns: the only later mutation is
// installing the host callback.
type Context struct {
	Types        map[string]*DataDecl
	Constructors map[string]*CtorInfo
	Bindings     map[string]*Binding
	Callback     types.Callback
}

func newContext() *Context {
	return &Context{
		Types:        map[string]*DataDecl{},
		Constructors: map[string]*CtorInfo{},
		Bindings:     map[string]*Binding{},
	}
}

// SetCallback installs the single host callback slot consumed by the
// call-rust built-in (spec.md section 4.5). It must be called before
// any Eval that invokes call-rust, and never concurrently with one
// (spec.md section 5).
func (c *Context) SetCallback(f types.Callback) {
	c.Callback = f
}

// Lookup resolves a name against top-level bindings only, reporting
// false for any other name. Constructors and built-ins are resolved
// separately by the inferencer and evaluator.
func (c *Context) Lookup(name string) (*Binding, bool) {
	b, ok := c.Bindings[name]
	return b, ok
}

// ExportedSignature returns the fully resolved type of an exported
// top-level function, for a host that wants to introspect a program's
// public surface (e.g. to generate bindings or documentation) without
// walking unresolved type-variable links itself. It reports false for
// a name that isn't registered or isn't exported.
func (c *Context) ExportedSignature(name string) (types.Type, bool) {
	b, ok := c.Bindings[name]
	if !ok || !b.Exported {
		return nil, false
	}
	return types.Resolve(b.Scheme.Body), true
}
