package eval

import "github.com/fumisaitou/blisp/types"

// Environment manages variable bindings with lexical scoping, adapted
// from the teacher's eval.Environment: a chain of scopes searched
// innermost-first. The root environment (parent == nil) additionally
// caches ClosureValues built lazily for top-level bindings the first
// time each name is referenced (builtins and constructors are not
// cached), so mutually
// recursive top-level functions resolve through one another without an
// eager, possibly-infinite construction pass.
type Environment struct {
	vars   map[string]types.Value
	parent *Environment
}

// NewEnvironment creates the root environment.
func NewEnvironment() *Environment {
	return &Environment{vars: make(map[string]types.Value)}
}

// NewNestedEnvironment creates a new environment with a parent scope.
func NewNestedEnvironment(parent *Environment) *Environment {
	return &Environment{vars: make(map[string]types.Value), parent: parent}
}

// Get looks up a variable by name, searching outward through enclosing
// scopes.
func (e *Environment) Get(name string) (types.Value, bool) {
	if v, ok := e.vars[name]; ok {
		return v, true
	}
	if e.parent != nil {
		return e.parent.Get(name)
	}
	return nil, false
}

// Define binds name in this scope.
func (e *Environment) Define(name string, value types.Value) {
	e.vars[name] = value
}

// Root walks up the parent chain to the outermost environment, where
// top-level bindings are cached.
func (e *Environment) Root() *Environment {
	r := e
	for r.parent != nil {
		r = r.parent
	}
	return r
}
