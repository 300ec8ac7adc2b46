// Package builtins implements BLisp's built-in primitive functions:
// arithmetic and comparison. The call-rust host bridge is not here; it
// lives in the eval package (eval.callRust), since it needs the
// Context's callback slot. List and option helpers (car, cdr, map, fold, ...) are
// not Go builtins — they are ordinary BLisp functions defined in the
// embedded prelude (see the root package's prelude.lisp), the same way
// the teacher reserves its Go builtins.Registry for primitives that
// cannot be expressed as verb code.
package builtins

import "github.com/fumisaitou/blisp/types"

// BuiltinFunc is a primitive's implementation: it never needs the
// lexical environment, only its already-evaluated arguments and a
// position to blame on a Runtime Error.
type BuiltinFunc func(args []types.Value, pos types.Position) types.Result

// Registry holds every registered primitive, mirroring the teacher's
// builtins.Registry (builtins/registry.go) minus the MOO-specific
// verb-dispatch and object-store plumbing this language has no use
// for.
type Registry struct {
	funcs map[string]BuiltinFunc
}

// Default is the single, fully populated registry used by the
// evaluator. BLisp has no notion of per-host builtin sets, so one
// package-level instance is enough.
var Default = newRegistry()

func newRegistry() *Registry {
	r := &Registry{funcs: make(map[string]BuiltinFunc)}

	r.Register("+", builtinAdd)
	r.Register("-", builtinSub)
	r.Register("*", builtinMul)
	r.Register("/", builtinDiv)
	r.Register("mod", builtinMod)
	r.Register("pow", builtinPow)
	r.Register("band", builtinBand)
	r.Register("bor", builtinBor)
	r.Register("bxor", builtinBxor)
	r.Register("sqrt", builtinSqrt)

	r.Register("<", builtinLt)
	r.Register("<=", builtinLe)
	r.Register("=", builtinEq)
	r.Register(">=", builtinGe)
	r.Register(">", builtinGt)

	return r
}

func (r *Registry) Register(name string, fn BuiltinFunc) {
	r.funcs[name] = fn
}

// Get retrieves a primitive by name.
func (r *Registry) Get(name string) (BuiltinFunc, bool) {
	fn, ok := r.funcs[name]
	return fn, ok
}

// Has reports whether name is a registered primitive.
func (r *Registry) Has(name string) bool {
	_, ok := r.funcs[name]
	return ok
}
