package semantics

import "github.com/fumisaitou/blisp/types"

// builtinSig is a built-in's type, described independently of any
// quantified variables it may need (those are created fresh per call
// from the supplied freshSupply). Only `Cons` needs a variable.
type builtinSig func(fresh *freshSupply) types.Type

// builtinSchemes gives the fixed schemes named in spec.md section 4.3.
// The evaluator's `builtins` package implements the matching behavior
// for the arithmetic and comparison entries (`Cons` and `call-rust` are
// handled in the eval package); the two tables are kept in lockstep by
// hand, the same way the
// teacher keeps its builtins.Registry name table and its dispatch
// switch in eval.Eval in lockstep.
var builtinSchemes = map[string]builtinSig{
	"+":    binIntOp,
	"-":    binIntOp,
	"*":    binIntOp,
	"/":    binIntOp,
	"mod":  binIntOp,
	"pow":  binIntOp,
	"band": binIntOp,
	"bor":  binIntOp,
	"bxor": binIntOp,
	"sqrt": func(fresh *freshSupply) types.Type {
		return types.TFunc{Effect: types.Pure, Params: []types.Type{types.TInt}, Ret: types.TData{Name: "Option", Args: []types.Type{types.TInt}}}
	},
	"<":  cmpOp,
	"<=": cmpOp,
	"=":  cmpOp,
	">=": cmpOp,
	">":  cmpOp,
	"Cons": func(fresh *freshSupply) types.Type {
		a := fresh.tvar("a")
		return types.TFunc{Effect: types.Pure, Params: []types.Type{a, types.TList{Elem: a}}, Ret: types.TList{Elem: a}}
	},
	"call-rust": func(fresh *freshSupply) types.Type {
		return types.TFunc{Effect: types.IO, Params: []types.Type{types.TInt, types.TInt, types.TInt}, Ret: types.TData{Name: "Option", Args: []types.Type{types.TInt}}}
	},
}

func binIntOp(fresh *freshSupply) types.Type {
	return types.TFunc{Effect: types.Pure, Params: []types.Type{types.TInt, types.TInt}, Ret: types.TInt}
}

func cmpOp(fresh *freshSupply) types.Type {
	return types.TFunc{Effect: types.Pure, Params: []types.Type{types.TInt, types.TInt}, Ret: types.TBool}
}
