package semantics

import (
	"github.com/fumisaitou/blisp/parser"
	"github.com/fumisaitou/blisp/types"
)

// bindPattern checks a single match arm's pattern against the inferred
// scrutinee type scrutTy, binding pattern variables into env as it
// goes. Per spec.md section 4.3, pattern exhaustiveness is not
// required here; a non-matching value at runtime is a fatal Runtime
// Error (see the eval package).
func bindPattern(ctx *Context, fresh *freshSupply, pat parser.Expr, scrutTy types.Type, env map[string]types.Type) error {
	switch p := pat.(type) {
	case *parser.IntExpr:
		return unify(p.Pos, scrutTy, types.TInt)
	case *parser.BoolExpr:
		return unify(p.Pos, scrutTy, types.TBool)
	case *parser.CharExpr:
		return unify(p.Pos, scrutTy, types.TChar)
	case *parser.StringExpr:
		return unify(p.Pos, scrutTy, types.TString)
	case *parser.TupleExpr:
		elems := make([]types.Type, len(p.Items))
		for i := range elems {
			elems[i] = fresh.tvar("")
		}
		if err := unify(p.Pos, scrutTy, types.TTuple{Elems: elems}); err != nil {
			return err
		}
		for i, item := range p.Items {
			if err := bindPattern(ctx, fresh, item, elems[i], env); err != nil {
				return err
			}
		}
		return nil
	case *parser.IdentExpr:
		return bindIdentPattern(ctx, fresh, p, scrutTy, env)
	case *parser.ListExpr:
		return bindCtorPattern(ctx, fresh, p, scrutTy, env)
	default:
		return types.NewErr(types.TypingError, pat.Position(), "malformed pattern")
	}
}

func bindIdentPattern(ctx *Context, fresh *freshSupply, p *parser.IdentExpr, scrutTy types.Type, env map[string]types.Type) error {
	if p.Name == "_" {
		return nil
	}
	if p.Name == "Nil" {
		elem := fresh.tvar("")
		return unify(p.Pos, scrutTy, types.TList{Elem: elem})
	}
	if ci, ok := ctx.Constructors[p.Name]; ok {
		if ci.Arity() != 0 {
			return types.NewErr(types.TypingError, p.Pos, "constructor %q expects %d argument(s)", p.Name, ci.Arity())
		}
		decl := ctx.Types[ci.DataName]
		target, _ := instantiateData(fresh, decl)
		return unify(p.Pos, scrutTy, target)
	}
	env[p.Name] = scrutTy
	return nil
}

func bindCtorPattern(ctx *Context, fresh *freshSupply, p *parser.ListExpr, scrutTy types.Type, env map[string]types.Type) error {
	if len(p.Items) == 0 {
		return types.NewErr(types.TypingError, p.Pos, "malformed pattern")
	}
	head, ok := p.Items[0].(*parser.IdentExpr)
	if !ok {
		return types.NewErr(types.TypingError, p.Pos, "malformed constructor pattern")
	}
	args := p.Items[1:]

	if head.Name == "Cons" {
		if len(args) != 2 {
			return types.NewErr(types.TypingError, p.Pos, "Cons pattern expects 2 arguments")
		}
		elem := fresh.tvar("")
		if err := unify(p.Pos, scrutTy, types.TList{Elem: elem}); err != nil {
			return err
		}
		if err := bindPattern(ctx, fresh, args[0], elem, env); err != nil {
			return err
		}
		return bindPattern(ctx, fresh, args[1], types.TList{Elem: elem}, env)
	}

	ci, ok := ctx.Constructors[head.Name]
	if !ok {
		return types.NewErr(types.TypingError, p.Pos, "unknown constructor %q", head.Name)
	}
	if ci.Arity() != len(args) {
		return types.NewErr(types.TypingError, p.Pos, "constructor %q expects %d argument(s), got %d", head.Name, ci.Arity(), len(args))
	}
	decl := ctx.Types[ci.DataName]
	target, mapping := instantiateData(fresh, decl)
	if err := unify(p.Pos, scrutTy, target); err != nil {
		return err
	}
	for i, a := range args {
		fieldTy := substitute(ci.Fields[i], mapping)
		if err := bindPattern(ctx, fresh, a, fieldTy, env); err != nil {
			return err
		}
	}
	return nil
}

// instantiateData builds a fresh TData{Name, Args} for a data
// declaration plus the substitution mapping from the declaration's own
// parameter variables to the fresh ones used in Args, so caller code
// can instantiate constructor field types consistently.
func instantiateData(fresh *freshSupply, decl *DataDecl) (types.Type, map[*types.TVar]types.Type) {
	mapping := make(map[*types.TVar]types.Type, len(decl.ParamVars))
	args := make([]types.Type, len(decl.ParamVars))
	for i, pv := range decl.ParamVars {
		f := fresh.tvar(pv.Name)
		mapping[pv] = f
		args[i] = f
	}
	return types.TData{Name: decl.Name, Args: args}, mapping
}
