package semantics

import (
	"github.com/fumisaitou/blisp/parser"
	"github.com/fumisaitou/blisp/types"
)

func copyEnv(env map[string]types.Type) map[string]types.Type {
	out := make(map[string]types.Type, len(env)+2)
	for k, v := range env {
		out[k] = v
	}
	return out
}

// identifierType resolves a bare name to a type, trying, in order, the
// local lexical environment, top-level bindings (freshly instantiated
// per spec.md section 4.3's "each call site gets its own fresh
// instantiation"), the built-in scheme table, the structural Nil, and
// finally user-declared constructors. Referencing a name is always
// Pure; effect only enters once a function value is applied.
func identifierType(ctx *Context, localEnv map[string]types.Type, fresh *freshSupply, name string, pos types.Position) (types.Type, error) {
	if t, ok := localEnv[name]; ok {
		return t, nil
	}
	if b, ok := ctx.Bindings[name]; ok {
		return instantiate(fresh, b.Scheme.Vars, b.Scheme.Body), nil
	}
	if mk, ok := builtinSchemes[name]; ok {
		return mk(fresh), nil
	}
	if name == "Nil" {
		return types.TList{Elem: fresh.tvar("")}, nil
	}
	if ci, ok := ctx.Constructors[name]; ok {
		decl := ctx.Types[ci.DataName]
		target, mapping := instantiateData(fresh, decl)
		if ci.Arity() == 0 {
			return target, nil
		}
		params := make([]types.Type, len(ci.Fields))
		for i, f := range ci.Fields {
			params[i] = substitute(f, mapping)
		}
		return types.TFunc{Effect: types.Pure, Params: params, Ret: target}, nil
	}
	return nil, types.NewErr(types.TypingError, pos, "unbound identifier %q", name)
}

// infer computes an expression's type and the effect required to
// evaluate it, per spec.md section 4 (type inference) and section 4.4
// (the Pure/IO effect row).
func infer(ctx *Context, localEnv map[string]types.Type, fresh *freshSupply, e parser.Expr) (types.Type, types.Effect, error) {
	switch n := e.(type) {
	case *parser.IntExpr:
		return types.TInt, types.Pure, nil
	case *parser.BoolExpr:
		return types.TBool, types.Pure, nil
	case *parser.CharExpr:
		return types.TChar, types.Pure, nil
	case *parser.StringExpr:
		return types.TString, types.Pure, nil

	case *parser.QuoteExpr:
		elem := fresh.tvar("")
		for _, item := range n.Items {
			itemTy, _, err := infer(ctx, localEnv, fresh, item)
			if err != nil {
				return nil, types.Pure, err
			}
			if err := unify(item.Position(), elem, itemTy); err != nil {
				return nil, types.Pure, err
			}
		}
		return types.TList{Elem: elem}, types.Pure, nil

	case *parser.TupleExpr:
		elems := make([]types.Type, len(n.Items))
		effect := types.Pure
		for i, item := range n.Items {
			ty, eff, err := infer(ctx, localEnv, fresh, item)
			if err != nil {
				return nil, types.Pure, err
			}
			elems[i] = ty
			effect = types.Join(effect, eff)
		}
		return types.TTuple{Elems: elems}, effect, nil

	case *parser.IdentExpr:
		ty, err := identifierType(ctx, localEnv, fresh, n.Name, n.Pos)
		return ty, types.Pure, err

	case *parser.ListExpr:
		return inferList(ctx, localEnv, fresh, n)

	default:
		return nil, types.Pure, types.NewErr(types.TypingError, e.Position(), "malformed expression")
	}
}

func inferList(ctx *Context, localEnv map[string]types.Type, fresh *freshSupply, n *parser.ListExpr) (types.Type, types.Effect, error) {
	if len(n.Items) == 0 {
		return nil, types.Pure, types.NewErr(types.TypingError, n.Pos, "empty application")
	}
	if head, ok := n.Items[0].(*parser.IdentExpr); ok {
		switch head.Name {
		case "lambda":
			return inferLambda(ctx, localEnv, fresh, n)
		case "if":
			return inferIf(ctx, localEnv, fresh, n)
		case "let":
			return inferLet(ctx, localEnv, fresh, n)
		case "match":
			return inferMatch(ctx, localEnv, fresh, n)
		}
	}
	return inferApply(ctx, localEnv, fresh, n)
}

func inferLambda(ctx *Context, localEnv map[string]types.Type, fresh *freshSupply, n *parser.ListExpr) (types.Type, types.Effect, error) {
	if len(n.Items) != 3 {
		return nil, types.Pure, types.NewErr(types.TypingError, n.Pos, "lambda expects (lambda (params...) body)")
	}
	paramList, ok := n.Items[1].(*parser.ListExpr)
	if !ok {
		return nil, types.Pure, types.NewErr(types.TypingError, n.Items[1].Position(), "lambda parameter list must be a list of names")
	}
	env := copyEnv(localEnv)
	params := make([]types.Type, len(paramList.Items))
	for i, p := range paramList.Items {
		id, ok := p.(*parser.IdentExpr)
		if !ok {
			return nil, types.Pure, types.NewErr(types.TypingError, p.Position(), "lambda parameter must be an identifier")
		}
		v := fresh.tvar(id.Name)
		params[i] = v
		env[id.Name] = v
	}
	bodyTy, bodyEffect, err := infer(ctx, env, fresh, n.Items[2])
	if err != nil {
		return nil, types.Pure, err
	}
	return types.TFunc{Effect: bodyEffect, Params: params, Ret: bodyTy}, types.Pure, nil
}

func inferIf(ctx *Context, localEnv map[string]types.Type, fresh *freshSupply, n *parser.ListExpr) (types.Type, types.Effect, error) {
	if len(n.Items) != 4 {
		return nil, types.Pure, types.NewErr(types.TypingError, n.Pos, "if expects (if cond then else)")
	}
	condTy, condEff, err := infer(ctx, localEnv, fresh, n.Items[1])
	if err != nil {
		return nil, types.Pure, err
	}
	if err := unify(n.Items[1].Position(), condTy, types.TBool); err != nil {
		return nil, types.Pure, err
	}
	thenTy, thenEff, err := infer(ctx, localEnv, fresh, n.Items[2])
	if err != nil {
		return nil, types.Pure, err
	}
	elseTy, elseEff, err := infer(ctx, localEnv, fresh, n.Items[3])
	if err != nil {
		return nil, types.Pure, err
	}
	if err := unify(n.Pos, thenTy, elseTy); err != nil {
		return nil, types.Pure, err
	}
	return thenTy, effectJoin(condEff, thenEff, elseEff), nil
}

func inferLet(ctx *Context, localEnv map[string]types.Type, fresh *freshSupply, n *parser.ListExpr) (types.Type, types.Effect, error) {
	if len(n.Items) != 3 {
		return nil, types.Pure, types.NewErr(types.TypingError, n.Pos, "let expects (let ((name expr)...) body)")
	}
	bindingList, ok := n.Items[1].(*parser.ListExpr)
	if !ok {
		return nil, types.Pure, types.NewErr(types.TypingError, n.Items[1].Position(), "let bindings must be a list of (name expr) pairs")
	}
	env := copyEnv(localEnv)
	effect := types.Pure
	for _, b := range bindingList.Items {
		pair, ok := b.(*parser.ListExpr)
		if !ok || len(pair.Items) != 2 {
			return nil, types.Pure, types.NewErr(types.TypingError, b.Position(), "let binding must be (name expr)")
		}
		id, ok := pair.Items[0].(*parser.IdentExpr)
		if !ok {
			return nil, types.Pure, types.NewErr(types.TypingError, pair.Items[0].Position(), "let binding name must be an identifier")
		}
		valTy, valEff, err := infer(ctx, env, fresh, pair.Items[1])
		if err != nil {
			return nil, types.Pure, err
		}
		env[id.Name] = valTy
		effect = types.Join(effect, valEff)
	}
	bodyTy, bodyEff, err := infer(ctx, env, fresh, n.Items[2])
	if err != nil {
		return nil, types.Pure, err
	}
	return bodyTy, types.Join(effect, bodyEff), nil
}

func inferMatch(ctx *Context, localEnv map[string]types.Type, fresh *freshSupply, n *parser.ListExpr) (types.Type, types.Effect, error) {
	if len(n.Items) < 3 {
		return nil, types.Pure, types.NewErr(types.TypingError, n.Pos, "match expects (match scrutinee (pattern body)...)")
	}
	scrutTy, scrutEff, err := infer(ctx, localEnv, fresh, n.Items[1])
	if err != nil {
		return nil, types.Pure, err
	}
	resultTy := fresh.tvar("")
	effect := scrutEff
	for _, a := range n.Items[2:] {
		arm, ok := a.(*parser.ListExpr)
		if !ok || len(arm.Items) != 2 {
			return nil, types.Pure, types.NewErr(types.TypingError, a.Position(), "match arm must be (pattern body)")
		}
		env := copyEnv(localEnv)
		if err := bindPattern(ctx, fresh, arm.Items[0], scrutTy, env); err != nil {
			return nil, types.Pure, err
		}
		armTy, armEff, err := infer(ctx, env, fresh, arm.Items[1])
		if err != nil {
			return nil, types.Pure, err
		}
		if err := unify(arm.Items[1].Position(), resultTy, armTy); err != nil {
			return nil, types.Pure, err
		}
		effect = types.Join(effect, armEff)
	}
	return resultTy, effect, nil
}

func inferApply(ctx *Context, localEnv map[string]types.Type, fresh *freshSupply, n *parser.ListExpr) (types.Type, types.Effect, error) {
	headTy, headEff, err := infer(ctx, localEnv, fresh, n.Items[0])
	if err != nil {
		return nil, types.Pure, err
	}
	fn, ok := types.Prune(headTy).(types.TFunc)
	if !ok {
		return nil, types.Pure, types.NewErr(types.TypingError, n.Items[0].Position(), "cannot apply non-function of type %s", headTy)
	}
	args := n.Items[1:]
	if len(args) != len(fn.Params) {
		return nil, types.Pure, types.NewErr(types.TypingError, n.Pos, "function expects %d argument(s), got %d", len(fn.Params), len(args))
	}
	effect := types.Join(headEff, fn.Effect)
	for i, a := range args {
		argTy, argEff, err := infer(ctx, localEnv, fresh, a)
		if err != nil {
			return nil, types.Pure, err
		}
		if err := unify(a.Position(), fn.Params[i], argTy); err != nil {
			return nil, types.Pure, err
		}
		effect = types.Join(effect, argEff)
	}
	return fn.Ret, effect, nil
}
