package semantics

import "github.com/fumisaitou/blisp/types"

// substitute recursively replaces type variables present as keys in
// mapping (compared by pointer identity) with their mapped type. It is
// used both for fresh call-site instantiation (flexible replacements)
// and for the rigid self-check (rigid replacements).
func substitute(t types.Type, mapping map[*types.TVar]types.Type) types.Type {
	switch x := types.Prune(t).(type) {
	case *types.TVar:
		if r, ok := mapping[x]; ok {
			return r
		}
		return x
	case types.TTuple:
		elems := make([]types.Type, len(x.Elems))
		for i, e := range x.Elems {
			elems[i] = substitute(e, mapping)
		}
		return types.TTuple{Elems: elems}
	case types.TList:
		return types.TList{Elem: substitute(x.Elem, mapping)}
	case types.TData:
		args := make([]types.Type, len(x.Args))
		for i, a := range x.Args {
			args[i] = substitute(a, mapping)
		}
		return types.TData{Name: x.Name, Args: args}
	case types.TFunc:
		params := make([]types.Type, len(x.Params))
		for i, p := range x.Params {
			params[i] = substitute(p, mapping)
		}
		return types.TFunc{Effect: x.Effect, Params: params, Ret: substitute(x.Ret, mapping)}
	default:
		return x
	}
}

// instantiate creates a fresh-variable copy of a scheme for a call
// site, per spec.md section 4.3 ("Each call site fresh-instantiates the
// scheme"). The fresh variables are ordinary flexible variables.
func instantiate(fresh *freshSupply, vars []*types.TVar, body types.Type) types.Type {
	mapping := make(map[*types.TVar]types.Type, len(vars))
	for _, v := range vars {
		mapping[v] = fresh.tvar(v.Name)
	}
	return substitute(body, mapping)
}

// instantiateRigid creates a fresh-rigid-variable copy of a scheme for
// checking the declaring body itself: the body must type-check for
// every instantiation of its declared quantified variables, so those
// variables are skolemized rather than left free to unify with
// whatever the body happens to touch first.
func instantiateRigid(fresh *freshSupply, vars []*types.TVar, body types.Type) types.Type {
	mapping := make(map[*types.TVar]types.Type, len(vars))
	for _, v := range vars {
		mapping[v] = fresh.rigid(v.Name)
	}
	return substitute(body, mapping)
}

// occurs reports whether v occurs free within t (after pruning), used
// to reject e.g. unifying alpha with (Option alpha).
func occurs(v *types.TVar, t types.Type) bool {
	switch x := types.Prune(t).(type) {
	case *types.TVar:
		return x == v
	case types.TTuple:
		for _, e := range x.Elems {
			if occurs(v, e) {
				return true
			}
		}
		return false
	case types.TList:
		return occurs(v, x.Elem)
	case types.TData:
		for _, a := range x.Args {
			if occurs(v, a) {
				return true
			}
		}
		return false
	case types.TFunc:
		for _, p := range x.Params {
			if occurs(v, p) {
				return true
			}
		}
		return occurs(v, x.Ret)
	default:
		return false
	}
}

// unify performs classic Robinson unification extended with the
// effect-row rule from spec.md section 4.3: a caller expecting effect
// e may unify with a callee of effect e' only if e' <= e.
func unify(pos types.Position, a, b types.Type) error {
	a, b = types.Prune(a), types.Prune(b)

	av, aIsVar := a.(*types.TVar)
	bv, bIsVar := b.(*types.TVar)
	switch {
	case aIsVar && bIsVar:
		return unifyVars(pos, av, bv)
	case aIsVar:
		return bindVarToType(pos, av, b)
	case bIsVar:
		return bindVarToType(pos, bv, a)
	}

	switch x := a.(type) {
	case types.TCon:
		y, ok := b.(types.TCon)
		if !ok || x.Name != y.Name {
			return types.NewErr(types.TypingError, pos, "cannot unify %s with %s", a, b)
		}
		return nil
	case types.TTuple:
		y, ok := b.(types.TTuple)
		if !ok || len(x.Elems) != len(y.Elems) {
			return types.NewErr(types.TypingError, pos, "cannot unify %s with %s", a, b)
		}
		for i := range x.Elems {
			if err := unify(pos, x.Elems[i], y.Elems[i]); err != nil {
				return err
			}
		}
		return nil
	case types.TList:
		y, ok := b.(types.TList)
		if !ok {
			return types.NewErr(types.TypingError, pos, "cannot unify %s with %s", a, b)
		}
		return unify(pos, x.Elem, y.Elem)
	case types.TData:
		y, ok := b.(types.TData)
		if !ok || x.Name != y.Name || len(x.Args) != len(y.Args) {
			return types.NewErr(types.TypingError, pos, "cannot unify %s with %s", a, b)
		}
		for i := range x.Args {
			if err := unify(pos, x.Args[i], y.Args[i]); err != nil {
				return err
			}
		}
		return nil
	case types.TFunc:
		y, ok := b.(types.TFunc)
		if !ok || len(x.Params) != len(y.Params) {
			return types.NewErr(types.TypingError, pos, "cannot unify %s with %s", a, b)
		}
		// y is the callee actually being produced/used where x is
		// expected; the callee's effect must be <= the expected effect.
		if !y.Effect.LE(x.Effect) {
			return types.NewErr(types.TypingError, pos, "effect mismatch: %s function cannot be used where %s is required (Pure function calls IO)", y.Effect, x.Effect)
		}
		for i := range x.Params {
			if err := unify(pos, x.Params[i], y.Params[i]); err != nil {
				return err
			}
		}
		return unify(pos, x.Ret, y.Ret)
	default:
		return types.NewErr(types.TypingError, pos, "cannot unify %s with %s", a, b)
	}
}

// unifyVars unifies two distinct type variables. A rigid variable is
// always kept as the representative so a later attempt to bind it to a
// concrete type still goes through bindVarToType's rigidity check.
func unifyVars(pos types.Position, v1, v2 *types.TVar) error {
	if v1 == v2 {
		return nil
	}
	if v1.Rigid && v2.Rigid {
		return types.NewErr(types.TypingError, pos, "cannot unify distinct quantified type variables %s and %s", v1, v2)
	}
	if v1.Rigid {
		return link(v2, v1)
	}
	return link(v1, v2)
}

// bindVarToType binds a flexible variable to a non-variable type. A
// rigid variable can never be bound to a concrete type: that would mean
// the declared signature was not general enough for its own body.
func bindVarToType(pos types.Position, v *types.TVar, t types.Type) error {
	if v.Rigid {
		return types.NewErr(types.TypingError, pos, "cannot unify quantified type variable %s with concrete type %s; the declared signature is not general enough", v, t)
	}
	if occurs(v, t) {
		return types.NewErr(types.TypingError, pos, "occurs check failed: %s occurs in %s", v, t)
	}
	return link(v, t)
}

func link(v *types.TVar, t types.Type) error {
	v.Link = &t
	return nil
}

// effectJoin folds Join across a slice of effects, defaulting to Pure.
func effectJoin(effs ...types.Effect) types.Effect {
	e := types.Pure
	for _, x := range effs {
		e = types.Join(e, x)
	}
	return e
}
