// Package eval tree-walks a parsed, already-elaborated Expr forest to
// produce Values, adapted from the teacher's eval.Eval (eval/eval.go):
// one dispatch switch over node kind, a Result carrying either a Value
// or a fatal error, and a cooperative step budget standing in for the
// teacher's per-task tick counter.
package eval

import (
	"math/big"

	"github.com/fumisaitou/blisp/builtins"
	"github.com/fumisaitou/blisp/parser"
	"github.com/fumisaitou/blisp/semantics"
	"github.com/fumisaitou/blisp/types"
)

// Eval evaluates a single already-type-checked expression. The type
// checker having already accepted the program is relied on throughout:
// a failed type assertion here (e.g. an `if` condition that isn't a
// BoolValue) indicates an elaborator bug, not user input, and is still
// surfaced as a Runtime Error rather than a panic.
func Eval(e parser.Expr, ctx *semantics.Context, env *Environment, budget *StepBudget) types.Result {
	if err := budget.Consume(e.Position()); err != nil {
		return types.ErrOf(err)
	}

	switch n := e.(type) {
	case *parser.IntExpr:
		return types.Ok(n.Val)
	case *parser.BoolExpr:
		return types.Ok(types.NewBool(n.Val))
	case *parser.CharExpr:
		return types.Ok(types.NewChar(n.Val))
	case *parser.StringExpr:
		return types.Ok(types.NewStr(n.Val))
	case *parser.QuoteExpr:
		return evalQuote(n, ctx, env, budget)
	case *parser.TupleExpr:
		elems := make([]types.Value, len(n.Items))
		for i, item := range n.Items {
			r := Eval(item, ctx, env, budget)
			if r.IsErr {
				return r
			}
			elems[i] = r.Val
		}
		return types.Ok(types.TupleValue{Elems: elems})
	case *parser.IdentExpr:
		return lookupValue(ctx, env, n.Name, n.Pos)
	case *parser.ListExpr:
		return evalList(n, ctx, env, budget)
	default:
		return types.ErrAt(e.Position(), "malformed expression")
	}
}

// evalQuote builds the Cons/Nil chain a quoted list desugars to
// (spec.md section 4.1), evaluating each item left to right and
// linking right to left.
func evalQuote(n *parser.QuoteExpr, ctx *semantics.Context, env *Environment, budget *StepBudget) types.Result {
	vals := make([]types.Value, len(n.Items))
	for i, item := range n.Items {
		r := Eval(item, ctx, env, budget)
		if r.IsErr {
			return r
		}
		vals[i] = r.Val
	}
	acc := types.Value(types.DataValue{Ctor: "Nil"})
	for i := len(vals) - 1; i >= 0; i-- {
		acc = types.DataValue{Ctor: "Cons", Fields: []types.Value{vals[i], acc}}
	}
	return types.Ok(acc)
}

func evalList(n *parser.ListExpr, ctx *semantics.Context, env *Environment, budget *StepBudget) types.Result {
	if head, ok := n.Items[0].(*parser.IdentExpr); ok {
		switch head.Name {
		case "lambda":
			return evalLambda(n, env)
		case "if":
			return evalIf(n, ctx, env, budget)
		case "let":
			return evalLet(n, ctx, env, budget)
		case "match":
			return evalMatch(n, ctx, env, budget)
		}
	}
	headResult := Eval(n.Items[0], ctx, env, budget)
	if headResult.IsErr {
		return headResult
	}
	args := make([]types.Value, len(n.Items)-1)
	for i, a := range n.Items[1:] {
		r := Eval(a, ctx, env, budget)
		if r.IsErr {
			return r
		}
		args[i] = r.Val
	}
	return Apply(headResult.Val, args, n.Pos, ctx, budget)
}

func evalLambda(n *parser.ListExpr, env *Environment) types.Result {
	paramList := n.Items[1].(*parser.ListExpr)
	params := make([]string, len(paramList.Items))
	for i, p := range paramList.Items {
		params[i] = p.(*parser.IdentExpr).Name
	}
	return types.Ok(types.ClosureValue{Params: params, Body: n.Items[2], Env: env})
}

func evalIf(n *parser.ListExpr, ctx *semantics.Context, env *Environment, budget *StepBudget) types.Result {
	cond := Eval(n.Items[1], ctx, env, budget)
	if cond.IsErr {
		return cond
	}
	bv, ok := cond.Val.(types.BoolValue)
	if !ok {
		return types.ErrAt(n.Items[1].Position(), "if condition is not a boolean")
	}
	if bv.Val {
		return Eval(n.Items[2], ctx, env, budget)
	}
	return Eval(n.Items[3], ctx, env, budget)
}

func evalLet(n *parser.ListExpr, ctx *semantics.Context, env *Environment, budget *StepBudget) types.Result {
	bindingList := n.Items[1].(*parser.ListExpr)
	letEnv := NewNestedEnvironment(env)
	for _, b := range bindingList.Items {
		pair := b.(*parser.ListExpr)
		name := pair.Items[0].(*parser.IdentExpr).Name
		r := Eval(pair.Items[1], ctx, letEnv, budget)
		if r.IsErr {
			return r
		}
		letEnv.Define(name, r.Val)
	}
	return Eval(n.Items[2], ctx, letEnv, budget)
}

func evalMatch(n *parser.ListExpr, ctx *semantics.Context, env *Environment, budget *StepBudget) types.Result {
	scrut := Eval(n.Items[1], ctx, env, budget)
	if scrut.IsErr {
		return scrut
	}
	for _, a := range n.Items[2:] {
		arm := a.(*parser.ListExpr)
		binds, ok := tryMatch(ctx, arm.Items[0], scrut.Val)
		if !ok {
			continue
		}
		armEnv := NewNestedEnvironment(env)
		for name, v := range binds {
			armEnv.Define(name, v)
		}
		return Eval(arm.Items[1], ctx, armEnv, budget)
	}
	return types.ErrAt(n.Pos, "no pattern matched value %s", types.Display(scrut.Val))
}

// tryMatch reports whether pat structurally matches val, returning the
// bindings it would introduce. It never mutates env directly so a
// failed arm leaves no partial bindings behind.
func tryMatch(ctx *semantics.Context, pat parser.Expr, val types.Value) (map[string]types.Value, bool) {
	switch p := pat.(type) {
	case *parser.IntExpr:
		return map[string]types.Value{}, types.Equal(val, p.Val)
	case *parser.BoolExpr:
		return map[string]types.Value{}, types.Equal(val, types.NewBool(p.Val))
	case *parser.CharExpr:
		return map[string]types.Value{}, types.Equal(val, types.NewChar(p.Val))
	case *parser.StringExpr:
		return map[string]types.Value{}, types.Equal(val, types.NewStr(p.Val))
	case *parser.TupleExpr:
		tv, ok := val.(types.TupleValue)
		if !ok || len(tv.Elems) != len(p.Items) {
			return nil, false
		}
		out := map[string]types.Value{}
		for i, item := range p.Items {
			sub, ok := tryMatch(ctx, item, tv.Elems[i])
			if !ok {
				return nil, false
			}
			for k, v := range sub {
				out[k] = v
			}
		}
		return out, true
	case *parser.IdentExpr:
		if p.Name == "_" {
			return map[string]types.Value{}, true
		}
		if p.Name == "Nil" {
			dv, ok := val.(types.DataValue)
			return map[string]types.Value{}, ok && dv.Ctor == "Nil"
		}
		if _, isCtor := ctx.Constructors[p.Name]; isCtor {
			dv, ok := val.(types.DataValue)
			return map[string]types.Value{}, ok && dv.Ctor == p.Name && len(dv.Fields) == 0
		}
		return map[string]types.Value{p.Name: val}, true
	case *parser.ListExpr:
		head := p.Items[0].(*parser.IdentExpr)
		args := p.Items[1:]
		if head.Name == "Cons" {
			dv, ok := val.(types.DataValue)
			if !ok || dv.Ctor != "Cons" {
				return nil, false
			}
			out := map[string]types.Value{}
			for i, a := range args {
				sub, ok := tryMatch(ctx, a, dv.Fields[i])
				if !ok {
					return nil, false
				}
				for k, v := range sub {
					out[k] = v
				}
			}
			return out, true
		}
		dv, ok := val.(types.DataValue)
		if !ok || dv.Ctor != head.Name || len(dv.Fields) != len(args) {
			return nil, false
		}
		out := map[string]types.Value{}
		for i, a := range args {
			sub, ok := tryMatch(ctx, a, dv.Fields[i])
			if !ok {
				return nil, false
			}
			for k, v := range sub {
				out[k] = v
			}
		}
		return out, true
	default:
		return nil, false
	}
}

// lookupValue resolves a bare identifier at runtime in the same order
// the type checker resolves it statically (spec.md section 4.4): the
// lexical environment, then top-level bindings (built into a closure
// and cached on first reference so recursive and mutually recursive
// top-level functions resolve through one another), then built-ins,
// then constructors.
func lookupValue(ctx *semantics.Context, env *Environment, name string, pos types.Position) types.Result {
	if v, ok := env.Get(name); ok {
		return types.Ok(v)
	}
	root := env.Root()
	if b, ok := ctx.Bindings[name]; ok {
		closure := types.ClosureValue{Params: b.Params, Body: b.Body, Env: root, Name: name}
		root.Define(name, closure)
		return types.Ok(closure)
	}
	if name == "Nil" {
		return types.Ok(types.DataValue{Ctor: "Nil"})
	}
	if name == "call-rust" || name == "Cons" || builtins.Default.Has(name) {
		return types.Ok(types.PrimValue{Name: name})
	}
	if ci, ok := ctx.Constructors[name]; ok {
		if ci.Arity() == 0 {
			return types.Ok(types.DataValue{Ctor: name})
		}
		return types.Ok(types.PrimValue{Name: name})
	}
	return types.ErrAt(pos, "unbound identifier %q", name)
}

// Apply invokes a function value on already-evaluated arguments.
func Apply(fn types.Value, args []types.Value, pos types.Position, ctx *semantics.Context, budget *StepBudget) types.Result {
	switch f := fn.(type) {
	case types.ClosureValue:
		body, ok := f.Body.(parser.Expr)
		if !ok {
			return types.ErrAt(pos, "malformed closure")
		}
		parentEnv, ok := f.Env.(*Environment)
		if !ok {
			return types.ErrAt(pos, "malformed closure")
		}
		callEnv := NewNestedEnvironment(parentEnv)
		for i, p := range f.Params {
			callEnv.Define(p, args[i])
		}
		return Eval(body, ctx, callEnv, budget)
	case types.PrimValue:
		if f.Name == "call-rust" {
			return callRust(ctx, args, pos)
		}
		if _, ok := ctx.Constructors[f.Name]; ok || f.Name == "Cons" {
			return types.Ok(types.DataValue{Ctor: f.Name, Fields: args})
		}
		if prim, ok := builtins.Default.Get(f.Name); ok {
			return prim(args, pos)
		}
		return types.ErrAt(pos, "unknown primitive %q", f.Name)
	default:
		return types.ErrAt(pos, "value %s is not callable", types.Display(fn))
	}
}

// callRust invokes the single installed host callback (spec.md section
// 4.5). A Pure/IO violation calling it is rejected before evaluation
// ever reaches here; an unset callback is still a Runtime Error rather
// than a panic, since a host may legitimately evaluate call-rust-using
// code before installing one.
func callRust(ctx *semantics.Context, args []types.Value, pos types.Position) types.Result {
	if ctx.Callback == nil {
		return types.ErrAt(pos, "call-rust invoked with no host callback installed")
	}
	if len(args) != 3 {
		return types.ErrAt(pos, "call-rust expects 3 arguments, got %d", len(args))
	}
	ints := make([]*big.Int, 3)
	for i, a := range args {
		iv, ok := a.(types.IntValue)
		if !ok {
			return types.ErrAt(pos, "call-rust expects integer arguments")
		}
		ints[i] = iv.Val
	}
	result, ok := ctx.Callback(ints[0], ints[1], ints[2])
	if !ok {
		return types.Ok(types.DataValue{Ctor: "None"})
	}
	return types.Ok(types.DataValue{Ctor: "Some", Fields: []types.Value{types.NewIntFromBig(result)}})
}
