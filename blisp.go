// Package blisp implements the embeddable BLisp interpreter: parse,
// elaborate/type-check, and evaluate S-expression programs built from
// algebraic data types and a Pure/IO effect discipline. The three
// package-level functions below are the library's entire public
// surface, mirroring the original Rust crate's init/typing/eval.
package blisp

import (
	_ "embed"

	"github.com/fumisaitou/blisp/digest"
	"github.com/fumisaitou/blisp/eval"
	"github.com/fumisaitou/blisp/parser"
	"github.com/fumisaitou/blisp/semantics"
	"github.com/fumisaitou/blisp/types"
)

//go:embed prelude.lisp
var preludeSource string

// Outcome is one top-level expression's evaluation result: exactly one
// of Ok or Err is meaningful, selected by IsErr.
type Outcome struct {
	Ok    string
	Err   string
	IsErr bool
}

// Init parses the bundled prelude (file id 0) followed by the user's
// source text (file id 1) into a single expression forest. Any syntax
// error found in the prelude itself still surfaces with file id 0, per
// spec.md section 6's "the prelude's presence is part of the contract".
func Init(code string) ([]parser.Expr, *types.LispErr) {
	preludeExprs, err := parser.ParseProgram(preludeSource, types.FilePrelude)
	if err != nil {
		return nil, err.(*types.LispErr)
	}
	userExprs, err := parser.ParseProgram(code, types.FileUser)
	if err != nil {
		return nil, err.(*types.LispErr)
	}
	return append(preludeExprs, userExprs...), nil
}

// Typing elaborates an expression forest produced by Init into a typed
// Context (data declarations, constructors, and generalized top-level
// function schemes).
func Typing(exprs []parser.Expr) (*semantics.Context, *types.LispErr) {
	ctx, err := semantics.Elaborate(exprs)
	if err != nil {
		return nil, err.(*types.LispErr)
	}
	return ctx, nil
}

// Eval parses code (file id 2) as a sequence of top-level expressions
// and evaluates each against ctx in order. A Syntax Error or Typing
// Error anywhere in code aborts the whole call, per spec.md section 6;
// once every expression has type-checked, each is evaluated
// independently and contributes its own Ok/Err outcome, so a Runtime
// Error in one expression never hides the values already produced by
// earlier ones.
func Eval(code string, ctx *semantics.Context) ([]Outcome, *types.LispErr) {
	exprs, err := parser.ParseProgram(code, types.FileEval)
	if err != nil {
		return nil, err.(*types.LispErr)
	}
	if len(exprs) == 0 {
		return nil, nil
	}

	for _, e := range exprs {
		if _, _, terr := semantics.Infer(ctx, e); terr != nil {
			return nil, terr
		}
	}

	budget := eval.NewStepBudget()
	env := eval.NewEnvironment()
	outcomes := make([]Outcome, len(exprs))
	for i, e := range exprs {
		r := eval.Eval(e, ctx, env, budget)
		if r.IsErr {
			if budget.Remaining < 0 {
				// Step-budget exhaustion is reported at the enclosing
				// top-level expression, not the innermost node reached.
				r.Err.Pos = e.Position()
			}
			outcomes[i] = Outcome{Err: r.Err.Error(), IsErr: true}
			continue
		}
		outcomes[i] = Outcome{Ok: types.Display(r.Val)}
	}
	return outcomes, nil
}

// PreludeDigest hashes the bundled prelude's source text for host
// diagnostics (e.g. logging which prelude version an embedder shipped).
// It is never consulted during parsing, typing, or evaluation.
func PreludeDigest() digest.Digest {
	d, _ := digest.Sum("sha256", []byte(preludeSource))
	return d
}
