package semantics

import (
	"github.com/fumisaitou/blisp/parser"
	"github.com/fumisaitou/blisp/types"
)

// Elaborate turns a parsed top-level expression forest into a typed
// Context, per spec.md section 4.2's two-pass algorithm: data
// declarations are fully registered (and kind-checked) before any
// function signature is parsed, and every function signature is
// registered before any function body is checked, so mutual recursion
// between top-level bindings — and between data declarations — just
// works (spec.md section 6, "Cyclic references").
func Elaborate(exprs []parser.Expr) (*Context, error) {
	ctx := newContext()
	fresh := &freshSupply{}

	var dataForms, defunForms []*parser.ListExpr
	for _, e := range exprs {
		n, ok := e.(*parser.ListExpr)
		if !ok || len(n.Items) == 0 {
			return nil, types.NewErr(types.TypingError, e.Position(), "top-level form must be (data ...), (defun ...), or (export ...)")
		}
		head, ok := n.Items[0].(*parser.IdentExpr)
		if !ok {
			return nil, types.NewErr(types.TypingError, n.Pos, "top-level form must begin with an identifier")
		}
		switch head.Name {
		case "data":
			dataForms = append(dataForms, n)
		case "defun", "export":
			defunForms = append(defunForms, n)
		default:
			return nil, types.NewErr(types.TypingError, n.Pos, "unrecognized top-level form %q", head.Name)
		}
	}

	if err := registerDataHeaders(ctx, fresh, dataForms); err != nil {
		return nil, err
	}
	if err := registerDataCtors(ctx, fresh, dataForms); err != nil {
		return nil, err
	}
	if err := registerSignatures(ctx, fresh, defunForms); err != nil {
		return nil, err
	}
	if err := checkBodies(ctx, fresh, defunForms); err != nil {
		return nil, err
	}
	return ctx, nil
}

func registerDataHeaders(ctx *Context, fresh *freshSupply, forms []*parser.ListExpr) error {
	for _, n := range forms {
		if len(n.Items) < 2 {
			return types.NewErr(types.TypingError, n.Pos, "malformed data declaration")
		}
		header, ok := n.Items[1].(*parser.ListExpr)
		if !ok || len(header.Items) == 0 {
			return types.NewErr(types.TypingError, n.Pos, "data declaration header must be (Name param...)")
		}
		nameID, ok := header.Items[0].(*parser.IdentExpr)
		if !ok {
			return types.NewErr(types.TypingError, header.Pos, "data name must be an identifier")
		}
		if _, exists := ctx.Types[nameID.Name]; exists {
			return types.NewErr(types.TypingError, header.Pos, "data type %q declared more than once", nameID.Name)
		}
		params := make([]string, len(header.Items)-1)
		paramVars := make([]*types.TVar, len(header.Items)-1)
		for i, p := range header.Items[1:] {
			pid, ok := p.(*parser.IdentExpr)
			if !ok {
				return types.NewErr(types.TypingError, p.Position(), "data type parameter must be an identifier")
			}
			params[i] = pid.Name
			paramVars[i] = fresh.tvar(pid.Name)
		}
		ctx.Types[nameID.Name] = &DataDecl{Name: nameID.Name, Params: params, ParamVars: paramVars}
	}
	return nil
}

func registerDataCtors(ctx *Context, fresh *freshSupply, forms []*parser.ListExpr) error {
	for _, n := range forms {
		header := n.Items[1].(*parser.ListExpr)
		nameID := header.Items[0].(*parser.IdentExpr)
		decl := ctx.Types[nameID.Name]

		tc := &typeParseCtx{ctx: ctx, params: map[string]bool{}, quant: map[string]*types.TVar{}, fresh: fresh}
		for i, p := range decl.Params {
			tc.quant[p] = decl.ParamVars[i]
		}

		for _, c := range n.Items[2:] {
			ctorExpr, ok := c.(*parser.ListExpr)
			if !ok || len(ctorExpr.Items) == 0 {
				return types.NewErr(types.TypingError, c.Position(), "malformed constructor declaration")
			}
			ctorName, ok := ctorExpr.Items[0].(*parser.IdentExpr)
			if !ok {
				return types.NewErr(types.TypingError, ctorExpr.Pos, "constructor name must be an identifier")
			}
			if _, exists := ctx.Constructors[ctorName.Name]; exists {
				return types.NewErr(types.TypingError, ctorExpr.Pos, "constructor %q declared more than once", ctorName.Name)
			}
			fields := make([]types.Type, len(ctorExpr.Items)-1)
			for i, f := range ctorExpr.Items[1:] {
				t, err := parseType(tc, f)
				if err != nil {
					return err
				}
				fields[i] = t
			}
			ctx.Constructors[ctorName.Name] = &CtorInfo{DataName: decl.Name, Fields: fields}
			decl.Ctors = append(decl.Ctors, ctorName.Name)
		}
	}
	return nil
}

func registerSignatures(ctx *Context, fresh *freshSupply, forms []*parser.ListExpr) error {
	for _, n := range forms {
		if len(n.Items) != 5 {
			return types.NewErr(types.TypingError, n.Pos, "malformed function declaration, expected (defun|export Name (params...) Scheme Body)")
		}
		head := n.Items[0].(*parser.IdentExpr)
		nameID, ok := n.Items[1].(*parser.IdentExpr)
		if !ok {
			return types.NewErr(types.TypingError, n.Items[1].Position(), "function name must be an identifier")
		}
		if _, exists := ctx.Bindings[nameID.Name]; exists {
			return types.NewErr(types.TypingError, n.Pos, "function %q declared more than once", nameID.Name)
		}
		paramList, ok := n.Items[2].(*parser.ListExpr)
		if !ok {
			return types.NewErr(types.TypingError, n.Items[2].Position(), "function parameter list must be a list of names")
		}
		params := make([]string, len(paramList.Items))
		for i, p := range paramList.Items {
			pid, ok := p.(*parser.IdentExpr)
			if !ok {
				return types.NewErr(types.TypingError, p.Position(), "function parameter must be an identifier")
			}
			params[i] = pid.Name
		}
		fnTy, quant, err := parseScheme(ctx, fresh, n.Items[3])
		if err != nil {
			return err
		}
		fn := fnTy.(types.TFunc)
		if len(fn.Params) != len(params) {
			return types.NewErr(types.TypingError, n.Pos, "function %q declares %d parameter(s) but its scheme names %d", nameID.Name, len(params), len(fn.Params))
		}
		vars := make([]*types.TVar, 0, len(quant))
		for _, v := range quant {
			vars = append(vars, v)
		}
		ctx.Bindings[nameID.Name] = &Binding{
			Name:     nameID.Name,
			Params:   params,
			Scheme:   &types.Scheme{Vars: vars, Body: fn},
			Body:     n.Items[4],
			Exported: head.Name == "export",
		}
	}
	return nil
}

// Infer type-checks a single already-elaborated expression against an
// existing Context, for use by the Eval entry point: a bare expression
// passed to eval() is not a top-level data/defun/export form, so it is
// inferred directly rather than re-running Elaborate.
func Infer(ctx *Context, e parser.Expr) (types.Type, types.Effect, *types.LispErr) {
	fresh := &freshSupply{}
	ty, eff, err := infer(ctx, map[string]types.Type{}, fresh, e)
	if err != nil {
		if le, ok := err.(*types.LispErr); ok {
			return nil, types.Pure, le
		}
		return nil, types.Pure, types.NewErr(types.TypingError, e.Position(), "%s", err.Error())
	}
	return ty, eff, nil
}

func checkBodies(ctx *Context, fresh *freshSupply, forms []*parser.ListExpr) error {
	for _, n := range forms {
		nameID := n.Items[1].(*parser.IdentExpr)
		b := ctx.Bindings[nameID.Name]

		rigidFn, ok := instantiateRigid(fresh, b.Scheme.Vars, b.Scheme.Body).(types.TFunc)
		if !ok {
			return types.NewErr(types.TypingError, n.Pos, "function %q's scheme is not a function type", b.Name)
		}
		env := map[string]types.Type{}
		for i, p := range b.Params {
			env[p] = rigidFn.Params[i]
		}
		bodyTy, bodyEffect, err := infer(ctx, env, fresh, b.Body)
		if err != nil {
			return err
		}
		if err := unify(b.Body.Position(), rigidFn.Ret, bodyTy); err != nil {
			return err
		}
		if !bodyEffect.LE(rigidFn.Effect) {
			return types.NewErr(types.TypingError, b.Body.Position(), "function %q is declared %s but its body requires %s", b.Name, rigidFn.Effect, bodyEffect)
		}
	}
	return nil
}
