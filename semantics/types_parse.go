package semantics

import (
	"unicode"

	"github.com/fumisaitou/blisp/parser"
	"github.com/fumisaitou/blisp/types"
)

// typeParseCtx carries the in-scope type parameters (for a data
// declaration or a function scheme) and the quantified variables
// collected so far, keyed by surface name so repeated occurrences of
// the same lowercase name share one type variable.
type typeParseCtx struct {
	ctx     *Context
	params  map[string]bool
	quant   map[string]*types.TVar
	fresh   *freshSupply
}

func isLowerStart(s string) bool {
	if s == "" {
		return false
	}
	r := []rune(s)[0]
	return unicode.IsLower(r)
}

// parseType interprets a parsed Expr as a type, per spec.md section 4.2.
func parseType(tc *typeParseCtx, e parser.Expr) (types.Type, error) {
	switch n := e.(type) {
	case *parser.IdentExpr:
		return parseTypeIdent(tc, n.Name, n.Pos)
	case *parser.TupleExpr:
		elems := make([]types.Type, len(n.Items))
		for i, it := range n.Items {
			t, err := parseType(tc, it)
			if err != nil {
				return nil, err
			}
			elems[i] = t
		}
		return types.TTuple{Elems: elems}, nil
	case *parser.QuoteExpr:
		if len(n.Items) != 1 {
			return nil, types.NewErr(types.TypingError, n.Pos, "list type '(T) takes exactly one element type")
		}
		elem, err := parseType(tc, n.Items[0])
		if err != nil {
			return nil, err
		}
		return types.TList{Elem: elem}, nil
	case *parser.ListExpr:
		return parseTypeList(tc, n)
	default:
		return nil, types.NewErr(types.TypingError, e.Position(), "malformed type")
	}
}

func parseTypeIdent(tc *typeParseCtx, name string, pos types.Position) (types.Type, error) {
	switch name {
	case "Int":
		return types.TInt, nil
	case "Bool":
		return types.TBool, nil
	case "Char":
		return types.TChar, nil
	case "String":
		return types.TString, nil
	}
	if isLowerStart(name) {
		if v, ok := tc.quant[name]; ok {
			return v, nil
		}
		v := tc.fresh.tvar(name)
		tc.quant[name] = v
		return v, nil
	}
	// Uppercase, non-builtin: must be a declared data name with arity 0.
	decl, ok := tc.ctx.Types[name]
	if !ok {
		return nil, types.NewErr(types.TypingError, pos, "unknown type %q", name)
	}
	if len(decl.Params) != 0 {
		return nil, types.NewErr(types.TypingError, pos, "type %q requires %d argument(s)", name, len(decl.Params))
	}
	return types.TData{Name: name}, nil
}

func parseTypeList(tc *typeParseCtx, n *parser.ListExpr) (types.Type, error) {
	if len(n.Items) == 0 {
		return nil, types.NewErr(types.TypingError, n.Pos, "malformed type")
	}
	head, ok := n.Items[0].(*parser.IdentExpr)
	if !ok {
		return nil, types.NewErr(types.TypingError, n.Pos, "malformed type")
	}
	switch head.Name {
	case "Pure", "IO":
		eff := types.Pure
		if head.Name == "IO" {
			eff = types.IO
		}
		if len(n.Items) != 2 {
			return nil, types.NewErr(types.TypingError, n.Pos, "malformed function type")
		}
		arrow, ok := n.Items[1].(*parser.ListExpr)
		if !ok || len(arrow.Items) != 3 {
			return nil, types.NewErr(types.TypingError, n.Pos, "malformed function type, expected (-> (Args...) Ret)")
		}
		arrowHead, ok := arrow.Items[0].(*parser.IdentExpr)
		if !ok || arrowHead.Name != "->" {
			return nil, types.NewErr(types.TypingError, n.Pos, "malformed function type, expected '->'")
		}
		argList, ok := arrow.Items[1].(*parser.ListExpr)
		var params []types.Type
		if ok {
			params = make([]types.Type, len(argList.Items))
			for i, a := range argList.Items {
				t, err := parseType(tc, a)
				if err != nil {
					return nil, err
				}
				params[i] = t
			}
		} else if _, isEmptyTuple := arrow.Items[1].(*parser.TupleExpr); isEmptyTuple {
			params = nil
		} else {
			return nil, types.NewErr(types.TypingError, n.Pos, "malformed argument list in function type")
		}
		ret, err := parseType(tc, arrow.Items[2])
		if err != nil {
			return nil, err
		}
		return types.TFunc{Effect: eff, Params: params, Ret: ret}, nil
	default:
		// Data type application: (Name T1 ... Tn)
		decl, ok := tc.ctx.Types[head.Name]
		if !ok {
			return nil, types.NewErr(types.TypingError, n.Pos, "unknown type constructor %q", head.Name)
		}
		args := make([]types.Type, len(n.Items)-1)
		for i, a := range n.Items[1:] {
			t, err := parseType(tc, a)
			if err != nil {
				return nil, err
			}
			args[i] = t
		}
		if len(args) != len(decl.Params) {
			return nil, types.NewErr(types.TypingError, n.Pos, "type %q takes %d argument(s), got %d", head.Name, len(decl.Params), len(args))
		}
		return types.TData{Name: head.Name, Args: args}, nil
	}
}

// parseScheme parses the `(Effect (-> (Args...) Ret))` grammar into a
// Type plus the set of quantified variables collected while parsing it,
// per spec.md section 4.2 ("free lowercase names become implicitly
// quantified").
func parseScheme(ctx *Context, fresh *freshSupply, e parser.Expr) (types.Type, map[string]*types.TVar, error) {
	tc := &typeParseCtx{ctx: ctx, params: map[string]bool{}, quant: map[string]*types.TVar{}, fresh: fresh}
	t, err := parseType(tc, e)
	if err != nil {
		return nil, nil, err
	}
	fn, ok := t.(types.TFunc)
	if !ok {
		return nil, nil, types.NewErr(types.TypingError, e.Position(), "expected a function scheme (Effect (-> (Args) Ret))")
	}
	return fn, tc.quant, nil
}
