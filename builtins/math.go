package builtins

import (
	"math/big"

	"github.com/fumisaitou/blisp/types"
)

// intArgs type-asserts a two-argument integer builtin's operands. The
// type checker already guarantees arity and operand types before
// evaluation reaches here, so a mismatch indicates an elaborator bug,
// not user input; these builtins raise a Runtime Error all the same
// rather than panic, per spec.md section 7's blanket "malformed input
// is a fatal evaluation error" policy.
func intArgs(pos types.Position, args []types.Value) (*big.Int, *big.Int, *types.LispErr) {
	if len(args) != 2 {
		e := types.NewErr(types.RuntimeError, pos, "expected 2 arguments, got %d", len(args))
		return nil, nil, e
	}
	x, ok := args[0].(types.IntValue)
	if !ok {
		return nil, nil, types.NewErr(types.RuntimeError, pos, "expected an integer argument")
	}
	y, ok := args[1].(types.IntValue)
	if !ok {
		return nil, nil, types.NewErr(types.RuntimeError, pos, "expected an integer argument")
	}
	return x.Val, y.Val, nil
}

func builtinAdd(args []types.Value, pos types.Position) types.Result {
	x, y, err := intArgs(pos, args)
	if err != nil {
		return types.ErrOf(err)
	}
	return types.Ok(types.NewIntFromBig(new(big.Int).Add(x, y)))
}

func builtinSub(args []types.Value, pos types.Position) types.Result {
	x, y, err := intArgs(pos, args)
	if err != nil {
		return types.ErrOf(err)
	}
	return types.Ok(types.NewIntFromBig(new(big.Int).Sub(x, y)))
}

func builtinMul(args []types.Value, pos types.Position) types.Result {
	x, y, err := intArgs(pos, args)
	if err != nil {
		return types.ErrOf(err)
	}
	return types.Ok(types.NewIntFromBig(new(big.Int).Mul(x, y)))
}

func builtinDiv(args []types.Value, pos types.Position) types.Result {
	x, y, err := intArgs(pos, args)
	if err != nil {
		return types.ErrOf(err)
	}
	if y.Sign() == 0 {
		return types.ErrAt(pos, "division by zero")
	}
	return types.Ok(types.NewIntFromBig(new(big.Int).Quo(x, y)))
}

// builtinMod implements truncated-division remainder (the remainder
// takes the dividend's sign), matching Go's own `%` operator on
// machine integers rather than Euclidean mod, since BLisp has no
// separate floor-mod operator to carry that convention instead.
func builtinMod(args []types.Value, pos types.Position) types.Result {
	x, y, err := intArgs(pos, args)
	if err != nil {
		return types.ErrOf(err)
	}
	if y.Sign() == 0 {
		return types.ErrAt(pos, "division by zero")
	}
	return types.Ok(types.NewIntFromBig(new(big.Int).Rem(x, y)))
}

func builtinPow(args []types.Value, pos types.Position) types.Result {
	x, y, err := intArgs(pos, args)
	if err != nil {
		return types.ErrOf(err)
	}
	if y.Sign() < 0 {
		return types.ErrAt(pos, "negative exponent")
	}
	return types.Ok(types.NewIntFromBig(new(big.Int).Exp(x, y, nil)))
}

func builtinBand(args []types.Value, pos types.Position) types.Result {
	x, y, err := intArgs(pos, args)
	if err != nil {
		return types.ErrOf(err)
	}
	return types.Ok(types.NewIntFromBig(new(big.Int).And(x, y)))
}

func builtinBor(args []types.Value, pos types.Position) types.Result {
	x, y, err := intArgs(pos, args)
	if err != nil {
		return types.ErrOf(err)
	}
	return types.Ok(types.NewIntFromBig(new(big.Int).Or(x, y)))
}

func builtinBxor(args []types.Value, pos types.Position) types.Result {
	x, y, err := intArgs(pos, args)
	if err != nil {
		return types.ErrOf(err)
	}
	return types.Ok(types.NewIntFromBig(new(big.Int).Xor(x, y)))
}

// builtinSqrt returns the integer square root wrapped in Some, or None
// for a negative argument (spec.md section 8's worked example). It
// stays on *big.Int throughout via Newton's method so exactness is
// never traded for float precision.
func builtinSqrt(args []types.Value, pos types.Position) types.Result {
	if len(args) != 1 {
		return types.ErrAt(pos, "expected 1 argument, got %d", len(args))
	}
	x, ok := args[0].(types.IntValue)
	if !ok {
		return types.ErrAt(pos, "expected an integer argument")
	}
	if x.Val.Sign() < 0 {
		return types.Ok(types.DataValue{Ctor: "None"})
	}
	root := new(big.Int).Sqrt(x.Val)
	return types.Ok(types.DataValue{Ctor: "Some", Fields: []types.Value{types.NewIntFromBig(root)}})
}

func cmp(args []types.Value, pos types.Position) (int, *types.LispErr) {
	x, y, err := intArgs(pos, args)
	if err != nil {
		return 0, err
	}
	return x.Cmp(y), nil
}

func builtinLt(args []types.Value, pos types.Position) types.Result {
	c, err := cmp(args, pos)
	if err != nil {
		return types.ErrOf(err)
	}
	return types.Ok(types.NewBool(c < 0))
}

func builtinLe(args []types.Value, pos types.Position) types.Result {
	c, err := cmp(args, pos)
	if err != nil {
		return types.ErrOf(err)
	}
	return types.Ok(types.NewBool(c <= 0))
}

func builtinEq(args []types.Value, pos types.Position) types.Result {
	c, err := cmp(args, pos)
	if err != nil {
		return types.ErrOf(err)
	}
	return types.Ok(types.NewBool(c == 0))
}

func builtinGe(args []types.Value, pos types.Position) types.Result {
	c, err := cmp(args, pos)
	if err != nil {
		return types.ErrOf(err)
	}
	return types.Ok(types.NewBool(c >= 0))
}

func builtinGt(args []types.Value, pos types.Position) types.Result {
	c, err := cmp(args, pos)
	if err != nil {
		return types.ErrOf(err)
	}
	return types.Ok(types.NewBool(c > 0))
}
