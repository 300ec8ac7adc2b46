package builtins

import (
	"math/big"
	"testing"

	"github.com/fumisaitou/blisp/types"
)

var zeroPos = types.Position{FileID: types.FileEval, Line: 1, Column: 1}

func mustInt(t *testing.T, r types.Result) *big.Int {
	t.Helper()
	if r.IsErr {
		t.Fatalf("unexpected error: %v", r.Err)
	}
	iv, ok := r.Val.(types.IntValue)
	if !ok {
		t.Fatalf("expected IntValue, got %T", r.Val)
	}
	return iv.Val
}

func TestArithmetic(t *testing.T) {
	cases := []struct {
		name string
		fn   string
		a, b int64
		want int64
	}{
		{"add", "+", 10, 20, 30},
		{"sub", "-", 10, 3, 7},
		{"mul", "*", 6, 7, 42},
		{"div", "/", 20, 6, 3},
		{"band", "band", 0b1100, 0b1010, 0b1000},
		{"bor", "bor", 0b1100, 0b1010, 0b1110},
		{"bxor", "bxor", 0b1100, 0b1010, 0b0110},
		{"pow", "pow", 2, 10, 1024},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			fn, ok := Default.Get(c.fn)
			if !ok {
				t.Fatalf("builtin %q not registered", c.fn)
			}
			got := mustInt(t, fn([]types.Value{types.NewInt(c.a), types.NewInt(c.b)}, zeroPos))
			if got.Cmp(big.NewInt(c.want)) != 0 {
				t.Errorf("%s(%d,%d) = %s, want %d", c.fn, c.a, c.b, got, c.want)
			}
		})
	}
}

// builtinMod follows math/big's Rem (truncated division, result takes
// the sign of the dividend), not Euclidean mod.
func TestModTruncatesTowardDividendSign(t *testing.T) {
	fn, _ := Default.Get("mod")
	got := mustInt(t, fn([]types.Value{types.NewInt(-7), types.NewInt(3)}, zeroPos))
	if got.Cmp(big.NewInt(-1)) != 0 {
		t.Errorf("mod(-7,3) = %s, want -1", got)
	}
}

func TestDivisionByZeroIsRuntimeError(t *testing.T) {
	fn, _ := Default.Get("/")
	r := fn([]types.Value{types.NewInt(1), types.NewInt(0)}, zeroPos)
	if !r.IsErr || r.Err.Kind != types.RuntimeError {
		t.Fatalf("expected a Runtime Error, got %+v", r)
	}
}

func TestPowNegativeExponentIsRuntimeError(t *testing.T) {
	fn, _ := Default.Get("pow")
	r := fn([]types.Value{types.NewInt(2), types.NewInt(-1)}, zeroPos)
	if !r.IsErr || r.Err.Kind != types.RuntimeError {
		t.Fatalf("expected a Runtime Error, got %+v", r)
	}
}

func TestSqrtOfNegativeIsNone(t *testing.T) {
	fn, _ := Default.Get("sqrt")
	r := fn([]types.Value{types.NewInt(-4)}, zeroPos)
	if r.IsErr {
		t.Fatalf("unexpected error: %v", r.Err)
	}
	dv, ok := r.Val.(types.DataValue)
	if !ok || dv.Ctor != "None" {
		t.Fatalf("expected None, got %v", r.Val)
	}
}

func TestSqrtOfPerfectSquareIsSome(t *testing.T) {
	fn, _ := Default.Get("sqrt")
	r := fn([]types.Value{types.NewInt(81)}, zeroPos)
	if r.IsErr {
		t.Fatalf("unexpected error: %v", r.Err)
	}
	dv, ok := r.Val.(types.DataValue)
	if !ok || dv.Ctor != "Some" {
		t.Fatalf("expected Some, got %v", r.Val)
	}
	if got := mustInt(t, types.Ok(dv.Fields[0])); got.Cmp(big.NewInt(9)) != 0 {
		t.Errorf("sqrt(81) = Some %s, want Some 9", got)
	}
}

func TestComparisons(t *testing.T) {
	cases := []struct {
		fn   string
		a, b int64
		want bool
	}{
		{"<", 1, 2, true},
		{"<", 2, 1, false},
		{"<=", 2, 2, true},
		{"=", 2, 2, true},
		{"=", 2, 3, false},
		{">=", 3, 2, true},
		{">", 1, 2, false},
	}
	for _, c := range cases {
		fn, ok := Default.Get(c.fn)
		if !ok {
			t.Fatalf("builtin %q not registered", c.fn)
		}
		r := fn([]types.Value{types.NewInt(c.a), types.NewInt(c.b)}, zeroPos)
		if r.IsErr {
			t.Fatalf("unexpected error: %v", r.Err)
		}
		bv, ok := r.Val.(types.BoolValue)
		if !ok {
			t.Fatalf("expected BoolValue, got %T", r.Val)
		}
		if bv.Val != c.want {
			t.Errorf("%s(%d,%d) = %v, want %v", c.fn, c.a, c.b, bv.Val, c.want)
		}
	}
}

func TestRegistryHas(t *testing.T) {
	for _, name := range []string{"+", "-", "*", "/", "mod", "pow", "band", "bor", "bxor", "sqrt", "<", "<=", "=", ">=", ">"} {
		if !Default.Has(name) {
			t.Errorf("expected registry to have %q", name)
		}
	}
	if Default.Has("not-a-builtin") {
		t.Error("did not expect registry to have an unregistered name")
	}
}
