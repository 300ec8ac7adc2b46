package blisp

import (
	"math/big"
	"strings"
	"testing"
)

func run(t *testing.T, code, expr string) []Outcome {
	t.Helper()
	exprs, err := Init(code)
	if err != nil {
		t.Fatalf("Init error: %v", err)
	}
	ctx, err := Typing(exprs)
	if err != nil {
		t.Fatalf("Typing error: %v", err)
	}
	outcomes, err := Eval(expr, ctx)
	if err != nil {
		t.Fatalf("Eval error: %v", err)
	}
	return outcomes
}

func TestEvalArithmetic(t *testing.T) {
	outcomes := run(t, "", "(+ 10 20)")
	if len(outcomes) != 1 || outcomes[0].IsErr || outcomes[0].Ok != "30" {
		t.Fatalf("got %+v", outcomes)
	}
}

func TestEvalMultipleExpressionsEachGetTheirOwnOutcome(t *testing.T) {
	outcomes := run(t, "", "(+ 1 1) (/ 1 0) (+ 2 2)")
	if len(outcomes) != 3 {
		t.Fatalf("expected 3 outcomes, got %d", len(outcomes))
	}
	if outcomes[0].IsErr || outcomes[0].Ok != "2" {
		t.Errorf("expected first expression to evaluate to 2, got %+v", outcomes[0])
	}
	if !outcomes[1].IsErr {
		t.Errorf("expected the second expression to be a division-by-zero error, got %+v", outcomes[1])
	}
	if outcomes[2].IsErr || outcomes[2].Ok != "4" {
		t.Errorf("expected the third expression to still evaluate despite the second's error, got %+v", outcomes[2])
	}
}

func TestEvalZeroExpressionsReturnsNil(t *testing.T) {
	exprs, err := Init("")
	if err != nil {
		t.Fatalf("Init error: %v", err)
	}
	ctx, err := Typing(exprs)
	if err != nil {
		t.Fatalf("Typing error: %v", err)
	}
	outcomes, err := Eval("", ctx)
	if err != nil {
		t.Fatalf("Eval error: %v", err)
	}
	if outcomes != nil {
		t.Errorf("expected nil outcomes for an empty expression text, got %+v", outcomes)
	}
}

func TestEvalSyntaxErrorAbortsBeforeAnyOutcome(t *testing.T) {
	exprs, err := Init("")
	if err != nil {
		t.Fatalf("Init error: %v", err)
	}
	ctx, err := Typing(exprs)
	if err != nil {
		t.Fatalf("Typing error: %v", err)
	}
	_, err = Eval("(+ 1", ctx)
	if err == nil {
		t.Fatal("expected a Syntax Error for unbalanced parens")
	}
}

func TestEvalTypingErrorAbortsBeforeAnyOutcome(t *testing.T) {
	exprs, err := Init("")
	if err != nil {
		t.Fatalf("Init error: %v", err)
	}
	ctx, err := Typing(exprs)
	if err != nil {
		t.Fatalf("Typing error: %v", err)
	}
	if _, err := Eval("(+ 1 true)", ctx); err == nil {
		t.Fatal("expected a Typing Error for mismatched operand types")
	}
}

func TestPreludeListHelpers(t *testing.T) {
	tests := []struct {
		name string
		expr string
		want string
	}{
		{"car", "(car '(1 2 3))", "(Some 1)"},
		{"cdr", "(cdr '(1 2 3))", "(Some '(2 3))"},
		{"car-of-empty", "(car Nil)", "None"},
		{"length", "(length '(1 2 3 4))", "4"},
		{"reverse", "(reverse '(1 2 3))", "'(3 2 1)"},
		{"append", "(append '(1 2) '(3 4))", "'(1 2 3 4)"},
		{"not", "(not false)", "true"},
		{"and", "(and true false)", "false"},
		{"or", "(or false true)", "true"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			outcomes := run(t, "", tt.expr)
			if len(outcomes) != 1 || outcomes[0].IsErr {
				t.Fatalf("got %+v", outcomes)
			}
			if outcomes[0].Ok != tt.want {
				t.Errorf("eval(%s) = %s, want %s", tt.expr, outcomes[0].Ok, tt.want)
			}
		})
	}
}

func TestPreludeMapAndFold(t *testing.T) {
	program := `(export double (x) (Pure (-> (Int) Int)) (* x 2))`
	outcomes := run(t, program, "(map double '(1 2 3))")
	if len(outcomes) != 1 || outcomes[0].IsErr || outcomes[0].Ok != "'(2 4 6)" {
		t.Fatalf("got %+v", outcomes)
	}

	outcomes = run(t, "", "(fold + 0 '(1 2 3 4))")
	if len(outcomes) != 1 || outcomes[0].IsErr || outcomes[0].Ok != "10" {
		t.Fatalf("got %+v", outcomes)
	}
}

// TestFactorial2000 exercises arbitrary-precision evaluation: its exact
// 5736-digit result is computed independently with math/big rather
// than hardcoded, since no human could transcribe it correctly.
func TestFactorial2000(t *testing.T) {
	program := `
(defun fact-helper (n acc) (Pure (-> (Int Int) Int))
  (if (= n 0) acc (fact-helper (- n 1) (* n acc))))
(export factorial (n) (Pure (-> (Int) Int)) (fact-helper n 1))
`
	outcomes := run(t, program, "(factorial 2000)")
	if len(outcomes) != 1 || outcomes[0].IsErr {
		t.Fatalf("got %+v", outcomes)
	}
	want := big.NewInt(1)
	for i := int64(2); i <= 2000; i++ {
		want.Mul(want, big.NewInt(i))
	}
	if outcomes[0].Ok != want.String() {
		t.Errorf("factorial 2000 mismatch (got %d digits, want %d digits)", len(outcomes[0].Ok), len(want.String()))
	}
}

func TestCallRustHostBridge(t *testing.T) {
	exprs, err := Init(`(export triple-product (x y z) (IO (-> (Int Int Int) (Option Int))) (call-rust x y z))`)
	if err != nil {
		t.Fatalf("Init error: %v", err)
	}
	ctx, err := Typing(exprs)
	if err != nil {
		t.Fatalf("Typing error: %v", err)
	}
	ctx.SetCallback(func(x, y, z *big.Int) (*big.Int, bool) {
		p := new(big.Int).Mul(x, y)
		p.Mul(p, z)
		return p, true
	})
	outcomes, err := Eval("(triple-product 100 2000 30000)", ctx)
	if err != nil {
		t.Fatalf("Eval error: %v", err)
	}
	if len(outcomes) != 1 || outcomes[0].IsErr || outcomes[0].Ok != "(Some 6000000000)" {
		t.Fatalf("got %+v", outcomes)
	}
}

func TestEffectDisciplineRejectsPureCallingIO(t *testing.T) {
	exprs, err := Init(`(export f () (Pure (-> () (Option Int))) (call-rust 1 2 3))`)
	if err != nil {
		t.Fatalf("Init error: %v", err)
	}
	if _, err := Typing(exprs); err == nil {
		t.Fatal("expected a Typing Error for a Pure function whose body requires IO")
	} else if !strings.Contains(err.Error(), "IO") {
		t.Errorf("expected the error to mention IO, got: %v", err)
	}
}

func TestPreludeDigestIsStableAndSHA256(t *testing.T) {
	d1 := PreludeDigest()
	d2 := PreludeDigest()
	if d1.Hex != d2.Hex {
		t.Errorf("expected PreludeDigest to be deterministic, got %s vs %s", d1.Hex, d2.Hex)
	}
	if d1.Algorithm != "sha256" {
		t.Errorf("expected sha256, got %s", d1.Algorithm)
	}
	if len(d1.Hex) != 64 {
		t.Errorf("expected a 64-character hex digest, got %d characters", len(d1.Hex))
	}
}
