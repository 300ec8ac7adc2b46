package parser

import (
	"testing"

	"github.com/fumisaitou/blisp/types"
)

func TestParseIntLiterals(t *testing.T) {
	tests := []struct {
		code string
		want string
	}{
		{"10", "10"},
		{"0x10", "16"},
		{"0b111", "7"},
		{"0o17", "15"},
	}
	for _, tt := range tests {
		exprs, err := ParseProgram(tt.code, types.FileEval)
		if err != nil {
			t.Fatalf("ParseProgram(%q): %v", tt.code, err)
		}
		if len(exprs) != 1 {
			t.Fatalf("ParseProgram(%q): got %d exprs, want 1", tt.code, len(exprs))
		}
		ie, ok := exprs[0].(*IntExpr)
		if !ok {
			t.Fatalf("ParseProgram(%q): not an IntExpr", tt.code)
		}
		if got := ie.Val.String(); got != tt.want {
			t.Errorf("ParseProgram(%q) = %s, want %s", tt.code, got, tt.want)
		}
	}
}

func TestParseListAndTuple(t *testing.T) {
	exprs, err := ParseProgram("(+ 1 2) [1 true]", types.FileEval)
	if err != nil {
		t.Fatalf("ParseProgram: %v", err)
	}
	if len(exprs) != 2 {
		t.Fatalf("got %d exprs, want 2", len(exprs))
	}
	list, ok := exprs[0].(*ListExpr)
	if !ok || len(list.Items) != 3 {
		t.Fatalf("expected a 3-item list, got %#v", exprs[0])
	}
	tuple, ok := exprs[1].(*TupleExpr)
	if !ok || len(tuple.Items) != 2 {
		t.Fatalf("expected a 2-item tuple, got %#v", exprs[1])
	}
}

func TestQuoteDesugarsToList(t *testing.T) {
	exprs, err := ParseProgram("'(30 40 50)", types.FileEval)
	if err != nil {
		t.Fatalf("ParseProgram: %v", err)
	}
	q, ok := exprs[0].(*QuoteExpr)
	if !ok || len(q.Items) != 3 {
		t.Fatalf("expected a 3-item quote, got %#v", exprs[0])
	}
}

func TestUnbalancedParenIsSyntaxError(t *testing.T) {
	_, err := ParseProgram("(+ 1 2", types.FileEval)
	if err == nil {
		t.Fatal("expected a syntax error for unbalanced '('")
	}
	le, ok := err.(*types.LispErr)
	if !ok || le.Kind != types.SyntaxError {
		t.Fatalf("expected SyntaxError, got %v", err)
	}
}

func TestEmptyListParsesAsEmptyListExpr(t *testing.T) {
	// () is legal at the syntax level: it is how a zero-parameter
	// function's parameter list and a zero-argument function type's
	// argument list are written. Whether an empty ListExpr is valid in
	// a given position is a typing concern (see semantics package).
	exprs, err := ParseProgram("()", types.FileEval)
	if err != nil {
		t.Fatalf("ParseProgram(\"()\"): %v", err)
	}
	list, ok := exprs[0].(*ListExpr)
	if !ok || len(list.Items) != 0 {
		t.Fatalf("expected an empty ListExpr, got %#v", exprs[0])
	}
}

func TestMismatchedBracketsIsSyntaxError(t *testing.T) {
	_, err := ParseProgram("(1 2]", types.FileEval)
	if err == nil {
		t.Fatal("expected a syntax error for mismatched delimiters")
	}
}

func TestUnterminatedStringIsSyntaxError(t *testing.T) {
	_, err := ParseProgram("\"abc", types.FileEval)
	if err == nil {
		t.Fatal("expected a syntax error for an unterminated string")
	}
}

func TestStringEscapes(t *testing.T) {
	exprs, err := ParseProgram(`"a\nb\tc\\d\"e"`, types.FileEval)
	if err != nil {
		t.Fatalf("ParseProgram: %v", err)
	}
	se, ok := exprs[0].(*StringExpr)
	if !ok {
		t.Fatalf("expected a StringExpr, got %#v", exprs[0])
	}
	want := "a\nb\tc\\d\"e"
	if se.Val != want {
		t.Errorf("got %q, want %q", se.Val, want)
	}
}

func TestUnparseRoundTrip(t *testing.T) {
	sources := []string{
		"(+ 1 2)",
		"[1 true]",
		"'(1 2 3)",
		"(lambda (x y) (+ x y))",
		`"hi"`,
		"#\\a",
	}
	for _, src := range sources {
		exprs, err := ParseProgram(src, types.FileEval)
		if err != nil {
			t.Fatalf("ParseProgram(%q): %v", src, err)
		}
		if len(exprs) != 1 {
			t.Fatalf("ParseProgram(%q): got %d exprs, want 1", src, len(exprs))
		}
		unparsed := Unparse(exprs[0])
		reparsed, err := ParseProgram(unparsed, types.FileEval)
		if err != nil {
			t.Fatalf("re-parsing Unparse(%q) = %q: %v", src, unparsed, err)
		}
		if len(reparsed) != 1 {
			t.Fatalf("re-parsing Unparse(%q) = %q: got %d exprs, want 1", src, unparsed, len(reparsed))
		}
		if Unparse(reparsed[0]) != unparsed {
			t.Errorf("Unparse not stable under a parse/unparse round trip: %q -> %q -> %q", src, unparsed, Unparse(reparsed[0]))
		}
	}
}

func TestPositionTracking(t *testing.T) {
	exprs, err := ParseProgram("(+ 1\n   2)", types.FileUser)
	if err != nil {
		t.Fatalf("ParseProgram: %v", err)
	}
	list := exprs[0].(*ListExpr)
	if list.Pos.FileID != types.FileUser || list.Pos.Line != 1 {
		t.Errorf("unexpected position: %#v", list.Pos)
	}
	// The second operand sits on line 2.
	second := list.Items[2]
	if second.Position().Line != 2 {
		t.Errorf("expected second operand on line 2, got %d", second.Position().Line)
	}
}
