package parser

import "github.com/fumisaitou/blisp/types"

// Expr is the tagged variant produced by the parser (spec.md section 3).
// Every node carries a Position, matching the teacher's Node interface
// in parser/ast.go.
type Expr interface {
	Position() types.Position
	exprNode()
}

// IntExpr is an arbitrary-precision integer literal.
type IntExpr struct {
	Pos types.Position
	Val types.IntValue
}

func (e *IntExpr) Position() types.Position { return e.Pos }
func (e *IntExpr) exprNode()                {}

// BoolExpr is a boolean literal.
type BoolExpr struct {
	Pos types.Position
	Val bool
}

func (e *BoolExpr) Position() types.Position { return e.Pos }
func (e *BoolExpr) exprNode()                {}

// CharExpr is a character literal.
type CharExpr struct {
	Pos types.Position
	Val rune
}

func (e *CharExpr) Position() types.Position { return e.Pos }
func (e *CharExpr) exprNode()                {}

// StringExpr is a string literal.
type StringExpr struct {
	Pos types.Position
	Val string
}

func (e *StringExpr) Position() types.Position { return e.Pos }
func (e *StringExpr) exprNode()                {}

// IdentExpr is an identifier (symbol) reference.
type IdentExpr struct {
	Pos  types.Position
	Name string
}

func (e *IdentExpr) Position() types.Position { return e.Pos }
func (e *IdentExpr) exprNode()                {}

// ListExpr is a parenthesized application or special form (e₁ … eₙ).
type ListExpr struct {
	Pos   types.Position
	Items []Expr
}

func (e *ListExpr) Position() types.Position { return e.Pos }
func (e *ListExpr) exprNode()                {}

// TupleExpr is a bracketed tuple literal [e₁ … eₙ].
type TupleExpr struct {
	Pos   types.Position
	Items []Expr
}

func (e *TupleExpr) Position() types.Position { return e.Pos }
func (e *TupleExpr) exprNode()                {}

// QuoteExpr is a quoted list literal '(e₁ … eₙ); the type checker types
// it as a list directly, and the evaluator builds the literal Cons/Nil
// chain from it (see eval.evalQuote).
type QuoteExpr struct {
	Pos   types.Position
	Items []Expr
}

func (e *QuoteExpr) Position() types.Position { return e.Pos }
func (e *QuoteExpr) exprNode()                {}
