package parser

import (
	"math/big"

	"github.com/fumisaitou/blisp/types"
)

// Parser parses BLisp source code into a forest of top-level Expr
// nodes. Structure mirrors the teacher's parser.Parser: a two-token
// lookahead (current/peek) advanced by nextToken.
type Parser struct {
	lexer   *Lexer
	current Token
	peek    Token
	err     error
}

func NewParser(input string, fileID int) *Parser {
	p := &Parser{lexer: NewLexer(input, fileID)}
	p.nextToken()
	p.nextToken()
	return p
}

func (p *Parser) nextToken() {
	p.current = p.peek
	tok, err := p.lexer.NextToken()
	if err != nil && p.err == nil {
		p.err = err
	}
	p.peek = tok
}

// ParseProgram parses every top-level expression in the input.
func ParseProgram(input string, fileID int) ([]Expr, error) {
	p := NewParser(input, fileID)
	var exprs []Expr
	for p.current.Type != TOKEN_EOF {
		if p.err != nil {
			return nil, p.err
		}
		e, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		exprs = append(exprs, e)
	}
	if p.err != nil {
		return nil, p.err
	}
	return exprs, nil
}

func (p *Parser) parseExpr() (Expr, error) {
	if p.err != nil {
		return nil, p.err
	}
	pos := p.current.Position
	switch p.current.Type {
	case TOKEN_LPAREN:
		return p.parseList()
	case TOKEN_LBRACKET:
		return p.parseTuple()
	case TOKEN_QUOTE:
		p.nextToken()
		inner, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		items, err := quoteItems(inner)
		if err != nil {
			return nil, err
		}
		return &QuoteExpr{Pos: pos, Items: items}, nil
	case TOKEN_INT:
		return p.parseInt(pos)
	case TOKEN_TRUE:
		p.nextToken()
		return &BoolExpr{Pos: pos, Val: true}, nil
	case TOKEN_FALSE:
		p.nextToken()
		return &BoolExpr{Pos: pos, Val: false}, nil
	case TOKEN_CHAR:
		runes := []rune(p.current.Value)
		p.nextToken()
		var r rune
		if len(runes) > 0 {
			r = runes[0]
		}
		return &CharExpr{Pos: pos, Val: r}, nil
	case TOKEN_STRING:
		v := p.current.Value
		p.nextToken()
		return &StringExpr{Pos: pos, Val: v}, nil
	case TOKEN_IDENT:
		v := p.current.Value
		p.nextToken()
		return &IdentExpr{Pos: pos, Name: v}, nil
	case TOKEN_RPAREN, TOKEN_RBRACKET:
		return nil, types.NewErr(types.SyntaxError, pos, "unexpected %s", p.current.Type)
	case TOKEN_EOF:
		return nil, types.NewErr(types.SyntaxError, pos, "unexpected end of input")
	default:
		return nil, types.NewErr(types.SyntaxError, pos, "unexpected token %q", p.current.Value)
	}
}

// quoteItems turns a quoted list-form expression into the items it
// contains, rejecting quoted atoms (only quoted lists are supported).
func quoteItems(inner Expr) ([]Expr, error) {
	list, ok := inner.(*ListExpr)
	if !ok {
		return nil, types.NewErr(types.SyntaxError, inner.Position(), "quote applies only to a list form")
	}
	return list.Items, nil
}

func (p *Parser) parseList() (Expr, error) {
	pos := p.current.Position
	p.nextToken() // consume '('
	var items []Expr
	for p.current.Type != TOKEN_RPAREN {
		if p.current.Type == TOKEN_EOF {
			return nil, types.NewErr(types.SyntaxError, pos, "unbalanced '('")
		}
		e, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		items = append(items, e)
	}
	p.nextToken() // consume ')'
	return &ListExpr{Pos: pos, Items: items}, nil
}

func (p *Parser) parseTuple() (Expr, error) {
	pos := p.current.Position
	p.nextToken() // consume '['
	var items []Expr
	for p.current.Type != TOKEN_RBRACKET {
		if p.current.Type == TOKEN_EOF {
			return nil, types.NewErr(types.SyntaxError, pos, "unbalanced '['")
		}
		if p.current.Type == TOKEN_RPAREN {
			return nil, types.NewErr(types.SyntaxError, p.current.Position, "mismatched ')' inside '['")
		}
		e, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		items = append(items, e)
	}
	p.nextToken() // consume ']'
	return &TupleExpr{Pos: pos, Items: items}, nil
}

func (p *Parser) parseInt(pos types.Position) (Expr, error) {
	v := p.current.Value
	p.nextToken()
	val, ok := parseBigInt(v)
	if !ok {
		return nil, types.NewErr(types.SyntaxError, pos, "malformed integer literal %q", v)
	}
	return &IntExpr{Pos: pos, Val: types.NewIntFromBig(val)}, nil
}

func parseBigInt(s string) (*big.Int, bool) {
	base := 10
	digits := s
	if len(s) > 2 && s[0] == '0' {
		switch s[1] {
		case 'x', 'X':
			base, digits = 16, s[2:]
		case 'b', 'B':
			base, digits = 2, s[2:]
		case 'o', 'O':
			base, digits = 8, s[2:]
		}
	}
	v, ok := new(big.Int).SetString(digits, base)
	if !ok {
		return nil, false
	}
	return v, true
}
