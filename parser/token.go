package parser

import "github.com/fumisaitou/blisp/types"

// TokenType enumerates the lexical categories of BLisp source text.
type TokenType int

const (
	TOKEN_EOF TokenType = iota
	TOKEN_LPAREN
	TOKEN_RPAREN
	TOKEN_LBRACKET
	TOKEN_RBRACKET
	TOKEN_QUOTE
	TOKEN_INT
	TOKEN_TRUE
	TOKEN_FALSE
	TOKEN_CHAR
	TOKEN_STRING
	TOKEN_IDENT
	TOKEN_ILLEGAL
)

func (t TokenType) String() string {
	switch t {
	case TOKEN_EOF:
		return "EOF"
	case TOKEN_LPAREN:
		return "("
	case TOKEN_RPAREN:
		return ")"
	case TOKEN_LBRACKET:
		return "["
	case TOKEN_RBRACKET:
		return "]"
	case TOKEN_QUOTE:
		return "'"
	case TOKEN_INT:
		return "INT"
	case TOKEN_TRUE:
		return "true"
	case TOKEN_FALSE:
		return "false"
	case TOKEN_CHAR:
		return "CHAR"
	case TOKEN_STRING:
		return "STRING"
	case TOKEN_IDENT:
		return "IDENT"
	default:
		return "ILLEGAL"
	}
}

// Token is a single lexeme with its source position.
type Token struct {
	Type     TokenType
	Value    string
	Position types.Position
}
