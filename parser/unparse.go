package parser

import "strings"

// Unparse converts a parsed Expr back to source text. Grounded on the
// teacher's parser/unparse.go round-trip printer, simplified because
// BLisp's S-expression grammar carries no operator precedence to
// reconstruct.
func Unparse(e Expr) string {
	switch n := e.(type) {
	case *IntExpr:
		return n.Val.String()
	case *BoolExpr:
		if n.Val {
			return "true"
		}
		return "false"
	case *CharExpr:
		return "#\\" + string(n.Val)
	case *StringExpr:
		return "\"" + n.Val + "\""
	case *IdentExpr:
		return n.Name
	case *ListExpr:
		return "(" + unparseItems(n.Items) + ")"
	case *TupleExpr:
		return "[" + unparseItems(n.Items) + "]"
	case *QuoteExpr:
		return "'(" + unparseItems(n.Items) + ")"
	default:
		return "<?>"
	}
}

func unparseItems(items []Expr) string {
	parts := make([]string, len(items))
	for i, it := range items {
		parts[i] = Unparse(it)
	}
	return strings.Join(parts, " ")
}
