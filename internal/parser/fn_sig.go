package parser

import (
	"ro/internal/hir"
	"ro/internal/token"
)

// ParseFuncSig parses the header of a fn block:
//
//	[name] [( params )] [: return-type] [=> owner]
//
// Every part is optional, the order is fixed. The header may be empty.
// A marker at the end of the header leaves its field empty; tokens after the
// owner are ignored. Only a broken parameter entry is an error.
func ParseFuncSig(header token.List) (hir.FuncSig, error) {
	var sig hir.FuncSig
	c := newTokenCursor(header)

	if t, ok := c.peek(); ok {
		switch t.Kind {
		case token.LParen, token.Colon, token.FatArrow:
		default:
			sig.Name = t.Text
			c.next()
		}
	}

	if c.at(token.LParen) {
		params, err := parseParams(&c)
		if err != nil {
			return hir.FuncSig{}, err
		}
		sig.Params = params
	}

	if c.at(token.Colon) {
		sig.ReturnType = parseTrailing(&c)
	}
	if c.at(token.FatArrow) {
		sig.Owner = parseTrailing(&c)
	}
	return sig, nil
}
