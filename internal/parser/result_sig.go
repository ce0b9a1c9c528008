package parser

import (
	"ro/internal/hir"
	"ro/internal/token"
)

// ParseResultSig parses the header of a result block:
//
//	name [( params ) [: return-type]]
//
// Without '(' right after the name the parameter list is empty and the rest
// of the header is ignored.
func ParseResultSig(header token.List) (hir.ResultSig, error) {
	c := newTokenCursor(header)

	name, ok := c.next()
	if !ok {
		return hir.ResultSig{}, newError(MalformedSignature, header.Span(), "result is missing its name")
	}
	// "result ( ... )": имени нет, список параметров на его месте
	if name.IsOperator() {
		return hir.ResultSig{}, newError(MalformedSignature, name.Span, "expected result name, found %q", name.Text)
	}
	sig := hir.ResultSig{Name: name.Text, Params: hir.Params{}}

	if !c.at(token.LParen) {
		return sig, nil
	}
	params, err := parseParams(&c)
	if err != nil {
		return hir.ResultSig{}, err
	}
	sig.Params = params

	if c.at(token.Colon) {
		sig.ReturnType = parseTrailing(&c)
	}
	return sig, nil
}
