package parser

import (
	"ro/internal/hir"
	"ro/internal/token"
)

// parseParams reads "( name : type , ... )" starting at the '(' under the cursor.
// Stray and trailing commas are skipped. Duplicate names overwrite (see hir.Params.Set).
// The end of the header closes an unfinished list.
func parseParams(c *tokenCursor) (hir.Params, error) {
	c.next()
	params := hir.Params{}
	for {
		t, ok := c.peek()
		if !ok {
			return params, nil
		}
		switch t.Kind {
		case token.RParen:
			c.next()
			return params, nil
		case token.Comma:
			c.next()
			continue
		}

		name, _ := c.next()
		if name.IsOperator() {
			return nil, newError(MalformedSignature, name.Span, "expected parameter name, found %q", name.Text)
		}
		if !c.at(token.Colon) {
			return nil, newError(MalformedSignature, name.Span, "expected ':' after parameter %q", name.Text)
		}
		colon, _ := c.next()
		typ, ok := c.peek()
		if !ok || typ.IsOperator() {
			return nil, newError(MalformedSignature, colon.Span, "parameter %q has no type", name.Text)
		}
		c.next()
		params.Set(name.Text, typ.Text)
	}
}

// parseTrailing reads the token after a ':' or '=>' marker under the cursor.
// A marker at the end of the header yields "".
func parseTrailing(c *tokenCursor) string {
	c.next()
	t, _ := c.next()
	return t.Text
}
