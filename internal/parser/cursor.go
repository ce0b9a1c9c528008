package parser

import "ro/internal/token"

// tokenCursor walks a token list; every accessor is bounds checked.
type tokenCursor struct {
	toks token.List
	pos  int
}

func newTokenCursor(toks token.List) tokenCursor {
	return tokenCursor{toks: toks}
}

func (c *tokenCursor) done() bool {
	return c.pos >= len(c.toks)
}

func (c *tokenCursor) peek() (token.Token, bool) {
	if c.done() {
		return token.Token{}, false
	}
	return c.toks[c.pos], true
}

func (c *tokenCursor) next() (token.Token, bool) {
	t, ok := c.peek()
	if ok {
		c.pos++
	}
	return t, ok
}

// at reports whether the current token has kind k.
func (c *tokenCursor) at(k token.Kind) bool {
	t, ok := c.peek()
	return ok && t.Kind == k
}

// last returns the most recently consumed token, or the zero token.
func (c *tokenCursor) last() token.Token {
	if c.pos == 0 || c.pos > len(c.toks) {
		return token.Token{}
	}
	return c.toks[c.pos-1]
}
