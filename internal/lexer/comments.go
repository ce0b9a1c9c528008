package lexer

import (
	"ro/internal/diag"
	"ro/internal/token"
)

const diagUnterminatedComment = diag.LexUnterminatedBlockComment

// RemoveBlockComments drops every token between "/*" and "*/" together with the
// markers. The state is a toggle, not a depth counter: a second "/*" inside a
// comment changes nothing and the first "*/" closes the comment.
func RemoveBlockComments(tokens token.List) token.List {
	out, _ := filterBlockComments(tokens)
	return out
}

// filterBlockComments returns the filtered list and, when the input ends inside
// a comment, the marker that opened it.
func filterBlockComments(tokens token.List) (token.List, *token.Token) {
	out := make(token.List, 0, len(tokens))
	var open *token.Token
	for i := range tokens {
		switch tokens[i].Text {
		case "/*":
			if open == nil {
				open = &tokens[i]
			}
		case "*/":
			open = nil
		default:
			if open == nil {
				out = append(out, tokens[i])
			}
		}
	}
	return out, open
}
