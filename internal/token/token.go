package token

import (
	"ro/internal/source"
)

// Token represents a single source token with its location.
type Token struct {
	Kind Kind
	Span source.Span
	Text string
}

// List is an ordered token sequence. Stages slice and copy lists, they never edit them in place.
type List []Token

// Classify determines the kind of an already delimited token text.
func Classify(text string) Kind {
	if text == "" {
		return Invalid
	}
	if k, ok := LookupOperator(text); ok {
		return k
	}
	if text == "%" {
		return Percent
	}
	if k, ok := LookupKeyword(text); ok {
		return k
	}
	if text[0] >= '0' && text[0] <= '9' {
		return Number
	}
	return Ident
}

// Is reports whether the token text equals s.
func (t Token) Is(s string) bool { return t.Text == s }

// IsKeyword reports whether the token is a language keyword.
func (t Token) IsKeyword() bool {
	switch t.Kind {
	case KwFn, KwResult, KwVar, KwReturn:
		return true
	default:
		return false
	}
}

// IsOperator reports whether the token is an entry of the operator table.
func (t Token) IsOperator() bool {
	return t.Kind >= LParen && t.Kind <= BlockCommentClose && t.Kind != Percent
}

// IsIdent reports whether the token is an identifier.
func (t Token) IsIdent() bool { return t.Kind == Ident }

// Texts returns the token texts in order.
func (l List) Texts() []string {
	out := make([]string, len(l))
	for i, t := range l {
		out[i] = t.Text
	}
	return out
}

// Clone returns an independent copy of l[from:to].
func (l List) Clone(from, to int) List {
	if from >= to {
		return List{}
	}
	out := make(List, to-from)
	copy(out, l[from:to])
	return out
}

// Span returns the span covering all tokens of the list.
func (l List) Span() source.Span {
	if len(l) == 0 {
		return source.Span{}
	}
	return l[0].Span.Cover(l[len(l)-1].Span)
}

// FromTexts builds a list from bare texts. Spans stay zero; intended for tests and tools.
func FromTexts(texts ...string) List {
	out := make(List, len(texts))
	for i, s := range texts {
		out[i] = Token{Kind: Classify(s), Text: s}
	}
	return out
}
