package token

// Kind represents the category of a source token.
type Kind uint8

const (
	// Invalid indicates an erroneous token.
	Invalid Kind = iota

	// Ident represents an identifier token.
	Ident
	// Number represents a numeric literal (any token starting with a digit).
	Number

	// KwFn represents the 'fn' keyword.
	KwFn // fn
	// KwResult represents the 'result' keyword.
	KwResult // result
	// KwVar represents the 'var' keyword.
	KwVar // var
	// KwReturn represents the 'return' keyword and its short form 'ret'.
	KwReturn // return, ret

	// LParen represents the left parenthesis operator token.
	LParen // (
	// RParen represents the right parenthesis operator token.
	RParen // )
	// LBrace represents the left brace operator token.
	LBrace // {
	// RBrace represents the right brace operator token.
	RBrace // }
	// Colon represents the colon operator token.
	Colon // :
	// Comma represents the comma operator token.
	Comma // ,
	// Dot represents the dot operator token.
	Dot // .
	// Gt represents the greater-than operator token.
	Gt // >
	// Assign represents the assign operator token.
	Assign // =
	// Plus represents the plus operator token.
	Plus // +
	// Minus represents the minus operator token.
	Minus // -
	// Star represents the star operator token.
	Star // *
	// Slash represents the slash operator token.
	Slash // /
	// Percent represents the percent token. It is not part of the splitting
	// operator table and only appears when surrounded by whitespace.
	Percent // %
	// FatArrow represents the owner reference operator token.
	FatArrow // =>
	// LineComment represents the line comment marker. The lexer never emits it.
	LineComment // //
	// BlockCommentOpen represents the block comment opening marker.
	BlockCommentOpen // /*
	// BlockCommentClose represents the block comment closing marker.
	BlockCommentClose // */
)

var kindNames = [...]string{
	Invalid:           "Invalid",
	Ident:             "Ident",
	Number:            "Number",
	KwFn:              "KwFn",
	KwResult:          "KwResult",
	KwVar:             "KwVar",
	KwReturn:          "KwReturn",
	LParen:            "LParen",
	RParen:            "RParen",
	LBrace:            "LBrace",
	RBrace:            "RBrace",
	Colon:             "Colon",
	Comma:             "Comma",
	Dot:               "Dot",
	Gt:                "Gt",
	Assign:            "Assign",
	Plus:              "Plus",
	Minus:             "Minus",
	Star:              "Star",
	Slash:             "Slash",
	Percent:           "Percent",
	FatArrow:          "FatArrow",
	LineComment:       "LineComment",
	BlockCommentOpen:  "BlockCommentOpen",
	BlockCommentClose: "BlockCommentClose",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) && kindNames[k] != "" {
		return kindNames[k]
	}
	return "Kind(?)"
}
