package token

// Operators is the fixed operator table, in the order the language reference lists it.
// Multi-character entries are at most two runes long and are built from single-rune entries.
var Operators = [...]string{
	"(", ":", ",", ".", ")", "{", "}", ">", "=", "+", "-", "*", "/",
	"=>", "//", "/*", "*/",
}

var operatorKinds = map[string]Kind{
	"(":  LParen,
	")":  RParen,
	"{":  LBrace,
	"}":  RBrace,
	":":  Colon,
	",":  Comma,
	".":  Dot,
	">":  Gt,
	"=":  Assign,
	"+":  Plus,
	"-":  Minus,
	"*":  Star,
	"/":  Slash,
	"=>": FatArrow,
	"//": LineComment,
	"/*": BlockCommentOpen,
	"*/": BlockCommentClose,
}

// LookupOperator reports whether text is an entry of the operator table.
func LookupOperator(text string) (Kind, bool) {
	k, ok := operatorKinds[text]
	return k, ok
}

// IsOperator reports whether text is an entry of the operator table.
func IsOperator(text string) bool {
	_, ok := operatorKinds[text]
	return ok
}

// IsOperatorRune reports whether r on its own is an entry of the operator table.
func IsOperatorRune(r rune) bool {
	switch r {
	case '(', ')', '{', '}', ':', ',', '.', '>', '=', '+', '-', '*', '/':
		return true
	default:
		return false
	}
}

// IsWhitespaceRune reports whether r separates tokens.
func IsWhitespaceRune(r rune) bool {
	return r == ' ' || r == '\n' || r == '\t' || r == '\r'
}

// IsBinaryOp reports whether text is one of the arithmetic operators accepted
// in assignment expressions.
func IsBinaryOp(text string) bool {
	switch text {
	case "+", "-", "*", "/", "%":
		return true
	default:
		return false
	}
}
