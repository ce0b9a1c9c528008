package token

var keywords = map[string]Kind{
	"fn":     KwFn,
	"result": KwResult,
	"var":    KwVar,
	"return": KwReturn,
	"ret":    KwReturn,
}

// LookupKeyword возвращает тип и bool если это ключевое слово.
// Ключевые слова регистрозависимые.
func LookupKeyword(ident string) (Kind, bool) {
	k, ok := keywords[ident]
	return k, ok
}
