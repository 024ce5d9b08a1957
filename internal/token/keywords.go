package token

var keywords = map[string]Kind{
	"class":   KwClass,
	"if":      KwIf,
	"else":    KwElse,
	"while":   KwWhile,
	"readln":  KwReadln,
	"println": KwPrintln,
	"return":  KwReturn,
	"this":    KwThis,
	"null":    KwNull,
	"new":     KwNew,
	"true":    KwTrue,
	"false":   KwFalse,
	"Int":     KwInt,
	"Bool":    KwBool,
	"String":  KwString,
	"Void":    KwVoid,
}

// LookupKeyword возвращает тип и bool если это ключевое слово.
// Ключевые слова регистрозависимые: "int" остаётся идентификатором.
func LookupKeyword(ident string) (Kind, bool) {
	k, ok := keywords[ident]
	return k, ok
}
