package token

// Kind represents the category of a source token.
type Kind uint8

const (
	// Invalid indicates an erroneous token.
	Invalid Kind = iota
	// EOF marks the end of the source input.
	EOF

	// Ident represents an identifier token (variable, method or class name).
	Ident

	KwClass   // class
	KwIf      // if
	KwElse    // else
	KwWhile   // while
	KwReadln  // readln
	KwPrintln // println
	KwReturn  // return
	KwThis    // this
	KwNull    // null
	KwNew     // new
	KwTrue    // true
	KwFalse   // false
	KwInt     // Int
	KwBool    // Bool
	KwString  // String
	KwVoid    // Void

	// IntLit represents a decimal integer literal.
	IntLit
	// StringLit represents a double-quoted string literal (Text keeps the quotes).
	StringLit

	Plus      // +
	Minus     // -
	Star      // *
	Slash     // /
	Assign    // =
	EqEq      // ==
	Bang      // !
	BangEq    // !=
	Lt        // <
	LtEq      // <=
	Gt        // >
	GtEq      // >=
	AndAnd    // &&
	OrOr      // ||
	Semicolon // ;
	Comma     // ,
	Dot       // .
	LParen    // (
	RParen    // )
	LBrace    // {
	RBrace    // }
)

var kindNames = [...]string{
	Invalid:   "Invalid",
	EOF:       "EOF",
	Ident:     "Ident",
	KwClass:   "class",
	KwIf:      "if",
	KwElse:    "else",
	KwWhile:   "while",
	KwReadln:  "readln",
	KwPrintln: "println",
	KwReturn:  "return",
	KwThis:    "this",
	KwNull:    "null",
	KwNew:     "new",
	KwTrue:    "true",
	KwFalse:   "false",
	KwInt:     "Int",
	KwBool:    "Bool",
	KwString:  "String",
	KwVoid:    "Void",
	IntLit:    "IntLit",
	StringLit: "StringLit",
	Plus:      "+",
	Minus:     "-",
	Star:      "*",
	Slash:     "/",
	Assign:    "=",
	EqEq:      "==",
	Bang:      "!",
	BangEq:    "!=",
	Lt:        "<",
	LtEq:      "<=",
	Gt:        ">",
	GtEq:      ">=",
	AndAnd:    "&&",
	OrOr:      "||",
	Semicolon: ";",
	Comma:     ",",
	Dot:       ".",
	LParen:    "(",
	RParen:    ")",
	LBrace:    "{",
	RBrace:    "}",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) && kindNames[k] != "" {
		return kindNames[k]
	}
	return "Unknown"
}
