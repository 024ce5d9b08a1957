package token

import (
	"jlite/internal/source"
)

// Token represents a single source token with its location.
type Token struct {
	Kind Kind
	Span source.Span
	Text string
}

// IsLiteral reports whether the token is an integer, boolean, null or string literal.
func (t Token) IsLiteral() bool {
	switch t.Kind {
	case IntLit, StringLit, KwTrue, KwFalse, KwNull:
		return true
	default:
		return false
	}
}

// IsKeyword reports whether the token is a language keyword.
func (t Token) IsKeyword() bool {
	return t.Kind >= KwClass && t.Kind <= KwVoid
}

// IsTypeKeyword reports whether the token names a built-in type.
func (t Token) IsTypeKeyword() bool {
	switch t.Kind {
	case KwInt, KwBool, KwString, KwVoid:
		return true
	default:
		return false
	}
}

// IsIdent reports whether the token is an identifier.
func (t Token) IsIdent() bool { return t.Kind == Ident }
