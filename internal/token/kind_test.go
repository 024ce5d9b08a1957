package token_test

import (
	"testing"

	"jlite/internal/source"
	"jlite/internal/token"
)

func tok(k token.Kind) token.Token {
	return token.Token{Kind: k, Span: source.Span{Start: 0, End: 0}}
}

func TestIsLiteral(t *testing.T) {
	lits := []token.Kind{token.IntLit, token.StringLit, token.KwTrue, token.KwFalse, token.KwNull}
	for _, k := range lits {
		if !tok(k).IsLiteral() {
			t.Fatalf("%v should be literal", k)
		}
	}
	non := []token.Kind{token.Ident, token.KwIf, token.Plus, token.LParen}
	for _, k := range non {
		if tok(k).IsLiteral() {
			t.Fatalf("%v must NOT be literal", k)
		}
	}
}

func TestTypeKeywords(t *testing.T) {
	for _, k := range []token.Kind{token.KwInt, token.KwBool, token.KwString, token.KwVoid} {
		tk := tok(k)
		if !tk.IsTypeKeyword() || !tk.IsKeyword() {
			t.Fatalf("%v should be a type keyword", k)
		}
	}
	if tok(token.KwClass).IsTypeKeyword() {
		t.Fatal("class is not a type keyword")
	}
}

func TestKindString(t *testing.T) {
	cases := map[token.Kind]string{
		token.EOF:    "EOF",
		token.LtEq:   "<=",
		token.KwVoid: "Void",
		token.OrOr:   "||",
	}
	for k, want := range cases {
		if got := k.String(); got != want {
			t.Errorf("%d.String() = %q, want %q", k, got, want)
		}
	}
}
