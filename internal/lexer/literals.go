package lexer

import (
	"golang.org/x/text/unicode/norm"

	"jlite/internal/diag"
	"jlite/internal/token"
)

// scanNumber reads a decimal integer. Letters glued to the digits (12ab)
// make the whole run a malformed literal.
func (lx *Lexer) scanNumber() token.Token {
	start := lx.cursor.Mark()
	lx.cursor.Skip(isDigit)
	if isWordByte(lx.cursor.Peek()) {
		lx.cursor.Skip(isWordByte)
		return lx.fail(diag.LexBadNumber, start, "malformed integer literal")
	}
	return lx.finish(token.IntLit, start)
}

// scanString reads "..." keeping quotes and escapes as written. A raw
// newline or EOF before the closing quote is an error.
func (lx *Lexer) scanString() token.Token {
	start := lx.cursor.Mark()
	lx.cursor.Bump()
	for !lx.cursor.EOF() {
		switch lx.cursor.Peek() {
		case '"':
			lx.cursor.Bump()
			tok := lx.finish(token.StringLit, start)
			tok.Text = norm.NFC.String(tok.Text)
			return tok
		case '\n':
			return lx.fail(diag.LexUnterminatedString, start, "newline in string literal")
		case '\\':
			lx.cursor.Bump()
		}
		lx.cursor.Bump()
	}
	return lx.fail(diag.LexUnterminatedString, start, "unterminated string literal")
}
