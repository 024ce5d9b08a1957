package lexer

import (
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"

	"jlite/internal/diag"
	"jlite/internal/token"
)

func isDigit(b byte) bool { return '0' <= b && b <= '9' }

// isWordByte: ASCII буква, цифра или '_'.
func isWordByte(b byte) bool {
	return b == '_' || isDigit(b) || ('a' <= b && b <= 'z') || ('A' <= b && b <= 'Z')
}

// scanWord reads an identifier or keyword. Identifiers may contain Unicode
// letters and digits; such names are NFC-normalised so that equal names
// compare equal in the symbol tables. Keywords are case-sensitive.
func (lx *Lexer) scanWord() token.Token {
	start := lx.cursor.Mark()
	ascii := true
	for first := true; !lx.cursor.EOF(); first = false {
		b := lx.cursor.Peek()
		if b < utf8.RuneSelf {
			if !isWordByte(b) {
				break
			}
			lx.cursor.Bump()
			continue
		}
		r, size := utf8.DecodeRune(lx.cursor.rest())
		if !unicode.IsLetter(r) && (first || !isWordTail(r)) {
			if first {
				lx.cursor.Off += uint32(size) // #nosec G115 -- size <= utf8.UTFMax
				return lx.fail(diag.LexUnknownChar, start, "unknown character '"+string(r)+"'")
			}
			break
		}
		ascii = false
		lx.cursor.Off += uint32(size) // #nosec G115 -- size <= utf8.UTFMax
	}

	tok := lx.finish(token.Ident, start)
	if !ascii {
		tok.Text = norm.NFC.String(tok.Text)
	}
	if k, ok := token.LookupKeyword(tok.Text); ok {
		tok.Kind = k
	}
	return tok
}

// isWordTail допускает цифры и комбинируемые знаки после первой буквы.
func isWordTail(r rune) bool {
	return unicode.IsDigit(r) || unicode.In(r, unicode.Mn, unicode.Mc)
}
