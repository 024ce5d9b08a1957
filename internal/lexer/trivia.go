package lexer

import (
	"bytes"

	"jlite/internal/diag"
)

func isSpace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\n' || b == '\r' || b == '\f'
}

// skipTrivia drops whitespace, // line comments and /* */ block comments.
// It returns false after reporting a block comment left open at EOF.
func (lx *Lexer) skipTrivia() bool {
	for {
		lx.cursor.Skip(isSpace)
		b0, b1, ok := lx.cursor.Peek2()
		if !ok || b0 != '/' {
			return true
		}
		switch b1 {
		case '/':
			lx.cursor.Skip(func(b byte) bool { return b != '\n' })
		case '*':
			start := lx.cursor.Mark()
			end := bytes.Index(lx.cursor.rest()[2:], []byte("*/"))
			if end < 0 {
				lx.cursor.Off += uint32(len(lx.cursor.rest())) // #nosec G115 -- bounded by NewCursor
				lx.report(diag.LexUnterminatedBlockComment, lx.cursor.SpanFrom(start), "unterminated block comment")
				return false
			}
			lx.cursor.Off += uint32(end + 4) // #nosec G115 -- bounded by NewCursor
		default:
			return true
		}
	}
}
