package lexer

import (
	"jlite/internal/diag"
	"jlite/internal/token"
)

// Двухсимвольные операторы проверяются раньше односимвольных.
var pairOps = map[[2]byte]token.Kind{
	{'&', '&'}: token.AndAnd,
	{'|', '|'}: token.OrOr,
	{'=', '='}: token.EqEq,
	{'!', '='}: token.BangEq,
	{'<', '='}: token.LtEq,
	{'>', '='}: token.GtEq,
}

var singleOps = map[byte]token.Kind{
	'+': token.Plus,
	'-': token.Minus,
	'*': token.Star,
	'/': token.Slash,
	'=': token.Assign,
	'!': token.Bang,
	'<': token.Lt,
	'>': token.Gt,
	';': token.Semicolon,
	',': token.Comma,
	'.': token.Dot,
	'(': token.LParen,
	')': token.RParen,
	'{': token.LBrace,
	'}': token.RBrace,
}

func (lx *Lexer) scanOperator() token.Token {
	start := lx.cursor.Mark()
	if b0, b1, ok := lx.cursor.Peek2(); ok {
		if k, hit := pairOps[[2]byte{b0, b1}]; hit {
			lx.cursor.Bump()
			lx.cursor.Bump()
			return lx.finish(k, start)
		}
	}
	b := lx.cursor.Bump()
	if k, hit := singleOps[b]; hit {
		return lx.finish(k, start)
	}
	return lx.fail(diag.LexUnknownChar, start, "unknown character '"+string(rune(b))+"'")
}
