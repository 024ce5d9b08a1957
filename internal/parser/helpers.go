package parser

import (
	"fmt"

	"jlite/internal/diag"
	"jlite/internal/source"
	"jlite/internal/token"
)

// diagSpan - лучший span для диагностики: на EOF берём позицию после последнего токена.
func (p *Parser) diagSpan() source.Span {
	peek := p.peek()
	if peek.Kind == token.EOF && p.lastSpan.End > 0 {
		return source.Span{File: p.lastSpan.File, Start: p.lastSpan.End, End: p.lastSpan.End}
	}
	return peek.Span
}

// fail запоминает первую ошибку. Если лексер уже пожаловался, берём его диагностику.
func (p *Parser) fail(code diag.Code, sp source.Span, msg string) bool {
	if p.failure != nil {
		return false
	}
	if p.lexDiag != nil {
		p.failure = &diag.Error{Diag: *p.lexDiag}
		return false
	}
	p.failure = &diag.Error{Diag: diag.NewError(code, sp, msg)}
	return false
}

// expect - ожидаем конкретный токен. Если нет - фиксируем ошибку.
func (p *Parser) expect(k token.Kind, code diag.Code, what string) (token.Token, bool) {
	if p.at(k) {
		return p.advance(), true
	}
	p.fail(code, p.diagSpan(), fmt.Sprintf("expected %s, got %s", what, p.describe(p.peek())))
	return token.Token{Kind: token.Invalid, Span: p.diagSpan()}, false
}

func (p *Parser) expectIdent(what string) (token.Token, bool) {
	return p.expect(token.Ident, diag.SynExpectIdentifier, what)
}

func (p *Parser) expectSemicolon() bool {
	_, ok := p.expect(token.Semicolon, diag.SynExpectSemicolon, "';'")
	return ok
}

func (p *Parser) describe(tok token.Token) string {
	switch tok.Kind {
	case token.EOF:
		return "end of file"
	case token.Invalid:
		return "invalid token"
	default:
		return fmt.Sprintf("%q", tok.Text)
	}
}
