package parser

import (
	"jlite/internal/ast"
	"jlite/internal/diag"
	"jlite/internal/token"
	"jlite/internal/types"
)

// class := 'class' CNAME '{' (type ID ';')* method* '}'
func (p *Parser) parseClass() (ast.Class, bool) {
	kw := p.advance() // 'class'
	name, ok := p.expect(token.Ident, diag.SynExpectClassName, "class name")
	if !ok {
		return ast.Class{}, false
	}
	if _, ok := p.expect(token.LBrace, diag.SynUnexpectedToken, "'{'"); !ok {
		return ast.Class{}, false
	}
	cls := ast.Class{Name: name.Text}

	for !p.at(token.RBrace) {
		if p.at(token.EOF) {
			p.fail(diag.SynUnclosedBrace, kw.Span.Cover(p.lastSpan), "class '"+cls.Name+"' is not closed")
			return ast.Class{}, false
		}
		typ, ok := p.parseTypeName()
		if !ok {
			return ast.Class{}, false
		}
		id, ok := p.expectIdent("member name")
		if !ok {
			return ast.Class{}, false
		}
		if p.at(token.Semicolon) {
			if len(cls.Methods) > 0 {
				p.fail(diag.SynUnexpectedToken, id.Span, "field '"+id.Text+"' declared after methods")
				return ast.Class{}, false
			}
			p.advance()
			cls.Vars = append(cls.Vars, ast.NewVar(typ.Text, id.Text, typ.Span.Cover(id.Span)))
			continue
		}
		m, ok := p.parseMethodRest(typ, id)
		if !ok {
			return ast.Class{}, false
		}
		cls.Methods = append(cls.Methods, m)
	}
	end := p.advance() // '}'
	cls.Span = kw.Span.Cover(end.Span)
	return cls, true
}

// parseTypeName: 'Int' | 'Bool' | 'String' | 'Void' | CNAME
func (p *Parser) parseTypeName() (token.Token, bool) {
	tok := p.peek()
	if tok.IsTypeKeyword() || tok.Kind == token.Ident {
		return p.advance(), true
	}
	p.fail(diag.SynExpectType, p.diagSpan(), "expected type, got "+p.describe(tok))
	return tok, false
}

// method := type ID '(' params ')' '{' (type ID ';')* stmt* '}'
func (p *Parser) parseMethodRest(ret, id token.Token) (ast.Method, bool) {
	m := ast.Method{ID: id.Text, ReturnType: types.FromName(ret.Text)}
	open, ok := p.expect(token.LParen, diag.SynUnexpectedToken, "'(' or ';'")
	if !ok {
		return m, false
	}
	for !p.at(token.RParen) {
		if len(m.Params) > 0 {
			if _, ok := p.expect(token.Comma, diag.SynUnexpectedToken, "',' or ')'"); !ok {
				return m, false
			}
		}
		if p.at(token.EOF) {
			p.fail(diag.SynUnclosedParen, open.Span, "unclosed parameter list")
			return m, false
		}
		typ, ok := p.parseTypeName()
		if !ok {
			return m, false
		}
		pid, ok := p.expectIdent("parameter name")
		if !ok {
			return m, false
		}
		m.Params = append(m.Params, ast.NewVar(typ.Text, pid.Text, typ.Span.Cover(pid.Span)))
	}
	p.advance() // ')'

	lbrace, ok := p.expect(token.LBrace, diag.SynUnexpectedToken, "'{'")
	if !ok {
		return m, false
	}
	for p.atVarDecl() {
		typ := p.advance()
		vid := p.advance()
		if !p.expectSemicolon() {
			return m, false
		}
		m.Vars = append(m.Vars, ast.NewVar(typ.Text, vid.Text, typ.Span.Cover(vid.Span)))
	}
	stmts, ok := p.parseStmtsUntilBrace(lbrace)
	if !ok {
		return m, false
	}
	m.Stmts = stmts
	m.Span = ret.Span.Cover(p.lastSpan)
	return m, true
}

// atVarDecl: объявление локальной переменной начинается с type-keyword
// или с пары Ident Ident.
func (p *Parser) atVarDecl() bool {
	tok := p.peek()
	if tok.IsTypeKeyword() {
		return p.peekN(1).Kind == token.Ident
	}
	return tok.Kind == token.Ident && p.peekN(1).Kind == token.Ident
}
