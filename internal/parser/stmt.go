package parser

import (
	"jlite/internal/ast"
	"jlite/internal/diag"
	"jlite/internal/token"
)

// parseStmtsUntilBrace читает stmt* и закрывающую '}'.
func (p *Parser) parseStmtsUntilBrace(open token.Token) ([]ast.StmtID, bool) {
	var out []ast.StmtID
	for !p.at(token.RBrace) {
		if p.at(token.EOF) {
			p.fail(diag.SynUnclosedBrace, open.Span, "unclosed '{'")
			return nil, false
		}
		id, ok := p.parseStmt()
		if !ok {
			return nil, false
		}
		out = append(out, id)
	}
	p.advance() // '}'
	return out, true
}

func (p *Parser) parseBlock() ([]ast.StmtID, bool) {
	open, ok := p.expect(token.LBrace, diag.SynUnexpectedToken, "'{'")
	if !ok {
		return nil, false
	}
	return p.parseStmtsUntilBrace(open)
}

func (p *Parser) parseStmt() (ast.StmtID, bool) {
	switch p.peek().Kind {
	case token.KwIf:
		return p.parseIf()
	case token.KwWhile:
		return p.parseWhile()
	case token.KwReadln:
		return p.parseReadln()
	case token.KwPrintln:
		return p.parsePrintln()
	case token.KwReturn:
		return p.parseReturn()
	default:
		return p.parseExprStmt()
	}
}

// parseParenCond: '(' expr ')'
func (p *Parser) parseParenCond() (ast.ExprID, bool) {
	open, ok := p.expect(token.LParen, diag.SynUnexpectedToken, "'('")
	if !ok {
		return ast.NoExprID, false
	}
	cond, ok := p.parseExpr()
	if !ok {
		return ast.NoExprID, false
	}
	if !p.at(token.RParen) {
		p.fail(diag.SynUnclosedParen, open.Span.Cover(p.lastSpan), "expected ')', got "+p.describe(p.peek()))
		return ast.NoExprID, false
	}
	p.advance()
	return cond, true
}

func (p *Parser) parseIf() (ast.StmtID, bool) {
	kw := p.advance()
	cond, ok := p.parseParenCond()
	if !ok {
		return ast.NoStmtID, false
	}
	then, ok := p.parseBlock()
	if !ok {
		return ast.NoStmtID, false
	}
	var els []ast.StmtID
	if p.at(token.KwElse) {
		p.advance()
		if els, ok = p.parseBlock(); !ok {
			return ast.NoStmtID, false
		}
	}
	return p.b.NewIf(kw.Span.Cover(p.lastSpan), cond, then, els), true
}

func (p *Parser) parseWhile() (ast.StmtID, bool) {
	kw := p.advance()
	cond, ok := p.parseParenCond()
	if !ok {
		return ast.NoStmtID, false
	}
	body, ok := p.parseBlock()
	if !ok {
		return ast.NoStmtID, false
	}
	return p.b.NewWhile(kw.Span.Cover(p.lastSpan), cond, body), true
}

// readln '(' ID ')' ';'
func (p *Parser) parseReadln() (ast.StmtID, bool) {
	kw := p.advance()
	if _, ok := p.expect(token.LParen, diag.SynUnexpectedToken, "'('"); !ok {
		return ast.NoStmtID, false
	}
	id, ok := p.expectIdent("identifier")
	if !ok {
		return ast.NoStmtID, false
	}
	if _, ok := p.expect(token.RParen, diag.SynUnclosedParen, "')'"); !ok {
		return ast.NoStmtID, false
	}
	if !p.expectSemicolon() {
		return ast.NoStmtID, false
	}
	return p.b.NewReadln(kw.Span.Cover(p.lastSpan), id.Text), true
}

func (p *Parser) parsePrintln() (ast.StmtID, bool) {
	kw := p.advance()
	x, ok := p.parseParenCond()
	if !ok || !p.expectSemicolon() {
		return ast.NoStmtID, false
	}
	return p.b.NewPrintln(kw.Span.Cover(p.lastSpan), x), true
}

// return [expr] ';'
func (p *Parser) parseReturn() (ast.StmtID, bool) {
	kw := p.advance()
	value := ast.NoExprID
	if !p.at(token.Semicolon) {
		x, ok := p.parseExpr()
		if !ok {
			return ast.NoStmtID, false
		}
		value = x
	}
	if !p.expectSemicolon() {
		return ast.NoStmtID, false
	}
	return p.b.NewReturn(kw.Span.Cover(p.lastSpan), value), true
}

// Присваивание, присваивание полю или вызов: сначала читаем postfix, потом решаем.
func (p *Parser) parseExprStmt() (ast.StmtID, bool) {
	start := p.peek()
	if !p.atExprStart() {
		p.fail(diag.SynBadStatement, p.diagSpan(), "expected statement, got "+p.describe(start))
		return ast.NoStmtID, false
	}
	target, ok := p.parsePostfix()
	if !ok {
		return ast.NoStmtID, false
	}
	exprs := p.b.Exprs

	if p.at(token.Assign) {
		p.advance()
		rhs, ok := p.parseExpr()
		if !ok || !p.expectSemicolon() {
			return ast.NoStmtID, false
		}
		sp := start.Span.Cover(p.lastSpan)
		if name, isID := exprs.Ident(target); isID {
			return p.b.NewAssign(sp, name, rhs), true
		}
		if dot, isDot := exprs.Dot(target); isDot {
			return p.b.NewFieldAssign(sp, dot.Atom, dot.Member, rhs), true
		}
		p.fail(diag.SynBadStatement, exprs.Get(target).Span, "left side of assignment must be a variable or a field")
		return ast.NoStmtID, false
	}

	if _, isCall := exprs.Call(target); !isCall {
		p.fail(diag.SynBadStatement, exprs.Get(target).Span, "expression is not a statement")
		return ast.NoStmtID, false
	}
	if !p.expectSemicolon() {
		return ast.NoStmtID, false
	}
	return p.b.NewCallStmt(start.Span.Cover(p.lastSpan), target), true
}
