package parser

import (
	"strconv"

	"jlite/internal/ast"
	"jlite/internal/diag"
	"jlite/internal/token"
)

// Таблица бинарных операторов по уровням приоритета (снизу вверх).
var (
	orOps  = map[token.Kind]ast.BinaryOp{token.OrOr: ast.BinaryLogicalOr}
	andOps = map[token.Kind]ast.BinaryOp{token.AndAnd: ast.BinaryLogicalAnd}
	relOps = map[token.Kind]ast.BinaryOp{
		token.Lt: ast.BinaryLess, token.Gt: ast.BinaryGreater,
		token.LtEq: ast.BinaryLessEq, token.GtEq: ast.BinaryGreaterEq,
		token.EqEq: ast.BinaryEq, token.BangEq: ast.BinaryNotEq,
	}
	addOps = map[token.Kind]ast.BinaryOp{token.Plus: ast.BinaryAdd, token.Minus: ast.BinarySub}
	mulOps = map[token.Kind]ast.BinaryOp{token.Star: ast.BinaryMul, token.Slash: ast.BinaryDiv}
)

func (p *Parser) parseExpr() (ast.ExprID, bool) {
	return p.parseLeftAssoc(orOps, p.parseAnd)
}

func (p *Parser) parseAnd() (ast.ExprID, bool) {
	return p.parseLeftAssoc(andOps, p.parseRel)
}

// rel неассоциативен: a < b < c - синтаксическая ошибка.
func (p *Parser) parseRel() (ast.ExprID, bool) {
	left, ok := p.parseAdd()
	if !ok {
		return ast.NoExprID, false
	}
	op, isRel := relOps[p.peek().Kind]
	if !isRel {
		return left, true
	}
	p.advance()
	right, ok := p.parseAdd()
	if !ok {
		return ast.NoExprID, false
	}
	if _, again := relOps[p.peek().Kind]; again {
		p.fail(diag.SynUnexpectedToken, p.peek().Span, "comparison operators cannot be chained")
		return ast.NoExprID, false
	}
	return p.binary(op, left, right), true
}

func (p *Parser) parseAdd() (ast.ExprID, bool) {
	return p.parseLeftAssoc(addOps, p.parseMul)
}

func (p *Parser) parseMul() (ast.ExprID, bool) {
	return p.parseLeftAssoc(mulOps, p.parseUnary)
}

func (p *Parser) parseLeftAssoc(ops map[token.Kind]ast.BinaryOp, next func() (ast.ExprID, bool)) (ast.ExprID, bool) {
	left, ok := next()
	if !ok {
		return ast.NoExprID, false
	}
	for {
		op, found := ops[p.peek().Kind]
		if !found {
			return left, true
		}
		p.advance()
		right, ok := next()
		if !ok {
			return ast.NoExprID, false
		}
		left = p.binary(op, left, right)
	}
}

func (p *Parser) binary(op ast.BinaryOp, l, r ast.ExprID) ast.ExprID {
	sp := p.b.Exprs.Get(l).Span.Cover(p.b.Exprs.Get(r).Span)
	return p.b.NewBinary(sp, op, l, r)
}

// unary := ('-'|'!') unary | postfix
func (p *Parser) parseUnary() (ast.ExprID, bool) {
	var op ast.UnaryOp
	switch p.peek().Kind {
	case token.Minus:
		op = ast.UnaryNeg
	case token.Bang:
		op = ast.UnaryNot
	default:
		return p.parsePostfix()
	}
	tok := p.advance()
	x, ok := p.parseUnary()
	if !ok {
		return ast.NoExprID, false
	}
	return p.b.NewUnary(tok.Span.Cover(p.lastSpan), op, x), true
}

// postfix := primary ('.' ID | '(' args ')')*
func (p *Parser) parsePostfix() (ast.ExprID, bool) {
	x, ok := p.parsePrimary()
	if !ok {
		return ast.NoExprID, false
	}
	for {
		switch p.peek().Kind {
		case token.Dot:
			p.advance()
			member, ok := p.expectIdent("field or method name")
			if !ok {
				return ast.NoExprID, false
			}
			x = p.b.NewDot(p.b.Exprs.Get(x).Span.Cover(member.Span), x, member.Text)
		case token.LParen:
			args, ok := p.parseArgs()
			if !ok {
				return ast.NoExprID, false
			}
			x = p.b.NewCall(p.b.Exprs.Get(x).Span.Cover(p.lastSpan), x, args)
		default:
			return x, true
		}
	}
}

func (p *Parser) parseArgs() ([]ast.ExprID, bool) {
	open := p.advance() // '('
	var args []ast.ExprID
	for !p.at(token.RParen) {
		if len(args) > 0 {
			if _, ok := p.expect(token.Comma, diag.SynUnexpectedToken, "',' or ')'"); !ok {
				return nil, false
			}
		}
		if p.at(token.EOF) {
			p.fail(diag.SynUnclosedParen, open.Span, "unclosed argument list")
			return nil, false
		}
		arg, ok := p.parseExpr()
		if !ok {
			return nil, false
		}
		args = append(args, arg)
	}
	p.advance() // ')'
	return args, true
}

func (p *Parser) atExprStart() bool {
	return p.atOr(token.KwThis, token.KwNull, token.KwTrue, token.KwFalse, token.IntLit,
		token.StringLit, token.Ident, token.KwNew, token.LParen, token.Minus, token.Bang)
}

func (p *Parser) parsePrimary() (ast.ExprID, bool) {
	tok := p.peek()
	switch tok.Kind {
	case token.KwThis:
		p.advance()
		return p.b.NewThis(tok.Span), true
	case token.KwNull:
		p.advance()
		return p.b.NewNull(tok.Span), true
	case token.KwTrue, token.KwFalse:
		p.advance()
		return p.b.NewBool(tok.Span, tok.Kind == token.KwTrue), true
	case token.IntLit:
		p.advance()
		if _, err := strconv.ParseInt(tok.Text, 10, 32); err != nil {
			p.fail(diag.LexBadNumber, tok.Span, "integer literal "+tok.Text+" out of range")
			return ast.NoExprID, false
		}
		return p.b.NewInt(tok.Span, tok.Text), true
	case token.StringLit:
		p.advance()
		return p.b.NewStr(tok.Span, tok.Text[1:len(tok.Text)-1]), true
	case token.Ident:
		p.advance()
		return p.b.NewID(tok.Span, tok.Text), true
	case token.KwNew:
		p.advance()
		cls, ok := p.expect(token.Ident, diag.SynExpectClassName, "class name after 'new'")
		if !ok {
			return ast.NoExprID, false
		}
		if _, ok := p.expect(token.LParen, diag.SynUnexpectedToken, "'('"); !ok {
			return ast.NoExprID, false
		}
		if _, ok := p.expect(token.RParen, diag.SynUnclosedParen, "')'"); !ok {
			return ast.NoExprID, false
		}
		return p.b.NewNew(tok.Span.Cover(p.lastSpan), cls.Text), true
	case token.LParen:
		open := p.advance()
		x, ok := p.parseExpr()
		if !ok {
			return ast.NoExprID, false
		}
		if !p.at(token.RParen) {
			p.fail(diag.SynUnclosedParen, open.Span.Cover(p.lastSpan), "expected ')', got "+p.describe(p.peek()))
			return ast.NoExprID, false
		}
		p.advance()
		return x, true
	}
	p.fail(diag.SynExpectExpression, p.diagSpan(), "expected expression, got "+p.describe(tok))
	return ast.NoExprID, false
}
