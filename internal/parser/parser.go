package parser

import (
	"slices"

	"jlite/internal/ast"
	"jlite/internal/diag"
	"jlite/internal/lexer"
	"jlite/internal/source"
	"jlite/internal/token"
)

type Options struct {
	Reporter diag.Reporter // получает единственную диагностику при ошибке
	Hints    ast.Hints
}

// Parser - состояние парсера на один файл. Разбор fail-fast: первая ошибка
// запоминается в failure, все распознаватели после неё возвращают false.
type Parser struct {
	lx       *lexer.Lexer
	b        *ast.Builder
	file     *source.File
	opts     Options
	buf      []token.Token // окно предпросмотра поверх лексера
	lastSpan source.Span   // span последнего съеденного токена для лучшей диагностики
	lexDiag  *diag.Diagnostic
	failure  *diag.Error
}

// ParseFile разбирает один файл в ast.Program. При синтаксической или
// лексической ошибке возвращает *diag.Error; программа в этом случае nil.
func ParseFile(file *source.File, opts Options) (*ast.Program, error) {
	p := &Parser{
		b:    ast.NewBuilder(opts.Hints),
		file: file,
		opts: opts,
	}
	p.lx = lexer.New(file, lexer.Options{Reporter: lexCapture{p}})
	p.lastSpan = source.Span{File: file.ID}

	prog, ok := p.parseProgram()
	if !ok {
		if p.failure == nil {
			p.fail(diag.SynUnexpectedToken, p.diagSpan(), "unexpected token")
		}
		diag.Report(p.opts.Reporter, p.failure.Diag)
		return nil, p.failure
	}
	return prog, nil
}

// lexCapture запоминает первую лексическую ошибку, чтобы отдать её вместо
// менее точной синтаксической.
type lexCapture struct{ p *Parser }

func (c lexCapture) Report(d diag.Diagnostic) {
	if c.p.lexDiag == nil && d.Severity == diag.SevError {
		c.p.lexDiag = &d
	}
}

func (p *Parser) parseProgram() (*ast.Program, bool) {
	start := p.peek().Span
	var classes []ast.Class
	for !p.at(token.EOF) {
		if !p.at(token.KwClass) {
			p.fail(diag.SynUnexpectedTopLevel, p.diagSpan(), "expected 'class', got "+p.describe(p.peek()))
			return nil, false
		}
		cls, ok := p.parseClass()
		if !ok {
			return nil, false
		}
		classes = append(classes, cls)
	}
	return p.b.Program(classes, start.Cover(p.lastSpan)), true
}

func (p *Parser) peek() token.Token { return p.peekN(0) }

// peekN смотрит на n токенов вперёд, не потребляя их.
func (p *Parser) peekN(n int) token.Token {
	for len(p.buf) <= n {
		tok := p.lx.Next()
		p.buf = append(p.buf, tok)
		if tok.Kind == token.EOF {
			break
		}
	}
	if n >= len(p.buf) {
		return p.buf[len(p.buf)-1]
	}
	return p.buf[n]
}

func (p *Parser) at(k token.Kind) bool {
	return p.peek().Kind == k
}

func (p *Parser) atOr(kinds ...token.Kind) bool {
	return slices.Contains(kinds, p.peek().Kind)
}

// advance - съедает следующий токен и обновляет lastSpan
func (p *Parser) advance() token.Token {
	tok := p.peek()
	if tok.Kind != token.EOF {
		p.buf = p.buf[1:]
	}
	if tok.Kind != token.EOF && tok.Kind != token.Invalid {
		p.lastSpan = tok.Span
	}
	return tok
}
