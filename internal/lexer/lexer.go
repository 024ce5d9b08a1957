package lexer

import (
	"jlite/internal/diag"
	"jlite/internal/source"
	"jlite/internal/token"
)

type Options struct {
	Reporter diag.Reporter // nil: ошибки только считаются, токен Invalid выдаётся всё равно
}

// Lexer turns one file into tokens on demand.
type Lexer struct {
	file   *source.File
	cursor Cursor
	opts   Options
	ahead  *token.Token
	errs   int
}

func New(file *source.File, opts Options) *Lexer {
	return &Lexer{file: file, cursor: NewCursor(file), opts: opts}
}

// Next returns the next significant token. Whitespace and comments are
// skipped; once the input is exhausted every call returns EOF.
func (lx *Lexer) Next() token.Token {
	if t := lx.ahead; t != nil {
		lx.ahead = nil
		return *t
	}
	if !lx.skipTrivia() {
		return token.Token{Kind: token.Invalid, Span: lx.here()}
	}
	if lx.cursor.EOF() {
		return token.Token{Kind: token.EOF, Span: lx.here()}
	}

	b := lx.cursor.Peek()
	switch {
	case b == '"':
		return lx.scanString()
	case isDigit(b):
		return lx.scanNumber()
	case isWordByte(b) || b >= 0x80:
		return lx.scanWord()
	}
	return lx.scanOperator()
}

// Peek returns what the following Next will return.
func (lx *Lexer) Peek() token.Token {
	if lx.ahead == nil {
		t := lx.Next()
		lx.ahead = &t
	}
	return *lx.ahead
}

func (lx *Lexer) ErrorCount() int { return lx.errs }

func (lx *Lexer) here() source.Span {
	return source.Span{File: lx.file.ID, Start: lx.cursor.Off, End: lx.cursor.Off}
}

// finish builds a token of kind k for the bytes consumed since start.
func (lx *Lexer) finish(k token.Kind, start Mark) token.Token {
	sp := lx.cursor.SpanFrom(start)
	return token.Token{Kind: k, Span: sp, Text: lx.cursor.text(sp)}
}

// fail reports code over the bytes since start and returns an Invalid token.
func (lx *Lexer) fail(code diag.Code, start Mark, msg string) token.Token {
	tok := lx.finish(token.Invalid, start)
	lx.report(code, tok.Span, msg)
	return tok
}

func (lx *Lexer) report(code diag.Code, sp source.Span, msg string) {
	lx.errs++
	diag.Report(lx.opts.Reporter, diag.NewError(code, sp, msg))
}
