package lexer_test

import (
	"fmt"
	"strings"
	"testing"

	"jlite/internal/diag"
	"jlite/internal/lexer"
	"jlite/internal/source"
	"jlite/internal/token"
)

// testReporter собирает все диагностики, полученные от лексера
type testReporter struct {
	diagnostics []diag.Diagnostic
}

func (r *testReporter) Report(d diag.Diagnostic) {
	r.diagnostics = append(r.diagnostics, d)
}

func (r *testReporter) messages() []string {
	out := make([]string, 0, len(r.diagnostics))
	for _, d := range r.diagnostics {
		out = append(out, fmt.Sprintf("[%s] %s", d.Code.ID(), d.Message))
	}
	return out
}

func makeTestLexer(input string) (*lexer.Lexer, *testReporter) {
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("test.j", []byte(input)))
	rep := &testReporter{}
	return lexer.New(file, lexer.Options{Reporter: rep}), rep
}

func collectAllTokens(lx *lexer.Lexer) []token.Token {
	var tokens []token.Token
	for {
		tok := lx.Next()
		if tok.Kind == token.EOF {
			return tokens
		}
		tokens = append(tokens, tok)
		if len(tokens) > 1000 {
			panic("lexer does not terminate")
		}
	}
}

func tokensToString(tokens []token.Token) string {
	parts := make([]string, len(tokens))
	for i, tok := range tokens {
		parts[i] = fmt.Sprintf("%v(%q)", tok.Kind, tok.Text)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

func expectTokens(t *testing.T, input string, expected ...token.Kind) []token.Token {
	t.Helper()
	lx, rep := makeTestLexer(input)
	tokens := collectAllTokens(lx)
	if len(tokens) != len(expected) {
		t.Fatalf("expected %d tokens, got %d\ninput: %q\ntokens: %s\nerrors: %v",
			len(expected), len(tokens), input, tokensToString(tokens), rep.messages())
	}
	for i, tok := range tokens {
		if tok.Kind != expected[i] {
			t.Errorf("token %d: expected %v, got %v (text %q)", i, expected[i], tok.Kind, tok.Text)
		}
	}
	return tokens
}

func TestKeywordsAndIdents(t *testing.T) {
	tokens := expectTokens(t, "class Foo { Int x; String s; Void main() { } }",
		token.KwClass, token.Ident, token.LBrace,
		token.KwInt, token.Ident, token.Semicolon,
		token.KwString, token.Ident, token.Semicolon,
		token.KwVoid, token.Ident, token.LParen, token.RParen, token.LBrace, token.RBrace,
		token.RBrace,
	)
	if tokens[1].Text != "Foo" {
		t.Errorf("class name text = %q", tokens[1].Text)
	}
}

func TestKeywordsAreCaseSensitive(t *testing.T) {
	expectTokens(t, "int Int bool Bool", token.Ident, token.KwInt, token.Ident, token.KwBool)
}

func TestOperatorsGreedy(t *testing.T) {
	expectTokens(t, "== != <= >= && || < > = ! + - * / . , ;",
		token.EqEq, token.BangEq, token.LtEq, token.GtEq, token.AndAnd, token.OrOr,
		token.Lt, token.Gt, token.Assign, token.Bang,
		token.Plus, token.Minus, token.Star, token.Slash,
		token.Dot, token.Comma, token.Semicolon,
	)
	expectTokens(t, "a<=b", token.Ident, token.LtEq, token.Ident)
	expectTokens(t, "!!x", token.Bang, token.Bang, token.Ident)
}

func TestNumbers(t *testing.T) {
	tokens := expectTokens(t, "0 42 007", token.IntLit, token.IntLit, token.IntLit)
	if tokens[1].Text != "42" {
		t.Errorf("got %q", tokens[1].Text)
	}

	lx, rep := makeTestLexer("12ab")
	tok := lx.Next()
	if tok.Kind != token.Invalid {
		t.Fatalf("expected Invalid, got %v", tok.Kind)
	}
	if len(rep.diagnostics) != 1 || rep.diagnostics[0].Code != diag.LexBadNumber {
		t.Fatalf("unexpected diagnostics: %v", rep.messages())
	}
}

func TestStrings(t *testing.T) {
	tokens := expectTokens(t, `"hello" "a\"b" ""`, token.StringLit, token.StringLit, token.StringLit)
	if tokens[0].Text != `"hello"` {
		t.Errorf("text = %q", tokens[0].Text)
	}
	if tokens[1].Text != `"a\"b"` {
		t.Errorf("escape text = %q", tokens[1].Text)
	}
}

func TestUnterminatedString(t *testing.T) {
	for _, input := range []string{`"abc`, "\"abc\n\""} {
		lx, rep := makeTestLexer(input)
		tok := lx.Next()
		if tok.Kind != token.Invalid {
			t.Errorf("%q: expected Invalid, got %v", input, tok.Kind)
		}
		if len(rep.diagnostics) == 0 || rep.diagnostics[0].Code != diag.LexUnterminatedString {
			t.Errorf("%q: unexpected diagnostics %v", input, rep.messages())
		}
	}
}

func TestComments(t *testing.T) {
	expectTokens(t, "a // line comment\n b /* block\n comment */ c",
		token.Ident, token.Ident, token.Ident)
	expectTokens(t, "x / y", token.Ident, token.Slash, token.Ident)
}

func TestUnterminatedBlockComment(t *testing.T) {
	lx, rep := makeTestLexer("a /* never closed")
	if tok := lx.Next(); tok.Kind != token.Ident {
		t.Fatalf("expected Ident, got %v", tok.Kind)
	}
	if tok := lx.Next(); tok.Kind != token.Invalid {
		t.Fatalf("expected Invalid, got %v", tok.Kind)
	}
	if len(rep.diagnostics) != 1 || rep.diagnostics[0].Code != diag.LexUnterminatedBlockComment {
		t.Fatalf("unexpected diagnostics: %v", rep.messages())
	}
}

func TestUnknownChar(t *testing.T) {
	lx, rep := makeTestLexer("a # b")
	collectAllTokens(lx)
	if len(rep.diagnostics) != 1 || rep.diagnostics[0].Code != diag.LexUnknownChar {
		t.Fatalf("unexpected diagnostics: %v", rep.messages())
	}
	if lx.ErrorCount() != 1 {
		t.Errorf("ErrorCount = %d", lx.ErrorCount())
	}
}

func TestUnicodeIdentNormalized(t *testing.T) {
	// "é" в разложенной форме (e + U+0301) приводится к NFC
	tokens := expectTokens(t, "cafe\u0301 caf\u00e9", token.Ident, token.Ident)
	if tokens[0].Text != tokens[1].Text {
		t.Errorf("NFC mismatch: %q vs %q", tokens[0].Text, tokens[1].Text)
	}
}

func TestPeekDoesNotConsume(t *testing.T) {
	lx, _ := makeTestLexer("x = 1;")
	if p := lx.Peek(); p.Kind != token.Ident {
		t.Fatalf("peek = %v", p.Kind)
	}
	if n := lx.Next(); n.Kind != token.Ident || n.Text != "x" {
		t.Fatalf("next = %v %q", n.Kind, n.Text)
	}
	if n := lx.Next(); n.Kind != token.Assign {
		t.Fatalf("next = %v", n.Kind)
	}
}

func TestSpans(t *testing.T) {
	lx, _ := makeTestLexer("  abc  12")
	tok := lx.Next()
	if tok.Span.Start != 2 || tok.Span.End != 5 {
		t.Errorf("ident span = %v", tok.Span)
	}
	tok = lx.Next()
	if tok.Span.Start != 7 || tok.Span.End != 9 {
		t.Errorf("number span = %v", tok.Span)
	}
	eof := lx.Next()
	if eof.Kind != token.EOF || !eof.Span.Empty() {
		t.Errorf("eof = %v %v", eof.Kind, eof.Span)
	}
}
