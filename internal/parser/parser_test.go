package parser_test

import (
	"testing"

	"jlite/internal/ast"
	"jlite/internal/diag"
	"jlite/internal/parser"
	"jlite/internal/source"
	"jlite/internal/testkit"
	"jlite/internal/types"
)

func parse(t *testing.T, src string) (*ast.Program, *diag.Bag, error) {
	t.Helper()
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("test.j", []byte(src)))
	bag := diag.NewBag(10)
	prog, err := parser.ParseFile(file, parser.Options{Reporter: diag.BagReporter{Bag: bag}})
	return prog, bag, err
}

func mustParse(t *testing.T, src string) *ast.Program {
	t.Helper()
	prog, _, err := parse(t, src)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	return prog
}

func expectParseError(t *testing.T, src string, code diag.Code) {
	t.Helper()
	prog, bag, err := parse(t, src)
	if err == nil {
		t.Fatalf("expected %s, parse succeeded", code.ID())
	}
	if prog != nil {
		t.Errorf("program must be nil on error")
	}
	if got := diag.CodeOf(err); got != code {
		t.Fatalf("expected %s, got %s (%v)", code.ID(), got.ID(), err)
	}
	if bag.Len() != 1 {
		t.Errorf("expected exactly one reported diagnostic, got %d", bag.Len())
	}
}

const pointSrc = `
class Main {
  Void main() {
    Point p;
    Int s;
    p = new Point();
    s = p.sum();
    println(s);
  }
}
class Point {
  Int x;
  Int y;
  Int sum() { return x + y; }
}
`

func TestParseClassesFieldsMethods(t *testing.T) {
	prog := mustParse(t, pointSrc)
	if len(prog.Classes) != 2 {
		t.Fatalf("classes = %d", len(prog.Classes))
	}
	main := prog.Classes[0]
	if main.Name != "Main" || len(main.Methods) != 1 || main.Methods[0].ID != "main" {
		t.Fatalf("main class = %+v", main)
	}
	m := main.Methods[0]
	if len(m.Vars) != 2 || m.Vars[0].ID != "p" || !m.Vars[0].Type.Equal(types.Class("Point")) {
		t.Fatalf("locals = %+v", m.Vars)
	}
	if len(m.Stmts) != 3 {
		t.Fatalf("stmts = %d", len(m.Stmts))
	}
	if st := prog.Stmt(m.Stmts[0]); st.Kind != ast.StmtAssign {
		t.Fatalf("first stmt = %v", st.Kind)
	}

	point := prog.Classes[1]
	if len(point.Vars) != 2 || point.Vars[1].ID != "y" || point.Vars[1].Type.Kind != types.KindInt {
		t.Fatalf("point fields = %+v", point.Vars)
	}
	sum := point.Methods[0]
	if sum.ReturnType.Kind != types.KindInt {
		t.Fatalf("sum return = %s", sum.ReturnType)
	}
	ret := prog.Stmt(sum.Stmts[0])
	rd, ok := ret.Data.(*ast.ReturnData)
	if !ok || !rd.Value.IsValid() || prog.Expr(rd.Value).Kind != ast.ExprBinary {
		t.Fatalf("return = %+v", ret.Data)
	}
}

func TestParserLeavesTypeSlotsEmpty(t *testing.T) {
	prog := mustParse(t, pointSrc)
	for i, x := range prog.Exprs.Arena.Slice() {
		if x.Type.IsSet() {
			t.Errorf("expr %d (%v) has a type after parsing", i+1, x.Kind)
		}
	}
}

func TestPrecedence(t *testing.T) {
	prog := mustParse(t, `class A { Void f() { Bool b; b = 1 + 2 * 3 < 4 || !true && false; } }`)
	st := prog.Stmt(prog.Classes[0].Methods[0].Stmts[0])
	rhs := prog.Expr(st.Data.(*ast.AssignData).RHS)
	or, ok := rhs.Data.(*ast.BinaryData)
	if !ok || or.Op != ast.BinaryLogicalOr {
		t.Fatalf("root = %+v", rhs.Data)
	}
	lt := prog.Expr(or.Left).Data.(*ast.BinaryData)
	if lt.Op != ast.BinaryLess {
		t.Fatalf("left of || = %v", lt.Op)
	}
	add := prog.Expr(lt.Left).Data.(*ast.BinaryData)
	if add.Op != ast.BinaryAdd || prog.Expr(add.Right).Data.(*ast.BinaryData).Op != ast.BinaryMul {
		t.Fatalf("arith precedence broken")
	}
	and := prog.Expr(or.Right).Data.(*ast.BinaryData)
	if and.Op != ast.BinaryLogicalAnd || prog.Expr(and.Left).Kind != ast.ExprUnary {
		t.Fatalf("and = %+v", and)
	}
}

func TestStatementsShapes(t *testing.T) {
	prog := mustParse(t, `
class A {
  A other;
  Int v;
  Void f(Int n, String s) {
    if (n > 0) { readln(n); } else { println("neg"); }
    while (n > 0) { n = n - 1; }
    if (true) { return; }
    this.other.v = 3;
    other.g(1, s);
    g(2, "x");
  }
  Void g(Int a, String b) { }
}`)
	m := prog.Classes[0].Methods[0]
	if len(m.Params) != 2 || m.Params[1].Type.Kind != types.KindString {
		t.Fatalf("params = %+v", m.Params)
	}
	want := []ast.StmtKind{ast.StmtIf, ast.StmtWhile, ast.StmtIf, ast.StmtFieldAssign, ast.StmtCall, ast.StmtCall}
	if len(m.Stmts) != len(want) {
		t.Fatalf("got %d stmts", len(m.Stmts))
	}
	for i, id := range m.Stmts {
		if k := prog.Stmt(id).Kind; k != want[i] {
			t.Errorf("stmt %d: %v, want %v", i, k, want[i])
		}
	}
	ifd, _ := prog.Stmts.If(m.Stmts[0])
	if len(ifd.Then) != 1 || len(ifd.Else) != 1 {
		t.Fatalf("if branches = %d/%d", len(ifd.Then), len(ifd.Else))
	}
	noElse, _ := prog.Stmts.If(m.Stmts[2])
	if len(noElse.Else) != 0 {
		t.Fatal("missing else must give an empty branch")
	}
	fa := prog.Stmt(m.Stmts[3]).Data.(*ast.FieldAssignData)
	if fa.Field != "v" || prog.Expr(fa.Atom).Kind != ast.ExprDot {
		t.Fatalf("field assign = %+v", fa)
	}
	call := prog.Stmt(m.Stmts[4]).Data.(*ast.CallStmtData)
	cd, _ := prog.Exprs.Call(call.Call)
	if prog.Expr(cd.Callee).Kind != ast.ExprDot || len(cd.Args) != 2 {
		t.Fatalf("qualified call = %+v", cd)
	}
	pr := prog.Stmt(ifd.Else[0]).Data.(*ast.PrintlnData)
	if s := prog.Expr(pr.Expr).Data.(*ast.StrData); s.Value != "neg" {
		t.Fatalf("string literal = %q", s.Value)
	}
}

func TestParseErrors(t *testing.T) {
	cases := []struct {
		name string
		src  string
		code diag.Code
	}{
		{"top level", `Int x;`, diag.SynUnexpectedTopLevel},
		{"class name", `class { }`, diag.SynExpectClassName},
		{"missing semicolon", `class A { Void f() { return 1 } }`, diag.SynExpectSemicolon},
		{"unclosed class", `class A { Int x;`, diag.SynUnclosedBrace},
		{"bad statement", `class A { Void f() { 1 + 2; } }`, diag.SynBadStatement},
		{"assign to call", `class A { Void f() { g() = 1; } }`, diag.SynBadStatement},
		{"no expression", `class A { Void f() { println(); } }`, diag.SynExpectExpression},
		{"chained compare", `class A { Void f() { Bool b; b = 1 < 2 < 3; } }`, diag.SynUnexpectedToken},
		{"field after method", `class A { Void f() { } Int x; }`, diag.SynUnexpectedToken},
		{"lexical", `class A { Void f() { println("abc); } }`, diag.LexUnterminatedString},
		{"unknown char", `class A { Void f() { x = 1 # 2; } }`, diag.LexUnknownChar},
		{"int overflow", `class A { Void f() { println(99999999999); } }`, diag.LexBadNumber},
		{"type expected", `class A { Void f(1 x) { } }`, diag.SynExpectType},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			expectParseError(t, tc.src, tc.code)
		})
	}
}

func TestEmptyProgram(t *testing.T) {
	prog := mustParse(t, "  // nothing here\n")
	if len(prog.Classes) != 0 {
		t.Fatalf("classes = %d", len(prog.Classes))
	}
}

func TestSpansNest(t *testing.T) {
	for _, src := range []string{pointSrc, `
class Main {
  Void main() {
    Main m;
    Int i;
    m = new Main();
    i = -(1 + m.twice(2)) * 3;
    while (!(i >= 10) && i != 0) { i = i + 1; }
    if (i == 10 || false) { println("ten"); } else { m.twice(i); }
    return;
  }
  Int twice(Int x) { return x + x; }
}`} {
		fs := source.NewFileSet()
		file := fs.Get(fs.AddVirtual("spans.j", []byte(src)))
		prog, err := parser.ParseFile(file, parser.Options{})
		if err != nil {
			t.Fatalf("parse: %v", err)
		}
		if err := testkit.CheckSpanInvariants(prog, file); err != nil {
			t.Fatal(err)
		}
	}
}
