package ir3_test

import (
	"errors"
	"strings"
	"testing"

	"jlite/internal/ast"
	"jlite/internal/ir3"
	"jlite/internal/parser"
	"jlite/internal/sema"
	"jlite/internal/source"
	"jlite/internal/symbols"
	"jlite/internal/trace"
	"jlite/internal/types"
)

func parseProgram(t *testing.T, src string) *ast.Program {
	t.Helper()
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("ir3.j", []byte(src)))
	prog, err := parser.ParseFile(file, parser.Options{})
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	return prog
}

func lowerSource(t *testing.T, src string) *ir3.Program {
	t.Helper()
	prog := parseProgram(t, src)
	reg, err := symbols.Build(prog)
	if err != nil {
		t.Fatalf("registry: %v", err)
	}
	if err := sema.Check(prog, reg, sema.Options{}); err != nil {
		t.Fatalf("check: %v", err)
	}
	out := ir3.Lower(prog, reg, ir3.Options{})
	if err := ir3.Validate(out); err != nil {
		t.Fatalf("validate: %v", err)
	}
	return out
}

func methodText(t *testing.T, p *ir3.Program, name string) string {
	t.Helper()
	m := p.Method(name)
	if m == nil {
		t.Fatalf("method %s not found", name)
	}
	lines := make([]string, 0, len(m.Stmts))
	for i := range m.Stmts {
		lines = append(lines, ir3.FormatStmt(&m.Stmts[i]))
	}
	return strings.Join(lines, "\n")
}

func expectBody(t *testing.T, p *ir3.Program, name string, want ...string) {
	t.Helper()
	got := methodText(t, p, name)
	if got != strings.Join(want, "\n") {
		t.Fatalf("%s body mismatch\n got:\n%s\nwant:\n%s", name, got, strings.Join(want, "\n"))
	}
}

func varNames(vars []ir3.Var) string {
	names := make([]string, len(vars))
	for i, v := range vars {
		names[i] = v.Type.String() + " " + v.ID
	}
	return strings.Join(names, ", ")
}

const pointSrc = `
class Main {
  Void main() {
    Point p;
    p = new Point();
    println(p.sum());
  }
}
class Point {
  Int x;
  Int y;
  Int sum() { return x + y; }
}
`

func TestFieldAccessFlattening(t *testing.T) {
	p := lowerSource(t, pointSrc)
	m := p.Method("%Point_sum")
	if m == nil {
		t.Fatal("missing %Point_sum")
	}
	if got := varNames(m.Params); got != "Point this" {
		t.Fatalf("params = %q", got)
	}
	if got := varNames(m.Vars); got != "Int _t0, Int _t1, Int _t2, Int _t3" {
		t.Fatalf("vars = %q", got)
	}
	expectBody(t, p, "%Point_sum",
		"    _t0 = this.x;",
		"    _t1 = this.y;",
		"    _t2 = (_t0) + (_t1);",
		"    _t3 = _t2;",
		"    return _t3;",
	)
	expectBody(t, p, "main",
		"    _t0 = new Point();",
		"    p = _t0;",
		"    _t1 = %Point_sum(p);",
		"    println(_t1);",
	)
}

func TestWhileTestsAtBottom(t *testing.T) {
	p := lowerSource(t, `
class C {
  Void dec(Int n) {
    while (n > 0) { n = n - 1; }
  }
}`)
	expectBody(t, p, "%C_dec",
		"    goto L1;",
		"L0:",
		"    _t0 = (n) - (1);",
		"    n = _t0;",
		"L1:",
		"    _t1 = (n) > (0);",
		"    if (_t1) goto L0;",
	)
}

func TestIfElseFallsThrough(t *testing.T) {
	p := lowerSource(t, `
class C {
  Void pick(Bool b) {
    if (b) { println("then"); } else { println("else"); }
    while (b) { b = false; }
  }
}`)
	expectBody(t, p, "%C_pick",
		"    if (b) goto L0;",
		`    println("else");`,
		"    goto L1;",
		"L0:",
		`    println("then");`,
		"L1:",
		"    goto L3;",
		"L2:",
		"    b = false;",
		"L3:",
		"    if (b) goto L2;",
	)
	if got := p.Method("%C_pick").LabelCount(); got != 4 {
		t.Fatalf("labels = %d, want 4", got)
	}
}

func TestCountersResetPerMethod(t *testing.T) {
	p := lowerSource(t, `
class C {
  Int one() { return 1; }
  Int two() { while (true) { } return 2; }
}`)
	expectBody(t, p, "%C_one", "    _t0 = 1;", "    return _t0;")
	expectBody(t, p, "%C_two",
		"    goto L1;",
		"L0:",
		"L1:",
		"    if (true) goto L0;",
		"    _t0 = 2;",
		"    return _t0;",
	)
}

func TestLocalRenaming(t *testing.T) {
	p := lowerSource(t, `
class C {
  Void m(Int x) {
    Int x;
    Bool y;
    Int y;
    x = 1;
    y = 2;
    readln(x);
  }
}`)
	m := p.Method("%C_m")
	if got := varNames(m.Vars); got != "Int x$1, Bool y, Int y$1" {
		t.Fatalf("vars = %q", got)
	}
	if got := varNames(m.Params); got != "C this, Int x" {
		t.Fatalf("params = %q", got)
	}
	expectBody(t, p, "%C_m",
		"    x$1 = 1;",
		"    y$1 = 2;",
		"    readln(x$1);",
	)
	if name, ok := m.Resolve("y"); !ok || name != "y$1" {
		t.Fatalf("Resolve(y) = %q, %v", name, ok)
	}
}

func TestTemporariesSkipTakenNames(t *testing.T) {
	p := lowerSource(t, `
class C {
  Void m() {
    Int _t0;
    _t0 = 1 + 2;
  }
}`)
	m := p.Method("%C_m")
	if got := varNames(m.Vars); got != "Int _t0, Int _t1" {
		t.Fatalf("vars = %q", got)
	}
	expectBody(t, p, "%C_m",
		"    _t1 = (1) + (2);",
		"    _t0 = _t1;",
	)
}

// поле _t0 не должно перекрываться временной переменной
func TestTemporariesSkipFieldNames(t *testing.T) {
	p := lowerSource(t, `
class A {
  Int _t0;
  Void f() {
    println(_t0);
    _t0 = 5;
    return;
  }
}`)
	m := p.Method("%A_f")
	if got := varNames(m.Vars); got != "Int _t1" {
		t.Fatalf("vars = %q", got)
	}
	if _, ok := m.Resolve("_t0"); ok {
		t.Fatal("field _t0 resolves to a local")
	}
	expectBody(t, p, "%A_f",
		"    _t1 = this._t0;",
		"    println(_t1);",
		"    this._t0 = 5;",
		"    return;",
	)
}

func TestFieldWrites(t *testing.T) {
	p := lowerSource(t, `
class C {
  Int n;
  C next;
  Void m() {
    readln(n);
    n = 5;
    next.n = -n;
  }
}`)
	expectBody(t, p, "%C_m",
		"    readln(_t0);",
		"    this.n = _t0;",
		"    this.n = 5;",
		"    _t1 = this.n;",
		"    _t2 = -(_t1);",
		"    _t3 = this.next;",
		"    _t3.n = _t2;",
	)
	if got := varNames(p.Method("%C_m").Vars); got != "Int _t0, Int _t1, Int _t2, C _t3" {
		t.Fatalf("vars = %q", got)
	}
}

func TestCallResolution(t *testing.T) {
	p := lowerSource(t, `
class Main {
  Void main() {
    Acc a;
    a = new Acc();
    a.add(1, "x");
  }
}
class Acc {
  Int n;
  Int add(Int v, String tag) { return v; }
  Void run() {
    Int r;
    r = add(n, "y");
    this.add(r, "z");
  }
}`)
	expectBody(t, p, "main",
		"    _t0 = new Acc();",
		"    a = _t0;",
		`    %Acc_add(a, 1, "x");`,
	)
	expectBody(t, p, "%Acc_run",
		"    _t0 = this.n;",
		`    _t1 = %Acc_add(this, _t0, "y");`,
		"    r = _t1;",
		`    %Acc_add(this, r, "z");`,
	)
}

func TestDataLayoutAndArity(t *testing.T) {
	prog := parseProgram(t, `
class Main { Void main() { } }
class B { A a; Int z; Bool y; Void f(Int p, Bool q, A r) { } }
class A { String s; }
`)
	reg, err := symbols.Build(prog)
	if err != nil {
		t.Fatalf("registry: %v", err)
	}
	if err := sema.Check(prog, reg, sema.Options{}); err != nil {
		t.Fatalf("check: %v", err)
	}
	p := ir3.Lower(prog, reg, ir3.Options{})

	if len(p.Datas) != len(prog.Classes) {
		t.Fatalf("datas = %d, want %d", len(p.Datas), len(prog.Classes))
	}
	for i, cls := range prog.Classes {
		d := p.Datas[i]
		if d.Class != cls.Name || len(d.Vars) != len(cls.Vars) {
			t.Fatalf("data %d = %+v, want class %s", i, d, cls.Name)
		}
		for j, v := range cls.Vars {
			if d.Vars[j].ID != v.ID || !d.Vars[j].Type.Equal(v.Type) {
				t.Fatalf("data %s var %d = %+v, want %s %s", d.Class, j, d.Vars[j], v.Type, v.ID)
			}
		}
	}
	order := make([]string, 0, len(p.Methods))
	for _, m := range p.Methods {
		order = append(order, m.Name)
	}
	if got := strings.Join(order, ","); got != "main,%B_f" {
		t.Fatalf("method order = %s", got)
	}
	f := p.Method("%B_f")
	if len(f.Params) != 4 || f.Params[0].ID != "this" || !f.Params[0].Type.Equal(types.Class("B")) {
		t.Fatalf("params = %s", varNames(f.Params))
	}
}

func TestLoweredProgramIsANormalForm(t *testing.T) {
	p := lowerSource(t, `
class Main {
  Void main() {
    Int a;
    Bool ok;
    Node n;
    n = new Node();
    a = (n.v + 2) * (3 - n.next.v) / 4;
    ok = !(a < 2 || a >= 9) && n.get(a * 2, n.next) == a;
    if (ok && n.v != 0) { println(n.get(a, n) + n.next.v); } else { n.next.next.v = a + 1; }
    while (a > 0 && !ok) { a = a - 1; }
  }
}
class Node {
  Int v;
  Node next;
  Int get(Int k, Node other) { return other.v + k; }
}`)
	for _, m := range p.Methods {
		for i := range m.Stmts {
			st := &m.Stmts[i]
			for _, e := range st.Exprs() {
				if !e.Kind.IsAtomic() {
					t.Fatalf("%s stmt %d operand %s is compound", m.Name, i, ir3.FormatExpr(e))
				}
			}
			if st.Kind == ir3.StmtAssign {
				for _, op := range st.Assign.RHS.Operands {
					if !op.Kind.IsAtomic() {
						t.Fatalf("%s stmt %d: nested %s", m.Name, i, ir3.FormatExpr(op))
					}
				}
			}
		}
	}
}

func TestLowerTracesMethods(t *testing.T) {
	prog := parseProgram(t, pointSrc)
	reg, err := symbols.Build(prog)
	if err != nil {
		t.Fatalf("registry: %v", err)
	}
	if err := sema.Check(prog, reg, sema.Options{}); err != nil {
		t.Fatalf("check: %v", err)
	}
	mem := trace.NewMemoryTracer(trace.LevelDebug)
	out := ir3.Lower(prog, reg, ir3.Options{Tracer: mem})

	ended := mem.Ended("lower:%Point_sum")
	if len(ended) != 1 {
		t.Fatalf("spans for lower:%%Point_sum = %d, want 1", len(ended))
	}
	extra := ended[0].Extra
	if extra["temps"] != "4" || extra["labels"] != "0" || extra["method"] != "Point.sum" {
		t.Fatalf("extras = %v", extra)
	}
	if n := out.Method("%Point_sum").TempCount(); n != 4 {
		t.Fatalf("TempCount = %d, want 4", n)
	}
}

func TestMalformedCalleePanics(t *testing.T) {
	b := ast.NewBuilder(ast.Hints{})
	inner := b.NewCall(source.Span{}, b.NewID(source.Span{}, "f"), nil)
	outer := b.NewCall(source.Span{}, inner, nil)
	prog := b.Program([]ast.Class{{
		Name: "C",
		Methods: []ast.Method{{
			ID:         "f",
			ReturnType: types.Void(),
			Stmts:      []ast.StmtID{b.NewCallStmt(source.Span{}, outer)},
		}},
	}}, source.Span{})

	defer func() {
		r := recover()
		var ie *ir3.InternalError
		err, ok := r.(error)
		if !ok || !errors.As(err, &ie) {
			t.Fatalf("expected *ir3.InternalError panic, got %v", r)
		}
		if ie.Method != "%C_f" || !strings.Contains(ie.Msg, "malformed callee") {
			t.Fatalf("unexpected internal error: %v", ie)
		}
	}()
	ir3.Lower(prog, nil, ir3.Options{})
}
