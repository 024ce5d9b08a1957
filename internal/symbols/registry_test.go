package symbols_test

import (
	"testing"

	"jlite/internal/ast"
	"jlite/internal/diag"
	"jlite/internal/parser"
	"jlite/internal/source"
	"jlite/internal/symbols"
	"jlite/internal/types"
)

func parseProgram(t *testing.T, src string) *ast.Program {
	t.Helper()
	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("reg.j", []byte(src)))
	prog, err := parser.ParseFile(file, parser.Options{})
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	return prog
}

func TestBuildForwardReferences(t *testing.T) {
	prog := parseProgram(t, `
class Main { Void main() { } }
class A { B b; Int n; B make(A self, Int k) { return b; } }
class B { A back; }
`)
	reg, err := symbols.Build(prog)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	if reg.Len() != 3 || reg.Classes()[1].Name != "A" {
		t.Fatalf("classes out of order")
	}
	a, ok := reg.Class("A")
	if !ok {
		t.Fatal("class A missing")
	}
	if ft, ok := a.Field("b"); !ok || !ft.Equal(types.Class("B")) {
		t.Fatalf("field b = %v %v", ft, ok)
	}
	if a.Fields[0].Name != "b" || a.Fields[1].Name != "n" {
		t.Fatalf("fields must keep declaration order: %+v", a.Fields)
	}
	mt, ok := a.Method("make")
	want := types.Function([]types.Type{types.Class("A"), types.Int()}, types.Class("B"))
	if !ok || !mt.Equal(want) {
		t.Fatalf("method make = %s", mt)
	}
	if _, ok := a.Method("b"); ok {
		t.Fatal("fields are not methods")
	}
}

func TestBuildErrors(t *testing.T) {
	cases := []struct {
		name string
		src  string
		code diag.Code
		msg  string
	}{
		{"dup class", `class A { } class A { }`, diag.SemaDuplicateClass, "Duplicate class name 'A'"},
		{"dup field", `class A { Int x; Bool x; }`, diag.SemaDuplicateField, "Duplicate var declaration 'x' in class 'A'"},
		{"unknown field type", `class A { Nope x; }`, diag.SemaUnknownClassType, "Invalid var type 'Nope' for var 'x' in class 'A'"},
		{"dup method", `class A { Void f() { } Int f() { return 1; } }`, diag.SemaDuplicateMethod, "Duplicate method declaration 'f' in class 'A'"},
		{"dup param", `class A { Void f(Int a, Bool a) { } }`, diag.SemaDuplicateParam, "Duplicate param name 'a' in method 'f' of class 'A'"},
		{"unknown param type", `class A { Void f(Nope a) { } }`, diag.SemaUnknownClassType, "Invalid param type 'Nope' for param 'a' in method 'f' of class 'A'"},
		{"unknown return type", `class A { Nope f() { return null; } }`, diag.SemaUnknownClassType, "Invalid return type 'Nope' for method 'f' in class 'A'"},
		// поля проверяются раньше методов
		{"field before method", `class A { Nope x; Void f() { } Void f() { } }`, diag.SemaUnknownClassType, "Invalid var type 'Nope' for var 'x' in class 'A'"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			reg, err := symbols.Build(parseProgram(t, tc.src))
			if err == nil {
				t.Fatalf("expected %s", tc.code.ID())
			}
			if reg != nil {
				t.Error("registry must be nil on failure")
			}
			d, ok := diag.AsDiagnostic(err)
			if !ok || d.Code != tc.code || d.Message != tc.msg {
				t.Fatalf("got %v", err)
			}
		})
	}
}

func TestScopeChain(t *testing.T) {
	root := symbols.NewScope(symbols.ScopeClass, nil, "A")
	root.Define(symbols.Symbol{Name: "x", Kind: symbols.SymbolField, Type: types.Int()})
	child := symbols.NewScope(symbols.ScopeMethod, root, "f")
	child.Define(symbols.Symbol{Name: "x", Kind: symbols.SymbolLocal, Type: types.Bool()})

	if sym, ok := child.Lookup("x"); !ok || sym.Kind != symbols.SymbolLocal {
		t.Fatalf("inner binding must win: %+v", sym)
	}
	if sym, ok := root.Lookup("x"); !ok || sym.Kind != symbols.SymbolField {
		t.Fatalf("root lookup = %+v", sym)
	}
	if !child.Contains("x") || child.Contains("y") {
		t.Fatal("contains mismatch")
	}
	child.Define(symbols.Symbol{Name: "y", Kind: symbols.SymbolLocal, Type: types.Int()})
	child.Define(symbols.Symbol{Name: "x", Kind: symbols.SymbolLocal, Type: types.Int()})
	if syms := child.Symbols(); len(syms) != 2 || syms[0].Name != "x" || syms[1].Name != "y" || !syms[0].Type.Equal(types.Int()) {
		t.Fatalf("symbols = %+v", syms)
	}
	_, err := child.LookupType("y", source.Span{})
	if diag.CodeOf(err) != diag.SemaUnresolvedIdentifier {
		t.Fatalf("expected unresolved identifier, got %v", err)
	}
}

func TestClassScopeFieldShadowsMethod(t *testing.T) {
	prog := parseProgram(t, `class A { Int size; Int size() { return 1; } }`)
	reg, err := symbols.Build(prog)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	desc, _ := reg.Class("A")
	scope := symbols.NewClassScope(desc)
	sym, ok := scope.Lookup("size")
	if !ok || sym.Kind != symbols.SymbolField || sym.Type.Kind != types.KindInt {
		t.Fatalf("size = %+v", sym)
	}
	this, ok := scope.Lookup(symbols.ThisName)
	if !ok || !this.Type.Equal(types.Class("A")) {
		t.Fatalf("this = %+v", this)
	}
}
