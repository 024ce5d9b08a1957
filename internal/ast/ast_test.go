package ast

import (
	"testing"

	"jlite/internal/source"
	"jlite/internal/types"
)

func TestArenaOneBased(t *testing.T) {
	a := NewArena[int](0)
	if a.Get(0) != nil {
		t.Fatal("index 0 is reserved")
	}
	id := a.Allocate(7)
	if id != 1 || *a.Get(id) != 7 {
		t.Fatalf("id=%d", id)
	}
	if a.Get(5) != nil {
		t.Fatal("out of range must be nil")
	}
	if a.Len() != 1 {
		t.Fatalf("len=%d", a.Len())
	}
}

func TestBuilderAndWalk(t *testing.T) {
	b := NewBuilder(Hints{})
	sp := source.Span{}
	n := b.NewID(sp, "n")
	zero := b.NewInt(sp, "0")
	cond := b.NewBinary(sp, BinaryGreater, n, zero)
	one := b.NewInt(sp, "1")
	dec := b.NewBinary(sp, BinarySub, b.NewID(sp, "n"), one)
	body := b.NewAssign(sp, "n", dec)
	loop := b.NewWhile(sp, cond, []StmtID{body})

	prog := b.Program(nil, sp)
	var kinds []StmtKind
	prog.WalkStmts([]StmtID{loop}, func(_ StmtID, st *Stmt) { kinds = append(kinds, st.Kind) })
	if len(kinds) != 2 || kinds[0] != StmtWhile || kinds[1] != StmtAssign {
		t.Fatalf("walk order = %v", kinds)
	}

	if got := Children(prog.Expr(cond)); len(got) != 2 || got[0] != n || got[1] != zero {
		t.Fatalf("children = %v", got)
	}
	if name, ok := prog.Exprs.Ident(n); !ok || name != "n" {
		t.Fatalf("ident = %q %v", name, ok)
	}
	if prog.Exprs.TypeOf(cond).IsSet() {
		t.Fatal("parser output must not carry types")
	}
	prog.Exprs.SetType(cond, types.Bool())
	if prog.Exprs.TypeOf(cond).Kind != types.KindBool {
		t.Fatal("type slot not filled")
	}
}

func TestOpSymbols(t *testing.T) {
	if BinaryLogicalOr.String() != "||" || BinaryGreaterEq.String() != ">=" || UnaryNot.String() != "!" {
		t.Fatal("unexpected operator symbols")
	}
	if !ExprThis.IsAtomic() || ExprDot.IsAtomic() {
		t.Fatal("atomicity mismatch")
	}
}

func TestMethodSignature(t *testing.T) {
	m := Method{
		ID:         "f",
		ReturnType: types.Bool(),
		Params:     []Var{NewVar("Int", "a", source.Span{}), NewVar("Point", "p", source.Span{})},
	}
	want := types.Function([]types.Type{types.Int(), types.Class("Point")}, types.Bool())
	if !m.Signature().Equal(want) {
		t.Fatalf("signature = %s", m.Signature())
	}
}
