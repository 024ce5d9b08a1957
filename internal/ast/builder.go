package ast

import (
	"jlite/internal/source"
	"jlite/internal/types"
)

type Hints struct{ Stmts, Exprs uint }

// Builder owns the arenas while the parser produces a Program.
type Builder struct {
	Stmts *Stmts
	Exprs *Exprs
}

func NewBuilder(hints Hints) *Builder {
	if hints.Stmts == 0 {
		hints.Stmts = 1 << 7
	}
	if hints.Exprs == 0 {
		hints.Exprs = 1 << 8
	}
	return &Builder{
		Stmts: NewStmts(hints.Stmts),
		Exprs: NewExprs(hints.Exprs),
	}
}

// Program wraps classes together with the builder arenas.
func (b *Builder) Program(classes []Class, sp source.Span) *Program {
	return &Program{Classes: classes, Stmts: b.Stmts, Exprs: b.Exprs, Span: sp}
}

// ---- statements ----

func (b *Builder) NewIf(sp source.Span, cond ExprID, then, els []StmtID) StmtID {
	return b.Stmts.New(StmtIf, sp, &IfData{Cond: cond, Then: then, Else: els})
}

func (b *Builder) NewWhile(sp source.Span, cond ExprID, body []StmtID) StmtID {
	return b.Stmts.New(StmtWhile, sp, &WhileData{Cond: cond, Body: body})
}

func (b *Builder) NewReadln(sp source.Span, id string) StmtID {
	return b.Stmts.New(StmtReadln, sp, &ReadlnData{ID: id})
}

func (b *Builder) NewPrintln(sp source.Span, x ExprID) StmtID {
	return b.Stmts.New(StmtPrintln, sp, &PrintlnData{Expr: x})
}

func (b *Builder) NewAssign(sp source.Span, lhs string, rhs ExprID) StmtID {
	return b.Stmts.New(StmtAssign, sp, &AssignData{LHS: lhs, RHS: rhs})
}

func (b *Builder) NewFieldAssign(sp source.Span, atom ExprID, field string, rhs ExprID) StmtID {
	return b.Stmts.New(StmtFieldAssign, sp, &FieldAssignData{Atom: atom, Field: field, RHS: rhs})
}

// NewCallStmt wraps an already built call expression.
func (b *Builder) NewCallStmt(sp source.Span, call ExprID) StmtID {
	return b.Stmts.New(StmtCall, sp, &CallStmtData{Call: call})
}

// NewReturn creates a return; value may be NoExprID.
func (b *Builder) NewReturn(sp source.Span, value ExprID) StmtID {
	return b.Stmts.New(StmtReturn, sp, &ReturnData{Value: value})
}

// ---- expressions ----

func (b *Builder) NewStr(sp source.Span, raw string) ExprID {
	return b.Exprs.New(ExprStr, sp, &StrData{Value: raw})
}

func (b *Builder) NewInt(sp source.Span, text string) ExprID {
	return b.Exprs.New(ExprInt, sp, &IntData{Text: text})
}

func (b *Builder) NewBool(sp source.Span, v bool) ExprID {
	return b.Exprs.New(ExprBool, sp, &BoolData{Value: v})
}

func (b *Builder) NewID(sp source.Span, name string) ExprID {
	return b.Exprs.New(ExprIdent, sp, &IDData{Name: name})
}

func (b *Builder) NewUnary(sp source.Span, op UnaryOp, x ExprID) ExprID {
	return b.Exprs.New(ExprUnary, sp, &UnaryData{Op: op, X: x})
}

func (b *Builder) NewBinary(sp source.Span, op BinaryOp, l, r ExprID) ExprID {
	return b.Exprs.New(ExprBinary, sp, &BinaryData{Op: op, Left: l, Right: r})
}

func (b *Builder) NewDot(sp source.Span, atom ExprID, member string) ExprID {
	return b.Exprs.New(ExprDot, sp, &DotData{Atom: atom, Member: member})
}

func (b *Builder) NewCall(sp source.Span, callee ExprID, args []ExprID) ExprID {
	return b.Exprs.New(ExprCall, sp, &CallData{Callee: callee, Args: args})
}

func (b *Builder) NewNew(sp source.Span, class string) ExprID {
	return b.Exprs.New(ExprNew, sp, &NewData{Class: class})
}

func (b *Builder) NewThis(sp source.Span) ExprID {
	return b.Exprs.New(ExprThis, sp, nil)
}

func (b *Builder) NewNull(sp source.Span) ExprID {
	return b.Exprs.New(ExprNull, sp, nil)
}

// ---- declarations ----

// NewVar resolves the surface type name eagerly; unknown classes are caught by the registry.
func NewVar(typeName, id string, sp source.Span) Var {
	return Var{Type: types.FromName(typeName), ID: id, Span: sp}
}
