package ast

import (
	"fmt"

	"jlite/internal/source"
)

type StmtKind uint8

const (
	StmtInvalid StmtKind = iota
	StmtIf
	StmtWhile
	StmtReadln
	StmtPrintln
	StmtAssign
	StmtFieldAssign
	StmtCall
	StmtReturn
)

func (k StmtKind) String() string {
	switch k {
	case StmtIf:
		return "If"
	case StmtWhile:
		return "While"
	case StmtReadln:
		return "Readln"
	case StmtPrintln:
		return "Println"
	case StmtAssign:
		return "Assign"
	case StmtFieldAssign:
		return "FieldAssign"
	case StmtCall:
		return "Call"
	case StmtReturn:
		return "Return"
	default:
		return fmt.Sprintf("StmtKind(%d)", k)
	}
}

// StmtData is the closed set of statement payloads; the payload type always
// matches Stmt.Kind.
type StmtData interface{ stmtData() }

type Stmt struct {
	Kind StmtKind
	Span source.Span
	Data StmtData
}

type IfData struct {
	Cond ExprID
	Then []StmtID
	Else []StmtID
}

type WhileData struct {
	Cond ExprID
	Body []StmtID
}

type ReadlnData struct{ ID string }

type PrintlnData struct{ Expr ExprID }

// AssignData is `lhs = rhs;` where lhs is a bare identifier.
type AssignData struct {
	LHS string
	RHS ExprID
}

// FieldAssignData is `atom.field = rhs;`.
type FieldAssignData struct {
	Atom  ExprID
	Field string
	RHS   ExprID
}

// CallStmtData holds an ExprCall node evaluated for its effect.
type CallStmtData struct{ Call ExprID }

// ReturnData.Value is NoExprID for a bare `return;`.
type ReturnData struct{ Value ExprID }

func (*IfData) stmtData()          {}
func (*WhileData) stmtData()       {}
func (*ReadlnData) stmtData()      {}
func (*PrintlnData) stmtData()     {}
func (*AssignData) stmtData()      {}
func (*FieldAssignData) stmtData() {}
func (*CallStmtData) stmtData()    {}
func (*ReturnData) stmtData()      {}

type Stmts struct {
	Arena *Arena[Stmt]
}

func NewStmts(capHint uint) *Stmts {
	return &Stmts{
		Arena: NewArena[Stmt](capHint),
	}
}

func (s *Stmts) New(kind StmtKind, span source.Span, data StmtData) StmtID {
	return StmtID(s.Arena.Allocate(Stmt{
		Kind: kind,
		Span: span,
		Data: data,
	}))
}

func (s *Stmts) Get(id StmtID) *Stmt {
	return s.Arena.Get(uint32(id))
}

func (s *Stmts) If(id StmtID) (*IfData, bool) {
	st := s.Get(id)
	if st == nil || st.Kind != StmtIf {
		return nil, false
	}
	d, ok := st.Data.(*IfData)
	return d, ok
}

func (s *Stmts) While(id StmtID) (*WhileData, bool) {
	st := s.Get(id)
	if st == nil || st.Kind != StmtWhile {
		return nil, false
	}
	d, ok := st.Data.(*WhileData)
	return d, ok
}
