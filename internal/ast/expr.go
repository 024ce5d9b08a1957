package ast

import (
	"fmt"

	"jlite/internal/source"
	"jlite/internal/types"
)

type ExprKind uint8

const (
	ExprInvalid ExprKind = iota
	ExprStr
	ExprInt
	ExprBool
	ExprIdent
	ExprUnary
	ExprBinary
	ExprDot
	ExprCall
	ExprNew
	ExprThis
	ExprNull
)

func (k ExprKind) String() string {
	switch k {
	case ExprStr:
		return "Str"
	case ExprInt:
		return "Int"
	case ExprBool:
		return "Bool"
	case ExprIdent:
		return "Id"
	case ExprUnary:
		return "Unary"
	case ExprBinary:
		return "Binary"
	case ExprDot:
		return "Dot"
	case ExprCall:
		return "Call"
	case ExprNew:
		return "New"
	case ExprThis:
		return "This"
	case ExprNull:
		return "Null"
	default:
		return fmt.Sprintf("ExprKind(%d)", k)
	}
}

// IsAtomic reports whether the kind never needs a temporary.
func (k ExprKind) IsAtomic() bool {
	switch k {
	case ExprStr, ExprInt, ExprBool, ExprIdent, ExprThis, ExprNull:
		return true
	default:
		return false
	}
}

// ExprData is the closed set of expression payloads. This and Null carry none.
type ExprData interface{ exprData() }

// Expr is an expression node. Type is empty after parsing and filled by the checker.
type Expr struct {
	Kind ExprKind
	Span source.Span
	Type types.Type
	Data ExprData
}

// StrData keeps the literal contents between the quotes, escapes untouched.
type StrData struct{ Value string }

type IntData struct{ Text string }

type BoolData struct{ Value bool }

type IDData struct{ Name string }

type UnaryData struct {
	Op UnaryOp
	X  ExprID
}

type BinaryData struct {
	Op    BinaryOp
	Left  ExprID
	Right ExprID
}

type DotData struct {
	Atom   ExprID
	Member string
}

type CallData struct {
	Callee ExprID
	Args   []ExprID
}

type NewData struct{ Class string }

func (*StrData) exprData()    {}
func (*IntData) exprData()    {}
func (*BoolData) exprData()   {}
func (*IDData) exprData()     {}
func (*UnaryData) exprData()  {}
func (*BinaryData) exprData() {}
func (*DotData) exprData()    {}
func (*CallData) exprData()   {}
func (*NewData) exprData()    {}

type Exprs struct {
	Arena *Arena[Expr]
}

func NewExprs(capHint uint) *Exprs {
	return &Exprs{
		Arena: NewArena[Expr](capHint),
	}
}

func (e *Exprs) New(kind ExprKind, span source.Span, data ExprData) ExprID {
	return ExprID(e.Arena.Allocate(Expr{
		Kind: kind,
		Span: span,
		Data: data,
	}))
}

func (e *Exprs) Get(id ExprID) *Expr {
	return e.Arena.Get(uint32(id))
}

// SetType fills the type slot of id.
func (e *Exprs) SetType(id ExprID, t types.Type) {
	if x := e.Get(id); x != nil {
		x.Type = t
	}
}

// TypeOf returns the checked type of id, or the empty type.
func (e *Exprs) TypeOf(id ExprID) types.Type {
	if x := e.Get(id); x != nil {
		return x.Type
	}
	return types.Type{}
}

// Ident returns the identifier name when id is an ExprIdent.
func (e *Exprs) Ident(id ExprID) (string, bool) {
	x := e.Get(id)
	if x == nil || x.Kind != ExprIdent {
		return "", false
	}
	d, ok := x.Data.(*IDData)
	if !ok {
		return "", false
	}
	return d.Name, true
}

// Dot returns the payload when id is an ExprDot.
func (e *Exprs) Dot(id ExprID) (*DotData, bool) {
	x := e.Get(id)
	if x == nil || x.Kind != ExprDot {
		return nil, false
	}
	d, ok := x.Data.(*DotData)
	return d, ok
}

// Call returns the payload when id is an ExprCall.
func (e *Exprs) Call(id ExprID) (*CallData, bool) {
	x := e.Get(id)
	if x == nil || x.Kind != ExprCall {
		return nil, false
	}
	d, ok := x.Data.(*CallData)
	return d, ok
}
