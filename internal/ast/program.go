package ast

import (
	"jlite/internal/source"
	"jlite/internal/types"
)

// Program is the parsed compilation unit. Statements and expressions live in
// the arenas and are referenced by id from classes and methods.
type Program struct {
	Classes []Class
	Stmts   *Stmts
	Exprs   *Exprs
	Span    source.Span
}

// Class is a single class declaration with its fields and methods in source order.
type Class struct {
	Name    string
	Vars    []Var
	Methods []Method
	Span    source.Span
}

// Var is a field, parameter or local declaration.
type Var struct {
	Type types.Type
	ID   string
	Span source.Span
}

type Method struct {
	ID         string
	ReturnType types.Type
	Params     []Var
	Vars       []Var
	Stmts      []StmtID
	Span       source.Span
}

// ParamTypes returns the declared parameter types in order.
func (m *Method) ParamTypes() []types.Type {
	out := make([]types.Type, len(m.Params))
	for i, p := range m.Params {
		out[i] = p.Type
	}
	return out
}

// Signature returns the Function type of the method.
func (m *Method) Signature() types.Type {
	return types.Function(m.ParamTypes(), m.ReturnType)
}

// Stmt returns the statement node for id.
func (p *Program) Stmt(id StmtID) *Stmt { return p.Stmts.Get(id) }

// Expr returns the expression node for id.
func (p *Program) Expr(id ExprID) *Expr { return p.Exprs.Get(id) }
