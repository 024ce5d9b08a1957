// Package ir3 holds the three-address intermediate representation, the
// lowering from a checked AST, the textual printer and an invariant validator.
package ir3

import (
	"jlite/internal/ast"
	"jlite/internal/types"
)

// Program is the lowered output: class layouts and flat methods, both in
// source order.
type Program struct {
	Datas   []Data
	Methods []*Method
}

// Var is a typed name: field, parameter, local or temporary.
type Var struct {
	Type types.Type
	ID   string
}

// Data mirrors one source class's field layout.
type Data struct {
	Class string
	Vars  []Var
}

// Method is a flat IR3 method. Params[0] is always `this`.
type Method struct {
	Name       string // main или %Class_method
	Class      string
	ReturnType types.Type
	Params     []Var
	Vars       []Var
	Stmts      []Stmt

	varMap    map[string]string // исходное имя -> имя в IR3
	nameCount map[string]int
	labels    int
	temps     int
}

// Resolve maps a surface identifier to its (possibly renamed) IR3 variable.
// Fields are not in the map.
func (m *Method) Resolve(name string) (string, bool) {
	id, ok := m.varMap[name]
	return id, ok
}

// LabelCount returns how many labels were allocated while lowering m.
func (m *Method) LabelCount() int { return m.labels }

// TempCount returns how many temporaries were allocated while lowering m.
func (m *Method) TempCount() int { return m.temps }

// Method returns the method with the given flat name.
func (p *Program) Method(name string) *Method {
	for _, m := range p.Methods {
		if m.Name == name {
			return m
		}
	}
	return nil
}

// FlatName computes the IR3 name of a class method.
func FlatName(class, method string) string {
	if method == "main" {
		return method
	}
	return "%" + class + "_" + method
}

// ExprKind enumerates IR3 expression forms.
type ExprKind uint8

const (
	ExprInvalid ExprKind = iota
	ExprStr
	ExprInt
	ExprBool
	ExprID
	ExprThis
	ExprNull
	ExprUnary
	ExprBinary
	ExprDot
	ExprCall
	ExprNew
)

// IsAtomic reports whether an expression of this kind may appear as an operand.
func (k ExprKind) IsAtomic() bool {
	switch k {
	case ExprStr, ExprInt, ExprBool, ExprID, ExprThis, ExprNull:
		return true
	default:
		return false
	}
}

// Expr is an IR3 expression. Compound forms hold only atomic operands once
// lowering is done.
type Expr struct {
	Kind ExprKind
	Type types.Type

	Str  string // ExprStr: содержимое между кавычками
	Int  int64
	Bool bool
	Name string // ExprID: имя; ExprDot: поле; ExprCall: плоское имя; ExprNew: класс

	UnaryOp  ast.UnaryOp
	BinaryOp ast.BinaryOp
	Operands []Expr // Unary: [x]; Binary: [l, r]; Dot: [atom]; Call: args
}

func ID(name string, t types.Type) Expr { return Expr{Kind: ExprID, Type: t, Name: name} }

func This(class string) Expr { return Expr{Kind: ExprThis, Type: types.Class(class)} }

// StmtKind enumerates instruction kinds in IR3.
type StmtKind uint8

const (
	StmtInvalid StmtKind = iota
	StmtLabel
	StmtIf
	StmtGoto
	StmtReadln
	StmtPrintln
	StmtAssign
	StmtFieldAssign
	StmtCall
	StmtReturn
)

func (k StmtKind) String() string {
	switch k {
	case StmtLabel:
		return "label"
	case StmtIf:
		return "if"
	case StmtGoto:
		return "goto"
	case StmtReadln:
		return "readln"
	case StmtPrintln:
		return "println"
	case StmtAssign:
		return "assign"
	case StmtFieldAssign:
		return "field_assign"
	case StmtCall:
		return "call"
	case StmtReturn:
		return "return"
	default:
		return "invalid"
	}
}

// Stmt is one IR3 instruction; only the payload matching Kind is meaningful.
type Stmt struct {
	Kind StmtKind

	Label       LabelStmt
	If          IfStmt
	Goto        GotoStmt
	Readln      ReadlnStmt
	Println     PrintlnStmt
	Assign      AssignStmt
	FieldAssign FieldAssignStmt
	Call        CallStmt
	Return      ReturnStmt
}

type LabelStmt struct{ Label int }

// IfStmt jumps to Label when Cond holds, otherwise falls through.
type IfStmt struct {
	Cond  Expr
	Label int
}

type GotoStmt struct{ Label int }

type ReadlnStmt struct{ ID string }

type PrintlnStmt struct{ Expr Expr }

type AssignStmt struct {
	LHS string
	RHS Expr
}

type FieldAssignStmt struct {
	Atom  Expr
	Field string
	RHS   Expr
}

type CallStmt struct {
	Name string
	Args []Expr
}

// ReturnStmt.Value is nil for a bare return.
type ReturnStmt struct{ Value *Expr }

// Target returns the label a jump instruction refers to.
func (s *Stmt) Target() (int, bool) {
	switch s.Kind {
	case StmtIf:
		return s.If.Label, true
	case StmtGoto:
		return s.Goto.Label, true
	}
	return 0, false
}

// Exprs returns the expression operands of the instruction.
func (s *Stmt) Exprs() []Expr {
	switch s.Kind {
	case StmtIf:
		return []Expr{s.If.Cond}
	case StmtPrintln:
		return []Expr{s.Println.Expr}
	case StmtAssign:
		return []Expr{s.Assign.RHS}
	case StmtFieldAssign:
		return []Expr{s.FieldAssign.Atom, s.FieldAssign.RHS}
	case StmtCall:
		return s.Call.Args
	case StmtReturn:
		if s.Return.Value != nil {
			return []Expr{*s.Return.Value}
		}
	}
	return nil
}
