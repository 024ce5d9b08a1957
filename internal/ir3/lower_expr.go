package ir3

import (
	"strconv"

	"jlite/internal/ast"
	"jlite/internal/types"
)

// lowerExpr flattens an expression and returns an atomic operand.
func (fl *funcLowerer) lowerExpr(id ast.ExprID) Expr {
	e := fl.prog.Expr(id)
	if e == nil {
		internalf(fl.out, "missing expression %d", id)
	}
	switch d := e.Data.(type) {
	case *ast.StrData:
		return Expr{Kind: ExprStr, Type: types.String(), Str: d.Value}

	case *ast.IntData:
		v, err := strconv.ParseInt(d.Text, 10, 32)
		if err != nil {
			internalf(fl.out, "integer literal %q: %v", d.Text, err)
		}
		return Expr{Kind: ExprInt, Type: types.Int(), Int: v}

	case *ast.BoolData:
		return Expr{Kind: ExprBool, Type: types.Bool(), Bool: d.Value}

	case *ast.IDData:
		if name, ok := fl.out.Resolve(d.Name); ok {
			return ID(name, e.Type)
		}
		// неявное this.field
		return fl.genTemp(Expr{
			Kind:     ExprDot,
			Type:     e.Type,
			Name:     d.Name,
			Operands: []Expr{This(fl.out.Class)},
		})

	case *ast.UnaryData:
		x := fl.lowerExpr(d.X)
		return fl.genTemp(Expr{Kind: ExprUnary, Type: e.Type, UnaryOp: d.Op, Operands: []Expr{x}})

	case *ast.BinaryData:
		l := fl.lowerExpr(d.Left)
		r := fl.lowerExpr(d.Right)
		return fl.genTemp(Expr{Kind: ExprBinary, Type: e.Type, BinaryOp: d.Op, Operands: []Expr{l, r}})

	case *ast.DotData:
		atom := fl.lowerExpr(d.Atom)
		return fl.genTemp(Expr{Kind: ExprDot, Type: e.Type, Name: d.Member, Operands: []Expr{atom}})

	case *ast.CallData:
		name, args := fl.lowerCall(id)
		return fl.genTemp(Expr{Kind: ExprCall, Type: e.Type, Name: name, Operands: args})

	case *ast.NewData:
		return fl.genTemp(Expr{Kind: ExprNew, Type: types.Class(d.Class), Name: d.Class})

	default:
		switch e.Kind {
		case ast.ExprThis:
			return This(fl.out.Class)
		case ast.ExprNull:
			return Expr{Kind: ExprNull, Type: types.Null()}
		}
	}
	internalf(fl.out, "unexpected expression kind %s", e.Kind)
	return Expr{}
}

// lowerCall resolves a call node statically and flattens its receiver and
// arguments. The receiver always becomes the first argument.
func (fl *funcLowerer) lowerCall(id ast.ExprID) (name string, args []Expr) {
	call, ok := fl.prog.Exprs.Call(id)
	if !ok {
		internalf(fl.out, "expression %d is not a call", id)
	}
	callee := fl.prog.Expr(call.Callee)
	if callee == nil {
		internalf(fl.out, "call %d has no callee", id)
	}
	switch d := callee.Data.(type) {
	case *ast.IDData:
		name = FlatName(fl.out.Class, d.Name)
		args = append(args, This(fl.out.Class))
	case *ast.DotData:
		recv := fl.lowerExpr(d.Atom)
		if !recv.Type.IsClass() {
			internalf(fl.out, "call receiver of type %s", recv.Type)
		}
		name = FlatName(recv.Type.Name, d.Member)
		args = append(args, recv)
	default:
		internalf(fl.out, "malformed callee: %s", callee.Kind)
	}

	for _, a := range call.Args {
		args = append(args, fl.lowerExpr(a))
	}
	return name, args
}

func (fl *funcLowerer) fieldType(name string) types.Type {
	if fl.reg != nil {
		if desc, ok := fl.reg.Class(fl.out.Class); ok {
			if t, ok := desc.Field(name); ok {
				return t
			}
		}
	}
	internalf(fl.out, "unresolved identifier %q", name)
	return types.Type{}
}
