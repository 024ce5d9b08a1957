package sema

import (
	"jlite/internal/ast"
	"jlite/internal/diag"
	"jlite/internal/source"
	"jlite/internal/symbols"
	"jlite/internal/types"
)

// checkExpr computes the type of id, stores it in the node and returns it.
func (tc *typeChecker) checkExpr(id ast.ExprID) (types.Type, error) {
	t, err := tc.inferExpr(id)
	if err != nil {
		return types.Type{}, err
	}
	tc.exprs.SetType(id, t)
	return t, nil
}

func (tc *typeChecker) inferExpr(id ast.ExprID) (types.Type, error) {
	x := tc.exprs.Get(id)
	switch x.Kind {
	case ast.ExprStr:
		return types.String(), nil
	case ast.ExprInt:
		return types.Int(), nil
	case ast.ExprBool:
		return types.Bool(), nil
	case ast.ExprNull:
		return types.Null(), nil
	case ast.ExprThis:
		return tc.scope.LookupType(symbols.ThisName, x.Span)
	}

	switch d := x.Data.(type) {
	case *ast.IDData:
		return tc.lookupVar(d.Name, x.Span)

	case *ast.UnaryData:
		t, err := tc.checkExpr(d.X)
		if err != nil {
			return types.Type{}, err
		}
		spec, ok := UnarySpecFor(d.Op)
		if !ok {
			return types.Type{}, diag.Errorf(diag.SemaTypeMismatch, x.Span, "unknown unary operator %s", d.Op)
		}
		if !t.Equal(spec.Operand) {
			return types.Type{}, diag.Errorf(diag.SemaTypeMismatch, x.Span, spec.Message, t)
		}
		return t, nil

	case *ast.BinaryData:
		l, err := tc.checkExpr(d.Left)
		if err != nil {
			return types.Type{}, err
		}
		r, err := tc.checkExpr(d.Right)
		if err != nil {
			return types.Type{}, err
		}
		spec, ok := BinarySpecFor(d.Op)
		if !ok {
			return types.Type{}, diag.Errorf(diag.SemaTypeMismatch, x.Span, "unknown binary operator %s", d.Op)
		}
		if !spec.accepts(l, r) {
			return types.Type{}, diag.Errorf(diag.SemaTypeMismatch, x.Span, "%s", spec.Message)
		}
		return spec.Result, nil

	case *ast.DotData:
		at, err := tc.checkExpr(d.Atom)
		if err != nil {
			return types.Type{}, err
		}
		return tc.lookupField(at, d.Member, x.Span)

	case *ast.CallData:
		return tc.checkCall(x, d)

	case *ast.NewData:
		if !tc.reg.HasClass(d.Class) {
			return types.Type{}, diag.Errorf(diag.SemaUnknownClassType, x.Span, "No such class '%s'", d.Class)
		}
		return types.Class(d.Class), nil
	}
	return types.Type{}, diag.Errorf(diag.SemaInfo, x.Span, "unsupported expression %s", x.Kind)
}

func (tc *typeChecker) lookupField(atom types.Type, field string, sp source.Span) (types.Type, error) {
	desc, err := tc.classOf(atom, sp)
	if err != nil {
		return types.Type{}, err
	}
	ft, ok := desc.Field(field)
	if !ok {
		return types.Type{}, diag.Errorf(diag.SemaUnknownField, sp, "Class '%s' has no field '%s'", desc.Name, field)
	}
	return ft, nil
}

func (tc *typeChecker) classOf(t types.Type, sp source.Span) (*symbols.ClassDescriptor, error) {
	if t.Kind != types.KindClass {
		return nil, diag.Errorf(diag.SemaNotAClassType, sp, "Cannot access field of type '%s'", t)
	}
	desc, ok := tc.reg.Class(t.Name)
	if !ok {
		return nil, diag.Errorf(diag.SemaUnknownClassType, sp, "No such class '%s'", t.Name)
	}
	return desc, nil
}

// checkCall resolves the callee (local or qualified), then the arguments.
func (tc *typeChecker) checkCall(x *ast.Expr, d *ast.CallData) (types.Type, error) {
	fn, err := tc.resolveCallee(d.Callee)
	if err != nil {
		return types.Type{}, err
	}
	tc.exprs.SetType(d.Callee, fn)

	args := make([]types.Type, len(d.Args))
	for i, a := range d.Args {
		t, err := tc.checkExpr(a)
		if err != nil {
			return types.Type{}, err
		}
		args[i] = t
	}
	if !types.EqualSeq(args, fn.Params) {
		return types.Type{}, diag.Errorf(diag.SemaArgumentMismatch, x.Span, "Attempt to call method with incompatible argument type")
	}
	return fn.Ret(), nil
}

func (tc *typeChecker) resolveCallee(callee ast.ExprID) (types.Type, error) {
	x := tc.exprs.Get(callee)
	switch d := x.Data.(type) {
	case *ast.IDData:
		t, err := tc.lookupVar(d.Name, x.Span)
		if err != nil {
			return types.Type{}, err
		}
		if !t.IsFunction() {
			return types.Type{}, diag.Errorf(diag.SemaNotAMethod, x.Span, "'%s' is not a method", d.Name)
		}
		return t, nil

	case *ast.DotData:
		at, err := tc.checkExpr(d.Atom)
		if err != nil {
			return types.Type{}, err
		}
		desc, err := tc.classOf(at, x.Span)
		if err != nil {
			return types.Type{}, err
		}
		mt, ok := desc.Method(d.Member)
		if !ok {
			return types.Type{}, diag.Errorf(diag.SemaUnknownMethod, x.Span, "Class '%s' has no method '%s'", desc.Name, d.Member)
		}
		return mt, nil
	}
	// f()() и подобное: вызывать можно только имя или obj.имя
	return types.Type{}, diag.Errorf(diag.SemaNotAMethod, x.Span, "'%s' is not a method", x.Kind)
}
