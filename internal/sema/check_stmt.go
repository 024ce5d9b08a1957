package sema

import (
	"jlite/internal/ast"
	"jlite/internal/diag"
	"jlite/internal/symbols"
	"jlite/internal/types"
)

func (tc *typeChecker) checkStmts(ids []ast.StmtID, last *types.Type) error {
	for _, id := range ids {
		if err := tc.checkStmt(id, last); err != nil {
			return err
		}
	}
	return nil
}

func (tc *typeChecker) checkStmt(id ast.StmtID, last *types.Type) error {
	st := tc.prog.Stmt(id)
	switch d := st.Data.(type) {
	case *ast.IfData:
		if err := tc.checkCond(d.Cond, "If"); err != nil {
			return err
		}
		if err := tc.checkStmts(d.Then, last); err != nil {
			return err
		}
		return tc.checkStmts(d.Else, last)

	case *ast.WhileData:
		if err := tc.checkCond(d.Cond, "While"); err != nil {
			return err
		}
		return tc.checkStmts(d.Body, last)

	case *ast.ReadlnData:
		t, err := tc.lookupVar(d.ID, st.Span)
		if err != nil {
			return err
		}
		if !types.IOFamily.Accepts(t) {
			return diag.Errorf(diag.SemaUnreadableType, st.Span, "Cannot read into a variable of type '%s'", t)
		}
		return nil

	case *ast.PrintlnData:
		t, err := tc.checkExpr(d.Expr)
		if err != nil {
			return err
		}
		if !types.IOFamily.Accepts(t) {
			return diag.Errorf(diag.SemaUnprintableType, st.Span, "Cannot print a variable of type '%s'", t)
		}
		return nil

	case *ast.AssignData:
		lhs, err := tc.lookupVar(d.LHS, st.Span)
		if err != nil {
			return err
		}
		rhs, err := tc.checkExpr(d.RHS)
		if err != nil {
			return err
		}
		return tc.requireAssignable(st, lhs, rhs)

	case *ast.FieldAssignData:
		target, err := tc.fieldType(d.Atom, d.Field, st)
		if err != nil {
			return err
		}
		rhs, err := tc.checkExpr(d.RHS)
		if err != nil {
			return err
		}
		return tc.requireAssignable(st, target, rhs)

	case *ast.CallStmtData:
		_, err := tc.checkExpr(d.Call)
		return err

	case *ast.ReturnData:
		ret, err := tc.scope.LookupType(symbols.RetName, st.Span)
		if err != nil {
			return err
		}
		if !d.Value.IsValid() {
			if ret.Kind != types.KindVoid {
				return diag.Errorf(diag.SemaReturnTypeMismatch, st.Span, "Must return a value in a method returning non-Void")
			}
			*last = types.Void()
			return nil
		}
		t, err := tc.checkExpr(d.Value)
		if err != nil {
			return err
		}
		if !t.Equal(ret) {
			return diag.Errorf(diag.SemaReturnTypeMismatch, st.Span, "Type of return statement '%s' is not equal to return type '%s'", t, ret)
		}
		*last = t
		return nil
	}
	return diag.Errorf(diag.SemaInfo, st.Span, "unsupported statement %s", st.Kind)
}

func (tc *typeChecker) checkCond(cond ast.ExprID, what string) error {
	t, err := tc.checkExpr(cond)
	if err != nil {
		return err
	}
	if t.Kind != types.KindBool {
		return diag.Errorf(diag.SemaConditionTypeError, tc.exprs.Get(cond).Span, "%s statement condition type '%s' is not Bool", what, t)
	}
	return nil
}

// requireAssignable: точное структурное равенство, null не приводится к классу.
func (tc *typeChecker) requireAssignable(st *ast.Stmt, target, value types.Type) error {
	if !value.Equal(target) {
		return diag.Errorf(diag.SemaAssignmentTypeMismatch, st.Span, "Cannot assign a value of type '%s' to a variable of type '%s'", value, target)
	}
	return nil
}

// fieldType checks `atom.field` as an lvalue.
func (tc *typeChecker) fieldType(atom ast.ExprID, field string, st *ast.Stmt) (types.Type, error) {
	at, err := tc.checkExpr(atom)
	if err != nil {
		return types.Type{}, err
	}
	return tc.lookupField(at, field, st.Span)
}
