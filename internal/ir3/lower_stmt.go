package ir3

import (
	"jlite/internal/ast"
)

func (fl *funcLowerer) lowerStmts(ids []ast.StmtID) {
	for _, id := range ids {
		fl.lowerStmt(id)
	}
}

func (fl *funcLowerer) lowerStmt(id ast.StmtID) {
	st := fl.prog.Stmt(id)
	if st == nil {
		internalf(fl.out, "missing statement %d", id)
	}
	switch d := st.Data.(type) {
	case *ast.IfData:
		// else идёт по fall-through, then - по явному переходу
		thenLabel := fl.newLabel()
		endLabel := fl.newLabel()
		cond := fl.lowerExpr(d.Cond)
		fl.emit(Stmt{Kind: StmtIf, If: IfStmt{Cond: cond, Label: thenLabel}})
		fl.lowerStmts(d.Else)
		fl.emit(Stmt{Kind: StmtGoto, Goto: GotoStmt{Label: endLabel}})
		fl.emit(Stmt{Kind: StmtLabel, Label: LabelStmt{Label: thenLabel}})
		fl.lowerStmts(d.Then)
		fl.emit(Stmt{Kind: StmtLabel, Label: LabelStmt{Label: endLabel}})

	case *ast.WhileData:
		bodyLabel := fl.newLabel()
		condLabel := fl.newLabel()
		fl.emit(Stmt{Kind: StmtGoto, Goto: GotoStmt{Label: condLabel}})
		fl.emit(Stmt{Kind: StmtLabel, Label: LabelStmt{Label: bodyLabel}})
		fl.lowerStmts(d.Body)
		fl.emit(Stmt{Kind: StmtLabel, Label: LabelStmt{Label: condLabel}})
		cond := fl.lowerExpr(d.Cond)
		fl.emit(Stmt{Kind: StmtIf, If: IfStmt{Cond: cond, Label: bodyLabel}})

	case *ast.ReadlnData:
		if name, ok := fl.out.Resolve(d.ID); ok {
			fl.emit(Stmt{Kind: StmtReadln, Readln: ReadlnStmt{ID: name}})
			return
		}
		// поле: читаем во временную и записываем в this
		ft := fl.fieldType(d.ID)
		tmp := fl.newTemp(ft)
		fl.emit(Stmt{Kind: StmtReadln, Readln: ReadlnStmt{ID: tmp.Name}})
		fl.emit(Stmt{Kind: StmtFieldAssign, FieldAssign: FieldAssignStmt{
			Atom:  This(fl.out.Class),
			Field: d.ID,
			RHS:   tmp,
		}})

	case *ast.PrintlnData:
		fl.emit(Stmt{Kind: StmtPrintln, Println: PrintlnStmt{Expr: fl.lowerExpr(d.Expr)}})

	case *ast.AssignData:
		rhs := fl.lowerExpr(d.RHS)
		if name, ok := fl.out.Resolve(d.LHS); ok {
			fl.emit(Stmt{Kind: StmtAssign, Assign: AssignStmt{LHS: name, RHS: rhs}})
			return
		}
		fl.emit(Stmt{Kind: StmtFieldAssign, FieldAssign: FieldAssignStmt{
			Atom:  This(fl.out.Class),
			Field: d.LHS,
			RHS:   rhs,
		}})

	case *ast.FieldAssignData:
		rhs := fl.lowerExpr(d.RHS)
		atom := fl.lowerExpr(d.Atom)
		fl.emit(Stmt{Kind: StmtFieldAssign, FieldAssign: FieldAssignStmt{Atom: atom, Field: d.Field, RHS: rhs}})

	case *ast.CallStmtData:
		name, args := fl.lowerCall(d.Call)
		fl.emit(Stmt{Kind: StmtCall, Call: CallStmt{Name: name, Args: args}})

	case *ast.ReturnData:
		if !d.Value.IsValid() {
			fl.emit(Stmt{Kind: StmtReturn})
			return
		}
		v := fl.genTemp(fl.lowerExpr(d.Value))
		fl.emit(Stmt{Kind: StmtReturn, Return: ReturnStmt{Value: &v}})

	default:
		internalf(fl.out, "unexpected statement kind %s", st.Kind)
	}
}
