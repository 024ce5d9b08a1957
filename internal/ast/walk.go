package ast

// WalkStmts visits ids and nested if/while bodies depth-first in source order.
func (p *Program) WalkStmts(ids []StmtID, visit func(StmtID, *Stmt)) {
	for _, id := range ids {
		st := p.Stmt(id)
		if st == nil {
			continue
		}
		visit(id, st)
		switch d := st.Data.(type) {
		case *IfData:
			p.WalkStmts(d.Then, visit)
			p.WalkStmts(d.Else, visit)
		case *WhileData:
			p.WalkStmts(d.Body, visit)
		}
	}
}

// Children returns the direct sub-expressions of x in evaluation order.
func Children(x *Expr) []ExprID {
	switch d := x.Data.(type) {
	case *UnaryData:
		return []ExprID{d.X}
	case *BinaryData:
		return []ExprID{d.Left, d.Right}
	case *DotData:
		return []ExprID{d.Atom}
	case *CallData:
		out := make([]ExprID, 0, len(d.Args)+1)
		out = append(out, d.Callee)
		return append(out, d.Args...)
	default:
		return nil
	}
}

// StmtExprs returns the root expressions a statement owns directly.
func StmtExprs(st *Stmt) []ExprID {
	switch d := st.Data.(type) {
	case *IfData:
		return []ExprID{d.Cond}
	case *WhileData:
		return []ExprID{d.Cond}
	case *PrintlnData:
		return []ExprID{d.Expr}
	case *AssignData:
		return []ExprID{d.RHS}
	case *FieldAssignData:
		return []ExprID{d.Atom, d.RHS}
	case *CallStmtData:
		return []ExprID{d.Call}
	case *ReturnData:
		if d.Value.IsValid() {
			return []ExprID{d.Value}
		}
	}
	return nil
}
