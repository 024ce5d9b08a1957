package testkit

import (
	"fmt"

	"fortio.org/safecast"

	"jlite/internal/ast"
	"jlite/internal/source"
)

// CheckSpanInvariants runs a minimal set of span invariants on a parsed program:
// 1) prog.Span lies within the file content and covers every class
// 2) every class, method, statement and expression span is non-empty and
// nested inside its parent span
// 3) every span points at sf
func CheckSpanInvariants(prog *ast.Program, sf *source.File) error {
	if prog == nil || sf == nil {
		return fmt.Errorf("nil program or file")
	}
	lenContent, err := safecast.Conv[uint32](len(sf.Content))
	if err != nil {
		return fmt.Errorf("len content overflow: %w", err)
	}
	if prog.Span.End > lenContent {
		return fmt.Errorf("program span end beyond content: %d > %d", prog.Span.End, lenContent)
	}

	for i := range prog.Classes {
		cls := &prog.Classes[i]
		if err := nested(cls.Span, prog.Span, sf.ID, "class "+cls.Name); err != nil {
			return err
		}
		for _, v := range cls.Vars {
			if err := nested(v.Span, cls.Span, sf.ID, "field "+cls.Name+"."+v.ID); err != nil {
				return err
			}
		}
		for j := range cls.Methods {
			m := &cls.Methods[j]
			where := "method " + cls.Name + "." + m.ID
			if err := nested(m.Span, cls.Span, sf.ID, where); err != nil {
				return err
			}
			if err := checkBody(prog, m, sf.ID, where); err != nil {
				return err
			}
		}
	}
	return nil
}

func checkBody(prog *ast.Program, m *ast.Method, file source.FileID, where string) error {
	var firstErr error
	var checkExpr func(id ast.ExprID, parent source.Span)
	checkExpr = func(id ast.ExprID, parent source.Span) {
		x := prog.Expr(id)
		if x == nil {
			if firstErr == nil {
				firstErr = fmt.Errorf("%s: nil expression for id=%d", where, id)
			}
			return
		}
		if err := nested(x.Span, parent, file, where+": "+x.Kind.String()); err != nil && firstErr == nil {
			firstErr = err
		}
		for _, child := range ast.Children(x) {
			checkExpr(child, x.Span)
		}
	}
	prog.WalkStmts(m.Stmts, func(id ast.StmtID, st *ast.Stmt) {
		if firstErr != nil {
			return
		}
		if err := nested(st.Span, m.Span, file, where+": "+st.Kind.String()); err != nil {
			firstErr = err
			return
		}
		for _, x := range ast.StmtExprs(st) {
			checkExpr(x, st.Span)
		}
	})
	return firstErr
}

func nested(sp, parent source.Span, file source.FileID, what string) error {
	if sp.End <= sp.Start {
		return fmt.Errorf("%s: empty span %v", what, sp)
	}
	if sp.File != file {
		return fmt.Errorf("%s: span file mismatch: got=%d want=%d", what, sp.File, file)
	}
	if sp.Start < parent.Start || sp.End > parent.End {
		return fmt.Errorf("%s: span %v is outside %v", what, sp, parent)
	}
	return nil
}
