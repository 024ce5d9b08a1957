package ir3

import (
	"bufio"
	"io"
	"strconv"
	"strings"
)

const (
	headerData    = "======= CData3 ======="
	headerMethods = "======= CMtd3 ======="
	footer        = "======= End of IR3 Program ======="
	indent        = "    "
)

// Print writes the textual form of p: data layouts, then methods, then the
// footer line.
func Print(w io.Writer, p *Program) error {
	if w == nil || p == nil {
		return nil
	}
	bw := bufio.NewWriter(w)

	bw.WriteString(headerData + "\n\n")
	for i := range p.Datas {
		d := &p.Datas[i]
		bw.WriteString("class " + d.Class + " {\n")
		for _, v := range d.Vars {
			bw.WriteString(indent + v.Type.String() + " " + v.ID + ";\n")
		}
		bw.WriteString("}\n\n")
	}

	bw.WriteString(headerMethods + "\n\n")
	for _, m := range p.Methods {
		if m != nil {
			printMethod(bw, m)
		}
	}
	bw.WriteString(footer + "\n\n")
	return bw.Flush()
}

// String renders p exactly as Print does.
func (p *Program) String() string {
	var sb strings.Builder
	_ = Print(&sb, p)
	return sb.String()
}

func printMethod(bw *bufio.Writer, m *Method) {
	params := make([]string, len(m.Params))
	for i, v := range m.Params {
		params[i] = v.Type.String() + " " + v.ID
	}
	bw.WriteString(m.ReturnType.String() + " " + m.Name + "(" + strings.Join(params, ", ") + ") {\n")
	for _, v := range m.Vars {
		bw.WriteString(indent + v.Type.String() + " " + v.ID + ";\n")
	}
	bw.WriteString("\n")
	for i := range m.Stmts {
		bw.WriteString(FormatStmt(&m.Stmts[i]))
		bw.WriteByte('\n')
	}
	bw.WriteString("}\n\n")
}

// FormatStmt renders one instruction without the trailing newline.
func FormatStmt(s *Stmt) string {
	switch s.Kind {
	case StmtLabel:
		return "L" + strconv.Itoa(s.Label.Label) + ":"
	case StmtIf:
		return indent + "if (" + FormatExpr(s.If.Cond) + ") goto L" + strconv.Itoa(s.If.Label) + ";"
	case StmtGoto:
		return indent + "goto L" + strconv.Itoa(s.Goto.Label) + ";"
	case StmtReadln:
		return indent + "readln(" + s.Readln.ID + ");"
	case StmtPrintln:
		return indent + "println(" + FormatExpr(s.Println.Expr) + ");"
	case StmtAssign:
		return indent + s.Assign.LHS + " = " + FormatExpr(s.Assign.RHS) + ";"
	case StmtFieldAssign:
		fa := &s.FieldAssign
		return indent + FormatExpr(fa.Atom) + "." + fa.Field + " = " + FormatExpr(fa.RHS) + ";"
	case StmtCall:
		return indent + s.Call.Name + "(" + formatArgs(s.Call.Args) + ");"
	case StmtReturn:
		if s.Return.Value == nil {
			return indent + "return;"
		}
		return indent + "return " + FormatExpr(*s.Return.Value) + ";"
	default:
		return indent + "<invalid>;"
	}
}

// FormatExpr renders an expression in IR3 surface syntax.
func FormatExpr(e Expr) string {
	switch e.Kind {
	case ExprStr:
		return `"` + e.Str + `"`
	case ExprInt:
		return strconv.FormatInt(e.Int, 10)
	case ExprBool:
		return strconv.FormatBool(e.Bool)
	case ExprID:
		return e.Name
	case ExprThis:
		return "this"
	case ExprNull:
		return "NULL"
	case ExprUnary:
		return e.UnaryOp.String() + "(" + operand(e, 0) + ")"
	case ExprBinary:
		return "(" + operand(e, 0) + ") " + e.BinaryOp.String() + " (" + operand(e, 1) + ")"
	case ExprDot:
		return operand(e, 0) + "." + e.Name
	case ExprCall:
		return e.Name + "(" + formatArgs(e.Operands) + ")"
	case ExprNew:
		return "new " + e.Name + "()"
	default:
		return "<invalid>"
	}
}

func operand(e Expr, i int) string {
	if i >= len(e.Operands) {
		return "<missing>"
	}
	return FormatExpr(e.Operands[i])
}

func formatArgs(args []Expr) string {
	parts := make([]string, len(args))
	for i, a := range args {
		parts[i] = FormatExpr(a)
	}
	return strings.Join(parts, ", ")
}
