package ir3

import (
	"fmt"
	"strconv"

	"fortio.org/safecast"

	"jlite/internal/ast"
	"jlite/internal/symbols"
	"jlite/internal/trace"
	"jlite/internal/types"
)

// InternalError is the panic value for input shapes a checked program can
// never produce. It signals a disagreement between checking and lowering.
type InternalError struct {
	Method string
	Msg    string
}

func (e *InternalError) Error() string {
	if e.Method == "" {
		return "ir3: internal error: " + e.Msg
	}
	return fmt.Sprintf("ir3: internal error in %s: %s", e.Method, e.Msg)
}

func internalf(m *Method, format string, args ...any) {
	name := ""
	if m != nil {
		name = m.Name
	}
	panic(&InternalError{Method: name, Msg: fmt.Sprintf(format, args...)})
}

// Options configure lowering.
type Options struct {
	Tracer     trace.Tracer
	ParentSpan uint64
}

// Lower translates a checked program into IR3. All counters and rename maps
// live in the returned Program, so separate calls share nothing.
// Malformed input panics with *InternalError.
func Lower(prog *ast.Program, reg *symbols.Registry, opts Options) *Program {
	tracer := opts.Tracer
	if tracer == nil {
		tracer = trace.Nop
	}
	out := &Program{
		Datas:   make([]Data, 0, len(prog.Classes)),
		Methods: make([]*Method, 0, len(prog.Classes)),
	}

	for i := range prog.Classes {
		cls := &prog.Classes[i]
		vars := make([]Var, 0, len(cls.Vars))
		for _, v := range cls.Vars {
			vars = append(vars, Var{Type: v.Type, ID: v.ID})
		}
		out.Datas = append(out.Datas, Data{Class: cls.Name, Vars: vars})
	}

	for i := range prog.Classes {
		cls := &prog.Classes[i]
		for j := range cls.Methods {
			m := &cls.Methods[j]
			fl := &funcLowerer{
				prog: prog,
				reg:  reg,
				out: &Method{
					Name:       FlatName(cls.Name, m.ID),
					Class:      cls.Name,
					ReturnType: m.ReturnType,
					varMap:     make(map[string]string),
					nameCount:  make(map[string]int),
				},
			}
			span := trace.Begin(tracer, trace.ScopeModule, "lower:"+fl.out.Name, opts.ParentSpan)
			fl.lowerMethod(m)
			span.WithExtra("method", cls.Name+"."+m.ID).
				WithInt("temps", fl.out.TempCount()).
				WithInt("labels", fl.out.labels).
				End("")
			out.Methods = append(out.Methods, fl.out)
		}
	}
	return out
}

type funcLowerer struct {
	prog *ast.Program
	reg  *symbols.Registry
	out  *Method
}

func (fl *funcLowerer) lowerMethod(m *ast.Method) {
	out := fl.out
	out.Params = make([]Var, 0, len(m.Params)+1)
	out.Params = append(out.Params, Var{Type: types.Class(out.Class), ID: symbols.ThisName})
	for _, p := range m.Params {
		out.Params = append(out.Params, Var{Type: p.Type, ID: p.ID})
		out.nameCount[p.ID] = 1
		out.varMap[p.ID] = p.ID
	}

	// Повторное имя локала получает суффикс $N, varMap указывает на последнее.
	for _, v := range m.Vars {
		name := v.ID
		count := out.nameCount[v.ID]
		if count == 0 {
			out.nameCount[v.ID] = 1
		} else {
			name = v.ID + "$" + strconv.Itoa(count)
			out.nameCount[v.ID] = count + 1
		}
		out.Vars = append(out.Vars, Var{Type: v.Type, ID: name})
		out.varMap[v.ID] = name
	}

	for _, id := range m.Stmts {
		fl.lowerStmt(id)
	}
}

func (fl *funcLowerer) emit(st Stmt) {
	fl.out.Stmts = append(fl.out.Stmts, st)
}

func (fl *funcLowerer) newLabel() int {
	l := fl.out.labels
	fl.out.labels++
	return l
}

// newTemp declares a fresh temporary of type t without assigning it.
func (fl *funcLowerer) newTemp(t types.Type) Expr {
	var name string
	for {
		n, err := safecast.Conv[uint32](fl.out.temps)
		if err != nil {
			internalf(fl.out, "temporary counter overflow: %v", err)
		}
		fl.out.temps++
		name = "_t" + strconv.FormatUint(uint64(n), 10)
		if _, taken := fl.out.varMap[name]; !taken && !fl.isField(name) {
			break
		}
	}
	fl.out.Vars = append(fl.out.Vars, Var{Type: t, ID: name})
	fl.out.varMap[name] = name
	return ID(name, t)
}

// isField reports whether name is a field of the method's class.
func (fl *funcLowerer) isField(name string) bool {
	if fl.reg == nil {
		return false
	}
	desc, ok := fl.reg.Class(fl.out.Class)
	if !ok {
		return false
	}
	_, ok = desc.Field(name)
	return ok
}

// genTemp binds e to a fresh temporary and returns a read of it.
func (fl *funcLowerer) genTemp(e Expr) Expr {
	tmp := fl.newTemp(e.Type)
	fl.emit(Stmt{Kind: StmtAssign, Assign: AssignStmt{LHS: tmp.Name, RHS: e}})
	return tmp
}
