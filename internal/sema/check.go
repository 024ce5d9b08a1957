package sema

import (
	"jlite/internal/ast"
	"jlite/internal/diag"
	"jlite/internal/source"
	"jlite/internal/symbols"
	"jlite/internal/trace"
	"jlite/internal/types"
)

// Options configure a semantic pass over a program.
type Options struct {
	Reporter   diag.Reporter // получает ровно одну диагностику при ошибке
	Tracer     trace.Tracer
	ParentSpan uint64
}

// Check type-checks every method of prog against reg and fills every
// expression's type slot. It stops at the first violation and returns it as
// a *diag.Error; the same diagnostic is forwarded to opts.Reporter.
func Check(prog *ast.Program, reg *symbols.Registry, opts Options) error {
	tc := typeChecker{
		prog:   prog,
		exprs:  prog.Exprs,
		reg:    reg,
		tracer: opts.Tracer,
		parent: opts.ParentSpan,
	}
	if tc.tracer == nil {
		tc.tracer = trace.Nop
	}
	err := tc.run()
	if err != nil {
		if d, ok := diag.AsDiagnostic(err); ok {
			diag.Report(opts.Reporter, d)
		}
	}
	return err
}

type typeChecker struct {
	prog   *ast.Program
	exprs  *ast.Exprs
	reg    *symbols.Registry
	tracer trace.Tracer
	parent uint64

	class  *symbols.ClassDescriptor
	method *ast.Method
	scope  *symbols.Scope
}

func (tc *typeChecker) run() error {
	for i := range tc.prog.Classes {
		cls := &tc.prog.Classes[i]
		desc, ok := tc.reg.Class(cls.Name)
		if !ok {
			return diag.Errorf(diag.SemaUnknownClassType, cls.Span, "No such class '%s'", cls.Name)
		}
		tc.class = desc
		classScope := symbols.NewClassScope(desc)
		for j := range cls.Methods {
			if err := tc.checkMethod(classScope, &cls.Methods[j]); err != nil {
				return err
			}
		}
	}
	return nil
}

func (tc *typeChecker) checkMethod(classScope *symbols.Scope, m *ast.Method) error {
	span := trace.Begin(tc.tracer, trace.ScopeModule, "check:"+tc.class.Name+"."+m.ID, tc.parent)
	defer span.End("")

	tc.method = m
	tc.scope = symbols.NewScope(symbols.ScopeMethod, classScope, m.ID)
	for _, p := range m.Params {
		tc.scope.Define(symbols.Symbol{Name: p.ID, Kind: symbols.SymbolParam, Type: p.Type, Span: p.Span})
	}
	tc.scope.Define(symbols.Symbol{Name: symbols.RetName, Kind: symbols.SymbolRet, Type: m.ReturnType, Span: m.Span})
	for _, v := range m.Vars {
		if !tc.reg.Known(v.Type) {
			return diag.Errorf(diag.SemaUnknownClassType, v.Span, "Invalid variable type '%s' for variable '%s' in method '%s'", v.Type, v.ID, m.ID)
		}
		tc.scope.Define(symbols.Symbol{Name: v.ID, Kind: symbols.SymbolLocal, Type: v.Type, Span: v.Span})
	}

	// Тип последнего встреченного return; без return метод считается Void.
	last := types.Void()
	if err := tc.checkStmts(m.Stmts, &last); err != nil {
		return err
	}
	if !last.SameKind(m.ReturnType) {
		return diag.Errorf(diag.SemaReturnTypeMismatch, m.Span, "Type of method body '%s' does not match return type '%s'", last, m.ReturnType)
	}
	span.WithInt("stmts", len(m.Stmts)).WithInt("bindings", len(tc.scope.Symbols()))
	return nil
}

// lookupVar resolves a name written in the method body. The synthetic Ret
// binding is visible to return statements only.
func (tc *typeChecker) lookupVar(name string, sp source.Span) (types.Type, error) {
	sym, ok := tc.scope.Lookup(name)
	if !ok || sym.Kind == symbols.SymbolRet {
		return types.Type{}, diag.Errorf(diag.SemaUnresolvedIdentifier, sp, "Cannot resolve identifier '%s'", name)
	}
	return sym.Type, nil
}
