package ir3

import (
	"errors"
	"fmt"

	"jlite/internal/symbols"
)

// Validate checks IR3 program invariants.
// Returns error if any invariant is violated.
func Validate(p *Program) error {
	if p == nil {
		return nil
	}
	var errs []error
	seen := make(map[string]struct{}, len(p.Methods))
	for _, m := range p.Methods {
		if m == nil {
			continue
		}
		if _, dup := seen[m.Name]; dup {
			errs = append(errs, fmt.Errorf("method %s: duplicate flat name", m.Name))
		}
		seen[m.Name] = struct{}{}
		if err := validateMethod(m); err != nil {
			errs = append(errs, fmt.Errorf("method %s: %w", m.Name, err))
		}
	}
	return errors.Join(errs...)
}

func validateMethod(m *Method) error {
	var errs []error

	// 1. this всегда первый параметр
	if err := validateReceiver(m); err != nil {
		errs = append(errs, err)
	}

	// 2. Метки уникальны, переходы ведут на существующие метки
	if err := validateLabels(m); err != nil {
		errs = append(errs, err)
	}

	// 3. A-normal form
	if err := validateANF(m); err != nil {
		errs = append(errs, err)
	}

	// 4. Все идентификаторы объявлены
	if err := validateDeclared(m); err != nil {
		errs = append(errs, err)
	}

	return errors.Join(errs...)
}

func validateReceiver(m *Method) error {
	if len(m.Params) == 0 {
		return errors.New("missing receiver parameter")
	}
	recv := m.Params[0]
	if recv.ID != symbols.ThisName {
		return fmt.Errorf("first parameter is %q, want %q", recv.ID, symbols.ThisName)
	}
	if !recv.Type.IsClass() || recv.Type.Name != m.Class {
		return fmt.Errorf("receiver has type %s, want %s", recv.Type, m.Class)
	}
	return nil
}

func validateLabels(m *Method) error {
	var errs []error
	labels := make(map[int]struct{})
	for i := range m.Stmts {
		st := &m.Stmts[i]
		if st.Kind != StmtLabel {
			continue
		}
		if _, dup := labels[st.Label.Label]; dup {
			errs = append(errs, fmt.Errorf("label L%d defined twice", st.Label.Label))
		}
		labels[st.Label.Label] = struct{}{}
	}
	for i := range m.Stmts {
		st := &m.Stmts[i]
		if target, ok := st.Target(); ok {
			if _, found := labels[target]; !found {
				errs = append(errs, fmt.Errorf("stmt %d: %s targets undefined label L%d", i, st.Kind, target))
			}
		}
	}
	return errors.Join(errs...)
}

func validateANF(m *Method) error {
	var errs []error
	for i := range m.Stmts {
		st := &m.Stmts[i]
		if st.Kind == StmtAssign {
			// правая часть присваивания - единственное место для составного выражения
			rhs := st.Assign.RHS
			for _, op := range rhs.Operands {
				if !op.Kind.IsAtomic() {
					errs = append(errs, fmt.Errorf("stmt %d: nested operand %s in assignment", i, FormatExpr(op)))
				}
			}
			continue
		}
		for _, e := range st.Exprs() {
			if !e.Kind.IsAtomic() {
				errs = append(errs, fmt.Errorf("stmt %d: %s operand %s is not atomic", i, st.Kind, FormatExpr(e)))
			}
		}
	}
	return errors.Join(errs...)
}

func validateDeclared(m *Method) error {
	declared := make(map[string]struct{}, len(m.Params)+len(m.Vars))
	for _, v := range m.Params {
		declared[v.ID] = struct{}{}
	}
	for _, v := range m.Vars {
		if _, dup := declared[v.ID]; dup {
			return fmt.Errorf("variable %s declared twice", v.ID)
		}
		declared[v.ID] = struct{}{}
	}

	var errs []error
	check := func(i int, name string) {
		if _, ok := declared[name]; !ok {
			errs = append(errs, fmt.Errorf("stmt %d: undeclared identifier %s", i, name))
		}
	}
	var walk func(i int, e Expr)
	walk = func(i int, e Expr) {
		if e.Kind == ExprID {
			check(i, e.Name)
		}
		for _, op := range e.Operands {
			walk(i, op)
		}
	}
	for i := range m.Stmts {
		st := &m.Stmts[i]
		switch st.Kind {
		case StmtReadln:
			check(i, st.Readln.ID)
		case StmtAssign:
			check(i, st.Assign.LHS)
		}
		for _, e := range st.Exprs() {
			walk(i, e)
		}
	}
	return errors.Join(errs...)
}
