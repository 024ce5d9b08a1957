package symbols

import (
	"jlite/internal/ast"
	"jlite/internal/diag"
	"jlite/internal/source"
	"jlite/internal/types"
)

// FieldDesc is a field of a class in declaration order.
type FieldDesc struct {
	Name string
	Type types.Type
	Span source.Span
}

// MethodDesc carries a method's Function type.
type MethodDesc struct {
	Name string
	Type types.Type
	Span source.Span
}

// ClassDescriptor is the flat layout and signature table of one class.
// Built once by Build and read-only afterwards.
type ClassDescriptor struct {
	Name    string
	Span    source.Span
	Fields  []FieldDesc
	Methods []MethodDesc

	fieldIndex  map[string]int
	methodIndex map[string]int
}

// Field returns the declared type of field name.
func (c *ClassDescriptor) Field(name string) (types.Type, bool) {
	i, ok := c.fieldIndex[name]
	if !ok {
		return types.Type{}, false
	}
	return c.Fields[i].Type, true
}

// Method returns the Function type of method name.
func (c *ClassDescriptor) Method(name string) (types.Type, bool) {
	i, ok := c.methodIndex[name]
	if !ok {
		return types.Type{}, false
	}
	return c.Methods[i].Type, true
}

// Registry maps class names to descriptors, preserving program order.
type Registry struct {
	classes []*ClassDescriptor
	index   map[string]*ClassDescriptor
}

// Class looks a class up by name.
func (r *Registry) Class(name string) (*ClassDescriptor, bool) {
	c, ok := r.index[name]
	return c, ok
}

// HasClass reports whether name is a declared class.
func (r *Registry) HasClass(name string) bool {
	_, ok := r.index[name]
	return ok
}

// Classes returns descriptors in program order.
func (r *Registry) Classes() []*ClassDescriptor { return r.classes }

// Len returns the number of classes.
func (r *Registry) Len() int { return len(r.classes) }

// Known reports whether t can appear in a declaration: primitives always,
// class types only if the class exists.
func (r *Registry) Known(t types.Type) bool {
	if t.Kind != types.KindClass {
		return true
	}
	return r.HasClass(t.Name)
}

// Build constructs the registry in two passes: class shells first, then
// members, so member types may refer to classes declared later.
func Build(prog *ast.Program) (*Registry, error) {
	r := &Registry{index: make(map[string]*ClassDescriptor, len(prog.Classes))}

	for i := range prog.Classes {
		cls := &prog.Classes[i]
		if _, dup := r.index[cls.Name]; dup {
			return nil, diag.Errorf(diag.SemaDuplicateClass, cls.Span, "Duplicate class name '%s'", cls.Name)
		}
		desc := &ClassDescriptor{
			Name:        cls.Name,
			Span:        cls.Span,
			fieldIndex:  make(map[string]int, len(cls.Vars)),
			methodIndex: make(map[string]int, len(cls.Methods)),
		}
		r.classes = append(r.classes, desc)
		r.index[cls.Name] = desc
	}

	for i := range prog.Classes {
		if err := r.fillMembers(&prog.Classes[i], r.classes[i]); err != nil {
			return nil, err
		}
	}
	return r, nil
}

func (r *Registry) fillMembers(cls *ast.Class, desc *ClassDescriptor) error {
	for _, v := range cls.Vars {
		if _, dup := desc.fieldIndex[v.ID]; dup {
			return diag.Errorf(diag.SemaDuplicateField, v.Span, "Duplicate var declaration '%s' in class '%s'", v.ID, cls.Name)
		}
		if !r.Known(v.Type) {
			return diag.Errorf(diag.SemaUnknownClassType, v.Span, "Invalid var type '%s' for var '%s' in class '%s'", v.Type, v.ID, cls.Name)
		}
		desc.fieldIndex[v.ID] = len(desc.Fields)
		desc.Fields = append(desc.Fields, FieldDesc{Name: v.ID, Type: v.Type, Span: v.Span})
	}

	for i := range cls.Methods {
		m := &cls.Methods[i]
		if _, dup := desc.methodIndex[m.ID]; dup {
			return diag.Errorf(diag.SemaDuplicateMethod, m.Span, "Duplicate method declaration '%s' in class '%s'", m.ID, cls.Name)
		}
		seen := make(map[string]struct{}, len(m.Params))
		for _, p := range m.Params {
			if _, dup := seen[p.ID]; dup {
				return diag.Errorf(diag.SemaDuplicateParam, p.Span, "Duplicate param name '%s' in method '%s' of class '%s'", p.ID, m.ID, cls.Name)
			}
			seen[p.ID] = struct{}{}
			if !r.Known(p.Type) {
				return diag.Errorf(diag.SemaUnknownClassType, p.Span, "Invalid param type '%s' for param '%s' in method '%s' of class '%s'", p.Type, p.ID, m.ID, cls.Name)
			}
		}
		if !r.Known(m.ReturnType) {
			return diag.Errorf(diag.SemaUnknownClassType, m.Span, "Invalid return type '%s' for method '%s' in class '%s'", m.ReturnType, m.ID, cls.Name)
		}
		desc.methodIndex[m.ID] = len(desc.Methods)
		desc.Methods = append(desc.Methods, MethodDesc{Name: m.ID, Type: m.Signature(), Span: m.Span})
	}
	return nil
}
