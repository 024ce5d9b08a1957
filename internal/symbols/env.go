package symbols

import "jlite/internal/types"

// NewClassScope builds the class-level environment: every method signature,
// then every field, then `this`. Fields therefore shadow methods of the same name.
func NewClassScope(desc *ClassDescriptor) *Scope {
	s := NewScope(ScopeClass, nil, desc.Name)
	for _, m := range desc.Methods {
		s.Define(Symbol{Name: m.Name, Kind: SymbolMethod, Type: m.Type, Span: m.Span})
	}
	for _, f := range desc.Fields {
		s.Define(Symbol{Name: f.Name, Kind: SymbolField, Type: f.Type, Span: f.Span})
	}
	s.Define(Symbol{Name: ThisName, Kind: SymbolThis, Type: types.Class(desc.Name), Span: desc.Span})
	return s
}
