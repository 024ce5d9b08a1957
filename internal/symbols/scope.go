package symbols

import (
	"jlite/internal/diag"
	"jlite/internal/source"
	"jlite/internal/types"
)

// ScopeKind enumerates supported scope categories.
type ScopeKind uint8

const (
	ScopeInvalid ScopeKind = iota
	ScopeClass             // методы, поля, this
	ScopeMethod            // параметры, Ret, локальные
)

func (k ScopeKind) String() string {
	switch k {
	case ScopeClass:
		return "class"
	case ScopeMethod:
		return "method"
	default:
		return "invalid"
	}
}

// Scope is one link of the environment chain. Lookup walks outward through
// Parent; the first match wins.
type Scope struct {
	Kind   ScopeKind
	Parent *Scope
	Owner  string // имя класса или метода
	names  map[string]Symbol
	order  []string
}

// NewScope creates a child of parent (nil for a root).
func NewScope(kind ScopeKind, parent *Scope, owner string) *Scope {
	return &Scope{
		Kind:   kind,
		Parent: parent,
		Owner:  owner,
		names:  make(map[string]Symbol),
	}
}

// Define binds sym in this link. A later definition of the same name replaces
// the earlier one, so fields inserted after methods win at class scope.
func (s *Scope) Define(sym Symbol) {
	if _, exists := s.names[sym.Name]; !exists {
		s.order = append(s.order, sym.Name)
	}
	s.names[sym.Name] = sym
}

// Contains reports whether name is bound anywhere along the chain.
func (s *Scope) Contains(name string) bool {
	_, ok := s.Lookup(name)
	return ok
}

// Lookup searches this scope, then each ancestor in order.
func (s *Scope) Lookup(name string) (Symbol, bool) {
	for cur := s; cur != nil; cur = cur.Parent {
		if sym, ok := cur.names[name]; ok {
			return sym, true
		}
	}
	return Symbol{}, false
}

// LookupType resolves name to its type or fails with UnresolvedIdentifier.
func (s *Scope) LookupType(name string, sp source.Span) (types.Type, error) {
	sym, ok := s.Lookup(name)
	if !ok {
		return types.Type{}, diag.Errorf(diag.SemaUnresolvedIdentifier, sp, "Cannot resolve identifier '%s'", name)
	}
	return sym.Type, nil
}

// Symbols returns the bindings of this link in definition order.
func (s *Scope) Symbols() []Symbol {
	out := make([]Symbol, 0, len(s.order))
	for _, n := range s.order {
		out = append(out, s.names[n])
	}
	return out
}
