package symbols

import (
	"jlite/internal/source"
	"jlite/internal/types"
)

// SymbolKind classifies the semantic meaning of a symbol.
type SymbolKind uint8

const (
	SymbolInvalid SymbolKind = iota
	SymbolMethod
	SymbolField
	SymbolThis
	SymbolParam
	SymbolRet // синтетическая привязка "Ret" с объявленным типом возврата
	SymbolLocal
)

func (k SymbolKind) String() string {
	switch k {
	case SymbolMethod:
		return "method"
	case SymbolField:
		return "field"
	case SymbolThis:
		return "this"
	case SymbolParam:
		return "param"
	case SymbolRet:
		return "ret"
	case SymbolLocal:
		return "local"
	default:
		return "invalid"
	}
}

// Symbol is a single name binding inside a scope.
type Symbol struct {
	Name string
	Kind SymbolKind
	Type types.Type
	Span source.Span
}

// RetName is the synthetic binding holding the enclosing method's return type.
// Only return statements consult it; body references to it do not resolve.
// A local named Ret declared later in the same method replaces it.
const RetName = "Ret"

// ThisName binds the receiver inside class scopes.
const ThisName = "this"
