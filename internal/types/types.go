package types

import (
	"fmt"
	"strings"
)

// Kind enumerates all supported kinds of types.
type Kind uint8

const (
	KindInvalid Kind = iota // пустой слот: тип ещё не вычислен
	KindInt
	KindBool
	KindString
	KindVoid
	KindNull
	KindClass
	KindFunction
)

func (k Kind) String() string {
	switch k {
	case KindInvalid:
		return "invalid"
	case KindInt:
		return "Int"
	case KindBool:
		return "Bool"
	case KindString:
		return "String"
	case KindVoid:
		return "Void"
	case KindNull:
		return "Null"
	case KindClass:
		return "Class"
	case KindFunction:
		return "Function"
	default:
		return fmt.Sprintf("Kind(%d)", k)
	}
}

// Type is an immutable value describing a Jlite type.
// Name is set for classes, Params/Result for functions only.
type Type struct {
	Kind   Kind
	Name   string
	Params []Type
	Result *Type
}

func Int() Type    { return Type{Kind: KindInt} }
func Bool() Type   { return Type{Kind: KindBool} }
func String() Type { return Type{Kind: KindString} }
func Void() Type   { return Type{Kind: KindVoid} }
func Null() Type   { return Type{Kind: KindNull} }

// Class returns the nominal type of class name.
func Class(name string) Type { return Type{Kind: KindClass, Name: name} }

// Function builds a method signature type. Params are copied.
func Function(params []Type, result Type) Type {
	ps := make([]Type, len(params))
	copy(ps, params)
	r := result
	return Type{Kind: KindFunction, Params: ps, Result: &r}
}

// IsSet reports whether the type slot holds a computed type.
func (t Type) IsSet() bool { return t.Kind != KindInvalid }

// IsClass reports whether t is a class type.
func (t Type) IsClass() bool { return t.Kind == KindClass }

// IsFunction reports whether t is a function type.
func (t Type) IsFunction() bool { return t.Kind == KindFunction }

// Ret returns the function result, or Void for non-function types.
func (t Type) Ret() Type {
	if t.Kind != KindFunction || t.Result == nil {
		return Void()
	}
	return *t.Result
}

// SameKind compares only the variant tag.
func (t Type) SameKind(o Type) bool { return t.Kind == o.Kind }

// Equal reports structural equality: classes by name, functions by
// parameter sequence and result, everything else by kind.
func (t Type) Equal(o Type) bool {
	if t.Kind != o.Kind {
		return false
	}
	switch t.Kind {
	case KindClass:
		return t.Name == o.Name
	case KindFunction:
		if len(t.Params) != len(o.Params) {
			return false
		}
		for i := range t.Params {
			if !t.Params[i].Equal(o.Params[i]) {
				return false
			}
		}
		return t.Ret().Equal(o.Ret())
	default:
		return true
	}
}

// EqualSeq compares two type sequences element-wise.
func EqualSeq(a, b []Type) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !a[i].Equal(b[i]) {
			return false
		}
	}
	return true
}

// String renders the type the way IR3 and diagnostics print it.
func (t Type) String() string {
	switch t.Kind {
	case KindClass:
		return t.Name
	case KindFunction:
		parts := make([]string, len(t.Params))
		for i, p := range t.Params {
			parts[i] = p.String()
		}
		return "(" + strings.Join(parts, ", ") + ") -> " + t.Ret().String()
	default:
		return t.Kind.String()
	}
}

// Primitive maps a built-in type name to its type.
func Primitive(name string) (Type, bool) {
	switch name {
	case "Int":
		return Int(), true
	case "Bool":
		return Bool(), true
	case "String":
		return String(), true
	case "Void":
		return Void(), true
	}
	return Type{}, false
}

// FromName resolves a surface type name: primitives first, otherwise a class.
func FromName(name string) Type {
	if t, ok := Primitive(name); ok {
		return t
	}
	return Class(name)
}
