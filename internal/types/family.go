package types

// FamilyMask describes broad categories of types an operator accepts.
type FamilyMask uint32

const (
	FamilyNone FamilyMask = 0
	FamilyAny  FamilyMask = 1 << iota
	FamilyInt
	FamilyBool
	FamilyString
	FamilyClass
	FamilyNull
)

// Family returns the mask bit describing t.
func Family(t Type) FamilyMask {
	switch t.Kind {
	case KindInt:
		return FamilyInt
	case KindBool:
		return FamilyBool
	case KindString:
		return FamilyString
	case KindClass:
		return FamilyClass
	case KindNull:
		return FamilyNull
	default:
		return FamilyNone
	}
}

// Accepts reports whether t belongs to one of the families in m.
func (m FamilyMask) Accepts(t Type) bool {
	if m&FamilyAny != 0 {
		return true
	}
	return m&Family(t) != 0
}

// IOFamily covers the types readln/println can handle.
const IOFamily = FamilyInt | FamilyBool | FamilyString
