package types

import "testing"

func TestEqualStructural(t *testing.T) {
	samples := []Type{
		Int(), Bool(), String(), Void(), Null(),
		Class("A"), Class("B"),
		Function(nil, Int()),
		Function([]Type{Int(), Class("A")}, Bool()),
		Function([]Type{Int(), Class("B")}, Bool()),
		Function([]Type{Int(), Class("A")}, Void()),
	}
	for i, a := range samples {
		if !a.Equal(a) {
			t.Errorf("%s not reflexive", a)
		}
		for j, b := range samples {
			if a.Equal(b) != b.Equal(a) {
				t.Errorf("%s / %s not symmetric", a, b)
			}
			if i != j && a.Equal(b) {
				t.Errorf("%s must differ from %s", a, b)
			}
		}
	}
	if !Class("A").Equal(Class("A")) {
		t.Error("same class name must be equal")
	}
	if !Function([]Type{Int()}, Class("A")).Equal(Function([]Type{Int()}, Class("A"))) {
		t.Error("identical signatures must be equal")
	}
}

func TestSameKindIgnoresNames(t *testing.T) {
	if !Class("A").SameKind(Class("B")) {
		t.Error("classes share kind")
	}
	if Null().SameKind(Class("A")) {
		t.Error("null is its own kind")
	}
}

func TestFunctionCopiesParams(t *testing.T) {
	ps := []Type{Int()}
	fn := Function(ps, Void())
	ps[0] = Bool()
	if fn.Params[0].Kind != KindInt {
		t.Error("params must be copied")
	}
}

func TestStringAndFromName(t *testing.T) {
	cases := map[string]string{
		"Int": "Int", "Bool": "Bool", "String": "String", "Void": "Void", "Point": "Point",
	}
	for in, want := range cases {
		if got := FromName(in).String(); got != want {
			t.Errorf("FromName(%q) = %q, want %q", in, got, want)
		}
	}
	if got := Function([]Type{Int(), Class("A")}, Bool()).String(); got != "(Int, A) -> Bool" {
		t.Errorf("function string = %q", got)
	}
	if (Type{}).IsSet() {
		t.Error("zero type must be unset")
	}
}

func TestFamilies(t *testing.T) {
	if !IOFamily.Accepts(String()) || IOFamily.Accepts(Class("A")) || IOFamily.Accepts(Void()) {
		t.Error("io family mismatch")
	}
	if !FamilyAny.Accepts(Null()) {
		t.Error("any accepts everything")
	}
}
