package version

import "testing"

func TestColoredPlainMatchesString(t *testing.T) {
	if got := Colored(false); got != String() {
		t.Fatalf("Colored(false) = %q, want %q", got, String())
	}
	if got := Colored(true); got == String() {
		t.Fatal("Colored(true) has no escape codes")
	}
}
