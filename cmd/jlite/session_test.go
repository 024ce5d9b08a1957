package main

import (
	"bytes"
	"testing"
)

func TestReadUIMode(t *testing.T) {
	for in, want := range map[string]uiMode{"": uiModeAuto, " ON ": uiModeOn, "off": uiModeOff, "auto": uiModeAuto} {
		got, err := readUIMode(in)
		if err != nil || got != want {
			t.Errorf("readUIMode(%q) = %q, %v", in, got, err)
		}
	}
	if _, err := readUIMode("sometimes"); err == nil {
		t.Fatal("expected an error")
	}
}

func TestShouldUseTUI(t *testing.T) {
	var buf bytes.Buffer
	if shouldUseTUI(uiModeAuto, &buf, 5) {
		t.Error("a buffer is not a terminal")
	}
	if !shouldUseTUI(uiModeOn, &buf, 1) || shouldUseTUI(uiModeOff, &buf, 5) {
		t.Error("explicit modes must win")
	}
}
