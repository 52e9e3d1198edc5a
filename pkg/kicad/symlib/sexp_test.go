package symlib

import (
	"testing"

	"github.com/chewxy/sexp"
)

func TestNodeHelpers(t *testing.T) {
	nodes, err := sexp.ParseString(`(pin input line (at -7.62 2.54 0) hide (name "CK"))`)
	if err != nil {
		t.Fatalf("Failed to parse: %v", err)
	}
	pin := nodes[0]

	if name := nodeName(pin); name != "pin" {
		t.Errorf("Expected node name pin, got %q", name)
	}
	if typ, err := atom(pin, 1); err != nil || typ != "input" {
		t.Errorf("Expected atom input, got %q (%v)", typ, err)
	}
	if !hidden(pin) {
		t.Error("Expected bare hide atom to be found")
	}

	at, ok := findNode(pin, "at")
	if !ok {
		t.Fatal("Expected (at) node")
	}
	x, y, err := xy(at, 1)
	if err != nil || x != -7.62 || y != 2.54 {
		t.Errorf("Expected -7.62 2.54, got %v %v (%v)", x, y, err)
	}

	name, ok := findNode(pin, "name")
	if !ok {
		t.Fatal("Expected (name) node")
	}
	if v, _ := atom(name, 1); v != "CK" {
		t.Errorf("Expected unquoted CK, got %q", v)
	}
	if _, err := atom(pin, 3); err == nil {
		t.Error("Expected error for a list element")
	}
}
