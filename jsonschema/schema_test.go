package jsonschema

import "testing"

func TestObject_SetKeepsFirstDeclaration(t *testing.T) {
	s := Object().
		Set("b", &Schema{Type: "string"}).
		Set("a", &Schema{Type: "integer"}).
		Set("b", &Schema{Type: "number"})

	if len(s.PropertyOrder) != 2 || s.PropertyOrder[0] != "b" || s.PropertyOrder[1] != "a" {
		t.Fatalf("unexpected order: %v", s.PropertyOrder)
	}
	if s.Properties["b"].Type != "string" {
		t.Fatalf("expected first declaration to win, got %q", s.Properties["b"].Type)
	}
	if s.AdditionalProperties != false {
		t.Fatalf("expected additionalProperties=false")
	}
}
