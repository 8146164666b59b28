package dsl

import (
	"fmt"

	goform "github.com/reoring/goform"
	js "github.com/reoring/goform/jsonschema"
)

type arrayField struct {
	inner goform.Field
}

// Array matches name[] followed by whatever inner matches.
func Array(inner goform.Field) goform.Field { return arrayField{inner: inner} }

func (a arrayField) Match(path goform.NamePath) (goform.Terminator, bool) {
	if len(path) == 0 || path[0].Kind != goform.NameArray || a.inner == nil {
		return goform.Terminator{}, false
	}
	return a.inner.Match(path[1:])
}

func (arrayField) Kind() goform.FieldKind { return goform.FieldArray }

func (a arrayField) JSONSchema() (*js.Schema, error) {
	if a.inner == nil {
		return nil, fmt.Errorf("dsl: array without element field")
	}
	items, err := a.inner.JSONSchema()
	if err != nil {
		return nil, err
	}
	return &js.Schema{Type: "array", Items: items}, nil
}

func (a arrayField) String() string { return fmt.Sprintf("Array(%v)", a.inner) }
