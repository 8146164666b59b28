package dsl

import (
	"fmt"
	"strings"

	goform "github.com/reoring/goform"
	js "github.com/reoring/goform/jsonschema"
)

type entry struct {
	key   string
	field goform.Field
}

// mapField keeps entries in declaration order; lookups return the first
// entry with a matching key.
type mapField struct {
	entries []entry
}

func (m *mapField) Match(path goform.NamePath) (goform.Terminator, bool) {
	if len(path) == 0 || !path[0].IsMap() {
		return goform.Terminator{}, false
	}
	for _, e := range m.entries {
		if e.key == path[0].Key {
			return e.field.Match(path[1:])
		}
	}
	return goform.Terminator{}, false
}

func (*mapField) Kind() goform.FieldKind { return goform.FieldMap }

func (m *mapField) JSONSchema() (*js.Schema, error) {
	s := js.Object()
	for _, e := range m.entries {
		prop, err := e.field.JSONSchema()
		if err != nil {
			return nil, err
		}
		s.Set(e.key, prop)
	}
	return s, nil
}

func (m *mapField) String() string {
	b := &strings.Builder{}
	b.WriteString("Map(")
	for i, e := range m.entries {
		if i > 0 {
			b.WriteString(", ")
		}
		fmt.Fprintf(b, "%s: %v", e.key, e.field)
	}
	b.WriteByte(')')
	return b.String()
}

type mapBuilder struct {
	entries []entry
}

// Map starts a map node.
func Map() *mapBuilder { return &mapBuilder{} }

// Field appends key to the map. Declaring a key twice keeps both entries but
// only the first is ever matched. A nil field is ignored.
func (b *mapBuilder) Field(key string, f goform.Field) *mapBuilder {
	if f != nil {
		b.entries = append(b.entries, entry{key: key, field: f})
	}
	return b
}

// Build freezes the builder into a map node. The builder may be reused; later
// Field calls do not affect nodes already built.
func (b *mapBuilder) Build() goform.Field {
	entries := make([]entry, len(b.entries))
	copy(entries, b.entries)
	return &mapField{entries: entries}
}
