package jsonschema

// Schema is a minimal JSON Schema representation used to describe the shape a
// form decodes into. Keep this struct small and extend incrementally.
type Schema struct {
	// Core
	Type   string `json:"type,omitempty"`
	Format string `json:"format,omitempty"`

	// Object
	Properties           map[string]*Schema `json:"properties,omitempty"`
	AdditionalProperties any                `json:"additionalProperties,omitempty"`
	// PropertyOrder keeps the declaration order of Properties, which JSON
	// objects cannot carry.
	PropertyOrder []string `json:"x-property-order,omitempty"`

	// Array
	Items *Schema `json:"items,omitempty"`
}

// Object returns an empty object schema that rejects unknown properties.
func Object() *Schema {
	return &Schema{Type: "object", Properties: map[string]*Schema{}, AdditionalProperties: false}
}

// Set adds a property, keeping first-declared order. A repeated name is ignored
// so the first declaration wins.
func (s *Schema) Set(name string, prop *Schema) *Schema {
	if s.Properties == nil {
		s.Properties = map[string]*Schema{}
	}
	if _, ok := s.Properties[name]; ok {
		return s
	}
	s.Properties[name] = prop
	s.PropertyOrder = append(s.PropertyOrder, name)
	return s
}
