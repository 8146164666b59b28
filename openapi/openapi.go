// Package openapi derives form schemas from OpenAPI 3 request bodies.
//
// Only the multipart/form-data content of a request body is considered.
// Schema types map onto form fields as follows:
//
//	object                      Map (properties in name order)
//	array                       Array(items)
//	string, format binary       File
//	string, format byte         Bytes
//	string, boolean, other      Text
//	integer                     Int
//	number                      Float
package openapi

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/getkin/kin-openapi/openapi3"

	goform "github.com/reoring/goform"
	"github.com/reoring/goform/dsl"
)

const formData = "multipart/form-data"

// Load parses and validates an OpenAPI document. Local references are
// resolved.
func Load(ctx context.Context, data []byte) (*openapi3.T, error) {
	loader := &openapi3.Loader{Context: ctx}
	doc, err := loader.LoadFromData(data)
	if err != nil {
		return nil, fmt.Errorf("openapi: load document: %w", err)
	}
	if err := doc.Validate(ctx, openapi3.DisableExamplesValidation()); err != nil {
		return nil, fmt.Errorf("openapi: validate: %w", err)
	}
	return doc, nil
}

// FromOperation finds the operation with operationID and converts its
// multipart/form-data request body schema.
func FromOperation(doc *openapi3.T, operationID string, gen goform.FilenameGenerator) (goform.Field, error) {
	if doc == nil || doc.Paths == nil {
		return nil, errors.New("openapi: document has no paths")
	}
	for _, item := range doc.Paths.Map() {
		if item == nil {
			continue
		}
		for _, op := range item.Operations() {
			if op == nil || op.OperationID != operationID {
				continue
			}
			if op.RequestBody == nil || op.RequestBody.Value == nil {
				return nil, fmt.Errorf("openapi: operation %q has no request body", operationID)
			}
			mt := op.RequestBody.Value.Content.Get(formData)
			if mt == nil {
				return nil, fmt.Errorf("openapi: operation %q does not accept %s", operationID, formData)
			}
			return FromSchema(mt.Schema, gen)
		}
	}
	return nil, fmt.Errorf("openapi: operation %q not found", operationID)
}

// FromSchema converts an object schema into a form root. Every binary string
// becomes a File drawing names from gen.
func FromSchema(ref *openapi3.SchemaRef, gen goform.FilenameGenerator) (goform.Field, error) {
	if ref == nil || ref.Value == nil {
		return nil, errors.New("openapi: unresolved schema")
	}
	if !isObject(ref.Value) {
		return nil, errors.New("openapi: form schema must be an object")
	}
	return convert(ref, gen, "")
}

func isObject(s *openapi3.Schema) bool {
	if s.Type != nil && s.Type.Is(openapi3.TypeObject) {
		return true
	}
	return s.Type == nil && len(s.Properties) > 0
}

func convert(ref *openapi3.SchemaRef, gen goform.FilenameGenerator, at string) (goform.Field, error) {
	if ref == nil || ref.Value == nil {
		return nil, fmt.Errorf("openapi: %s: unresolved schema", at)
	}
	s := ref.Value
	switch {
	case isObject(s):
		names := make([]string, 0, len(s.Properties))
		for name := range s.Properties {
			names = append(names, name)
		}
		slices.Sort(names)
		b := dsl.Map()
		for _, name := range names {
			f, err := convert(s.Properties[name], gen, at+"/"+name)
			if err != nil {
				return nil, err
			}
			b.Field(name, f)
		}
		return b.Build(), nil
	case s.Type.Is(openapi3.TypeArray):
		inner, err := convert(s.Items, gen, at+"/items")
		if err != nil {
			return nil, err
		}
		return dsl.Array(inner), nil
	case s.Type.Is(openapi3.TypeInteger):
		return dsl.Int(), nil
	case s.Type.Is(openapi3.TypeNumber):
		return dsl.Float(), nil
	case s.Type.Is(openapi3.TypeString) && s.Format == "binary":
		return dsl.File(gen), nil
	case s.Type.Is(openapi3.TypeString) && s.Format == "byte":
		return dsl.Bytes(), nil
	default:
		return dsl.Text(), nil
	}
}
