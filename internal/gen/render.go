// Package gen renders Go struct declarations matching a form's decoded shape,
// ready for goform.Bind.
package gen

import (
	"bytes"
	"fmt"
	"go/format"
	"strings"
	"unicode"

	js "github.com/reoring/goform/jsonschema"
)

// File describes one generated source file.
type File struct {
	Package string
	Types   []TypeDef
}

// TypeDef is a named struct generated from an object schema.
type TypeDef struct {
	Name   string
	Schema *js.Schema
}

// RenderFile renders and gofmts the file.
func RenderFile(f File) ([]byte, error) {
	if f.Package == "" {
		return nil, fmt.Errorf("gen: missing package name")
	}
	var b bytes.Buffer
	fmt.Fprintf(&b, "// Code generated by goform gen. DO NOT EDIT.\n\npackage %s\n\n", f.Package)
	needsGoform := false
	var body bytes.Buffer
	for _, td := range f.Types {
		if td.Schema == nil || td.Schema.Type != "object" {
			return nil, fmt.Errorf("gen: %s: root schema must be an object", td.Name)
		}
		fmt.Fprintf(&body, "type %s ", td.Name)
		if err := writeType(&body, td.Schema, &needsGoform); err != nil {
			return nil, fmt.Errorf("gen: %s: %w", td.Name, err)
		}
		body.WriteString("\n\n")
	}
	if needsGoform {
		b.WriteString("import goform \"github.com/reoring/goform\"\n\n")
	}
	b.Write(body.Bytes())
	return format.Source(b.Bytes())
}

func writeType(b *bytes.Buffer, s *js.Schema, needsGoform *bool) error {
	switch s.Type {
	case "object":
		b.WriteString("struct {\n")
		for _, name := range s.PropertyOrder {
			fmt.Fprintf(b, "%s ", exportName(name))
			if err := writeType(b, s.Properties[name], needsGoform); err != nil {
				return err
			}
			fmt.Fprintf(b, " `json:%q`\n", name+",omitempty")
		}
		b.WriteString("}")
	case "array":
		if s.Items == nil {
			return fmt.Errorf("array without items")
		}
		b.WriteString("[]")
		return writeType(b, s.Items, needsGoform)
	case "integer":
		b.WriteString("int64")
	case "number":
		b.WriteString("float64")
	case "string":
		switch s.Format {
		case "binary":
			*needsGoform = true
			b.WriteString("goform.File")
		case "byte":
			b.WriteString("[]byte")
		default:
			b.WriteString("string")
		}
	default:
		return fmt.Errorf("unsupported schema type %q", s.Type)
	}
	return nil
}

// exportName turns a form key into an exported Go identifier: cover_image
// and cover-image both become CoverImage. Keys without letters get an F
// prefix.
func exportName(key string) string {
	var b strings.Builder
	upper := true
	for _, r := range key {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			upper = true
			continue
		}
		if upper {
			r = unicode.ToUpper(r)
			upper = false
		}
		b.WriteRune(r)
	}
	out := b.String()
	if out == "" || !unicode.IsLetter([]rune(out)[0]) {
		out = "F" + out
	}
	return out
}
