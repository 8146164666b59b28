package dsl

import (
	goform "github.com/reoring/goform"
	js "github.com/reoring/goform/jsonschema"
)

// leaf is a scalar or file node. It only matches an exhausted path.
type leaf struct {
	term goform.Terminator
}

func (l leaf) Match(path goform.NamePath) (goform.Terminator, bool) {
	if len(path) != 0 {
		return goform.Terminator{}, false
	}
	return l.term, true
}

func (l leaf) Kind() goform.FieldKind {
	if l.term.Kind == goform.TermFile {
		return goform.FieldFile
	}
	return goform.FieldScalar
}

func (l leaf) JSONSchema() (*js.Schema, error) {
	switch l.term.Kind {
	case goform.TermText:
		return &js.Schema{Type: "string"}, nil
	case goform.TermInt:
		return &js.Schema{Type: "integer"}, nil
	case goform.TermFloat:
		return &js.Schema{Type: "number"}, nil
	case goform.TermBytes:
		return &js.Schema{Type: "string", Format: "byte"}, nil
	default:
		return &js.Schema{Type: "string", Format: "binary"}, nil
	}
}

func (l leaf) String() string { return l.term.String() }

// Text accepts any UTF-8 body.
func Text() goform.Field { return leaf{term: goform.Terminator{Kind: goform.TermText}} }

// Int accepts a base-10 signed 64-bit integer, surrounding whitespace allowed.
func Int() goform.Field { return leaf{term: goform.Terminator{Kind: goform.TermInt}} }

// Float accepts a 64-bit floating point number, surrounding whitespace allowed.
func Float() goform.Field { return leaf{term: goform.Terminator{Kind: goform.TermFloat}} }

// Bytes keeps the raw body.
func Bytes() goform.Field { return leaf{term: goform.Terminator{Kind: goform.TermBytes}} }

// File streams the body to the path returned by gen. The generator is shared,
// not copied, so every File built from it draws from the same sequence.
func File(gen goform.FilenameGenerator) goform.Field {
	return leaf{term: goform.Terminator{Kind: goform.TermFile, Generator: gen}}
}
