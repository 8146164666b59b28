package goform

import (
	"strings"
)

// NameKind distinguishes the two kinds of addressing segment.
type NameKind int

const (
	NameMap   NameKind = iota // name or [key]
	NameArray                 // []
)

// NamePart is one addressing segment of a bracket-notation field name.
type NamePart struct {
	Kind NameKind
	Key  string // Set for NameMap only.
}

// MapPart returns a NameMap segment for key.
func MapPart(key string) NamePart { return NamePart{Kind: NameMap, Key: key} }

// ArrayPart returns an unindexed NameArray segment.
func ArrayPart() NamePart { return NamePart{Kind: NameArray} }

// IsMap reports whether the segment addresses a map key.
func (p NamePart) IsMap() bool { return p.Kind == NameMap }

// NamePath is the decoded form of a field name. The first element is always a
// map segment.
type NamePath []NamePart

// String renders the path back into bracket notation.
func (p NamePath) String() string {
	b := &strings.Builder{}
	for i, part := range p {
		switch {
		case part.Kind == NameArray:
			b.WriteString("[]")
		case i == 0:
			b.WriteString(part.Key)
		default:
			b.WriteByte('[')
			b.WriteString(part.Key)
			b.WriteByte(']')
		}
	}
	return b.String()
}

// FieldKind classifies a schema node.
type FieldKind int

const (
	FieldMap FieldKind = iota
	FieldArray
	FieldScalar
	FieldFile
)

// TermKind is the leaf classification a name path resolves to.
type TermKind int

const (
	TermFile TermKind = iota
	TermBytes
	TermInt
	TermFloat
	TermText
)

func (k TermKind) String() string {
	switch k {
	case TermFile:
		return "File"
	case TermBytes:
		return "Bytes"
	case TermInt:
		return "Int"
	case TermFloat:
		return "Float"
	case TermText:
		return "Text"
	default:
		return "Unknown"
	}
}

// Terminator is the result of matching a NamePath against the schema. Generator
// is only set for TermFile and is shared with the schema node it came from.
type Terminator struct {
	Kind      TermKind
	Generator FilenameGenerator
}

func (t Terminator) String() string {
	if t.Kind == TermFile {
		return "File(filename_generator)"
	}
	return t.Kind.String()
}

// Content is the decoded payload of a single part before tree assembly.
type Content interface {
	isContent()
}

// FileContent describes a part that was streamed to storage.
type FileContent struct {
	Filename  string // Base name supplied by the client.
	StoredAs  string // Path returned by the generator.
	MediaType string
	Size      int64
	Digest    uint64 // xxhash64 of the stored bytes.
}

type (
	BytesContent []byte
	TextContent  string
	IntContent   int64
	FloatContent float64
)

func (FileContent) isContent()  {}
func (BytesContent) isContent() {}
func (TextContent) isContent()  {}
func (IntContent) isContent()   {}
func (FloatContent) isContent() {}

// Hash pairs a decoded name path with its content: one accepted field.
type Hash struct {
	Path    NamePath
	Content Content
}

// ContentDisposition carries the attributes of a part's Content-Disposition
// header that the decoder cares about.
type ContentDisposition struct {
	Name        string
	Filename    string
	HasName     bool
	HasFilename bool
}
