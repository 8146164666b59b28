package goform

import (
	"iter"
)

// Value is a node of the decoded result tree: Map, Array, File, Text, Int,
// Float or Bytes.
//
//	switch v := m["field-name"].(type) {
//	case goform.Int:
//	    fmt.Println(int64(v))
//	case goform.Array:
//	    fmt.Println(len(v))
//	}
type Value interface {
	isValue()
}

type (
	Map   map[string]Value
	Array []Value
	Text  string
	Int   int64
	Float float64
	Bytes []byte
)

// File is an uploaded file that has been written to storage.
type File struct {
	Filename  string `json:"filename"`
	StoredAs  string `json:"stored_as"`
	MediaType string `json:"media_type,omitempty"`
	Size      int64  `json:"size"`
	Digest    uint64 `json:"digest,omitempty"`
}

func (Map) isValue()   {}
func (Array) isValue() {}
func (File) isValue()  {}
func (Text) isValue()  {}
func (Int) isValue()   {}
func (Float) isValue() {}
func (Bytes) isValue() {}

// ValueOf converts decoded content into its leaf Value.
func ValueOf(c Content) Value {
	switch c := c.(type) {
	case FileContent:
		return File{Filename: c.Filename, StoredAs: c.StoredAs, MediaType: c.MediaType, Size: c.Size, Digest: c.Digest}
	case TextContent:
		return Text(c)
	case IntContent:
		return Int(c)
	case FloatContent:
		return Float(c)
	case BytesContent:
		return Bytes(c)
	default:
		return nil
	}
}

// Merge folds rhs into lhs and returns the result. Maps are unioned by key
// with colliding values merged recursively; arrays are concatenated in order.
// Any other pairing leaves lhs unchanged and rhs is dropped.
func Merge(lhs, rhs Value) Value {
	switch l := lhs.(type) {
	case Map:
		r, ok := rhs.(Map)
		if !ok {
			return lhs
		}
		for k, v := range r {
			if cur, exists := l[k]; exists {
				l[k] = Merge(cur, v)
			} else {
				l[k] = v
			}
		}
		return l
	case Array:
		r, ok := rhs.(Array)
		if !ok {
			return lhs
		}
		return append(l, r...)
	default:
		return lhs
	}
}

// wrap nests leaf inside single-entry containers mirroring path, innermost
// segment first.
func wrap(path NamePath, leaf Value) Value {
	v := leaf
	for i := len(path) - 1; i >= 0; i-- {
		if path[i].Kind == NameArray {
			v = Array{v}
		} else {
			v = Map{path[i].Key: v}
		}
	}
	return v
}

// Add merges one accepted field into the map.
func (m Map) Add(h Hash) {
	Merge(m, wrap(h.Path, ValueOf(h.Content)))
}

// Consolidate drains seq into a fresh Map. The first error is returned and the
// partial tree is discarded.
func Consolidate(seq iter.Seq2[Hash, error]) (Map, error) {
	acc := Map{}
	for h, err := range seq {
		if err != nil {
			return nil, err
		}
		acc.Add(h)
	}
	return acc, nil
}
