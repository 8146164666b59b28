// Package config loads form declarations from YAML.
//
//	limits:
//	  max_fields: 50
//	  max_file_size: 5000000
//	storage:
//	  dir: uploads
//	  compression: zstd   # none | zstd | s2 | lz4
//	  naming: counter     # counter | hash
//	fields:
//	  title: text
//	  tags: {array: text}
//	  size: {map: {w: int, h: float}}
//	  cover: file
//
// Field order in the document is kept, so the projected JSON Schema lists
// properties the way they were written.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	goform "github.com/reoring/goform"
	"github.com/reoring/goform/compress"
	"github.com/reoring/goform/dsl"
	"github.com/reoring/goform/storage"
)

// Config is one form declaration.
type Config struct {
	Limits  Limits    `yaml:"limits"`
	Storage Storage   `yaml:"storage"`
	Fields  yaml.Node `yaml:"fields"`
}

// Limits left unset keep the goform defaults.
type Limits struct {
	MaxFields    *int   `yaml:"max_fields"`
	MaxFieldSize *int64 `yaml:"max_field_size"`
	MaxFiles     *int   `yaml:"max_files"`
	MaxFileSize  *int64 `yaml:"max_file_size"`
}

// Storage selects where and how uploaded files are written.
type Storage struct {
	Dir         string `yaml:"dir"`
	Compression string `yaml:"compression"`
	Naming      string `yaml:"naming"`
}

// DuplicateKeyError reports a field declared twice in the same map, with both
// positions.
type DuplicateKeyError struct {
	Key       string
	FirstLine int
	FirstCol  int
	Line      int
	Col       int
}

func (e *DuplicateKeyError) Error() string {
	return fmt.Sprintf("duplicate field %q at %d:%d (first at %d:%d)", e.Key, e.Line, e.Col, e.FirstLine, e.FirstCol)
}

// Load decodes a single YAML document from r.
func Load(r io.Reader) (*Config, error) {
	var c Config
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&c); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("config: empty document")
		}
		return nil, fmt.Errorf("config: %w", err)
	}
	if c.Fields.Kind != yaml.MappingNode {
		return nil, errors.New("config: fields must be a mapping")
	}
	return &c, nil
}

// Parse decodes data.
func Parse(data []byte) (*Config, error) { return Load(bytes.NewReader(data)) }

// Root builds the schema tree. Every file field shares gen.
func (c *Config) Root(gen goform.FilenameGenerator) (goform.Field, error) {
	return buildMap(&c.Fields, gen)
}

// Codec returns the compression codec named by the storage section.
func (c *Config) Codec() (compress.Codec, error) {
	t, err := compress.Parse(c.Storage.Compression)
	if err != nil {
		return nil, err
	}
	return compress.Get(t)
}

// Generator returns the filename generator named by the storage section.
func (c *Config) Generator() (goform.FilenameGenerator, error) {
	codec, err := c.Codec()
	if err != nil {
		return nil, err
	}
	switch c.Storage.Naming {
	case "", "counter":
		return storage.Counter(c.Storage.Dir, codec.Ext()), nil
	case "hash":
		return storage.Hashed(c.Storage.Dir), nil
	default:
		return nil, fmt.Errorf("config: unknown naming %q", c.Storage.Naming)
	}
}

// Form builds a ready goform.Form. opts are applied after the configured
// limits and storage, so they take precedence.
func (c *Config) Form(opts ...goform.Option) (*goform.Form, error) {
	gen, err := c.Generator()
	if err != nil {
		return nil, err
	}
	codec, err := c.Codec()
	if err != nil {
		return nil, err
	}
	root, err := c.Root(gen)
	if err != nil {
		return nil, err
	}
	all := []goform.Option{goform.WithStorage(&storage.Local{Codec: codec})}
	if l := c.Limits.MaxFields; l != nil {
		all = append(all, goform.WithMaxFields(*l))
	}
	if l := c.Limits.MaxFieldSize; l != nil {
		all = append(all, goform.WithMaxFieldSize(*l))
	}
	if l := c.Limits.MaxFiles; l != nil {
		all = append(all, goform.WithMaxFiles(*l))
	}
	if l := c.Limits.MaxFileSize; l != nil {
		all = append(all, goform.WithMaxFileSize(*l))
	}
	return goform.NewForm(root, append(all, opts...)...)
}

func buildMap(n *yaml.Node, gen goform.FilenameGenerator) (goform.Field, error) {
	if n.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("config: line %d: expected a mapping of fields", n.Line)
	}
	b := dsl.Map()
	first := make(map[string][2]int, len(n.Content)/2)
	for i := 0; i < len(n.Content); i += 2 {
		k, v := n.Content[i], n.Content[i+1]
		if pos, dup := first[k.Value]; dup {
			return nil, &DuplicateKeyError{Key: k.Value, FirstLine: pos[0], FirstCol: pos[1], Line: k.Line, Col: k.Column}
		}
		first[k.Value] = [2]int{k.Line, k.Column}
		f, err := buildField(v, gen)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", k.Value, err)
		}
		b.Field(k.Value, f)
	}
	return b.Build(), nil
}

func buildField(n *yaml.Node, gen goform.FilenameGenerator) (goform.Field, error) {
	switch n.Kind {
	case yaml.ScalarNode:
		switch n.Value {
		case "text":
			return dsl.Text(), nil
		case "int":
			return dsl.Int(), nil
		case "float":
			return dsl.Float(), nil
		case "bytes":
			return dsl.Bytes(), nil
		case "file":
			return dsl.File(gen), nil
		}
		return nil, fmt.Errorf("config: line %d: unknown field type %q", n.Line, n.Value)
	case yaml.MappingNode:
		if len(n.Content) != 2 {
			return nil, fmt.Errorf("config: line %d: expected exactly one of array or map", n.Line)
		}
		k, v := n.Content[0], n.Content[1]
		switch k.Value {
		case "array":
			inner, err := buildField(v, gen)
			if err != nil {
				return nil, err
			}
			return dsl.Array(inner), nil
		case "map":
			return buildMap(v, gen)
		}
		return nil, fmt.Errorf("config: line %d: unknown field constructor %q", k.Line, k.Value)
	default:
		return nil, fmt.Errorf("config: line %d: unsupported field declaration", n.Line)
	}
}
