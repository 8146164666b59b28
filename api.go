package goform

import (
	"context"
	"io"

	js "github.com/reoring/goform/jsonschema"
)

// Field is a node of the declared form schema. Implementations live in the dsl
// package; they are immutable once built and safe to share between goroutines.
type Field interface {
	// Match resolves path against this node. It is pure and deterministic.
	Match(path NamePath) (Terminator, bool)
	// Kind reports the node classification.
	Kind() FieldKind
	// JSONSchema projects the node into a JSON Schema representation.
	JSONSchema() (*js.Schema, error)
}

// FilenameGenerator produces destination paths for uploaded files.
//
// mediaType is the part's declared Content-Type, or a sniffed one when the
// client did not send any. Returning ok=false aborts the decode with
// gen_filename. Implementations must be safe for concurrent use and should
// return distinct paths; the decoder does not check for overwrites.
type FilenameGenerator interface {
	NextFilename(mediaType string) (path string, ok bool)
}

// GeneratorFunc adapts a function to FilenameGenerator.
type GeneratorFunc func(mediaType string) (string, bool)

func (f GeneratorFunc) NextFilename(mediaType string) (string, bool) { return f(mediaType) }

// Executor runs short blocking work (directory creation, one chunk write)
// away from the goroutine that reads the request body. Submit must give up
// with ctx.Err() when ctx is done before the task is admitted.
type Executor interface {
	Submit(ctx context.Context, task func()) error
}

// Storage is the filesystem capability used for file parts.
type Storage interface {
	// MkdirAll creates dir and any missing parents; existing directories are
	// not an error.
	MkdirAll(dir string) error
	// Create opens path for writing, truncating any existing file.
	Create(path string) (io.WriteCloser, error)
}
