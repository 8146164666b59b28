package goform

import (
	"fmt"

	"github.com/reoring/goform/internal/options"
	"github.com/reoring/goform/internal/pool"
	js "github.com/reoring/goform/jsonschema"
	"github.com/reoring/goform/log"
	"github.com/reoring/goform/storage"
)

// Default limits applied by NewForm.
const (
	DefaultMaxFields    = 100
	DefaultMaxFieldSize = 10_000
	DefaultMaxFiles     = 20
	DefaultMaxFileSize  = 10_000_000
)

// Form is the decoding configuration: the schema root and the per-request
// limits. A Form is immutable after NewForm and may serve any number of
// concurrent decodes.
type Form struct {
	MaxFields    int
	MaxFieldSize int64
	MaxFiles     int
	MaxFileSize  int64

	root       Field
	exec       Executor
	storage    Storage
	logger     log.Logger
	textFilter func(string) string
}

// Option configures a Form.
type Option = options.Option[*Form]

// WithMaxFields bounds the number of non-file fields. The count must stay
// strictly below n.
func WithMaxFields(n int) Option {
	return options.New(func(f *Form) error {
		if n < 0 {
			return fmt.Errorf("goform: negative MaxFields %d", n)
		}
		f.MaxFields = n
		return nil
	})
}

// WithMaxFieldSize bounds the buffered size of one non-file field.
func WithMaxFieldSize(n int64) Option {
	return options.New(func(f *Form) error {
		if n < 0 {
			return fmt.Errorf("goform: negative MaxFieldSize %d", n)
		}
		f.MaxFieldSize = n
		return nil
	})
}

// WithMaxFiles bounds the number of files. The count must stay strictly
// below n.
func WithMaxFiles(n int) Option {
	return options.New(func(f *Form) error {
		if n < 0 {
			return fmt.Errorf("goform: negative MaxFiles %d", n)
		}
		f.MaxFiles = n
		return nil
	})
}

// WithMaxFileSize bounds the byte size of one file.
func WithMaxFileSize(n int64) Option {
	return options.New(func(f *Form) error {
		if n < 0 {
			return fmt.Errorf("goform: negative MaxFileSize %d", n)
		}
		f.MaxFileSize = n
		return nil
	})
}

// WithExecutor sets the pool running directory creation and file writes.
// Defaults to a shared process-wide pool.
func WithExecutor(e Executor) Option {
	return options.NoError(func(f *Form) {
		if e != nil {
			f.exec = e
		}
	})
}

// WithStorage sets where files are written. Defaults to the local
// filesystem relative to the working directory.
func WithStorage(s Storage) Option {
	return options.NoError(func(f *Form) {
		if s != nil {
			f.storage = s
		}
	})
}

// WithLogger sets the logger for per-part decisions and failures.
func WithLogger(l log.Logger) Option {
	return options.NoError(func(f *Form) {
		if l != nil {
			f.logger = l
		}
	})
}

// WithTextFilter rewrites every Text value before it is accepted, for
// example to strip markup.
func WithTextFilter(fn func(string) string) Option {
	return options.NoError(func(f *Form) { f.textFilter = fn })
}

// NewForm returns a Form for root, which must be a map node.
func NewForm(root Field, opts ...Option) (*Form, error) {
	if root == nil {
		return nil, fmt.Errorf("goform: nil root field")
	}
	if root.Kind() != FieldMap {
		return nil, fmt.Errorf("goform: root field must be a map")
	}
	f := &Form{
		MaxFields:    DefaultMaxFields,
		MaxFieldSize: DefaultMaxFieldSize,
		MaxFiles:     DefaultMaxFiles,
		MaxFileSize:  DefaultMaxFileSize,
		root:         root,
		logger:       log.Discard,
	}
	if err := options.Apply(f, opts...); err != nil {
		return nil, err
	}
	if f.exec == nil {
		f.exec = pool.Shared()
	}
	if f.storage == nil {
		f.storage = &storage.Local{}
	}
	return f, nil
}

// Root returns the schema root.
func (f *Form) Root() Field { return f.root }

// Match resolves path against the schema root.
func (f *Form) Match(path NamePath) (Terminator, bool) { return f.root.Match(path) }

// JSONSchema projects the form schema.
func (f *Form) JSONSchema() (*js.Schema, error) { return f.root.JSONSchema() }

func (f *Form) String() string {
	return fmt.Sprintf("Form(fields<%d, field_size<%d, files<%d, file_size<=%d, %v)",
		f.MaxFields, f.MaxFieldSize, f.MaxFiles, f.MaxFileSize, f.root)
}

var _ Storage = (*storage.Local)(nil)
