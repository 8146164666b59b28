// Package storage provides the filesystem capability and filename generators
// used for file parts.
package storage

import (
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/reoring/goform/compress"
)

// DefaultPerm is used for directories when Local.Perm is zero.
const DefaultPerm fs.FileMode = 0o755

// Local stores uploads on the local filesystem. Relative paths are resolved
// against Root; an empty Root means the working directory. When Codec is set
// every file is written through its streaming compressor.
type Local struct {
	Root  string
	Perm  fs.FileMode
	Codec compress.Codec
}

func (l *Local) resolve(p string) string {
	if l.Root == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(l.Root, p)
}

// MkdirAll creates dir and its parents. An existing directory is not an error.
func (l *Local) MkdirAll(dir string) error {
	perm := l.Perm
	if perm == 0 {
		perm = DefaultPerm
	}
	return os.MkdirAll(l.resolve(dir), perm)
}

// Create truncates or creates path for writing.
func (l *Local) Create(path string) (io.WriteCloser, error) {
	f, err := os.Create(l.resolve(path))
	if err != nil {
		return nil, err
	}
	if l.Codec == nil || l.Codec.Type() == compress.None {
		return f, nil
	}
	zw, err := l.Codec.NewWriter(f)
	if err != nil {
		_ = f.Close()
		return nil, err
	}
	return &codecFile{zw: zw, f: f}, nil
}

// Open returns a reader over the stored, decompressed content of path.
func (l *Local) Open(path string) (io.ReadCloser, error) {
	f, err := os.Open(l.resolve(path))
	if err != nil {
		return nil, err
	}
	if l.Codec == nil || l.Codec.Type() == compress.None {
		return f, nil
	}
	zr, err := l.Codec.NewReader(f)
	if err != nil {
		_ = f.Close()
		return nil, err
	}
	return &codecReader{zr: zr, f: f}, nil
}

type codecFile struct {
	zw io.WriteCloser
	f  *os.File
}

func (c *codecFile) Write(p []byte) (int, error) { return c.zw.Write(p) }

func (c *codecFile) Close() error {
	return errors.Join(c.zw.Close(), c.f.Close())
}

type codecReader struct {
	zr io.ReadCloser
	f  *os.File
}

func (c *codecReader) Read(p []byte) (int, error) { return c.zr.Read(p) }

func (c *codecReader) Close() error {
	return errors.Join(c.zr.Close(), c.f.Close())
}
