//go:build gozstd

package compress

import (
	"io"

	"github.com/valyala/gozstd"
)

type zstdCodec struct{}

func (zstdCodec) Type() Type  { return Zstd }
func (zstdCodec) Ext() string { return ".zst" }

func (zstdCodec) NewWriter(w io.Writer) (io.WriteCloser, error) {
	return &gozstdWriter{Writer: gozstd.NewWriterLevel(w, gozstd.DefaultCompressionLevel)}, nil
}

func (zstdCodec) NewReader(r io.Reader) (io.ReadCloser, error) {
	return &gozstdReader{Reader: gozstd.NewReader(r)}, nil
}

// gozstdWriter releases the cgo encoder once the stream is closed.
type gozstdWriter struct {
	*gozstd.Writer
}

func (w *gozstdWriter) Close() error {
	err := w.Writer.Close()
	w.Writer.Release()
	return err
}

type gozstdReader struct {
	*gozstd.Reader
}

func (r *gozstdReader) Close() error {
	r.Reader.Release()
	return nil
}
