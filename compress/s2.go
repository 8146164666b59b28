package compress

import (
	"io"

	"github.com/klauspost/compress/s2"
)

type s2Codec struct{}

func (s2Codec) Type() Type  { return S2 }
func (s2Codec) Ext() string { return ".s2" }

func (s2Codec) NewWriter(w io.Writer) (io.WriteCloser, error) {
	return s2.NewWriter(w, s2.WriterConcurrency(1)), nil
}

func (s2Codec) NewReader(r io.Reader) (io.ReadCloser, error) {
	return io.NopCloser(s2.NewReader(r)), nil
}
