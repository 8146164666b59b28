package compress

import (
	"fmt"
	"io"
	"strings"
)

// Type identifies a compression algorithm for stored uploads.
type Type uint8

const (
	None Type = iota
	Zstd
	S2
	LZ4
)

func (t Type) String() string {
	switch t {
	case None:
		return "none"
	case Zstd:
		return "zstd"
	case S2:
		return "s2"
	case LZ4:
		return "lz4"
	default:
		return fmt.Sprintf("Type(%d)", uint8(t))
	}
}

// Parse maps a configuration name ("", "none", "zstd", "s2", "lz4") to a Type.
func Parse(name string) (Type, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "none":
		return None, nil
	case "zstd":
		return Zstd, nil
	case "s2":
		return S2, nil
	case "lz4":
		return LZ4, nil
	default:
		return None, fmt.Errorf("compress: unknown compression %q", name)
	}
}

// Codec wraps streams with one compression algorithm.
//
// Closing a writer returned by NewWriter flushes the compressed stream but
// never closes the underlying writer.
type Codec interface {
	Type() Type
	// Ext is the file extension conventionally used for the format, with the
	// leading dot, or "" for None.
	Ext() string
	NewWriter(w io.Writer) (io.WriteCloser, error)
	NewReader(r io.Reader) (io.ReadCloser, error)
}

var builtinCodecs = map[Type]Codec{
	None: noopCodec{},
	Zstd: zstdCodec{},
	S2:   s2Codec{},
	LZ4:  lz4Codec{},
}

// Get retrieves the built-in Codec for t.
func Get(t Type) (Codec, error) {
	if codec, ok := builtinCodecs[t]; ok {
		return codec, nil
	}

	return nil, fmt.Errorf("compress: unsupported compression type: %s", t)
}

type noopCodec struct{}

func (noopCodec) Type() Type  { return None }
func (noopCodec) Ext() string { return "" }

func (noopCodec) NewWriter(w io.Writer) (io.WriteCloser, error) {
	return nopWriteCloser{w}, nil
}

func (noopCodec) NewReader(r io.Reader) (io.ReadCloser, error) {
	return io.NopCloser(r), nil
}

type nopWriteCloser struct{ io.Writer }

func (nopWriteCloser) Close() error { return nil }
