package engine

import (
	"context"
	"errors"
	"io"
)

// ChunkSize is the read size used when streaming part bodies.
const ChunkSize = 32 * 1024

// ErrStop may be returned by a ChunkFunc to end streaming early without error.
var ErrStop = errors.New("engine: stop")

// ChunkFunc receives each chunk read from a body. The slice is only valid for
// the duration of the call.
type ChunkFunc func(chunk []byte) error

// ReadChunks reads r to EOF in chunks using buf and hands each non-empty chunk
// to fn. It checks ctx between reads so a cancelled request stops promptly.
func ReadChunks(ctx context.Context, r io.Reader, buf []byte, fn ChunkFunc) error {
	if len(buf) == 0 {
		buf = make([]byte, ChunkSize)
	}
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		n, err := r.Read(buf)
		if n > 0 {
			if ferr := fn(buf[:n]); ferr != nil {
				if errors.Is(ferr, ErrStop) {
					return nil
				}
				return ferr
			}
		}
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
	}
}
