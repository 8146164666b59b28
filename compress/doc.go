// Package compress provides streaming compression codecs for uploaded files.
//
// Uploads are written as they arrive, so every codec wraps an io.Writer
// instead of compressing whole buffers:
//
//	codec, _ := compress.Get(compress.Zstd)
//	zw, _ := codec.NewWriter(f)
//	_, _ = io.Copy(zw, part)
//	_ = zw.Close() // flushes; f stays open
//
// Supported algorithms:
//   - None: files are stored verbatim
//   - Zstd: klauspost/compress/zstd, or valyala/gozstd when built with -tags gozstd
//   - S2: klauspost/compress/s2
//   - LZ4: pierrec/lz4/v4
package compress
