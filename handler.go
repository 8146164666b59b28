package goform

import (
	"bufio"
	"context"
	"errors"
	stdhash "hash"
	"io"
	"mime"
	"net/textproto"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
	"unicode/utf8"

	"github.com/gabriel-vasile/mimetype"

	"github.com/reoring/goform/internal/engine"
	"github.com/reoring/goform/internal/hash"
	"github.com/reoring/goform/internal/pool"
)

const (
	headerContentType = "Content-Type"
	octetStream       = "application/octet-stream"
	// sniffLen matches the prefix mimetype inspects by default.
	sniffLen = 3072
)

// handlePart runs one part through disposition, name and terminator
// resolution and then streams its body to storage or into memory. inherited
// is the name of the enclosing part when body belongs to a nested multipart
// section.
func (f *Form) handlePart(ctx context.Context, body io.Reader, header textproto.MIMEHeader, inherited string) (Hash, error) {
	cd, err := partDisposition(header)
	if err != nil {
		if inherited == "" || header.Get(headerContentDisposition) != "" {
			return Hash{}, err
		}
		cd = ContentDisposition{}
	}
	name := cd.Name
	if !cd.HasName {
		if inherited == "" {
			return Hash{}, newError(CodeField, "", nil)
		}
		name = inherited
	}
	path, err := ParseName(name)
	if err != nil {
		return Hash{}, err
	}
	term, ok := f.root.Match(path)
	if !ok {
		f.logger.Debug("part rejected", "field", name)
		return Hash{}, newError(CodeFieldType, name, nil)
	}
	f.logger.Debug("part", "field", name, "terminator", term)

	var content Content
	if term.Kind == TermFile {
		content, err = f.uploadFile(ctx, body, header, name, cd, term.Generator)
	} else {
		content, err = f.readScalar(ctx, body, name, term)
	}
	if err != nil {
		return Hash{}, err
	}
	return Hash{Path: path, Content: content}, nil
}

// baseName strips any directory the client sent with the filename.
func baseName(filename string) (string, bool) {
	if i := strings.LastIndexAny(filename, `/\`); i >= 0 {
		filename = filename[i+1:]
	}
	switch filename {
	case "", ".", "..":
		return "", false
	}
	return filename, true
}

func (f *Form) uploadFile(ctx context.Context, body io.Reader, header textproto.MIMEHeader, name string, cd ContentDisposition, gen FilenameGenerator) (Content, error) {
	if !cd.HasFilename {
		return nil, newError(CodeFilename, name, nil)
	}
	filename, ok := baseName(cd.Filename)
	if !ok {
		return nil, newError(CodeFilename, name, nil)
	}
	if gen == nil {
		return nil, newError(CodeGenFilename, name, nil)
	}

	br := bufio.NewReaderSize(body, sniffLen)
	mediaType := header.Get(headerContentType)
	if mt, _, err := mime.ParseMediaType(mediaType); err != nil || mt == octetStream {
		// Peek returns what is available on a short body.
		head, _ := br.Peek(sniffLen)
		mediaType = mimetype.Detect(head).String()
	}

	stored, ok := gen.NextFilename(mediaType)
	if !ok || stored == "" {
		return nil, newError(CodeGenFilename, name, nil)
	}
	if err := f.mkdir(ctx, filepath.Dir(stored), name); err != nil {
		return nil, err
	}
	size, digest, err := f.writeFile(ctx, br, stored, name)
	if err != nil {
		return nil, err
	}
	f.logger.Debug("file stored", "field", name, "path", stored, "bytes", size)
	return FileContent{Filename: filename, StoredAs: stored, MediaType: mediaType, Size: size, Digest: digest}, nil
}

type taskResult[T any] struct {
	v   T
	err error
}

// await runs fn on the executor and waits for its result. When ctx is done
// before the result arrives, await returns ctx.Err() and a successful result
// produced later is handed to abandon, if set.
func await[T any](ctx context.Context, exec Executor, fn func() (T, error), abandon func(T)) (T, error) {
	var (
		zero    T
		claimed atomic.Bool
		done    = make(chan taskResult[T], 1)
	)
	err := exec.Submit(ctx, func() {
		v, err := fn()
		if !claimed.CompareAndSwap(false, true) {
			if err == nil && abandon != nil {
				abandon(v)
			}
			return
		}
		done <- taskResult[T]{v, err}
	})
	if err != nil {
		return zero, err
	}
	select {
	case r := <-done:
		return r.v, r.err
	case <-ctx.Done():
		if claimed.CompareAndSwap(false, true) {
			return zero, ctx.Err()
		}
		r := <-done
		return r.v, r.err
	}
}

func canceled(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}

// taskError maps an executor or storage failure onto code, or onto
// CodeCanceled when the request went away.
func taskError(err error, code, name string) error {
	if canceled(err) {
		return newError(CodeCanceled, name, err)
	}
	return newError(code, name, err)
}

// mkdir creates dir on the executor and waits for the result.
func (f *Form) mkdir(ctx context.Context, dir, name string) error {
	_, err := await(ctx, f.exec, func() (struct{}, error) {
		return struct{}{}, f.storage.MkdirAll(dir)
	}, nil)
	if err != nil {
		return taskError(err, CodeMkDir, name)
	}
	return nil
}

// fileSink is an open upload. Each write and the final close is a separate
// executor task; mu orders them when a request gives up with a write still in
// flight.
type fileSink struct {
	mu     sync.Mutex
	w      io.WriteCloser
	digest stdhash.Hash64
	closed bool
}

func (s *fileSink) write(c *pool.ByteBuffer) (struct{}, error) {
	defer pool.PutChunkBuffer(c)
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return struct{}{}, os.ErrClosed
	}
	if _, err := s.w.Write(c.B); err != nil {
		return struct{}{}, err
	}
	_, _ = s.digest.Write(c.B)
	return struct{}{}, nil
}

func (s *fileSink) close() (uint64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return s.digest.Sum64(), nil
	}
	s.closed = true
	return s.digest.Sum64(), s.w.Close()
}

// release closes an abandoned sink without waiting for it.
func (f *Form) release(ctx context.Context, s *fileSink) {
	if err := f.exec.Submit(ctx, func() { _, _ = s.close() }); err != nil {
		go func() { _, _ = s.close() }()
	}
}

// writeFile streams body to path. Every chunk is copied into a pooled buffer
// and written by its own executor task, so workers are only ever busy with
// disk I/O and never wait on a slow client.
func (f *Form) writeFile(ctx context.Context, body io.Reader, path, name string) (int64, uint64, error) {
	w, err := await(ctx, f.exec, func() (io.WriteCloser, error) {
		return f.storage.Create(path)
	}, func(w io.WriteCloser) { _ = w.Close() })
	if err != nil {
		return 0, 0, taskError(err, CodeFS, name)
	}
	sink := &fileSink{w: w, digest: hash.New()}

	meter := engine.NewMeter(f.MaxFileSize)
	rb := pool.GetChunkBuffer()
	defer pool.PutChunkBuffer(rb)
	err = engine.ReadChunks(ctx, body, rb.B[:cap(rb.B)], func(chunk []byte) error {
		if err := meter.Add(len(chunk), name); err != nil {
			return err
		}
		c := pool.GetChunkBuffer()
		_, _ = c.Write(chunk)
		if _, err := await(ctx, f.exec, func() (struct{}, error) { return sink.write(c) }, nil); err != nil {
			return taskError(err, CodeFS, name)
		}
		return nil
	})
	if err != nil {
		f.release(ctx, sink)
		return 0, 0, f.convert(err, name)
	}

	digest, err := await(ctx, f.exec, sink.close, nil)
	if err != nil {
		f.release(ctx, sink)
		return 0, 0, taskError(err, CodeFS, name)
	}
	return meter.Total(), digest, nil
}

func (f *Form) readScalar(ctx context.Context, body io.Reader, name string, term Terminator) (Content, error) {
	buf := pool.GetFieldBuffer()
	defer pool.PutFieldBuffer(buf)
	rb := pool.GetChunkBuffer()
	defer pool.PutChunkBuffer(rb)

	err := engine.ReadChunks(ctx, body, rb.B[:cap(rb.B)], func(chunk []byte) error {
		if err := engine.CheckField(buf.Len(), len(chunk), f.MaxFieldSize, name); err != nil {
			return err
		}
		_, _ = buf.Write(chunk)
		return nil
	})
	if err != nil {
		return nil, f.convert(err, name)
	}
	f.logger.Debug("field buffered", "field", name, "bytes", buf.Len())
	return f.parseScalar(buf.Bytes(), name, term)
}

func (f *Form) parseScalar(raw []byte, name string, term Terminator) (Content, error) {
	if term.Kind == TermBytes {
		return BytesContent(append([]byte(nil), raw...)), nil
	}
	if !utf8.Valid(raw) {
		return nil, newError(CodeParseField, name, nil)
	}
	s := string(raw)
	switch term.Kind {
	case TermText:
		if f.textFilter != nil {
			s = f.textFilter(s)
		}
		return TextContent(s), nil
	case TermInt:
		n, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
		if err != nil {
			return nil, newError(CodeParseInt, name, err)
		}
		return IntContent(n), nil
	case TermFloat:
		x, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		if err != nil {
			return nil, newError(CodeParseFloat, name, err)
		}
		return FloatContent(x), nil
	default:
		return nil, newError(CodeFieldType, name, nil)
	}
}

// convert maps engine and context failures onto *Error.
func (f *Form) convert(err error, name string) error {
	if fe, ok := AsError(err); ok {
		return fe
	}
	var ie engine.IssueError
	if errors.As(err, &ie) {
		return newError(ie.Code, ie.Path, nil)
	}
	if canceled(err) {
		return newError(CodeCanceled, name, err)
	}
	return newError(CodeMultipart, name, err)
}
