package goform

import (
	"context"
	"errors"
	"io"
	"iter"
	"mime"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"strings"
)

// Parts decodes mr part by part and yields every accepted field in arrival
// order. Nested multipart sections are flattened in place. The sequence stops
// after the first error, which is always an *Error; breaking out of the loop
// early stops reading the body.
//
//	for h, err := range goform.Parts(ctx, mr, form) {
//	    if err != nil {
//	        return err
//	    }
//	    fmt.Println(h.Path, h.Content)
//	}
func Parts(ctx context.Context, mr *multipart.Reader, form *Form) iter.Seq2[Hash, error] {
	raw := func(yield func(Hash, error) bool) {
		form.stream(ctx, mr, "", yield)
	}
	return form.aggregate(raw)
}

// Decode reads the whole multipart body and consolidates it into a Map.
// Files already written before a failure are left in storage.
func Decode(ctx context.Context, mr *multipart.Reader, form *Form) (Map, error) {
	m, err := Consolidate(Parts(ctx, mr, form))
	if err != nil {
		if fe, ok := AsError(err); ok {
			form.logger.Error("decode failed", "code", fe.Code, "field", fe.Field)
		}
		return nil, err
	}
	return m, nil
}

// DecodeRequest decodes the multipart body of r.
func DecodeRequest(ctx context.Context, r *http.Request, form *Form) (Map, error) {
	mr, err := r.MultipartReader()
	if err != nil {
		if errors.Is(err, http.ErrNotMultipart) || errors.Is(err, http.ErrMissingBoundary) {
			return nil, newError(CodeContentType, "", err)
		}
		return nil, newError(CodePayload, "", err)
	}
	return Decode(ctx, mr, form)
}

// stream yields the handler result of every leaf part. It reports whether the
// caller should keep going.
func (f *Form) stream(ctx context.Context, mr *multipart.Reader, inherited string, yield func(Hash, error) bool) bool {
	for {
		if err := ctx.Err(); err != nil {
			yield(Hash{}, newError(CodeCanceled, "", err))
			return false
		}
		p, err := mr.NextPart()
		if err == io.EOF {
			return true
		}
		if err != nil {
			yield(Hash{}, f.convert(err, ""))
			return false
		}

		boundary, nested, err := nestedBoundary(p.Header)
		if err != nil {
			_ = p.Close()
			yield(Hash{}, newError(CodeContentType, inherited, err))
			return false
		}
		if nested {
			name := inherited
			if cd, err := partDisposition(p.Header); err == nil && cd.HasName {
				name = cd.Name
			}
			f.logger.Debug("nested multipart", "field", name)
			more := f.stream(ctx, multipart.NewReader(p, boundary), name, yield)
			_ = p.Close()
			if !more {
				return false
			}
			continue
		}

		h, err := f.handlePart(ctx, p, p.Header, inherited)
		_ = p.Close()
		if err != nil {
			yield(Hash{}, err)
			return false
		}
		if !yield(h, nil) {
			return false
		}
	}
}

// nestedBoundary reports the boundary of a multipart/* part. A malformed
// Content-Type is an error; an absent one is not.
func nestedBoundary(h textproto.MIMEHeader) (string, bool, error) {
	ct := h.Get(headerContentType)
	if ct == "" {
		return "", false, nil
	}
	mt, params, err := mime.ParseMediaType(ct)
	if err != nil {
		return "", false, err
	}
	if !strings.HasPrefix(mt, "multipart/") || params["boundary"] == "" {
		return "", false, nil
	}
	return params["boundary"], true, nil
}
