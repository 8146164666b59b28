package goform_test

import (
	"bytes"
	"fmt"
	"mime/multipart"
	"net/textproto"
	"strings"
	"testing"
)

// part describes one section of a test body. noName drops the name
// attribute; nested parts are written as a multipart/mixed body.
type part struct {
	name     string
	filename string
	ctype    string
	body     string
	noName   bool
	nested   []part
	rawCD    string
}

func writeParts(t *testing.T, w *multipart.Writer, parts []part) {
	t.Helper()
	for _, p := range parts {
		h := textproto.MIMEHeader{}
		switch {
		case p.rawCD != "":
			h.Set("Content-Disposition", p.rawCD)
		case p.noName && p.filename != "":
			h.Set("Content-Disposition", fmt.Sprintf(`file; filename=%q`, p.filename))
		case p.noName:
		case p.filename != "":
			h.Set("Content-Disposition", fmt.Sprintf(`form-data; name=%q; filename=%q`, p.name, p.filename))
		default:
			h.Set("Content-Disposition", fmt.Sprintf(`form-data; name=%q`, p.name))
		}
		if p.nested != nil {
			var inner bytes.Buffer
			iw := multipart.NewWriter(&inner)
			writeParts(t, iw, p.nested)
			if err := iw.Close(); err != nil {
				t.Fatal(err)
			}
			h.Set("Content-Type", "multipart/mixed; boundary="+iw.Boundary())
			pw, err := w.CreatePart(h)
			if err != nil {
				t.Fatal(err)
			}
			if _, err := pw.Write(inner.Bytes()); err != nil {
				t.Fatal(err)
			}
			continue
		}
		if p.ctype != "" {
			h.Set("Content-Type", p.ctype)
		}
		pw, err := w.CreatePart(h)
		if err != nil {
			t.Fatal(err)
		}
		if _, err := pw.Write([]byte(p.body)); err != nil {
			t.Fatal(err)
		}
	}
}

// encode returns a raw multipart body and its boundary.
func encode(t *testing.T, parts ...part) ([]byte, string) {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	writeParts(t, w, parts)
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes(), w.Boundary()
}

func reader(t *testing.T, parts ...part) *multipart.Reader {
	t.Helper()
	body, boundary := encode(t, parts...)
	return multipart.NewReader(bytes.NewReader(body), boundary)
}

func readerFromRaw(raw, boundary string) *multipart.Reader {
	return multipart.NewReader(strings.NewReader(raw), boundary)
}
