package goform

import (
	"net/textproto"
	"strings"
	"unicode/utf8"
)

const headerContentDisposition = "Content-Disposition"

// ParseContentDisposition extracts the name and filename attributes from a raw
// Content-Disposition header value. The disposition type itself is skipped and
// unknown attributes are ignored.
func ParseContentDisposition(header string) (ContentDisposition, error) {
	var cd ContentDisposition
	if header == "" || !utf8.ValidString(header) {
		return cd, newError(CodeContentDisposition, "", nil)
	}
	sections := strings.Split(header, ";")
	for _, section := range sections[1:] {
		key, val, ok := strings.Cut(section, "=")
		if !ok {
			continue
		}
		key = strings.TrimSpace(key)
		val = strings.Trim(strings.TrimSpace(val), `"`)
		switch key {
		case "name":
			cd.Name, cd.HasName = val, true
		case "filename":
			cd.Filename, cd.HasFilename = val, true
		}
	}
	return cd, nil
}

func partDisposition(h textproto.MIMEHeader) (ContentDisposition, error) {
	return ParseContentDisposition(h.Get(headerContentDisposition))
}
