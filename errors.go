package goform

import (
	"errors"
	"fmt"
	"strings"

	"github.com/reoring/goform/i18n"
)

// Error codes (exported consts for IDE completion and type safety by convention)
const (
	// Transport / payload
	CodePayload   = "payload"
	CodeMultipart = "multipart"
	// Structural
	CodeContentDisposition = "content_disposition"
	CodeContentType        = "content_type"
	CodeField              = "field"
	CodeFieldType          = "field_type"
	CodeFilename           = "filename"
	// Resource limits
	CodeFieldSize  = "field_size"
	CodeFileSize   = "file_size"
	CodeFieldCount = "field_count"
	CodeFileCount  = "file_count"
	// Value parsing
	CodeParseField = "parse_field"
	CodeParseInt   = "parse_int"
	CodeParseFloat = "parse_float"
	// Filesystem and generator
	CodeMkDir       = "mkdir"
	CodeFS          = "fs"
	CodeGenFilename = "gen_filename"
	// Caller went away
	CodeCanceled = "canceled"
)

// Error is the single error type returned by Decode. A decode fails on the
// first error; there is never more than one.
type Error struct {
	Code    string // One of the codes listed above.
	Field   string // Raw part name when known (for example: tags[]).
	Message string
	Cause   error // Optional: underlying error.
}

func (e *Error) Error() string {
	b := &strings.Builder{}
	msg := e.Message
	if msg == "" {
		msg = i18n.T(e.Code, nil)
	}
	b.WriteString(msg)
	if e.Field != "" {
		fmt.Fprintf(b, " (field %q)", e.Field)
	}
	if e.Cause != nil {
		fmt.Fprintf(b, ": %v", e.Cause)
	}
	return b.String()
}

func (e *Error) Unwrap() error { return e.Cause }

// Is matches another *Error by code, so errors.Is(err, ErrFieldSize) works for
// any field_size failure regardless of field or cause.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Code == e.Code
}

// Internal reports whether the failure is on the server side (storage or
// filename generation) rather than caused by the submitted payload.
func (e *Error) Internal() bool {
	switch e.Code {
	case CodeFS, CodeMkDir, CodeGenFilename:
		return true
	default:
		return false
	}
}

// Sentinels for errors.Is.
var (
	ErrPayload            = &Error{Code: CodePayload}
	ErrMultipart          = &Error{Code: CodeMultipart}
	ErrContentDisposition = &Error{Code: CodeContentDisposition}
	ErrContentType        = &Error{Code: CodeContentType}
	ErrField              = &Error{Code: CodeField}
	ErrFieldType          = &Error{Code: CodeFieldType}
	ErrFilename           = &Error{Code: CodeFilename}
	ErrFieldSize          = &Error{Code: CodeFieldSize}
	ErrFileSize           = &Error{Code: CodeFileSize}
	ErrFieldCount         = &Error{Code: CodeFieldCount}
	ErrFileCount          = &Error{Code: CodeFileCount}
	ErrParseField         = &Error{Code: CodeParseField}
	ErrParseInt           = &Error{Code: CodeParseInt}
	ErrParseFloat         = &Error{Code: CodeParseFloat}
	ErrMkDir              = &Error{Code: CodeMkDir}
	ErrFS                 = &Error{Code: CodeFS}
	ErrGenFilename        = &Error{Code: CodeGenFilename}
	ErrCanceled           = &Error{Code: CodeCanceled}
)

// AsError extracts an *Error from err using errors.As internally.
func AsError(err error) (*Error, bool) {
	if err == nil {
		return nil, false
	}
	var fe *Error
	if errors.As(err, &fe) {
		return fe, true
	}
	return nil, false
}

func newError(code, field string, cause error) *Error {
	return &Error{Code: code, Field: field, Message: i18n.T(code, nil), Cause: cause}
}
