// Package middleware adapts goform decoding to HTTP servers.
package middleware

import (
	"context"
	"net/http"

	json "github.com/goccy/go-json"

	goform "github.com/reoring/goform"
)

type ctxKeyDecoded struct{}

// ContextWithDecoded attaches a decoded form to the context.
func ContextWithDecoded(ctx context.Context, m goform.Map) context.Context {
	return context.WithValue(ctx, ctxKeyDecoded{}, m)
}

// DecodedFromContext retrieves a decoded form from context.
func DecodedFromContext(ctx context.Context) (goform.Map, bool) {
	v, ok := ctx.Value(ctxKeyDecoded{}).(goform.Map)
	return v, ok
}

// StatusCode maps a decode error onto an HTTP status: storage and filename
// generation failures are 500, everything the client sent wrong is 400.
func StatusCode(err error) int {
	if fe, ok := goform.AsError(err); ok && fe.Internal() {
		return http.StatusInternalServerError
	}
	return http.StatusBadRequest
}

// ErrorPayload shapes a decode error for JSON responses. Internal failures do
// not expose their cause.
func ErrorPayload(err error) map[string]any {
	fe, ok := goform.AsError(err)
	if !ok {
		return map[string]any{"error": map[string]any{"message": err.Error()}}
	}
	body := map[string]any{"code": fe.Code, "message": fe.Message}
	if fe.Field != "" {
		body["field"] = fe.Field
	}
	if fe.Cause != nil && !fe.Internal() {
		body["cause"] = fe.Cause.Error()
	}
	return map[string]any{"error": body}
}

// WriteError writes ErrorPayload with the matching status.
func WriteError(w http.ResponseWriter, err error) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(StatusCode(err))
	_ = json.NewEncoder(w).Encode(ErrorPayload(err))
}

// Decode is net/http middleware: it decodes the multipart body with form,
// stores the result in the request context and calls next, or answers with
// the error payload.
func Decode(form *goform.Form) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			m, err := goform.DecodeRequest(r.Context(), r, form)
			if err != nil {
				WriteError(w, err)
				return
			}
			next.ServeHTTP(w, r.WithContext(ContextWithDecoded(r.Context(), m)))
		})
	}
}
