package echomw

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	goform "github.com/reoring/goform"
	"github.com/reoring/goform/dsl"
)

func TestDecodeForm(t *testing.T) {
	form, err := goform.NewForm(dsl.Map().Field("title", dsl.Text()).Build())
	if err != nil {
		t.Fatal(err)
	}
	e := echo.New()
	e.POST("/", func(c echo.Context) error {
		m, ok := GetDecoded(c)
		if !ok {
			t.Fatal("no decoded form in context")
		}
		return c.String(http.StatusOK, string(m["title"].(goform.Text)))
	}, DecodeForm(form))

	send := func(field string) *httptest.ResponseRecorder {
		var body bytes.Buffer
		w := multipart.NewWriter(&body)
		_ = w.WriteField(field, "hello")
		_ = w.Close()
		req := httptest.NewRequest(http.MethodPost, "/", &body)
		req.Header.Set(echo.HeaderContentType, w.FormDataContentType())
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)
		return rec
	}

	if rec := send("title"); rec.Code != http.StatusOK || rec.Body.String() != "hello" {
		t.Fatalf("got %d %q", rec.Code, rec.Body.String())
	}
	if rec := send("unknown"); rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}
