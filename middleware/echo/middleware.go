package echomw

import (
	"github.com/labstack/echo/v4"

	goform "github.com/reoring/goform"
	"github.com/reoring/goform/middleware"
)

// DecodeForm decodes the multipart body with form and stores the result in
// the request context, or answers with the error payload (400, or 500 for
// storage failures).
func DecodeForm(form *goform.Form) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			m, err := goform.DecodeRequest(c.Request().Context(), c.Request(), form)
			if err != nil {
				return c.JSON(middleware.StatusCode(err), middleware.ErrorPayload(err))
			}
			ctx := middleware.ContextWithDecoded(c.Request().Context(), m)
			c.SetRequest(c.Request().WithContext(ctx))
			return next(c)
		}
	}
}

// GetDecoded fetches the decoded form from echo.Context.
func GetDecoded(c echo.Context) (goform.Map, bool) {
	return middleware.DecodedFromContext(c.Request().Context())
}
