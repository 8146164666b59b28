package ginmw

import (
	"github.com/gin-gonic/gin"

	goform "github.com/reoring/goform"
	"github.com/reoring/goform/middleware"
)

// DecodeForm decodes the multipart body with form, stores the result in the
// request context and continues, or aborts with the error payload.
func DecodeForm(form *goform.Form) gin.HandlerFunc {
	return func(c *gin.Context) {
		m, err := goform.DecodeRequest(c.Request.Context(), c.Request, form)
		if err != nil {
			c.AbortWithStatusJSON(middleware.StatusCode(err), middleware.ErrorPayload(err))
			return
		}
		c.Request = c.Request.WithContext(middleware.ContextWithDecoded(c.Request.Context(), m))
		c.Next()
	}
}

// GetDecoded fetches the decoded form from gin.Context.
func GetDecoded(c *gin.Context) (goform.Map, bool) {
	return middleware.DecodedFromContext(c.Request.Context())
}
