package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// BodyLimit caps the readable request body at maxBytes. Handlers binding a
// larger payload get an i/o error from MaxBytesReader and respond 400; the
// cap protects the JSON decoder from unbounded scripts pasted into the
// generation endpoints.
func BodyLimit(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Body != nil {
			c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		}
		c.Next()
	}
}
