package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	resp "user-console/internal/transport/http/response"
)

// MaxBodyBytes caps the request body size before the JSON decoder sees it.
func MaxBodyBytes(n int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, n)
		c.Next()
		if c.Err() != nil && !c.Writer.Written() {
			c.AbortWithStatusJSON(http.StatusRequestEntityTooLarge, resp.Error("request body too large"))
		}
	}
}
