package ginmw

import (
	"github.com/gin-gonic/gin"

	"github.com/reoring/conform"
	"github.com/reoring/conform/middleware"
)

// ValidateJSON processes the request body with cfg, stores the result in the
// request context, and aborts with the error payload when processing fails.
func ValidateJSON(cfg middleware.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		d, err := middleware.Process(c.Request.Body, cfg)
		if err != nil {
			c.AbortWithStatusJSON(middleware.Status(err), middleware.ErrorPayload(err))
			return
		}
		c.Request = c.Request.WithContext(middleware.ContextWithDecoded(c.Request.Context(), d))
		c.Next()
	}
}

// GetDecoded fetches the processed body from gin.Context.
func GetDecoded(c *gin.Context) (conform.Decoded, bool) {
	return middleware.DecodedFromContext(c.Request.Context())
}
