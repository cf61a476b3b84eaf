package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// ErrorPage is the top-level boundary for unexpected failures. Handlers
// record them with c.Error and return without writing a response.
func ErrorPage() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 {
			return
		}

		for _, e := range c.Errors {
			log.Error().
				Str("request_id", c.GetString(ctxRequestID)).
				Str("method", c.Request.Method).
				Str("path", c.Request.URL.Path).
				Err(e.Err).
				Msg("Unexpected failure")
		}

		if c.Writer.Written() {
			return
		}
		RenderError(c)
	}
}
