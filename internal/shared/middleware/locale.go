package middleware

import (
	"github.com/gin-gonic/gin"

	"book-manage/internal/infrastructure/i18n"
)

// Locale picks the message language from ?lang= or Accept-Language.
func Locale(catalog *i18n.Catalog) gin.HandlerFunc {
	return func(c *gin.Context) {
		tag := catalog.Resolve(c.Query("lang"), c.GetHeader("Accept-Language"))
		c.Set(ctxPrinter, catalog.Printer(tag))
		c.Next()
	}
}
