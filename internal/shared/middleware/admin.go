package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"book-manage/internal/infrastructure/i18n"
	"book-manage/internal/shared/view"
)

// RequireAuthority renders the forbidden page unless the principal holds
// authority. Must run after RequireAuth.
func RequireAuthority(authority string) gin.HandlerFunc {
	return func(c *gin.Context) {
		principal := CurrentPrincipal(c)
		if principal.HasAuthority(authority) {
			c.Next()
			return
		}

		username := ""
		if principal != nil {
			username = principal.Username
		}
		log.Warn().
			Str("request_id", c.GetString(ctxRequestID)).
			Str("username", username).
			Str("required", authority).
			Msg("Access denied")
		renderMessage(c, http.StatusForbidden, view.Forbidden, i18n.KeyForbidden)
	}
}
