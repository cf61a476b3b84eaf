package middleware

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"book-manage/internal/shared"
	"book-manage/pkg/jwt"
)

// Redirect targets
const (
	LoginPath          = "/login"
	InvalidSessionPath = "/invalidsession"
)

// SessionChecker reports revoked sessions.
type SessionChecker interface {
	IsRevoked(ctx context.Context, sessionID string) (bool, error)
}

// Session reads the session cookie and, when it is valid, puts the
// principal on the context. It never rejects a request.
func Session(tokens *jwt.Manager, sessions SessionChecker, cookieName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		// 1. Lấy token từ cookie
		raw, err := c.Cookie(cookieName)
		if err != nil || raw == "" {
			c.Next()
			return
		}

		// 2. Verify và parse JWT
		claims, err := tokens.ValidateSessionToken(raw)
		if err != nil {
			log.Debug().Err(err).Str("request_id", c.GetString(ctxRequestID)).Msg("invalid session token")
			c.Set(ctxSessionInvalid, true)
			c.Next()
			return
		}

		// 3. Check revocation
		revoked, err := sessions.IsRevoked(c.Request.Context(), claims.SessionID())
		if err != nil {
			// Redis failure non-critical
			log.Warn().Err(err).Str("session_id", claims.SessionID()).Msg("session revocation check failed")
		} else if revoked {
			c.Set(ctxSessionInvalid, true)
			c.Next()
			return
		}

		// 4. Set principal vào context
		SetPrincipal(c, &shared.Principal{
			Username:  claims.Username,
			Authority: claims.Authority,
			SessionID: claims.SessionID(),
		})
		c.Set(ctxClaims, claims)
		c.Next()
	}
}

// RequireAuth redirects anonymous requests to the login page, and requests
// with a stale cookie to the invalid-session page.
func RequireAuth(cookieName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if CurrentPrincipal(c) != nil {
			c.Next()
			return
		}

		target := LoginPath
		if c.GetBool(ctxSessionInvalid) {
			target = InvalidSessionPath
			c.SetCookie(cookieName, "", -1, "/", "", false, true)
		}
		c.Redirect(http.StatusSeeOther, target)
		c.Abort()
	}
}
