package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"golang.org/x/text/language"

	"book-manage/internal/infrastructure/i18n"
	"book-manage/internal/shared"
	"book-manage/internal/shared/view"
	"book-manage/pkg/jwt"
)

// gin context keys
const (
	ctxRequestID      = "request_id"
	ctxPrinter        = "i18n_printer"
	ctxPrincipal      = "principal"
	ctxClaims         = "session_claims"
	ctxSessionInvalid = "session_invalid"
)

var fallbackPrinter = i18n.New("en").Printer(language.English)

// Printer returns the request's message printer.
func Printer(c *gin.Context) *i18n.Printer {
	if p, ok := c.Get(ctxPrinter); ok {
		if printer, ok := p.(*i18n.Printer); ok {
			return printer
		}
	}
	return fallbackPrinter
}

// CurrentPrincipal returns the signed-in user, or nil.
func CurrentPrincipal(c *gin.Context) *shared.Principal {
	if p, ok := c.Get(ctxPrincipal); ok {
		if principal, ok := p.(*shared.Principal); ok {
			return principal
		}
	}
	return nil
}

// SetPrincipal puts the signed-in user on the context.
func SetPrincipal(c *gin.Context, p *shared.Principal) {
	c.Set(ctxPrincipal, p)
}

// SessionClaims returns the parsed session token of the request, or nil.
func SessionClaims(c *gin.Context) *jwt.Claims {
	if v, ok := c.Get(ctxClaims); ok {
		if claims, ok := v.(*jwt.Claims); ok {
			return claims
		}
	}
	return nil
}

// NewPage builds the shared page model for c.
func NewPage(c *gin.Context) view.Page {
	p := Printer(c)
	return view.NewPage(p, p.Tag().String(), CurrentPrincipal(c))
}

// renderMessage writes a template with a single message key and aborts.
func renderMessage(c *gin.Context, status int, name, key string) {
	c.HTML(status, name, view.MessagePage{Page: NewPage(c), MessageKey: key})
	c.Abort()
}

// RenderError renders the generic error page with 500.
func RenderError(c *gin.Context) {
	renderMessage(c, http.StatusInternalServerError, view.Error, i18n.KeySystemError)
}
