package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"book-manage/internal/domains/user/model"
	"book-manage/internal/domains/user/service"
	"book-manage/internal/shared/middleware"
	"book-manage/internal/shared/view"
)

// Login page message keys
const (
	keyLoginFailure   = "login.failure"
	keyLoginLocked    = "login.locked"
	keyLogout         = "login.logout"
	keyInvalidSession = "login.invalidsession"
)

// CookieConfig describes the session cookie.
type CookieConfig struct {
	Name   string
	Secure bool
}

// AuthHandler xử lý sign-in / sign-out pages
type AuthHandler struct {
	service service.AuthService
	cookie  CookieConfig
}

func NewAuthHandler(service service.AuthService, cookie CookieConfig) *AuthHandler {
	return &AuthHandler{service: service, cookie: cookie}
}

func (h *AuthHandler) renderLogin(c *gin.Context, key string) {
	c.HTML(http.StatusOK, view.Login, view.LoginPage{
		Page:         middleware.NewPage(c),
		MessageKey:   key,
		LastUsername: c.Query("username"),
	})
}

// LoginPage - GET /login
func (h *AuthHandler) LoginPage(c *gin.Context) {
	if middleware.CurrentPrincipal(c) != nil {
		c.Redirect(http.StatusSeeOther, "/books")
		return
	}
	h.renderLogin(c, "")
}

// LoginFailure - GET /loginfailure
func (h *AuthHandler) LoginFailure(c *gin.Context) {
	key := keyLoginFailure
	if c.Query("reason") == "locked" {
		key = keyLoginLocked
	}
	h.renderLogin(c, key)
}

// LogoutSuccess - GET /logoutsuccess
func (h *AuthHandler) LogoutSuccess(c *gin.Context) {
	h.renderLogin(c, keyLogout)
}

// InvalidSession - GET /invalidsession
func (h *AuthHandler) InvalidSession(c *gin.Context) {
	h.renderLogin(c, keyInvalidSession)
}

// Authenticate - POST /authenticate
func (h *AuthHandler) Authenticate(c *gin.Context) {
	var req model.LoginRequest
	_ = c.ShouldBind(&req)

	token, claims, err := h.service.Login(c.Request.Context(), req)
	switch {
	case err == nil:
	case errors.Is(err, model.ErrAccountLocked):
		c.Redirect(http.StatusSeeOther, "/loginfailure?reason=locked")
		return
	case errors.Is(err, model.ErrInvalidCredentials), errors.Is(err, model.ErrUserDisabled):
		log.Warn().Str("username", req.Username).Str("ip", c.ClientIP()).Err(err).Msg("[AuthHandler] Sign-in rejected")
		c.Redirect(http.StatusSeeOther, "/loginfailure")
		return
	default:
		_ = c.Error(err)
		return
	}

	// SET SESSION TOKEN IN HTTPONLY COOKIE
	maxAge := int(claims.ExpiresAt.Time.Sub(claims.IssuedAt.Time).Seconds())
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(h.cookie.Name, token, maxAge, "/", "", h.cookie.Secure, true)
	c.Redirect(http.StatusSeeOther, "/books")
}

// Logout - GET /logout
func (h *AuthHandler) Logout(c *gin.Context) {
	if claims := middleware.SessionClaims(c); claims != nil {
		if err := h.service.Logout(c.Request.Context(), claims); err != nil {
			// cookie is cleared anyway; the token stays valid until it expires
			log.Error().Err(err).Str("username", claims.Username).Msg("[AuthHandler] Failed to revoke session")
		}
	}

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(h.cookie.Name, "", -1, "/", "", h.cookie.Secure, true)
	c.Redirect(http.StatusSeeOther, "/logoutsuccess")
}
