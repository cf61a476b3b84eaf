package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"book-manage/internal/infrastructure/i18n"
	"book-manage/internal/shared"
	"book-manage/internal/shared/view"
	"book-manage/pkg/jwt"
)

const testCookie = "BOOKSESSION"

type revocations map[string]bool

func (r revocations) IsRevoked(_ context.Context, id string) (bool, error) {
	if r == nil {
		return false, errors.New("redis down")
	}
	return r[id], nil
}

func newEngine(t *testing.T, sessions SessionChecker, tokens *jwt.Manager) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	tmpl, err := view.Templates()
	require.NoError(t, err)

	r := gin.New()
	r.SetHTMLTemplate(tmpl)
	r.Use(RequestID(), Logger(), Locale(i18n.New("en")), Recovery(), ErrorPage())
	r.Use(Session(tokens, sessions, testCookie))

	r.GET("/public", func(c *gin.Context) { c.String(http.StatusOK, "ok") })
	r.GET("/boom", func(c *gin.Context) { panic("boom") })
	r.GET("/fail", func(c *gin.Context) { _ = c.Error(errors.New("db down")) })

	authed := r.Group("/", RequireAuth(testCookie))
	authed.GET("/me", func(c *gin.Context) { c.String(http.StatusOK, CurrentPrincipal(c).Username) })
	authed.GET("/admin", RequireAuthority(shared.RoleAdmin), func(c *gin.Context) { c.String(http.StatusOK, "admin") })
	return r
}

func do(h http.Handler, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func withSession(t *testing.T, tokens *jwt.Manager, path, username, authority string) (*http.Request, *jwt.Claims) {
	t.Helper()
	token, claims, err := tokens.GenerateSessionToken(username, authority)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodGet, path, nil)
	req.AddCookie(&http.Cookie{Name: testCookie, Value: token})
	return req, claims
}

func TestRequireAuth(t *testing.T) {
	tokens := jwt.NewManager("secret", time.Hour)

	t.Run("anonymous goes to login", func(t *testing.T) {
		w := do(newEngine(t, revocations{}, tokens), httptest.NewRequest(http.MethodGet, "/me", nil))
		assert.Equal(t, http.StatusSeeOther, w.Code)
		assert.Equal(t, LoginPath, w.Header().Get("Location"))
	})

	t.Run("valid session", func(t *testing.T) {
		req, _ := withSession(t, tokens, "/me", "alice", shared.RoleUser)
		w := do(newEngine(t, revocations{}, tokens), req)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "alice", w.Body.String())
	})

	t.Run("garbage cookie goes to invalid session", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		req.AddCookie(&http.Cookie{Name: testCookie, Value: "not-a-jwt"})
		w := do(newEngine(t, revocations{}, tokens), req)
		assert.Equal(t, http.StatusSeeOther, w.Code)
		assert.Equal(t, InvalidSessionPath, w.Header().Get("Location"))
	})

	t.Run("revoked session goes to invalid session", func(t *testing.T) {
		req, claims := withSession(t, tokens, "/me", "alice", shared.RoleUser)
		w := do(newEngine(t, revocations{claims.SessionID(): true}, tokens), req)
		assert.Equal(t, http.StatusSeeOther, w.Code)
		assert.Equal(t, InvalidSessionPath, w.Header().Get("Location"))
	})

	t.Run("revocation store down fails open", func(t *testing.T) {
		req, _ := withSession(t, tokens, "/me", "alice", shared.RoleUser)
		w := do(newEngine(t, revocations(nil), tokens), req)
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("token signed with another secret", func(t *testing.T) {
		req, _ := withSession(t, jwt.NewManager("other", time.Hour), "/me", "alice", shared.RoleUser)
		w := do(newEngine(t, revocations{}, tokens), req)
		assert.Equal(t, InvalidSessionPath, w.Header().Get("Location"))
	})
}

func TestRequireAuthority(t *testing.T) {
	tokens := jwt.NewManager("secret", time.Hour)
	r := newEngine(t, revocations{}, tokens)

	req, _ := withSession(t, tokens, "/admin", "alice", shared.RoleUser)
	w := do(r, req)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), `data-key="error.forbidden"`)

	req, _ = withSession(t, tokens, "/admin", "root", shared.RoleAdmin)
	w = do(r, req)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestErrorBoundary(t *testing.T) {
	r := newEngine(t, revocations{}, jwt.NewManager("secret", time.Hour))

	for _, path := range []string{"/boom", "/fail"} {
		w := do(r, httptest.NewRequest(http.MethodGet, path, nil))
		assert.Equal(t, http.StatusInternalServerError, w.Code, path)
		assert.Contains(t, w.Body.String(), `data-key="error.system"`, path)
		assert.NotContains(t, w.Body.String(), "db down", path)
	}
}

func TestRequestIDAndLocale(t *testing.T) {
	r := newEngine(t, revocations{}, jwt.NewManager("secret", time.Hour))

	req := httptest.NewRequest(http.MethodGet, "/public", nil)
	req.Header.Set(HeaderRequestID, "abc")
	w := do(r, req)
	assert.Equal(t, "abc", w.Header().Get(HeaderRequestID))

	w = do(r, httptest.NewRequest(http.MethodGet, "/public", nil))
	assert.NotEmpty(t, w.Header().Get(HeaderRequestID))

	req = httptest.NewRequest(http.MethodGet, "/fail?lang=ja", nil)
	w = do(r, req)
	assert.Contains(t, w.Body.String(), `lang="ja"`)
	assert.Contains(t, w.Body.String(), "システムエラー")
}

func TestMethodOverride(t *testing.T) {
	var got string
	h := MethodOverride(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.Method + " " + r.PostFormValue("title")
	}))

	tests := []struct {
		method string
		body   url.Values
		want   string
	}{
		{http.MethodPost, url.Values{"_method": {"PUT"}, "title": {"t"}}, "PUT t"},
		{http.MethodPost, url.Values{"_method": {"delete"}}, "DELETE "},
		{http.MethodPost, url.Values{"_method": {"GET"}}, "POST "},
		{http.MethodPost, url.Values{"title": {"x"}}, "POST x"},
	}
	for _, tt := range tests {
		req := httptest.NewRequest(tt.method, "/books/1", strings.NewReader(tt.body.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		h.ServeHTTP(httptest.NewRecorder(), req)
		assert.Equal(t, tt.want, got)
	}
}
