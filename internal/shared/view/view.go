// Package view holds the HTML templates and the data shared by every page.
package view

import (
	"embed"
	"html/template"

	"book-manage/internal/shared"
)

//go:embed templates/*.html
var templatesFS embed.FS

// Template names
const (
	Books     = "books"
	Admin     = "admin"
	Login     = "login"
	Error     = "error"
	Forbidden = "forbidden"
)

// Templates parses the embedded template set.
func Templates() (*template.Template, error) {
	return template.New("").ParseFS(templatesFS, "templates/*.html")
}

// Translator resolves message keys for the request language.
type Translator interface {
	Sprintf(key string, args ...any) string
}

// Page is embedded in every page model.
type Page struct {
	t         Translator
	Lang      string
	Principal *shared.Principal
}

func NewPage(t Translator, lang string, principal *shared.Principal) Page {
	return Page{t: t, Lang: lang, Principal: principal}
}

// T resolves key for the page language.
func (p Page) T(key string, args ...any) string {
	if p.t == nil {
		return key
	}
	return p.t.Sprintf(key, args...)
}

// IsAdmin is used by templates to show admin links.
func (p Page) IsAdmin() bool {
	return p.Principal.HasAuthority(shared.RoleAdmin)
}

// MessagePage is a page with at most one status message.
type MessagePage struct {
	Page
	MessageKey string
}

// LoginPage is the sign-in form.
type LoginPage struct {
	Page
	MessageKey   string
	LastUsername string
}
