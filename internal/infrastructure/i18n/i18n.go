// Package i18n resolves user-facing messages by key for the request locale.
package i18n

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
)

// Message keys used outside templates.
const (
	KeyBookNotFound       = "error.booknotfound"
	KeyOptimisticConflict = "error.optlockfailure"
	KeyValidation         = "error.validation"
	KeySystemError        = "error.system"
	KeyForbidden          = "error.forbidden"
)

// Catalog holds the message tables and the language matcher.
type Catalog struct {
	builder   *catalog.Builder
	supported []language.Tag
	matcher   language.Matcher
}

// New builds the catalog. defaultLang is used when nothing in the request
// matches a supported language.
func New(defaultLang string) *Catalog {
	fallback := language.Make(defaultLang)
	if fallback != language.Japanese {
		fallback = language.English
	}

	b := catalog.NewBuilder(catalog.Fallback(fallback))
	for tag, table := range messages {
		for key, msg := range table {
			// Keys and messages are static; SetString only fails on malformed input.
			if err := b.SetString(tag, key, msg); err != nil {
				panic(err)
			}
		}
	}

	supported := []language.Tag{fallback}
	for _, tag := range []language.Tag{language.English, language.Japanese} {
		if tag != fallback {
			supported = append(supported, tag)
		}
	}

	return &Catalog{
		builder:   b,
		supported: supported,
		matcher:   language.NewMatcher(supported),
	}
}

// Resolve picks a supported language from an explicit choice (e.g. ?lang=ja)
// and the Accept-Language header, in that order.
func (c *Catalog) Resolve(explicit, acceptLanguage string) language.Tag {
	var wanted []language.Tag
	if explicit != "" {
		if tag, err := language.Parse(explicit); err == nil {
			wanted = append(wanted, tag)
		}
	}
	if acceptLanguage != "" {
		if tags, _, err := language.ParseAcceptLanguage(acceptLanguage); err == nil {
			wanted = append(wanted, tags...)
		}
	}
	if len(wanted) == 0 {
		return c.supported[0]
	}

	_, idx, conf := c.matcher.Match(wanted...)
	if conf == language.No {
		return c.supported[0]
	}
	return c.supported[idx]
}

// Printer returns a printer bound to tag.
func (c *Catalog) Printer(tag language.Tag) *Printer {
	return &Printer{tag: tag, p: message.NewPrinter(tag, message.Catalog(c.builder))}
}

// Printer formats catalog messages for one language.
type Printer struct {
	tag language.Tag
	p   *message.Printer
}

// Tag returns the printer language.
func (p *Printer) Tag() language.Tag {
	return p.tag
}

// Sprintf resolves key and formats it with args.
func (p *Printer) Sprintf(key string, args ...any) string {
	return p.p.Sprintf(key, args...)
}
