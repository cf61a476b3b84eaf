package model

import (
	"errors"
	"fmt"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Validation message keys
const (
	KeyRequired  = "validation.required"
	KeyNotBlank  = "validation.not-blank"
	KeyMaxSize   = "validation.max-size"
	KeyMalformed = "validation.malformed"
)

// Violation is one failed constraint on one submitted field.
type Violation struct {
	Field string
	Key   string
	Max   int
}

func (v Violation) String() string {
	return v.Field + ": " + v.Key
}

// Violations is ordered by field declaration (title before author).
type Violations []Violation

func (vs Violations) String() string {
	parts := make([]string, len(vs))
	for i, v := range vs {
		parts[i] = v.String()
	}
	return strings.Join(parts, ", ")
}

// HasErrors reports whether any violation occurred.
func (vs Violations) HasErrors() bool {
	return len(vs) > 0
}

// Translator resolves a message key for the request locale.
type Translator interface {
	Sprintf(key string, args ...any) string
}

// FieldMessage is a violation rendered for display.
type FieldMessage struct {
	Field   string
	Message string
}

// Localize renders every violation with t. Field names are resolved as
// "label.<field>".
func (vs Violations) Localize(t Translator) []FieldMessage {
	out := make([]FieldMessage, 0, len(vs))
	for _, v := range vs {
		label := t.Sprintf("label." + v.Field)
		var msg string
		switch v.Key {
		case KeyMaxSize:
			msg = t.Sprintf(v.Key, label, v.Max)
		case KeyMalformed:
			msg = t.Sprintf(v.Key)
		default:
			msg = t.Sprintf(v.Key, label)
		}
		out = append(out, FieldMessage{Field: v.Field, Message: msg})
	}
	return out
}

var errNotBlank = validation.NewError("validation_not_blank", "must not be blank")

var notBlank = validation.NewStringRuleWithError(func(s string) bool {
	return strings.TrimSpace(s) != ""
}, errNotBlank)

// fieldOrder fixes the report order of ozzo's error map.
var fieldOrder = []string{"title", "author"}

// ValidateForm checks f against the field constraints and returns every
// violation found. A non-nil error means the rules themselves failed.
func ValidateForm(f *Form) (Violations, error) {
	err := validation.ValidateStruct(f,
		validation.Field(&f.Title,
			validation.Required,
			notBlank,
			validation.RuneLength(0, TitleMaxLength),
		),
		validation.Field(&f.Author,
			validation.Required,
			notBlank,
			validation.RuneLength(0, AuthorMaxLength),
		),
	)
	if err == nil {
		return nil, nil
	}

	var errs validation.Errors
	if !errors.As(err, &errs) {
		return nil, fmt.Errorf("validate book form: %w", err)
	}

	var out Violations
	for _, field := range fieldOrder {
		fieldErr, ok := errs[field]
		if !ok {
			continue
		}
		out = append(out, toViolation(field, fieldErr))
	}
	return out, nil
}

func toViolation(field string, err error) Violation {
	var verr validation.Error
	if !errors.As(err, &verr) {
		return Violation{Field: field, Key: KeyMalformed}
	}

	switch verr.Code() {
	case validation.ErrRequired.Code():
		return Violation{Field: field, Key: KeyRequired}
	case errNotBlank.Code():
		return Violation{Field: field, Key: KeyNotBlank}
	case validation.ErrLengthTooLong.Code():
		max, _ := verr.Params()["max"].(int)
		return Violation{Field: field, Key: KeyMaxSize, Max: max}
	}
	return Violation{Field: field, Key: KeyMalformed}
}
