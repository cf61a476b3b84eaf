package model

import (
	"time"
)

// Field limits
const (
	TitleMaxLength  = 30
	AuthorMaxLength = 20
)

// Book represents the persisted book record
type Book struct {
	// Identity
	ID     int64  `json:"id" db:"id"`
	Title  string `json:"title" db:"title"`
	Author string `json:"author" db:"author"`

	// Optimistic locking
	Version int64 `json:"version" db:"version"`

	// Audit
	CreatedBy string    `json:"created_by" db:"created_by"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedBy string    `json:"updated_by" db:"updated_by"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// Form is the per-request view model of the books page.
// Title/Author/Version/NewBook are bound from the submitted form;
// Books is the listing used to draw the page.
type Form struct {
	Title   string `form:"title" json:"title"`
	Author  string `form:"author" json:"author"`
	Version int64  `form:"version" json:"version"`
	NewBook bool   `form:"newBook" json:"newBook"`

	Books []Book `form:"-" json:"-"`
}

// NewForm returns an empty form flagged as "creating new".
func NewForm(books []Book) *Form {
	return &Form{NewBook: true, Books: books}
}

// FormFromBook returns a form for editing an existing book.
func FormFromBook(b *Book, books []Book) *Form {
	return &Form{
		Title:   b.Title,
		Author:  b.Author,
		Version: b.Version,
		NewBook: false,
		Books:   books,
	}
}

// ToBook maps the form fields onto a new, unsaved record.
func (f *Form) ToBook() *Book {
	return &Book{
		Title:  f.Title,
		Author: f.Author,
	}
}

// ApplyTo overwrites the business fields of b with the form values.
// Identity, version and audit fields are untouched.
func (f *Form) ApplyTo(b *Book) {
	b.Title = f.Title
	b.Author = f.Author
}
