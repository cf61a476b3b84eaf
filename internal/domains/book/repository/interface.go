package repository

import (
	"context"

	"book-manage/internal/domains/book/model"
)

// Repository - Định nghĩa data access methods cho books
type Repository interface {
	// FindAll returns every book ordered by id.
	FindAll(ctx context.Context) ([]model.Book, error)
	// FindByID returns model.ErrBookNotFound when no row matches.
	FindByID(ctx context.Context, id int64) (*model.Book, error)
	// Create inserts b and sets the generated ID and initial version on it.
	Create(ctx context.Context, b *model.Book) error
	// Update writes b only if the stored version still equals b.Version,
	// then increments b.Version. A stale version yields model.ErrVersionConflict.
	Update(ctx context.Context, b *model.Book) error
	// Delete returns model.ErrBookNotFound when no row matches.
	Delete(ctx context.Context, id int64) error
}
