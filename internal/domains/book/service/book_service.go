package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"

	"book-manage/internal/domains/book/audit"
	"book-manage/internal/domains/book/model"
	"book-manage/internal/domains/book/repository"
	"book-manage/pkg/database"
	"book-manage/pkg/logger"
)

// BookService - Implements ServiceInterface
type BookService struct {
	repo    repository.Repository
	tx      database.TxManager
	stamper *audit.Stamper
}

// NewService - Constructor with DI
func NewService(repo repository.Repository, tx database.TxManager, stamper *audit.Stamper) ServiceInterface {
	return &BookService{
		repo:    repo,
		tx:      tx,
		stamper: stamper,
	}
}

// ============================================
// READ
// ============================================

// InitForm returns an empty "new book" form with the current listing.
func (s *BookService) InitForm(ctx context.Context) (*model.Form, error) {
	defer logger.Timed("BookService.InitForm")()

	var form *model.Form
	err := s.tx.ReadOnly(ctx, func(ctx context.Context) error {
		books, err := s.repo.FindAll(ctx)
		if err != nil {
			return err
		}
		form = model.NewForm(books)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("init form: %w", err)
	}
	return form, nil
}

// ReadOne returns an edit form for book id, or a NotFound failure.
func (s *BookService) ReadOne(ctx context.Context, id int64) (*model.Form, error) {
	defer logger.Timed("BookService.ReadOne")()

	var form *model.Form
	err := s.tx.ReadOnly(ctx, func(ctx context.Context) error {
		b, err := s.repo.FindByID(ctx, id)
		if err != nil {
			return err
		}
		books, err := s.repo.FindAll(ctx)
		if err != nil {
			return err
		}
		form = model.FormFromBook(b, books)
		return nil
	})
	if err != nil {
		return nil, s.translate(id, err)
	}
	return form, nil
}

// Listing returns every book.
func (s *BookService) Listing(ctx context.Context) ([]model.Book, error) {
	defer logger.Timed("BookService.Listing")()

	var books []model.Book
	err := s.tx.ReadOnly(ctx, func(ctx context.Context) error {
		var err error
		books, err = s.repo.FindAll(ctx)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("list books: %w", err)
	}
	return books, nil
}

// ============================================
// WRITE
// ============================================

// Create persists a new book built from form, stamped for actor.
func (s *BookService) Create(ctx context.Context, form *model.Form, actor string) (*model.Book, error) {
	defer logger.Timed("BookService.Create")()

	b := form.ToBook()
	err := s.tx.ReadWrite(ctx, func(ctx context.Context) error {
		s.stamper.StampCreate(b, actor)
		return s.repo.Create(ctx, b)
	})
	if err != nil {
		return nil, fmt.Errorf("create book: %w", err)
	}

	log.Info().Int64("book_id", b.ID).Str("actor", actor).Msg("[BookService] Book created")
	return b, nil
}

// Update overwrites title/author of book id if form.Version is current.
func (s *BookService) Update(ctx context.Context, id int64, form *model.Form, actor string) (*model.Book, error) {
	defer logger.Timed("BookService.Update")()

	var updated *model.Book
	err := s.tx.ReadWrite(ctx, func(ctx context.Context) error {
		// 1. Get existing book
		existing, err := s.repo.FindByID(ctx, id)
		if err != nil {
			return err
		}

		// 2. Check version (Optimistic Locking)
		if existing.Version != form.Version {
			return model.ErrVersionConflict
		}

		// 3. Apply + audit
		form.ApplyTo(existing)
		s.stamper.StampUpdate(existing, actor)

		// 4. Save; repo re-checks version in the WHERE clause
		if err := s.repo.Update(ctx, existing); err != nil {
			return err
		}
		updated = existing
		return nil
	})
	if err != nil {
		return nil, s.translate(id, err)
	}

	log.Info().Int64("book_id", id).Int64("version", updated.Version).Str("actor", actor).Msg("[BookService] Book updated")
	return updated, nil
}

// Delete removes book id, or returns a NotFound failure.
func (s *BookService) Delete(ctx context.Context, id int64) error {
	defer logger.Timed("BookService.Delete")()

	err := s.tx.ReadWrite(ctx, func(ctx context.Context) error {
		return s.repo.Delete(ctx, id)
	})
	if err != nil {
		return s.translate(id, err)
	}

	log.Info().Int64("book_id", id).Msg("[BookService] Book deleted")
	return nil
}

// translate turns store sentinels into business failures.
func (s *BookService) translate(id int64, err error) error {
	switch {
	case errors.Is(err, model.ErrBookNotFound):
		return model.NotFound(id)
	case errors.Is(err, model.ErrVersionConflict):
		return model.OptimisticConflict(id)
	}
	return fmt.Errorf("book %d: %w", id, err)
}
