package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"book-manage/internal/domains/book/model"
	"book-manage/pkg/database"
)

const bookColumns = `id, title, author, version, created_by, created_at, updated_by, updated_at`

// postgresRepository - Raw SQL với pgx. Mọi query đi qua QuerierFromCtx
// để dùng transaction của service nếu có.
type postgresRepository struct {
	db database.Querier
}

// NewPostgresRepository - Constructor
func NewPostgresRepository(db database.Querier) Repository {
	return &postgresRepository{db: db}
}

func (r *postgresRepository) q(ctx context.Context) database.Querier {
	return database.QuerierFromCtx(ctx, r.db)
}

// ============================================
// READ
// ============================================

func (r *postgresRepository) FindAll(ctx context.Context) ([]model.Book, error) {
	rows, err := r.q(ctx).Query(ctx, `SELECT `+bookColumns+` FROM books ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list books: %w", err)
	}
	defer rows.Close()

	books := make([]model.Book, 0)
	for rows.Next() {
		var b model.Book
		if err := scanBook(rows, &b); err != nil {
			return nil, fmt.Errorf("scan book: %w", err)
		}
		books = append(books, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}
	return books, nil
}

func (r *postgresRepository) FindByID(ctx context.Context, id int64) (*model.Book, error) {
	var b model.Book
	err := scanBook(r.q(ctx).QueryRow(ctx, `SELECT `+bookColumns+` FROM books WHERE id = $1`, id), &b)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, model.ErrBookNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get book %d: %w", id, err)
	}
	return &b, nil
}

// ============================================
// WRITE
// ============================================

func (r *postgresRepository) Create(ctx context.Context, b *model.Book) error {
	query := `
		INSERT INTO books (title, author, created_by, created_at, updated_by, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, version
	`
	err := r.q(ctx).QueryRow(ctx, query,
		b.Title, b.Author, b.CreatedBy, b.CreatedAt, b.UpdatedBy, b.UpdatedAt,
	).Scan(&b.ID, &b.Version)
	if err != nil {
		return fmt.Errorf("failed to create book: %w", err)
	}
	return nil
}

func (r *postgresRepository) Update(ctx context.Context, b *model.Book) error {
	query := `
		UPDATE books
		SET title = $1, author = $2, updated_by = $3, updated_at = $4, version = version + 1
		WHERE id = $5 AND version = $6
	`
	result, err := r.q(ctx).Exec(ctx, query,
		b.Title, b.Author, b.UpdatedBy, b.UpdatedAt,
		b.ID, b.Version, // WHERE version = version đã đọc
	)
	if err != nil {
		return fmt.Errorf("failed to update book: %w", err)
	}
	if result.RowsAffected() == 0 {
		return model.ErrVersionConflict
	}

	b.Version++
	return nil
}

func (r *postgresRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.q(ctx).Exec(ctx, `DELETE FROM books WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete book: %w", err)
	}
	if result.RowsAffected() == 0 {
		return model.ErrBookNotFound
	}
	return nil
}

func scanBook(row pgx.Row, b *model.Book) error {
	return row.Scan(
		&b.ID,
		&b.Title,
		&b.Author,
		&b.Version,
		&b.CreatedBy,
		&b.CreatedAt,
		&b.UpdatedBy,
		&b.UpdatedAt,
	)
}
