package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"

	"book-manage/internal/domains/user/model"
	"book-manage/pkg/database"
)

type userRepo struct {
	db database.Querier
}

func NewUserRepository(db database.Querier) UserRepository {
	return &userRepo{db: db}
}

func (r *userRepo) FindByUsername(ctx context.Context, username string) (*model.User, error) {
	query := `
		SELECT id, username, password, enabled, authority
		FROM users
		WHERE username = $1
	`
	u := &model.User{}
	err := database.QuerierFromCtx(ctx, r.db).QueryRow(ctx, query, username).Scan(
		&u.ID, &u.Username, &u.Password, &u.Enabled, &u.Authority,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, model.ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find user by username: %w", err)
	}
	return u, nil
}

func (r *userRepo) Create(ctx context.Context, u *model.User) error {
	query := `
		INSERT INTO users (username, password, enabled, authority)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`
	err := database.QuerierFromCtx(ctx, r.db).QueryRow(ctx, query,
		u.Username, u.Password, u.Enabled, u.Authority,
	).Scan(&u.ID)
	if isUniqueViolation(err) {
		return model.ErrUserExists
	}
	if err != nil {
		return fmt.Errorf("create user: %w", err)
	}
	return nil
}

// isUniqueViolation maps the SQLSTATE through lib/pq's code table.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}
	return pq.ErrorCode(pgErr.Code).Name() == "unique_violation"
}
