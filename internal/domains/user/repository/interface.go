package repository

import (
	"context"

	"book-manage/internal/domains/user/model"
)

type UserRepository interface {
	// FindByUsername returns model.ErrUserNotFound when no row matches.
	FindByUsername(ctx context.Context, username string) (*model.User, error)
	// Create inserts u and sets u.ID. A taken username yields model.ErrUserExists.
	Create(ctx context.Context, u *model.User) error
}
