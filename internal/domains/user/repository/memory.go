package repository

import (
	"context"
	"sync"

	"book-manage/internal/domains/user/model"
)

type memoryUserRepo struct {
	mu     sync.RWMutex
	users  map[string]model.User
	nextID int64
}

// NewMemoryUserRepository returns an empty in-memory user store.
func NewMemoryUserRepository() UserRepository {
	return &memoryUserRepo{users: make(map[string]model.User)}
}

func (r *memoryUserRepo) FindByUsername(_ context.Context, username string) (*model.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.users[username]
	if !ok {
		return nil, model.ErrUserNotFound
	}
	return &u, nil
}

func (r *memoryUserRepo) Create(_ context.Context, u *model.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.users[u.Username]; ok {
		return model.ErrUserExists
	}
	r.nextID++
	u.ID = r.nextID
	r.users[u.Username] = *u
	return nil
}
