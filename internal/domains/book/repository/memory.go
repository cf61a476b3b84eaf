package repository

import (
	"context"
	"sort"
	"sync"

	"book-manage/internal/domains/book/model"
)

// memoryRepository keeps books in process memory. Each method is atomic
// under the mutex, so the version check in Update is authoritative.
type memoryRepository struct {
	mu     sync.RWMutex
	books  map[int64]model.Book
	nextID int64
}

// NewMemoryRepository returns an empty in-memory store. IDs start at 1 and
// are never reused.
func NewMemoryRepository() Repository {
	return &memoryRepository{books: make(map[int64]model.Book)}
}

func (r *memoryRepository) FindAll(_ context.Context) ([]model.Book, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	books := make([]model.Book, 0, len(r.books))
	for _, b := range r.books {
		books = append(books, b)
	}
	sort.Slice(books, func(i, j int) bool { return books[i].ID < books[j].ID })
	return books, nil
}

func (r *memoryRepository) FindByID(_ context.Context, id int64) (*model.Book, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	b, ok := r.books[id]
	if !ok {
		return nil, model.ErrBookNotFound
	}
	return &b, nil
}

func (r *memoryRepository) Create(_ context.Context, b *model.Book) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.nextID++
	b.ID = r.nextID
	b.Version = 0
	r.books[b.ID] = *b
	return nil
}

func (r *memoryRepository) Update(_ context.Context, b *model.Book) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.books[b.ID]
	if !ok || stored.Version != b.Version {
		return model.ErrVersionConflict
	}

	stored.Title = b.Title
	stored.Author = b.Author
	stored.UpdatedBy = b.UpdatedBy
	stored.UpdatedAt = b.UpdatedAt
	stored.Version++
	r.books[b.ID] = stored

	b.Version = stored.Version
	return nil
}

func (r *memoryRepository) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.books[id]; !ok {
		return model.ErrBookNotFound
	}
	delete(r.books, id)
	return nil
}
