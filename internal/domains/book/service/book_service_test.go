package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"book-manage/internal/domains/book/audit"
	"book-manage/internal/domains/book/model"
	"book-manage/internal/domains/book/repository"
	"book-manage/pkg/database"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func newTestService(t *testing.T) (ServiceInterface, *fakeClock) {
	t.Helper()
	clock := &fakeClock{now: time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)}
	svc := NewService(repository.NewMemoryRepository(), database.NoopTxManager{}, audit.NewStamperWithClock(clock.Now))
	return svc, clock
}

func mustCreate(t *testing.T, svc ServiceInterface, title, author string) *model.Book {
	t.Helper()
	b, err := svc.Create(context.Background(), &model.Form{Title: title, Author: author}, "user")
	require.NoError(t, err)
	return b
}

func requireFailure(t *testing.T, err error, kind model.FailureKind, id int64) {
	t.Helper()
	f, ok := model.AsFailure(err)
	require.True(t, ok, "expected business failure, got %v", err)
	assert.Equal(t, kind, f.Kind)
	assert.Equal(t, id, f.ID)
}

func TestBookService_InitForm(t *testing.T) {
	svc, _ := newTestService(t)
	mustCreate(t, svc, "Go", "Pike")

	form, err := svc.InitForm(context.Background())
	require.NoError(t, err)
	assert.True(t, form.NewBook)
	assert.Empty(t, form.Title)
	assert.Empty(t, form.Author)
	assert.Equal(t, int64(0), form.Version)
	assert.Len(t, form.Books, 1)
}

func TestBookService_Create(t *testing.T) {
	svc, clock := newTestService(t)

	b := mustCreate(t, svc, "Go", "Pike")
	assert.Positive(t, b.ID)
	assert.Equal(t, int64(0), b.Version)
	assert.Equal(t, "user", b.CreatedBy)
	assert.Equal(t, "user", b.UpdatedBy)
	assert.Equal(t, clock.Now(), b.CreatedAt)
	assert.Equal(t, b.CreatedAt, b.UpdatedAt)

	b2 := mustCreate(t, svc, "Rust", "Klabnik")
	assert.NotEqual(t, b.ID, b2.ID)
}

func TestBookService_ReadOne(t *testing.T) {
	svc, _ := newTestService(t)
	b := mustCreate(t, svc, "Go", "Pike")

	form, err := svc.ReadOne(context.Background(), b.ID)
	require.NoError(t, err)
	assert.False(t, form.NewBook)
	assert.Equal(t, "Go", form.Title)
	assert.Equal(t, "Pike", form.Author)
	assert.Equal(t, b.Version, form.Version)
	assert.Len(t, form.Books, 1)

	_, err = svc.ReadOne(context.Background(), 999)
	requireFailure(t, err, model.KindNotFound, 999)
}

func TestBookService_Update(t *testing.T) {
	svc, clock := newTestService(t)
	ctx := context.Background()
	b := mustCreate(t, svc, "Go", "Pike")

	clock.Advance(time.Minute)
	updated, err := svc.Update(ctx, b.ID, &model.Form{Title: "Go 2", Author: "Griesemer", Version: 0}, "admin")
	require.NoError(t, err)

	assert.Equal(t, int64(1), updated.Version)
	assert.Equal(t, "Go 2", updated.Title)
	assert.Equal(t, "admin", updated.UpdatedBy)
	assert.True(t, updated.UpdatedAt.After(b.UpdatedAt))
	assert.Equal(t, b.CreatedBy, updated.CreatedBy)
	assert.Equal(t, b.CreatedAt, updated.CreatedAt)
}

func TestBookService_UpdateClockStandsStill(t *testing.T) {
	svc, _ := newTestService(t)
	b := mustCreate(t, svc, "Go", "Pike")

	updated, err := svc.Update(context.Background(), b.ID, &model.Form{Title: "x", Author: "y", Version: 0}, "user")
	require.NoError(t, err)
	assert.True(t, updated.UpdatedAt.After(b.UpdatedAt))
}

func TestBookService_UpdateStaleVersion(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	b := mustCreate(t, svc, "Go", "Pike")

	_, err := svc.Update(ctx, b.ID, &model.Form{Title: "first", Author: "a", Version: 0}, "user")
	require.NoError(t, err)

	_, err = svc.Update(ctx, b.ID, &model.Form{Title: "second", Author: "b", Version: 0}, "user")
	requireFailure(t, err, model.KindOptimisticConflict, b.ID)
	assert.ErrorIs(t, err, model.ErrVersionConflict)

	form, err := svc.ReadOne(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, "first", form.Title)
	assert.Equal(t, int64(1), form.Version)
}

func TestBookService_UpdateUnknown(t *testing.T) {
	svc, _ := newTestService(t)
	_, err := svc.Update(context.Background(), 42, &model.Form{Title: "t", Author: "a"}, "user")
	requireFailure(t, err, model.KindNotFound, 42)
}

func TestBookService_ConcurrentUpdatesOneWins(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	b := mustCreate(t, svc, "Go", "Pike")

	const writers = 8
	results := make(chan error, writers)
	var wg sync.WaitGroup
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.Update(ctx, b.ID, &model.Form{Title: "t", Author: "a", Version: 0}, "user")
			results <- err
		}()
	}
	wg.Wait()
	close(results)

	var wins, conflicts int
	for err := range results {
		if err == nil {
			wins++
			continue
		}
		requireFailure(t, err, model.KindOptimisticConflict, b.ID)
		conflicts++
	}
	assert.Equal(t, 1, wins)
	assert.Equal(t, writers-1, conflicts)
}

func TestBookService_Delete(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	b := mustCreate(t, svc, "Go", "Pike")

	require.NoError(t, svc.Delete(ctx, b.ID))
	requireFailure(t, svc.Delete(ctx, b.ID), model.KindNotFound, b.ID)

	_, err := svc.ReadOne(ctx, b.ID)
	requireFailure(t, err, model.KindNotFound, b.ID)
}

type brokenRepo struct {
	repository.Repository
	err error
}

func (r brokenRepo) FindAll(context.Context) ([]model.Book, error)        { return nil, r.err }
func (r brokenRepo) FindByID(context.Context, int64) (*model.Book, error) { return nil, r.err }
func (r brokenRepo) Delete(context.Context, int64) error                  { return r.err }

func TestBookService_UnexpectedErrorsAreNotFailures(t *testing.T) {
	boom := errors.New("db down")
	svc := NewService(brokenRepo{err: boom}, database.NoopTxManager{}, audit.NewStamper())
	ctx := context.Background()

	_, err := svc.InitForm(ctx)
	assert.ErrorIs(t, err, boom)
	_, ok := model.AsFailure(err)
	assert.False(t, ok)

	_, err = svc.ReadOne(ctx, 1)
	assert.ErrorIs(t, err, boom)
	_, ok = model.AsFailure(err)
	assert.False(t, ok)

	err = svc.Delete(ctx, 1)
	assert.ErrorIs(t, err, boom)
}
