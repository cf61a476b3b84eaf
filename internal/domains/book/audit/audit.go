// Package audit maintains the created/updated metadata of book records.
package audit

import (
	"time"

	"book-manage/internal/domains/book/model"
)

// Stamper fills audit fields on books about to be written.
type Stamper struct {
	now func() time.Time
}

// NewStamper returns a Stamper reading the wall clock.
func NewStamper() *Stamper {
	return &Stamper{now: time.Now}
}

// NewStamperWithClock is used by tests to pin the clock.
func NewStamperWithClock(now func() time.Time) *Stamper {
	return &Stamper{now: now}
}

// StampCreate sets creator and updater to actor and both timestamps to now.
func (s *Stamper) StampCreate(b *model.Book, actor string) {
	now := s.now().UTC().Truncate(time.Microsecond)
	b.CreatedBy = actor
	b.CreatedAt = now
	b.UpdatedBy = actor
	b.UpdatedAt = now
}

// StampUpdate sets updater and updated time. created_* are left alone.
// updated_at always moves forward, even if the clock did not.
func (s *Stamper) StampUpdate(b *model.Book, actor string) {
	now := s.now().UTC().Truncate(time.Microsecond)
	if !now.After(b.UpdatedAt) {
		now = b.UpdatedAt.Add(time.Microsecond)
	}
	b.UpdatedBy = actor
	b.UpdatedAt = now
}
