package database

import (
	"time"

	"github.com/madhankd/madhanboard-v2/internal/docstore"
)

// Repository provides a unified interface to all data operations.
// It composes the per-entity repositories using struct embedding.
type Repository struct {
	*BoardRepo
	*ListRepo
	*ItemRepo
}

// NewRepository creates a Repository on top of the given document store.
func NewRepository(store docstore.Store) *Repository {
	r := &Repository{
		BoardRepo: &BoardRepo{store: store},
		ListRepo:  &ListRepo{store: store},
		ItemRepo:  &ItemRepo{store: store},
	}
	r.SetClock(time.Now)
	return r
}

// SetClock replaces the time source used to stamp created_at and updated_at
func (r *Repository) SetClock(now func() time.Time) {
	r.BoardRepo.now = now
	r.ListRepo.now = now
	r.ItemRepo.now = now
}

