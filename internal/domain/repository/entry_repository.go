package repository

import (
	"context"

	"feedreader/internal/domain/entity"
)

// EntryRepository is the durable store for normalized entries. Save must be
// atomic per entry: a stored entry is either fully visible or absent.
type EntryRepository interface {
	Save(ctx context.Context, entry *entity.Entry) error
	List(ctx context.Context, limit int) ([]*entity.Entry, error)
}
