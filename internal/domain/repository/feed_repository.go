package repository

import (
	"context"

	"feedreader/internal/domain/entity"
)

// FeedRepository fetches the configured remote feed and returns its entries
// in source order. The source URL is fixed at construction time.
type FeedRepository interface {
	Fetch(ctx context.Context) ([]*entity.Entry, error)
}
