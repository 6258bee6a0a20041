package rss

import (
	"context"
	"fmt"

	"feedreader/internal/domain/entity"
	"feedreader/internal/domain/repository"

	"github.com/go-pkgz/lgr"
	"github.com/mmcdole/gofeed"
)

// feedRepository fetches a feed directly as RSS/Atom, bypassing the JSON
// proxy. Useful for feeds the proxy cannot load; the normalized output is the
// same Entry model the proxy path produces.
type feedRepository struct {
	feedURL string
	parser  *gofeed.Parser
	log     lgr.L
}

func NewFeedRepository(feedURL string, log lgr.L) repository.FeedRepository {
	if log == nil {
		log = lgr.Default()
	}
	return &feedRepository{
		feedURL: feedURL,
		parser:  gofeed.NewParser(),
		log:     log,
	}
}

func (r *feedRepository) Fetch(ctx context.Context) ([]*entity.Entry, error) {
	feed, err := r.parser.ParseURLWithContext(r.feedURL, ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", entity.ErrInvalidData, err)
	}

	entries := make([]*entity.Entry, 0, len(feed.Items))
	for _, item := range feed.Items {
		entry, err := mapItem(item)
		if err != nil {
			r.log.Logf("WARN skipping malformed feed item: %v", err)
			continue
		}
		entries = append(entries, entry)
	}

	return entries, nil
}

func mapItem(item *gofeed.Item) (*entity.Entry, error) {
	if item.PublishedParsed == nil {
		return nil, fmt.Errorf("item %q has no parseable publication date", item.Title)
	}

	author := ""
	if len(item.Authors) > 0 {
		author = item.Authors[0].Name
	}

	return entity.NewEntry(item.Title, item.Link, author, *item.PublishedParsed,
		item.Description, item.Content, item.Categories)
}
