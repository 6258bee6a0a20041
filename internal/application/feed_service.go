package application

import (
	"context"
	"fmt"

	"feedreader/internal/domain/entity"
	"feedreader/internal/domain/repository"
	"feedreader/internal/infrastructure/html"
	"feedreader/internal/infrastructure/scraper"

	"github.com/go-pkgz/lgr"
)

// FeedService is the fetch-and-normalize pipeline. One FetchFeed call issues
// one fetch, optionally enriches and persists entries, and returns exactly
// one terminal result. All collaborators are injected; there are no ambient
// singletons.
type FeedService struct {
	feedRepo       repository.FeedRepository
	entryRepo      repository.EntryRepository // nil disables persistence
	contentFetcher scraper.ContentFetcher     // nil disables scraping
	snippetLength  int
	log            lgr.L
}

type Option func(*FeedService)

// WithEntryRepository enables the persistence pass: every normalized entry is
// written through before the result is returned.
func WithEntryRepository(repo repository.EntryRepository) Option {
	return func(s *FeedService) { s.entryRepo = repo }
}

// WithContentFetcher enables scraping full content for entries that arrive
// without any. Adds one extra GET per contentless entry, so it is opt-in.
func WithContentFetcher(fetcher scraper.ContentFetcher) Option {
	return func(s *FeedService) { s.contentFetcher = fetcher }
}

func WithSnippetLength(length int) Option {
	return func(s *FeedService) { s.snippetLength = length }
}

func WithLogger(log lgr.L) Option {
	return func(s *FeedService) { s.log = log }
}

func NewFeedService(feedRepo repository.FeedRepository, opts ...Option) *FeedService {
	s := &FeedService{
		feedRepo:      feedRepo,
		snippetLength: 255,
		log:           lgr.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// FetchFeed runs the pipeline once: fetch, normalize, enrich, persist. The
// returned entries keep the source feed's order. Persistence failures for a
// single entry do not fail the batch; the caller still gets every normalized
// entry, stored or not.
func (s *FeedService) FetchFeed(ctx context.Context) ([]*entity.Entry, error) {
	entries, err := s.feedRepo.Fetch(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch feed: %w", err)
	}

	for _, entry := range entries {
		s.enrich(ctx, entry)

		if s.entryRepo != nil {
			if err := s.entryRepo.Save(ctx, entry); err != nil {
				s.log.Logf("WARN failed to store entry [%s]: %v", entry.Link, err)
			}
		}
	}

	return entries, nil
}

// Stored returns the most recent persisted entries, newest first. Only
// meaningful when persistence is enabled.
func (s *FeedService) Stored(ctx context.Context, limit int) ([]*entity.Entry, error) {
	if s.entryRepo == nil {
		return nil, fmt.Errorf("persistence is not enabled")
	}
	return s.entryRepo.List(ctx, limit)
}

func (s *FeedService) enrich(ctx context.Context, entry *entity.Entry) {
	if s.contentFetcher != nil && entry.Content == "" {
		content, err := s.contentFetcher.FetchContent(ctx, entry.Link)
		if err != nil {
			s.log.Logf("WARN failed to fetch content [%s]: %v", entry.Link, err)
		} else {
			entry.Content = content
		}
	}

	if entry.ContentSnippet == "" && entry.Content != "" {
		entry.ContentSnippet = html.Snippet(entry.Content, s.snippetLength)
	}
}
