package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"feedreader/internal/application"
	"feedreader/internal/domain/repository"
	"feedreader/internal/infrastructure/jsonfeed"
	"feedreader/internal/infrastructure/rss"
	"feedreader/internal/infrastructure/scraper"
	"feedreader/internal/infrastructure/storage"
	"feedreader/internal/interfaces/config"

	"github.com/go-pkgz/lgr"
)

func main() {
	logger := lgr.New(lgr.Msec, lgr.LevelBraces)
	logger.Logf("INFO starting feedreader")

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Logf("FATAL failed to load configuration: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var entryRepo repository.EntryRepository
	if cfg.DBPath != "" {
		store, err := storage.NewSQLiteEntryRepository(cfg.DBPath)
		if err != nil {
			logger.Logf("FATAL failed to open entry store: %v", err)
		}
		entryRepo = store
		logger.Logf("INFO persisting entries to %s", cfg.DBPath)
	} else {
		entryRepo = storage.NewMemoryEntryRepository()
		logger.Logf("INFO persistence disabled, keeping entries in memory")
	}

	var feedRepo repository.FeedRepository
	switch cfg.FetchMode {
	case config.ModeDirect:
		feedRepo = rss.NewFeedRepository(cfg.FeedURL, logger)
	default:
		feedRepo = jsonfeed.NewFeedRepository(jsonfeed.Config{
			ProxyHost:  cfg.ProxyHost,
			FeedURL:    cfg.FeedURL,
			NumEntries: cfg.NumEntries,
			Client:     &http.Client{Timeout: cfg.GetRequestTimeout()},
			Logger:     logger,
		})
	}

	opts := []application.Option{
		application.WithEntryRepository(entryRepo),
		application.WithSnippetLength(cfg.SnippetLength),
		application.WithLogger(logger),
	}
	if cfg.ScrapeContent {
		opts = append(opts, application.WithContentFetcher(scraper.NewContentFetcher(cfg.GetRequestTimeout())))
	}
	service := application.NewFeedService(feedRepo, opts...)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-sigCh
		logger.Logf("INFO shutdown signal received")
		cancel()
	}()

	interval := cfg.GetFetchInterval()
	logger.Logf("INFO fetching %s every %v", cfg.FeedURL, interval)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	refresh(ctx, service, logger)

	for {
		select {
		case <-ctx.Done():
			logger.Logf("INFO shutting down")
			return
		case <-ticker.C:
			refresh(ctx, service, logger)
		}
	}
}

func refresh(ctx context.Context, service *application.FeedService, logger lgr.L) {
	entries, err := service.FetchFeed(ctx)
	if err != nil {
		logger.Logf("WARN feed refresh failed: %v", err)
		return
	}

	logger.Logf("INFO fetched %d entries", len(entries))
	for _, entry := range entries {
		logger.Logf("DEBUG %s  %s", entry.Published.Format(time.RFC3339), entry.Title)
	}
}
