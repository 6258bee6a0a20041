package config

import (
	"os"
	"testing"
	"time"
)

func setFeedURL(t *testing.T) {
	t.Helper()
	os.Setenv("FEED_URL", "https://news.ycombinator.com/rss")
	t.Cleanup(func() { os.Unsetenv("FEED_URL") })
}

func TestLoadConfig_Defaults(t *testing.T) {
	setFeedURL(t)

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.FeedURL != "https://news.ycombinator.com/rss" {
		t.Errorf("unexpected FeedURL: %q", cfg.FeedURL)
	}
	if cfg.ProxyHost != "ajax.googleapis.com" {
		t.Errorf("expected default proxy host, got %q", cfg.ProxyHost)
	}
	if cfg.NumEntries != 25 {
		t.Errorf("expected 25 entries, got %d", cfg.NumEntries)
	}
	if cfg.FetchMode != ModeProxy {
		t.Errorf("expected proxy mode, got %q", cfg.FetchMode)
	}
	if cfg.DBPath != "" {
		t.Errorf("expected persistence disabled by default, got %q", cfg.DBPath)
	}
	if cfg.ScrapeContent {
		t.Error("expected scraping disabled by default")
	}
	if cfg.GetFetchInterval() != 5*time.Minute {
		t.Errorf("expected 5m fetch interval, got %v", cfg.GetFetchInterval())
	}
	if cfg.GetRequestTimeout() != 30*time.Second {
		t.Errorf("expected 30s request timeout, got %v", cfg.GetRequestTimeout())
	}
}

func TestLoadConfig_MissingFeedURL(t *testing.T) {
	os.Unsetenv("FEED_URL")

	if _, err := LoadConfig(); err == nil {
		t.Error("expected error when FEED_URL is unset, got nil")
	}
}

func TestLoadConfig_Overrides(t *testing.T) {
	setFeedURL(t)
	os.Setenv("FETCH_MODE", "direct")
	os.Setenv("NUM_ENTRIES", "8")
	os.Setenv("DB_PATH", "/tmp/entries.db")
	os.Setenv("FETCH_INTERVAL", "60")
	t.Cleanup(func() {
		os.Unsetenv("FETCH_MODE")
		os.Unsetenv("NUM_ENTRIES")
		os.Unsetenv("DB_PATH")
		os.Unsetenv("FETCH_INTERVAL")
	})

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.FetchMode != ModeDirect {
		t.Errorf("expected direct mode, got %q", cfg.FetchMode)
	}
	if cfg.NumEntries != 8 {
		t.Errorf("expected 8 entries, got %d", cfg.NumEntries)
	}
	if cfg.DBPath != "/tmp/entries.db" {
		t.Errorf("unexpected DBPath: %q", cfg.DBPath)
	}
	if cfg.GetFetchInterval() != time.Minute {
		t.Errorf("expected 1m fetch interval, got %v", cfg.GetFetchInterval())
	}
}

func TestLoadConfig_InvalidFetchMode(t *testing.T) {
	setFeedURL(t)
	os.Setenv("FETCH_MODE", "carrier-pigeon")
	t.Cleanup(func() { os.Unsetenv("FETCH_MODE") })

	if _, err := LoadConfig(); err == nil {
		t.Error("expected error for invalid fetch mode, got nil")
	}
}

func TestLoadConfig_InvalidNumEntries(t *testing.T) {
	setFeedURL(t)
	os.Setenv("NUM_ENTRIES", "0")
	t.Cleanup(func() { os.Unsetenv("NUM_ENTRIES") })

	if _, err := LoadConfig(); err == nil {
		t.Error("expected error for non-positive NUM_ENTRIES, got nil")
	}
}
