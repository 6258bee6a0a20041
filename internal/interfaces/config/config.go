package config

import (
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

const (
	ModeProxy  = "proxy"
	ModeDirect = "direct"
)

type Config struct {
	// FeedURL is the upstream feed to load, e.g. a Hacker News RSS URL.
	FeedURL string `envconfig:"FEED_URL" required:"true"`

	// ProxyHost is the feed-to-JSON proxy used in proxy mode.
	ProxyHost string `envconfig:"FEED_PROXY_HOST" default:"ajax.googleapis.com"`

	// NumEntries is the item count requested from the proxy.
	NumEntries int `envconfig:"NUM_ENTRIES" default:"25"`

	// FetchMode selects the fetch path: "proxy" (JSON envelope) or
	// "direct" (plain RSS/Atom).
	FetchMode string `envconfig:"FETCH_MODE" default:"proxy"`

	// DBPath enables persistence when set; empty keeps entries in memory.
	DBPath string `envconfig:"DB_PATH"`

	// ScrapeContent fetches full article bodies for entries without content.
	ScrapeContent bool `envconfig:"SCRAPE_CONTENT" default:"false"`

	SnippetLength int `envconfig:"SNIPPET_LENGTH" default:"255"`

	// FetchInterval is seconds between refetches.
	FetchInterval int `envconfig:"FETCH_INTERVAL" default:"300"`

	// RequestTimeout is seconds per outbound request.
	RequestTimeout int `envconfig:"REQUEST_TIMEOUT" default:"30"`
}

func LoadConfig() (*Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}

	if cfg.FetchMode != ModeProxy && cfg.FetchMode != ModeDirect {
		return nil, fmt.Errorf("invalid FETCH_MODE %q: must be %q or %q", cfg.FetchMode, ModeProxy, ModeDirect)
	}
	if cfg.NumEntries <= 0 {
		return nil, fmt.Errorf("NUM_ENTRIES must be positive, got %d", cfg.NumEntries)
	}

	return &cfg, nil
}

func (c *Config) GetFetchInterval() time.Duration {
	return time.Duration(c.FetchInterval) * time.Second
}

func (c *Config) GetRequestTimeout() time.Duration {
	return time.Duration(c.RequestTimeout) * time.Second
}
