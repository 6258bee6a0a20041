package jsonfeed

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"feedreader/internal/domain/entity"
	"feedreader/internal/domain/repository"

	"github.com/go-pkgz/lgr"
)

// Doer is the HTTP capability the fetcher needs. *http.Client satisfies it;
// tests substitute fakes.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Feed proxy responses carry publication times like
// "Mon, 02 May 2016 10:00:00 GMT"; some proxies emit a numeric zone instead.
var dateLayouts = []string{time.RFC1123, time.RFC1123Z}

const maxBodyBytes = int64(8 * 1024 * 1024)

type feedRepository struct {
	requestURL string
	client     Doer
	log        lgr.L
}

type Config struct {
	// ProxyHost is the feed-to-JSON proxy, e.g. "ajax.googleapis.com".
	ProxyHost string
	// FeedURL is the upstream feed the proxy should load.
	FeedURL string
	// NumEntries is the number of items requested from the proxy.
	NumEntries int
	Client     Doer
	Logger     lgr.L
}

// NewFeedRepository builds a fetcher for one proxied feed. The request URL is
// fixed here; Fetch takes no parameters beyond the context.
func NewFeedRepository(cfg Config) repository.FeedRepository {
	client := cfg.Client
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}
	log := cfg.Logger
	if log == nil {
		log = lgr.Default()
	}

	requestURL := fmt.Sprintf("https://%s/ajax/services/feed/load?v=1.0&num=%d&q=%s",
		cfg.ProxyHost, cfg.NumEntries, url.QueryEscape(cfg.FeedURL))

	return &feedRepository{
		requestURL: requestURL,
		client:     client,
		log:        log,
	}
}

// envelope mirrors the proxy's response shape. Pointers distinguish a missing
// path segment from a present-but-empty one.
type envelope struct {
	ResponseData *struct {
		Feed *struct {
			Entries *[]envelopeItem `json:"entries"`
		} `json:"feed"`
	} `json:"responseData"`
}

type envelopeItem struct {
	Title          string   `json:"title"`
	Link           string   `json:"link"`
	Author         string   `json:"author"`
	PublishedDate  string   `json:"publishedDate"`
	ContentSnippet string   `json:"contentSnippet"`
	Content        string   `json:"content"`
	Categories     []string `json:"categories"`
}

// Fetch performs a single GET against the proxy and normalizes the returned
// envelope. Items that fail to map are skipped, not fatal; the surviving
// entries keep the source order.
func (r *feedRepository) Fetch(ctx context.Context) ([]*entity.Entry, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, r.requestURL, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", entity.ErrInvalidData, err)
	}

	resp, err := r.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", entity.ErrInvalidData, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		return nil, fmt.Errorf("%w: unexpected status %s", entity.ErrInvalidData, resp.Status)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", entity.ErrInvalidData, err)
	}
	if len(body) == 0 {
		return nil, fmt.Errorf("%w: empty response body", entity.ErrInvalidData)
	}

	items, err := decodeEnvelope(body)
	if err != nil {
		return nil, err
	}

	entries := make([]*entity.Entry, 0, len(items))
	for _, item := range items {
		entry, err := mapItem(item)
		if err != nil {
			r.log.Logf("WARN skipping malformed feed item: %v", err)
			continue
		}
		entries = append(entries, entry)
	}

	return entries, nil
}

// decodeEnvelope walks responseData.feed.entries strictly; every missing or
// mistyped segment is an ErrInvalidJSON, never a panic.
func decodeEnvelope(body []byte) ([]envelopeItem, error) {
	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, fmt.Errorf("%w: %v", entity.ErrInvalidJSON, err)
	}
	if env.ResponseData == nil {
		return nil, fmt.Errorf("%w: missing responseData", entity.ErrInvalidJSON)
	}
	if env.ResponseData.Feed == nil {
		return nil, fmt.Errorf("%w: missing responseData.feed", entity.ErrInvalidJSON)
	}
	if env.ResponseData.Feed.Entries == nil {
		return nil, fmt.Errorf("%w: missing responseData.feed.entries", entity.ErrInvalidJSON)
	}
	return *env.ResponseData.Feed.Entries, nil
}

func mapItem(item envelopeItem) (*entity.Entry, error) {
	published, err := parsePublishedDate(item.PublishedDate)
	if err != nil {
		return nil, err
	}
	return entity.NewEntry(item.Title, item.Link, item.Author, published,
		item.ContentSnippet, item.Content, item.Categories)
}

func parsePublishedDate(value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, errors.New("item has no publishedDate")
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unparseable publishedDate %q", value)
}
