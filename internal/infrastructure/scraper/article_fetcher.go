package scraper

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

// ContentFetcher retrieves the readable body text of a linked article page.
// The feed pipeline uses it only when content scraping is enabled and an
// entry arrived without full content.
type ContentFetcher interface {
	FetchContent(ctx context.Context, url string) (string, error)
}

const (
	maxHTMLBytes = int64(2 * 1024 * 1024)
	maxTextChars = 8000
)

// contentSelectors are tried in order; the first non-empty match wins.
var contentSelectors = []string{
	"article",
	"main",
	".post-content",
	".entry-content",
	".article-body",
	"#content",
}

type articleFetcher struct {
	client    *http.Client
	userAgent string
}

func NewContentFetcher(timeout time.Duration) ContentFetcher {
	if timeout == 0 {
		timeout = 15 * time.Second
	}
	return &articleFetcher{
		client:    &http.Client{Timeout: timeout},
		userAgent: "feedreader/1.0",
	}
}

func (f *articleFetcher) FetchContent(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", f.userAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to fetch article: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("unexpected status %s", resp.Status)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxHTMLBytes))
	if err != nil {
		return "", fmt.Errorf("failed to read article body: %w", err)
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to parse article html: %w", err)
	}

	text := extractBodyText(doc)
	if text == "" {
		return "", fmt.Errorf("no readable content at %s", url)
	}
	return text, nil
}

func extractBodyText(doc *goquery.Document) string {
	var text string
	for _, selector := range contentSelectors {
		text = strings.TrimSpace(doc.Find(selector).First().Text())
		if text != "" {
			break
		}
	}
	if text == "" {
		text = strings.TrimSpace(doc.Find("body").Text())
	}

	text = strings.Join(strings.Fields(text), " ")
	if runes := []rune(text); len(runes) > maxTextChars {
		text = string(runes[:maxTextChars])
	}
	return text
}
