package scraper

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func serveHTML(page string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(page))
	}
}

func TestFetchContent_ArticleTag(t *testing.T) {
	page := `<html><body>
		<nav>menu noise</nav>
		<article>The actual article text.</article>
	</body></html>`

	server := httptest.NewServer(serveHTML(page))
	defer server.Close()

	fetcher := NewContentFetcher(5 * time.Second)

	content, err := fetcher.FetchContent(context.Background(), server.URL)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if content != "The actual article text." {
		t.Errorf("expected article text, got %q", content)
	}
}

func TestFetchContent_SelectorFallback(t *testing.T) {
	page := `<html><body>
		<div class="entry-content">Entry content text.</div>
	</body></html>`

	server := httptest.NewServer(serveHTML(page))
	defer server.Close()

	fetcher := NewContentFetcher(5 * time.Second)

	content, err := fetcher.FetchContent(context.Background(), server.URL)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if content != "Entry content text." {
		t.Errorf("expected entry content, got %q", content)
	}
}

func TestFetchContent_BodyFallback(t *testing.T) {
	page := `<html><body><p>Just a paragraph.</p></body></html>`

	server := httptest.NewServer(serveHTML(page))
	defer server.Close()

	fetcher := NewContentFetcher(5 * time.Second)

	content, err := fetcher.FetchContent(context.Background(), server.URL)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if content != "Just a paragraph." {
		t.Errorf("expected paragraph text, got %q", content)
	}
}

func TestFetchContent_EmptyPage(t *testing.T) {
	server := httptest.NewServer(serveHTML("<html><body></body></html>"))
	defer server.Close()

	fetcher := NewContentFetcher(5 * time.Second)

	_, err := fetcher.FetchContent(context.Background(), server.URL)
	if err == nil {
		t.Error("expected error for empty page, got nil")
	}
}

func TestFetchContent_ErrorStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusNotFound)
	}))
	defer server.Close()

	fetcher := NewContentFetcher(5 * time.Second)

	_, err := fetcher.FetchContent(context.Background(), server.URL)
	if err == nil {
		t.Error("expected error for 404 response, got nil")
	}
}

func TestFetchContent_TruncatesLongText(t *testing.T) {
	page := "<html><body><article>" + strings.Repeat("word ", 5000) + "</article></body></html>"

	server := httptest.NewServer(serveHTML(page))
	defer server.Close()

	fetcher := NewContentFetcher(5 * time.Second)

	content, err := fetcher.FetchContent(context.Background(), server.URL)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len([]rune(content)) > maxTextChars {
		t.Errorf("expected at most %d chars, got %d", maxTextChars, len([]rune(content)))
	}
}

func TestFetchContent_SendsUserAgent(t *testing.T) {
	var gotUA string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		w.Write([]byte("<html><body><article>ok</article></body></html>"))
	}))
	defer server.Close()

	fetcher := NewContentFetcher(5 * time.Second)

	if _, err := fetcher.FetchContent(context.Background(), server.URL); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotUA != "feedreader/1.0" {
		t.Errorf("expected feedreader user agent, got %q", gotUA)
	}
}
