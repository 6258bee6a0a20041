package entity

import (
	"fmt"
	"net/url"
	"time"
)

// Entry is one normalized feed item. Instances are only built through
// NewEntry, so an Entry in hand always has a title, an absolute link and a
// publication time.
type Entry struct {
	Title          string
	Link           string
	Author         string
	Published      time.Time
	ContentSnippet string
	Content        string
	Categories     []string
}

func NewEntry(title, link, author string, published time.Time, snippet, content string, categories []string) (*Entry, error) {
	if title == "" {
		return nil, fmt.Errorf("entry has no title")
	}
	if link == "" {
		return nil, fmt.Errorf("entry %q has no link", title)
	}
	u, err := url.Parse(link)
	if err != nil || !u.IsAbs() {
		return nil, fmt.Errorf("entry %q has a non-absolute link %q", title, link)
	}
	if published.IsZero() {
		return nil, fmt.Errorf("entry %q has no publication time", title)
	}

	return &Entry{
		Title:          title,
		Link:           link,
		Author:         author,
		Published:      published,
		ContentSnippet: snippet,
		Content:        content,
		Categories:     categories,
	}, nil
}

func (e *Entry) IsNewerThan(t time.Time) bool {
	return e.Published.After(t)
}
