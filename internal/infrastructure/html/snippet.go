package html

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Snippet reduces an HTML fragment to a plain-text excerpt of at most
// maxChars runes, collapsing whitespace. Returns "" when the markup holds no
// text. Used to backfill an entry's snippet from its full content.
func Snippet(markup string, maxChars int) string {
	if strings.TrimSpace(markup) == "" {
		return ""
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(markup))
	if err != nil {
		return ""
	}

	text := strings.Join(strings.Fields(doc.Text()), " ")
	if text == "" {
		return ""
	}

	runes := []rune(text)
	if maxChars > 0 && len(runes) > maxChars {
		return strings.TrimSpace(string(runes[:maxChars]))
	}
	return text
}
