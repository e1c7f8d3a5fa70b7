// Package goquery provides HTML inspection of sanitized snippets using
// goquery.
package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/sitesearch"
)

// HighlightTag is the element the search API wraps around matched terms.
const HighlightTag = "em"

// Ensure Highlighter implements sitesearch.Highlighter at compile time.
var _ sitesearch.Highlighter = (*Highlighter)(nil)

// Highlighter reads highlight spans and text out of snippet fragments.
type Highlighter struct{}

// NewHighlighter creates a new Highlighter.
func NewHighlighter() *Highlighter {
	return &Highlighter{}
}

// Highlights returns the trimmed text of each non-empty highlight span.
func (h *Highlighter) Highlights(fragment string) []string {
	doc, ok := parse(fragment)
	if !ok {
		return nil
	}

	var out []string
	doc.Find(HighlightTag).Each(func(_ int, sel *goquery.Selection) {
		if text := strings.TrimSpace(sel.Text()); text != "" {
			out = append(out, text)
		}
	})
	return out
}

// PlainText returns the fragment's text with entities decoded and runs of
// whitespace collapsed to single spaces.
func (h *Highlighter) PlainText(fragment string) string {
	doc, ok := parse(fragment)
	if !ok {
		return ""
	}
	return strings.Join(strings.Fields(doc.Text()), " ")
}

func parse(fragment string) (*goquery.Document, bool) {
	if strings.TrimSpace(fragment) == "" {
		return nil, false
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(fragment))
	if err != nil {
		return nil, false
	}
	return doc, true
}
