package goquery_test

import (
	"testing"

	"github.com/fwojciec/sitesearch"
	"github.com/fwojciec/sitesearch/goquery"
	"github.com/stretchr/testify/assert"
)

func TestHighlighter_Highlights(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		fragment string
		want     []string
	}{
		{name: "single span", fragment: "Install the <em>Go</em> agent", want: []string{"Go"}},
		{name: "multiple spans in order", fragment: "<em>APM</em> and <em> logs </em>", want: []string{"APM", "logs"}},
		{name: "skips empty spans", fragment: "a <em> </em> b", want: nil},
		{name: "no spans", fragment: "plain text", want: nil},
		{name: "escaped markup is not a span", fragment: "&lt;em&gt;x&lt;/em&gt;", want: nil},
		{name: "empty", fragment: "", want: nil},
	}

	h := goquery.NewHighlighter()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, h.Highlights(tt.fragment))
		})
	}
}

func TestHighlighter_PlainText(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		fragment string
		want     string
	}{
		{name: "strips highlight markup", fragment: "Install the <em>Go</em> agent", want: "Install the Go agent"},
		{name: "decodes entities", fragment: "a &amp; b &lt;c&gt;", want: "a & b <c>"},
		{name: "collapses whitespace", fragment: "one\n\n  two\tthree", want: "one two three"},
		{name: "empty", fragment: "  ", want: ""},
	}

	h := goquery.NewHighlighter()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, h.PlainText(tt.fragment))
		})
	}
}

func TestHighlighter_EscapedField(t *testing.T) {
	t.Parallel()

	// A field with no snippet is escaped raw text; reading it back yields
	// the original characters and no highlights.
	r := sitesearch.RawResult{
		"title": sitesearch.Wrapped{Raw: sitesearch.Text{"<b>bold</b> & co"}},
	}
	html, ok := sitesearch.ExtractField(r, "title")
	assert.True(t, ok)

	h := goquery.NewHighlighter()
	assert.Empty(t, h.Highlights(html))
	assert.Equal(t, "<b>bold</b> & co", h.PlainText(html))
}
