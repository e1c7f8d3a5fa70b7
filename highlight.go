package sitesearch

// Highlighter inspects sanitized HTML fragments such as snippets.
type Highlighter interface {
	// Highlights returns the text of each highlighted span, in order.
	Highlights(fragment string) []string

	// PlainText returns the text content of the fragment without markup.
	PlainText(fragment string) string
}
