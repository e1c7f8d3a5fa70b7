package sitesearch

// Converter converts HTML to Markdown.
type Converter interface {
	// Convert transforms a sanitized HTML fragment into Markdown.
	Convert(html string) (string, error)
}
