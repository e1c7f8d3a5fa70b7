// Package htmltomarkdown renders sanitized snippet HTML as Markdown for
// terminal output.
package htmltomarkdown

import (
	"strings"

	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/base"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/commonmark"
	"github.com/fwojciec/sitesearch"
)

// Ensure Converter implements sitesearch.Converter at compile time.
var _ sitesearch.Converter = (*Converter)(nil)

// Converter wraps html-to-markdown to convert snippet HTML to Markdown.
type Converter struct {
	conv *converter.Converter
}

// NewConverter creates a new Converter.
func NewConverter() *Converter {
	conv := converter.NewConverter(
		converter.WithPlugins(
			base.NewBasePlugin(),
			commonmark.NewCommonmarkPlugin(),
		),
	)
	return &Converter{conv: conv}
}

// Convert transforms an HTML fragment into Markdown. Highlight spans become
// emphasis and entities are decoded. An empty fragment converts to "".
func (c *Converter) Convert(html string) (string, error) {
	if strings.TrimSpace(html) == "" {
		return "", nil
	}

	result, err := c.conv.ConvertString(html)
	if err != nil {
		return "", sitesearch.Errorf(sitesearch.EINTERNAL, "convert snippet: %v", err)
	}

	return strings.TrimSpace(result), nil
}
