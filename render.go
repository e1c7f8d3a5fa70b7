package sitesearch

import "strings"

// Source tag derivation strips everything from the site suffix onwards and
// the scheme prefix, e.g. https://developer.newrelic.com => developer.
const (
	sourceTagSuffix = ".newrelic"
	sourceTagPrefix = "https://"
)

// DisplayResult is a result ready for display. Title and BodyHTML are
// HTML fragments that were sanitized before rendering; they are the only
// values that may be inserted as markup.
type DisplayResult struct {
	Title     string `json:"title"`
	BodyHTML  string `json:"bodyHtml"`
	URL       string `json:"url,omitempty"`
	SourceTag string `json:"sourceTag,omitempty"`

	// Linked reports whether the title should link to URL.
	Linked bool `json:"linked"`

	// Matches lists the highlighted terms, for output that cannot show
	// highlighting. Render leaves it empty.
	Matches []string `json:"matches,omitempty"`
}

// Render derives the display form of a sanitized result. The bool result
// is false when the result has no title and must be omitted from display.
// Render performs no escaping.
func Render(r SanitizedResult, fields Fields) (DisplayResult, bool) {
	title := r.Fields[fields.Title].Value
	if title == "" {
		return DisplayResult{}, false
	}

	d := DisplayResult{
		Title:    title,
		BodyHTML: r.Fields[fields.Body].Value,
	}
	if r.URL != nil {
		d.URL = r.URL.String()
		d.Linked = true
		d.SourceTag = SourceTag(d.URL)
	}
	return d, true
}

// SourceTag derives a short site label from a result URL: the host label
// before ".newrelic". Only https URLs get a tag; "http://" and other
// schemes return "", as does any URL without the expected shape, in which
// case the tag is omitted.
func SourceTag(rawURL string) string {
	i := strings.Index(rawURL, sourceTagSuffix)
	if i < 0 {
		return ""
	}
	tag, ok := strings.CutPrefix(rawURL[:i], sourceTagPrefix)
	if !ok || tag == "" || strings.ContainsAny(tag, "/:") {
		return ""
	}
	return tag
}
