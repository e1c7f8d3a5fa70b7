package sitesearch

import (
	"net/url"
	"strings"
)

// SanitizeURL resolves rawURL against origin and returns the result if it
// is a well-formed http or https URL. It returns nil for empty input,
// unparseable input, any other scheme, or a URL without a host. Result
// URLs from the search index are expected to be malformed at times, so a
// nil result means "no link" rather than an error.
func SanitizeURL(rawURL string, origin *url.URL) *url.URL {
	rawURL = strings.TrimSpace(rawURL)
	if rawURL == "" {
		return nil
	}

	ref, err := url.Parse(rawURL)
	if err != nil {
		return nil
	}

	u := ref
	if origin != nil {
		u = origin.ResolveReference(ref)
	}

	switch strings.ToLower(u.Scheme) {
	case "http", "https":
	default:
		return nil
	}
	if u.Host == "" {
		return nil
	}
	return u
}
