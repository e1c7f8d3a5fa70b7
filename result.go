package sitesearch

import (
	"net/url"
)

// Fields names the result fields with a fixed role in display.
type Fields struct {
	Title string `json:"title" toml:"title"`
	URL   string `json:"url" toml:"url"`
	Body  string `json:"body" toml:"body"`
}

// DefaultFields are the field names used by the documentation search index.
var DefaultFields = Fields{
	Title: "title",
	URL:   "url",
	Body:  "body",
}

// SanitizedResult is a raw result after extraction and sanitization.
// Every field value is render-safe and URL is nil when the result has no
// usable link.
type SanitizedResult struct {
	Fields map[string]SanitizedField
	URL    *url.URL
	Title  string
}

// Field returns the sanitized value of the named field, or "" if absent.
func (r *SanitizedResult) Field(name string) string {
	return r.Fields[name].Value
}

// Sanitizer turns raw results into sanitized results.
type Sanitizer struct {
	origin *url.URL
	fields Fields
}

// NewSanitizer returns a Sanitizer that resolves result URLs against origin.
func NewSanitizer(origin string, fields Fields) (*Sanitizer, error) {
	u, err := url.Parse(origin)
	if err != nil {
		return nil, Errorf(EINVALID, "invalid origin %q: %v", origin, err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, Errorf(EINVALID, "origin must be an absolute http(s) URL: %q", origin)
	}
	return &Sanitizer{origin: u, fields: fields}, nil
}

// Fields returns the field roles the sanitizer was configured with.
func (s *Sanitizer) Fields() Fields {
	return s.fields
}

// Sanitize extracts every wrapped field of r and validates its URL.
// Returns EMALFORMED if r has no wrapped field at all. An unusable URL is
// not an error here; the result's URL is simply nil.
func (s *Sanitizer) Sanitize(r RawResult) (SanitizedResult, error) {
	fields := ExtractAllFields(r)
	if len(fields) == 0 {
		return SanitizedResult{}, Errorf(EMALFORMED, "result has no wrapped fields")
	}

	var u *url.URL
	if raw, ok := r.Raw(s.fields.URL); ok && len(raw) > 0 {
		u = SanitizeURL(raw[0], s.origin)
	}

	return SanitizedResult{
		Fields: fields,
		URL:    u,
		Title:  fields[s.fields.Title].Value,
	}, nil
}

// SanitizeAll sanitizes every result. Malformed results are skipped and
// reported with EMALFORMED; results whose raw URL was rejected are kept
// without a link and reported with EINVALIDURL. Neither is fatal.
func (s *Sanitizer) SanitizeAll(raws []RawResult) ([]SanitizedResult, []error) {
	results := make([]SanitizedResult, 0, len(raws))
	var problems []error
	for i, r := range raws {
		res, err := s.Sanitize(r)
		if err != nil {
			problems = append(problems, Errorf(EMALFORMED, "result %d skipped: %s", i, ErrorMessage(err)))
			continue
		}
		if raw, ok := r.Raw(s.fields.URL); ok && len(raw) > 0 && res.URL == nil {
			problems = append(problems, Errorf(EINVALIDURL, "result %d has unusable URL %q", i, raw[0]))
		}
		results = append(results, res)
	}
	return results, problems
}
