package sitesearch

import "context"

// MatchType controls how a filter's values combine.
type MatchType string

// MatchType constants for Filter.
const (
	MatchAny MatchType = "any"
	MatchAll MatchType = "all"
)

// SnippetSpec requests a highlighted snippet for a field.
type SnippetSpec struct {
	// Size is the maximum snippet length in characters.
	Size int `json:"size"`

	// Fallback asks the API to return leading text when nothing matched.
	Fallback bool `json:"fallback"`
}

// FieldSpec selects which representations of a field the API returns.
type FieldSpec struct {
	Snippet *SnippetSpec `json:"snippet,omitempty"`
	Raw     bool         `json:"raw,omitempty"`
}

// Filter restricts results to those whose field matches the values.
// Values prefixed with "!" exclude instead of include.
type Filter struct {
	Field  string    `json:"field"`
	Values []string  `json:"values"`
	Match  MatchType `json:"match"`
}

// Query is one request to the search API.
type Query struct {
	Term         string               `json:"term"`
	Page         int                  `json:"page"`
	PerPage      int                  `json:"perPage"`
	ResultFields map[string]FieldSpec `json:"resultFields"`
	Filters      []Filter             `json:"filters"`
}

// Validate returns an error if the query cannot be sent.
func (q *Query) Validate() error {
	if q.Term == "" {
		return Errorf(EINVALID, "query term required")
	}
	if q.Page < 1 {
		return Errorf(EINVALID, "query page must be at least 1")
	}
	for _, f := range q.Filters {
		if f.Field == "" {
			return Errorf(EINVALID, "filter field required")
		}
		if f.Match != MatchAny && f.Match != MatchAll {
			return Errorf(EINVALID, "filter %q has unknown match type %q", f.Field, f.Match)
		}
	}
	return nil
}

// ResultSet is one page of raw results returned by the search API.
type ResultSet struct {
	Results      []RawResult
	TotalPages   int
	TotalResults int
}

// Connector sends queries to an external search API.
type Connector interface {
	// Search returns one page of raw results for the query.
	// Failures are reported with code ECONNECTOR.
	Search(ctx context.Context, q Query) (*ResultSet, error)
}
