package sitesearch

import "net/url"

// Query parameter keys owned by the search widget.
const (
	ParamQuery = "q"
	ParamPage  = "page"
)

// Location is the navigable URL shared with the rest of the application.
type Location interface {
	// Query returns a copy of the current query parameters.
	Query() url.Values

	// UpdateQuery applies fn to a copy of the current query parameters and
	// records the result as a new history entry without a full navigation.
	// The read-modify-write is atomic, so keys fn leaves alone are preserved.
	// Nothing is recorded when fn leaves the parameters unchanged.
	UpdateQuery(fn func(q url.Values))

	// Subscribe registers fn to be called with the new query parameters
	// after navigation that did not come from UpdateQuery, such as
	// following a link or moving back and forward through history.
	Subscribe(fn func(q url.Values)) (cancel func())
}
