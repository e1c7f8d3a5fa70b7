package sitesearch

import (
	"context"
	"time"
)

// QueryLogEntry records the outcome of one settled search.
type QueryLogEntry struct {
	ID         string    `json:"id"`
	SessionID  string    `json:"sessionId"`
	Term       string    `json:"term"`
	Page       int       `json:"page"`
	Status     Status    `json:"status"`
	Results    int       `json:"results"`
	TotalPages int       `json:"totalPages"`
	CreatedAt  time.Time `json:"createdAt"`
}

// Validate returns an error if the entry contains invalid fields.
func (e *QueryLogEntry) Validate() error {
	if e.Term == "" {
		return Errorf(EINVALID, "query log term required")
	}
	if !e.Status.Settled() {
		return Errorf(EINVALID, "query log status must be settled, got %s", e.Status)
	}
	return nil
}

// QueryLog records searches so recent queries can be listed.
type QueryLog interface {
	// RecordQuery stores the entry, assigning its ID and CreatedAt.
	RecordQuery(ctx context.Context, entry *QueryLogEntry) error

	// FindQueries retrieves entries matching the filter, newest first.
	FindQueries(ctx context.Context, filter QueryLogFilter) ([]*QueryLogEntry, error)
}

// QueryLogFilter represents a filter for FindQueries.
type QueryLogFilter struct {
	Term      *string `json:"term"`
	SessionID *string `json:"sessionId"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}
