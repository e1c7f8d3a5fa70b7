package mock

import (
	"context"

	"github.com/fwojciec/sitesearch"
)

var _ sitesearch.QueryLog = (*QueryLog)(nil)

// QueryLog is a mock implementation of sitesearch.QueryLog.
type QueryLog struct {
	RecordQueryFn func(ctx context.Context, entry *sitesearch.QueryLogEntry) error
	FindQueriesFn func(ctx context.Context, filter sitesearch.QueryLogFilter) ([]*sitesearch.QueryLogEntry, error)
}

func (l *QueryLog) RecordQuery(ctx context.Context, entry *sitesearch.QueryLogEntry) error {
	return l.RecordQueryFn(ctx, entry)
}

func (l *QueryLog) FindQueries(ctx context.Context, filter sitesearch.QueryLogFilter) ([]*sitesearch.QueryLogEntry, error) {
	return l.FindQueriesFn(ctx, filter)
}
