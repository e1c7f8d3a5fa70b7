package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/sitesearch"
)

// Ensure LoggingQueryLog implements sitesearch.QueryLog.
var _ sitesearch.QueryLog = (*LoggingQueryLog)(nil)

// LoggingQueryLog wraps a QueryLog with debug logging.
type LoggingQueryLog struct {
	next   sitesearch.QueryLog
	logger *slog.Logger
}

// NewLoggingQueryLog creates a new LoggingQueryLog.
func NewLoggingQueryLog(next sitesearch.QueryLog, logger *slog.Logger) *LoggingQueryLog {
	return &LoggingQueryLog{next: next, logger: logger}
}

// RecordQuery delegates to the wrapped log.
func (l *LoggingQueryLog) RecordQuery(ctx context.Context, entry *sitesearch.QueryLogEntry) (err error) {
	defer func(begin time.Time) {
		l.logger.Debug("record query",
			"term", entry.Term,
			"status", entry.Status.String(),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return l.next.RecordQuery(ctx, entry)
}

// FindQueries delegates to the wrapped log.
func (l *LoggingQueryLog) FindQueries(ctx context.Context, filter sitesearch.QueryLogFilter) (entries []*sitesearch.QueryLogEntry, err error) {
	defer func(begin time.Time) {
		l.logger.Debug("find queries",
			"count", len(entries),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return l.next.FindQueries(ctx, filter)
}
