// Package slog provides logging decorators for sitesearch services.
package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/sitesearch"
)

// Ensure LoggingConnector implements sitesearch.Connector.
var _ sitesearch.Connector = (*LoggingConnector)(nil)

// LoggingConnector wraps a Connector with request logging.
type LoggingConnector struct {
	next   sitesearch.Connector
	logger *slog.Logger
}

// NewLoggingConnector creates a new LoggingConnector.
func NewLoggingConnector(next sitesearch.Connector, logger *slog.Logger) *LoggingConnector {
	return &LoggingConnector{next: next, logger: logger}
}

// Search delegates to the wrapped connector and logs the request.
func (c *LoggingConnector) Search(ctx context.Context, q sitesearch.Query) (rs *sitesearch.ResultSet, err error) {
	defer func(begin time.Time) {
		count := 0
		if rs != nil {
			count = len(rs.Results)
		}
		c.logger.Info("search",
			"term", q.Term,
			"page", q.Page,
			"count", count,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return c.next.Search(ctx, q)
}
