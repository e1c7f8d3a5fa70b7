package mock

import (
	"context"

	"github.com/fwojciec/sitesearch"
)

var _ sitesearch.Connector = (*Connector)(nil)

// Connector is a mock implementation of sitesearch.Connector.
type Connector struct {
	SearchFn func(ctx context.Context, q sitesearch.Query) (*sitesearch.ResultSet, error)
}

func (c *Connector) Search(ctx context.Context, q sitesearch.Query) (*sitesearch.ResultSet, error) {
	return c.SearchFn(ctx, q)
}
