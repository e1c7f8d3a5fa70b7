package mock_test

import (
	"context"
	"testing"

	"github.com/fwojciec/sitesearch"
	"github.com/fwojciec/sitesearch/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConnector_ImplementsInterface(t *testing.T) {
	t.Parallel()

	// Verify mock can be used where Connector is expected
	var _ sitesearch.Connector = &mock.Connector{}
}

func TestConnector_Search(t *testing.T) {
	t.Parallel()

	t.Run("delegates to SearchFn", func(t *testing.T) {
		t.Parallel()

		var calledWith sitesearch.Query
		c := &mock.Connector{
			SearchFn: func(_ context.Context, q sitesearch.Query) (*sitesearch.ResultSet, error) {
				calledWith = q
				return &sitesearch.ResultSet{TotalPages: 3}, nil
			},
		}

		rs, err := c.Search(context.Background(), sitesearch.Query{Term: "apm", Page: 2})

		require.NoError(t, err)
		assert.Equal(t, 3, rs.TotalPages)
		assert.Equal(t, "apm", calledWith.Term)
		assert.Equal(t, 2, calledWith.Page)
	})
}
