package mock

import (
	"net/url"

	"github.com/fwojciec/sitesearch"
)

var _ sitesearch.Location = (*Location)(nil)

// Location is a mock implementation of sitesearch.Location.
type Location struct {
	QueryFn       func() url.Values
	UpdateQueryFn func(fn func(q url.Values))
	SubscribeFn   func(fn func(q url.Values)) func()
}

func (l *Location) Query() url.Values {
	return l.QueryFn()
}

func (l *Location) UpdateQuery(fn func(q url.Values)) {
	l.UpdateQueryFn(fn)
}

func (l *Location) Subscribe(fn func(q url.Values)) func() {
	return l.SubscribeFn(fn)
}
