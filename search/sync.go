package search

import (
	"net/url"
	"strconv"
	"sync"

	"github.com/fwojciec/sitesearch"
)

// Sync binds a Session to the navigable URL. The URL is the source of
// truth: on mount and after external navigation the session is derived
// from it, and settled searches are written back with history-preserving
// updates so the back button steps through earlier searches.
type Sync struct {
	session  *Session
	location sitesearch.Location

	mu      sync.Mutex
	cancels []func()
}

// NewSync returns a Sync for session and location. Call Mount to start it.
func NewSync(session *Session, location sitesearch.Location) *Sync {
	return &Sync{session: session, location: location}
}

// Mount submits the term and page found in the URL and starts keeping the
// session and the URL in step.
func (y *Sync) Mount() {
	y.mu.Lock()
	y.cancels = append(y.cancels,
		y.session.Subscribe(y.onState),
		y.location.Subscribe(y.onNavigate),
	)
	y.mu.Unlock()

	y.onNavigate(y.location.Query())
}

// Unmount stops reacting to session and URL changes.
func (y *Sync) Unmount() {
	y.mu.Lock()
	cancels := y.cancels
	y.cancels = nil
	y.mu.Unlock()

	for _, cancel := range cancels {
		cancel()
	}
}

func (y *Sync) onNavigate(q url.Values) {
	term, page := ParseQueryParams(q)
	y.session.Submit(term, page)
}

// onState writes settled and cleared states to the URL. Currency is
// checked inside the update so a write superseded while it waited for the
// location cannot land after a newer one.
func (y *Sync) onState(state sitesearch.SessionState) {
	switch state.Status {
	case sitesearch.StatusSuccess, sitesearch.StatusEmpty:
		y.location.UpdateQuery(func(q url.Values) {
			if !y.session.Current(state) {
				return
			}
			q.Set(sitesearch.ParamQuery, state.Term)
			if state.Page > 1 {
				q.Set(sitesearch.ParamPage, strconv.Itoa(state.Page))
			} else {
				q.Del(sitesearch.ParamPage)
			}
		})
	case sitesearch.StatusIdle:
		y.location.UpdateQuery(func(q url.Values) {
			if !y.session.Current(state) {
				return
			}
			q.Del(sitesearch.ParamQuery)
			q.Del(sitesearch.ParamPage)
		})
	}
}

// ParseQueryParams returns the search term and page carried by q.
// A missing or invalid page is 1.
func ParseQueryParams(q url.Values) (term string, page int) {
	term = q.Get(sitesearch.ParamQuery)
	page, err := strconv.Atoi(q.Get(sitesearch.ParamPage))
	if err != nil || page < 1 {
		page = 1
	}
	return term, page
}
