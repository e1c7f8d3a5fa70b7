package main

import (
	"github.com/fwojciec/sitesearch"
	"github.com/fwojciec/sitesearch/history"
	"github.com/fwojciec/sitesearch/search"
)

// Run executes the search command. The term and page travel through the
// same URL binding a page would use, so the printed share link restores
// the search.
func (c *SearchCmd) Run(deps *Dependencies) error {
	location, err := history.New(searchURL(deps.Config.Origin, c.Term, c.Page))
	if err != nil {
		return err
	}

	session := deps.NewSession(search.WithDebounce(0))
	defer session.Close()

	binding := search.NewSync(session, location)
	binding.Mount()
	defer binding.Unmount()
	session.Wait()

	state := session.State()
	switch state.Status {
	case sitesearch.StatusIdle:
		return sitesearch.Errorf(sitesearch.EINVALID, "search term required")
	case sitesearch.StatusError:
		deps.printState(deps.Stderr, state, nil, c.Plain)
		return sitesearch.Errorf(sitesearch.ECONNECTOR, "search failed")
	}

	deps.printState(deps.Stdout, state, location.URL(), c.Plain)
	return nil
}
