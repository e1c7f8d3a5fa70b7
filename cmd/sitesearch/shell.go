package main

import (
	"bufio"
	"fmt"
	"strings"
	"sync"

	"github.com/fwojciec/sitesearch"
	"github.com/fwojciec/sitesearch/history"
	"github.com/fwojciec/sitesearch/search"
)

// Shell commands. Any other line is a search term; an empty line clears
// the search.
const (
	shellNext    = ":next"
	shellPrev    = ":prev"
	shellBack    = ":back"
	shellForward = ":forward"
	shellQuit    = ":quit"
)

// Run executes the shell command. Lines typed faster than the debounce
// window collapse into one search, and :back and :forward replay earlier
// searches from history.
func (c *ShellCmd) Run(deps *Dependencies) error {
	location, err := history.New(searchURL(deps.Config.Origin, "", 1))
	if err != nil {
		return err
	}

	session := deps.NewSession()
	defer session.Close()

	binding := search.NewSync(session, location)
	binding.Mount()
	defer binding.Unmount()

	// Subscribed after the binding so the URL is written before printing.
	var mu sync.Mutex
	session.Subscribe(func(state sitesearch.SessionState) {
		if !state.Status.Settled() {
			return
		}
		mu.Lock()
		defer mu.Unlock()
		deps.printState(deps.Stdout, state, location.URL(), c.Plain)
		fmt.Fprintln(deps.Stdout)
	})

	scanner := bufio.NewScanner(deps.Stdin)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		switch line {
		case shellQuit:
			session.Wait()
			return nil
		case shellNext:
			session.ChangePage(session.State().Page + 1)
		case shellPrev:
			if page := session.State().Page; page > 1 {
				session.ChangePage(page - 1)
			}
		case shellBack:
			location.Back()
		case shellForward:
			location.Forward()
		default:
			session.Submit(line, 1)
		}
	}
	session.Wait()

	return scanner.Err()
}
