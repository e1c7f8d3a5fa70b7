package main

import (
	"fmt"
	"time"

	"github.com/fwojciec/sitesearch"
)

// Run executes the recent command.
func (c *RecentCmd) Run(deps *Dependencies) error {
	filter := sitesearch.QueryLogFilter{Limit: c.Limit}
	if c.Term != "" {
		filter.Term = &c.Term
	}

	entries, err := deps.QueryLog.FindQueries(deps.Ctx, filter)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", sitesearch.ErrorMessage(err))
		return err
	}

	if len(entries) == 0 {
		fmt.Fprintln(deps.Stdout, "No recent searches. Use 'sitesearch search' to run one.")
		return nil
	}

	for _, e := range entries {
		fmt.Fprintf(deps.Stdout, "%s  %-7s  page %d  %d results  %s\n",
			e.CreatedAt.Local().Format(time.DateTime), e.Status, e.Page, e.Results, e.Term)
	}

	return nil
}
