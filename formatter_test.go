package sitesearch_test

import (
	"testing"

	"github.com/fwojciec/sitesearch"
	"github.com/stretchr/testify/assert"
)

func TestFormatResults(t *testing.T) {
	t.Parallel()

	t.Run("formats linked result with source tag", func(t *testing.T) {
		t.Parallel()

		results := []sitesearch.DisplayResult{
			{
				Title:     "Install the agent",
				BodyHTML:  "Run the installer.",
				URL:       "https://docs.newrelic.com/install",
				SourceTag: "docs",
				Linked:    true,
			},
		}

		out := sitesearch.FormatResults(results)

		expected := "## Install the agent\nhttps://docs.newrelic.com/install\n[DOCS]\nRun the installer."
		assert.Equal(t, expected, out)
	})

	t.Run("omits URL and tag for title-only result", func(t *testing.T) {
		t.Parallel()

		results := []sitesearch.DisplayResult{{Title: "Orphan", BodyHTML: "No link."}}

		out := sitesearch.FormatResults(results)

		assert.Equal(t, "## Orphan\nNo link.", out)
	})

	t.Run("separates results with blank line", func(t *testing.T) {
		t.Parallel()

		results := []sitesearch.DisplayResult{{Title: "First"}, {Title: "Second"}}

		out := sitesearch.FormatResults(results)

		assert.Equal(t, "## First\n\n## Second", out)
	})

	t.Run("lists matched terms after the body", func(t *testing.T) {
		t.Parallel()

		results := []sitesearch.DisplayResult{{Title: "Kafka setup", BodyHTML: "Monitor Kafka brokers", Matches: []string{"Kafka", "brokers"}}}

		out := sitesearch.FormatResults(results)

		assert.Equal(t, "## Kafka setup\nMonitor Kafka brokers\nMatches: Kafka, brokers", out)
	})

	t.Run("returns empty string for no results", func(t *testing.T) {
		t.Parallel()

		assert.Empty(t, sitesearch.FormatResults(nil))
	})
}

func TestFormatPagingInfo(t *testing.T) {
	t.Parallel()

	t.Run("describes second page", func(t *testing.T) {
		t.Parallel()

		state := sitesearch.SessionState{
			Term:         "kafka",
			Page:         2,
			Status:       sitesearch.StatusSuccess,
			Results:      make([]sitesearch.SanitizedResult, 10),
			TotalResults: 42,
		}

		assert.Equal(t, "Showing 11 - 20 out of 42 for: kafka", sitesearch.FormatPagingInfo(state, 10))
	})

	t.Run("describes short last page", func(t *testing.T) {
		t.Parallel()

		state := sitesearch.SessionState{
			Term:         "kafka",
			Page:         5,
			Status:       sitesearch.StatusSuccess,
			Results:      make([]sitesearch.SanitizedResult, 2),
			TotalResults: 42,
		}

		assert.Equal(t, "Showing 41 - 42 out of 42 for: kafka", sitesearch.FormatPagingInfo(state, 10))
	})

	t.Run("returns empty string unless results are shown", func(t *testing.T) {
		t.Parallel()

		for _, status := range []sitesearch.Status{
			sitesearch.StatusIdle,
			sitesearch.StatusLoading,
			sitesearch.StatusEmpty,
			sitesearch.StatusError,
		} {
			state := sitesearch.SessionState{Term: "kafka", Page: 1, Status: status}
			assert.Empty(t, sitesearch.FormatPagingInfo(state, 10), status.String())
		}
	})
}
