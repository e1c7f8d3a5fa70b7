package sitesearch

import (
	"fmt"
	"strings"
)

// FormatPagingInfo describes which results of a settled search are shown,
// e.g. "Showing 11 - 20 out of 42 for: kafka". Returns "" unless the state
// holds results.
func FormatPagingInfo(state SessionState, perPage int) string {
	if state.Status != StatusSuccess || len(state.Results) == 0 {
		return ""
	}
	if perPage <= 0 {
		perPage = len(state.Results)
	}
	page := state.Page
	if page < 1 {
		page = 1
	}

	start := (page-1)*perPage + 1
	end := start + len(state.Results) - 1
	total := state.TotalResults
	if total < end {
		total = end
	}
	return fmt.Sprintf("Showing %d - %d out of %d for: %s", start, end, total, state.Term)
}

// FormatResults formats display results as text blocks for a terminal.
// Linked results show their URL under the title and tagged results show
// their source tag in upper case, and matched terms follow the body.
// Results are separated by blank lines.
func FormatResults(results []DisplayResult) string {
	if len(results) == 0 {
		return ""
	}

	parts := make([]string, 0, len(results))
	for _, r := range results {
		var b strings.Builder
		b.WriteString("## " + r.Title + "\n")
		if r.Linked {
			b.WriteString(r.URL + "\n")
		}
		if r.SourceTag != "" {
			b.WriteString("[" + strings.ToUpper(r.SourceTag) + "]\n")
		}
		if r.BodyHTML != "" {
			b.WriteString(r.BodyHTML + "\n")
		}
		if len(r.Matches) > 0 {
			b.WriteString("Matches: " + strings.Join(r.Matches, ", ") + "\n")
		}
		parts = append(parts, strings.TrimRight(b.String(), "\n"))
	}

	return strings.Join(parts, "\n\n")
}
