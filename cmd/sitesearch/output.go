package main

import (
	"fmt"
	"io"
	"net/url"

	"github.com/fwojciec/sitesearch"
)

// unavailableMessage is the only failure detail shown to users; the cause
// goes to the log.
const unavailableMessage = "Search is temporarily unavailable. Please try again later."

// searchURL returns the origin carrying term and page as query parameters.
func searchURL(origin, term string, page int) string {
	u, err := url.Parse(origin)
	if err != nil {
		return origin
	}
	if u.Path == "" {
		u.Path = "/"
	}
	q := u.Query()
	if term != "" {
		q.Set(sitesearch.ParamQuery, term)
	}
	if page > 1 {
		q.Set(sitesearch.ParamPage, fmt.Sprint(page))
	}
	u.RawQuery = q.Encode()
	return u.String()
}

// printState writes a settled session state. share is the URL that
// restores the search, or nil to omit it.
func (d *Dependencies) printState(w io.Writer, state sitesearch.SessionState, share *url.URL, plain bool) {
	switch state.Status {
	case sitesearch.StatusError:
		fmt.Fprintln(w, unavailableMessage)
	case sitesearch.StatusEmpty:
		fmt.Fprintf(w, "No results found for: %s\n", state.Term)
	case sitesearch.StatusSuccess:
		fmt.Fprintln(w, sitesearch.FormatPagingInfo(state, d.Config.PerPage))
		fmt.Fprintln(w)
		fmt.Fprintln(w, sitesearch.FormatResults(d.display(state.Results, plain)))
		if state.TotalPages > 1 {
			fmt.Fprintf(w, "\nPage %d of %d\n", state.Page, state.TotalPages)
		}
		if share != nil {
			fmt.Fprintf(w, "\nShare: %s\n", share)
		}
	}
}

// display renders results and converts their sanitized HTML for the
// terminal. Plain output loses highlighting, so it lists the matched terms
// instead. Results without a title are omitted.
func (d *Dependencies) display(results []sitesearch.SanitizedResult, plain bool) []sitesearch.DisplayResult {
	fields := d.Sanitizer.Fields()
	out := make([]sitesearch.DisplayResult, 0, len(results))
	for _, r := range results {
		dr, ok := sitesearch.Render(r, fields)
		if !ok {
			continue
		}
		if plain {
			dr.Matches = uniq(d.Highlighter.Highlights(dr.Title + " " + dr.BodyHTML))
		}
		dr.Title = d.toText(dr.Title, plain)
		dr.BodyHTML = d.toText(dr.BodyHTML, plain)
		out = append(out, dr)
	}
	return out
}

func (d *Dependencies) toText(html string, plain bool) string {
	if plain {
		return d.Highlighter.PlainText(html)
	}
	md, err := d.Converter.Convert(html)
	if err != nil {
		d.Logger.Warn("markdown conversion failed", "err", err)
		return d.Highlighter.PlainText(html)
	}
	return md
}

// uniq drops repeated terms, keeping first occurrences in order.
func uniq(terms []string) []string {
	seen := make(map[string]bool, len(terms))
	out := terms[:0]
	for _, t := range terms {
		if seen[t] {
			continue
		}
		seen[t] = true
		out = append(out, t)
	}
	return out
}
