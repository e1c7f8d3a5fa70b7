// Package swiftype provides an implementation of sitesearch.Connector
// backed by the Swiftype Site Search API.
package swiftype

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/fwojciec/sitesearch"
	"golang.org/x/sync/singleflight"
	"golang.org/x/time/rate"
)

// DefaultEndpoint is the public Site Search API search endpoint.
const DefaultEndpoint = "https://search-api.swiftype.com/api/v1/public/engines/search.json"

// DefaultDocumentType is the document type indexed by the site crawler.
const DefaultDocumentType = "page"

// DefaultTimeout is the default timeout for search requests.
const DefaultTimeout = 10 * time.Second

// maxErrorBody caps how much of an error response is read for messages.
const maxErrorBody = 1 << 10

// Ensure Connector implements sitesearch.Connector at compile time.
var _ sitesearch.Connector = (*Connector)(nil)

// Connector sends queries to a Swiftype engine and adapts its records
// into raw results. It is safe for concurrent use; identical requests in
// flight at the same time share a single HTTP call.
type Connector struct {
	client       *http.Client
	endpoint     string
	engineKey    string
	documentType string
	timeout      time.Duration
	limiter      *rate.Limiter
	group        singleflight.Group
}

// Option configures a Connector.
type Option func(*Connector)

// WithEndpoint overrides the search endpoint. Defaults to DefaultEndpoint.
func WithEndpoint(endpoint string) Option {
	return func(c *Connector) {
		c.endpoint = endpoint
	}
}

// WithDocumentType sets the document type to search.
// Defaults to DefaultDocumentType.
func WithDocumentType(documentType string) Option {
	return func(c *Connector) {
		c.documentType = documentType
	}
}

// WithTimeout sets the timeout for search requests.
// Defaults to DefaultTimeout (10s) if not specified.
func WithTimeout(d time.Duration) Option {
	return func(c *Connector) {
		c.timeout = d
	}
}

// WithRateLimit limits outbound requests to rps per second.
// A non-positive rps disables limiting, which is the default.
func WithRateLimit(rps float64) Option {
	return func(c *Connector) {
		if rps <= 0 {
			c.limiter = nil
			return
		}
		c.limiter = rate.NewLimiter(rate.Limit(rps), 1)
	}
}

// NewConnector creates a Connector for the engine with the given key.
func NewConnector(engineKey string, opts ...Option) *Connector {
	c := &Connector{
		endpoint:     DefaultEndpoint,
		engineKey:    engineKey,
		documentType: DefaultDocumentType,
		timeout:      DefaultTimeout,
	}
	for _, opt := range opts {
		opt(c)
	}

	c.client = &http.Client{
		Timeout: c.timeout,
	}

	return c
}

// Search sends the query and returns one page of raw results.
func (c *Connector) Search(ctx context.Context, q sitesearch.Query) (*sitesearch.ResultSet, error) {
	if err := q.Validate(); err != nil {
		return nil, err
	}

	body, err := json.Marshal(c.newRequest(q))
	if err != nil {
		return nil, fmt.Errorf("encode search request: %w", err)
	}

	// The encoded body is deterministic (maps marshal with sorted keys),
	// so it identifies the request. The first caller's context governs
	// the shared call.
	v, err, _ := c.group.Do(string(body), func() (any, error) {
		return c.do(ctx, body)
	})
	if err != nil {
		return nil, err
	}

	rs, _ := v.(*sitesearch.ResultSet)
	return cloneResultSet(rs), nil
}

func (c *Connector) do(ctx context.Context, body []byte) (*sitesearch.ResultSet, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, sitesearch.Errorf(sitesearch.ECONNECTOR, "rate limit wait: %v", err)
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, sitesearch.Errorf(sitesearch.ECONNECTOR, "build search request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, sitesearch.Errorf(sitesearch.ECONNECTOR, "search request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return nil, sitesearch.Errorf(sitesearch.ECONNECTOR, "search API returned HTTP %d: %s",
			resp.StatusCode, strings.TrimSpace(string(msg)))
	}

	var sr searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&sr); err != nil {
		return nil, sitesearch.Errorf(sitesearch.ECONNECTOR, "invalid search response: %v", err)
	}

	return c.adaptResponse(&sr)
}

// searchRequest is the Site Search API request body.
type searchRequest struct {
	EngineKey       string                                `json:"engine_key"`
	Q               string                                `json:"q"`
	Page            int                                   `json:"page"`
	PerPage         int                                   `json:"per_page,omitempty"`
	DocumentTypes   []string                              `json:"document_types"`
	FetchFields     map[string][]string                   `json:"fetch_fields,omitempty"`
	HighlightFields map[string]map[string]highlightField  `json:"highlight_fields,omitempty"`
	Filters         map[string]map[string]filterCondition `json:"filters,omitempty"`
}

type highlightField struct {
	Size     int  `json:"size,omitempty"`
	Fallback bool `json:"fallback"`
}

type filterCondition struct {
	Type   string   `json:"type"`
	Values []string `json:"values"`
}

func (c *Connector) newRequest(q sitesearch.Query) searchRequest {
	req := searchRequest{
		EngineKey:     c.engineKey,
		Q:             q.Term,
		Page:          q.Page,
		PerPage:       q.PerPage,
		DocumentTypes: []string{c.documentType},
	}

	if len(q.ResultFields) > 0 {
		names := make([]string, 0, len(q.ResultFields))
		highlights := make(map[string]highlightField)
		for name, spec := range q.ResultFields {
			names = append(names, name)
			if spec.Snippet != nil {
				highlights[name] = highlightField{Size: spec.Snippet.Size, Fallback: spec.Snippet.Fallback}
			}
		}
		sort.Strings(names)
		req.FetchFields = map[string][]string{c.documentType: names}
		if len(highlights) > 0 {
			req.HighlightFields = map[string]map[string]highlightField{c.documentType: highlights}
		}
	}

	if len(q.Filters) > 0 {
		conditions := make(map[string]filterCondition, len(q.Filters))
		for _, f := range q.Filters {
			typ := "or"
			if f.Match == sitesearch.MatchAll {
				typ = "and"
			}
			conditions[f.Field] = filterCondition{Type: typ, Values: f.Values}
		}
		req.Filters = map[string]map[string]filterCondition{c.documentType: conditions}
	}

	return req
}

// searchResponse is the Site Search API response body.
type searchResponse struct {
	Records map[string][]map[string]json.RawMessage `json:"records"`
	Info    map[string]resultInfo                   `json:"info"`
}

type resultInfo struct {
	CurrentPage      int `json:"current_page"`
	NumPages         int `json:"num_pages"`
	PerPage          int `json:"per_page"`
	TotalResultCount int `json:"total_result_count"`
}

func (c *Connector) adaptResponse(sr *searchResponse) (*sitesearch.ResultSet, error) {
	records := sr.Records[c.documentType]
	info := sr.Info[c.documentType]

	rs := &sitesearch.ResultSet{
		Results:      make([]sitesearch.RawResult, 0, len(records)),
		TotalPages:   info.NumPages,
		TotalResults: info.TotalResultCount,
	}
	for i, record := range records {
		r, err := adaptRecord(record)
		if err != nil {
			return nil, sitesearch.Errorf(sitesearch.ECONNECTOR, "invalid record %d: %v", i, err)
		}
		rs.Results = append(rs.Results, r)
	}
	return rs, nil
}

// adaptRecord wraps every document field as a raw value, attaching the
// field's highlight as its snippet. Highlight, sort and underscore-prefixed
// metadata stay opaque.
func adaptRecord(record map[string]json.RawMessage) (sitesearch.RawResult, error) {
	var highlights map[string]json.RawMessage
	if h, ok := record["highlight"]; ok {
		if err := json.Unmarshal(h, &highlights); err != nil {
			return nil, fmt.Errorf("highlight: %w", err)
		}
	}

	r := make(sitesearch.RawResult, len(record))
	for name, msg := range record {
		if isMetadata(name) {
			r[name] = sitesearch.Opaque{Value: msg}
			continue
		}

		raw, err := sitesearch.DecodeText(msg)
		if err != nil {
			return nil, fmt.Errorf("field %q: %w", name, err)
		}
		w := sitesearch.Wrapped{Raw: raw}
		if h, ok := highlights[name]; ok {
			if w.Snippet, err = sitesearch.DecodeText(h); err != nil {
				return nil, fmt.Errorf("highlight %q: %w", name, err)
			}
		}
		r[name] = w
	}
	return r, nil
}

func isMetadata(name string) bool {
	return name == "highlight" || name == "sort" || strings.HasPrefix(name, "_")
}

// cloneResultSet copies the result slice so callers sharing a coalesced
// call do not share it.
func cloneResultSet(rs *sitesearch.ResultSet) *sitesearch.ResultSet {
	if rs == nil {
		return nil
	}
	out := *rs
	out.Results = make([]sitesearch.RawResult, len(rs.Results))
	copy(out.Results, rs.Results)
	return &out
}
