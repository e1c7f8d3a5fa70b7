// Package search coordinates search sessions. A Session owns the query
// state machine (debounced submission, loading/empty/error/success, paging)
// and a Sync keeps it bound to the navigable URL's query parameters.
package search

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/sitesearch"
	"github.com/google/uuid"
)

// DefaultDebounce is how long a submission waits for a newer one before
// the connector is called.
const DefaultDebounce = 500 * time.Millisecond

// Session is the state machine for one search context. Responses are
// labelled with the generation of the submission that issued them and
// only the response for the latest generation may update state.
// It is safe for concurrent use by multiple goroutines.
type Session struct {
	id        string
	connector sitesearch.Connector
	sanitizer *sitesearch.Sanitizer
	template  sitesearch.Query
	debounce  time.Duration
	logger    *slog.Logger
	queryLog  sitesearch.QueryLog

	ctx    context.Context
	cancel context.CancelFunc

	mu         sync.Mutex
	state      sitesearch.SessionState
	generation uint64
	seq        uint64
	timer      *time.Timer
	subs       []*subscription
	nextSubID  int
	closed     bool

	// pending counts scheduled debounce timers; each timer's callback
	// covers the request it dispatches.
	pending sync.WaitGroup
}

type subscription struct {
	id int
	fn func(sitesearch.SessionState)

	mu      sync.Mutex
	running bool
	queued  *snapshot
	last    uint64
}

// snapshot is a state copy stamped with the order it was taken in.
type snapshot struct {
	seq   uint64
	state sitesearch.SessionState
}

// Option configures a Session.
type Option func(*Session)

// WithDebounce sets the debounce window. Defaults to DefaultDebounce.
func WithDebounce(d time.Duration) Option {
	return func(s *Session) {
		s.debounce = d
	}
}

// WithLogger sets the logger. Defaults to discarding all output.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Session) {
		s.logger = logger
	}
}

// WithQueryLog records every settled query in l.
func WithQueryLog(l sitesearch.QueryLog) Option {
	return func(s *Session) {
		s.queryLog = l
	}
}

// WithQueryTemplate sets the result fields, filters and page size sent
// with every query. Term and Page are ignored.
func WithQueryTemplate(q sitesearch.Query) Option {
	return func(s *Session) {
		s.template = q
	}
}

// WithID sets the session ID. Defaults to a random UUID.
func WithID(id string) Option {
	return func(s *Session) {
		s.id = id
	}
}

// NewSession returns an idle Session that queries connector and sanitizes
// results with sanitizer.
func NewSession(connector sitesearch.Connector, sanitizer *sitesearch.Sanitizer, opts ...Option) *Session {
	s := &Session{
		id:        uuid.New().String(),
		connector: connector,
		sanitizer: sanitizer,
		debounce:  DefaultDebounce,
		logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
		state:     sitesearch.SessionState{Status: sitesearch.StatusIdle, Page: 1},
	}
	for _, opt := range opts {
		opt(s)
	}
	s.ctx, s.cancel = context.WithCancel(context.Background())
	return s
}

// ID returns the session ID.
func (s *Session) ID() string {
	return s.id
}

// State returns a snapshot of the current state.
func (s *Session) State() sitesearch.SessionState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Clone()
}

// Subscribe registers fn to be called with a snapshot after every state
// change. Calls to one fn never overlap and never go backwards: a snapshot
// older than one already delivered is dropped, and snapshots superseded
// while fn runs collapse into the newest. Calls happen outside the session
// lock, so fn may call back into the session.
func (s *Session) Subscribe(fn func(sitesearch.SessionState)) (cancel func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextSubID
	s.nextSubID++
	s.subs = append(s.subs, &subscription{id: id, fn: fn})

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		for i, sub := range s.subs {
			if sub.id == id {
				s.subs = append(s.subs[:i:i], s.subs[i+1:]...)
				return
			}
		}
	}
}

// Submit starts a search for term at page. An empty term returns the
// session to idle without calling the connector. Otherwise the session
// enters loading and the connector is called once the debounce window
// passes without a newer submission.
func (s *Session) Submit(term string, page int) {
	if page < 1 {
		page = 1
	}

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.generation++
	gen := s.generation
	s.stopTimer()

	if term == "" {
		s.state = sitesearch.SessionState{Status: sitesearch.StatusIdle, Page: 1, Generation: gen}
		snap, subs := s.takeSnapshot(), s.subscribers()
		s.mu.Unlock()

		s.logger.Debug("search cleared", "session", s.id)
		s.notify(subs, snap)
		return
	}

	s.state.Term = term
	s.state.Page = page
	s.state.Status = sitesearch.StatusLoading
	s.state.Generation = gen
	s.state.Err = nil

	q := s.template
	q.Term = term
	q.Page = page

	s.pending.Add(1)
	s.timer = time.AfterFunc(s.debounce, func() {
		defer s.pending.Done()
		s.dispatch(gen, q)
	})
	snap, subs := s.takeSnapshot(), s.subscribers()
	s.mu.Unlock()

	s.notify(subs, snap)
}

// ChangePage searches the current term again at page n. Every page change
// queries the connector; results are never sliced locally.
func (s *Session) ChangePage(n int) {
	s.mu.Lock()
	term := s.state.Term
	s.mu.Unlock()

	s.Submit(term, n)
}

// Wait blocks until no debounce timer is pending and every dispatched
// request has resolved. It must not be called concurrently with Submit.
func (s *Session) Wait() {
	s.pending.Wait()
}

// Close stops any pending submission and cancels in-flight requests.
// Responses arriving after Close are discarded.
func (s *Session) Close() error {
	s.mu.Lock()
	s.closed = true
	s.generation++
	s.stopTimer()
	s.mu.Unlock()

	s.cancel()
	return nil
}

// dispatch calls the connector for generation gen and applies the response
// if gen is still current.
func (s *Session) dispatch(gen uint64, q sitesearch.Query) {
	if !s.current(gen) {
		return
	}

	rs, err := s.connector.Search(s.ctx, q)
	if err == nil && rs == nil {
		rs = &sitesearch.ResultSet{}
	}

	s.mu.Lock()
	if gen != s.generation {
		s.mu.Unlock()
		s.logger.Debug("discarding stale response",
			"session", s.id,
			"term", q.Term,
			"page", q.Page,
		)
		return
	}

	var problems []error
	if err != nil {
		if sitesearch.ErrorCode(err) != sitesearch.ECONNECTOR {
			err = sitesearch.Errorf(sitesearch.ECONNECTOR, "%s", err.Error())
		}
		s.state.Status = sitesearch.StatusError
		s.state.Results = nil
		s.state.TotalPages = 0
		s.state.TotalResults = 0
		s.state.Err = err
	} else {
		var results []sitesearch.SanitizedResult
		results, problems = s.sanitizer.SanitizeAll(rs.Results)
		results = dedupe(results)

		s.state.Results = results
		s.state.TotalPages = rs.TotalPages
		s.state.TotalResults = rs.TotalResults
		s.state.Err = nil
		if len(results) == 0 {
			s.state.Status = sitesearch.StatusEmpty
		} else {
			s.state.Status = sitesearch.StatusSuccess
		}
	}
	snap, subs := s.takeSnapshot(), s.subscribers()
	s.mu.Unlock()

	for _, p := range problems {
		s.logger.Warn("result degraded",
			"session", s.id,
			"code", sitesearch.ErrorCode(p),
			"reason", sitesearch.ErrorMessage(p),
		)
	}
	if err != nil {
		s.logger.Error("search failed", "session", s.id, "term", q.Term, "err", err)
	}

	s.record(snap.state)
	s.notify(subs, snap)
}

// Current reports whether state was produced by the latest submission.
// Snapshots from superseded submissions must not update shared state.
func (s *Session) Current(state sitesearch.SessionState) bool {
	return s.current(state.Generation)
}

func (s *Session) current(gen uint64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return gen == s.generation
}

// takeSnapshot must be called with mu held.
func (s *Session) takeSnapshot() snapshot {
	s.seq++
	return snapshot{seq: s.seq, state: s.state.Clone()}
}

// record appends a settled state to the query log. Failures are logged and
// never affect the session.
func (s *Session) record(state sitesearch.SessionState) {
	if s.queryLog == nil {
		return
	}
	entry := &sitesearch.QueryLogEntry{
		SessionID:  s.id,
		Term:       state.Term,
		Page:       state.Page,
		Status:     state.Status,
		Results:    len(state.Results),
		TotalPages: state.TotalPages,
	}
	if err := s.queryLog.RecordQuery(s.ctx, entry); err != nil {
		s.logger.Warn("query log write failed", "session", s.id, "err", err)
	}
}

// stopTimer must be called with mu held.
func (s *Session) stopTimer() {
	if s.timer != nil && s.timer.Stop() {
		s.pending.Done()
	}
	s.timer = nil
}

// subscribers must be called with mu held.
func (s *Session) subscribers() []*subscription {
	subs := make([]*subscription, len(s.subs))
	copy(subs, s.subs)
	return subs
}

func (s *Session) notify(subs []*subscription, snap snapshot) {
	for _, sub := range subs {
		sub.deliver(s, snap)
	}
}

// deliver hands snap to the subscriber. If another goroutine is already
// delivering, snap is queued for it and deliver returns at once.
func (sub *subscription) deliver(s *Session, snap snapshot) {
	sub.mu.Lock()
	if snap.seq <= sub.last || (sub.queued != nil && snap.seq <= sub.queued.seq) {
		sub.mu.Unlock()
		return
	}
	sub.queued = &snap
	if sub.running {
		sub.mu.Unlock()
		return
	}
	sub.running = true
	for sub.queued != nil {
		next := *sub.queued
		sub.queued = nil
		sub.last = next.seq
		sub.mu.Unlock()

		if s.current(next.state.Generation) {
			sub.fn(next.state.Clone())
		}

		sub.mu.Lock()
	}
	sub.running = false
	sub.mu.Unlock()
}

// dedupe drops results that repeat an earlier result's URL and title.
// Results without a URL are always kept.
func dedupe(results []sitesearch.SanitizedResult) []sitesearch.SanitizedResult {
	seen := make(map[uint64]struct{}, len(results))
	out := results[:0]
	for _, r := range results {
		if r.URL == nil {
			out = append(out, r)
			continue
		}
		key := xxhash.Sum64String(r.URL.String() + "\x00" + r.Title)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, r)
	}
	return out
}
