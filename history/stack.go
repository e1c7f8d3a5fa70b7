// Package history provides an in-memory navigable URL with browser-like
// back and forward history. It implements sitesearch.Location.
package history

import (
	"net/url"
	"sync"

	"github.com/fwojciec/sitesearch"
)

// Ensure Stack implements sitesearch.Location at compile time.
var _ sitesearch.Location = (*Stack)(nil)

// Stack is a navigable URL with a history of entries.
// It is safe for concurrent use by multiple goroutines.
type Stack struct {
	mu      sync.Mutex
	entries []*url.URL
	index   int
	subs    []subscription
	nextID  int
}

type subscription struct {
	id int
	fn func(url.Values)
}

// New returns a Stack whose only entry is rawURL.
func New(rawURL string) (*Stack, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, sitesearch.Errorf(sitesearch.EINVALID, "invalid URL %q: %v", rawURL, err)
	}
	return &Stack{entries: []*url.URL{u}}, nil
}

// URL returns a copy of the current entry.
func (s *Stack) URL() *url.URL {
	s.mu.Lock()
	defer s.mu.Unlock()
	u := *s.entries[s.index]
	return &u
}

// Query returns a copy of the current entry's query parameters.
func (s *Stack) Query() url.Values {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.entries[s.index].Query()
}

// Len returns the number of history entries.
func (s *Stack) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

// UpdateQuery applies fn to the current query parameters and pushes the
// result as a new entry, discarding any forward entries. Subscribers are
// not notified. Nothing is pushed when fn leaves the parameters unchanged.
func (s *Stack) UpdateQuery(fn func(q url.Values)) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cur := s.entries[s.index]
	q := cur.Query()
	before := q.Encode()
	fn(q)
	after := q.Encode()
	if after == before {
		return
	}

	next := *cur
	next.RawQuery = after
	s.push(&next)
}

// Navigate follows a link to rawURL, resolved against the current entry,
// and notifies subscribers.
func (s *Stack) Navigate(rawURL string) error {
	ref, err := url.Parse(rawURL)
	if err != nil {
		return sitesearch.Errorf(sitesearch.EINVALID, "invalid URL %q: %v", rawURL, err)
	}

	s.mu.Lock()
	next := s.entries[s.index].ResolveReference(ref)
	s.push(next)
	q, subs := next.Query(), s.subscribers()
	s.mu.Unlock()

	notify(subs, q)
	return nil
}

// Back moves to the previous entry and notifies subscribers.
// Returns false if there is no previous entry.
func (s *Stack) Back() bool {
	return s.move(-1)
}

// Forward moves to the next entry and notifies subscribers.
// Returns false if there is no next entry.
func (s *Stack) Forward() bool {
	return s.move(1)
}

// Subscribe registers fn to be called after Navigate, Back and Forward.
func (s *Stack) Subscribe(fn func(q url.Values)) func() {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextID
	s.nextID++
	s.subs = append(s.subs, subscription{id: id, fn: fn})

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

func (s *Stack) move(delta int) bool {
	s.mu.Lock()
	i := s.index + delta
	if i < 0 || i >= len(s.entries) {
		s.mu.Unlock()
		return false
	}
	s.index = i
	q, subs := s.entries[i].Query(), s.subscribers()
	s.mu.Unlock()

	notify(subs, q)
	return true
}

// push must be called with mu held.
func (s *Stack) push(u *url.URL) {
	s.entries = append(s.entries[:s.index+1], u)
	s.index = len(s.entries) - 1
}

// subscribers must be called with mu held.
func (s *Stack) subscribers() []func(url.Values) {
	fns := make([]func(url.Values), len(s.subs))
	for i, sub := range s.subs {
		fns[i] = sub.fn
	}
	return fns
}

func notify(fns []func(url.Values), q url.Values) {
	for _, fn := range fns {
		copied := make(url.Values, len(q))
		for k, v := range q {
			copied[k] = append([]string(nil), v...)
		}
		fn(copied)
	}
}
