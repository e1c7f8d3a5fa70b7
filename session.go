package sitesearch

import "fmt"

// Status is the phase of a search session.
type Status int

// Status constants for SessionState.
const (
	StatusIdle Status = iota
	StatusLoading
	StatusSuccess
	StatusEmpty
	StatusError
)

var statusNames = map[Status]string{
	StatusIdle:    "idle",
	StatusLoading: "loading",
	StatusSuccess: "success",
	StatusEmpty:   "empty",
	StatusError:   "error",
}

// String returns the lowercase name of the status.
func (s Status) String() string {
	if name, ok := statusNames[s]; ok {
		return name
	}
	return fmt.Sprintf("status(%d)", int(s))
}

// ParseStatus returns the Status with the given name.
func ParseStatus(name string) (Status, error) {
	for s, n := range statusNames {
		if n == name {
			return s, nil
		}
	}
	return 0, Errorf(EINVALID, "unknown status %q", name)
}

// Settled reports whether the status ends a query.
func (s Status) Settled() bool {
	return s == StatusSuccess || s == StatusEmpty || s == StatusError
}

// SessionState is a snapshot of a search session.
type SessionState struct {
	Term         string
	Page         int
	Status       Status
	Results      []SanitizedResult
	TotalPages   int
	TotalResults int

	// Generation identifies the submission that produced the snapshot.
	Generation uint64

	// Err holds the connector failure when Status is StatusError.
	Err error
}

// Clone returns a copy that shares no mutable state with s.
func (s SessionState) Clone() SessionState {
	if s.Results != nil {
		results := make([]SanitizedResult, len(s.Results))
		copy(results, s.Results)
		s.Results = results
	}
	return s
}
