package cache

import "time"

// Status is the lifecycle stage of one cache entry
type Status int

const (
	StatusUninitialized Status = iota
	StatusFetching
	StatusFresh
	StatusStale
)

func (s Status) String() string {
	switch s {
	case StatusUninitialized:
		return "uninitialized"
	case StatusFetching:
		return "fetching"
	case StatusFresh:
		return "fresh"
	case StatusStale:
		return "stale"
	}
	return "unknown"
}

// Snapshot is what a consumer sees of an entry: data, loading state and the
// error of the last completed fetch.
type Snapshot struct {
	Key       string      `json:"key"`
	Value     interface{} `json:"value,omitempty"`
	HasValue  bool        `json:"has_value"`
	Err       error       `json:"-"`
	Status    Status      `json:"-"`
	UpdatedAt time.Time   `json:"updated_at"`
}

// Loading reports whether a fetch for the entry is in flight
func (s Snapshot) Loading() bool {
	return s.Status == StatusFetching
}
