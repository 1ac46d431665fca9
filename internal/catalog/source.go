package catalog

import "errors"

// SourceID identifies one catalog source (a generic palette or a specific
// vendor).
type SourceID string

// Source describes where a catalog comes from. Location is opaque to the
// registry; only the loader interprets it (a file path, a sqlite DSN, ...).
type Source struct {
	ID       SourceID
	Name     string // human display name, e.g. "Generic palette"
	Location string
}

// State is the load lifecycle of a single source.
type State int

const (
	StateNotRequested State = iota
	StateLoading
	StateLoaded
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateNotRequested:
		return "not requested"
	case StateLoading:
		return "loading"
	case StateLoaded:
		return "loaded"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Load error taxonomy. Failures are recorded per source and queried, never
// thrown across the registry.
var (
	ErrSourceNotFound = errors.New("catalog source not found")
	ErrBadEncoding    = errors.New("catalog resource has unsupported encoding")
	ErrUnknownSource  = errors.New("catalog source not registered")
	ErrDecodeFailed   = errors.New("catalog resource could not be decoded")
)
