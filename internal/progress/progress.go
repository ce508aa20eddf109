// Package progress defines the status reporting types the indexing
// coordinator publishes and the CLI/UI consumes.
//
// Ported from original_source/src/types.rs's IndexProgress/IndexStatus/
// IndexStats, which this package keeps unchanged in shape: a tagged-union
// status (modeled in Go as a struct with a Kind discriminant plus the
// fields only one Kind populates), a running files-indexed/estimated-total
// counter pair, and a stats summary of what a reconcile pass changed.
package progress

import "fmt"

// StatusKind discriminates the phases an indexing run passes through.
type StatusKind int

const (
	StatusCounting StatusKind = iota
	StatusStarting
	StatusIndexing
	StatusCommitting
	StatusReady
	StatusError
)

func (k StatusKind) String() string {
	switch k {
	case StatusCounting:
		return "Scanning..."
	case StatusStarting:
		return "Starting..."
	case StatusIndexing:
		return "Indexing..."
	case StatusCommitting:
		return "Committing..."
	case StatusReady:
		return "Ready"
	case StatusError:
		return "Error"
	default:
		return "Unknown"
	}
}

// Status is the tagged-union original_source expresses as IndexStatus.
// Only the fields relevant to Kind are populated: Stats for StatusReady (it
// may be nil, meaning "ready, nothing changed"), Err for StatusError.
type Status struct {
	Kind  StatusKind
	Stats *Stats
	Err   string
}

func (s Status) String() string {
	if s.Kind == StatusError {
		return fmt.Sprintf("Error: %s", s.Err)
	}
	return s.Kind.String()
}

func Counting() Status   { return Status{Kind: StatusCounting} }
func Starting() Status   { return Status{Kind: StatusStarting} }
func Indexing() Status   { return Status{Kind: StatusIndexing} }
func Committing() Status { return Status{Kind: StatusCommitting} }

func Ready(stats *Stats) Status {
	return Status{Kind: StatusReady, Stats: stats}
}

func Error(err error) Status {
	return Status{Kind: StatusError, Err: err.Error()}
}

// Stats summarizes what a reconcile pass changed in the index.
type Stats struct {
	Added   uint64
	Updated uint64
	Deleted uint64
}

// HasChanges reports whether any document was added, updated, or deleted.
func (s Stats) HasChanges() bool {
	return s.Added > 0 || s.Updated > 0 || s.Deleted > 0
}

// Progress is a single point-in-time report of an indexing run.
type Progress struct {
	FilesIndexed   uint64
	EstimatedTotal uint64
	Status         Status
}
