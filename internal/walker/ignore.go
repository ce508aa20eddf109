package walker

import "log/slog"

// Ignorer evaluates whether a path (relative to the walk root, forward
// slashes) should be excluded from discovery. isDir distinguishes
// directory-only patterns from file patterns.
//
// Grounded on AbdelazizMoustafa10m-Harvx's internal/discovery.Ignorer —
// the same chain-of-matchers shape, narrowed to the three ignore sources
// spec.md §4.4 names: per-directory .gitignore, the global git ignore
// file, and .git/info/exclude.
type Ignorer interface {
	IsIgnored(path string, isDir bool) bool
}

// compositeIgnorer reports a path ignored if any chained source matches it.
type compositeIgnorer struct {
	ignorers []Ignorer
	logger   *slog.Logger
}

func newCompositeIgnorer(ignorers ...Ignorer) *compositeIgnorer {
	filtered := make([]Ignorer, 0, len(ignorers))
	for _, ig := range ignorers {
		if ig != nil {
			filtered = append(filtered, ig)
		}
	}
	return &compositeIgnorer{
		ignorers: filtered,
		logger:   slog.Default().With("component", "walker-ignore"),
	}
}

func (c *compositeIgnorer) IsIgnored(path string, isDir bool) bool {
	for _, ig := range c.ignorers {
		if ig.IsIgnored(path, isDir) {
			return true
		}
	}
	return false
}

var _ Ignorer = (*compositeIgnorer)(nil)
