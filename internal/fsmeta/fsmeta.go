// Package fsmeta probes filesystem entries for the metadata drozosearch
// indexes alongside file content: size, modification and creation times,
// a permission string, and the directory flag.
package fsmeta

import (
	"os"
)

// Info is the metadata captured for a single filesystem entry.
type Info struct {
	Size        uint64
	Modified    int64 // unix seconds
	Created     int64 // unix seconds
	Permissions string
	IsDir       bool
}

// Probe stats path and returns its metadata. It reports ok=false if the
// path cannot be stat-ed (removed mid-walk, permission denied, etc.) — the
// coordinator treats that as a deletion, not an error.
//
// Probe uses os.Stat, so for a symlink it reports the metadata of the link's
// target (and ok=false for a dangling link). The walker never descends into
// a linked directory; Probe only describes the entry it is given.
func Probe(path string) (Info, bool) {
	fi, err := os.Stat(path)
	if err != nil {
		return Info{}, false
	}

	return Info{
		Size:        uint64(fi.Size()),
		Modified:    modTime(fi),
		Created:     createTime(fi),
		Permissions: formatPermissions(fi),
		IsDir:       fi.IsDir(),
	}, true
}

func modTime(fi os.FileInfo) int64 {
	t := fi.ModTime()
	if t.IsZero() {
		return 0
	}
	return t.Unix()
}
