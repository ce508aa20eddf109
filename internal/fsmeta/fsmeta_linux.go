//go:build linux

package fsmeta

import (
	"os"
	"syscall"
)

// createTime reads ctime from the platform stat_t. On Linux this is the
// inode change time, not a true creation time — the closest approximation
// available without filesystem-specific extended attributes (statx btime).
func createTime(fi os.FileInfo) int64 {
	stat, ok := fi.Sys().(*syscall.Stat_t)
	if !ok {
		return 0
	}
	return stat.Ctim.Sec
}

// formatPermissions renders the low 9 mode bits as an "rwxr-xr-x" style
// string.
func formatPermissions(fi os.FileInfo) string {
	return unixPermString(fi.Mode())
}
