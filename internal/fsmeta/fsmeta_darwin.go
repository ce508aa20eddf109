//go:build darwin

package fsmeta

import (
	"os"
	"syscall"
)

// createTime reads ctime from the platform stat_t. Darwin's Stat_t exposes
// Ctimespec rather than Linux's Ctim.
func createTime(fi os.FileInfo) int64 {
	stat, ok := fi.Sys().(*syscall.Stat_t)
	if !ok {
		return 0
	}
	return stat.Ctimespec.Sec
}

// formatPermissions renders the low 9 mode bits as an "rwxr-xr-x" style
// string.
func formatPermissions(fi os.FileInfo) string {
	return unixPermString(fi.Mode())
}
