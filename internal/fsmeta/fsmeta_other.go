//go:build !linux && !darwin

package fsmeta

import "os"

// createTime has no portable equivalent outside the Unix stat_t family;
// timestamps default to 0 per spec when unavailable.
func createTime(fi os.FileInfo) int64 {
	return 0
}

// formatPermissions falls back to a coarse readonly/readwrite label when
// Unix mode bits aren't available.
func formatPermissions(fi os.FileInfo) string {
	if fi.Mode().Perm()&0o200 == 0 {
		return "readonly"
	}
	return "readwrite"
}
