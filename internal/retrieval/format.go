package retrieval

import (
	"fmt"
	"time"
)

// FormatSize renders a byte count the way a human reads file sizes, ported
// from original_source/src/types.rs's format_size.
func FormatSize(bytes uint64) string {
	const (
		kb = 1024
		mb = kb * 1024
		gb = mb * 1024
	)
	switch {
	case bytes >= gb:
		return fmt.Sprintf("%.1f GB", float64(bytes)/float64(gb))
	case bytes >= mb:
		return fmt.Sprintf("%.1f MB", float64(bytes)/float64(mb))
	case bytes >= kb:
		return fmt.Sprintf("%.1f KB", float64(bytes)/float64(kb))
	default:
		return fmt.Sprintf("%d B", bytes)
	}
}

// FormatTimeAgo renders a unix timestamp as a relative age string, ported
// from original_source/src/types.rs's format_time_ago.
func FormatTimeAgo(timestamp int64) string {
	now := time.Now().Unix()
	diff := now - timestamp
	if diff < 0 {
		return "just now"
	}

	seconds := diff
	minutes := seconds / 60
	hours := minutes / 60
	days := hours / 24
	weeks := days / 7
	months := days / 30
	years := days / 365

	switch {
	case years > 0:
		return fmt.Sprintf("%dy ago", years)
	case months > 0:
		return fmt.Sprintf("%dmo ago", months)
	case weeks > 0:
		return fmt.Sprintf("%dw ago", weeks)
	case days > 0:
		return fmt.Sprintf("%dd ago", days)
	case hours > 0:
		return fmt.Sprintf("%dh ago", hours)
	case minutes > 0:
		return fmt.Sprintf("%dm ago", minutes)
	default:
		return "just now"
	}
}
