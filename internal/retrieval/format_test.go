package retrieval

import (
	"testing"
	"time"
)

func TestFormatSize(t *testing.T) {
	cases := []struct {
		bytes uint64
		want  string
	}{
		{500, "500 B"},
		{2048, "2.0 KB"},
		{5 * 1024 * 1024, "5.0 MB"},
		{3 * 1024 * 1024 * 1024, "3.0 GB"},
	}
	for _, c := range cases {
		if got := FormatSize(c.bytes); got != c.want {
			t.Errorf("FormatSize(%d) = %q, want %q", c.bytes, got, c.want)
		}
	}
}

func TestFormatTimeAgoRecent(t *testing.T) {
	now := time.Now().Unix()
	if got := FormatTimeAgo(now); got != "just now" {
		t.Errorf("FormatTimeAgo(now) = %q, want \"just now\"", got)
	}
}

func TestFormatTimeAgoDays(t *testing.T) {
	ts := time.Now().Add(-3 * 24 * time.Hour).Unix()
	if got := FormatTimeAgo(ts); got != "3d ago" {
		t.Errorf("FormatTimeAgo(3 days ago) = %q, want \"3d ago\"", got)
	}
}
