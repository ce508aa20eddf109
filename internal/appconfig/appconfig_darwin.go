//go:build darwin

package appconfig

import "path/filepath"

func platformDataDir(home string) string {
	return filepath.Join(home, "Library", "Application Support")
}
