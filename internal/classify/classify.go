// Package classify decides whether a filesystem entry's bytes should be
// indexed as searchable text, and extracts that text within a size cap.
//
// It is grounded on the teacher's internal/chunker package (extension
// whitelist plus a NUL-byte sniff for binary detection) generalized to the
// closed text-extension list and read policy drozosearch requires: no
// chunking, no overlap — just a single text/no-text decision per file.
package classify

import (
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"
)

// textExtensions is the closed whitelist of extensions (without the dot,
// lower-case) that drozosearch indexes as text content.
var textExtensions = map[string]bool{
	// Programming
	"rs": true, "py": true, "js": true, "ts": true, "tsx": true, "jsx": true,
	"go": true, "c": true, "h": true, "cpp": true, "hpp": true,
	"java": true, "rb": true, "php": true, "swift": true, "kt": true,
	"scala": true, "r": true, "m": true, "mm": true,
	"cs": true, "fs": true, "vb": true, "lua": true, "pl": true, "pm": true,
	"hs": true, "erl": true, "ex": true, "exs": true,
	"clj": true, "cljs": true, "dart": true, "zig": true, "nim": true,
	"v": true, "d": true, "ada": true, "adb": true,

	// Shell & config
	"sh": true, "bash": true, "zsh": true, "fish": true, "ps1": true,
	"bat": true, "cmd": true,
	"toml": true, "yaml": true, "yml": true, "json": true, "xml": true,
	"ini": true, "cfg": true, "conf": true,
	"env": true, "properties": true, "gradle": true,

	// Web
	"html": true, "htm": true, "css": true, "scss": true, "sass": true,
	"less": true, "vue": true, "svelte": true,

	// Documents
	"md": true, "markdown": true, "txt": true, "rst": true, "tex": true,
	"org": true, "adoc": true,

	// Data
	"csv": true, "tsv": true, "sql": true, "graphql": true, "gql": true,

	// Other
	"log": true, "diff": true, "patch": true, "gitignore": true,
	"dockerignore": true, "dockerfile": true, "makefile": true,
	"cmake": true, "meson": true,
}

// extensionlessTextNames is the closed set of basenames (lower-cased) that
// are indexed as text even though they carry no extension.
var extensionlessTextNames = map[string]bool{
	"makefile":      true,
	"dockerfile":    true,
	"gemfile":       true,
	"rakefile":      true,
	"procfile":      true,
	"vagrantfile":   true,
	"justfile":      true,
	"cmakelists.txt": true,
}

// sniffSize is how many leading bytes are checked for a NUL byte when
// deciding whether content is text.
const sniffSize = 8192

// IsTextFile reports whether path's extension (or, for extensionless files,
// its basename) is on the closed whitelist of text-like files.
func IsTextFile(path string) bool {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
	if ext != "" && textExtensions[ext] {
		return true
	}
	name := strings.ToLower(filepath.Base(path))
	return extensionlessTextNames[name]
}

// ReadContent returns the file's content for indexing, or ok=false if the
// file should be indexed with metadata only. It returns false unless: the
// file stats successfully, 0 < size <= maxSize, IsTextFile accepts the
// path, the first 8 KiB contain no NUL byte, and the bytes decode as valid
// UTF-8. All failures are silent — callers fall back to metadata-only
// indexing.
func ReadContent(path string, maxSize int64) (string, bool) {
	if !IsTextFile(path) {
		return "", false
	}

	info, err := os.Stat(path)
	if err != nil {
		return "", false
	}
	size := info.Size()
	if size <= 0 || size > maxSize {
		return "", false
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", false
	}

	sniff := data
	if len(sniff) > sniffSize {
		sniff = sniff[:sniffSize]
	}
	if strings.IndexByte(string(sniff), 0) != -1 {
		return "", false
	}

	if !utf8.Valid(data) {
		return "", false
	}

	return string(data), true
}
