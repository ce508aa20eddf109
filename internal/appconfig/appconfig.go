// Package appconfig resolves drozosearch's runtime configuration: platform
// data directory defaults, and an optional TOML file that overrides them.
//
// Grounded on original_source/src/config.rs's Config/Default impl for the
// defaults themselves, and on the teacher's cmd/sift/main.go for the
// override mechanism -- an optional dotfile read with
// github.com/pelletier/go-toml/v2, silently ignored when absent; an
// unreadable or malformed file is an error.
package appconfig

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
)

// defaultMaxFileSize is the largest file, in bytes, whose content is read
// for indexing; larger files are indexed with metadata only.
const defaultMaxFileSize = 10 * 1024 * 1024

// defaultCommitInterval is how many pending index operations accumulate
// before the writer auto-commits.
const defaultCommitInterval = 10_000

// overrideFileName is the optional per-project config file checked in the
// current working directory, mirroring the teacher's .sift.toml.
const overrideFileName = ".drozosearch.toml"

// Config is drozosearch's full runtime configuration.
type Config struct {
	// RootDirs are the filesystem roots indexed.
	RootDirs []string `toml:"-"`
	// IndexPath is the directory the bleve index is stored under.
	IndexPath string `toml:"index-path"`
	// MaxFileSize is the largest file (bytes) read for content indexing.
	MaxFileSize uint64 `toml:"max-file-size"`
	// CommitInterval is how many operations accumulate before an
	// auto-commit.
	CommitInterval uint64 `toml:"commit-interval"`
}

// Default returns drozosearch's default configuration: the user's home
// directory as the sole root, an XDG-style data directory for the index,
// a 10 MiB content size cap, and a 10,000-operation commit interval.
func Default() (Config, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "/"
	}

	dataDir, err := userDataDir()
	if err != nil {
		dataDir = filepath.Join(home, ".local", "share")
	}

	return Config{
		RootDirs:       []string{home},
		IndexPath:      filepath.Join(dataDir, "drozosearch", "index"),
		MaxFileSize:    defaultMaxFileSize,
		CommitInterval: defaultCommitInterval,
	}, nil
}

// Load builds the default configuration and, if overrideFileName exists in
// the current working directory, applies its TOML overrides on top. A
// missing file is not an error; an unreadable or malformed one is.
func Load() (Config, error) {
	cfg, err := Default()
	if err != nil {
		return Config{}, err
	}

	data, err := os.ReadFile(overrideFileName)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("reading %s: %w", overrideFileName, err)
	}

	var overrides Config
	if err := toml.Unmarshal(data, &overrides); err != nil {
		return Config{}, fmt.Errorf("parsing %s: %w", overrideFileName, err)
	}

	if overrides.IndexPath != "" {
		cfg.IndexPath = overrides.IndexPath
	}
	if overrides.MaxFileSize != 0 {
		cfg.MaxFileSize = overrides.MaxFileSize
	}
	if overrides.CommitInterval != 0 {
		cfg.CommitInterval = overrides.CommitInterval
	}
	return cfg, nil
}

// userDataDir resolves the platform data directory (analogous to Rust's
// dirs::data_dir()): $XDG_DATA_HOME, or ~/.local/share on Linux, or
// ~/Library/Application Support on Darwin.
func userDataDir() (string, error) {
	if xdg := os.Getenv("XDG_DATA_HOME"); xdg != "" {
		return xdg, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolving home directory: %w", err)
	}
	return platformDataDir(home), nil
}
