package walker

import (
	"fmt"
	"os"
	"path/filepath"

	gitconfig "github.com/go-git/go-git/v5/config"
)

// newGlobalIgnorer resolves the user's global git excludes file -- the
// core.excludesFile setting in the global git config, falling back to git's
// own default of $XDG_CONFIG_HOME/git/ignore (or ~/.config/git/ignore) -- and
// compiles it into an Ignorer. A user with no global excludes file at all
// yields a nil, nil result.
//
// Grounded on go-git/v5's config.LoadConfig(config.GlobalScope), the same API
// ferg-cod3s-conexus uses to read repository configuration.
func newGlobalIgnorer() (Ignorer, error) {
	cfg, err := gitconfig.LoadConfig(gitconfig.GlobalScope)
	if err != nil {
		return nil, fmt.Errorf("loading global git config: %w", err)
	}

	path := cfg.Raw.Section("core").Options.Get("excludesfile")
	if path == "" {
		path, err = defaultExcludesFile()
		if err != nil {
			return nil, err
		}
	}
	path = expandHome(path)

	ig, err := newFlatIgnorer(path)
	if err != nil {
		return nil, fmt.Errorf("loading global excludes file %s: %w", path, err)
	}
	if ig == nil {
		return nil, nil
	}
	return ig, nil
}

// newExcludeIgnorer compiles a single repository's .git/info/exclude file,
// which applies to the whole tree rooted at root regardless of nesting.
func newExcludeIgnorer(root string) (Ignorer, error) {
	path := filepath.Join(root, ".git", "info", "exclude")
	ig, err := newFlatIgnorer(path)
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", path, err)
	}
	return ig, nil
}

func defaultExcludesFile() (string, error) {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "git", "ignore"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolving home directory: %w", err)
	}
	return filepath.Join(home, ".config", "git", "ignore"), nil
}

func expandHome(path string) string {
	if path == "" || path[0] != '~' {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	if path == "~" {
		return home
	}
	if len(path) > 1 && (path[1] == '/' || path[1] == os.PathSeparator) {
		return filepath.Join(home, path[2:])
	}
	return path
}
