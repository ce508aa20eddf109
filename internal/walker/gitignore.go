package walker

import (
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	gitignore "github.com/sabhiram/go-gitignore"
)

// GitignoreMatcher loads and evaluates .gitignore patterns hierarchically.
// Nested .gitignore files add patterns that apply only within their own
// subtree; parent rules are inherited by every descendant directory.
//
// Paths passed to IsIgnored must be relative to the root directory used to
// construct the matcher.
//
// Adapted from AbdelazizMoustafa10m-Harvx's internal/discovery.GitignoreMatcher,
// with discovery itself pruned by the same skipDirs list and maxDepth bound
// Walk enforces: there is no point compiling .gitignore files that live
// inside node_modules or below the depth limit when Walk will never
// descend there to ask about them.
type GitignoreMatcher struct {
	root     string
	matchers map[string]*gitignore.GitIgnore
	dirs     []string
	logger   *slog.Logger
}

// NewGitignoreMatcher walks rootDir to discover every .gitignore file and
// compiles its patterns. A tree with no .gitignore files yields a matcher
// whose IsIgnored always returns false.
func NewGitignoreMatcher(rootDir string) (*GitignoreMatcher, error) {
	absRoot, err := filepath.Abs(rootDir)
	if err != nil {
		return nil, fmt.Errorf("resolving root path %s: %w", rootDir, err)
	}

	logger := slog.Default().With("component", "walker-gitignore")
	m := &GitignoreMatcher{
		root:     absRoot,
		matchers: make(map[string]*gitignore.GitIgnore),
		logger:   logger,
	}

	if err := m.discover(); err != nil {
		return nil, fmt.Errorf("discovering .gitignore files in %s: %w", absRoot, err)
	}
	return m, nil
}

func (m *GitignoreMatcher) discover() error {
	err := filepath.WalkDir(m.root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			m.logger.Debug("skipping unreadable path", "path", path, "error", err)
			return filepath.SkipDir
		}

		if path != m.root {
			relPath, relErr := filepath.Rel(m.root, path)
			if relErr == nil {
				relPath = filepath.ToSlash(relPath)
				if depth := strings.Count(relPath, "/") + 1; depth > maxDepth {
					if d.IsDir() {
						return filepath.SkipDir
					}
					return nil
				}
			}
		}

		if d.IsDir() && skipDirs[d.Name()] {
			return filepath.SkipDir
		}
		if d.IsDir() || d.Name() != ".gitignore" {
			return nil
		}

		dirPath := filepath.Dir(path)
		relDir, err := filepath.Rel(m.root, dirPath)
		if err != nil {
			return nil
		}
		compiled, err := gitignore.CompileIgnoreFile(path)
		if err != nil {
			m.logger.Debug("skipping unreadable .gitignore", "path", path, "error", err)
			return nil
		}
		relDir = filepath.ToSlash(relDir)
		if relDir == "" {
			relDir = "."
		}
		m.matchers[relDir] = compiled
		return nil
	})
	if err != nil {
		return fmt.Errorf("walking directory tree: %w", err)
	}

	m.dirs = make([]string, 0, len(m.matchers))
	for dir := range m.matchers {
		m.dirs = append(m.dirs, dir)
	}
	sort.Strings(m.dirs)
	return nil
}

// IsIgnored reports whether path (relative to root, forward slashes accepted)
// matches any applicable .gitignore rule. Each .gitignore from root toward
// the file's parent directory is checked on its own, and a match in any one
// of them ignores the path: a negation pattern in a deeper .gitignore does
// not override a match from a shallower one.
func (m *GitignoreMatcher) IsIgnored(path string, isDir bool) bool {
	normalized := strings.TrimPrefix(filepath.ToSlash(path), "./")
	if normalized == "" || normalized == "." {
		return false
	}

	matchPath := normalized
	if isDir && !strings.HasSuffix(matchPath, "/") {
		matchPath += "/"
	}

	for _, dir := range m.dirs {
		if dir != "." {
			prefix := dir + "/"
			if !strings.HasPrefix(normalized, prefix) {
				continue
			}
		}

		var relPath string
		if dir == "." {
			relPath = matchPath
		} else {
			relPath = strings.TrimPrefix(matchPath, dir+"/")
		}

		if m.matchers[dir].MatchesPath(relPath) {
			return true
		}
	}
	return false
}

var _ Ignorer = (*GitignoreMatcher)(nil)

// flatIgnorer wraps a single compiled ignore file whose patterns apply
// uniformly to the whole tree (unlike the hierarchical GitignoreMatcher).
// It backs both .git/info/exclude and the resolved global excludes file.
type flatIgnorer struct {
	matcher *gitignore.GitIgnore
}

// newFlatIgnorer compiles path into a flatIgnorer. It returns (nil, nil),
// not an error, when path does not exist -- an absent exclude file simply
// contributes no rules.
func newFlatIgnorer(path string) (*flatIgnorer, error) {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("stat %s: %w", path, err)
	}
	compiled, err := gitignore.CompileIgnoreFile(path)
	if err != nil {
		return nil, fmt.Errorf("compiling %s: %w", path, err)
	}
	return &flatIgnorer{matcher: compiled}, nil
}

func (f *flatIgnorer) IsIgnored(path string, isDir bool) bool {
	if f == nil || f.matcher == nil {
		return false
	}
	normalized := strings.TrimPrefix(filepath.ToSlash(path), "./")
	if isDir && !strings.HasSuffix(normalized, "/") {
		normalized += "/"
	}
	return f.matcher.MatchesPath(normalized)
}

var _ Ignorer = (*flatIgnorer)(nil)
