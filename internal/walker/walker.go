// Package walker discovers filesystem entries under a root directory for
// indexing. It honors the same ignore sources git itself does --
// per-directory .gitignore files, the user's global excludes file, and the
// repository's own .git/info/exclude -- plus a closed list of heavy
// directories that are always pruned regardless of ignore rules.
//
// Grounded on AbdelazizMoustafa10m-Harvx's internal/discovery.Walker
// (filepath.WalkDir plus a composite Ignorer), adapted from Harvx's
// content-pipeline walk to drozosearch's discovery-only walk: no content
// reading, no binary sniffing here -- that is internal/classify's job.
package walker

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

// skipDirs is the closed set of directory basenames that are always pruned,
// independent of any .gitignore rule. Exactly the set the original indexer
// hard-codes for known heavy or irrelevant trees.
var skipDirs = map[string]bool{
	".git":            true,
	"node_modules":    true,
	"target":          true,
	".cache":          true,
	".Trash":          true,
	"__pycache__":     true,
	".tox":            true,
	".venv":           true,
	"venv":            true,
	".env":            true,
	"dist":            true,
	"build":           true,
	".build":          true,
	".gradle":         true,
	".idea":           true,
	".vscode":         true,
	"Library":         true,
	".Spotlight-V100": true,
	".fseventsd":      true,
}

// maxDepth bounds how many path components below root the walker descends.
const maxDepth = 20

// Entry is a single filesystem item discovered by Walk, relative to the
// walk's root.
type Entry struct {
	// AbsPath is the entry's absolute, OS-native path.
	AbsPath string
	// RelPath is AbsPath relative to the walk root, using forward slashes.
	RelPath string
	IsDir   bool
}

// VisitFunc is called once per discovered, non-ignored entry. Returning an
// error aborts the walk and propagates the error to Walk's caller.
type VisitFunc func(Entry) error

// Walker discovers entries under a fixed root, applying the skip-dir list
// and every configured ignore source.
type Walker struct {
	root     string
	ignorer  Ignorer
	logger   *slog.Logger
}

// New builds a Walker rooted at rootDir. It resolves the root's hierarchical
// .gitignore files, the repository's .git/info/exclude, and the user's
// global git excludes file, chaining all three into a single composite
// Ignorer. Any individual source that fails to load (e.g. no global config
// present) is treated as empty rather than a fatal error.
func New(rootDir string) (*Walker, error) {
	absRoot, err := filepath.Abs(rootDir)
	if err != nil {
		return nil, fmt.Errorf("resolving root path %s: %w", rootDir, err)
	}
	info, err := os.Stat(absRoot)
	if err != nil {
		return nil, fmt.Errorf("stat root %s: %w", absRoot, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("root %s is not a directory", absRoot)
	}

	logger := slog.Default().With("component", "walker")

	gitignoreMatcher, err := NewGitignoreMatcher(absRoot)
	if err != nil {
		logger.Debug("gitignore matcher unavailable", "error", err)
		gitignoreMatcher = nil
	}

	excludeIgnorer, err := newExcludeIgnorer(absRoot)
	if err != nil {
		logger.Debug("git exclude file unavailable", "error", err)
		excludeIgnorer = nil
	}

	globalIgnorer, err := newGlobalIgnorer()
	if err != nil {
		logger.Debug("global git excludes unavailable", "error", err)
		globalIgnorer = nil
	}

	composite := newCompositeIgnorer(gitignoreMatcher, excludeIgnorer, globalIgnorer)

	return &Walker{
		root:    absRoot,
		ignorer: composite,
		logger:  logger,
	}, nil
}

// Root returns the absolute root directory this Walker was built for.
func (w *Walker) Root() string {
	return w.root
}

// Walk traverses the tree rooted at w.root in lexical order, invoking visit
// for every entry that survives the skip-dir list, the ignore chain, and the
// depth limit. Hidden entries (dotfiles) are included -- only the closed
// skip-dir list and explicit ignore rules prune the tree. Symlinks are never
// followed: filepath.WalkDir reports them as non-directory entries, so a
// symlink to a directory is visited but never descended into.
//
// Unreadable entries and permission errors, including on the root itself,
// are skipped silently; only cancellation of ctx or an error returned by
// visit aborts the walk.
func (w *Walker) Walk(ctx context.Context, visit VisitFunc) error {
	err := filepath.WalkDir(w.root, func(path string, d fs.DirEntry, walkErr error) error {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if walkErr != nil {
			w.logger.Debug("walk error, skipping", "path", path, "error", walkErr)
			if d != nil && d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}

		if path == w.root {
			return nil
		}

		relPath, err := filepath.Rel(w.root, path)
		if err != nil {
			return nil
		}
		relPath = filepath.ToSlash(relPath)

		if depth := strings.Count(relPath, "/") + 1; depth > maxDepth {
			if d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}

		isDir := d.IsDir()

		if isDir && skipDirs[d.Name()] {
			w.logger.Debug("skipping heavy directory", "path", relPath)
			return fs.SkipDir
		}

		if w.ignorer != nil && w.ignorer.IsIgnored(relPath, isDir) {
			if isDir {
				return fs.SkipDir
			}
			return nil
		}

		return visit(Entry{
			AbsPath: path,
			RelPath: relPath,
			IsDir:   isDir,
		})
	})
	if err != nil {
		return fmt.Errorf("walking %s: %w", w.root, err)
	}
	return nil
}

// QuickCount walks the tree the same way Walk does but only counts
// non-directory entries, without invoking any per-entry callback. The
// coordinator's Counting phase computes the same per-root count with its
// own loop over Walk, so that it can report progress while counting.
func (w *Walker) QuickCount(ctx context.Context) (int, error) {
	count := 0
	err := w.Walk(ctx, func(e Entry) error {
		if !e.IsDir {
			count++
		}
		return nil
	})
	return count, err
}
