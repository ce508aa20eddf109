package docindex

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"sync"

	"github.com/blevesearch/bleve/v2"
)

// Writer batches document additions and deletions against a bleve index.
// AddFile and DeleteTerm only stage an operation and advance a counter;
// MaybeCommit is the sole place that decides to flush, mirroring
// original_source's IndexWriter (docs_since_commit / commit_interval /
// maybe_commit) adapted to bleve's Batch type in place of tantivy's
// IndexWriter.
type Writer struct {
	index           bleve.Index
	commitInterval  uint64
	mu              sync.Mutex
	batch           *bleve.Batch
	opsSinceCommit  uint64
	logger          *slog.Logger
}

// NewWriter wraps index with batching. commitInterval is the threshold
// MaybeCommit checks; a value of 0 disables the count-based trigger
// entirely, so callers must use Commit explicitly.
func NewWriter(index bleve.Index, commitInterval uint64) *Writer {
	return &Writer{
		index:          index,
		commitInterval: commitInterval,
		batch:          index.NewBatch(),
		logger:         slog.Default().With("component", "docindex-writer"),
	}
}

// AddFile stages path for indexing with the given metadata and optional
// content (empty string for metadata-only documents). The file's name and
// extension are derived from path the same way the tantivy writer derives
// them from the original std::path::Path.
func (w *Writer) AddFile(path string, meta FileMeta, content string) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	doc := Document{
		FileName:    filepath.Base(path),
		FilePath:    path,
		Extension:   extensionOf(path),
		FileSize:    meta.Size,
		Modified:    meta.Modified,
		Created:     meta.Created,
		Permissions: meta.Permissions,
		IsDir:       meta.IsDir,
	}
	if content != "" {
		doc.Content = content
	}

	if err := w.batch.Index(path, doc); err != nil {
		return fmt.Errorf("staging %s for indexing: %w", path, err)
	}
	w.opsSinceCommit++
	return nil
}

// DeleteTerm stages the removal of the document whose ID is path. Named
// DeleteTerm (rather than Delete) to keep the name aligned with the
// operation this replaces: because bleve documents are keyed by path, a
// single Batch.Delete takes the place of tantivy's delete_term-by-file_path
// step.
func (w *Writer) DeleteTerm(path string) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.batch.Delete(path)
	w.opsSinceCommit++
	return nil
}

// MaybeCommit commits the pending batch if commitInterval operations have
// accumulated since the last commit. It reports whether a commit happened.
// This is the sole commit decision point: AddFile and DeleteTerm only stage
// operations and bump the counter, matching original_source's add_file /
// maybe_commit split where maybe_commit alone decides to flush.
func (w *Writer) MaybeCommit() (bool, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.commitInterval == 0 || w.opsSinceCommit < w.commitInterval {
		return false, nil
	}
	if err := w.commitLocked(); err != nil {
		return false, err
	}
	return true, nil
}

// Commit flushes the pending batch unconditionally, resetting the
// since-commit counter.
func (w *Writer) Commit() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.commitLocked()
}

func (w *Writer) commitLocked() error {
	if w.batch.Size() == 0 {
		w.opsSinceCommit = 0
		return nil
	}
	if err := w.index.Batch(w.batch); err != nil {
		return fmt.Errorf("committing batch: %w", err)
	}
	w.logger.Debug("batch committed", "ops", w.opsSinceCommit)
	w.batch = w.index.NewBatch()
	w.opsSinceCommit = 0
	return nil
}

// PendingOps reports how many operations are staged since the last commit.
func (w *Writer) PendingOps() uint64 {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.opsSinceCommit
}

// FileMeta is the subset of fsmeta.Info the writer needs to build a
// Document. Declared locally (rather than importing fsmeta directly) so
// docindex has no dependency on how metadata is probed.
type FileMeta struct {
	Size        uint64
	Modified    int64
	Created     int64
	Permissions string
	IsDir       bool
}

func extensionOf(path string) string {
	ext := filepath.Ext(path)
	return strings.ToLower(strings.TrimPrefix(ext, "."))
}
