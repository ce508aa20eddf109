// Package drozosearch is a desktop-local file search engine: it
// incrementally indexes one or more filesystem roots into a bleve index and
// serves ranked searches over file names, extensions, and text content.
//
// This file is the package's single entry point, wiring together
// appconfig (configuration), docindex (the bleve schema and batched
// writer), coordinator (the incremental reconcile pass), and retrieval
// (ranked search) the way a teacher's top-level package ties its internal
// packages together behind a small public API.
package drozosearch

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/blevesearch/bleve/v2"

	"github.com/drozosearch/drozosearch/internal/appconfig"
	"github.com/drozosearch/drozosearch/internal/coordinator"
	"github.com/drozosearch/drozosearch/internal/docindex"
	"github.com/drozosearch/drozosearch/internal/retrieval"
)

// Config is drozosearch's runtime configuration: the roots to index, where
// the index lives on disk, and the content-size and commit-batching knobs.
type Config = appconfig.Config

// DefaultConfig returns drozosearch's built-in defaults: the user's home
// directory as the sole root, a platform-appropriate data directory for the
// index, a 10 MiB content size cap, and a 10,000-operation commit interval.
func DefaultConfig() (Config, error) {
	return appconfig.Default()
}

// LoadConfig returns DefaultConfig with any .drozosearch.toml overrides in
// the current working directory applied on top.
func LoadConfig() (Config, error) {
	return appconfig.Load()
}

// ProgressSink and WakeSignal are re-exported so callers never need to
// import internal/coordinator or internal/progress directly.
type (
	ProgressSink = coordinator.ProgressSink
	WakeSignal   = coordinator.WakeSignal
)

// SearchResult is a single ranked search hit.
type SearchResult = retrieval.Result

// Engine owns an open bleve index and the coordinator/retrieval logic
// layered on top of it. The zero value is not usable; construct one with
// Open.
type Engine struct {
	index  bleve.Index
	cfg    Config
	search *retrieval.Engine
}

// Open opens the bleve index at cfg.IndexPath, creating it (with parent
// directories) if it does not yet exist.
func Open(cfg Config) (*Engine, error) {
	index, err := openOrCreateIndex(cfg.IndexPath)
	if err != nil {
		return nil, err
	}
	return &Engine{
		index:  index,
		cfg:    cfg,
		search: retrieval.NewEngine(index),
	}, nil
}

func openOrCreateIndex(path string) (bleve.Index, error) {
	index, err := bleve.Open(path)
	if err == nil {
		return index, nil
	}
	if !errors.Is(err, bleve.ErrorIndexPathDoesNotExist) {
		return nil, fmt.Errorf("opening index at %s: %w", path, err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("creating parent directory for %s: %w", path, err)
	}

	index, err = bleve.New(path, docindex.BuildIndexMapping())
	if err != nil {
		return nil, fmt.Errorf("creating index at %s: %w", path, err)
	}
	return index, nil
}

// StartIndexing launches an incremental reconcile pass against the roots in
// e's configuration, reporting progress through sink and, after each
// report, invoking wake (either may be nil).
func (e *Engine) StartIndexing(ctx context.Context, sink ProgressSink, wake WakeSignal) *coordinator.Handle {
	return coordinator.StartIndexing(ctx, e.index, e.cfg, sink, wake)
}

// Search runs a ranked search over the index, returning up to limit results
// sorted by composite score.
func (e *Engine) Search(query string, limit int) ([]SearchResult, error) {
	return e.search.Search(query, limit)
}

// DocCount reports how many documents are currently in the index.
func (e *Engine) DocCount() (uint64, error) {
	return e.index.DocCount()
}

// Close releases the underlying index's resources.
func (e *Engine) Close() error {
	return e.index.Close()
}
