// Package coordinator runs the reconcile protocol that keeps a bleve index
// in sync with the filesystem: load what's already indexed, walk the
// configured roots, add new and changed files, remove vanished ones, and
// report progress throughout.
//
// Grounded on original_source/src/indexer/coordinator.rs's run_indexing and
// quick_count, translated from its thread::spawn + mpsc::Sender pipeline to
// golang.org/x/sync/errgroup (the concurrency primitive
// AbdelazizMoustafa10m-Harvx uses for its own producer/consumer walk) plus a
// plain Go channel standing in for mpsc::channel.
package coordinator

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/blevesearch/bleve/v2"
	"golang.org/x/sync/errgroup"

	"github.com/drozosearch/drozosearch/internal/appconfig"
	"github.com/drozosearch/drozosearch/internal/classify"
	"github.com/drozosearch/drozosearch/internal/docindex"
	"github.com/drozosearch/drozosearch/internal/fsmeta"
	"github.com/drozosearch/drozosearch/internal/progress"
	"github.com/drozosearch/drozosearch/internal/walker"
)

// countingReportInterval is how often (in files) quick-count progress is
// reported during a fresh, from-nothing scan.
const countingReportInterval = 5000

// indexingReportInterval is how often (in added+updated files) indexing
// progress is reported, independent of the writer's own commit cadence.
const indexingReportInterval = 500

// ProgressSink receives progress reports as an indexing run proceeds.
// Implementations must not block for long; the coordinator calls it
// synchronously from its own goroutine.
type ProgressSink func(progress.Progress)

// WakeSignal is called after every ProgressSink invocation, mirroring
// original_source's ctx.request_repaint() -- a hook for a UI to schedule a
// redraw. It may be nil.
type WakeSignal func()

// Handle represents a running (or finished) indexing pass.
type Handle struct {
	done chan struct{}
	err  error
}

// Wait blocks until the indexing run finishes and returns any fatal error
// it encountered. Fatal errors are also reported through the ProgressSink
// as a progress.StatusError before Wait returns.
func (h *Handle) Wait() error {
	<-h.done
	return h.err
}

// StartIndexing launches a reconcile pass against index in a background
// goroutine and returns immediately with a Handle.
func StartIndexing(ctx context.Context, index bleve.Index, cfg appconfig.Config, sink ProgressSink, wake WakeSignal) *Handle {
	h := &Handle{done: make(chan struct{})}
	if sink == nil {
		sink = func(progress.Progress) {}
	}
	if wake == nil {
		wake = func() {}
	}

	go func() {
		defer close(h.done)
		h.err = run(ctx, index, cfg, sink, wake)
	}()
	return h
}

func run(ctx context.Context, index bleve.Index, cfg appconfig.Config, sink ProgressSink, wake WakeSignal) error {
	logger := slog.Default().With("component", "coordinator")

	sink(progress.Progress{Status: progress.Starting()})
	wake()

	sink(progress.Progress{Status: progress.Counting()})
	wake()

	existing, err := loadExistingIndex(index)
	if err != nil {
		logger.Warn("loading existing index state failed, treating as empty", "error", err)
		existing = map[string]int64{}
	}
	hadExisting := len(existing) > 0
	existingCount := uint64(len(existing))

	if hadExisting {
		sink(progress.Progress{
			FilesIndexed:   existingCount,
			EstimatedTotal: existingCount,
			Status:         progress.Ready(nil),
		})
		wake()
	}

	estimatedTotal, err := quickCount(ctx, cfg.RootDirs, sink, wake, hadExisting)
	if err != nil {
		err = fmt.Errorf("quick count: %w", err)
		sink(progress.Progress{Status: progress.Error(err)})
		wake()
		return err
	}

	writer := docindex.NewWriter(index, cfg.CommitInterval)

	entries := make(chan walker.Entry, 256)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		defer close(entries)
		for _, root := range cfg.RootDirs {
			w, err := walker.New(root)
			if err != nil {
				return fmt.Errorf("building walker for %s: %w", root, err)
			}
			if err := w.Walk(gctx, func(e walker.Entry) error {
				select {
				case entries <- e:
					return nil
				case <-gctx.Done():
					return gctx.Err()
				}
			}); err != nil {
				return fmt.Errorf("walking %s: %w", root, err)
			}
		}
		return nil
	})

	var filesAdded, filesUpdated uint64
	needCommit := false

	g.Go(func() error {
		filesScanned := uint64(0)
		for e := range entries {
			filesScanned++

			meta, ok := fsmeta.Probe(e.AbsPath)
			if !ok {
				delete(existing, e.AbsPath)
				continue
			}

			if indexedModified, found := existing[e.AbsPath]; found {
				if indexedModified == meta.Modified {
					delete(existing, e.AbsPath)
					if filesScanned%countingReportInterval == 0 {
						sink(progress.Progress{
							FilesIndexed:   existingCount + filesAdded,
							EstimatedTotal: maxU64(estimatedTotal, existingCount+filesAdded),
							Status:         progress.Indexing(),
						})
						wake()
					}
					continue
				}
				if err := writer.DeleteTerm(e.AbsPath); err != nil {
					return fmt.Errorf("deleting stale entry for %s: %w", e.AbsPath, err)
				}
				delete(existing, e.AbsPath)
				filesUpdated++
			} else {
				filesAdded++
			}

			var content string
			if !e.IsDir {
				content, _ = classify.ReadContent(e.AbsPath, int64(cfg.MaxFileSize))
			}

			if err := writer.AddFile(e.AbsPath, docindex.FileMeta{
				Size:        meta.Size,
				Modified:    meta.Modified,
				Created:     meta.Created,
				Permissions: meta.Permissions,
				IsDir:       meta.IsDir,
			}, content); err != nil {
				logger.Debug("skipping file after add failure", "path", e.AbsPath, "error", err)
				continue
			}
			needCommit = true

			committed, err := writer.MaybeCommit()
			if err != nil {
				return fmt.Errorf("committing batch: %w", err)
			}
			if committed {
				sink(progress.Progress{
					FilesIndexed:   existingCount + filesAdded,
					EstimatedTotal: maxU64(estimatedTotal, existingCount+filesAdded),
					Status:         progress.Indexing(),
				})
				wake()
			}

			if (filesAdded+filesUpdated)%indexingReportInterval == 0 {
				sink(progress.Progress{
					FilesIndexed:   existingCount + filesAdded,
					EstimatedTotal: maxU64(estimatedTotal, existingCount+filesAdded),
					Status:         progress.Indexing(),
				})
				wake()
			}
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		sink(progress.Progress{Status: progress.Error(err)})
		wake()
		return err
	}

	for path := range existing {
		if err := writer.DeleteTerm(path); err != nil {
			err = fmt.Errorf("deleting vanished entry %s: %w", path, err)
			sink(progress.Progress{Status: progress.Error(err)})
			wake()
			return err
		}
		needCommit = true
	}
	deleted := uint64(len(existing))
	totalIndexed := existingCount + filesAdded - deleted

	if needCommit {
		sink(progress.Progress{
			FilesIndexed:   totalIndexed,
			EstimatedTotal: totalIndexed,
			Status:         progress.Committing(),
		})
		wake()

		if err := writer.Commit(); err != nil {
			sink(progress.Progress{
				FilesIndexed:   totalIndexed,
				EstimatedTotal: totalIndexed,
				Status:         progress.Error(err),
			})
			wake()
			return fmt.Errorf("final commit: %w", err)
		}
	}

	stats := progress.Stats{Added: filesAdded, Updated: filesUpdated, Deleted: deleted}
	var reportedStats *progress.Stats
	if stats.HasChanges() {
		reportedStats = &stats
	}
	sink(progress.Progress{
		FilesIndexed:   totalIndexed,
		EstimatedTotal: totalIndexed,
		Status:         progress.Ready(reportedStats),
	})
	wake()

	return nil
}

// loadExistingIndex returns a map from indexed file path to its last known
// modified timestamp, read back from the index's own stored fields -- the
// bleve analog of original_source walking tantivy's segment stores
// directly.
func loadExistingIndex(index bleve.Index) (map[string]int64, error) {
	existing := make(map[string]int64)

	const pageSize = 1000
	from := 0
	for {
		req := bleve.NewSearchRequestOptions(bleve.NewMatchAllQuery(), pageSize, from, false)
		req.Fields = []string{docindex.FieldFilePath, docindex.FieldModified}

		res, err := index.Search(req)
		if err != nil {
			return nil, fmt.Errorf("enumerating existing documents: %w", err)
		}
		if len(res.Hits) == 0 {
			break
		}

		for _, hit := range res.Hits {
			path, ok := hit.Fields[docindex.FieldFilePath].(string)
			if !ok {
				continue
			}
			modified, ok := hit.Fields[docindex.FieldModified].(float64)
			if !ok {
				continue
			}
			existing[path] = int64(modified)
		}

		from += len(res.Hits)
		if uint64(from) >= res.Total {
			break
		}
	}

	return existing, nil
}

// quickCount pre-scans every root to estimate the total file count before
// the real walk begins. When quiet is true (an incremental update over an
// already-ready index), it still counts but never emits a Counting report,
// since the UI should keep showing the prior Ready status.
func quickCount(ctx context.Context, roots []string, sink ProgressSink, wake WakeSignal, quiet bool) (uint64, error) {
	var total uint64
	for _, root := range roots {
		w, err := walker.New(root)
		if err != nil {
			return 0, fmt.Errorf("building walker for %s: %w", root, err)
		}

		count := uint64(0)
		err = w.Walk(ctx, func(e walker.Entry) error {
			if e.IsDir {
				return nil
			}
			count++
			total++
			if !quiet && count%countingReportInterval == 0 {
				sink(progress.Progress{
					EstimatedTotal: total,
					Status:         progress.Counting(),
				})
				wake()
			}
			return nil
		})
		if err != nil {
			return 0, fmt.Errorf("quick-counting %s: %w", root, err)
		}
	}
	return total, nil
}

func maxU64(a, b uint64) uint64 {
	if a > b {
		return a
	}
	return b
}
