package coordinator_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/blevesearch/bleve/v2"

	"github.com/drozosearch/drozosearch/internal/appconfig"
	"github.com/drozosearch/drozosearch/internal/coordinator"
	"github.com/drozosearch/drozosearch/internal/docindex"
	"github.com/drozosearch/drozosearch/internal/progress"
)

func newTestConfig(t *testing.T, root string) appconfig.Config {
	t.Helper()
	return appconfig.Config{
		RootDirs:       []string{root},
		MaxFileSize:    10 * 1024 * 1024,
		CommitInterval: 10,
	}
}

func TestStartIndexingAddsFilesAndReportsReady(t *testing.T) {
	root := t.TempDir()
	if err := os.WriteFile(filepath.Join(root, "a.txt"), []byte("hello"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(root, "b.go"), []byte("package main"), 0o644); err != nil {
		t.Fatal(err)
	}

	idx, err := bleve.NewMemOnly(docindex.BuildIndexMapping())
	if err != nil {
		t.Fatal(err)
	}
	defer idx.Close()

	var statuses []progress.StatusKind
	sink := func(p progress.Progress) { statuses = append(statuses, p.Status.Kind) }

	h := coordinator.StartIndexing(context.Background(), idx, newTestConfig(t, root), sink, nil)
	if err := h.Wait(); err != nil {
		t.Fatalf("indexing run failed: %v", err)
	}

	count, err := idx.DocCount()
	if err != nil {
		t.Fatal(err)
	}
	if count != 2 {
		t.Errorf("DocCount = %d, want 2", count)
	}

	sawReady := false
	for _, s := range statuses {
		if s == progress.StatusReady {
			sawReady = true
		}
	}
	if !sawReady {
		t.Error("expected a Ready status report")
	}
}

func TestStartIndexingReconcilesRemovedFile(t *testing.T) {
	root := t.TempDir()
	keep := filepath.Join(root, "keep.txt")
	remove := filepath.Join(root, "remove.txt")
	if err := os.WriteFile(keep, []byte("keep"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(remove, []byte("remove"), 0o644); err != nil {
		t.Fatal(err)
	}

	idx, err := bleve.NewMemOnly(docindex.BuildIndexMapping())
	if err != nil {
		t.Fatal(err)
	}
	defer idx.Close()

	cfg := newTestConfig(t, root)

	h := coordinator.StartIndexing(context.Background(), idx, cfg, nil, nil)
	if err := h.Wait(); err != nil {
		t.Fatalf("first pass failed: %v", err)
	}
	if count, _ := idx.DocCount(); count != 2 {
		t.Fatalf("after first pass, DocCount = %d, want 2", count)
	}

	if err := os.Remove(remove); err != nil {
		t.Fatal(err)
	}

	h2 := coordinator.StartIndexing(context.Background(), idx, cfg, nil, nil)
	if err := h2.Wait(); err != nil {
		t.Fatalf("second pass failed: %v", err)
	}

	count, _ := idx.DocCount()
	if count != 1 {
		t.Errorf("after reconcile, DocCount = %d, want 1", count)
	}
}

func TestStartIndexingSkipsUnchangedFiles(t *testing.T) {
	root := t.TempDir()
	path := filepath.Join(root, "stable.txt")
	if err := os.WriteFile(path, []byte("stable"), 0o644); err != nil {
		t.Fatal(err)
	}

	idx, err := bleve.NewMemOnly(docindex.BuildIndexMapping())
	if err != nil {
		t.Fatal(err)
	}
	defer idx.Close()

	cfg := newTestConfig(t, root)

	h := coordinator.StartIndexing(context.Background(), idx, cfg, nil, nil)
	if err := h.Wait(); err != nil {
		t.Fatal(err)
	}

	var lastStats *progress.Stats
	sink := func(p progress.Progress) {
		if p.Status.Kind == progress.StatusReady {
			lastStats = p.Status.Stats
		}
	}
	h2 := coordinator.StartIndexing(context.Background(), idx, cfg, sink, nil)
	if err := h2.Wait(); err != nil {
		t.Fatal(err)
	}

	if lastStats != nil {
		t.Errorf("expected no-change Ready report for unchanged tree, got stats %+v", lastStats)
	}
}
