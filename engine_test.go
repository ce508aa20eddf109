package drozosearch_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	drozosearch "github.com/drozosearch/drozosearch"
)

func TestOpenCreatesIndexAndSearches(t *testing.T) {
	root := t.TempDir()
	if err := os.WriteFile(filepath.Join(root, "readme.md"), []byte("project overview"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg := drozosearch.Config{
		RootDirs:       []string{root},
		IndexPath:      filepath.Join(t.TempDir(), "index"),
		MaxFileSize:    10 * 1024 * 1024,
		CommitInterval: 100,
	}

	engine, err := drozosearch.Open(cfg)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer engine.Close()

	h := engine.StartIndexing(context.Background(), nil, nil)
	if err := h.Wait(); err != nil {
		t.Fatalf("indexing: %v", err)
	}

	count, err := engine.DocCount()
	if err != nil {
		t.Fatal(err)
	}
	if count != 1 {
		t.Fatalf("DocCount = %d, want 1", count)
	}

	results, err := engine.Search("readme", 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(results) == 0 {
		t.Fatal("expected at least one result for 'readme'")
	}
}

func TestOpenReopensExistingIndex(t *testing.T) {
	indexPath := filepath.Join(t.TempDir(), "index")
	cfg := drozosearch.Config{
		RootDirs:       []string{t.TempDir()},
		IndexPath:      indexPath,
		MaxFileSize:    10 * 1024 * 1024,
		CommitInterval: 100,
	}

	e1, err := drozosearch.Open(cfg)
	if err != nil {
		t.Fatalf("first Open: %v", err)
	}
	if err := e1.Close(); err != nil {
		t.Fatal(err)
	}

	e2, err := drozosearch.Open(cfg)
	if err != nil {
		t.Fatalf("reopening existing index: %v", err)
	}
	defer e2.Close()
}
