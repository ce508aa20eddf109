package walker_test

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"testing"

	"github.com/drozosearch/drozosearch/internal/walker"
)

func mustWriteFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestWalkFindsFiles(t *testing.T) {
	dir := t.TempDir()
	mustWriteFile(t, filepath.Join(dir, "a.txt"), "a")
	mustWriteFile(t, filepath.Join(dir, "sub", "b.txt"), "b")

	w, err := walker.New(dir)
	if err != nil {
		t.Fatal(err)
	}

	var paths []string
	err = w.Walk(context.Background(), func(e walker.Entry) error {
		if !e.IsDir {
			paths = append(paths, e.RelPath)
		}
		return nil
	})
	if err != nil {
		t.Fatal(err)
	}
	sort.Strings(paths)

	want := []string{"a.txt", "sub/b.txt"}
	if len(paths) != len(want) {
		t.Fatalf("paths = %v, want %v", paths, want)
	}
	for i := range want {
		if paths[i] != want[i] {
			t.Errorf("paths[%d] = %q, want %q", i, paths[i], want[i])
		}
	}
}

func TestWalkSkipsHeavyDirectories(t *testing.T) {
	dir := t.TempDir()
	mustWriteFile(t, filepath.Join(dir, "node_modules", "pkg", "index.js"), "x")
	mustWriteFile(t, filepath.Join(dir, "src", "main.go"), "package main")

	w, err := walker.New(dir)
	if err != nil {
		t.Fatal(err)
	}

	var paths []string
	err = w.Walk(context.Background(), func(e walker.Entry) error {
		if !e.IsDir {
			paths = append(paths, e.RelPath)
		}
		return nil
	})
	if err != nil {
		t.Fatal(err)
	}

	for _, p := range paths {
		if p == "node_modules/pkg/index.js" {
			t.Errorf("expected node_modules to be pruned, found %q", p)
		}
	}
	if len(paths) != 1 || paths[0] != "src/main.go" {
		t.Errorf("paths = %v, want [src/main.go]", paths)
	}
}

func TestWalkIncludesHiddenEntries(t *testing.T) {
	dir := t.TempDir()
	mustWriteFile(t, filepath.Join(dir, ".hidden.txt"), "secret")

	w, err := walker.New(dir)
	if err != nil {
		t.Fatal(err)
	}

	found := false
	err = w.Walk(context.Background(), func(e walker.Entry) error {
		if e.RelPath == ".hidden.txt" {
			found = true
		}
		return nil
	})
	if err != nil {
		t.Fatal(err)
	}
	if !found {
		t.Error("expected hidden entry .hidden.txt to be visited")
	}
}

func TestWalkHonorsGitignore(t *testing.T) {
	dir := t.TempDir()
	mustWriteFile(t, filepath.Join(dir, ".gitignore"), "*.log\n")
	mustWriteFile(t, filepath.Join(dir, "keep.txt"), "keep")
	mustWriteFile(t, filepath.Join(dir, "drop.log"), "drop")

	w, err := walker.New(dir)
	if err != nil {
		t.Fatal(err)
	}

	var paths []string
	err = w.Walk(context.Background(), func(e walker.Entry) error {
		if !e.IsDir {
			paths = append(paths, e.RelPath)
		}
		return nil
	})
	if err != nil {
		t.Fatal(err)
	}

	for _, p := range paths {
		if p == "drop.log" {
			t.Error("expected drop.log to be ignored via .gitignore")
		}
	}
}

func TestGitignoreInsideSkippedDirIsNeverCompiled(t *testing.T) {
	dir := t.TempDir()
	mustWriteFile(t, filepath.Join(dir, "node_modules", ".gitignore"), "*.txt\n")
	mustWriteFile(t, filepath.Join(dir, "node_modules", "pkg", "keep.txt"), "x")
	mustWriteFile(t, filepath.Join(dir, "keep.txt"), "keep")

	w, err := walker.New(dir)
	if err != nil {
		t.Fatal(err)
	}

	var paths []string
	err = w.Walk(context.Background(), func(e walker.Entry) error {
		if !e.IsDir {
			paths = append(paths, e.RelPath)
		}
		return nil
	})
	if err != nil {
		t.Fatal(err)
	}

	if len(paths) != 1 || paths[0] != "keep.txt" {
		t.Errorf("paths = %v, want [keep.txt] (node_modules pruned before its .gitignore could apply)", paths)
	}
}

func TestQuickCountMatchesWalk(t *testing.T) {
	dir := t.TempDir()
	mustWriteFile(t, filepath.Join(dir, "a.txt"), "a")
	mustWriteFile(t, filepath.Join(dir, "b.txt"), "b")
	mustWriteFile(t, filepath.Join(dir, "sub", "c.txt"), "c")

	w, err := walker.New(dir)
	if err != nil {
		t.Fatal(err)
	}

	count, err := w.QuickCount(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if count != 3 {
		t.Errorf("QuickCount = %d, want 3", count)
	}
}
