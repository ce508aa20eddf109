package fsmeta_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/drozosearch/drozosearch/internal/fsmeta"
)

func TestProbeFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "hello.txt")
	if err := os.WriteFile(path, []byte("hello world"), 0o644); err != nil {
		t.Fatal(err)
	}

	info, ok := fsmeta.Probe(path)
	if !ok {
		t.Fatal("expected ok=true for existing file")
	}
	if info.Size != 11 {
		t.Errorf("size = %d, want 11", info.Size)
	}
	if info.IsDir {
		t.Error("IsDir = true, want false")
	}
	if info.Modified == 0 {
		t.Error("Modified should not be zero for a freshly written file")
	}
	if len(info.Permissions) == 0 {
		t.Error("Permissions should not be empty")
	}
}

func TestProbeDir(t *testing.T) {
	dir := t.TempDir()
	info, ok := fsmeta.Probe(dir)
	if !ok {
		t.Fatal("expected ok=true for existing directory")
	}
	if !info.IsDir {
		t.Error("IsDir = false, want true")
	}
}

func TestProbeMissing(t *testing.T) {
	_, ok := fsmeta.Probe(filepath.Join(t.TempDir(), "does-not-exist"))
	if ok {
		t.Error("expected ok=false for a missing path")
	}
}

func TestProbeMtimeMonotone(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "x.txt")
	if err := os.WriteFile(path, []byte("a"), 0o644); err != nil {
		t.Fatal(err)
	}
	first, _ := fsmeta.Probe(path)

	later := time.Now().Add(time.Hour)
	if err := os.Chtimes(path, later, later); err != nil {
		t.Fatal(err)
	}
	second, _ := fsmeta.Probe(path)

	if second.Modified <= first.Modified {
		t.Errorf("expected modified to advance after utime bump: %d -> %d", first.Modified, second.Modified)
	}
}
