package appconfig_test

import (
	"os"
	"testing"

	"github.com/drozosearch/drozosearch/internal/appconfig"
)

func TestDefaultPopulatesRootDirs(t *testing.T) {
	cfg, err := appconfig.Default()
	if err != nil {
		t.Fatal(err)
	}
	if len(cfg.RootDirs) != 1 {
		t.Fatalf("RootDirs = %v, want exactly one entry (home)", cfg.RootDirs)
	}
	if cfg.MaxFileSize != 10*1024*1024 {
		t.Errorf("MaxFileSize = %d, want 10 MiB", cfg.MaxFileSize)
	}
	if cfg.CommitInterval != 10_000 {
		t.Errorf("CommitInterval = %d, want 10000", cfg.CommitInterval)
	}
}

func TestLoadWithNoOverrideFileReturnsDefaults(t *testing.T) {
	dir := t.TempDir()
	restore := chdir(t, dir)
	defer restore()

	cfg, err := appconfig.Load()
	if err != nil {
		t.Fatal(err)
	}
	def, _ := appconfig.Default()
	if cfg.IndexPath != def.IndexPath {
		t.Errorf("IndexPath = %q, want default %q", cfg.IndexPath, def.IndexPath)
	}
}

func TestLoadAppliesOverrideFile(t *testing.T) {
	dir := t.TempDir()
	restore := chdir(t, dir)
	defer restore()

	override := "index-path = \"/tmp/custom-index\"\nmax-file-size = 2048\n"
	if err := os.WriteFile(".drozosearch.toml", []byte(override), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := appconfig.Load()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.IndexPath != "/tmp/custom-index" {
		t.Errorf("IndexPath = %q, want /tmp/custom-index", cfg.IndexPath)
	}
	if cfg.MaxFileSize != 2048 {
		t.Errorf("MaxFileSize = %d, want 2048", cfg.MaxFileSize)
	}
}

func chdir(t *testing.T, dir string) func() {
	t.Helper()
	wd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	return func() { _ = os.Chdir(wd) }
}
