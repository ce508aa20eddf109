package applog_test

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"

	"github.com/drozosearch/drozosearch/internal/applog"
)

func TestSetupWithWriterTextFormat(t *testing.T) {
	var buf bytes.Buffer
	applog.SetupWithWriter(slog.LevelInfo, "text", &buf)
	slog.Default().Info("hello", "k", "v")

	if !strings.Contains(buf.String(), "hello") {
		t.Errorf("expected log output to contain message, got %q", buf.String())
	}
}

func TestSetupWithWriterJSONFormat(t *testing.T) {
	var buf bytes.Buffer
	applog.SetupWithWriter(slog.LevelInfo, "json", &buf)
	slog.Default().Info("hello")

	if !strings.Contains(buf.String(), `"msg":"hello"`) {
		t.Errorf("expected JSON log output, got %q", buf.String())
	}
}

func TestResolveLevelDefaultsToInfo(t *testing.T) {
	t.Setenv("DROZOSEARCH_DEBUG", "")
	if got := applog.ResolveLevel(false); got != slog.LevelInfo {
		t.Errorf("ResolveLevel(false) = %v, want Info", got)
	}
}

func TestResolveLevelVerbose(t *testing.T) {
	t.Setenv("DROZOSEARCH_DEBUG", "")
	if got := applog.ResolveLevel(true); got != slog.LevelDebug {
		t.Errorf("ResolveLevel(true) = %v, want Debug", got)
	}
}

func TestResolveLevelEnvOverride(t *testing.T) {
	t.Setenv("DROZOSEARCH_DEBUG", "1")
	if got := applog.ResolveLevel(false); got != slog.LevelDebug {
		t.Errorf("ResolveLevel with DROZOSEARCH_DEBUG=1 = %v, want Debug", got)
	}
}
