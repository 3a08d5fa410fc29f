package logger

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"VERBOSE": slog.LevelDebug,
		"warning": slog.LevelWarn,
		"error":   slog.LevelError,
		"info":    slog.LevelInfo,
		"":        slog.LevelInfo,
		"chatty":  slog.LevelInfo,
	}
	for in, want := range tests {
		if got := ParseLevel(in); got != want {
			t.Errorf("ParseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestInitFileOutput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "pricer.log")
	if err := Init(Config{Level: "debug", Format: "json", Output: "file", File: path}); err != nil {
		t.Fatalf("Init: %v", err)
	}
	t.Cleanup(func() { Close() })

	L().Debug("priced", "model", "analytic")
	LogDuration("replicates finished", "count", 3)()
	if err := Close(); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	out := string(data)
	for _, want := range []string{`"msg":"priced"`, `"model":"analytic"`, `"duration"`, `"level":"DEBUG"`} {
		if !strings.Contains(out, want) {
			t.Errorf("log lacks %s:\n%s", want, out)
		}
	}
}
