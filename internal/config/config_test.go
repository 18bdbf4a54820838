package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadConfigMissingFile(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "missing.toml"))
	if err != nil {
		t.Fatalf("expected missing file to be ignored, got %v", err)
	}
	if cfg.Input.Words != nil || cfg.Report.Top != nil {
		t.Fatalf("expected empty config, got %+v", cfg)
	}
}

func TestLoadConfigSections(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := `
[input]
words = "words.txt"
cache = true

[constraints]
absent = "stnw"
present = ["e:0,2,4"]
perfect = ["l:4"]

[report]
top = 5

[history]
record = true
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if cfg.Input.Words == nil || *cfg.Input.Words != "words.txt" {
		t.Fatalf("unexpected words path: %v", cfg.Input.Words)
	}
	if cfg.Input.Dictionary != nil {
		t.Fatalf("expected unset dictionary")
	}
	if cfg.Input.Cache == nil || !*cfg.Input.Cache {
		t.Fatalf("expected cache enabled")
	}
	if cfg.Constraints.Absent == nil || *cfg.Constraints.Absent != "stnw" {
		t.Fatalf("unexpected absent letters")
	}
	if len(cfg.Constraints.Present) != 1 || cfg.Constraints.Perfect[0] != "l:4" {
		t.Fatalf("unexpected constraint lists: %+v", cfg.Constraints)
	}
	if cfg.Report.Top == nil || *cfg.Report.Top != 5 || cfg.Report.Scores != nil {
		t.Fatalf("unexpected report config: %+v", cfg.Report)
	}
	if cfg.History.Record == nil || !*cfg.History.Record {
		t.Fatalf("expected history recording enabled")
	}
}

func TestLoadConfigRejectsUnknownKey(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("[report]\ncolumns = 3\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	_, err := LoadConfig(path)
	if err == nil || !strings.Contains(err.Error(), "report.columns") {
		t.Fatalf("expected unknown key error, got %v", err)
	}
}

func TestDefaultPathsFollowXDG(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/cfg")
	t.Setenv("XDG_DATA_HOME", "/data")
	if got := DefaultConfigPath(); got != filepath.Join("/cfg", "wordsieve", "config.toml") {
		t.Fatalf("unexpected config path %q", got)
	}
	if got := DefaultDBPath(); got != filepath.Join("/data", "wordsieve", "wordsieve.db") {
		t.Fatalf("unexpected db path %q", got)
	}
	if got := DefaultCacheDir(); got != filepath.Join("/data", "wordsieve", "cache") {
		t.Fatalf("unexpected cache dir %q", got)
	}
}
