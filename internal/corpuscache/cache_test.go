package corpuscache

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"github.com/verte-zerg/wordsieve/internal/model"
)

func writeSource(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, "words.txt")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write source: %v", err)
	}
	return path
}

func TestStoreThenLoad(t *testing.T) {
	dir := t.TempDir()
	source := writeSource(t, dir, "1\tcrane\t5\n")
	cache := New(filepath.Join(dir, "cache"))

	if _, ok, err := cache.Load(source); err != nil || ok {
		t.Fatalf("expected a miss before Store, ok=%v err=%v", ok, err)
	}

	entries := []model.Entry{{Word: "crane", Freq: 5}, {Word: "slate", Freq: 3}}
	if err := cache.Store(source, entries); err != nil {
		t.Fatalf("Store failed: %v", err)
	}
	got, ok, err := cache.Load(source)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if !ok {
		t.Fatalf("expected a cache hit")
	}
	if !reflect.DeepEqual(got, entries) {
		t.Fatalf("expected %v, got %v", entries, got)
	}
}

func TestModifiedSourceInvalidates(t *testing.T) {
	dir := t.TempDir()
	source := writeSource(t, dir, "1\tcrane\t5\n")
	cache := New(filepath.Join(dir, "cache"))
	if err := cache.Store(source, []model.Entry{{Word: "crane", Freq: 5}}); err != nil {
		t.Fatalf("Store failed: %v", err)
	}

	writeSource(t, dir, "1\tcrane\t5\n2\tslate\t3\n")
	later := time.Now().Add(time.Hour)
	if err := os.Chtimes(source, later, later); err != nil {
		t.Fatalf("chtimes: %v", err)
	}
	if _, ok, err := cache.Load(source); err != nil || ok {
		t.Fatalf("expected stale cache to miss, ok=%v err=%v", ok, err)
	}
}

func TestCorruptCacheReportsError(t *testing.T) {
	dir := t.TempDir()
	source := writeSource(t, dir, "1\tcrane\t5\n")
	cache := New(filepath.Join(dir, "cache"))
	if err := cache.Store(source, []model.Entry{{Word: "crane", Freq: 5}}); err != nil {
		t.Fatalf("Store failed: %v", err)
	}
	abs, err := filepath.Abs(source)
	if err != nil {
		t.Fatalf("abs: %v", err)
	}
	if err := os.WriteFile(cache.path(abs), []byte{0xc1}, 0o644); err != nil {
		t.Fatalf("corrupt cache: %v", err)
	}
	if _, ok, err := cache.Load(source); err == nil || ok {
		t.Fatalf("expected corrupt cache to fail, ok=%v err=%v", ok, err)
	}
}
