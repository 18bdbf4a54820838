// Package corpuscache keeps parsed frequency lists as MessagePack files so
// large corpora are not reparsed on every run.
package corpuscache

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/verte-zerg/wordsieve/internal/model"
)

const formatVersion = 1

// Cache stores parsed entries under dir, one file per source path.
type Cache struct {
	dir string
}

type stamp struct {
	Source  string `msgpack:"source"`
	Size    int64  `msgpack:"size"`
	ModTime int64  `msgpack:"mtime"`
}

type record struct {
	Version int      `msgpack:"v"`
	Stamp   stamp    `msgpack:"stamp"`
	Words   []string `msgpack:"words"`
	Freqs   []int    `msgpack:"freqs"`
}

// New returns a cache rooted at dir.
func New(dir string) *Cache {
	return &Cache{dir: dir}
}

// Load returns the cached entries for source. ok is false when there is no
// cache or the source changed since it was written.
func (c *Cache) Load(source string) (entries []model.Entry, ok bool, err error) {
	st, err := sourceStamp(source)
	if err != nil {
		return nil, false, err
	}
	data, err := os.ReadFile(c.path(st.Source))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("failed to read cache: %w", err)
	}
	var rec record
	if err := msgpack.Unmarshal(data, &rec); err != nil {
		return nil, false, fmt.Errorf("failed to decode cache: %w", err)
	}
	if rec.Version != formatVersion || rec.Stamp != st {
		return nil, false, nil
	}
	if len(rec.Words) != len(rec.Freqs) {
		return nil, false, fmt.Errorf("corrupt cache: %d words, %d frequencies", len(rec.Words), len(rec.Freqs))
	}
	entries = make([]model.Entry, len(rec.Words))
	for i := range rec.Words {
		entries[i] = model.Entry{Word: rec.Words[i], Freq: rec.Freqs[i]}
	}
	return entries, true, nil
}

// Store writes entries for source, replacing any previous cache.
func (c *Cache) Store(source string, entries []model.Entry) error {
	st, err := sourceStamp(source)
	if err != nil {
		return err
	}
	rec := record{
		Version: formatVersion,
		Stamp:   st,
		Words:   make([]string, len(entries)),
		Freqs:   make([]int, len(entries)),
	}
	for i, e := range entries {
		rec.Words[i] = e.Word
		rec.Freqs[i] = e.Freq
	}
	data, err := msgpack.Marshal(&rec)
	if err != nil {
		return fmt.Errorf("failed to encode cache: %w", err)
	}

	if err := os.MkdirAll(c.dir, 0o755); err != nil {
		return fmt.Errorf("failed to create cache dir: %w", err)
	}
	tmpFile, err := os.CreateTemp(c.dir, "corpus-*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp cache: %w", err)
	}
	tmpPath := tmpFile.Name()
	defer func() {
		_ = tmpFile.Close()
		_ = os.Remove(tmpPath)
	}()
	if _, err := tmpFile.Write(data); err != nil {
		return fmt.Errorf("failed to write cache: %w", err)
	}
	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("failed to close cache: %w", err)
	}
	if err := os.Rename(tmpPath, c.path(st.Source)); err != nil {
		return fmt.Errorf("failed to move cache into place: %w", err)
	}
	return nil
}

func (c *Cache) path(source string) string {
	sum := sha256.Sum256([]byte(source))
	return filepath.Join(c.dir, hex.EncodeToString(sum[:12])+".msgpack")
}

func sourceStamp(source string) (stamp, error) {
	abs, err := filepath.Abs(source)
	if err != nil {
		return stamp{}, fmt.Errorf("failed to resolve %s: %w", source, err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return stamp{}, err
	}
	return stamp{Source: abs, Size: info.Size(), ModTime: info.ModTime().UnixNano()}, nil
}
