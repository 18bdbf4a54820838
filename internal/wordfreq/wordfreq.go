// Package wordfreq builds frequency word lists from the wordfreq dataset.
package wordfreq

import (
	"archive/zip"
	"bufio"
	"compress/gzip"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"net/http"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/schollz/progressbar/v3"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/verte-zerg/wordsieve/internal/model"
	"github.com/verte-zerg/wordsieve/internal/wordlist"
)

const pypiEndpoint = "https://pypi.org/pypi/wordfreq/json"

// Frequencies are scaled to occurrences per billion words.
const perBillion = 1e9

// Wheel describes a cached wordfreq wheel.
type Wheel struct {
	Version  string
	Path     string
	Filename string
	Cached   bool
}

type pypiURL struct {
	URL         string `json:"url"`
	Filename    string `json:"filename"`
	Packagetype string `json:"packagetype"`
}

type pypiResponse struct {
	Info struct {
		Version string `json:"version"`
	} `json:"info"`
	URLs []pypiURL `json:"urls"`
}

// DownloadLatestWheel fetches the latest wordfreq wheel into cacheDir.
// An existing wheel for the same release is reused.
func DownloadLatestWheel(ctx context.Context, cacheDir string, progress bool) (Wheel, error) {
	if cacheDir == "" {
		return Wheel{}, fmt.Errorf("cache directory is required")
	}
	if err := os.MkdirAll(cacheDir, 0o755); err != nil {
		return Wheel{}, fmt.Errorf("failed to create cache dir: %w", err)
	}

	resp, err := httpRequest(ctx, pypiEndpoint)
	if err != nil {
		return Wheel{}, err
	}
	defer func() {
		_ = resp.Body.Close()
	}()
	if resp.StatusCode != http.StatusOK {
		return Wheel{}, fmt.Errorf("unexpected pypi status: %s", resp.Status)
	}

	var payload pypiResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return Wheel{}, fmt.Errorf("failed to decode pypi response: %w", err)
	}
	if payload.Info.Version == "" {
		return Wheel{}, fmt.Errorf("missing version in pypi response")
	}
	url, filename := pickWheelURL(payload.URLs)
	if url == "" {
		return Wheel{}, fmt.Errorf("no suitable wordfreq wheel found")
	}

	wheel := Wheel{Version: payload.Info.Version, Path: filepath.Join(cacheDir, filename), Filename: filename}
	if _, err := os.Stat(wheel.Path); err == nil {
		wheel.Cached = true
		return wheel, nil
	} else if !errors.Is(err, os.ErrNotExist) {
		return Wheel{}, fmt.Errorf("failed to stat cached wheel: %w", err)
	}

	wheelResp, err := httpRequest(ctx, url)
	if err != nil {
		return Wheel{}, err
	}
	defer func() {
		_ = wheelResp.Body.Close()
	}()
	if wheelResp.StatusCode != http.StatusOK {
		return Wheel{}, fmt.Errorf("unexpected wheel status: %s", wheelResp.Status)
	}

	var body io.Reader = wheelResp.Body
	if progress {
		bar := progressbar.NewOptions64(wheelResp.ContentLength,
			progressbar.OptionSetDescription(filename),
			progressbar.OptionSetWriter(os.Stderr),
			progressbar.OptionShowBytes(true),
			progressbar.OptionClearOnFinish(),
		)
		defer func() {
			_ = bar.Finish()
		}()
		body = io.TeeReader(wheelResp.Body, bar)
	}
	if err := writeAtomic(wheel.Path, "wordfreq-*.whl", func(w io.Writer) error {
		_, err := io.Copy(w, body)
		return err
	}); err != nil {
		return Wheel{}, fmt.Errorf("failed to download wheel: %w", err)
	}
	return wheel, nil
}

// ReadEntries returns the five-letter words of a language in the wheel,
// most frequent first. Frequencies are per billion words.
func ReadEntries(wheelPath, lang string) ([]model.Entry, error) {
	lang = strings.ToLower(strings.TrimSpace(lang))
	if lang == "" {
		return nil, fmt.Errorf("language is required")
	}
	reader, err := zip.OpenReader(wheelPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open wheel: %w", err)
	}
	defer func() {
		_ = reader.Close()
	}()

	dataFile := selectDataFile(reader.File, lang)
	if dataFile == nil {
		available := languages(reader.File)
		if len(available) == 0 {
			return nil, fmt.Errorf("no word data for language %q: wheel has no word lists", lang)
		}
		return nil, fmt.Errorf("no word data for language %q (available: %s)", lang, strings.Join(available, ", "))
	}
	rc, err := dataFile.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open data file: %w", err)
	}
	defer func() {
		_ = rc.Close()
	}()

	var r io.Reader = rc
	if strings.HasSuffix(dataFile.Name, ".gz") {
		gz, err := gzip.NewReader(rc)
		if err != nil {
			return nil, fmt.Errorf("failed to create gzip reader: %w", err)
		}
		defer func() {
			_ = gz.Close()
		}()
		r = gz
	}
	buckets, err := decodeBuckets(r)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", dataFile.Name, err)
	}

	var entries []model.Entry
	seen := make(map[string]struct{})
	for i, bucket := range buckets {
		freq := bucketFrequency(i)
		for _, raw := range bucket {
			word, ok := wordlist.Normalize(raw)
			if !ok {
				continue
			}
			if _, dup := seen[word]; dup {
				continue
			}
			seen[word] = struct{}{}
			entries = append(entries, model.Entry{Word: word, Freq: freq})
		}
	}
	if len(entries) == 0 {
		return nil, fmt.Errorf("no five-letter words found for %q", lang)
	}
	return entries, nil
}

// ListLanguages returns the sorted language codes the wheel has word data for.
func ListLanguages(wheelPath string) ([]string, error) {
	reader, err := zip.OpenReader(wheelPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open wheel: %w", err)
	}
	defer func() {
		_ = reader.Close()
	}()
	langs := languages(reader.File)
	if len(langs) == 0 {
		return nil, fmt.Errorf("no languages found in wordfreq wheel")
	}
	return langs, nil
}

// WriteAttribution writes the wordfreq attribution and license files into
// outDir, next to a generated word list.
func WriteAttribution(wheelPath, outDir string) error {
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return fmt.Errorf("failed to create output dir: %w", err)
	}
	licenseText, err := readWheelLicense(wheelPath)
	if err != nil {
		return err
	}

	files := []struct {
		name string
		data []byte
	}{
		{name: "ATTRIBUTION.txt", data: []byte(strings.Join([]string{
			"Word list generated from the wordfreq dataset.",
			"Source: https://github.com/rspeer/wordfreq",
			"Data license: Creative Commons Attribution-ShareAlike 4.0 International (CC BY-SA 4.0).",
			"This word list is licensed CC BY-SA 4.0: https://creativecommons.org/licenses/by-sa/4.0/",
			"Changes were made: filtered to five-letter ASCII words, lowercased and deduplicated.",
			"Frequencies are bucket midpoints scaled to occurrences per billion words.",
			"For upstream sources, see the wordfreq project documentation.",
			"",
		}, "\n"))},
		{name: "LICENSE.txt", data: licenseText},
		{name: "DATA_LICENSE.txt", data: []byte(strings.Join([]string{
			"This word list is licensed under CC BY-SA 4.0.",
			"https://creativecommons.org/licenses/by-sa/4.0/",
			"",
		}, "\n"))},
	}
	for _, f := range files {
		if err := os.WriteFile(filepath.Join(outDir, f.name), f.data, 0o644); err != nil {
			return fmt.Errorf("failed to write %s: %w", f.name, err)
		}
	}
	return nil
}

// WriteList writes entries in the primary list format: rank, word and
// frequency separated by tabs.
func WriteList(path string, entries []model.Entry) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create word list dir: %w", err)
	}
	return writeAtomic(path, "wordlist-*.txt", func(w io.Writer) error {
		writer := bufio.NewWriter(w)
		for i, entry := range entries {
			if _, err := fmt.Fprintf(writer, "%d\t%s\t%d\n", i+1, entry.Word, entry.Freq); err != nil {
				return err
			}
		}
		return writer.Flush()
	})
}

// decodeBuckets reads the cB pack layout: a header map followed by word
// lists, where list i holds words at -i centibels.
func decodeBuckets(r io.Reader) ([][]string, error) {
	var payload []interface{}
	if err := msgpack.NewDecoder(r).Decode(&payload); err != nil {
		return nil, fmt.Errorf("failed to decode word data: %w", err)
	}
	if len(payload) == 0 {
		return nil, fmt.Errorf("word data is empty")
	}
	header, ok := payload[0].(map[string]interface{})
	if !ok || header["format"] != "cB" {
		return nil, fmt.Errorf("unsupported word data header %v", payload[0])
	}
	buckets := make([][]string, 0, len(payload)-1)
	for _, item := range payload[1:] {
		list, ok := item.([]interface{})
		if !ok {
			return nil, fmt.Errorf("unsupported bucket type %T", item)
		}
		words := make([]string, 0, len(list))
		for _, w := range list {
			if s, ok := w.(string); ok {
				words = append(words, s)
			}
		}
		buckets = append(buckets, words)
	}
	return buckets, nil
}

func bucketFrequency(index int) int {
	return int(math.Round(perBillion * math.Pow(10, -float64(index)/100)))
}

func selectDataFile(files []*zip.File, lang string) *zip.File {
	var small *zip.File
	for _, file := range files {
		name := strings.ToLower(file.Name)
		switch name {
		case "wordfreq/data/large_" + lang + ".msgpack.gz", "wordfreq/data/large_" + lang + ".msgpack":
			return file
		case "wordfreq/data/small_" + lang + ".msgpack.gz", "wordfreq/data/small_" + lang + ".msgpack":
			small = file
		}
	}
	return small
}

func languages(files []*zip.File) []string {
	seen := make(map[string]struct{})
	for _, file := range files {
		if lang := dataFileLanguage(file.Name); lang != "" {
			seen[lang] = struct{}{}
		}
	}
	out := make([]string, 0, len(seen))
	for lang := range seen {
		out = append(out, lang)
	}
	sort.Strings(out)
	return out
}

// dataFileLanguage extracts the code from wordfreq/data/{large,small}_<lang>.msgpack[.gz].
func dataFileLanguage(name string) string {
	name = strings.ToLower(name)
	base, ok := strings.CutPrefix(name, "wordfreq/data/")
	if !ok {
		return ""
	}
	base = strings.TrimSuffix(base, ".gz")
	base, ok = strings.CutSuffix(base, ".msgpack")
	if !ok {
		return ""
	}
	for _, prefix := range []string{"large_", "small_"} {
		if lang, ok := strings.CutPrefix(base, prefix); ok && lang != "" {
			return lang
		}
	}
	return ""
}

func readWheelLicense(wheelPath string) ([]byte, error) {
	reader, err := zip.OpenReader(wheelPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open wheel for license: %w", err)
	}
	defer func() {
		_ = reader.Close()
	}()

	for _, file := range reader.File {
		if !strings.Contains(strings.ToLower(file.Name), "license") {
			continue
		}
		rc, err := file.Open()
		if err != nil {
			return nil, fmt.Errorf("failed to open license: %w", err)
		}
		data, err := io.ReadAll(rc)
		_ = rc.Close()
		if err != nil {
			return nil, fmt.Errorf("failed to read license: %w", err)
		}
		return data, nil
	}
	return nil, fmt.Errorf("license file not found in wheel")
}

func pickWheelURL(urls []pypiURL) (string, string) {
	for _, u := range urls {
		if u.Packagetype == "bdist_wheel" && strings.HasSuffix(u.Filename, "py3-none-any.whl") {
			return u.URL, u.Filename
		}
	}
	for _, u := range urls {
		if u.Packagetype == "bdist_wheel" {
			return u.URL, u.Filename
		}
	}
	return "", ""
}

func httpRequest(ctx context.Context, url string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	client := &http.Client{Timeout: 60 * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	return resp, nil
}

func writeAtomic(path, pattern string, write func(io.Writer) error) error {
	tmpFile, err := os.CreateTemp(filepath.Dir(path), pattern)
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmpFile.Name()
	defer func() {
		_ = tmpFile.Close()
		_ = os.Remove(tmpPath)
	}()
	if err := write(tmpFile); err != nil {
		return err
	}
	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}
	return os.Rename(tmpPath, path)
}
