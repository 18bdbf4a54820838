package wordlist

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/schollz/progressbar/v3"

	"github.com/verte-zerg/wordsieve/internal/model"
)

// ErrBadFrequency is returned when a valid word carries a frequency that is
// not an integer.
var ErrBadFrequency = errors.New("bad frequency")

const maxLineSize = 1024 * 1024

// Option customizes list loading.
type Option func(*loadOptions)

type loadOptions struct {
	progress bool
	label    string
}

// WithProgress renders a byte progress bar on stderr while the file is read.
func WithProgress(label string) Option {
	return func(o *loadOptions) {
		o.progress = true
		o.label = label
	}
}

// LoadWords reads one word per line from the provided file path. Lines that
// fail normalization are skipped.
func LoadWords(path string, opts ...Option) ([]string, error) {
	var words []string
	err := withFile(path, opts, func(r io.Reader) error {
		var err error
		words, err = ReadWords(r)
		return err
	})
	if err != nil {
		return nil, err
	}
	return words, nil
}

// LoadFrequencies reads a tab separated frequency list from path.
func LoadFrequencies(path string, opts ...Option) ([]model.Entry, error) {
	var entries []model.Entry
	err := withFile(path, opts, func(r io.Reader) error {
		var err error
		entries, err = ReadFrequencies(r)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return entries, nil
}

// ReadWords normalizes one word per line.
func ReadWords(r io.Reader) ([]string, error) {
	var words []string
	scanner := newScanner(r)
	for scanner.Scan() {
		if word, ok := Normalize(scanner.Text()); ok {
			words = append(words, word)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return words, nil
}

// ReadFrequencies parses lines of the form "<id>\t<word>\t<frequency>".
// Columns after the frequency are ignored. The word is validated before the
// frequency is looked at, so invalid words never fail the read. A valid word
// without an integer frequency does.
func ReadFrequencies(r io.Reader) ([]model.Entry, error) {
	var entries []model.Entry
	scanner := newScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		fields := strings.Split(scanner.Text(), "\t")
		if len(fields) < 2 {
			continue
		}
		word, ok := Normalize(fields[1])
		if !ok {
			continue
		}
		if len(fields) < 3 {
			return nil, fmt.Errorf("line %d: %w: missing frequency for %q", lineNo, ErrBadFrequency, word)
		}
		freq, err := strconv.Atoi(strings.TrimSpace(fields[2]))
		if err != nil {
			return nil, fmt.Errorf("line %d: %w: %q for %q", lineNo, ErrBadFrequency, fields[2], word)
		}
		entries = append(entries, model.Entry{Word: word, Freq: freq})
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return entries, nil
}

// Words returns the words of entries in order.
func Words(entries []model.Entry) []string {
	words := make([]string, len(entries))
	for i, e := range entries {
		words[i] = e.Word
	}
	return words
}

// FirstFrequencies maps each word to the frequency of its first occurrence.
func FirstFrequencies(entries []model.Entry) map[string]int {
	freqs := make(map[string]int, len(entries))
	for _, e := range entries {
		if _, ok := freqs[e.Word]; ok {
			continue
		}
		freqs[e.Word] = e.Freq
	}
	return freqs
}

func newScanner(r io.Reader) *bufio.Scanner {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	return scanner
}

func withFile(path string, opts []Option, read func(io.Reader) error) error {
	var o loadOptions
	for _, opt := range opts {
		opt(&o)
	}
	file, err := os.Open(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := file.Close(); cerr != nil {
			// Best-effort close for read-only word list.
			_ = cerr
		}
	}()

	var r io.Reader = file
	if o.progress {
		size := int64(-1)
		if info, err := file.Stat(); err == nil {
			size = info.Size()
		}
		bar := progressbar.NewOptions64(size,
			progressbar.OptionSetDescription(o.label),
			progressbar.OptionSetWriter(os.Stderr),
			progressbar.OptionShowBytes(true),
			progressbar.OptionSetWidth(10),
			progressbar.OptionThrottle(65*time.Millisecond),
			progressbar.OptionShowCount(),
			progressbar.OptionClearOnFinish(),
			progressbar.OptionFullWidth(),
		)
		defer func() {
			_ = bar.Finish()
		}()
		r = io.TeeReader(file, bar)
	}
	return read(r)
}
