// Package report renders pipeline results and run history as text.
package report

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"

	"github.com/verte-zerg/wordsieve/internal/model"
)

var headerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A")).Bold(true)

// Options controls report layout.
type Options struct {
	Scores bool
	Color  bool
}

// Render writes the full report for res.
func Render(w io.Writer, res model.Result, opts Options) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintln(bw, "loading word data")
	fmt.Fprintf(bw, "word list count: %d\n", res.WordCount)
	fmt.Fprintf(bw, "dictionary word count: %d\n", res.DictionaryCount)
	fmt.Fprintf(bw, "found %d possible matches.\n", res.SolvedCount)
	fmt.Fprintf(bw, "found %d dictionary matches.\n", res.MatchedCount)

	writeHeader(bw, "==== Sorted by letter frequency", opts.Color)
	writeRanked(bw, res.ByLetters, "Score", opts.Scores)
	writeHeader(bw, "==== Sorted by word frequency", opts.Color)
	writeRanked(bw, res.ByFrequency, "Frequency", opts.Scores)
	writeHeader(bw, "==== Best start word", opts.Color)
	switch {
	case !res.HasBest:
		fmt.Fprintln(bw, "(none)")
	case opts.Scores:
		fmt.Fprintf(bw, "%s %d\n", res.Best.Word, res.Best.Score)
	default:
		fmt.Fprintln(bw, res.Best.Word)
	}
	return bw.Flush()
}

// RenderScores writes a letter score table for words in the given order.
func RenderScores(w io.Writer, words []string, scores []int) error {
	rows := make([][]string, len(words))
	for i, word := range words {
		rows[i] = []string{word, strconv.Itoa(scores[i])}
	}
	return writeLines(w, formatTable([]string{"Word", "Score"}, rows, map[int]bool{1: true}))
}

// UseColor reports whether styled output should be written to w.
func UseColor(w io.Writer) bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	file, ok := w.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(file.Fd()))
}

func writeHeader(w io.Writer, title string, color bool) {
	if color {
		title = headerStyle.Render(title)
	}
	fmt.Fprintln(w, title)
}

func writeRanked(w io.Writer, items []model.ScoredWord, scoreTitle string, scores bool) {
	if !scores {
		for _, item := range items {
			fmt.Fprintln(w, item.Word)
		}
		return
	}
	if len(items) == 0 {
		return
	}
	rows := make([][]string, len(items))
	for i, item := range items {
		rows[i] = []string{strconv.Itoa(i + 1), item.Word, strconv.Itoa(item.Score)}
	}
	for _, line := range formatTable([]string{"#", "Word", scoreTitle}, rows, map[int]bool{0: true, 2: true}) {
		fmt.Fprintln(w, line)
	}
}

func writeLines(w io.Writer, lines []string) error {
	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}
