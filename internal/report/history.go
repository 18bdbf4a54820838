package report

import (
	"fmt"
	"io"
	"strconv"

	"github.com/verte-zerg/wordsieve/internal/model"
)

const historyTimeLayout = "2006-01-02 15:04:05"

// RenderHistory writes recorded runs as a table.
func RenderHistory(w io.Writer, runs []model.RunRecord) error {
	if len(runs) == 0 {
		_, err := fmt.Fprintln(w, "no recorded runs")
		return err
	}
	headers := []string{"ID", "Started", "Words", "Dict", "Solved", "Matched", "Best", "Constraints"}
	rows := make([][]string, len(runs))
	for i, run := range runs {
		best := run.BestStart
		if best == "" {
			best = "-"
		}
		rows[i] = []string{
			strconv.FormatInt(run.ID, 10),
			run.StartedAt.Local().Format(historyTimeLayout),
			strconv.Itoa(run.WordCount),
			strconv.Itoa(run.DictionaryCount),
			strconv.Itoa(run.SolvedCount),
			strconv.Itoa(run.MatchedCount),
			best,
			run.Constraints,
		}
	}
	rightAlign := map[int]bool{0: true, 2: true, 3: true, 4: true, 5: true}
	return writeLines(w, formatTable(headers, rows, rightAlign))
}

// RenderRankedWords writes the top lists recorded for one run.
func RenderRankedWords(w io.Writer, runID int64, ranked []model.RankedWord) error {
	if len(ranked) == 0 {
		_, err := fmt.Fprintf(w, "no ranked words for run %d\n", runID)
		return err
	}
	headers := []string{"Ranking", "#", "Word", "Score"}
	rows := make([][]string, len(ranked))
	for i, rw := range ranked {
		rows[i] = []string{rw.Ranking, strconv.Itoa(rw.Rank), rw.Word, strconv.Itoa(rw.Score)}
	}
	rightAlign := map[int]bool{1: true, 3: true}
	return writeLines(w, formatTable(headers, rows, rightAlign))
}
