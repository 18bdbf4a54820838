// Package rank orders candidate words and finds the best start word.
package rank

import (
	"context"
	"runtime"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/verte-zerg/wordsieve/internal/letters"
	"github.com/verte-zerg/wordsieve/internal/model"
)

// DefaultTop is the number of entries a ranking reports.
const DefaultTop = 15

const scoreChunk = 4096

// ByLetterScore orders words by letter frequency score, highest first.
// Ties keep the input order.
func ByLetterScore(words []string) []model.ScoredWord {
	items := make([]model.ScoredWord, len(words))
	for i, word := range words {
		items[i] = model.ScoredWord{Word: word, Score: letters.Score(word)}
	}
	sortDescending(items)
	return items
}

// ByWordFrequency orders words by usage frequency, highest first. Words
// missing from freqs rank as zero. Ties keep the input order.
func ByWordFrequency(words []string, freqs map[string]int) []model.ScoredWord {
	items := make([]model.ScoredWord, len(words))
	for i, word := range words {
		items[i] = model.ScoredWord{Word: word, Score: freqs[word]}
	}
	sortDescending(items)
	return items
}

// Top returns at most n leading items.
func Top(items []model.ScoredWord, n int) []model.ScoredWord {
	if n <= 0 || len(items) == 0 {
		return nil
	}
	if n > len(items) {
		n = len(items)
	}
	return items[:n]
}

// ScoreAll scores every word concurrently. Result i belongs to words[i].
func ScoreAll(ctx context.Context, words []string) ([]int, error) {
	scores := make([]int, len(words))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for start := 0; start < len(words); start += scoreChunk {
		end := start + scoreChunk
		if end > len(words) {
			end = len(words)
		}
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			for i := start; i < end; i++ {
				scores[i] = letters.Score(words[i])
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return scores, nil
}

// BestStart returns the first word with the strictly highest letter score.
// ok is false when words is empty.
func BestStart(ctx context.Context, words []string) (best model.ScoredWord, ok bool, err error) {
	if len(words) == 0 {
		return model.ScoredWord{}, false, nil
	}
	scores, err := ScoreAll(ctx, words)
	if err != nil {
		return model.ScoredWord{}, false, err
	}
	best = model.ScoredWord{Word: words[0], Score: scores[0]}
	for i := 1; i < len(words); i++ {
		if scores[i] > best.Score {
			best = model.ScoredWord{Word: words[i], Score: scores[i]}
		}
	}
	return best, true, nil
}

func sortDescending(items []model.ScoredWord) {
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].Score > items[j].Score
	})
}
