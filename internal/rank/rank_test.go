package rank

import (
	"context"
	"fmt"
	"testing"

	"github.com/verte-zerg/wordsieve/internal/letters"
	"github.com/verte-zerg/wordsieve/internal/model"
)

func words(items []model.ScoredWord) []string {
	out := make([]string, len(items))
	for i, item := range items {
		out[i] = item.Word
	}
	return out
}

func TestByLetterScoreStable(t *testing.T) {
	// abcde and edcba tie; input order must survive.
	ranked := ByLetterScore([]string{"abcde", "fuzzy", "edcba", "irate"})
	got := words(ranked)
	expected := []string{"irate", "abcde", "edcba", "fuzzy"}
	if fmt.Sprint(got) != fmt.Sprint(expected) {
		t.Fatalf("expected %v, got %v", expected, got)
	}
	if ranked[0].Score != letters.Score("irate") {
		t.Fatalf("expected score to be carried, got %d", ranked[0].Score)
	}
}

func TestByWordFrequency(t *testing.T) {
	freqs := map[string]int{"belly": 10, "jewel": 40, "model": 40}
	ranked := ByWordFrequency([]string{"belly", "bevel", "jewel", "model"}, freqs)
	got := words(ranked)
	expected := []string{"jewel", "model", "belly", "bevel"}
	if fmt.Sprint(got) != fmt.Sprint(expected) {
		t.Fatalf("expected %v, got %v", expected, got)
	}
}

func TestTop(t *testing.T) {
	items := ByLetterScore([]string{"a", "b", "c"})
	if len(Top(items, 2)) != 2 {
		t.Fatalf("expected 2 items")
	}
	if len(Top(items, 15)) != 3 {
		t.Fatalf("expected all 3 items")
	}
	if Top(items, 0) != nil || Top(nil, 5) != nil {
		t.Fatalf("expected nil for empty top")
	}
}

func TestBestStartFirstMaximumWins(t *testing.T) {
	list := []string{"fuzzy", "irate", "crane", "terai", "irate"}
	best, ok, err := BestStart(context.Background(), list)
	if err != nil {
		t.Fatalf("BestStart failed: %v", err)
	}
	if !ok {
		t.Fatalf("expected a best word")
	}
	// irate and terai share letters and score; the first one wins.
	if best.Word != "irate" {
		t.Fatalf("expected irate, got %q", best.Word)
	}
	if best.Score != letters.Score("irate") {
		t.Fatalf("unexpected score %d", best.Score)
	}
}

func TestBestStartEmpty(t *testing.T) {
	_, ok, err := BestStart(context.Background(), nil)
	if err != nil || ok {
		t.Fatalf("expected no best word for empty list, ok=%v err=%v", ok, err)
	}
}

func TestScoreAllMatchesSequential(t *testing.T) {
	list := make([]string, 0, 3*scoreChunk+7)
	seed := []string{"crane", "fuzzy", "eerie", "jumpy", "otter"}
	for i := 0; i < cap(list); i++ {
		list = append(list, seed[i%len(seed)])
	}
	scores, err := ScoreAll(context.Background(), list)
	if err != nil {
		t.Fatalf("ScoreAll failed: %v", err)
	}
	for i, word := range list {
		if scores[i] != letters.Score(word) {
			t.Fatalf("score mismatch at %d", i)
		}
	}
}

func TestScoreAllCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := ScoreAll(ctx, []string{"crane"}); err == nil {
		t.Fatalf("expected cancelled context to fail")
	}
}
