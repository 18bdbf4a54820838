// Package pipeline loads the word lists, filters them through the
// constraints and ranks the survivors.
package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/verte-zerg/wordsieve/internal/constraint"
	"github.com/verte-zerg/wordsieve/internal/corpuscache"
	"github.com/verte-zerg/wordsieve/internal/dictionary"
	"github.com/verte-zerg/wordsieve/internal/logger"
	"github.com/verte-zerg/wordsieve/internal/model"
	"github.com/verte-zerg/wordsieve/internal/rank"
	"github.com/verte-zerg/wordsieve/internal/store"
	"github.com/verte-zerg/wordsieve/internal/wordlist"
)

// Env holds locations of optional persisted state.
type Env struct {
	CacheDir string
	DBPath   string
	Logger   *log.Logger
}

// Constraints parses the constraint notation carried by cfg.
func Constraints(cfg model.Config) ([]constraint.Constraint, error) {
	return constraint.Build(constraint.Notation{
		Absent:   cfg.Absent,
		Present:  cfg.Present,
		Perfect:  cfg.Perfect,
		Feedback: cfg.Feedback,
	})
}

// Run executes one full pass and returns what the report shows.
func Run(ctx context.Context, cfg model.Config, env Env) (model.Result, error) {
	logs := env.Logger
	if logs == nil {
		logs = logger.New("pipeline")
	}
	started := time.Now()

	cs, err := Constraints(cfg)
	if err != nil {
		return model.Result{}, err
	}
	logs.Debug("constraints", "notation", constraint.Describe(cs))

	entries, err := loadEntries(cfg, env, logs)
	if err != nil {
		return model.Result{}, err
	}
	words := wordlist.Words(entries)
	logs.Debug("loaded word list", "path", cfg.WordsPath, "count", len(words), "elapsed", time.Since(started))

	var loadOpts []wordlist.Option
	if cfg.Progress {
		loadOpts = append(loadOpts, wordlist.WithProgress("dictionary"))
	}
	dictWords, err := wordlist.LoadWords(cfg.DictionaryPath, loadOpts...)
	if err != nil {
		return model.Result{}, fmt.Errorf("failed to load dictionary: %w", err)
	}
	dict := dictionary.New(dictWords)
	logs.Debug("loaded dictionary", "path", cfg.DictionaryPath, "count", len(dictWords), "unique", dict.Len())

	solved := constraint.Solve(cs, words)
	matched := dictionary.Prune(solved, dict)
	logs.Debug("filtered", "solved", len(solved), "matched", len(matched))

	top := cfg.Top
	if top <= 0 {
		top = rank.DefaultTop
	}
	res := model.Result{
		WordCount:       len(words),
		DictionaryCount: len(dictWords),
		SolvedCount:     len(solved),
		MatchedCount:    len(matched),
		ByLetters:       rank.Top(rank.ByLetterScore(matched), top),
		ByFrequency:     rank.Top(rank.ByWordFrequency(matched, wordlist.FirstFrequencies(entries)), top),
	}

	res.Best, res.HasBest, err = rank.BestStart(ctx, words)
	if err != nil {
		return model.Result{}, fmt.Errorf("failed to score start words: %w", err)
	}
	logs.Debug("ranked", "best", res.Best.Word, "elapsed", time.Since(started))

	if cfg.Record {
		run := model.RunRecord{
			StartedAt:       started,
			WordsPath:       cfg.WordsPath,
			DictionaryPath:  cfg.DictionaryPath,
			Constraints:     constraint.Describe(cs),
			WordCount:       res.WordCount,
			DictionaryCount: res.DictionaryCount,
			SolvedCount:     res.SolvedCount,
			MatchedCount:    res.MatchedCount,
			BestStart:       res.Best.Word,
			DurationMs:      time.Since(started).Milliseconds(),
		}
		if err := record(ctx, env.DBPath, run, res); err != nil {
			return model.Result{}, fmt.Errorf("failed to record run: %w", err)
		}
	}
	return res, nil
}

func loadEntries(cfg model.Config, env Env, logs *log.Logger) ([]model.Entry, error) {
	var cache *corpuscache.Cache
	if cfg.UseCache && env.CacheDir != "" {
		cache = corpuscache.New(env.CacheDir)
		entries, ok, err := cache.Load(cfg.WordsPath)
		switch {
		case err != nil:
			logs.Debug("ignoring corpus cache", "err", err)
		case ok:
			logs.Debug("corpus cache hit", "path", cfg.WordsPath)
			return entries, nil
		default:
			logs.Debug("corpus cache miss", "path", cfg.WordsPath)
		}
	}

	var opts []wordlist.Option
	if cfg.Progress {
		opts = append(opts, wordlist.WithProgress("word list"))
	}
	entries, err := wordlist.LoadFrequencies(cfg.WordsPath, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load word list: %w", err)
	}
	if cache != nil {
		if err := cache.Store(cfg.WordsPath, entries); err != nil {
			logs.Debug("failed to write corpus cache", "err", err)
		}
	}
	return entries, nil
}

func record(ctx context.Context, dbPath string, run model.RunRecord, res model.Result) error {
	if dbPath == "" {
		return fmt.Errorf("history database path is empty")
	}
	st, err := store.Open(dbPath)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			// Best-effort close after recording.
			_ = cerr
		}
	}()

	ranked := make([]model.RankedWord, 0, len(res.ByLetters)+len(res.ByFrequency))
	for i, item := range res.ByLetters {
		ranked = append(ranked, model.RankedWord{Ranking: model.RankingLetters, Rank: i + 1, Word: item.Word, Score: item.Score})
	}
	for i, item := range res.ByFrequency {
		ranked = append(ranked, model.RankedWord{Ranking: model.RankingFrequency, Rank: i + 1, Word: item.Word, Score: item.Score})
	}
	_, err = st.InsertRun(ctx, run, ranked)
	return err
}
