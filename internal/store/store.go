// Package store handles SQLite persistence of run history.
package store

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"time"

	"github.com/verte-zerg/wordsieve/internal/model"

	_ "modernc.org/sqlite" // SQLite driver.
)

// Fixed width so that started_at sorts as text.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// Store wraps SQLite access for run history.
type Store struct {
	db *sql.DB
}

// Open opens or creates the SQLite database and applies migrations.
func Open(path string) (*Store, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		if cerr := db.Close(); cerr != nil {
			// Best-effort close on migration failure.
			_ = cerr
		}
		return nil, err
	}
	return store, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS runs (
			id INTEGER PRIMARY KEY,
			started_at TEXT NOT NULL,
			words_path TEXT NOT NULL,
			dictionary_path TEXT NOT NULL,
			constraints TEXT NOT NULL,
			word_count INTEGER NOT NULL,
			dictionary_count INTEGER NOT NULL,
			solved_count INTEGER NOT NULL,
			matched_count INTEGER NOT NULL,
			best_start TEXT NOT NULL,
			duration_ms INTEGER NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS run_words (
			run_id INTEGER NOT NULL,
			ranking TEXT NOT NULL,
			rank INTEGER NOT NULL,
			word TEXT NOT NULL,
			score INTEGER NOT NULL,
			PRIMARY KEY (run_id, ranking, rank)
		);`,
		`CREATE INDEX IF NOT EXISTS idx_runs_started_at ON runs(started_at);`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

// InsertRun stores a run summary and its ranked words.
func (s *Store) InsertRun(ctx context.Context, run model.RunRecord, ranked []model.RankedWord) (id int64, err error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer func() {
		if err != nil {
			if rerr := tx.Rollback(); rerr != nil {
				// Best-effort rollback.
				_ = rerr
			}
		}
	}()

	res, err := tx.ExecContext(ctx,
		`INSERT INTO runs (started_at, words_path, dictionary_path, constraints, word_count, dictionary_count, solved_count, matched_count, best_start, duration_ms)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		run.StartedAt.UTC().Format(timeLayout),
		run.WordsPath,
		run.DictionaryPath,
		run.Constraints,
		run.WordCount,
		run.DictionaryCount,
		run.SolvedCount,
		run.MatchedCount,
		run.BestStart,
		run.DurationMs,
	)
	if err != nil {
		return 0, err
	}
	id, err = res.LastInsertId()
	if err != nil {
		return 0, err
	}
	if err = insertRankedWords(ctx, tx, id, ranked); err != nil {
		return 0, err
	}
	if err = tx.Commit(); err != nil {
		return 0, err
	}
	return id, nil
}

func insertRankedWords(ctx context.Context, tx *sql.Tx, runID int64, ranked []model.RankedWord) error {
	if len(ranked) == 0 {
		return nil
	}
	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO run_words (run_id, ranking, rank, word, score)
		 VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := stmt.Close(); cerr != nil {
			// Best-effort statement close.
			_ = cerr
		}
	}()
	for _, rw := range ranked {
		if _, err := stmt.ExecContext(ctx, runID, rw.Ranking, rw.Rank, rw.Word, rw.Score); err != nil {
			return err
		}
	}
	return nil
}

// ListRuns returns the most recent runs, newest first. last <= 0 returns all.
func (s *Store) ListRuns(ctx context.Context, last int) ([]model.RunRecord, error) {
	limit := last
	if limit <= 0 {
		limit = -1
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, started_at, words_path, dictionary_path, constraints, word_count, dictionary_count, solved_count, matched_count, best_start, duration_ms
		 FROM runs
		 ORDER BY started_at DESC, id DESC
		 LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()

	var runs []model.RunRecord
	for rows.Next() {
		var run model.RunRecord
		var startedAt string
		if err := rows.Scan(&run.ID, &startedAt, &run.WordsPath, &run.DictionaryPath, &run.Constraints,
			&run.WordCount, &run.DictionaryCount, &run.SolvedCount, &run.MatchedCount, &run.BestStart, &run.DurationMs); err != nil {
			return nil, err
		}
		parsed, err := time.Parse(timeLayout, startedAt)
		if err != nil {
			return nil, err
		}
		run.StartedAt = parsed
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return runs, nil
}

// ListRankedWords returns the recorded top lists for a run in rank order.
func (s *Store) ListRankedWords(ctx context.Context, runID int64) ([]model.RankedWord, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT ranking, rank, word, score
		 FROM run_words
		 WHERE run_id = ?
		 ORDER BY ranking ASC, rank ASC`, runID)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()

	var result []model.RankedWord
	for rows.Next() {
		var rw model.RankedWord
		if err := rows.Scan(&rw.Ranking, &rw.Rank, &rw.Word, &rw.Score); err != nil {
			return nil, err
		}
		result = append(result, rw)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}
