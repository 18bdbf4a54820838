// Package model defines shared data structures.
package model

import "time"

// WordLength is the fixed length of every candidate word.
const WordLength = 5

// Config defines pipeline settings after flags and the config file are merged.
type Config struct {
	WordsPath      string
	DictionaryPath string
	Absent         string
	Present        []string
	Perfect        []string
	Feedback       []string
	Top            int
	ShowScores     bool
	UseCache       bool
	Record         bool
	Progress       bool
}

// Entry is a normalized word from the primary list with its usage frequency.
type Entry struct {
	Word string
	Freq int
}

// ScoredWord pairs a candidate with the value it was ranked by.
type ScoredWord struct {
	Word  string
	Score int
}

// Ranking names used in reports and run history.
const (
	RankingLetters   = "letters"
	RankingFrequency = "frequency"
)

// RunRecord summarizes a completed pipeline run.
type RunRecord struct {
	ID              int64
	StartedAt       time.Time
	WordsPath       string
	DictionaryPath  string
	Constraints     string
	WordCount       int
	DictionaryCount int
	SolvedCount     int
	MatchedCount    int
	BestStart       string
	DurationMs      int64
}

// RankedWord is one row of a recorded top list.
type RankedWord struct {
	Ranking string
	Rank    int
	Word    string
	Score   int
}

// Result holds everything a run reports.
type Result struct {
	WordCount       int
	DictionaryCount int
	SolvedCount     int
	MatchedCount    int
	ByLetters       []ScoredWord
	ByFrequency     []ScoredWord
	Best            ScoredWord
	HasBest         bool
}
