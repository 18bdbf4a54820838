// Package main provides the CLI entrypoint for wordsieve.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/verte-zerg/wordsieve/internal/config"
	"github.com/verte-zerg/wordsieve/internal/logger"
	"github.com/verte-zerg/wordsieve/internal/model"
	"github.com/verte-zerg/wordsieve/internal/pipeline"
	"github.com/verte-zerg/wordsieve/internal/rank"
	"github.com/verte-zerg/wordsieve/internal/report"
)

const (
	defaultWordsPath = "eng_news_2023_1M/eng_news_2023_1M-words.txt"
	defaultDictPath  = "english-dictionary.txt"
)

var (
	runWords    string
	runDict     string
	runAbsent   string
	runPresent  []string
	runPerfect  []string
	runFeedback []string
	runTop      int
	runScores   bool
	runCache    bool
	runRecord   bool
	runProgress bool

	debug bool

	historyLast int
	historyRun  int64

	fetchLang     string
	fetchOut      string
	fetchForce    bool
	fetchProgress bool
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "wordsieve",
		Short:         "Filter and rank five-letter words against guess constraints",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			logger.SetDebug(debug)
		},
		Args: cobra.NoArgs,
		RunE: runSieveCmd,
	}

	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "log pipeline stages to stderr")
	rootCmd.Flags().StringVar(&runWords, "words", defaultWordsPath, "tab separated word frequency list")
	rootCmd.Flags().StringVar(&runDict, "dict", defaultDictPath, "dictionary with one word per line")
	addConstraintFlags(rootCmd)
	rootCmd.Flags().IntVar(&runTop, "top", rank.DefaultTop, "words shown per ranking")
	rootCmd.Flags().BoolVar(&runScores, "scores", false, "show ranked words as tables with scores")
	rootCmd.Flags().BoolVar(&runCache, "cache", false, "cache the parsed word list")
	rootCmd.Flags().BoolVar(&runRecord, "record", false, "record the run in history")
	rootCmd.Flags().BoolVar(&runProgress, "progress", false, "show load progress on stderr")

	rootCmd.AddCommand(newScoreCmd())
	rootCmd.AddCommand(newConstraintsCmd())
	rootCmd.AddCommand(newHistoryCmd())
	rootCmd.AddCommand(newFetchCmd())
	rootCmd.AddCommand(newConfigCmd())

	return rootCmd
}

func addConstraintFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&runAbsent, "absent", "", "letters absent from the answer, e.g. stnw")
	cmd.Flags().StringArrayVar(&runPresent, "present", nil, "present letter with excluded positions, e.g. e:0,2,4 (repeatable)")
	cmd.Flags().StringArrayVar(&runPerfect, "perfect", nil, "letter at a fixed position, e.g. l:4 (repeatable)")
	cmd.Flags().StringArrayVar(&runFeedback, "feedback", nil, "guess feedback, e.g. crane:bbybg (repeatable)")
}

func runSieveCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := loadRunConfig(cmd)
	if err != nil {
		return err
	}
	if err := validateConfig(cfg); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	env := pipeline.Env{
		CacheDir: config.DefaultCacheDir(),
		DBPath:   config.DefaultDBPath(),
		Logger:   logger.New("wordsieve"),
	}
	res, err := pipeline.Run(ctx, cfg, env)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	opts := report.Options{Scores: cfg.ShowScores, Color: report.UseColor(out)}
	if err := report.Render(out, res, opts); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

// loadRunConfig merges the config file into flags that were not set explicitly.
func loadRunConfig(cmd *cobra.Command) (model.Config, error) {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return model.Config{}, fmt.Errorf("failed to load config: %w", err)
	}
	applyStringConfig(cmd, "words", &runWords, fileCfg.Input.Words)
	applyStringConfig(cmd, "dict", &runDict, fileCfg.Input.Dictionary)
	applyBoolConfig(cmd, "cache", &runCache, fileCfg.Input.Cache)
	applyStringConfig(cmd, "absent", &runAbsent, fileCfg.Constraints.Absent)
	applyStringsConfig(cmd, "present", &runPresent, fileCfg.Constraints.Present)
	applyStringsConfig(cmd, "perfect", &runPerfect, fileCfg.Constraints.Perfect)
	applyStringsConfig(cmd, "feedback", &runFeedback, fileCfg.Constraints.Feedback)
	applyIntConfig(cmd, "top", &runTop, fileCfg.Report.Top)
	applyBoolConfig(cmd, "scores", &runScores, fileCfg.Report.Scores)
	applyBoolConfig(cmd, "record", &runRecord, fileCfg.History.Record)

	return model.Config{
		WordsPath:      runWords,
		DictionaryPath: runDict,
		Absent:         runAbsent,
		Present:        runPresent,
		Perfect:        runPerfect,
		Feedback:       runFeedback,
		Top:            runTop,
		ShowScores:     runScores,
		UseCache:       runCache,
		Record:         runRecord,
		Progress:       runProgress,
	}, nil
}

func applyStringConfig(cmd *cobra.Command, name string, target, value *string) {
	if value == nil {
		return
	}
	if flagChanged(cmd, name) {
		return
	}
	*target = *value
}

func applyStringsConfig(cmd *cobra.Command, name string, target *[]string, value []string) {
	if value == nil {
		return
	}
	if flagChanged(cmd, name) {
		return
	}
	*target = append([]string(nil), value...)
}

func applyIntConfig(cmd *cobra.Command, name string, target, value *int) {
	if value == nil {
		return
	}
	if flagChanged(cmd, name) {
		return
	}
	*target = *value
}

func applyBoolConfig(cmd *cobra.Command, name string, target, value *bool) {
	if value == nil {
		return
	}
	if flagChanged(cmd, name) {
		return
	}
	*target = *value
}

// flagChanged tolerates commands that do not define every run flag.
func flagChanged(cmd *cobra.Command, name string) bool {
	flag := cmd.Flags().Lookup(name)
	return flag != nil && flag.Changed
}

func validateConfig(cfg model.Config) error {
	if cfg.WordsPath == "" {
		return fmt.Errorf("--words must not be empty")
	}
	if cfg.DictionaryPath == "" {
		return fmt.Errorf("--dict must not be empty")
	}
	if cfg.Top <= 0 {
		return fmt.Errorf("--top must be > 0")
	}
	return nil
}
