package main

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/verte-zerg/wordsieve/internal/config"
	"github.com/verte-zerg/wordsieve/internal/constraint"
	"github.com/verte-zerg/wordsieve/internal/logger"
	"github.com/verte-zerg/wordsieve/internal/pipeline"
	"github.com/verte-zerg/wordsieve/internal/rank"
	"github.com/verte-zerg/wordsieve/internal/report"
	"github.com/verte-zerg/wordsieve/internal/store"
	"github.com/verte-zerg/wordsieve/internal/wordfreq"
	"github.com/verte-zerg/wordsieve/internal/wordlist"
)

func newScoreCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "score WORD...",
		Short: "Print letter frequency scores for words",
		Args:  cobra.MinimumNArgs(1),
		RunE:  runScoreCmd,
	}
}

func runScoreCmd(cmd *cobra.Command, args []string) error {
	words := make([]string, 0, len(args))
	for _, arg := range args {
		word, ok := wordlist.Normalize(arg)
		if !ok {
			return fmt.Errorf("%q is not a five-letter word", arg)
		}
		words = append(words, word)
	}
	scores, err := rank.ScoreAll(cmd.Context(), words)
	if err != nil {
		return err
	}
	if err := report.RenderScores(cmd.OutOrStdout(), words, scores); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func newConstraintsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "constraints",
		Short: "Print the effective constraint set",
		Args:  cobra.NoArgs,
		RunE:  runConstraintsCmd,
	}
	addConstraintFlags(cmd)
	return cmd
}

func runConstraintsCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := loadRunConfig(cmd)
	if err != nil {
		return err
	}
	cs, err := pipeline.Constraints(cfg)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	if len(cs) == 0 {
		_, err := fmt.Fprintln(out, constraint.Describe(cs))
		return err
	}
	for _, c := range cs {
		if _, err := fmt.Fprintln(out, c.String()); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	}
	return nil
}

func newHistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recorded runs or the top lists of one run",
		Args:  cobra.NoArgs,
		RunE:  runHistoryCmd,
	}
	cmd.Flags().IntVar(&historyLast, "last", 10, "limit to last N runs (0 for all)")
	cmd.Flags().Int64Var(&historyRun, "run", 0, "show the ranked words recorded for run ID")
	return cmd
}

func runHistoryCmd(cmd *cobra.Command, _ []string) error {
	if historyLast < 0 {
		return fmt.Errorf("--last must be >= 0")
	}
	if cmd.Flags().Changed("run") && historyRun <= 0 {
		return fmt.Errorf("--run must be a positive run ID")
	}
	st, err := store.Open(config.DefaultDBPath())
	if err != nil {
		return fmt.Errorf("failed to open db: %w", err)
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			logger.New("history").Warn("failed to close db", "err", cerr)
		}
	}()

	if historyRun > 0 {
		ranked, err := st.ListRankedWords(cmd.Context(), historyRun)
		if err != nil {
			return fmt.Errorf("failed to list ranked words: %w", err)
		}
		if err := report.RenderRankedWords(cmd.OutOrStdout(), historyRun, ranked); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
		return nil
	}

	runs, err := st.ListRuns(cmd.Context(), historyLast)
	if err != nil {
		return fmt.Errorf("failed to list runs: %w", err)
	}
	if err := report.RenderHistory(cmd.OutOrStdout(), runs); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func newFetchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fetch",
		Short: "Build a word frequency list from the wordfreq dataset",
		Args:  cobra.NoArgs,
		RunE:  runFetchCmd,
	}
	cmd.Flags().StringVar(&fetchLang, "lang", "en", "language code")
	cmd.Flags().StringVar(&fetchOut, "out", defaultWordsPath, "output path for the frequency list")
	cmd.Flags().BoolVar(&fetchForce, "force", false, "overwrite an existing list")
	cmd.Flags().BoolVar(&fetchProgress, "progress", false, "show download progress on stderr")
	return cmd
}

func runFetchCmd(cmd *cobra.Command, _ []string) error {
	if !fetchForce {
		if _, err := os.Stat(fetchOut); err == nil {
			return fmt.Errorf("word list already exists: %s (use --force to overwrite)", fetchOut)
		} else if !os.IsNotExist(err) {
			return fmt.Errorf("failed to stat word list: %w", err)
		}
	}

	logs := logger.New("fetch")
	wheel, err := wordfreq.DownloadLatestWheel(cmd.Context(), config.DefaultWheelCacheDir(), fetchProgress)
	if err != nil {
		return fmt.Errorf("failed to download wordfreq wheel: %w", err)
	}
	logs.Info("wordfreq wheel", "file", wheel.Filename, "version", wheel.Version, "cached", wheel.Cached)

	count, err := writeWordList(wheel.Path, fetchLang, fetchOut)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(cmd.OutOrStdout(), "wrote %d words to %s\n", count, fetchOut)
	return err
}

// writeWordList extracts lang from the wheel into out and places the
// attribution files beside it.
func writeWordList(wheelPath, lang, out string) (int, error) {
	entries, err := wordfreq.ReadEntries(wheelPath, lang)
	if err != nil {
		return 0, fmt.Errorf("failed to extract %s words: %w", lang, err)
	}
	if err := wordfreq.WriteList(out, entries); err != nil {
		return 0, fmt.Errorf("failed to write %s: %w", out, err)
	}
	if err := wordfreq.WriteAttribution(wheelPath, filepath.Dir(out)); err != nil {
		return 0, fmt.Errorf("failed to write attribution: %w", err)
	}
	return len(entries), nil
}

func newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Create/open config file",
		Args:  cobra.NoArgs,
		RunE:  runConfigCmd,
	}
}

func runConfigCmd(_ *cobra.Command, _ []string) error {
	path := config.DefaultConfigPath()
	if err := writeDefaultConfig(path); err != nil {
		return err
	}

	editor := strings.TrimSpace(os.Getenv("EDITOR"))
	if editor == "" {
		editor = "vi"
	}
	parts := strings.Fields(editor)
	if len(parts) == 0 {
		return fmt.Errorf("editor command is empty")
	}
	cmd := exec.Command(parts[0], append(parts[1:], path)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to open editor: %w", err)
	}
	return nil
}

// writeDefaultConfig creates the template at path unless a file exists.
func writeDefaultConfig(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if _, err := os.Stat(path); err != nil {
		if !os.IsNotExist(err) {
			return fmt.Errorf("failed to stat config: %w", err)
		}
		if err := os.WriteFile(path, []byte(defaultConfigTemplate()), 0o644); err != nil {
			return fmt.Errorf("failed to write config: %w", err)
		}
	}
	return nil
}

func defaultConfigTemplate() string {
	return fmt.Sprintf(`# wordsieve configuration
# Uncomment a value to enable it. CLI flags override config values.

[input]
# words = %q
# dictionary = %q
# cache = false           # Cache the parsed word list

[constraints]
# absent = "stnw"         # Letters absent from the answer
# present = ["e:0,2,4"]   # Present letter with excluded positions (0-4)
# perfect = ["l:4"]       # Letter at a fixed position (0-4)
# feedback = []           # Guess feedback, e.g. "crane:bbybg"

[report]
# top = %d                # Words shown per ranking
# scores = false          # Show ranked words as tables with scores

[history]
# record = false          # Record runs for 'wordsieve history'
`,
		defaultWordsPath,
		defaultDictPath,
		rank.DefaultTop,
	)
}
