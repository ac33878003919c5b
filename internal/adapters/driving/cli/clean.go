package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/ghcorpus/internal/adapters/driven/config/file"
	"github.com/custodia-labs/ghcorpus/internal/adapters/driven/storage/jsonfile"
	"github.com/custodia-labs/ghcorpus/internal/cleaner"
	"github.com/custodia-labs/ghcorpus/internal/core/domain"
	"github.com/custodia-labs/ghcorpus/internal/core/services"
)

var (
	cleanIn  string
	cleanOut string
)

var cleanCmd = &cobra.Command{
	Use:   "clean",
	Short: "Clean texts and drop noise",
	Long: `Runs every {"id", "text"} record through the cleaning pipeline:
normalisation, rule-based rewriting (code blocks, URLs, mentions, issue
references and more become placeholder tokens) and the noise classifier.

Kept records are written to the output file. One diagnostic record per input
is written to <out>.meta.jsonl with the drop reason, truncation and noise
statistics. The [clean] section of config.toml controls every rule.`,
	RunE: runClean,
}

func init() {
	cleanCmd.Flags().StringVarP(&cleanIn, "in", "i", "", "text records (default <data-dir>/texts.jsonl)")
	cleanCmd.Flags().StringVarP(&cleanOut, "out", "o", "", "kept records (default <data-dir>/texts_cleaned.jsonl)")
	rootCmd.AddCommand(cleanCmd)
}

func runClean(cmd *cobra.Command, _ []string) error {
	store, settings, err := loadValidSettings()
	if err != nil {
		return err
	}
	_, err = cleanStep(cmd, settings, store.DBDir(),
		orDefault(cleanIn, settings, jsonfile.TextsFile),
		orDefault(cleanOut, settings, jsonfile.CleanedFile))
	return err
}

// cleanStep cleans in into out and records the run in the corpus store.
func cleanStep(cmd *cobra.Command, settings file.Settings, dbDir, in, out string) (*domain.Run, error) {
	store, err := openStore(dbDir)
	if err != nil {
		return nil, fmt.Errorf("open corpus store: %w", err)
	}
	defer store.Close()

	progress, done := progressPrinter(cmd)
	c := cleaner.New(settings.Clean, cleaner.WithProgress(progress))
	run, err := services.NewCleaningService(c, store).CleanFile(cmd.Context(), in, out)
	done()
	if err != nil {
		return run, err
	}

	printRunSummary(cmd, "Clean", run)
	return run, nil
}
