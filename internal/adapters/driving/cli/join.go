package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/ghcorpus/internal/adapters/driven/storage/jsonfile"
	"github.com/custodia-labs/ghcorpus/internal/core/services"
)

var (
	joinFlat    string
	joinCleaned string
	joinOut     string
)

var joinCmd = &cobra.Command{
	Use:   "join",
	Short: "Merge cleaned texts back onto their metadata",
	Long: `Keeps only the flat records whose id survived cleaning, replaces their
text with the cleaned text and writes final.jsonl in flat order. The joined
records are also stored in the corpus database under a new run.`,
	RunE: runJoin,
}

func init() {
	joinCmd.Flags().StringVar(&joinFlat, "flat", "", "flat records (default <data-dir>/flat.jsonl)")
	joinCmd.Flags().StringVar(&joinCleaned, "cleaned", "", "cleaned texts (default <data-dir>/texts_cleaned.jsonl)")
	joinCmd.Flags().StringVarP(&joinOut, "out", "o", "", "joined records (default <data-dir>/final.jsonl)")
	rootCmd.AddCommand(joinCmd)
}

func runJoin(cmd *cobra.Command, _ []string) error {
	store, settings, err := loadValidSettings()
	if err != nil {
		return err
	}
	return joinStep(cmd, store.DBDir(),
		orDefault(joinFlat, settings, jsonfile.FlatFile),
		orDefault(joinCleaned, settings, jsonfile.CleanedFile),
		orDefault(joinOut, settings, jsonfile.FinalFile))
}

// joinStep merges cleanedPath onto flatPath and writes the result to out.
func joinStep(cmd *cobra.Command, dbDir, flatPath, cleanedPath, out string) error {
	flat, err := jsonfile.ReadFlat(flatPath)
	if err != nil {
		return err
	}
	cleaned, err := jsonfile.ReadTextRecords(cleanedPath)
	if err != nil {
		return err
	}

	store, err := openStore(dbDir)
	if err != nil {
		return fmt.Errorf("open corpus store: %w", err)
	}
	defer store.Close()

	joined, run, err := services.NewJoinService(store).Join(cmd.Context(), flat, cleaned, out)
	if err != nil {
		return err
	}
	if err := jsonfile.WriteFlat(out, joined); err != nil {
		return fmt.Errorf("write %s: %w", out, err)
	}

	printRunSummary(cmd, "Join", run)
	return nil
}
