package cli

import (
	"github.com/spf13/cobra"

	"github.com/custodia-labs/ghcorpus/internal/adapters/driven/storage/jsonfile"
)

var runScrapeFirst bool

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run prepare, clean and join in sequence",
	Long: `Runs the whole pipeline over the data directory starting from issues.json.
With --scrape the issues are downloaded first.`,
	RunE: runPipeline,
}

func init() {
	runCmd.Flags().BoolVar(&runScrapeFirst, "scrape", false, "scrape issues before preparing them")
	runCmd.Flags().StringVar(&scrapeOwner, "owner", "", "repository owner (overrides [scrape].owner)")
	runCmd.Flags().StringVar(&scrapeRepo, "repo", "", "repository name (overrides [scrape].repo)")
	runCmd.Flags().IntVar(&scrapeMaxNodes, "max-nodes", 0, "maximum number of issues (overrides [scrape].max_nodes)")
	runCmd.Flags().StringVar(&prepareLocations, "locations", "", `TOML table of "raw location" = "CC" pairs`)
	rootCmd.AddCommand(runCmd)
}

func runPipeline(cmd *cobra.Command, _ []string) error {
	store, settings, err := loadValidSettings()
	if err != nil {
		return err
	}
	dbDir := store.DBDir()
	issues := artefactPath(settings, jsonfile.IssuesFile)
	cleaned := artefactPath(settings, jsonfile.CleanedFile)

	if runScrapeFirst {
		if err := scrapeStep(cmd, settings, issues); err != nil {
			return err
		}
	}

	if err := prepareStep(cmd, settings, dbDir, issues); err != nil {
		return err
	}
	if _, err := cleanStep(cmd, settings, dbDir, artefactPath(settings, jsonfile.TextsFile), cleaned); err != nil {
		return err
	}
	return joinStep(cmd, dbDir,
		artefactPath(settings, jsonfile.FlatFile),
		cleaned,
		artefactPath(settings, jsonfile.FinalFile))
}
