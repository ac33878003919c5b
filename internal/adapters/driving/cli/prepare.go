package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/ghcorpus/internal/adapters/driven/config/file"
	"github.com/custodia-labs/ghcorpus/internal/adapters/driven/storage/jsonfile"
	"github.com/custodia-labs/ghcorpus/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/ghcorpus/internal/core/ports/driven"
	"github.com/custodia-labs/ghcorpus/internal/core/services"
)

var (
	prepareIn        string
	prepareLocations string
)

var prepareCmd = &cobra.Command{
	Use:   "prepare",
	Short: "Filter, standardise and flatten scraped issues",
	Long: `Reads issues.json and writes:

  issues_processed.json  issues without bot comments, with ids and country codes
  texts.jsonl            one {"id", "text"} per non-blank issue or comment body
  titles.jsonl           one non-blank issue title per line
  flat.jsonl             one {"<id>": {...metadata}} per issue or comment

Country codes come from the location table in the corpus database, or from
a TOML file given with --locations.`,
	RunE: runPrepare,
}

func init() {
	prepareCmd.Flags().StringVarP(&prepareIn, "in", "i", "", "scraped issues (default <data-dir>/issues.json)")
	prepareCmd.Flags().StringVar(&prepareLocations, "locations", "", `TOML table of "raw location" = "CC" pairs`)
	rootCmd.AddCommand(prepareCmd)
}

func runPrepare(cmd *cobra.Command, _ []string) error {
	store, settings, err := loadValidSettings()
	if err != nil {
		return err
	}
	return prepareStep(cmd, settings, store.DBDir(), orDefault(prepareIn, settings, jsonfile.IssuesFile))
}

// prepareStep runs the preparation service on in and writes its artefacts
// to the data directory.
func prepareStep(cmd *cobra.Command, settings file.Settings, dbDir, in string) error {
	issues, err := jsonfile.ReadIssues(in)
	if err != nil {
		return err
	}

	lookup, err := locationLookup(cmd, dbDir)
	if err != nil {
		return err
	}

	prep := services.NewPreparationService(lookup).Prepare(issues)

	outputs := []struct {
		name  string
		write func(path string) error
	}{
		{jsonfile.ProcessedFile, func(p string) error { return jsonfile.WriteIssues(p, prep.Issues) }},
		{jsonfile.TextsFile, func(p string) error { return jsonfile.WriteTextRecords(p, prep.Texts) }},
		{jsonfile.TitlesFile, func(p string) error { return jsonfile.WriteTitles(p, prep.Titles) }},
		{jsonfile.FlatFile, func(p string) error { return jsonfile.WriteFlat(p, prep.Flat) }},
	}
	for _, o := range outputs {
		if err := o.write(artefactPath(settings, o.name)); err != nil {
			return fmt.Errorf("write %s: %w", o.name, err)
		}
	}

	cmd.Printf("Prepared %d issues: %d texts, %d titles, %d flat records\n",
		len(prep.Issues), len(prep.Texts), len(prep.Titles), prep.Flat.Len())
	cmd.Printf("Removed %d bot comments; skipped %d records without author\n",
		prep.RemovedComments, prep.AuthorlessCount)
	return nil
}

// locationLookup loads the --locations file, or the table stored in the
// corpus database.
func locationLookup(cmd *cobra.Command, dbDir string) (driven.LocationLookup, error) {
	if prepareLocations != "" {
		return memory.LoadLocationTable(prepareLocations)
	}

	store, err := openStore(dbDir)
	if err != nil {
		return nil, fmt.Errorf("open corpus store: %w", err)
	}
	defer store.Close()

	codes, err := store.Locations(cmd.Context())
	if err != nil {
		return nil, fmt.Errorf("load locations: %w", err)
	}
	return memory.NewLocationTable(codes), nil
}
