// Package cli provides the ghcorpus command-line interface.
//
// Every command is a batch job over files in the data directory:
//
//	scrape → issues.json
//	prepare → issues_processed.json, texts.jsonl, titles.jsonl, flat.jsonl
//	clean → texts_cleaned.jsonl, texts_cleaned.jsonl.meta.jsonl
//	join → final.jsonl
//
// Settings come from config.toml (see the file adapter); flags override them.
package cli

import (
	"context"
	"io"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/ghcorpus/internal/adapters/driven/config/file"
	"github.com/custodia-labs/ghcorpus/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/ghcorpus/internal/connectors/github"
	"github.com/custodia-labs/ghcorpus/internal/core/ports/driven"
	"github.com/custodia-labs/ghcorpus/internal/logger"
)

// version is set at build time with -ldflags "-X ...cli.version=v1.2.3".
var version = "dev"

var (
	verbose    bool
	configPath string
	dataDir    string
)

// corpusStore is a CorpusStore that holds resources until closed.
type corpusStore interface {
	driven.CorpusStore
	io.Closer
}

// openStore opens the corpus store in dir. Replaced in tests.
var openStore = func(dir string) (corpusStore, error) {
	return sqlite.NewStore(dir)
}

// newIssueSource builds the scraper. Replaced in tests.
var newIssueSource = func(cfg github.Config, tp driven.TokenProvider) driven.IssueSource {
	return github.New(cfg, tp)
}

var rootCmd = &cobra.Command{
	Use:   "ghcorpus",
	Short: "Build NLP corpora from GitHub issues",
	Long: `ghcorpus scrapes a repository's issues and comments, filters and flattens
them, cleans every text with a rule pipeline and noise classifier, and joins
the surviving texts back onto their metadata.`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, _ []string) {
		logger.SetOutput(cmd.ErrOrStderr())
		logger.SetVerbose(verbose)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "print progress and debug output")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file (default ~/.ghcorpus/config.toml)")
	rootCmd.PersistentFlags().StringVar(&dataDir, "data-dir", "", "artefact directory (overrides [data].dir)")
}

// Execute runs the root command. An interrupt cancels the running command.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	return rootCmd.ExecuteContext(ctx)
}

// loadSettings opens the settings store selected by --config.
func loadSettings() (*file.SettingsStore, error) {
	if configPath != "" {
		return file.NewSettingsStoreAt(configPath)
	}
	return file.NewSettingsStore("")
}

// loadValidSettings loads the settings and rejects invalid values.
func loadValidSettings() (*file.SettingsStore, file.Settings, error) {
	store, err := loadSettings()
	if err != nil {
		return nil, file.Settings{}, err
	}
	settings := store.Settings()
	if err := settings.Validate(); err != nil {
		return nil, file.Settings{}, err
	}
	return store, settings, nil
}

// artefactPath resolves name inside the data directory.
func artefactPath(settings file.Settings, name string) string {
	dir := settings.Data.Dir
	if dataDir != "" {
		dir = dataDir
	}
	return filepath.Join(dir, name)
}

// orDefault returns path, or the artefact path for name when path is empty.
func orDefault(path string, settings file.Settings, name string) string {
	if path != "" {
		return path
	}
	return artefactPath(settings, name)
}
