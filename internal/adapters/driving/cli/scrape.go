package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/custodia-labs/ghcorpus/internal/adapters/driven/auth"
	"github.com/custodia-labs/ghcorpus/internal/adapters/driven/config/file"
	"github.com/custodia-labs/ghcorpus/internal/adapters/driven/storage/jsonfile"
	"github.com/custodia-labs/ghcorpus/internal/connectors/github"
	"github.com/custodia-labs/ghcorpus/internal/core/ports/driven"
	"github.com/custodia-labs/ghcorpus/internal/core/services"
)

var (
	scrapeOwner    string
	scrapeRepo     string
	scrapeMaxNodes int
	scrapeOut      string
)

var scrapeCmd = &cobra.Command{
	Use:   "scrape",
	Short: "Download issues and comments from GitHub",
	Long: `Pages through a repository's issues over the GraphQL API and writes them
to issues.json. The token is read from GITHUB_TOKEN; on a terminal you are
prompted for it when the variable is unset.

If the API reports an error part way through, the issues fetched so far are
still written and the command exits with the error.`,
	RunE: runScrape,
}

func init() {
	scrapeCmd.Flags().StringVar(&scrapeOwner, "owner", "", "repository owner (overrides [scrape].owner)")
	scrapeCmd.Flags().StringVar(&scrapeRepo, "repo", "", "repository name (overrides [scrape].repo)")
	scrapeCmd.Flags().IntVar(&scrapeMaxNodes, "max-nodes", 0, "maximum number of issues (overrides [scrape].max_nodes)")
	scrapeCmd.Flags().StringVarP(&scrapeOut, "out", "o", "", "output file (default <data-dir>/issues.json)")
	rootCmd.AddCommand(scrapeCmd)
}

func runScrape(cmd *cobra.Command, _ []string) error {
	_, settings, err := loadValidSettings()
	if err != nil {
		return err
	}
	return scrapeStep(cmd, settings, orDefault(scrapeOut, settings, jsonfile.IssuesFile))
}

// scrapeStep fetches issues and writes them to out. A partial result is
// written before the scrape error is returned.
func scrapeStep(cmd *cobra.Command, settings file.Settings, out string) error {
	cfg := githubConfig(settings.Scrape)
	if scrapeOwner != "" {
		cfg.Owner = scrapeOwner
	}
	if scrapeRepo != "" {
		cfg.Repo = scrapeRepo
	}
	maxNodes := settings.Scrape.MaxNodes
	if scrapeMaxNodes > 0 {
		maxNodes = scrapeMaxNodes
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	cmd.Printf("Scraping %s (up to %d issues)...\n", cfg.FullName(), maxNodes)
	svc := services.NewScrapeService(newIssueSource(cfg, resolveTokenProvider(cmd)))
	issues, scrapeErr := svc.Scrape(cmd.Context(), maxNodes)

	if len(issues) > 0 || scrapeErr == nil {
		if err := jsonfile.WriteIssues(out, issues); err != nil {
			return fmt.Errorf("write issues: %w", err)
		}
		cmd.Printf("Wrote %d issues to %s\n", len(issues), out)
	}
	if scrapeErr != nil {
		return fmt.Errorf("scrape failed: %w", scrapeErr)
	}
	return nil
}

// githubConfig maps the [scrape] settings to a connector config.
func githubConfig(s file.ScrapeSettings) github.Config {
	cfg := github.DefaultConfig(s.Owner, s.Repo)
	cfg.PageSize = s.PageSize
	cfg.CommentsPerIssue = s.CommentsPerIssue
	cfg.LabelsPerIssue = s.LabelsPerIssue
	cfg.RateCheckEvery = s.RateCheckEvery
	cfg.RetryDelay = time.Duration(s.RetryDelay)
	cfg.MaxRetries = s.MaxRetries
	cfg.RequestsPerSecond = s.RequestsPerSecond
	cfg.BaseURL = s.GraphQLURL
	return cfg
}

// resolveTokenProvider prefers GITHUB_TOKEN and falls back to a hidden
// prompt when stdin is a terminal.
func resolveTokenProvider(cmd *cobra.Command) driven.TokenProvider {
	env := auth.NewEnvTokenProvider("")
	if env.IsAuthenticated() || !term.IsTerminal(int(os.Stdin.Fd())) {
		return env
	}

	cmd.PrintErrf("%s is not set. GitHub token: ", env.Name())
	token, err := term.ReadPassword(int(os.Stdin.Fd()))
	cmd.PrintErrln()
	if err != nil {
		return env
	}
	return auth.NewPATProvider(string(token))
}
