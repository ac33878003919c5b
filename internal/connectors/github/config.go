package github

import (
	"errors"
	"fmt"
	"time"
)

// Scraper defaults.
const (
	DefaultPageSize          = 100
	DefaultCommentsPerIssue  = 25
	DefaultLabelsPerIssue    = 5
	DefaultRateCheckEvery    = 10
	DefaultRetryDelay        = 10 * time.Second
	DefaultMaxRetries        = 5
	DefaultRequestsPerSecond = 1.0

	// MaxPageSize is the largest page GitHub's GraphQL API accepts.
	MaxPageSize = 100
)

// Config holds the scraper settings for one repository.
type Config struct {
	Owner string
	Repo  string

	// PageSize is the number of issues requested per page.
	PageSize int

	// CommentsPerIssue and LabelsPerIssue bound the nested connections.
	CommentsPerIssue int
	LabelsPerIssue   int

	// RateCheckEvery is the number of pages between rateLimit queries.
	// Zero disables the check.
	RateCheckEvery int

	// RetryDelay is the pause after a failed page request.
	RetryDelay time.Duration

	// MaxRetries bounds consecutive failures of one page.
	MaxRetries int

	// RequestsPerSecond is the proactive throttle. Zero or less disables it.
	RequestsPerSecond float64

	// BaseURL overrides the API base URL. The GraphQL endpoint is
	// BaseURL + "graphql".
	BaseURL string
}

// DefaultConfig returns the scraper defaults for owner/repo.
func DefaultConfig(owner, repo string) Config {
	return Config{
		Owner:             owner,
		Repo:              repo,
		PageSize:          DefaultPageSize,
		CommentsPerIssue:  DefaultCommentsPerIssue,
		LabelsPerIssue:    DefaultLabelsPerIssue,
		RateCheckEvery:    DefaultRateCheckEvery,
		RetryDelay:        DefaultRetryDelay,
		MaxRetries:        DefaultMaxRetries,
		RequestsPerSecond: DefaultRequestsPerSecond,
	}
}

// Validate checks the configuration.
func (c Config) Validate() error {
	if c.Owner == "" || c.Repo == "" {
		return ErrRepoRequired
	}
	if c.PageSize <= 0 || c.PageSize > MaxPageSize {
		return fmt.Errorf("github: page size must be between 1 and %d", MaxPageSize)
	}
	if c.CommentsPerIssue < 0 || c.CommentsPerIssue > MaxPageSize {
		return fmt.Errorf("github: comments per issue must be between 0 and %d", MaxPageSize)
	}
	if c.LabelsPerIssue < 0 || c.LabelsPerIssue > MaxPageSize {
		return fmt.Errorf("github: labels per issue must be between 0 and %d", MaxPageSize)
	}
	if c.MaxRetries < 0 || c.RetryDelay < 0 {
		return errors.New("github: retry settings must not be negative")
	}
	return nil
}

// FullName returns "owner/repo".
func (c Config) FullName() string {
	return c.Owner + "/" + c.Repo
}
