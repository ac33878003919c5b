package github

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/custodia-labs/ghcorpus/internal/core/domain"
	"github.com/custodia-labs/ghcorpus/internal/core/ports/driven"
	"github.com/custodia-labs/ghcorpus/internal/logger"
)

// issuesQuery selects one page of issues with their labels and comments.
// Authors are only expanded for User actors, so bots decode to {} and
// deleted accounts to null.
const issuesQuery = `query($owner: String!, $name: String!, $first: Int!, $after: String, $labels: Int!, $comments: Int!) {
  repository(owner: $owner, name: $name) {
    issues(first: $first, after: $after) {
      nodes {
        title
        bodyText
        createdAt
        labels(first: $labels) { nodes { name } }
        author { ... on User { login location } }
        comments(first: $comments) {
          nodes {
            bodyText
            createdAt
            author { ... on User { login location } }
          }
        }
      }
      pageInfo { endCursor hasNextPage }
    }
  }
}`

const rateLimitQuery = `query { rateLimit { remaining resetAt } }`

type pageInfo struct {
	EndCursor   *string `json:"endCursor"`
	HasNextPage bool    `json:"hasNextPage"`
}

type issueConnection struct {
	Nodes    []domain.Issue `json:"nodes"`
	PageInfo pageInfo       `json:"pageInfo"`
}

type issuesData struct {
	Repository *struct {
		Issues issueConnection `json:"issues"`
	} `json:"repository"`
}

type rateLimitData struct {
	RateLimit struct {
		Remaining int       `json:"remaining"`
		ResetAt   time.Time `json:"resetAt"`
	} `json:"rateLimit"`
}

// Ensure IssueSource implements the interface.
var _ driven.IssueSource = (*IssueSource)(nil)

// IssueSource pages through a repository's issues over GraphQL.
type IssueSource struct {
	client *Client
	cfg    Config
	sleep  sleepFunc
}

// NewIssueSource creates an issue source using client.
func NewIssueSource(client *Client, cfg Config) *IssueSource {
	return &IssueSource{
		client: client,
		cfg:    cfg,
		sleep:  sleepCtx,
	}
}

// New builds a client from cfg and returns an issue source for it.
func New(cfg Config, tokenProvider driven.TokenProvider) *IssueSource {
	opts := []ClientOption{WithRateLimiter(NewRateLimiter(cfg.RequestsPerSecond))}
	if cfg.BaseURL != "" {
		opts = append(opts, WithBaseURL(cfg.BaseURL))
	}
	return NewIssueSource(NewClient(tokenProvider, opts...), cfg)
}

// FetchIssues collects up to maxNodes issues in repository order.
// On failure the issues fetched so far are returned with the error.
func (s *IssueSource) FetchIssues(ctx context.Context, maxNodes int) ([]domain.Issue, error) {
	if err := s.cfg.Validate(); err != nil {
		return nil, err
	}
	if maxNodes <= 0 {
		return nil, nil
	}

	var issues []domain.Issue
	var after *string
	for page := 1; len(issues) < maxNodes; page++ {
		first := min(s.cfg.PageSize, maxNodes-len(issues))
		conn, err := s.fetchPage(ctx, page, first, after)
		if err != nil {
			return issues, err
		}
		issues = append(issues, conn.Nodes...)
		logger.Debug("%s: page %d, %d issues so far", s.cfg.FullName(), page, len(issues))

		if !conn.PageInfo.HasNextPage || conn.PageInfo.EndCursor == nil {
			break
		}
		after = conn.PageInfo.EndCursor

		if s.cfg.RateCheckEvery > 0 && page%s.cfg.RateCheckEvery == 0 {
			if err := s.checkRateLimit(ctx); err != nil {
				return issues, err
			}
		}
	}

	if len(issues) > maxNodes {
		issues = issues[:maxNodes]
	}
	return issues, nil
}

// fetchPage requests one page, retrying transient failures.
func (s *IssueSource) fetchPage(ctx context.Context, page, first int, after *string) (*issueConnection, error) {
	vars := map[string]any{
		"owner":    s.cfg.Owner,
		"name":     s.cfg.Repo,
		"first":    first,
		"after":    after,
		"labels":   s.cfg.LabelsPerIssue,
		"comments": s.cfg.CommentsPerIssue,
	}

	var lastErr error
	for attempt := 0; attempt <= s.cfg.MaxRetries; attempt++ {
		if attempt > 0 {
			logger.Warn("%s: page %d failed (%v), retry %d/%d in %s",
				s.cfg.FullName(), page, lastErr, attempt, s.cfg.MaxRetries, s.cfg.RetryDelay)
			if err := s.sleep(ctx, s.cfg.RetryDelay); err != nil {
				return nil, err
			}
		}

		var data issuesData
		err := s.client.Query(ctx, issuesQuery, vars, &data)
		if err == nil {
			if data.Repository == nil {
				return nil, fmt.Errorf("%s: %w", s.cfg.FullName(), ErrRepoNotFound)
			}
			return &data.Repository.Issues, nil
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		if !retryable(err) {
			return nil, err
		}

		var rlErr *RateLimitError
		if errors.As(err, &rlErr) {
			s.client.RateLimiter().Observe(rlErr.Remaining, rlErr.ResetAt)
		}
		lastErr = err
	}
	return nil, fmt.Errorf("%s: page %d: %w: %w", s.cfg.FullName(), page, ErrRetriesExhausted, lastErr)
}

// checkRateLimit queries the remaining budget and sleeps until the reset
// time (plus ResetGrace) when it is below MinBuffer. A failed check is
// logged and ignored.
func (s *IssueSource) checkRateLimit(ctx context.Context) error {
	var data rateLimitData
	if err := s.client.Query(ctx, rateLimitQuery, nil, &data); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		logger.Warn("rate limit check failed: %v", err)
		return nil
	}

	rl := data.RateLimit
	logger.Debug("rate limit: %d remaining, resets at %s", rl.Remaining, rl.ResetAt.Format(time.RFC3339))
	if rl.Remaining >= MinBuffer {
		return nil
	}

	resume := rl.ResetAt.Add(ResetGrace)
	logger.Warn("rate limit low (%d remaining), sleeping until %s", rl.Remaining, resume.Format(time.RFC3339))
	limiter := s.client.RateLimiter()
	limiter.Observe(rl.Remaining, resume)
	return limiter.WaitForReset(ctx)
}

// retryable reports whether a failed request is worth repeating.
// GraphQL errors, authentication failures and missing resources are final.
func retryable(err error) bool {
	var gqlErr *GraphQLError
	switch {
	case errors.As(err, &gqlErr):
		return false
	case errors.Is(err, domain.ErrMissingToken):
		return false
	case IsUnauthorized(err), IsNotFound(err):
		return false
	}
	return true
}
