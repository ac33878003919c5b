package driven

import (
	"context"

	"github.com/custodia-labs/ghcorpus/internal/core/domain"
)

// IssueSource fetches issues together with their comment threads.
type IssueSource interface {
	// FetchIssues returns up to maxNodes issues in repository order.
	// On a partial failure it may return the issues fetched so far along
	// with a non-nil error.
	FetchIssues(ctx context.Context, maxNodes int) ([]domain.Issue, error)
}
