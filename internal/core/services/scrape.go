package services

import (
	"context"
	"fmt"

	"github.com/custodia-labs/ghcorpus/internal/core/domain"
	"github.com/custodia-labs/ghcorpus/internal/core/ports/driven"
	"github.com/custodia-labs/ghcorpus/internal/logger"
)

// ScrapeService collects issues from an IssueSource.
type ScrapeService struct {
	source driven.IssueSource
}

// NewScrapeService creates a scrape service.
func NewScrapeService(source driven.IssueSource) *ScrapeService {
	return &ScrapeService{source: source}
}

// Scrape fetches up to maxNodes issues. A source failure after some issues
// were fetched is reported as a warning and the partial result is returned
// with the error so the caller can decide whether to keep it.
func (s *ScrapeService) Scrape(ctx context.Context, maxNodes int) ([]domain.Issue, error) {
	if s.source == nil {
		return nil, fmt.Errorf("scrape: no issue source: %w", domain.ErrInvalidInput)
	}
	if maxNodes <= 0 {
		return nil, fmt.Errorf("scrape: max nodes must be positive: %w", domain.ErrInvalidInput)
	}

	logger.Section("Scrape")
	issues, err := s.source.FetchIssues(ctx, maxNodes)
	if err != nil {
		if len(issues) > 0 {
			logger.Warn("scrape stopped after %d issues: %v", len(issues), err)
		}
		return issues, fmt.Errorf("scrape: %w", err)
	}
	logger.Info("scraped %d issues", len(issues))
	return issues, nil
}
