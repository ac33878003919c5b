package services

import (
	"strconv"
	"strings"

	"github.com/custodia-labs/ghcorpus/internal/core/domain"
	"github.com/custodia-labs/ghcorpus/internal/core/ports/driven"
	"github.com/custodia-labs/ghcorpus/internal/logger"
)

// Preparation holds everything produced from one batch of scraped issues.
type Preparation struct {
	// Issues are the filtered, location-standardised issues with ids assigned.
	Issues []domain.Issue

	// Texts are the non-blank issue and comment bodies keyed by id.
	Texts []domain.TextRecord

	// Titles are the non-blank issue titles in issue order.
	Titles []string

	// Flat is the id-keyed metadata set used by the join step.
	Flat *domain.FlatDataset

	// RemovedComments counts comments dropped for having a non-user author.
	RemovedComments int

	// AuthorlessCount counts issues and comments skipped during flattening
	// because their author account no longer exists.
	AuthorlessCount int
}

// PreparationService turns scraped issues into the artefacts consumed by the
// cleaning and join steps.
type PreparationService struct {
	lookup driven.LocationLookup
}

// NewPreparationService creates a preparation service.
// A nil lookup maps every location to null.
func NewPreparationService(lookup driven.LocationLookup) *PreparationService {
	return &PreparationService{lookup: lookup}
}

// Prepare runs the preparation steps in order. The issues are modified in place.
func (s *PreparationService) Prepare(issues []domain.Issue) *Preparation {
	logger.Section("Prepare")

	removed := RemoveAuthorlessComments(issues)
	logger.Debug("removed %d comments by non-user authors", removed)

	StandardiseLocations(issues, s.lookup)
	AssignIDs(issues)

	texts, titles := ExtractTexts(issues)
	logger.Debug("extracted %d texts and %d titles", len(texts), len(titles))

	flat, authorless := Flatten(issues)
	logger.Info("flattened %d records, %d without author", flat.Len(), authorless)

	return &Preparation{
		Issues:          issues,
		Texts:           texts,
		Titles:          titles,
		Flat:            flat,
		RemovedComments: removed,
		AuthorlessCount: authorless,
	}
}

// RemoveAuthorlessComments drops comments written by non-user actors and
// returns how many were removed. Comments by deleted accounts are kept.
func RemoveAuthorlessComments(issues []domain.Issue) int {
	removed := 0
	for i := range issues {
		conn := issues[i].Comments
		if conn == nil {
			continue
		}
		kept := conn.Nodes[:0]
		for _, c := range conn.Nodes {
			if c.Author.IsBot() {
				removed++
				continue
			}
			kept = append(kept, c)
		}
		conn.Nodes = kept
	}
	return removed
}

// StandardiseLocations sets StandardisedLocation on every user author.
// Empty and unmapped locations become nil.
func StandardiseLocations(issues []domain.Issue, lookup driven.LocationLookup) {
	for i := range issues {
		standardise(issues[i].Author, lookup)
		for j := range issues[i].CommentNodes() {
			standardise(issues[i].Comments.Nodes[j].Author, lookup)
		}
	}
}

func standardise(a *domain.Author, lookup driven.LocationLookup) {
	if a == nil || a.IsBot() {
		return
	}
	a.StandardisedLocation = nil
	raw := a.RawLocation()
	if raw == "" || lookup == nil {
		return
	}
	if code, ok := lookup.Lookup(raw); ok && code != "" {
		a.StandardisedLocation = &code
	}
}

// AssignIDs stamps issue i with "i" and its j-th comment with "i_j".
func AssignIDs(issues []domain.Issue) {
	for i := range issues {
		issueID := strconv.Itoa(i)
		issues[i].ID = issueID
		for j := range issues[i].CommentNodes() {
			issues[i].Comments.Nodes[j].ID = issueID + "_" + strconv.Itoa(j)
		}
	}
}

// ExtractTexts returns one TextRecord per non-blank issue or comment body,
// and the non-blank issue titles.
func ExtractTexts(issues []domain.Issue) ([]domain.TextRecord, []string) {
	var texts []domain.TextRecord
	var titles []string
	for i := range issues {
		issue := &issues[i]
		if strings.TrimSpace(issue.Title) != "" {
			titles = append(titles, issue.Title)
		}
		if strings.TrimSpace(issue.BodyText) != "" {
			texts = append(texts, domain.TextRecord{ID: issue.ID, Text: issue.BodyText})
		}
		for _, c := range issue.CommentNodes() {
			if strings.TrimSpace(c.BodyText) != "" {
				texts = append(texts, domain.TextRecord{ID: c.ID, Text: c.BodyText})
			}
		}
	}
	return texts, titles
}

// Flatten builds the id-keyed metadata set. Entries whose author is nil are
// skipped and counted. When ids collide the first entry wins.
func Flatten(issues []domain.Issue) (*domain.FlatDataset, int) {
	ds := domain.NewFlatDataset()
	skipped := 0
	for i := range issues {
		issue := &issues[i]
		if issue.Author != nil {
			ds.Add(issue.ID, domain.FlatRecord{
				CreatedAt:      issue.CreatedAt,
				Author:         issue.Author.Login,
				AuthorLocation: issue.Author.StandardisedLocation,
				Type:           domain.RecordIssue,
				Text:           issue.BodyText,
			})
		} else {
			skipped++
		}

		for _, c := range issue.CommentNodes() {
			if c.Author == nil {
				skipped++
				continue
			}
			ds.Add(c.ID, domain.FlatRecord{
				CreatedAt:      c.CreatedAt,
				Author:         c.Author.Login,
				AuthorLocation: c.Author.StandardisedLocation,
				Type:           domain.RecordComment,
				ParentIssueID:  issue.ID,
				Text:           c.BodyText,
			})
		}
	}
	return ds, skipped
}
