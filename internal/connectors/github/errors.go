package github

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Scraper errors.
var (
	// ErrRepoNotFound means the repository is missing or hidden from the token.
	ErrRepoNotFound = errors.New("github: repository not found")

	// ErrRepoRequired indicates owner or repository name is missing.
	ErrRepoRequired = errors.New("github: owner and repository are required")

	// ErrRetriesExhausted indicates a page kept failing after every retry.
	ErrRetriesExhausted = errors.New("github: retries exhausted")
)

// RateLimitError is returned when GitHub rejects a request for exceeding
// the primary or secondary rate limit.
type RateLimitError struct {
	ResetAt   time.Time
	Remaining int
	Limit     int
}

func (e *RateLimitError) Error() string {
	return fmt.Sprintf("github: rate limited (%d/%d left) until %s",
		e.Remaining, e.Limit, e.ResetAt.Format(time.RFC3339))
}

// APIError is a non-2xx HTTP response from the API.
type APIError struct {
	StatusCode int
	Message    string
	URL        string
}

func (e *APIError) Error() string {
	if e.URL == "" {
		return fmt.Sprintf("github: HTTP %d: %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("github: HTTP %d from %s: %s", e.StatusCode, e.URL, e.Message)
}

// GraphQLErrorItem is one entry of a GraphQL "errors" array.
type GraphQLErrorItem struct {
	Type    string `json:"type,omitempty"`
	Message string `json:"message"`
	Path    []any  `json:"path,omitempty"`
}

// GraphQLError is returned when the API answers with a non-empty errors array.
type GraphQLError struct {
	Errors []GraphQLErrorItem
}

func (e *GraphQLError) Error() string {
	msgs := make([]string, 0, len(e.Errors))
	for _, item := range e.Errors {
		msgs = append(msgs, item.Message)
	}
	return "github: graphql: " + strings.Join(msgs, "; ")
}

// HasType reports whether any error item carries the given type.
func (e *GraphQLError) HasType(t string) bool {
	for _, item := range e.Errors {
		if item.Type == t {
			return true
		}
	}
	return false
}

// IsNotFound reports a missing repository: HTTP 404, a NOT_FOUND GraphQL
// error or ErrRepoNotFound.
func IsNotFound(err error) bool {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode == 404
	}
	var gqlErr *GraphQLError
	if errors.As(err, &gqlErr) && gqlErr.HasType("NOT_FOUND") {
		return true
	}
	return errors.Is(err, ErrRepoNotFound)
}

// IsRateLimited reports an HTTP or GraphQL rate limit rejection.
func IsRateLimited(err error) bool {
	var rateLimitErr *RateLimitError
	if errors.As(err, &rateLimitErr) {
		return true
	}
	var gqlErr *GraphQLError
	return errors.As(err, &gqlErr) && gqlErr.HasType("RATE_LIMITED")
}

// IsUnauthorized reports a rejected token (HTTP 401).
func IsUnauthorized(err error) bool {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode == 401
	}
	return false
}

// IsForbidden reports HTTP 403.
func IsForbidden(err error) bool {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode == 403
	}
	return false
}
