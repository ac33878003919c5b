package github

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestErrorPredicates(t *testing.T) {
	tests := []struct {
		name         string
		err          error
		notFound     bool
		rateLimited  bool
		unauthorized bool
		forbidden    bool
	}{
		{name: "404", err: &APIError{StatusCode: 404}, notFound: true},
		{name: "401", err: &APIError{StatusCode: 401}, unauthorized: true},
		{name: "403", err: &APIError{StatusCode: 403}, forbidden: true},
		{name: "500", err: &APIError{StatusCode: 500}},
		{name: "wrapped 404", err: fmt.Errorf("page 3: %w", &APIError{StatusCode: 404}), notFound: true},
		{name: "repo sentinel", err: fmt.Errorf("octo/hello: %w", ErrRepoNotFound), notFound: true},
		{name: "graphql not found", err: &GraphQLError{Errors: []GraphQLErrorItem{{Type: "NOT_FOUND"}}}, notFound: true},
		{name: "graphql rate limited", err: &GraphQLError{Errors: []GraphQLErrorItem{{Type: "RATE_LIMITED"}}}, rateLimited: true},
		{name: "rate limit error", err: &RateLimitError{ResetAt: time.Now()}, rateLimited: true},
		{name: "plain", err: errors.New("boom")},
		{name: "nil", err: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.notFound, IsNotFound(tt.err))
			assert.Equal(t, tt.rateLimited, IsRateLimited(tt.err))
			assert.Equal(t, tt.unauthorized, IsUnauthorized(tt.err))
			assert.Equal(t, tt.forbidden, IsForbidden(tt.err))
		})
	}
}

func TestGraphQLError_Error(t *testing.T) {
	err := &GraphQLError{Errors: []GraphQLErrorItem{
		{Message: "first"},
		{Type: "NOT_FOUND", Message: "second"},
	}}

	assert.Equal(t, "github: graphql: first; second", err.Error())
	assert.True(t, err.HasType("NOT_FOUND"))
	assert.False(t, err.HasType("FORBIDDEN"))
}

func TestAPIError_Error(t *testing.T) {
	err := &APIError{StatusCode: 502, Message: "Bad Gateway", URL: "https://api.github.com/graphql"}
	assert.Contains(t, err.Error(), "502")
	assert.Contains(t, err.Error(), "Bad Gateway")
}

func TestRetryable(t *testing.T) {
	assert.True(t, retryable(&APIError{StatusCode: 502}))
	assert.True(t, retryable(&RateLimitError{}))
	assert.True(t, retryable(errors.New("connection reset")))
	assert.False(t, retryable(&APIError{StatusCode: 401}))
	assert.False(t, retryable(&APIError{StatusCode: 404}))
	assert.False(t, retryable(&GraphQLError{Errors: []GraphQLErrorItem{{Message: "x"}}}))
}
