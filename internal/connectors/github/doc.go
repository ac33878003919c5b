// Package github scrapes a repository's issues and comment threads through
// GitHub's GraphQL API.
//
// # Architecture
//
// The package implements [driven.IssueSource] with these components:
//
//   - IssueSource: pages through issues, retries failed pages and checks the
//     remaining rate limit budget
//   - Client: posts GraphQL queries through the go-github transport with an
//     oauth2 bearer token
//   - RateLimiter: proactive token bucket plus reactive budget tracking
//   - Config: repository and paging settings
//
// # Authentication
//
// A Personal Access Token is required; GraphQL does not accept anonymous
// requests. The token is obtained lazily from a [driven.TokenProvider].
//
// # Query Shape
//
// Each page selects title, bodyText, createdAt, the first N labels, the
// author (login and location, only for User actors) and the first M comments
// with the same author selection. Bots therefore decode to an empty author
// and deleted accounts to a null author.
//
// # Rate Limiting
//
//  1. Proactive throttling: a token bucket limits requests to
//     Config.RequestsPerSecond (one per second by default).
//
//  2. Budget checks: every Config.RateCheckEvery pages the rateLimit object is
//     queried. When fewer than MinBuffer points remain the scraper sleeps
//     until resetAt plus ResetGrace. X-RateLimit-* headers update the same
//     state after every response.
//
// # Error Handling
//
//   - Transport errors, non-2xx statuses and undecodable bodies are retried
//     after Config.RetryDelay, at most Config.MaxRetries times per page
//   - A GraphQL errors array stops the scrape; issues fetched so far are
//     returned together with a [*GraphQLError]
//   - 401 and 404 responses and a missing token fail immediately
//
// # Example Usage
//
//	cfg := github.DefaultConfig("octo", "hello")
//	source := github.New(cfg, auth.NewEnvTokenProvider(""))
//	issues, err := source.FetchIssues(ctx, 10000)
package github
