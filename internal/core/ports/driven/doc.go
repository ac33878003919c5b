// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Interfaces
//
//   - TokenProvider: Supplies the GitHub access token
//   - IssueSource: Fetches the raw issue/comment tree (GitHub GraphQL)
//   - LocationLookup: Maps free-text author locations to country codes
//   - CorpusStore: Persists location codes, runs and joined records (optional)
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter, connector, or cleaner package
package driven
