// Package domain defines the core entities for ghcorpus.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Issue, Comment, Author: the scraped issue/comment tree
//   - FlatRecord, FlatDataset: the flattened id-keyed metadata
//   - Document: one unit of raw text awaiting cleaning
//   - CleanConfig, Result: cleaning options and the Kept/Dropped outcome
//   - Run: bookkeeping for a clean or join batch
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
