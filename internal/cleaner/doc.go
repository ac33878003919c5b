// Package cleaner turns noisy GitHub issue and comment text into
// token-normalised prose and decides whether a document is worth keeping.
//
// A document flows through four stages:
//
//   - Normalize: NFKC, line endings, ANSI escapes, emoji and control characters
//   - truncation to CleanConfig.DropIfTooLong characters
//   - the rule fold: progress-spam compression, blockquote/HTML removal and the
//     placeholder substitutions (CODEBLOCK, URL, USER, ISSUE_REF, ...), then
//     whitespace collapse
//   - the noise classifier, which rejects short or log-like results
//
// Cleaning is a pure function of the input text and the CleanConfig: it never
// fails and never logs. Batch mode (Process) streams JSONL records one at a
// time and keeps output order equal to input order.
package cleaner
