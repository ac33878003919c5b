package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrInvalidRecord indicates a line of a JSONL input is not a JSON object.
	ErrInvalidRecord = errors.New("invalid record")

	// ErrMissingToken indicates no GitHub token was provided for scraping.
	ErrMissingToken = errors.New("github token not set")
)
