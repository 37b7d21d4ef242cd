package util

import "errors"

// Sentinel errors for common failure modes
var (
	// ErrUnknownBand indicates the requested band is not in the catalog
	ErrUnknownBand = errors.New("unknown band")

	// ErrEmptyCandidateSet indicates no bands share a genre with the target
	ErrEmptyCandidateSet = errors.New("empty candidate set")

	// ErrInvalidWeights indicates a negative or non-finite signal weight
	ErrInvalidWeights = errors.New("invalid weights")

	// ErrMalformedRow indicates a dataset row that could not be parsed
	ErrMalformedRow = errors.New("malformed row")

	// ErrMissingColumn indicates a dataset file lacks a required column
	ErrMissingColumn = errors.New("missing column")

	// ErrInvalidConfig indicates invalid configuration
	ErrInvalidConfig = errors.New("invalid configuration")
)
