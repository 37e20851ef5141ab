package config

import "errors"

// Configuration validation errors returned by Config.Validate. Package
// level sentinels let callers use errors.Is rather than string matching.
var (
	// ErrNoSeeds is returned when no initial input is specified.
	ErrNoSeeds = errors.New("no seeds specified: provide at least one initial input")

	// ErrInvalidParallelism is returned when SessionParallelism is not
	// positive.
	ErrInvalidParallelism = errors.New("invalid session parallelism: must be positive")

	// ErrInvalidBatchSize is returned when BatchSize is not positive.
	ErrInvalidBatchSize = errors.New("invalid batch size: must be positive")

	// ErrInvalidThrottleDelay is returned when ThrottleDelay is negative.
	ErrInvalidThrottleDelay = errors.New("invalid throttle delay: must be non-negative")

	// ErrConflictingReportFormats is returned when both --json and
	// --markdown are specified.
	ErrConflictingReportFormats = errors.New("conflicting report formats: --json and --markdown cannot be used together")

	// ErrInvalidMaxBodySize is returned when MaxBodySize is negative.
	ErrInvalidMaxBodySize = errors.New("invalid max body size: must be non-negative")

	// ErrUnknownStoreKind is returned when Store names an unrecognized
	// store implementation.
	ErrUnknownStoreKind = errors.New("unknown store kind")
)
