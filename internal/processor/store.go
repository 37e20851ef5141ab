package processor

import (
	"context"

	"crawlkit/internal/model"
)

// ResultStore is the contract the engine consumes to persist a finished
// session's CrawlingResult. Implementations must be safe for concurrent
// Save calls from different sessions. See internal/store for the
// in-memory, file/JSON, and SQLite implementations.
type ResultStore interface {
	// Save persists result and returns an opaque id. An error here
	// surfaces as a session-level EventSessionFailed.
	Save(ctx context.Context, result model.CrawlingResult) (id string, err error)

	// GetByID returns the result previously saved under id, or
	// ErrResultNotFound if none exists.
	GetByID(ctx context.Context, id string) (model.CrawlingResult, error)

	// GetAll returns every stored result. Order is implementation-defined.
	GetAll(ctx context.Context) ([]model.CrawlingResult, error)

	// DeleteByID removes the result stored under id. Deleting a missing
	// id is not an error.
	DeleteByID(ctx context.Context, id string) error

	// DeleteAll removes every stored result.
	DeleteAll(ctx context.Context) error
}
