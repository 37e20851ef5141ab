// Package processor defines the narrow interfaces the crawling engine
// (internal/engine) consumes from its external collaborators: concrete
// input processors and the result store. The engine knows nothing about
// any concrete implementation of either — see internal/processors for
// example InputProcessor implementations and internal/store for example
// CrawlingResultStore implementations.
package processor

import (
	"context"

	"crawlkit/internal/model"
)

// InputProcessor is a pluggable unit of crawling work. Implementations
// vary per data source (web page fetch, API query, filesystem read,
// media download); the engine only ever calls through this interface.
//
// Design decision: a narrow interface/capability set rather than an
// inheritance hierarchy, so that wildly different processors (an HTTP
// fetcher, a regex extractor, an EXIF reader) can share nothing but this
// contract.
type InputProcessor interface {
	// Source returns this processor's stable identity. Two distinct
	// processor implementations may share a Source.Name but must have
	// distinct Source.ID values — ID is the key used by the session's
	// dedup guard and by the throttler.
	Source() model.Source

	// CanProcess reports whether this processor is willing to handle the
	// given input. It may perform I/O and may take a long time. It must
	// not panic in ordinary operation; the engine treats a panic the same
	// as a false return (see internal/engine's invocation guard).
	CanProcess(ctx context.Context, input model.CrawlingInput, crawlCtx model.ReadOnlyContext) bool

	// Process performs the work and returns an Output on success. A
	// non-nil error is logged by the engine and produces no output; it
	// never aborts the session.
	Process(ctx context.Context, input model.CrawlingInput, crawlCtx model.ReadOnlyContext) (model.Output, error)
}
