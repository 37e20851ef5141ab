package engine

import "errors"

var (
	// ErrNoProcessors is returned when a session or dispatcher is
	// configured with an empty processor set.
	ErrNoProcessors = errors.New("engine: at least one processor is required")

	// ErrInvalidBatchSize is returned when the input-processing batch
	// size is less than 1.
	ErrInvalidBatchSize = errors.New("engine: batch size must be >= 1")

	// ErrInvalidParallelism is returned when session parallelism is less
	// than 1.
	ErrInvalidParallelism = errors.New("engine: session parallelism must be >= 1")

	// ErrInvalidMaxDepth is returned when maxCrawlDepth is less than 1.
	ErrInvalidMaxDepth = errors.New("engine: maxCrawlDepth must be >= 1")

	// ErrEmptySeed is returned when a submission contains no non-blank
	// seed after trimming.
	ErrEmptySeed = errors.New("engine: submission requires at least one non-blank seed")

	// ErrDispatcherShutdown is returned by Submit after Shutdown has been
	// called.
	ErrDispatcherShutdown = errors.New("engine: dispatcher has been shut down")

	// ErrNilResultStore is returned when a session or dispatcher is
	// constructed without a result store.
	ErrNilResultStore = errors.New("engine: result store is required")
)
