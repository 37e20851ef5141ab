// Package engine implements the concurrent crawling core: the frontier
// (internal/engine.Frontier), the per-processor throttler
// (internal/engine.Throttler), the per-session dedup guard, the session
// traversal loop, and the top-level dispatcher that bounds session
// concurrency. Concrete processors and result stores are consumed only
// through the interfaces in internal/processor.
package engine
