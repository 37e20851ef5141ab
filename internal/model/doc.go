// Package model defines the data types that flow through the crawling
// engine: sources, inputs, processor outputs, the per-session context that
// accumulates them, and the final crawling result handed to a result store.
//
// These types are intentionally thin value objects. Behavior that needs a
// read/write view over them (the engine's traversal loop) lives in
// internal/engine; model only owns the shapes and their invariants.
package model
