package model

// Source identifies the processor that produced a value. Name is a
// human-readable label; ID is the processor identity used to key the
// dedup guard (internal/engine) and the throttler (internal/engine) — two
// distinct processors may share a Name but must have distinct IDs.
//
// Design decision: Source carries both Name and ID, rather than ID alone,
// because reports and CLI output want a readable label without a second
// lookup table.
type Source struct {
	Name string `json:"name"`
	ID   string `json:"id"`
}

// RootSource is the synthetic source attributed to a session's seed
// inputs, which were not produced by any processor.
var RootSource = Source{Name: "root", ID: "root"}
