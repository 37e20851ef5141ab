// Package sqlstore provides a modernc.org/sqlite-backed
// processor.ResultStore. Results are stored as JSON blobs in a single
// table; the schema favors simple querying over normalization, matching
// how the teacher's scan-report table stores its JSON payload.
package sqlstore
