package model

// CrawlingResult is produced once, at session end, and handed to the
// configured CrawlingResultStore. JSON tags match the reference file-store
// shape from the spec.
type CrawlingResult struct {
	InitialInputs       []string       `json:"initialInputs"`
	Outputs             []StoredOutput `json:"outputs"`
	CrawlingStartTimeMs int64          `json:"crawlingStartTimeMs"`
	CrawlingEndTimeMs   int64          `json:"crawlingEndTimeMs"`
}

// DurationMs returns the recorded wall-clock duration of the session.
func (r CrawlingResult) DurationMs() int64 {
	return r.CrawlingEndTimeMs - r.CrawlingStartTimeMs
}
