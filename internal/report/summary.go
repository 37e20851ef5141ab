package report

import "crawlkit/internal/model"

// SourceCount is the number of output records a single processor source
// contributed to a crawl.
type SourceCount struct {
	Source model.Source `json:"source"`
	Count  int          `json:"count"`
}

// Summary aggregates a CrawlingResult into counts suitable for a
// quick-glance view, without walking the full Outputs slice again.
type Summary struct {
	InitialInputCount int           `json:"initialInputCount"`
	OutputCount       int           `json:"outputCount"`
	RecordCount       int           `json:"recordCount"`
	BySource          []SourceCount `json:"bySource"`
	DurationMs        int64         `json:"durationMs"`
}

// NewSummary computes a Summary from a CrawlingResult.
func NewSummary(result model.CrawlingResult) *Summary {
	counts := make(map[model.Source]int)
	var order []model.Source
	recordCount := 0

	for _, output := range result.Outputs {
		if _, seen := counts[output.Source]; !seen {
			order = append(order, output.Source)
		}
		counts[output.Source] += len(output.Data)
		recordCount += len(output.Data)
	}

	bySource := make([]SourceCount, len(order))
	for i, src := range order {
		bySource[i] = SourceCount{Source: src, Count: counts[src]}
	}

	return &Summary{
		InitialInputCount: len(result.InitialInputs),
		OutputCount:       len(result.Outputs),
		RecordCount:       recordCount,
		BySource:          bySource,
		DurationMs:        result.DurationMs(),
	}
}
