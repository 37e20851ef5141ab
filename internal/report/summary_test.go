package report

import (
	"testing"

	"crawlkit/internal/model"
)

func sampleResult() model.CrawlingResult {
	webfetch := model.Source{Name: "webfetch", ID: "webfetch.Fetcher"}
	emailaddr := model.Source{Name: "emailaddr", ID: "emailaddr.Extractor"}

	return model.CrawlingResult{
		InitialInputs: []string{"https://example.com"},
		Outputs: []model.StoredOutput{
			{
				Source:    webfetch,
				StartedBy: model.RootSource,
				Input:     "https://example.com",
				Data: []model.StoredRecord{
					{"title": "Example", "link": "https://example.com/about"},
				},
				Timestamp: 1000,
			},
			{
				Source:    emailaddr,
				StartedBy: webfetch,
				Input:     "https://example.com/about",
				Data: []model.StoredRecord{
					{"email": "hello@example.com"},
				},
				Timestamp: 2000,
			},
		},
		CrawlingStartTimeMs: 1000,
		CrawlingEndTimeMs:   3000,
	}
}

func TestNewSummary(t *testing.T) {
	t.Parallel()

	summary := NewSummary(sampleResult())

	if summary.InitialInputCount != 1 {
		t.Errorf("got InitialInputCount %d, want 1", summary.InitialInputCount)
	}
	if summary.OutputCount != 2 {
		t.Errorf("got OutputCount %d, want 2", summary.OutputCount)
	}
	if summary.RecordCount != 2 {
		t.Errorf("got RecordCount %d, want 2", summary.RecordCount)
	}
	if summary.DurationMs != 2000 {
		t.Errorf("got DurationMs %d, want 2000", summary.DurationMs)
	}
	if len(summary.BySource) != 2 {
		t.Fatalf("got %d BySource entries, want 2", len(summary.BySource))
	}
	if summary.BySource[0].Source.Name != "webfetch" || summary.BySource[0].Count != 1 {
		t.Errorf("got BySource[0] %+v, want webfetch with count 1", summary.BySource[0])
	}
}

func TestNewSummaryEmptyResult(t *testing.T) {
	t.Parallel()

	summary := NewSummary(model.CrawlingResult{})
	if summary.OutputCount != 0 || len(summary.BySource) != 0 {
		t.Errorf("got non-empty summary for empty result: %+v", summary)
	}
}
