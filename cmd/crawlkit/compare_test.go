package main

import (
	"testing"

	"crawlkit/internal/model"
)

func sampleCompareResult(email string, links ...string) model.CrawlingResult {
	webfetch := model.Source{Name: "webfetch", ID: "webfetch.Fetcher"}
	emailaddr := model.Source{Name: "emailaddr", ID: "emailaddr.Extractor"}

	data := make([]model.StoredRecord, 0, len(links))
	for _, link := range links {
		data = append(data, model.StoredRecord{"link": link})
	}

	return model.CrawlingResult{
		Outputs: []model.StoredOutput{
			{Source: webfetch, Data: data},
			{Source: emailaddr, Data: []model.StoredRecord{{"email": email}}},
		},
	}
}

func TestPropertyValuesDedupesAndGroupsBySourceAndKey(t *testing.T) {
	t.Parallel()

	result := sampleCompareResult("a@example.com", "https://example.com/1", "https://example.com/1", "https://example.com/2")
	values := propertyValues(result)

	linkKey := propertyKey{sourceID: "webfetch.Fetcher", key: "link"}
	if len(values[linkKey]) != 2 {
		t.Errorf("got %d distinct link values, want 2 (deduped)", len(values[linkKey]))
	}

	emailKey := propertyKey{sourceID: "emailaddr.Extractor", key: "email"}
	if len(values[emailKey]) != 1 || values[emailKey][0] != "a@example.com" {
		t.Errorf("got email values %v, want [a@example.com]", values[emailKey])
	}
}

func TestCompareResultsDetectsOnlyInBAndChanged(t *testing.T) {
	t.Parallel()

	a := sampleCompareResult("a@example.com", "https://example.com/1")
	b := sampleCompareResult("b@example.com", "https://example.com/1", "https://example.com/2")

	diff := compareResults("result-a", "result-b", a, b)

	if len(diff.OnlyInB) != 1 {
		t.Fatalf("got %d onlyInB entries, want 1", len(diff.OnlyInB))
	}
	if diff.OnlyInB[0].Key != "link" || diff.OnlyInB[0].ValuesB[0] != "https://example.com/2" {
		t.Errorf("unexpected onlyInB entry: %+v", diff.OnlyInB[0])
	}

	foundChangedEmail := false
	for _, e := range diff.Changed {
		if e.Key == "email" {
			foundChangedEmail = true
			if e.ValuesA[0] != "a@example.com" || e.ValuesB[0] != "b@example.com" {
				t.Errorf("unexpected changed email entry: %+v", e)
			}
		}
	}
	if !foundChangedEmail {
		t.Error("expected email to be reported as changed")
	}
}

func TestCompareResultsNoDifferences(t *testing.T) {
	t.Parallel()

	a := sampleCompareResult("a@example.com", "https://example.com/1")
	b := sampleCompareResult("a@example.com", "https://example.com/1")

	diff := compareResults("result-a", "result-b", a, b)

	if len(diff.OnlyInA) != 0 || len(diff.OnlyInB) != 0 || len(diff.Changed) != 0 {
		t.Errorf("expected no differences, got %+v", diff)
	}
}

func TestSameValueSet(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		a, b []string
		want bool
	}{
		{"equal order", []string{"x", "y"}, []string{"x", "y"}, true},
		{"equal reordered", []string{"x", "y"}, []string{"y", "x"}, true},
		{"different length", []string{"x"}, []string{"x", "y"}, false},
		{"different values", []string{"x"}, []string{"y"}, false},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if got := sameValueSet(tc.a, tc.b); got != tc.want {
				t.Errorf("sameValueSet(%v, %v) = %v, want %v", tc.a, tc.b, got, tc.want)
			}
		})
	}
}
