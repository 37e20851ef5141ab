package model

import (
	"reflect"
	"testing"
)

func TestCrawlingContextCommitOrder(t *testing.T) {
	t.Parallel()

	ctx := NewCrawlingContext()
	ctx.Commit(StoredOutput{Input: "a"})
	ctx.Commit(StoredOutput{Input: "b"})
	ctx.Commit(StoredOutput{Input: "c"})

	got := make([]string, 0, 3)
	for _, o := range ctx.All() {
		got = append(got, o.Input)
	}
	want := []string{"a", "b", "c"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestCrawlingContextQueries(t *testing.T) {
	t.Parallel()

	ctx := NewCrawlingContext()
	ctx.Commit(StoredOutput{
		Source: Source{Name: "phone2name", ID: "p2n"},
		Data:   []StoredRecord{{"fullname": "John Smith"}},
	})
	ctx.Commit(StoredOutput{
		Source: Source{Name: "phone2email", ID: "p2e"},
		Data:   []StoredRecord{{"email": "john@example.com"}},
	})
	ctx.Commit(StoredOutput{
		Source: Source{Name: "phone2name", ID: "p2n"},
		Data:   []StoredRecord{{"fullname": "Jane Doe"}},
	})

	if got := ctx.Values("fullname"); !reflect.DeepEqual(got, []string{"John Smith", "Jane Doe"}) {
		t.Errorf("Values(fullname) = %v", got)
	}

	if got := ctx.BySourceID("p2n"); len(got) != 2 {
		t.Errorf("BySourceID(p2n) returned %d outputs, want 2", len(got))
	}

	if got := ctx.BySourceName("phone2email"); len(got) != 1 {
		t.Errorf("BySourceName(phone2email) returned %d outputs, want 1", len(got))
	}

	// getAll() must be the disjoint union of get(SourceId(x)) over every
	// distinct source id observed.
	all := ctx.All()
	var reassembled []StoredOutput
	seen := map[string]bool{}
	for _, o := range all {
		if seen[o.Source.ID] {
			continue
		}
		seen[o.Source.ID] = true
		reassembled = append(reassembled, ctx.BySourceID(o.Source.ID)...)
	}
	if len(reassembled) != len(all) {
		t.Errorf("disjoint union over source ids produced %d outputs, want %d", len(reassembled), len(all))
	}
}

func TestCrawlingContextLen(t *testing.T) {
	t.Parallel()

	ctx := NewCrawlingContext()
	if ctx.Len() != 0 {
		t.Fatalf("expected empty context")
	}
	ctx.Commit(StoredOutput{})
	if ctx.Len() != 1 {
		t.Fatalf("expected 1 output")
	}
}
