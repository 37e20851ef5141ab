package engine

import (
	"errors"
	"reflect"
	"testing"

	"crawlkit/internal/model"
)

func itemWithInput(raw string) Item {
	return Item{Input: model.CrawlingInput{Source: model.RootSource, RawInput: raw}}
}

func TestFIFOFrontierOrder(t *testing.T) {
	t.Parallel()

	f := NewFrontier(BFS)
	f.Add(itemWithInput("a"))
	f.Add(itemWithInput("b"))
	f.Add(itemWithInput("c"))

	var got []string
	for {
		item, ok := f.Remove()
		if !ok {
			break
		}
		got = append(got, item.Input.RawInput)
	}

	want := []string{"a", "b", "c"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestLIFOFrontierOrder(t *testing.T) {
	t.Parallel()

	f := NewFrontier(DFS)
	f.Add(itemWithInput("a"))
	f.Add(itemWithInput("b"))
	f.Add(itemWithInput("c"))

	var got []string
	for {
		item, ok := f.Remove()
		if !ok {
			break
		}
		got = append(got, item.Input.RawInput)
	}

	want := []string{"c", "b", "a"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestRemoveBatch(t *testing.T) {
	t.Parallel()

	t.Run("FIFO returns in single-remove order", func(t *testing.T) {
		t.Parallel()

		f := NewFrontier(BFS)
		f.Add(itemWithInput("a"))
		f.Add(itemWithInput("b"))
		f.Add(itemWithInput("c"))

		batch, err := f.RemoveBatch(2)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(batch) != 2 || batch[0].Input.RawInput != "a" || batch[1].Input.RawInput != "b" {
			t.Errorf("got %v", batch)
		}
		if f.IsEmpty() {
			t.Errorf("expected one item left")
		}
	})

	t.Run("DFS returns most recently pushed first", func(t *testing.T) {
		t.Parallel()

		f := NewFrontier(DFS)
		f.Add(itemWithInput("a"))
		f.Add(itemWithInput("b"))
		f.Add(itemWithInput("c"))

		batch, err := f.RemoveBatch(2)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(batch) != 2 || batch[0].Input.RawInput != "c" || batch[1].Input.RawInput != "b" {
			t.Errorf("got %v", batch)
		}
	})

	t.Run("stops early when frontier drains", func(t *testing.T) {
		t.Parallel()

		f := NewFrontier(BFS)
		f.Add(itemWithInput("only"))

		batch, err := f.RemoveBatch(5)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(batch) != 1 {
			t.Errorf("got %d items, want 1", len(batch))
		}
		if !f.IsEmpty() {
			t.Errorf("expected frontier to be empty")
		}
	})

	t.Run("negative n is a usage error", func(t *testing.T) {
		t.Parallel()

		for _, algo := range []Algorithm{BFS, DFS} {
			f := NewFrontier(algo)
			_, err := f.RemoveBatch(-1)
			if !errors.Is(err, ErrNegativeBatchCount) {
				t.Errorf("algo %v: got %v, want ErrNegativeBatchCount", algo, err)
			}
		}
	})

	t.Run("zero n returns empty batch without removing", func(t *testing.T) {
		t.Parallel()

		f := NewFrontier(BFS)
		f.Add(itemWithInput("a"))

		batch, err := f.RemoveBatch(0)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(batch) != 0 {
			t.Errorf("got %v, want empty", batch)
		}
		if f.IsEmpty() {
			t.Errorf("expected item to remain")
		}
	})
}

func TestIsEmpty(t *testing.T) {
	t.Parallel()

	f := NewFrontier(BFS)
	if !f.IsEmpty() {
		t.Fatal("new frontier should be empty")
	}
	f.Add(itemWithInput("x"))
	if f.IsEmpty() {
		t.Fatal("frontier with an item should not be empty")
	}
}
