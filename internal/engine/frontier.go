package engine

import (
	"errors"

	"crawlkit/internal/model"
)

// ErrNegativeBatchCount is returned by Frontier.RemoveBatch when asked for
// a negative number of items.
var ErrNegativeBatchCount = errors.New("engine: RemoveBatch called with negative n")

// Item is a single pending traversal item: an input discovered at a given
// depth. Depth 0 is reserved for seeds.
type Item struct {
	Depth int
	Input model.CrawlingInput
}

// Frontier is the bounded-complexity container of pending traversal
// items. Two orderings are supported: FIFO (BFS) and LIFO (DFS).
//
// Design decision: Frontier is an interface rather than a single struct
// with a mode flag so that BFS/DFS are distinct, independently testable
// types, matching the teacher's habit of one small type per concern
// (e.g. pipeline.Step vs pipeline.BatchProcessor) rather than a single
// struct branching on configuration at every method.
type Frontier interface {
	// Add enqueues item.
	Add(item Item)

	// Remove dequeues a single item. ok is false if the frontier is
	// empty.
	Remove() (item Item, ok bool)

	// RemoveBatch repeatedly removes until the frontier is empty or n
	// items have been returned. A negative n is a usage error.
	RemoveBatch(n int) ([]Item, error)

	// IsEmpty reports whether the frontier currently holds no items.
	IsEmpty() bool
}

// Algorithm selects which Frontier implementation a session constructs.
type Algorithm int

const (
	// BFS yields level-order traversal: enqueue at tail, dequeue at
	// head. This is the default.
	BFS Algorithm = iota
	// DFS yields last-in-first-out traversal: push on top, pop from
	// top.
	DFS
)

// NewFrontier constructs the Frontier implementation selected by algo.
func NewFrontier(algo Algorithm) Frontier {
	switch algo {
	case DFS:
		return newLIFOFrontier()
	default:
		return newFIFOFrontier()
	}
}

// fifoFrontier is the BFS frontier: a plain slice used as a queue.
type fifoFrontier struct {
	items []Item
}

func newFIFOFrontier() *fifoFrontier {
	return &fifoFrontier{}
}

func (f *fifoFrontier) Add(item Item) {
	f.items = append(f.items, item)
}

func (f *fifoFrontier) Remove() (Item, bool) {
	if len(f.items) == 0 {
		return Item{}, false
	}
	item := f.items[0]
	f.items = f.items[1:]
	return item, true
}

func (f *fifoFrontier) RemoveBatch(n int) ([]Item, error) {
	if n < 0 {
		return nil, ErrNegativeBatchCount
	}
	batch := make([]Item, 0, n)
	for len(batch) < n {
		item, ok := f.Remove()
		if !ok {
			break
		}
		batch = append(batch, item)
	}
	return batch, nil
}

func (f *fifoFrontier) IsEmpty() bool {
	return len(f.items) == 0
}

// lifoFrontier is the DFS frontier: a plain slice used as a stack.
type lifoFrontier struct {
	items []Item
}

func newLIFOFrontier() *lifoFrontier {
	return &lifoFrontier{}
}

func (f *lifoFrontier) Add(item Item) {
	f.items = append(f.items, item)
}

func (f *lifoFrontier) Remove() (Item, bool) {
	n := len(f.items)
	if n == 0 {
		return Item{}, false
	}
	item := f.items[n-1]
	f.items = f.items[:n-1]
	return item, true
}

func (f *lifoFrontier) RemoveBatch(n int) ([]Item, error) {
	if n < 0 {
		return nil, ErrNegativeBatchCount
	}
	// Each successive Remove pops the most recently pushed item, so the
	// returned order is already "most recently pushed first" — no
	// reversal needed.
	batch := make([]Item, 0, n)
	for len(batch) < n {
		item, ok := f.Remove()
		if !ok {
			break
		}
		batch = append(batch, item)
	}
	return batch, nil
}

func (f *lifoFrontier) IsEmpty() bool {
	return len(f.items) == 0
}
