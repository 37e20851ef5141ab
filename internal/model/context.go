package model

import "sync"

// CrawlingContext accumulates the StoredOutputs committed during one
// session's traversal. It is created empty per session and mutated only
// by the session's own traversal goroutine (see internal/engine); the
// mutex below guards the read side so that processors, which receive a
// read-only view concurrently with the next batch's commits, never race.
//
// Design decision: insertion order is preserved as a plain append-only
// slice. The teacher's ancestor pushes seeds onto a stack, which leaves
// context order a reversed approximation of commit order; we pick the
// simpler, more defensible rule of "exactly commit order" (see
// SPEC_FULL.md's Open Question resolutions) and test for it directly.
type CrawlingContext struct {
	mu      sync.RWMutex
	outputs []StoredOutput
}

// NewCrawlingContext returns an empty context.
func NewCrawlingContext() *CrawlingContext {
	return &CrawlingContext{}
}

// Commit appends a StoredOutput. Only the owning session's traversal
// goroutine calls this.
func (c *CrawlingContext) Commit(output StoredOutput) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.outputs = append(c.outputs, output)
}

// All returns every committed StoredOutput, in commit order.
func (c *CrawlingContext) All() []StoredOutput {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]StoredOutput, len(c.outputs))
	copy(out, c.outputs)
	return out
}

// BySourceID returns every StoredOutput whose Source.ID matches id, in
// commit order.
func (c *CrawlingContext) BySourceID(id string) []StoredOutput {
	c.mu.RLock()
	defer c.mu.RUnlock()
	var out []StoredOutput
	for _, o := range c.outputs {
		if o.Source.ID == id {
			out = append(out, o)
		}
	}
	return out
}

// BySourceName returns every StoredOutput whose Source.Name matches name,
// in commit order.
func (c *CrawlingContext) BySourceName(name string) []StoredOutput {
	c.mu.RLock()
	defer c.mu.RUnlock()
	var out []StoredOutput
	for _, o := range c.outputs {
		if o.Source.Name == name {
			out = append(out, o)
		}
	}
	return out
}

// Values returns the concatenation, in insertion order, of every record
// value stored under key across all committed outputs.
func (c *CrawlingContext) Values(key string) []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	var out []string
	for _, o := range c.outputs {
		for _, record := range o.Data {
			if v, ok := record[key]; ok {
				out = append(out, v)
			}
		}
	}
	return out
}

// Len returns the number of committed outputs.
func (c *CrawlingContext) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.outputs)
}

// Snapshot is an alias for All, named for callers building a
// CrawlingResult (internal/engine) where "snapshot" is the more natural
// term.
func (c *CrawlingContext) Snapshot() []StoredOutput {
	return c.All()
}

// ReadOnly returns a view of this context that exposes only the query
// methods, for handing to InputProcessor.canProcess/process.
func (c *CrawlingContext) ReadOnly() ReadOnlyContext {
	return ReadOnlyContext{c: c}
}

// ReadOnlyContext is the read-only view of a CrawlingContext passed to
// processors. It deliberately has no Commit method.
type ReadOnlyContext struct {
	c *CrawlingContext
}

func (r ReadOnlyContext) All() []StoredOutput              { return r.c.All() }
func (r ReadOnlyContext) BySourceID(id string) []StoredOutput { return r.c.BySourceID(id) }
func (r ReadOnlyContext) BySourceName(name string) []StoredOutput {
	return r.c.BySourceName(name)
}
func (r ReadOnlyContext) Values(key string) []string { return r.c.Values(key) }
func (r ReadOnlyContext) Len() int                    { return r.c.Len() }
