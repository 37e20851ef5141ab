package memory

import (
	"context"
	"strconv"
	"sync"

	"crawlkit/internal/model"
	"crawlkit/internal/processor"
)

// Store is a processor.ResultStore backed by a map guarded by a
// sync.RWMutex. Ids are assigned from a monotonically incrementing
// counter rather than a UUID: the contract only requires an opaque
// string, and a counter is simpler.
type Store struct {
	mu      sync.RWMutex
	results map[string]model.CrawlingResult
	nextID  uint64
}

// New returns an empty Store.
func New() *Store {
	return &Store{results: make(map[string]model.CrawlingResult)}
}

// Save implements processor.ResultStore.
func (s *Store) Save(_ context.Context, result model.CrawlingResult) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextID++
	id := strconv.FormatUint(s.nextID, 10)
	s.results[id] = result
	return id, nil
}

// GetByID implements processor.ResultStore.
func (s *Store) GetByID(_ context.Context, id string) (model.CrawlingResult, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result, ok := s.results[id]
	if !ok {
		return model.CrawlingResult{}, processor.ErrResultNotFound
	}
	return result, nil
}

// GetAll implements processor.ResultStore. Order is unspecified.
func (s *Store) GetAll(_ context.Context) ([]model.CrawlingResult, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	all := make([]model.CrawlingResult, 0, len(s.results))
	for _, result := range s.results {
		all = append(all, result)
	}
	return all, nil
}

// DeleteByID implements processor.ResultStore. Deleting a missing id is
// not an error.
func (s *Store) DeleteByID(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.results, id)
	return nil
}

// DeleteAll implements processor.ResultStore.
func (s *Store) DeleteAll(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.results = make(map[string]model.CrawlingResult)
	return nil
}
