package filestore

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"

	"crawlkit/internal/model"
	"crawlkit/internal/processor"
)

// Store is a processor.ResultStore that writes one
// json.MarshalIndent-formatted file per result to dir, named "<id>.json".
// A mutex serializes id assignment; file reads, writes and deletes are not
// locked, and ids are unique only within one process.
type Store struct {
	dir string

	mu     sync.Mutex
	nextID uint64
}

// New returns a Store rooted at dir, creating it if it does not exist.
// Existing "<id>.json" files are scanned so newly assigned ids never
// collide with ones already on disk.
func New(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("filestore: create directory: %w", err)
	}

	s := &Store{dir: dir}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("filestore: read directory: %w", err)
	}
	for _, entry := range entries {
		name := strings.TrimSuffix(entry.Name(), ".json")
		if id, err := strconv.ParseUint(name, 10, 64); err == nil && id >= s.nextID {
			s.nextID = id
		}
	}

	return s, nil
}

func (s *Store) path(id string) string {
	return filepath.Join(s.dir, id+".json")
}

// Save implements processor.ResultStore.
func (s *Store) Save(_ context.Context, result model.CrawlingResult) (string, error) {
	s.mu.Lock()
	s.nextID++
	id := strconv.FormatUint(s.nextID, 10)
	s.mu.Unlock()

	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return "", fmt.Errorf("filestore: marshal result: %w", err)
	}
	data = append(data, '\n')

	if err := os.WriteFile(s.path(id), data, 0o600); err != nil {
		return "", fmt.Errorf("filestore: write result: %w", err)
	}
	return id, nil
}

// GetByID implements processor.ResultStore.
func (s *Store) GetByID(_ context.Context, id string) (model.CrawlingResult, error) {
	data, err := os.ReadFile(s.path(id))
	if os.IsNotExist(err) {
		return model.CrawlingResult{}, processor.ErrResultNotFound
	}
	if err != nil {
		return model.CrawlingResult{}, fmt.Errorf("filestore: read result: %w", err)
	}

	var result model.CrawlingResult
	if err := json.Unmarshal(data, &result); err != nil {
		return model.CrawlingResult{}, fmt.Errorf("filestore: unmarshal result: %w", err)
	}
	return result, nil
}

// GetAll implements processor.ResultStore. Order is unspecified.
func (s *Store) GetAll(ctx context.Context) ([]model.CrawlingResult, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("filestore: read directory: %w", err)
	}

	results := make([]model.CrawlingResult, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		id := strings.TrimSuffix(entry.Name(), ".json")
		result, err := s.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		results = append(results, result)
	}
	return results, nil
}

// DeleteByID implements processor.ResultStore. Deleting a missing id is
// not an error.
func (s *Store) DeleteByID(_ context.Context, id string) error {
	if err := os.Remove(s.path(id)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("filestore: delete result: %w", err)
	}
	return nil
}

// DeleteAll implements processor.ResultStore.
func (s *Store) DeleteAll(_ context.Context) error {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return fmt.Errorf("filestore: read directory: %w", err)
	}
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		if err := os.Remove(filepath.Join(s.dir, entry.Name())); err != nil {
			return fmt.Errorf("filestore: delete result: %w", err)
		}
	}
	return nil
}
