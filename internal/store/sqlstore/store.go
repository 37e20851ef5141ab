package sqlstore

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	_ "modernc.org/sqlite" // pure-Go SQLite driver

	"crawlkit/internal/model"
	"crawlkit/internal/processor"
)

// Store is a processor.ResultStore backed by a single-file SQLite
// database.
type Store struct {
	db *sql.DB
}

// Options configures Store behavior.
type Options struct {
	// CreateIfNotExists creates the database file and its directory if
	// they don't already exist.
	CreateIfNotExists bool

	// EnableWAL enables Write-Ahead Logging, recommended for concurrent
	// readers alongside the single writer.
	EnableWAL bool
}

// DefaultOptions returns the default Store options.
func DefaultOptions() Options {
	return Options{CreateIfNotExists: true, EnableWAL: true}
}

// Open opens or creates a Store at "<dbDir>/crawlkit.db".
func Open(dbDir string, opts Options) (*Store, error) {
	dbPath := filepath.Join(dbDir, "crawlkit.db")

	if !opts.CreateIfNotExists {
		if _, err := os.Stat(dbPath); os.IsNotExist(err) {
			return nil, fmt.Errorf("sqlstore: database not found at %s", dbPath)
		} else if err != nil {
			return nil, fmt.Errorf("sqlstore: check database path: %w", err)
		}
	} else if err := os.MkdirAll(dbDir, 0o750); err != nil {
		return nil, fmt.Errorf("sqlstore: create database directory: %w", err)
	}

	dsn := dbPath + "?mode=rwc"
	if !opts.CreateIfNotExists {
		dsn = dbPath + "?mode=rw"
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("sqlstore: open database: %w", err)
	}

	// SQLite only supports one writer at a time.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(time.Hour)

	if opts.EnableWAL {
		if _, err := db.ExecContext(context.Background(), "PRAGMA journal_mode=WAL"); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("sqlstore: enable WAL mode: %w", err)
		}
	}

	s := &Store{db: db}
	if err := s.createTables(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("sqlstore: create tables: %w", err)
	}

	return s, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createTables() error {
	schema := `
	CREATE TABLE IF NOT EXISTS crawling_results (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		initial_inputs TEXT NOT NULL,
		outputs TEXT NOT NULL,
		start_time_ms INTEGER NOT NULL,
		end_time_ms INTEGER NOT NULL
	);
	`
	_, err := s.db.ExecContext(context.Background(), schema)
	return err
}

// Save implements processor.ResultStore.
func (s *Store) Save(ctx context.Context, result model.CrawlingResult) (string, error) {
	initialInputsJSON, err := json.Marshal(result.InitialInputs)
	if err != nil {
		return "", fmt.Errorf("sqlstore: marshal initial inputs: %w", err)
	}
	outputsJSON, err := json.Marshal(result.Outputs)
	if err != nil {
		return "", fmt.Errorf("sqlstore: marshal outputs: %w", err)
	}

	query := `
	INSERT INTO crawling_results (initial_inputs, outputs, start_time_ms, end_time_ms)
	VALUES (?, ?, ?, ?)
	`
	res, err := s.db.ExecContext(ctx, query,
		string(initialInputsJSON), string(outputsJSON),
		result.CrawlingStartTimeMs, result.CrawlingEndTimeMs,
	)
	if err != nil {
		return "", fmt.Errorf("sqlstore: insert result: %w", err)
	}

	rowID, err := res.LastInsertId()
	if err != nil {
		return "", fmt.Errorf("sqlstore: read inserted id: %w", err)
	}
	return strconv.FormatInt(rowID, 10), nil
}

// GetByID implements processor.ResultStore.
func (s *Store) GetByID(ctx context.Context, id string) (model.CrawlingResult, error) {
	rowID, err := strconv.ParseInt(id, 10, 64)
	if err != nil {
		return model.CrawlingResult{}, processor.ErrResultNotFound
	}

	query := `
	SELECT initial_inputs, outputs, start_time_ms, end_time_ms
	FROM crawling_results WHERE id = ?
	`
	row := s.db.QueryRowContext(ctx, query, rowID)
	result, err := scanResult(row.Scan)
	if err == sql.ErrNoRows {
		return model.CrawlingResult{}, processor.ErrResultNotFound
	}
	if err != nil {
		return model.CrawlingResult{}, err
	}
	return result, nil
}

// GetAll implements processor.ResultStore. Order is unspecified.
func (s *Store) GetAll(ctx context.Context) ([]model.CrawlingResult, error) {
	query := `SELECT initial_inputs, outputs, start_time_ms, end_time_ms FROM crawling_results`
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("sqlstore: query results: %w", err)
	}
	defer rows.Close()

	var results []model.CrawlingResult
	for rows.Next() {
		result, err := scanResult(rows.Scan)
		if err != nil {
			return nil, err
		}
		results = append(results, result)
	}
	return results, rows.Err()
}

// DeleteByID implements processor.ResultStore. Deleting a missing id is
// not an error.
func (s *Store) DeleteByID(ctx context.Context, id string) error {
	rowID, err := strconv.ParseInt(id, 10, 64)
	if err != nil {
		return nil
	}
	if _, err := s.db.ExecContext(ctx, `DELETE FROM crawling_results WHERE id = ?`, rowID); err != nil {
		return fmt.Errorf("sqlstore: delete result: %w", err)
	}
	return nil
}

// DeleteAll implements processor.ResultStore.
func (s *Store) DeleteAll(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM crawling_results`); err != nil {
		return fmt.Errorf("sqlstore: delete all results: %w", err)
	}
	return nil
}

func scanResult(scan func(dest ...any) error) (model.CrawlingResult, error) {
	var initialInputsJSON, outputsJSON string
	var result model.CrawlingResult

	if err := scan(&initialInputsJSON, &outputsJSON, &result.CrawlingStartTimeMs, &result.CrawlingEndTimeMs); err != nil {
		return model.CrawlingResult{}, err
	}

	if err := json.Unmarshal([]byte(initialInputsJSON), &result.InitialInputs); err != nil {
		return model.CrawlingResult{}, fmt.Errorf("sqlstore: unmarshal initial inputs: %w", err)
	}
	if err := json.Unmarshal([]byte(outputsJSON), &result.Outputs); err != nil {
		return model.CrawlingResult{}, fmt.Errorf("sqlstore: unmarshal outputs: %w", err)
	}
	return result, nil
}
