package config

import (
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
)

// Default configuration values.
const (
	// DefaultSessionParallelism bounds how many crawling sessions run at
	// once. Higher values increase throughput but also peak memory and
	// outbound connection usage.
	DefaultSessionParallelism = 10

	// DefaultBatchSize is the number of frontier items a session removes
	// and processes together before committing results and re-enqueuing.
	DefaultBatchSize = 10

	// DefaultMaxCrawlDepth is a conservative ceiling that still allows
	// thorough multi-hop derivation chains. Pass 0 (or any non-positive
	// value) to mean "no limit".
	DefaultMaxCrawlDepth = 100

	// DefaultThrottleDelay is applied to any processor identity with no
	// explicit per-processor override. 1 second is a conservative,
	// polite default for processors that perform outbound I/O.
	DefaultThrottleDelay = 1 * time.Second

	// DefaultTimeout is the per-call timeout a processor should apply to
	// its own outbound I/O; the engine itself imposes none (SPEC 5).
	DefaultTimeout = 30 * time.Second

	// DefaultMaxBodySize limits how much of a fetched resource a
	// processor reads into memory.
	DefaultMaxBodySize = 5 * 1024 * 1024 // 5MB

	// DefaultUserAgent identifies crawlkit in outbound HTTP requests.
	DefaultUserAgent = "crawlkit/1.0 (+https://github.com/crawlkit/crawlkit)"

	// AppName is used for XDG directory paths.
	AppName = "crawlkit"
)

// StoreKind selects which ResultStore implementation a Config wires up.
type StoreKind string

const (
	// StoreMemory keeps results only for the lifetime of the process.
	StoreMemory StoreKind = "memory"
	// StoreFile serializes each result as a JSON file.
	StoreFile StoreKind = "file"
	// StoreSQLite persists results in a local SQLite database.
	StoreSQLite StoreKind = "sqlite"
)

// Config holds the dispatcher- and session-level settings a crawlkit run
// is constructed from. It is populated from CLI flags and passed through
// via dependency injection rather than globals.
type Config struct {
	// SessionParallelism bounds concurrently running sessions.
	SessionParallelism int

	// BatchSize bounds how many frontier items a session processes per
	// round.
	BatchSize int

	// MaxCrawlDepth bounds traversal depth. Non-positive means no limit.
	MaxCrawlDepth int

	// ThrottleDelay is the fallback delay applied to any processor
	// identity without a per-processor override in ProcessorConfigs.
	ThrottleDelay time.Duration

	// Timeout is the per-call I/O timeout processors are configured
	// with; the engine itself does not enforce it.
	Timeout time.Duration

	// Verbose enables slog.LevelDebug logging; otherwise only warnings
	// and errors are logged.
	Verbose bool

	// ConfigFilePath is the path to the per-processor YAML config file.
	// If empty, the tool searches for .crawlkit.yaml in the current
	// directory and then the user's home directory.
	ConfigFilePath string

	// ProcessorConfigs holds per-processor-identity overrides loaded
	// from the config file.
	ProcessorConfigs *ProcessorFile

	// Store selects which ResultStore implementation to wire up.
	Store StoreKind

	// StorePath is the results directory (StoreFile) or database
	// directory (StoreSQLite) the chosen store uses. Defaults to the XDG
	// data directory when empty.
	StorePath string

	// JSONReport and MarkdownReport select the human-facing report
	// format written after a run. Mutually exclusive; neither set means
	// the plain-text summary format.
	JSONReport     bool
	MarkdownReport bool

	// ReportFile is the output path for the report. Empty means stdout.
	ReportFile string

	// Seeds is the list of initial inputs to submit.
	Seeds []string

	// UserAgent is sent by processors that perform HTTP requests.
	UserAgent string

	// MaxBodySize limits how much of a fetched resource a processor
	// reads into memory.
	MaxBodySize int64
}

// NewConfig returns a Config populated with sensible defaults.
func NewConfig() *Config {
	return &Config{
		SessionParallelism: DefaultSessionParallelism,
		BatchSize:          DefaultBatchSize,
		MaxCrawlDepth:      DefaultMaxCrawlDepth,
		ThrottleDelay:      DefaultThrottleDelay,
		Timeout:            DefaultTimeout,
		Store:              StoreMemory,
		UserAgent:          DefaultUserAgent,
		MaxBodySize:        DefaultMaxBodySize,
	}
}

// XDGDataDir returns the XDG data directory for crawlkit, used for the
// default SQLite store location.
func XDGDataDir() string {
	return filepath.Join(xdg.DataHome, AppName)
}

// XDGConfigDir returns the XDG config directory for crawlkit.
// FindConfigFile does not search this directory.
func XDGConfigDir() string {
	return filepath.Join(xdg.ConfigHome, AppName)
}

// XDGCacheDir returns the XDG cache directory for crawlkit.
func XDGCacheDir() string {
	return filepath.Join(xdg.CacheHome, AppName)
}

// Validate checks Config invariants, returning the first violation found
// as a sentinel error.
func (c *Config) Validate() error {
	if len(c.Seeds) == 0 {
		return ErrNoSeeds
	}
	if c.SessionParallelism <= 0 {
		return ErrInvalidParallelism
	}
	if c.BatchSize <= 0 {
		return ErrInvalidBatchSize
	}
	if c.ThrottleDelay < 0 {
		return ErrInvalidThrottleDelay
	}
	if c.JSONReport && c.MarkdownReport {
		return ErrConflictingReportFormats
	}
	if c.MaxBodySize < 0 {
		return ErrInvalidMaxBodySize
	}
	switch c.Store {
	case StoreMemory, StoreFile, StoreSQLite, "":
	default:
		return ErrUnknownStoreKind
	}
	return nil
}
