package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

// TestNewConfig verifies that NewConfig returns defaults as living
// documentation: changes to defaults should be intentional and visible
// as a test failure.
func TestNewConfig(t *testing.T) {
	t.Parallel()

	cfg := NewConfig()

	t.Run("default SessionParallelism is 10", func(t *testing.T) {
		t.Parallel()
		if cfg.SessionParallelism != 10 {
			t.Errorf("got %d, want 10", cfg.SessionParallelism)
		}
	})

	t.Run("default BatchSize is 10", func(t *testing.T) {
		t.Parallel()
		if cfg.BatchSize != 10 {
			t.Errorf("got %d, want 10", cfg.BatchSize)
		}
	})

	t.Run("default MaxCrawlDepth is 100", func(t *testing.T) {
		t.Parallel()
		if cfg.MaxCrawlDepth != 100 {
			t.Errorf("got %d, want 100", cfg.MaxCrawlDepth)
		}
	})

	t.Run("default ThrottleDelay is 1 second", func(t *testing.T) {
		t.Parallel()
		if cfg.ThrottleDelay != time.Second {
			t.Errorf("got %v, want 1s", cfg.ThrottleDelay)
		}
	})

	t.Run("default Store is memory", func(t *testing.T) {
		t.Parallel()
		if cfg.Store != StoreMemory {
			t.Errorf("got %v, want StoreMemory", cfg.Store)
		}
	})
}

func TestConfigValidate(t *testing.T) {
	t.Parallel()

	validConfig := func() *Config {
		return &Config{
			Seeds:              []string{"https://example.com"},
			SessionParallelism: 10,
			BatchSize:          10,
			ThrottleDelay:      time.Second,
			Store:              StoreMemory,
		}
	}

	t.Run("valid config returns nil", func(t *testing.T) {
		t.Parallel()
		if err := validConfig().Validate(); err != nil {
			t.Errorf("expected no error, got %v", err)
		}
	})

	t.Run("empty seeds returns ErrNoSeeds", func(t *testing.T) {
		t.Parallel()
		cfg := validConfig()
		cfg.Seeds = nil
		if err := cfg.Validate(); !errors.Is(err, ErrNoSeeds) {
			t.Errorf("got %v, want ErrNoSeeds", err)
		}
	})

	t.Run("zero parallelism returns ErrInvalidParallelism", func(t *testing.T) {
		t.Parallel()
		cfg := validConfig()
		cfg.SessionParallelism = 0
		if err := cfg.Validate(); !errors.Is(err, ErrInvalidParallelism) {
			t.Errorf("got %v, want ErrInvalidParallelism", err)
		}
	})

	t.Run("zero batch size returns ErrInvalidBatchSize", func(t *testing.T) {
		t.Parallel()
		cfg := validConfig()
		cfg.BatchSize = 0
		if err := cfg.Validate(); !errors.Is(err, ErrInvalidBatchSize) {
			t.Errorf("got %v, want ErrInvalidBatchSize", err)
		}
	})

	t.Run("negative throttle delay returns ErrInvalidThrottleDelay", func(t *testing.T) {
		t.Parallel()
		cfg := validConfig()
		cfg.ThrottleDelay = -time.Second
		if err := cfg.Validate(); !errors.Is(err, ErrInvalidThrottleDelay) {
			t.Errorf("got %v, want ErrInvalidThrottleDelay", err)
		}
	})

	t.Run("json and markdown both enabled returns ErrConflictingReportFormats", func(t *testing.T) {
		t.Parallel()
		cfg := validConfig()
		cfg.JSONReport = true
		cfg.MarkdownReport = true
		if err := cfg.Validate(); !errors.Is(err, ErrConflictingReportFormats) {
			t.Errorf("got %v, want ErrConflictingReportFormats", err)
		}
	})

	t.Run("unknown store kind returns ErrUnknownStoreKind", func(t *testing.T) {
		t.Parallel()
		cfg := validConfig()
		cfg.Store = StoreKind("bogus")
		if err := cfg.Validate(); !errors.Is(err, ErrUnknownStoreKind) {
			t.Errorf("got %v, want ErrUnknownStoreKind", err)
		}
	})
}

func TestProcessorFileGetProcessorConfig(t *testing.T) {
	t.Parallel()

	t.Run("returns defaults when processor not configured", func(t *testing.T) {
		t.Parallel()

		pf := &ProcessorFile{
			Defaults: ProcessorConfig{ThrottleDelay: 500 * time.Millisecond, Cookie: "default=abc"},
		}

		cfg := pf.GetProcessorConfig("unknown")
		if cfg.ThrottleDelay != 500*time.Millisecond {
			t.Errorf("got %v, want 500ms", cfg.ThrottleDelay)
		}
		if cfg.Cookie != "default=abc" {
			t.Errorf("got %q, want default=abc", cfg.Cookie)
		}
	})

	t.Run("returns processor-specific override", func(t *testing.T) {
		t.Parallel()

		pf := &ProcessorFile{
			Defaults: ProcessorConfig{ThrottleDelay: 500 * time.Millisecond},
			Processors: map[string]ProcessorConfig{
				"webfetch": {ThrottleDelay: 2 * time.Second, Cookie: "session=xyz"},
			},
		}

		cfg := pf.GetProcessorConfig("webfetch")
		if cfg.ThrottleDelay != 2*time.Second {
			t.Errorf("got %v, want 2s", cfg.ThrottleDelay)
		}
		if cfg.Cookie != "session=xyz" {
			t.Errorf("got %q, want session=xyz", cfg.Cookie)
		}
	})

	t.Run("merges headers from defaults and override", func(t *testing.T) {
		t.Parallel()

		pf := &ProcessorFile{
			Defaults: ProcessorConfig{Headers: map[string]string{"X-Default": "value1"}},
			Processors: map[string]ProcessorConfig{
				"webfetch": {Headers: map[string]string{"X-Custom": "value2"}},
			},
		}

		cfg := pf.GetProcessorConfig("webfetch")
		if cfg.Headers["X-Default"] != "value1" || cfg.Headers["X-Custom"] != "value2" {
			t.Errorf("got %v", cfg.Headers)
		}
	})

	t.Run("zero override throttle delay uses default", func(t *testing.T) {
		t.Parallel()

		pf := &ProcessorFile{
			Defaults: ProcessorConfig{ThrottleDelay: 500 * time.Millisecond},
			Processors: map[string]ProcessorConfig{
				"webfetch": {Cookie: "session=abc"},
			},
		}

		cfg := pf.GetProcessorConfig("webfetch")
		if cfg.ThrottleDelay != 500*time.Millisecond {
			t.Errorf("got %v, want default 500ms", cfg.ThrottleDelay)
		}
	})
}

func TestProcessorFileThrottleDelays(t *testing.T) {
	t.Parallel()

	pf := &ProcessorFile{
		Processors: map[string]ProcessorConfig{
			"webfetch":  {ThrottleDelay: 2 * time.Second},
			"emailaddr": {Cookie: "unused"},
		},
	}

	delays := pf.ThrottleDelays()
	if delays["webfetch"] != 2*time.Second {
		t.Errorf("got %v, want 2s", delays["webfetch"])
	}
	if _, ok := delays["emailaddr"]; ok {
		t.Errorf("expected emailaddr to be omitted (zero delay), got %v", delays["emailaddr"])
	}
}

func TestLoadProcessorFile(t *testing.T) {
	t.Parallel()

	t.Run("returns ErrConfigNotFound for non-existent file", func(t *testing.T) {
		t.Parallel()

		pf, err := LoadProcessorFile("/nonexistent/path/.crawlkit.yaml")
		if !errors.Is(err, ErrConfigNotFound) {
			t.Fatalf("got %v, want ErrConfigNotFound", err)
		}
		if pf != nil {
			t.Error("expected nil ProcessorFile when file not found")
		}
	})

	t.Run("loads valid YAML config", func(t *testing.T) {
		t.Parallel()

		tmpDir := t.TempDir()
		configPath := filepath.Join(tmpDir, ".crawlkit.yaml")

		content := `defaults:
  throttleDelay: 500ms
  cookie: "default=abc"
processors:
  webfetch:
    throttleDelay: 2s
    cookie: "session=xyz"
    headers:
      Authorization: "Bearer token"
    ignorePatterns:
      - "/admin/*"
    followPatterns:
      - "/api/*"
`
		if err := os.WriteFile(configPath, []byte(content), 0600); err != nil {
			t.Fatalf("failed to write test config: %v", err)
		}

		pf, err := LoadProcessorFile(configPath)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if pf.Defaults.ThrottleDelay != 500*time.Millisecond {
			t.Errorf("got %v, want 500ms", pf.Defaults.ThrottleDelay)
		}

		webfetch, ok := pf.Processors["webfetch"]
		if !ok {
			t.Fatal("expected webfetch in processors")
		}
		if webfetch.ThrottleDelay != 2*time.Second {
			t.Errorf("got %v, want 2s", webfetch.ThrottleDelay)
		}
		if webfetch.Headers["Authorization"] != "Bearer token" {
			t.Error("expected Authorization header")
		}
	})

	t.Run("returns error for invalid YAML", func(t *testing.T) {
		t.Parallel()

		tmpDir := t.TempDir()
		configPath := filepath.Join(tmpDir, ".crawlkit.yaml")

		if err := os.WriteFile(configPath, []byte(`invalid: yaml: content: [}`), 0600); err != nil {
			t.Fatalf("failed to write test config: %v", err)
		}

		if _, err := LoadProcessorFile(configPath); err == nil {
			t.Error("expected error for invalid YAML")
		}
	})

	t.Run("initializes nil Processors map", func(t *testing.T) {
		t.Parallel()

		tmpDir := t.TempDir()
		configPath := filepath.Join(tmpDir, ".crawlkit.yaml")

		if err := os.WriteFile(configPath, []byte("defaults:\n  throttleDelay: 1s\n"), 0600); err != nil {
			t.Fatalf("failed to write test config: %v", err)
		}

		pf, err := LoadProcessorFile(configPath)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if pf.Processors == nil {
			t.Error("expected Processors map to be initialized")
		}
	})
}

func TestFindConfigFile(t *testing.T) {
	t.Parallel()

	t.Run("returns explicit path if it exists", func(t *testing.T) {
		t.Parallel()

		tmpDir := t.TempDir()
		configPath := filepath.Join(tmpDir, "custom.yaml")
		if err := os.WriteFile(configPath, []byte("defaults: {}"), 0600); err != nil {
			t.Fatalf("failed to write test config: %v", err)
		}

		if got := FindConfigFile(configPath); got != configPath {
			t.Errorf("got %q, want %q", got, configPath)
		}
	})

	t.Run("returns empty for non-existent explicit path", func(t *testing.T) {
		t.Parallel()

		if got := FindConfigFile("/nonexistent/path/config.yaml"); got != "" {
			t.Errorf("got %q, want empty", got)
		}
	})
}

func TestXDGDirs(t *testing.T) {
	t.Parallel()

	t.Run("XDGDataDir returns non-empty path", func(t *testing.T) {
		t.Parallel()
		if XDGDataDir() == "" {
			t.Error("expected non-empty XDG data dir")
		}
	})

	t.Run("XDGConfigDir returns non-empty path", func(t *testing.T) {
		t.Parallel()
		if XDGConfigDir() == "" {
			t.Error("expected non-empty XDG config dir")
		}
	})

	t.Run("XDGCacheDir returns non-empty path", func(t *testing.T) {
		t.Parallel()
		if XDGCacheDir() == "" {
			t.Error("expected non-empty XDG cache dir")
		}
	})
}
