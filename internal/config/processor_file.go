package config

import "time"

// ProcessorConfig holds per-processor-identity overrides: throttle
// spacing and crawl-time behavior. The direct descendant of the
// teacher's per-site configuration, generalized from "onion address" to
// "processor identity" keying.
type ProcessorConfig struct {
	// ThrottleDelay overrides the global fallback delay for this
	// processor identity. Zero means "use the fallback".
	ThrottleDelay time.Duration `yaml:"throttleDelay,omitempty"`

	// IgnorePatterns are glob patterns a processor may use to skip
	// inputs during crawling.
	IgnorePatterns []string `yaml:"ignorePatterns,omitempty"`

	// FollowPatterns, if non-empty, restrict a processor to only the
	// inputs matching one of these glob patterns.
	FollowPatterns []string `yaml:"followPatterns,omitempty"`

	// Headers are extra HTTP headers a transport-backed processor
	// should send for this identity.
	Headers map[string]string `yaml:"headers,omitempty"`

	// Cookie is an HTTP cookie header value a transport-backed
	// processor should send for this identity.
	Cookie string `yaml:"cookie,omitempty"`
}

// ProcessorFile is the structure of the .crawlkit.yaml configuration
// file.
type ProcessorFile struct {
	// Processors maps processor identity (Source.ID) to its overrides.
	Processors map[string]ProcessorConfig `yaml:"processors,omitempty"`

	// Defaults is applied to every processor identity unless overridden
	// in Processors.
	Defaults ProcessorConfig `yaml:"defaults,omitempty"`
}

// GetProcessorConfig returns the merged configuration (defaults plus any
// identity-specific override) for processorID.
func (f *ProcessorFile) GetProcessorConfig(processorID string) ProcessorConfig {
	result := f.Defaults

	override, ok := f.Processors[processorID]
	if !ok {
		return result
	}

	if override.ThrottleDelay != 0 {
		result.ThrottleDelay = override.ThrottleDelay
	}
	if override.Cookie != "" {
		result.Cookie = override.Cookie
	}
	if len(override.Headers) > 0 {
		if result.Headers == nil {
			result.Headers = make(map[string]string)
		}
		for k, v := range override.Headers {
			result.Headers[k] = v
		}
	}
	if len(override.IgnorePatterns) > 0 {
		result.IgnorePatterns = override.IgnorePatterns
	}
	if len(override.FollowPatterns) > 0 {
		result.FollowPatterns = override.FollowPatterns
	}

	return result
}

// ThrottleDelays flattens f into the map NewPerProcessorThrottler (in
// internal/engine) expects: processor identity to configured delay.
// Identities with a zero ThrottleDelay are omitted so the caller's
// fallback throttler applies to them.
func (f *ProcessorFile) ThrottleDelays() map[string]time.Duration {
	delays := make(map[string]time.Duration)
	for id, cfg := range f.Processors {
		if cfg.ThrottleDelay > 0 {
			delays[id] = cfg.ThrottleDelay
		}
	}
	return delays
}
