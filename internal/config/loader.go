package config

import (
	"errors"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// DefaultConfigFile is the default per-processor configuration file name.
const DefaultConfigFile = ".crawlkit.yaml"

// ErrConfigNotFound is returned when the configuration file does not
// exist.
var ErrConfigNotFound = errors.New("configuration file not found")

// LoadProcessorFile loads per-processor configuration from a YAML file.
// If the file does not exist, it returns ErrConfigNotFound; callers
// should treat that as "use defaults" unless the path was explicitly
// requested by the user.
func LoadProcessorFile(path string) (*ProcessorFile, error) {
	data, err := os.ReadFile(path) //nolint:gosec // user-provided config path is intentional
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrConfigNotFound
		}
		return nil, err
	}

	var pf ProcessorFile
	if err := yaml.Unmarshal(data, &pf); err != nil {
		return nil, err
	}

	if pf.Processors == nil {
		pf.Processors = make(map[string]ProcessorConfig)
	}

	return &pf, nil
}

// FindConfigFile searches for the configuration file in the following
// order: an explicit configPath, then .crawlkit.yaml in the current
// directory, then in the user's home directory. Returns the empty string
// if none is found.
func FindConfigFile(configPath string) string {
	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			return configPath
		}
		return ""
	}

	if cwd, err := os.Getwd(); err == nil {
		candidate := filepath.Join(cwd, DefaultConfigFile)
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
	}

	if home, err := os.UserHomeDir(); err == nil {
		candidate := filepath.Join(home, DefaultConfigFile)
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
	}

	return ""
}
