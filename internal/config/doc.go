// Package config provides configuration structures for crawlkit: the
// dispatcher/session defaults in Config, per-processor-identity
// overrides loaded from YAML in ProcessorFile, the lookup of that file in
// the current and home directories, and the XDG-based default location
// for the file and SQLite result stores.
package config
