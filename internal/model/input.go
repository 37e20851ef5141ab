package model

import "strings"

// CrawlingInput is a single raw value entering the frontier, paired with
// the Source that produced it. Seeds carry RootSource.
//
// Invariant: RawInput is never blank; NewCrawlingInput trims surrounding
// whitespace and rejects an empty result.
type CrawlingInput struct {
	Source   Source
	RawInput string
}

// NewCrawlingInput trims rawInput and reports false if nothing remains.
func NewCrawlingInput(source Source, rawInput string) (CrawlingInput, bool) {
	trimmed := strings.TrimSpace(rawInput)
	if trimmed == "" {
		return CrawlingInput{}, false
	}
	return CrawlingInput{Source: source, RawInput: trimmed}, true
}

// ValueHolder carries a single emitted value plus whether the engine may
// re-feed it into the frontier as a new CrawlingInput.
type ValueHolder struct {
	Value     string
	Crawlable bool
}

// Crawlable wraps a value that should be re-fed into the frontier.
func Crawlable(value string) ValueHolder {
	return ValueHolder{Value: value, Crawlable: true}
}

// Uncrawlable wraps a value that is stored but never re-fed.
func Uncrawlable(value string) ValueHolder {
	return ValueHolder{Value: value, Crawlable: false}
}

// Record is an ordered mapping of key to ValueHolder, as produced by a
// processor. Go maps do not preserve insertion order, so Record is a slice
// of key/value pairs rather than a map.
type Record []Field

// Field is one key/value entry in a Record.
type Field struct {
	Key   string
	Value ValueHolder
}

// NewRecord builds a Record from the given fields, in order.
func NewRecord(fields ...Field) Record {
	return Record(fields)
}

// F is a convenience constructor for a Field.
func F(key string, value ValueHolder) Field {
	return Field{Key: key, Value: value}
}
