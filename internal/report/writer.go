package report

import (
	"io"

	"crawlkit/internal/model"
)

// Writer outputs a CrawlingResult to a configured destination.
type Writer interface {
	// Write outputs the full result. Returns the number of bytes written
	// and any error encountered.
	Write(result model.CrawlingResult) (int, error)

	// WriteSummary outputs only the aggregated Summary, useful for a
	// quick overview without walking every output.
	WriteSummary(summary *Summary) (int, error)
}

// MultiWriter writes to multiple Writers in sequence, stopping at the
// first error encountered.
type MultiWriter struct {
	writers []Writer
}

// NewMultiWriter creates a Writer that writes to all provided Writers.
func NewMultiWriter(writers ...Writer) *MultiWriter {
	return &MultiWriter{writers: writers}
}

// Write implements Writer.
func (m *MultiWriter) Write(result model.CrawlingResult) (int, error) {
	var total int
	for _, w := range m.writers {
		n, err := w.Write(result)
		total += n
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

// WriteSummary implements Writer.
func (m *MultiWriter) WriteSummary(summary *Summary) (int, error) {
	var total int
	for _, w := range m.writers {
		n, err := w.WriteSummary(summary)
		total += n
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

// baseWriter provides the shared output destination for writer types.
type baseWriter struct {
	output io.Writer
}

func newBaseWriter(output io.Writer) baseWriter {
	return baseWriter{output: output}
}
