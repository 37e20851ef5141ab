package report

import (
	"fmt"
	"io"
	"strings"

	"crawlkit/internal/model"
)

// SimpleWriter outputs human-readable text summaries of a crawl result.
type SimpleWriter struct {
	baseWriter

	verbose bool
}

// SimpleWriterOption configures a SimpleWriter.
type SimpleWriterOption func(*SimpleWriter)

// WithVerbose enables per-output detail rather than aggregate counts only.
func WithVerbose(verbose bool) SimpleWriterOption {
	return func(w *SimpleWriter) { w.verbose = verbose }
}

// NewSimpleWriter creates a SimpleWriter that outputs to output.
func NewSimpleWriter(output io.Writer, opts ...SimpleWriterOption) *SimpleWriter {
	w := &SimpleWriter{baseWriter: newBaseWriter(output)}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Write implements Writer.
func (w *SimpleWriter) Write(result model.CrawlingResult) (int, error) {
	var sb strings.Builder

	w.writeSummary(&sb, NewSummary(result))

	if w.verbose {
		sb.WriteString(strings.Repeat("-", 70))
		sb.WriteString("\nOUTPUTS\n")
		sb.WriteString(strings.Repeat("-", 70))
		sb.WriteString("\n\n")
		for _, output := range result.Outputs {
			sb.WriteString(fmt.Sprintf("  [%s] %s <- %s\n", output.Source.Name, output.Input, output.StartedBy.Name))
			for _, record := range output.Data {
				for k, v := range record {
					sb.WriteString(fmt.Sprintf("      %s: %s\n", k, v))
				}
			}
		}
	}

	return w.output.Write([]byte(sb.String()))
}

// WriteSummary implements Writer.
func (w *SimpleWriter) WriteSummary(summary *Summary) (int, error) {
	var sb strings.Builder
	w.writeSummary(&sb, summary)
	return w.output.Write([]byte(sb.String()))
}

func (w *SimpleWriter) writeSummary(sb *strings.Builder, summary *Summary) {
	sb.WriteString("\n")
	sb.WriteString(strings.Repeat("=", 70))
	sb.WriteString("\n")
	sb.WriteString("                          CRAWL REPORT\n")
	sb.WriteString(strings.Repeat("=", 70))
	sb.WriteString("\n\n")

	sb.WriteString(fmt.Sprintf("Initial Inputs: %d\n", summary.InitialInputCount))
	sb.WriteString(fmt.Sprintf("Outputs:        %d\n", summary.OutputCount))
	sb.WriteString(fmt.Sprintf("Records:        %d\n", summary.RecordCount))
	sb.WriteString(fmt.Sprintf("Duration:       %dms\n", summary.DurationMs))
	sb.WriteString("\n")

	sb.WriteString(strings.Repeat("-", 70))
	sb.WriteString("\n")
	sb.WriteString("BY SOURCE\n")
	sb.WriteString(strings.Repeat("-", 70))
	sb.WriteString("\n\n")

	if len(summary.BySource) == 0 {
		sb.WriteString("  No outputs produced\n")
	} else {
		for _, sc := range summary.BySource {
			sb.WriteString(fmt.Sprintf("  [+] %-20s %d record(s)\n", sc.Source.Name, sc.Count))
		}
	}
	sb.WriteString("\n")
	sb.WriteString(strings.Repeat("=", 70))
	sb.WriteString("\n")
}
