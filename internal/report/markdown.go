package report

import (
	"fmt"
	"io"
	"strconv"

	"github.com/nao1215/markdown"

	"crawlkit/internal/model"
)

// MarkdownWriter outputs reports in GitHub-flavored Markdown.
type MarkdownWriter struct {
	baseWriter
}

// NewMarkdownWriter creates a MarkdownWriter that outputs to output.
func NewMarkdownWriter(output io.Writer) *MarkdownWriter {
	return &MarkdownWriter{baseWriter: newBaseWriter(output)}
}

// Write implements Writer.
func (w *MarkdownWriter) Write(result model.CrawlingResult) (int, error) {
	md := markdown.NewMarkdown(w.output)

	summary := NewSummary(result)
	w.writeSummary(md, summary)
	w.writeOutputs(md, result)

	return len(md.String()), md.Build()
}

// WriteSummary implements Writer.
func (w *MarkdownWriter) WriteSummary(summary *Summary) (int, error) {
	md := markdown.NewMarkdown(w.output)
	w.writeSummary(md, summary)
	return len(md.String()), md.Build()
}

func (w *MarkdownWriter) writeSummary(md *markdown.Markdown, summary *Summary) {
	md.H1("Crawl Report")
	md.PlainText("")

	md.Table(markdown.TableSet{
		Header: []string{"Metric", "Value"},
		Rows: [][]string{
			{"Initial Inputs", strconv.Itoa(summary.InitialInputCount)},
			{"Outputs", strconv.Itoa(summary.OutputCount)},
			{"Records", strconv.Itoa(summary.RecordCount)},
			{"Duration (ms)", strconv.FormatInt(summary.DurationMs, 10)},
		},
	})
	md.PlainText("")

	md.H2("By Source")
	md.PlainText("")

	if len(summary.BySource) == 0 {
		md.PlainText("No outputs produced.")
		md.PlainText("")
		return
	}

	rows := make([][]string, len(summary.BySource))
	for i, sc := range summary.BySource {
		rows[i] = []string{sc.Source.Name, strconv.Itoa(sc.Count)}
	}
	md.Table(markdown.TableSet{
		Header: []string{"Source", "Records"},
		Rows:   rows,
	})
	md.PlainText("")
}

func (w *MarkdownWriter) writeOutputs(md *markdown.Markdown, result model.CrawlingResult) {
	md.H2("Outputs")
	md.PlainText("")

	if len(result.Outputs) == 0 {
		md.PlainText("No outputs produced.")
		md.PlainText("")
		return
	}

	for _, output := range result.Outputs {
		md.H3(fmt.Sprintf("%s — %s", output.Source.Name, output.Input))
		md.PlainText("")
		for _, record := range output.Data {
			for k, v := range record {
				md.BulletList(fmt.Sprintf("%s: %s", k, v))
			}
		}
		md.PlainText("")
	}
}
