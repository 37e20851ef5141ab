// Package report renders a model.CrawlingResult as human-readable text,
// Markdown, or JSON. Writers never mutate the result; Summary aggregates
// its Outputs into counts suitable for a quick-glance view.
package report
