package emailaddr

import (
	"context"
	"regexp"
	"strings"
	"time"

	"crawlkit/internal/model"
)

const sourceID = "emailaddr.Extractor"

// Source is this processor's stable identity.
var Source = model.Source{Name: "emailaddr", ID: sourceID}

// emailPattern is intentionally permissive rather than RFC 5322-strict:
// false positives are acceptable, missed addresses are not.
var emailPattern = regexp.MustCompile(`[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}`)

// Extractor is an InputProcessor that finds email addresses in text.
type Extractor struct{}

// New returns an Extractor.
func New() *Extractor { return &Extractor{} }

// Source implements processor.InputProcessor.
func (e *Extractor) Source() model.Source { return Source }

// CanProcess implements processor.InputProcessor: accepts any input
// containing at least one email-shaped substring.
func (e *Extractor) CanProcess(_ context.Context, input model.CrawlingInput, _ model.ReadOnlyContext) bool {
	return emailPattern.MatchString(input.RawInput)
}

// Process implements processor.InputProcessor.
func (e *Extractor) Process(_ context.Context, input model.CrawlingInput, _ model.ReadOnlyContext) (model.Output, error) {
	matches := emailPattern.FindAllString(input.RawInput, -1)

	seen := make(map[string]bool, len(matches))
	var fields []model.Field
	for _, match := range matches {
		lower := strings.ToLower(match)
		if seen[lower] {
			continue
		}
		seen[lower] = true
		fields = append(fields, model.F("email", model.Uncrawlable(lower)))
	}

	return model.Output{
		Source:    Source,
		StartedBy: input.Source,
		Input:     input.RawInput,
		Data:      []model.Record{model.NewRecord(fields...)},
		Timestamp: time.Now().UnixMilli(),
	}, nil
}
