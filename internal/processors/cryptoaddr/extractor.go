package cryptoaddr

import (
	"context"
	"regexp"
	"time"

	"crawlkit/internal/model"
)

const sourceID = "cryptoaddr.Extractor"

// Source is this processor's stable identity.
var Source = model.Source{Name: "cryptoaddr", ID: sourceID}

// pattern pairs a cryptocurrency type label with its detection regex.
type pattern struct {
	currency string
	re       *regexp.Regexp
}

// patterns is ordered so extraction is deterministic across runs even
// though the underlying addresses are deduped by value, not by type.
var patterns = []pattern{
	{"bitcoin_legacy", regexp.MustCompile(`\b[13][a-km-zA-HJ-NP-Z1-9]{25,34}\b`)},
	{"bitcoin_bech32", regexp.MustCompile(`\bbc1[a-z0-9]{39,59}\b`)},
	{"ethereum", regexp.MustCompile(`\b0x[a-fA-F0-9]{40}\b`)},
	{"monero", regexp.MustCompile(`\b[48][0-9AB][1-9A-HJ-NP-Za-km-z]{93}\b`)},
	{"litecoin_legacy", regexp.MustCompile(`\b[LM3][a-km-zA-HJ-NP-Z1-9]{26,33}\b`)},
	{"litecoin_bech32", regexp.MustCompile(`\bltc1[a-z0-9]{39,59}\b`)},
	{"bitcoin_cash", regexp.MustCompile(`\bbitcoincash:[qp][a-z0-9]{41}\b`)},
	{"dash", regexp.MustCompile(`\bX[1-9A-HJ-NP-Za-km-z]{33}\b`)},
	{"zcash_transparent", regexp.MustCompile(`\bt1[a-zA-Z0-9]{33}\b`)},
	{"zcash_shielded", regexp.MustCompile(`\bzs[a-z0-9]{76}\b`)},
	{"dogecoin", regexp.MustCompile(`\bD[5-9A-HJ-NP-U][1-9A-HJ-NP-Za-km-z]{32}\b`)},
}

// Extractor is an InputProcessor that finds cryptocurrency addresses in
// text, tagging each with its currency type.
type Extractor struct{}

// New returns an Extractor.
func New() *Extractor { return &Extractor{} }

// Source implements processor.InputProcessor.
func (e *Extractor) Source() model.Source { return Source }

// CanProcess implements processor.InputProcessor: accepts any input
// containing at least one address-shaped substring.
func (e *Extractor) CanProcess(_ context.Context, input model.CrawlingInput, _ model.ReadOnlyContext) bool {
	for _, p := range patterns {
		if p.re.MatchString(input.RawInput) {
			return true
		}
	}
	return false
}

// Process implements processor.InputProcessor.
func (e *Extractor) Process(_ context.Context, input model.CrawlingInput, _ model.ReadOnlyContext) (model.Output, error) {
	seen := make(map[string]bool)
	var records []model.Record

	for _, p := range patterns {
		for _, address := range p.re.FindAllString(input.RawInput, -1) {
			if seen[address] {
				continue
			}
			seen[address] = true
			records = append(records, model.NewRecord(
				model.F("address", model.Uncrawlable(address)),
				model.F("currency", model.Uncrawlable(p.currency)),
			))
		}
	}

	return model.Output{
		Source:    Source,
		StartedBy: input.Source,
		Input:     input.RawInput,
		Data:      records,
		Timestamp: time.Now().UnixMilli(),
	}, nil
}
