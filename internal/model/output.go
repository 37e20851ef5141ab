package model

// Output is the result of one successful processor invocation.
//
// StartedBy is the Source of the input that triggered this call (i.e. the
// source attached to the CrawlingInput that was fed in); Source is the
// identity of the processor that produced this Output.
type Output struct {
	Source    Source
	StartedBy Source
	Input     string
	Data      []Record
	Timestamp int64 // epoch ms
}

// StoredOutput is an Output after commit to a CrawlingContext: each
// Record's ValueHolders have been flattened to plain strings because
// crawlability has already been consumed for frontier routing.
//
// JSON tags match the reference file-store shape from the spec:
//
//	{ source:{name,id}, startedBy:{name,id}, input, data:[{k:v,...}], timestamp }
type StoredOutput struct {
	Source    Source         `json:"source"`
	StartedBy Source         `json:"startedBy"`
	Input     string         `json:"input"`
	Data      []StoredRecord `json:"data"`
	Timestamp int64          `json:"timestamp"`
}

// StoredRecord is a Record with crawlability already consumed: a plain
// key-to-string mapping, ready for storage and querying.
type StoredRecord map[string]string

// Flatten converts an Output into the StoredOutput committed to a session's
// context, returning alongside it the values marked crawlable, in record
// and field order, for re-enqueuing.
func (o Output) Flatten() (StoredOutput, []string) {
	stored := StoredOutput{
		Source:    o.Source,
		StartedBy: o.StartedBy,
		Input:     o.Input,
		Data:      make([]StoredRecord, len(o.Data)),
		Timestamp: o.Timestamp,
	}

	var crawlableValues []string
	for i, record := range o.Data {
		flat := make(StoredRecord, len(record))
		for _, field := range record {
			flat[field.Key] = field.Value.Value
			if field.Value.Crawlable {
				crawlableValues = append(crawlableValues, field.Value.Value)
			}
		}
		stored.Data[i] = flat
	}

	return stored, crawlableValues
}
