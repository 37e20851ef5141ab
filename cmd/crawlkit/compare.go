package main

import (
	"context"
	"encoding/json"
	"fmt"
	"slices"
	"sort"

	"github.com/spf13/cobra"

	"crawlkit/internal/config"
	"crawlkit/internal/model"
	"crawlkit/internal/processor"
	"crawlkit/internal/store/filestore"
	"crawlkit/internal/store/memory"
	"crawlkit/internal/store/sqlstore"
)

// propertyKey identifies one (processor identity, field key) pair
// surfaced by a crawl.
type propertyKey struct {
	sourceID string
	key      string
}

// comparisonResult is the outcome of diffing two CrawlingResults'
// surfaced properties.
type comparisonResult struct {
	ResultIDA string              `json:"resultIdA"`
	ResultIDB string              `json:"resultIdB"`
	OnlyInA   []propertyDiffEntry `json:"onlyInA"`
	OnlyInB   []propertyDiffEntry `json:"onlyInB"`
	Changed   []propertyDiffEntry `json:"changed"`
}

// propertyDiffEntry is one property difference between two results.
type propertyDiffEntry struct {
	SourceID string   `json:"sourceId"`
	Key      string   `json:"key"`
	ValuesA  []string `json:"valuesA,omitempty"`
	ValuesB  []string `json:"valuesB,omitempty"`
}

// NewCompareCmd creates the compare command.
func NewCompareCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "compare <result-id-a> <result-id-b>",
		Short: "Diff two stored crawling results",
		Long: `Compare loads two previously stored CrawlingResults from the configured
store and reports which (source, key) property values appeared in one
result but not the other — useful for spotting drift between two crawls
of the same seeds over time.`,
		Args: cobra.ExactArgs(2),
		RunE: runCompareCmd,
	}

	cmd.Flags().String("store", string(config.StoreMemory),
		"Result store backend: memory, file, or sqlite")
	cmd.Flags().String("store-path", "",
		"Directory (sqlite) or file directory (file) for the result store (default: XDG data directory)")
	cmd.Flags().Bool("json", false, "Output the diff as JSON instead of plain text")

	return cmd
}

func runCompareCmd(cmd *cobra.Command, args []string) error {
	storeKind, err := cmd.Flags().GetString("store")
	if err != nil {
		return err
	}
	storePath, err := cmd.Flags().GetString("store-path")
	if err != nil {
		return err
	}
	asJSON, err := cmd.Flags().GetBool("json")
	if err != nil {
		return err
	}

	resultStore, err := openStoreByKind(config.StoreKind(storeKind), storePath)
	if err != nil {
		return err
	}

	ctx := context.Background()
	idA, idB := args[0], args[1]

	resultA, err := resultStore.GetByID(ctx, idA)
	if err != nil {
		return fmt.Errorf("failed to load result %s: %w", idA, err)
	}
	resultB, err := resultStore.GetByID(ctx, idB)
	if err != nil {
		return fmt.Errorf("failed to load result %s: %w", idB, err)
	}

	diff := compareResults(idA, idB, resultA, resultB)

	if asJSON {
		encoder := json.NewEncoder(cmd.OutOrStdout())
		encoder.SetIndent("", "  ")
		return encoder.Encode(diff)
	}
	printComparisonText(cmd, diff)
	return nil
}

// openStoreByKind is the compare command's store-selection helper,
// mirroring submit.go's openStore but independent of config.Config
// since compare does not run a crawl.
func openStoreByKind(kind config.StoreKind, storePath string) (processor.ResultStore, error) {
	switch kind {
	case config.StoreFile:
		dir := storePath
		if dir == "" {
			dir = config.XDGDataDir()
		}
		return filestore.New(dir)
	case config.StoreSQLite:
		dir := storePath
		if dir == "" {
			dir = config.XDGDataDir()
		}
		return sqlstore.Open(dir, sqlstore.DefaultOptions())
	case config.StoreMemory, "":
		return memory.New(), nil
	default:
		return nil, config.ErrUnknownStoreKind
	}
}

// propertyValues flattens a CrawlingResult's outputs into a map from
// (source id, key) to the set of values seen under that key.
func propertyValues(result model.CrawlingResult) map[propertyKey][]string {
	values := make(map[propertyKey][]string)
	for _, output := range result.Outputs {
		for _, record := range output.Data {
			for key, value := range record {
				pk := propertyKey{sourceID: output.Source.ID, key: key}
				values[pk] = appendUnique(values[pk], value)
			}
		}
	}
	return values
}

func appendUnique(values []string, v string) []string {
	for _, existing := range values {
		if existing == v {
			return values
		}
	}
	return append(values, v)
}

// compareResults diffs the properties surfaced by resultA and resultB.
// A (source id, key) property whose values in one result are a strict
// superset of the other's is reported under OnlyInA/OnlyInB with just the
// extra values; one whose value sets each hold values the other lacks is
// reported under Changed with both full value sets.
func compareResults(idA, idB string, resultA, resultB model.CrawlingResult) comparisonResult {
	valuesA := propertyValues(resultA)
	valuesB := propertyValues(resultB)

	diff := comparisonResult{ResultIDA: idA, ResultIDB: idB}

	keys := make(map[propertyKey]struct{})
	for k := range valuesA {
		keys[k] = struct{}{}
	}
	for k := range valuesB {
		keys[k] = struct{}{}
	}

	ordered := make([]propertyKey, 0, len(keys))
	for k := range keys {
		ordered = append(ordered, k)
	}
	sort.Slice(ordered, func(i, j int) bool {
		if ordered[i].sourceID != ordered[j].sourceID {
			return ordered[i].sourceID < ordered[j].sourceID
		}
		return ordered[i].key < ordered[j].key
	})

	for _, k := range ordered {
		a, inA := valuesA[k]
		b, inB := valuesB[k]
		switch {
		case inA && !inB:
			diff.OnlyInA = append(diff.OnlyInA, propertyDiffEntry{SourceID: k.sourceID, Key: k.key, ValuesA: a})
		case inB && !inA:
			diff.OnlyInB = append(diff.OnlyInB, propertyDiffEntry{SourceID: k.sourceID, Key: k.key, ValuesB: b})
		case !sameValueSet(a, b):
			extraA := slices.DeleteFunc(slices.Clone(a), func(v string) bool { return slices.Contains(b, v) })
			extraB := slices.DeleteFunc(slices.Clone(b), func(v string) bool { return slices.Contains(a, v) })
			switch {
			case len(extraA) == 0:
				diff.OnlyInB = append(diff.OnlyInB, propertyDiffEntry{SourceID: k.sourceID, Key: k.key, ValuesB: extraB})
			case len(extraB) == 0:
				diff.OnlyInA = append(diff.OnlyInA, propertyDiffEntry{SourceID: k.sourceID, Key: k.key, ValuesA: extraA})
			default:
				diff.Changed = append(diff.Changed, propertyDiffEntry{SourceID: k.sourceID, Key: k.key, ValuesA: a, ValuesB: b})
			}
		}
	}

	return diff
}

func sameValueSet(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for _, v := range a {
		found := false
		for _, w := range b {
			if v == w {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

func printComparisonText(cmd *cobra.Command, diff comparisonResult) {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Comparing %s vs %s\n\n", diff.ResultIDA, diff.ResultIDB)

	if len(diff.OnlyInA) == 0 && len(diff.OnlyInB) == 0 && len(diff.Changed) == 0 {
		fmt.Fprintln(out, "No differences found.")
		return
	}

	if len(diff.OnlyInA) > 0 {
		fmt.Fprintf(out, "Only in %s:\n", diff.ResultIDA)
		for _, e := range diff.OnlyInA {
			fmt.Fprintf(out, "  - %s.%s: %v\n", e.SourceID, e.Key, e.ValuesA)
		}
		fmt.Fprintln(out)
	}

	if len(diff.OnlyInB) > 0 {
		fmt.Fprintf(out, "Only in %s:\n", diff.ResultIDB)
		for _, e := range diff.OnlyInB {
			fmt.Fprintf(out, "  + %s.%s: %v\n", e.SourceID, e.Key, e.ValuesB)
		}
		fmt.Fprintln(out)
	}

	if len(diff.Changed) > 0 {
		fmt.Fprintln(out, "Changed:")
		for _, e := range diff.Changed {
			fmt.Fprintf(out, "  ~ %s.%s: %v -> %v\n", e.SourceID, e.Key, e.ValuesA, e.ValuesB)
		}
	}
}
