package builtin

import (
	"layoffs/internal/schema"
	"layoffs/pkg/records"
)

// Impute fills null industry cells from sibling records of the same company.
//
// The source data's self-join pattern is replaced by two passes over one
// snapshot: first build a company → representative industry map, then apply
// it. No pass ever reads a row the same stage already mutated, so results are
// independent of row order.
//
// When siblings disagree, the lexicographically smallest non-blank value wins.
// Any deterministic rule would do; smallest-wins is order-independent and easy
// to verify by eye against the raw data.
type Impute struct {
	// GroupBy keys the sibling lookup; defaults to company.
	GroupBy string
	// Target is the column being filled; defaults to industry.
	Target string
	// Overrides maps group key -> value, applied after sibling imputation to
	// rows still null. Externally supplied data, not pipeline logic.
	Overrides map[string]string
}

// Apply mutates records in place and returns the same slice. Records whose
// company has no sibling with a known industry (and no override) remain null.
func (im Impute) Apply(in []records.Record) ([]records.Record, error) {
	group := im.GroupBy
	if group == "" {
		group = schema.ColCompany
	}
	target := im.Target
	if target == "" {
		target = schema.ColIndustry
	}

	// Pass 1: representative value per group.
	rep := make(map[string]string)
	for _, r := range in {
		key, ok := r[group].(string)
		if !ok || key == "" {
			continue
		}
		v, ok := r[target].(string)
		if !ok || v == "" {
			continue
		}
		if cur, exists := rep[key]; !exists || v < cur {
			rep[key] = v
		}
	}

	// Pass 2: fill nulls from the map, then from overrides.
	for _, r := range in {
		if !records.IsBlank(r[target]) {
			continue
		}
		key, ok := r[group].(string)
		if !ok || key == "" {
			continue
		}
		if v, exists := rep[key]; exists {
			r[target] = v
			continue
		}
		if v, exists := im.Overrides[key]; exists {
			r[target] = v
		}
	}
	return in, nil
}
