package builtin

import "layoffs/pkg/records"

// Prune removes records that are null in every one of the listed columns.
// For the layoffs pipeline these are the two magnitude measures,
// total_laid_off and percentage_laid_off: a layoff event carrying neither has
// no analyzable signal and is unsalvageable.
type Prune struct {
	// AnyOf lists the columns of which at least one must be non-null for a
	// record to survive.
	AnyOf []string
}

// Apply returns a filtered slice reusing the input's backing array, preserving
// input order. With an empty AnyOf list nothing is pruned.
func (p Prune) Apply(in []records.Record) ([]records.Record, error) {
	if len(p.AnyOf) == 0 {
		return in, nil
	}
	out := in[:0]
	for _, rec := range in {
		keep := false
		for _, col := range p.AnyOf {
			if !records.IsBlank(rec[col]) {
				keep = true
				break
			}
		}
		if keep {
			out = append(out, rec)
		}
	}
	return out, nil
}
