package builtin

import (
	"strconv"

	"layoffs/pkg/records"
)

// Coerce converts string cells into typed values so the typed row view and
// the storage backends see real integers and decimals rather than text.
//
// Tokens that fail to parse become null rather than aborting the run; a count
// like "unclear" carries no more analyzable signal than an empty cell. Date
// typing is deliberately not handled here: dates are strict and abort on
// malformed input (see Normalize).
type Coerce struct {
	Ints   []string // columns parsed as int64
	Floats []string // columns parsed as float64
}

// Apply mutates records in place and returns the same slice. Already typed
// values pass through untouched, which keeps the stage idempotent.
func (c Coerce) Apply(in []records.Record) ([]records.Record, error) {
	for _, r := range in {
		for _, col := range c.Ints {
			s, ok := r[col].(string)
			if !ok {
				continue
			}
			if n, err := strconv.ParseInt(s, 10, 64); err == nil {
				r[col] = n
			} else {
				r[col] = nil
			}
		}
		for _, col := range c.Floats {
			s, ok := r[col].(string)
			if !ok {
				continue
			}
			if f, err := strconv.ParseFloat(s, 64); err == nil {
				r[col] = f
			} else {
				r[col] = nil
			}
		}
	}
	return in, nil
}
