package builtin

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"layoffs/internal/schema"
	"layoffs/pkg/records"
)

// MalformedDateError reports a date cell that does not match the strict
// MM/DD/YYYY layout. It aborts the run instead of being defaulted away:
// silently misreading a date would corrupt every date-ordered analysis
// downstream.
type MalformedDateError struct {
	Row    int    // 0-based position in the stage input
	Column string
	Value  string
	Err    error
}

func (e *MalformedDateError) Error() string {
	return fmt.Sprintf("row %d: column %q: malformed date %q (want MM/DD/YYYY)",
		e.Row, e.Column, e.Value)
}

func (e *MalformedDateError) Unwrap() error { return e.Err }

// IsMalformedDate reports whether err is (or wraps) a MalformedDateError.
func IsMalformedDate(err error) bool {
	var mde *MalformedDateError
	return errors.As(err, &mde)
}

// Normalize applies the per-field canonicalization rules, in a fixed order,
// replacing values in place. No records are added or removed. The rules are
// idempotent: re-running Normalize on its own output changes nothing.
//
//   - company: leading/trailing whitespace stripped, interior untouched
//   - industry: any value whose trimmed form starts with "Crypto" collapses to
//     the canonical "Crypto". This is prefix matching, not an enumeration of
//     known variants, so future spellings still normalize.
//   - country: values starting with "United States" lose all trailing periods
//   - date: MM/DD/YYYY text becomes a time.Time; anything else is a
//     MalformedDateError
type Normalize struct {
	// DateLayout overrides schema.DateLayout when non-empty. Tests use it; the
	// pipeline leaves it empty.
	DateLayout string
}

// Apply mutates records in place and returns the same slice. On a date parse
// failure nothing later in the slice is touched and the error carries the
// offending row, column, and raw value.
func (n Normalize) Apply(in []records.Record) ([]records.Record, error) {
	layout := n.DateLayout
	if layout == "" {
		layout = schema.DateLayout
	}

	for i, r := range in {
		if s, ok := r[schema.ColCompany].(string); ok {
			r[schema.ColCompany] = strings.TrimSpace(s)
		}
		if s, ok := r[schema.ColIndustry].(string); ok {
			if strings.HasPrefix(strings.TrimSpace(s), "Crypto") {
				r[schema.ColIndustry] = "Crypto"
			}
		}
		if s, ok := r[schema.ColCountry].(string); ok {
			if strings.HasPrefix(s, "United States") {
				r[schema.ColCountry] = strings.TrimRight(s, ".")
			}
		}
		switch v := r[schema.ColDate].(type) {
		case nil, time.Time:
			// already missing or already typed
		case string:
			t, err := time.Parse(layout, v)
			if err != nil {
				return nil, &MalformedDateError{Row: i, Column: schema.ColDate, Value: v, Err: err}
			}
			r[schema.ColDate] = t
		default:
			return nil, &MalformedDateError{
				Row: i, Column: schema.ColDate, Value: fmt.Sprint(v),
				Err: fmt.Errorf("unexpected type %T", v),
			}
		}
	}
	return in, nil
}
