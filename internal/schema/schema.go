// Package schema defines the layoffs row model: the canonical column set, the
// strict date layout, and the input contract checked before any mutation runs.
package schema

import (
	"fmt"
	"strings"
	"time"

	"layoffs/pkg/records"
)

// Canonical column names. Every stage addresses fields by these keys; the CSV
// parser maps source headers onto them via the pipeline's header_map.
const (
	ColCompany             = "company"
	ColLocation            = "location"
	ColIndustry            = "industry"
	ColTotalLaidOff        = "total_laid_off"
	ColPercentageLaidOff   = "percentage_laid_off"
	ColDate                = "date"
	ColStage               = "stage"
	ColCountry             = "country"
	ColFundsRaisedMillions = "funds_raised_millions"
)

// Columns lists the nine business columns in storage order.
var Columns = []string{
	ColCompany,
	ColLocation,
	ColIndustry,
	ColTotalLaidOff,
	ColPercentageLaidOff,
	ColDate,
	ColStage,
	ColCountry,
	ColFundsRaisedMillions,
}

// DateLayout is the only accepted textual date form, MM/DD/YYYY. Anything else
// is a data-quality error, not a candidate for lenient multi-format parsing.
const DateLayout = "01/02/2006"

// Layoff is the typed view of one cleaned record, used by the storage and
// report layers. Nullable fields are pointers.
type Layoff struct {
	Company             string     `db:"company"`
	Location            *string    `db:"location"`
	Industry            *string    `db:"industry"`
	TotalLaidOff        *int64     `db:"total_laid_off"`
	PercentageLaidOff   *float64   `db:"percentage_laid_off"`
	Date                *time.Time `db:"date"`
	Stage               *string    `db:"stage"`
	Country             *string    `db:"country"`
	FundsRaisedMillions *int64     `db:"funds_raised_millions"`
}

// FromRecord builds the typed view from a cleaned record. It assumes the
// transform chain already ran: date is time.Time, counts are int64, percentage
// is float64. Values of unexpected dynamic type are treated as null rather
// than guessed at.
func FromRecord(r records.Record) Layoff {
	l := Layoff{Company: r.String(ColCompany)}
	if s, ok := r[ColLocation].(string); ok {
		l.Location = &s
	}
	if s, ok := r[ColIndustry].(string); ok {
		l.Industry = &s
	}
	if n, ok := r[ColTotalLaidOff].(int64); ok {
		l.TotalLaidOff = &n
	}
	if f, ok := r[ColPercentageLaidOff].(float64); ok {
		l.PercentageLaidOff = &f
	}
	if t, ok := r[ColDate].(time.Time); ok {
		l.Date = &t
	}
	if s, ok := r[ColStage].(string); ok {
		l.Stage = &s
	}
	if s, ok := r[ColCountry].(string); ok {
		l.Country = &s
	}
	if n, ok := r[ColFundsRaisedMillions].(int64); ok {
		l.FundsRaisedMillions = &n
	}
	return l
}

// Values returns the record's values aligned to Columns, ready for a batched
// insert. Nil pointers become SQL NULLs.
func (l Layoff) Values() []any {
	row := make([]any, len(Columns))
	row[0] = l.Company
	row[1] = deref(l.Location)
	row[2] = deref(l.Industry)
	row[3] = deref(l.TotalLaidOff)
	row[4] = deref(l.PercentageLaidOff)
	row[5] = deref(l.Date)
	row[6] = deref(l.Stage)
	row[7] = deref(l.Country)
	row[8] = deref(l.FundsRaisedMillions)
	return row
}

func deref[T any](p *T) any {
	if p == nil {
		return nil
	}
	return *p
}

// Field describes one contract column.
type Field struct {
	Name     string `json:"name"`
	Type     string `json:"type"` // "text","integer","real","date"
	Required bool   `json:"required"`
}

// Contract is the input schema the pipeline expects to find in the source
// header. It is checked once, before any transform mutates data.
type Contract struct {
	Name   string  `json:"name"`
	Fields []Field `json:"fields"`
}

// LayoffContract returns the contract for the layoffs dataset.
func LayoffContract() Contract {
	return Contract{
		Name: "layoffs",
		Fields: []Field{
			{Name: ColCompany, Type: "text", Required: true},
			{Name: ColLocation, Type: "text", Required: true},
			{Name: ColIndustry, Type: "text", Required: true},
			{Name: ColTotalLaidOff, Type: "integer", Required: true},
			{Name: ColPercentageLaidOff, Type: "real", Required: true},
			{Name: ColDate, Type: "date", Required: true},
			{Name: ColStage, Type: "text", Required: true},
			{Name: ColCountry, Type: "text", Required: true},
			{Name: ColFundsRaisedMillions, Type: "integer", Required: true},
		},
	}
}

// MismatchError reports required contract columns absent from the input
// header. It is fatal: the run aborts before mutation begins.
type MismatchError struct {
	Contract string
	Missing  []string
}

func (e *MismatchError) Error() string {
	return fmt.Sprintf("schema %q: input missing required columns: %s",
		e.Contract, strings.Join(e.Missing, ", "))
}

// CheckHeader verifies that every required contract field appears in the
// (already canonicalized) header. Extra columns are tolerated; they are simply
// not carried through the pipeline.
func (c Contract) CheckHeader(header []string) error {
	present := make(map[string]struct{}, len(header))
	for _, h := range header {
		present[h] = struct{}{}
	}
	var missing []string
	for _, f := range c.Fields {
		if !f.Required {
			continue
		}
		if _, ok := present[f.Name]; !ok {
			missing = append(missing, f.Name)
		}
	}
	if len(missing) > 0 {
		return &MismatchError{Contract: c.Name, Missing: missing}
	}
	return nil
}
