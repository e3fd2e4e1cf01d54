// Package report computes the post-cleaning acceptance summary: record count,
// per-column null counts, distinct counts for the categorical columns, and the
// date range. It is read-only and runs in a single pass with O(distinct
// values) auxiliary memory.
package report

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"layoffs/internal/schema"
	"layoffs/pkg/records"
)

// Summary is the acceptance snapshot of a cleaned table.
type Summary struct {
	Records    int
	Skipped    int // malformed source rows the parser dropped
	NullCounts map[string]int

	DistinctCompanies  int
	DistinctIndustries int
	DistinctCountries  int
	DistinctStages     int

	MinDate time.Time
	MaxDate time.Time
	// HasDates is false when every date cell is null; Min/MaxDate are zero then.
	HasDates bool
}

// Build computes the summary for the final snapshot.
func Build(in []records.Record) Summary {
	s := Summary{
		Records:    len(in),
		NullCounts: make(map[string]int, len(schema.Columns)),
	}

	companies := map[string]struct{}{}
	industries := map[string]struct{}{}
	countries := map[string]struct{}{}
	stages := map[string]struct{}{}

	for _, r := range in {
		for _, col := range schema.Columns {
			if records.IsBlank(r[col]) {
				s.NullCounts[col]++
			}
		}
		if v, ok := r[schema.ColCompany].(string); ok && v != "" {
			companies[v] = struct{}{}
		}
		if v, ok := r[schema.ColIndustry].(string); ok && v != "" {
			industries[v] = struct{}{}
		}
		if v, ok := r[schema.ColCountry].(string); ok && v != "" {
			countries[v] = struct{}{}
		}
		if v, ok := r[schema.ColStage].(string); ok && v != "" {
			stages[v] = struct{}{}
		}
		if t, ok := r[schema.ColDate].(time.Time); ok {
			if !s.HasDates {
				s.MinDate, s.MaxDate = t, t
				s.HasDates = true
				continue
			}
			if t.Before(s.MinDate) {
				s.MinDate = t
			}
			if t.After(s.MaxDate) {
				s.MaxDate = t
			}
		}
	}

	s.DistinctCompanies = len(companies)
	s.DistinctIndustries = len(industries)
	s.DistinctCountries = len(countries)
	s.DistinctStages = len(stages)
	return s
}

// String renders the summary as a human-readable block for the CLI.
func (s Summary) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "records:            %s\n", humanize.Comma(int64(s.Records)))
	if s.Skipped > 0 {
		fmt.Fprintf(&b, "skipped rows:       %s\n", humanize.Comma(int64(s.Skipped)))
	}
	fmt.Fprintf(&b, "distinct companies: %s\n", humanize.Comma(int64(s.DistinctCompanies)))
	fmt.Fprintf(&b, "distinct industries:%s\n", humanize.Comma(int64(s.DistinctIndustries)))
	fmt.Fprintf(&b, "distinct countries: %s\n", humanize.Comma(int64(s.DistinctCountries)))
	fmt.Fprintf(&b, "distinct stages:    %s\n", humanize.Comma(int64(s.DistinctStages)))
	if s.HasDates {
		fmt.Fprintf(&b, "date range:         %s .. %s\n",
			s.MinDate.Format("2006-01-02"), s.MaxDate.Format("2006-01-02"))
	}

	cols := make([]string, 0, len(s.NullCounts))
	for col, n := range s.NullCounts {
		if n > 0 {
			cols = append(cols, col)
		}
	}
	sort.Strings(cols)
	for _, col := range cols {
		fmt.Fprintf(&b, "nulls in %-21s %s\n", col+":", humanize.Comma(int64(s.NullCounts[col])))
	}
	return b.String()
}
