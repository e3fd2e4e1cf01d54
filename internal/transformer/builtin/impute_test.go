package builtin

import (
	"testing"

	"layoffs/internal/schema"
	"layoffs/pkg/records"
)

func TestImputeFillsFromSibling(t *testing.T) {
	in := []records.Record{
		mk(map[string]any{"company": "Airbnb"}),
		mk(map[string]any{"company": "Airbnb", "industry": "Travel"}),
	}
	got, err := Impute{}.Apply(in)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for i, r := range got {
		if ind := r.String(schema.ColIndustry); ind != "Travel" {
			t.Fatalf("record %d industry = %q, want %q", i, ind, "Travel")
		}
	}
}

func TestImputeTieBreakLexicographic(t *testing.T) {
	// Conflicting siblings: smallest non-blank value wins, regardless of order.
	in := []records.Record{
		mk(map[string]any{"company": "Acme", "industry": "Retail"}),
		mk(map[string]any{"company": "Acme", "industry": "Media"}),
		mk(map[string]any{"company": "Acme"}),
	}
	got, err := Impute{}.Apply(in)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ind := got[2].String(schema.ColIndustry); ind != "Media" {
		t.Fatalf("imputed industry = %q, want %q", ind, "Media")
	}
	// Populated siblings keep their own values.
	if got[0].String(schema.ColIndustry) != "Retail" || got[1].String(schema.ColIndustry) != "Media" {
		t.Fatalf("imputation overwrote non-null values: %#v", got)
	}
}

func TestImputeNoSiblingStaysNull(t *testing.T) {
	in := []records.Record{mk(map[string]any{"company": "Lonely"})}
	got, err := Impute{}.Apply(in)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got[0][schema.ColIndustry] != nil {
		t.Fatalf("industry = %v, want nil", got[0][schema.ColIndustry])
	}
}

func TestImputeOverridesApplyAfterSiblings(t *testing.T) {
	in := []records.Record{
		mk(map[string]any{"company": "Lonely"}),
		mk(map[string]any{"company": "Airbnb"}),
		mk(map[string]any{"company": "Airbnb", "industry": "Travel"}),
	}
	im := Impute{Overrides: map[string]string{
		"Lonely": "Hardware",
		"Airbnb": "ShouldNotWin", // sibling value takes precedence
	}}
	got, err := im.Apply(in)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ind := got[0].String(schema.ColIndustry); ind != "Hardware" {
		t.Fatalf("override industry = %q, want %q", ind, "Hardware")
	}
	if ind := got[1].String(schema.ColIndustry); ind != "Travel" {
		t.Fatalf("sibling industry = %q, want %q", ind, "Travel")
	}
}

func TestImputeMonotonicity(t *testing.T) {
	in := []records.Record{
		mk(map[string]any{"company": "A"}),
		mk(map[string]any{"company": "A", "industry": "Tech"}),
		mk(map[string]any{"company": "B"}),
		mk(map[string]any{"company": "C", "industry": "Food"}),
	}
	before := countNullIndustry(in)
	got, err := Impute{}.Apply(in)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	after := countNullIndustry(got)
	if after > before {
		t.Fatalf("null industries rose from %d to %d", before, after)
	}
}

func countNullIndustry(in []records.Record) int {
	n := 0
	for _, r := range in {
		if records.IsBlank(r[schema.ColIndustry]) {
			n++
		}
	}
	return n
}
