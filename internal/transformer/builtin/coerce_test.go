package builtin

import (
	"testing"

	"layoffs/internal/schema"
	"layoffs/pkg/records"
)

func TestCoerceTypes(t *testing.T) {
	in := []records.Record{mk(map[string]any{
		"total_laid_off":        "50",
		"funds_raised_millions": "1200",
		"percentage_laid_off":   "0.25",
	})}
	c := Coerce{
		Ints:   []string{schema.ColTotalLaidOff, schema.ColFundsRaisedMillions},
		Floats: []string{schema.ColPercentageLaidOff},
	}
	got, err := c.Apply(in)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v, ok := got[0][schema.ColTotalLaidOff].(int64); !ok || v != 50 {
		t.Fatalf("total_laid_off = %v (%T), want int64 50", got[0][schema.ColTotalLaidOff], got[0][schema.ColTotalLaidOff])
	}
	if v, ok := got[0][schema.ColFundsRaisedMillions].(int64); !ok || v != 1200 {
		t.Fatalf("funds_raised_millions = %v, want int64 1200", got[0][schema.ColFundsRaisedMillions])
	}
	if v, ok := got[0][schema.ColPercentageLaidOff].(float64); !ok || v != 0.25 {
		t.Fatalf("percentage_laid_off = %v, want 0.25", got[0][schema.ColPercentageLaidOff])
	}
}

func TestCoerceUnparsableBecomesNull(t *testing.T) {
	in := []records.Record{mk(map[string]any{"total_laid_off": "unclear"})}
	c := Coerce{Ints: []string{schema.ColTotalLaidOff}}
	got, err := c.Apply(in)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got[0][schema.ColTotalLaidOff] != nil {
		t.Fatalf("total_laid_off = %v, want nil", got[0][schema.ColTotalLaidOff])
	}
}

func TestCoerceIdempotent(t *testing.T) {
	in := []records.Record{mk(map[string]any{"total_laid_off": "50"})}
	c := Coerce{Ints: []string{schema.ColTotalLaidOff}}
	once, err := c.Apply(in)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	twice, err := c.Apply(once)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v, ok := twice[0][schema.ColTotalLaidOff].(int64); !ok || v != 50 {
		t.Fatalf("second pass changed value: %v", twice[0][schema.ColTotalLaidOff])
	}
}
