package builtin

import (
	"reflect"
	"testing"

	"layoffs/internal/schema"
	"layoffs/pkg/records"
)

// mk builds a full nine-column record; nil-valued entries stay nil.
func mk(fields map[string]any) records.Record {
	r := records.Record{}
	for _, col := range schema.Columns {
		r[col] = nil
	}
	for k, v := range fields {
		r[k] = v
	}
	return r
}

func TestDeDupKeepsFirstOccurrence(t *testing.T) {
	in := []records.Record{
		mk(map[string]any{"company": "Acme", "industry": "Retail", "total_laid_off": "50"}),
		mk(map[string]any{"company": "Acme", "industry": "Retail", "total_laid_off": "50"}),
		mk(map[string]any{"company": "Beta", "industry": "Media", "total_laid_off": "10"}),
	}
	d := DeDup{Keys: schema.Columns}
	got, err := d.Apply(in)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []records.Record{in[0], in[2]}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %#v want %#v", got, want)
	}
}

func TestDeDupNullEqualsNull(t *testing.T) {
	// Two rows identical except that both are null in industry must collapse.
	in := []records.Record{
		mk(map[string]any{"company": "Acme", "total_laid_off": "50"}),
		mk(map[string]any{"company": "Acme", "total_laid_off": "50"}),
	}
	d := DeDup{Keys: schema.Columns}
	got, err := d.Apply(in)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("got %d records, want 1", len(got))
	}
}

func TestDeDupNullDistinctFromEmptyish(t *testing.T) {
	// A null industry and a populated industry are different records.
	in := []records.Record{
		mk(map[string]any{"company": "Acme", "total_laid_off": "50"}),
		mk(map[string]any{"company": "Acme", "industry": "Retail", "total_laid_off": "50"}),
	}
	d := DeDup{Keys: schema.Columns}
	got, err := d.Apply(in)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d records, want 2", len(got))
	}
}

func TestDeDupAllNullRows(t *testing.T) {
	// All-null rows are duplicates of each other and must not panic.
	in := []records.Record{mk(nil), mk(nil), mk(nil)}
	d := DeDup{Keys: schema.Columns}
	got, err := d.Apply(in)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("got %d records, want 1", len(got))
	}
}

func TestDeDupIdempotent(t *testing.T) {
	in := []records.Record{
		mk(map[string]any{"company": "Acme", "total_laid_off": "50"}),
		mk(map[string]any{"company": "Acme", "total_laid_off": "50"}),
		mk(map[string]any{"company": "Beta", "total_laid_off": "10"}),
	}
	d := DeDup{Keys: schema.Columns}
	once, err := d.Apply(in)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	twice, err := d.Apply(once)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(once, twice) {
		t.Fatalf("second pass changed output: %#v vs %#v", once, twice)
	}
}

func TestDeDupPreservesOrder(t *testing.T) {
	in := []records.Record{
		mk(map[string]any{"company": "C"}),
		mk(map[string]any{"company": "A"}),
		mk(map[string]any{"company": "C"}),
		mk(map[string]any{"company": "B"}),
	}
	d := DeDup{Keys: schema.Columns}
	got, err := d.Apply(in)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var order []string
	for _, r := range got {
		order = append(order, r.String(schema.ColCompany))
	}
	want := []string{"C", "A", "B"}
	if !reflect.DeepEqual(order, want) {
		t.Fatalf("order = %v, want %v", order, want)
	}
}

func TestDeDupNoKeysPassthrough(t *testing.T) {
	in := []records.Record{mk(nil), mk(nil)}
	got, err := DeDup{}.Apply(in)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(got, in) {
		t.Fatalf("expected passthrough without keys")
	}
}
