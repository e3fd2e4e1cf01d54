// Package csv implements a streaming CSV parser for the layoffs dataset. It
// avoids whole-file buffering, canonicalizes headers to the schema's column
// names, and maps source-level null notation onto nil before records enter the
// transform chain.
package csv

import (
	"encoding/csv"
	"fmt"
	"io"
	"log"

	"layoffs/pkg/records"
)

// Options configures the CSV parser behavior. All fields are optional;
// sensible defaults are applied when a field is zero.
type Options struct {
	// HasHeader indicates whether the first row contains column headers.
	HasHeader bool

	// Comma specifies the field delimiter. When zero, ',' is used.
	Comma rune

	// ExpectedFields, when > 0, enforces a fixed field count per record. Rows
	// with a different width are skipped (soft-fail) and counted.
	ExpectedFields int

	// HeaderMap maps source header names (raw or canonicalized) to schema
	// column names, for upstream exports with renamed columns.
	HeaderMap map[string]string

	// NullLiterals lists cell values treated as null in addition to the empty
	// string. The layoffs export writes the literal "NULL" for missing cells.
	NullLiterals []string

	// LazyQuotes relaxes quote handling for real-world exports with stray
	// quotes inside fields.
	LazyQuotes bool
}

// Parser parses CSV input according to Options. It is safe to reuse across
// inputs, but Parser itself is not concurrency-safe.
type Parser struct{ opt Options }

// NewParser constructs a Parser with the provided Options.
func NewParser(opt Options) *Parser { return &Parser{opt: opt} }

// skipLogLimit caps per-row skip logging so a badly damaged file cannot flood
// the log.
const skipLogLimit = 400

// Parse consumes CSV records from r and returns the parsed rows, the
// canonical header, and the number of rows skipped due to parse errors or
// field-count mismatches. Values are kept raw: no trimming, no coercion;
// those are transform concerns.
func (p *Parser) Parse(r io.Reader) ([]records.Record, []string, int, error) {
	cr := csv.NewReader(r)
	if p.opt.Comma != 0 {
		cr.Comma = p.opt.Comma
	}
	if p.opt.LazyQuotes {
		cr.LazyQuotes = true
	}
	cr.FieldsPerRecord = -1 // width enforced below, soft-fail

	nulls := make(map[string]struct{}, len(p.opt.NullLiterals)+1)
	nulls[""] = struct{}{}
	for _, s := range p.opt.NullLiterals {
		nulls[s] = struct{}{}
	}

	var headers []string
	if p.opt.HasHeader {
		h, err := cr.Read()
		if err != nil {
			return nil, nil, 0, fmt.Errorf("read csv header: %w", err)
		}
		headers = canonicalHeaders(h, p.opt.HeaderMap)
	} else if p.opt.ExpectedFields > 0 {
		headers = make([]string, p.opt.ExpectedFields)
		for i := range headers {
			headers[i] = fmt.Sprintf("col_%d", i)
		}
	}

	var out []records.Record
	var skipped int

	for line := 1; ; line++ {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			if skipped < skipLogLimit {
				log.Printf("csv: skipping row %d: %v", line, err)
			}
			skipped++
			continue
		}
		if len(headers) > 0 && len(row) != len(headers) {
			if skipped < skipLogLimit {
				log.Printf("csv: skipping row %d: expected %d fields, got %d", line, len(headers), len(row))
			}
			skipped++
			continue
		}

		rec := make(records.Record, len(row))
		for i, val := range row {
			key := keyFor(i, headers)
			if _, isNull := nulls[val]; isNull {
				rec[key] = nil
			} else {
				rec[key] = val
			}
		}
		out = append(out, rec)
	}
	return out, headers, skipped, nil
}

// keyFor returns the column key for index idx, using headers when available,
// otherwise synthesizing a "col_N" name.
func keyFor(idx int, headers []string) string {
	if idx < len(headers) && headers[idx] != "" {
		return headers[idx]
	}
	return fmt.Sprintf("col_%d", idx)
}
