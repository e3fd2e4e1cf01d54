// Package builtin contains the reusable transformers that make up the layoffs
// cleaning pipeline: exact de-duplication, field normalization, numeric
// coercion, unsalvageable-row pruning, and group-wise industry imputation.
//
// DeDup collapses records that are field-wise identical across every business
// column, keeping the first occurrence. Because members of a duplicate class
// carry identical values in all keyed fields, which member survives is not
// observable; "first" is simply the stable choice. Output preserves the input
// relative order of survivors, so running DeDup on its own output is a no-op.
//
// Keys: a record's identity is the xxh3 hash of its field values joined with
// an \x1f separator, nil encoded as \x00 so that two rows that are both null
// in a column compare equal (database NULL-equals-NULL semantics for the
// purpose of duplicate detection). Non-string values are stabilized through
// fmt, so DeDup may run before or after coercion.
package builtin

import (
	"fmt"
	"strings"

	"github.com/zeebo/xxh3"

	"layoffs/pkg/records"
)

// DeDup removes exact duplicates over the configured key columns.
type DeDup struct {
	// Keys are the columns forming the identity. For the layoffs pipeline this
	// is the full nine-column business schema.
	Keys []string
}

// Apply returns a new slice containing the first occurrence of each identity
// class, in input order. Records missing every key column (including the
// all-null row) still key deterministically and do not panic.
func (d DeDup) Apply(in []records.Record) ([]records.Record, error) {
	if len(in) == 0 || len(d.Keys) == 0 {
		return in, nil
	}

	seen := make(map[uint64]struct{}, len(in))
	out := make([]records.Record, 0, len(in))
	for _, r := range in {
		k := d.keyOf(r)
		if _, dup := seen[k]; dup {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, r)
	}
	return out, nil
}

// keyOf encodes the keyed fields into a stable byte form and hashes it.
// A field that is absent from the map keys the same as an explicit nil.
func (d DeDup) keyOf(r records.Record) uint64 {
	var b strings.Builder
	for i, k := range d.Keys {
		if i > 0 {
			b.WriteByte('\x1f')
		}
		switch t := r[k].(type) {
		case nil:
			b.WriteByte('\x00')
		case string:
			b.WriteString(t)
		default:
			b.WriteString(fmt.Sprint(t))
		}
	}
	return xxh3.HashString(b.String())
}
