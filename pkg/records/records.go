// Package records defines the loosely typed row representation shared by the
// parser, transformers, and storage layers. It is intentionally tiny and
// dependency-free so every stage of the pipeline can exchange rows without
// additional glue code.
package records

// Record is one tabular row keyed by canonical column name. Missing values are
// represented as nil; parsers must map their source-level null notation (empty
// cell, "NULL" literal, etc.) onto nil before records enter the transform chain.
type Record map[string]any

// Clone returns a shallow copy of r. Values are shared; stages that replace
// values in place should operate on their own snapshot.
func (r Record) Clone() Record {
	out := make(Record, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}

// String returns the string value stored under field, or "" when the field is
// missing, nil, or not a string.
func (r Record) String(field string) string {
	if s, ok := r[field].(string); ok {
		return s
	}
	return ""
}

// IsBlank reports whether v should be treated as a null cell: nil or an empty
// string. Whitespace-only strings are not blank here; trimming is a transform
// concern, not a representation concern.
func IsBlank(v any) bool {
	if v == nil {
		return true
	}
	s, ok := v.(string)
	return ok && s == ""
}

// CloneAll returns a row-wise copy of in. Used at stage boundaries where one
// snapshot must remain observable while the next is being produced.
func CloneAll(in []Record) []Record {
	out := make([]Record, len(in))
	for i, r := range in {
		out[i] = r.Clone()
	}
	return out
}
