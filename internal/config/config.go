// Package config defines the canonical, JSON-serializable configuration model
// for the layoffs cleaning pipeline. It is intentionally small, explicit, and
// dependency-free so that pipeline specs can be loaded from disk and passed
// through the program without additional glue code.
//
// Design goals:
//
//  1. Stability: changes to this package should be additive and backwards-
//     compatible whenever possible.
//  2. Clarity: field names in Go mirror the JSON structure used in pipeline
//     files under configs/pipelines/*.json.
//  3. Minimalism: no third-party config libraries; decoding is performed by
//     the standard library, with a light Options helper for typed access.
//
// Example (trimmed):
//
//	{
//	  "job":      "layoffs_clean",
//	  "source":   { "kind": "file", "file": { "path": "data/layoffs.csv" } },
//	  "parser":   { "kind": "csv", "options": { "has_header": true, "null_literals": ["NULL"] } },
//	  "transform":[
//	    { "kind": "dedupe" },
//	    { "kind": "normalize" },
//	    { "kind": "coerce" },
//	    { "kind": "prune" },
//	    { "kind": "impute" }
//	  ],
//	  "storage":  { "kind": "sqlite", "db": { "dsn": "layoffs.db", "table": "layoffs_clean" } }
//	}
package config

import "encoding/json"

// Pipeline describes the full cleaning run in JSON. It is the top-level object
// decoded from a pipeline file.
type Pipeline struct {
	// Job names the run; used for metrics labeling and log lines.
	Job string `json:"job"`

	// Source describes where the raw dataset comes from.
	Source Source `json:"source"`

	// Parser configures how raw bytes are turned into records.
	Parser Parser `json:"parser"`

	// Transform lists the ordered cleaning stages. Each transform has a kind
	// and an options bag whose shape is defined by the implementation.
	Transform []Transform `json:"transform"`

	// Storage describes where cleaned records are written.
	Storage Storage `json:"storage"`

	// Runtime controls batching and buffering for the loader.
	Runtime RuntimeConfig `json:"runtime"`
}

// RuntimeConfig controls loader batching and channel buffer sizes.
type RuntimeConfig struct {
	BatchSize     int `json:"batch_size"`
	ChannelBuffer int `json:"channel_buffer"`
}

// Source identifies the data source.
type Source struct {
	// Kind selects the source implementation: "file" or "http".
	Kind string `json:"kind"`

	// File carries options for the "file" source kind.
	File SourceFile `json:"file"`

	// HTTP carries options for the "http" source kind.
	HTTP SourceHTTP `json:"http"`
}

// SourceFile holds configuration for the "file" source kind.
type SourceFile struct {
	// Path is the local filesystem path to the input CSV.
	Path string `json:"path"`
}

// SourceHTTP holds configuration for the "http" source kind.
type SourceHTTP struct {
	// URL is the dataset download location.
	URL string `json:"url"`

	// TimeoutSeconds bounds each request; 0 uses the client default.
	TimeoutSeconds int `json:"timeout_seconds"`

	// MaxRetries is the number of retry attempts after the initial request.
	MaxRetries int `json:"max_retries"`
}

// Parser selects how to parse the raw source into rows.
type Parser struct {
	// Kind selects the parser implementation. Current value: "csv".
	Kind string `json:"kind"`

	// Options is a free-form map interpreted by the parser implementation.
	// For CSV, typical keys include:
	//   has_header (bool), comma (string), null_literals (array),
	//   expected_fields (int), header_map (object), lazy_quotes (bool)
	Options Options `json:"options"`
}

// Transform defines a single cleaning stage. The sequence of stages forms the
// chain executed by the pipeline.
type Transform struct {
	// Kind selects the transform implementation: "dedupe", "normalize",
	// "coerce", "prune", "impute". Implementations define their own options.
	Kind string `json:"kind"`

	// Options is a free-form map interpreted by the selected transform.
	Options Options `json:"options"`
}

// Storage selects the sink used to persist cleaned records.
type Storage struct {
	// Kind selects the storage backend: "sqlite", "postgres", "mysql", or
	// "none" for a report-only run.
	Kind string `json:"kind"`

	// DB configures the selected backend.
	DB DBConfig `json:"db"`
}

// DBConfig configures a database sink.
type DBConfig struct {
	// DSN is the backend-specific connection string.
	DSN string `json:"dsn"`

	// Table is the destination table name.
	Table string `json:"table"`

	// AutoCreateTable creates the destination table before loading when true.
	AutoCreateTable bool `json:"auto_create_table"`
}

// Options is a free-form configuration bag with typed accessors. JSON numbers
// decode as float64; the accessors hide that.
type Options map[string]any

// String returns the string value for key or def if key is missing or not a
// string.
func (o Options) String(key, def string) string {
	if v, ok := o[key]; ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return def
}

// Bool returns the bool value for key or def if key is missing or not a bool.
func (o Options) Bool(key string, def bool) bool {
	if v, ok := o[key]; ok {
		if b, ok := v.(bool); ok {
			return b
		}
	}
	return def
}

// Int returns the int value for key or def. JSON numbers are decoded as
// float64 by encoding/json, so this method accepts float64 and casts to int.
func (o Options) Int(key string, def int) int {
	if v, ok := o[key]; ok {
		switch n := v.(type) {
		case float64:
			return int(n)
		case int:
			return n
		}
	}
	return def
}

// Rune returns the first rune of a string value for key, or def if key is
// missing or empty. Useful for single-character settings such as a CSV
// delimiter.
func (o Options) Rune(key string, def rune) rune {
	if v, ok := o[key]; ok {
		if s, ok := v.(string); ok && len(s) > 0 {
			return []rune(s)[0]
		}
	}
	return def
}

// StringMap returns a map[string]string for key when the value is an object
// whose values are strings. Non-string values are ignored.
func (o Options) StringMap(key string) map[string]string {
	res := map[string]string{}
	if v, ok := o[key]; ok {
		if m, ok := v.(map[string]any); ok {
			for k, vv := range m {
				if s, ok := vv.(string); ok {
					res[k] = s
				}
			}
		}
	}
	return res
}

// StringSlice returns a []string for key when the value is an array of
// strings (or interface values containing strings). Returns nil otherwise.
func (o Options) StringSlice(key string) []string {
	if v, ok := o[key]; ok {
		switch vv := v.(type) {
		case []any:
			out := make([]string, 0, len(vv))
			for _, x := range vv {
				if s, ok := x.(string); ok {
					out = append(out, s)
				}
			}
			return out
		case []string:
			return vv
		}
	}
	return nil
}

// UnmarshalJSON implements json.Unmarshaler so that a missing or null
// "options" object decodes to a non-nil, empty Options map. This removes the
// need for nil checks at call sites.
func (o *Options) UnmarshalJSON(b []byte) error {
	var tmp map[string]any
	if len(b) == 0 || string(b) == "null" {
		*o = Options{}
		return nil
	}
	if err := json.Unmarshal(b, &tmp); err != nil {
		return err
	}
	*o = Options(tmp)
	return nil
}
