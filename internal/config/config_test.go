package config

import (
	"encoding/json"
	"reflect"
	"strings"
	"testing"
)

const sampleJSON = `{
  "job": "layoffs_clean",
  "source": { "kind": "file", "file": { "path": "data/layoffs.csv" } },
  "parser": { "kind": "csv", "options": { "has_header": true, "comma": ";", "null_literals": ["NULL"], "header_map": { "laid_off": "total_laid_off" } } },
  "transform": [
    { "kind": "dedupe" },
    { "kind": "impute", "options": { "overrides": { "Lonely": "Hardware" } } }
  ],
  "storage": { "kind": "sqlite", "db": { "dsn": "file:x.db", "table": "layoffs_clean", "auto_create_table": true } },
  "runtime": { "batch_size": 100, "channel_buffer": 8 }
}`

func TestPipelineDecode(t *testing.T) {
	var p Pipeline
	if err := json.NewDecoder(strings.NewReader(sampleJSON)).Decode(&p); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if p.Job != "layoffs_clean" {
		t.Fatalf("job = %q", p.Job)
	}
	if p.Source.Kind != "file" || p.Source.File.Path != "data/layoffs.csv" {
		t.Fatalf("source = %+v", p.Source)
	}
	if got := p.Parser.Options.Bool("has_header", false); !got {
		t.Fatalf("has_header = false, want true")
	}
	if got := p.Parser.Options.Rune("comma", ','); got != ';' {
		t.Fatalf("comma = %q, want ';'", got)
	}
	if got := p.Parser.Options.StringSlice("null_literals"); !reflect.DeepEqual(got, []string{"NULL"}) {
		t.Fatalf("null_literals = %v", got)
	}
	if got := p.Parser.Options.StringMap("header_map"); got["laid_off"] != "total_laid_off" {
		t.Fatalf("header_map = %v", got)
	}
	if got := p.Transform[1].Options.StringMap("overrides"); got["Lonely"] != "Hardware" {
		t.Fatalf("overrides = %v", got)
	}
	if p.Runtime.BatchSize != 100 || p.Runtime.ChannelBuffer != 8 {
		t.Fatalf("runtime = %+v", p.Runtime)
	}
	if !p.Storage.DB.AutoCreateTable {
		t.Fatalf("auto_create_table = false")
	}
}

func TestOptionsMissingDecodesEmpty(t *testing.T) {
	var p Pipeline
	if err := json.Unmarshal([]byte(`{"parser":{"kind":"csv"}}`), &p); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if p.Parser.Options == nil {
		t.Fatalf("options is nil, want empty map")
	}
	if got := p.Parser.Options.Int("expected_fields", 9); got != 9 {
		t.Fatalf("default int = %d, want 9", got)
	}
	if got := p.Parser.Options.String("comma", ","); got != "," {
		t.Fatalf("default string = %q", got)
	}
}
