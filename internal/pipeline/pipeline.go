// Package pipeline wires the cleaning run end-to-end: source → parse → schema
// check → transform chain → report → optional storage load.
//
// Every stage boundary is a snapshot: a stage either completes over the whole
// table or the run aborts with the prior snapshot intact. Storage writes only
// happen after every transform has succeeded, so a failed run never leaves a
// partially cleaned table behind.
package pipeline

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"layoffs/internal/config"
	"layoffs/internal/datasource"
	"layoffs/internal/datasource/file"
	"layoffs/internal/datasource/httpds"
	"layoffs/internal/metrics"
	"layoffs/internal/parser"
	csvparser "layoffs/internal/parser/csv"
	"layoffs/internal/report"
	"layoffs/internal/schema"
	"layoffs/internal/storage"
	"layoffs/internal/transformer"
	"layoffs/internal/transformer/builtin"
	"layoffs/pkg/records"
)

const (
	defaultBatchSize     = 500
	defaultChannelBuffer = 256
)

// Function variables used to introduce test seams. In production these point
// to real implementations; tests override them.
var (
	newRepositoryFn = storage.New

	openSourceFn = openSource
)

// Run executes the configured pipeline and returns the acceptance summary of
// the final snapshot. The summary is valid even for report-only runs
// (storage.kind "none" or empty).
func Run(ctx context.Context, spec config.Pipeline) (report.Summary, error) {
	// 1) Open the source and parse.
	src, err := openSourceFn(spec.Source)
	if err != nil {
		return report.Summary{}, err
	}
	rc, err := src.Open(ctx)
	if err != nil {
		return report.Summary{}, fmt.Errorf("open source: %w", err)
	}
	defer rc.Close()

	p := newParser(spec.Parser)
	start := time.Now()
	rows, header, skipped, err := p.Parse(rc)
	metrics.RecordStage(spec.Job, "parse", err, time.Since(start))
	if err != nil {
		return report.Summary{}, fmt.Errorf("parse: %w", err)
	}
	metrics.RecordRows(spec.Job, "parsed", int64(len(rows)))
	metrics.RecordRows(spec.Job, "skipped", int64(skipped))

	// 2) Contract check before any mutation.
	if err := schema.LayoffContract().CheckHeader(header); err != nil {
		return report.Summary{}, err
	}

	// 3) Transform chain.
	chain := buildChain(spec)
	cleaned, err := chain.Apply(rows)
	if err != nil {
		return report.Summary{}, fmt.Errorf("transform: %w", err)
	}

	// 4) Acceptance summary over the final snapshot.
	sum := report.Build(cleaned)
	sum.Skipped = skipped

	// 5) Optional storage load.
	kind := strings.TrimSpace(spec.Storage.Kind)
	if kind == "" || kind == "none" {
		return sum, nil
	}
	if err := load(ctx, spec, cleaned); err != nil {
		return sum, err
	}
	return sum, nil
}

// openSource builds the datasource for the configured kind.
func openSource(s config.Source) (datasource.Source, error) {
	switch s.Kind {
	case "file":
		return file.NewLocal(s.File.Path), nil
	case "http":
		return httpds.NewRemote(httpds.Config{
			URL:        s.HTTP.URL,
			Timeout:    time.Duration(s.HTTP.TimeoutSeconds) * time.Second,
			MaxRetries: s.HTTP.MaxRetries,
		}), nil
	default:
		return nil, fmt.Errorf("unknown source kind %q", s.Kind)
	}
}

// newParser builds the CSV parser from the pipeline options.
func newParser(p config.Parser) parser.Parser {
	opt := csvparser.Options{
		HasHeader:      p.Options.Bool("has_header", true),
		Comma:          p.Options.Rune("comma", ','),
		ExpectedFields: p.Options.Int("expected_fields", 0),
		HeaderMap:      p.Options.StringMap("header_map"),
		NullLiterals:   p.Options.StringSlice("null_literals"),
		LazyQuotes:     p.Options.Bool("lazy_quotes", false),
	}
	return csvparser.NewParser(opt)
}

// buildChain maps transform specs onto builtin transformers, each wrapped
// with stage timing. Unknown kinds were already rejected by config validation;
// they are skipped here with a log line as a belt-and-braces measure.
func buildChain(spec config.Pipeline) transformer.Chain {
	var chain transformer.Chain
	for _, t := range spec.Transform {
		var impl transformer.Transformer
		switch t.Kind {
		case "dedupe":
			impl = builtin.DeDup{Keys: schema.Columns}
		case "normalize":
			impl = builtin.Normalize{}
		case "coerce":
			impl = builtin.Coerce{
				Ints:   []string{schema.ColTotalLaidOff, schema.ColFundsRaisedMillions},
				Floats: []string{schema.ColPercentageLaidOff},
			}
		case "prune":
			impl = builtin.Prune{
				AnyOf: []string{schema.ColTotalLaidOff, schema.ColPercentageLaidOff},
			}
		case "impute":
			impl = builtin.Impute{Overrides: t.Options.StringMap("overrides")}
		default:
			log.Printf("pipeline: skipping unknown transform %q", t.Kind)
			continue
		}
		chain = append(chain, timed{job: spec.Job, name: t.Kind, next: impl})
	}
	return chain
}

// timed decorates a transformer with stage latency and dropped-row metrics.
type timed struct {
	job  string
	name string
	next transformer.Transformer
}

func (s timed) Apply(in []records.Record) ([]records.Record, error) {
	start := time.Now()
	out, err := s.next.Apply(in)
	metrics.RecordStage(s.job, s.name, err, time.Since(start))
	if err == nil && len(out) < len(in) {
		metrics.RecordRows(s.job, s.name+"_dropped", int64(len(in)-len(out)))
	}
	return out, err
}

// load streams the cleaned snapshot into the configured backend in batches.
// The loader runs on its own goroutine with a bounded channel; a loader error
// cancels the feeder via the errgroup context.
func load(ctx context.Context, spec config.Pipeline, cleaned []records.Record) error {
	repo, err := newRepositoryFn(ctx, storage.Config{
		Kind:    spec.Storage.Kind,
		DSN:     spec.Storage.DB.DSN,
		Table:   spec.Storage.DB.Table,
		Columns: schema.Columns,
	})
	if err != nil {
		return fmt.Errorf("storage: %w", err)
	}
	defer repo.Close()

	if spec.Storage.DB.AutoCreateTable {
		if err := repo.EnsureTable(ctx); err != nil {
			return err
		}
	}

	batchSize := spec.Runtime.BatchSize
	if batchSize <= 0 {
		batchSize = defaultBatchSize
	}
	buffer := spec.Runtime.ChannelBuffer
	if buffer <= 0 {
		buffer = defaultChannelBuffer
	}

	rowCh := make(chan []any, buffer)
	g, gctx := errgroup.WithContext(ctx)

	var total int64
	g.Go(func() error {
		n, err := storage.LoadBatches(gctx, schema.Columns, rowCh, batchSize, repo.CopyFrom)
		total = n
		return err
	})
	g.Go(func() error {
		defer close(rowCh)
		for _, r := range cleaned {
			row := schema.FromRecord(r).Values()
			select {
			case rowCh <- row:
			case <-gctx.Done():
				return gctx.Err()
			}
		}
		return nil
	})

	start := time.Now()
	err = g.Wait()
	metrics.RecordStage(spec.Job, "load", err, time.Since(start))
	metrics.RecordRows(spec.Job, "inserted", total)
	if err != nil {
		return fmt.Errorf("load: %w", err)
	}
	log.Printf("pipeline: loaded %d rows into %s (%s)", total, spec.Storage.DB.Table, spec.Storage.Kind)
	return nil
}
