// Package config provides configuration models and helpers for cleaning
// pipelines.
//
// This file adds a lightweight linter/validator for Pipeline values. It
// performs static checks over a decoded Pipeline and returns a list of issues
// (errors and warnings) that callers can surface in a CLI or tests.
package config

import (
	"fmt"
	"strings"
)

// IssueSeverity represents the severity of a configuration issue.
type IssueSeverity string

const (
	// SeverityError indicates a configuration error that should block execution.
	SeverityError IssueSeverity = "error"
	// SeverityWarning indicates a configuration warning that should be
	// surfaced to users but may not necessarily block execution.
	SeverityWarning IssueSeverity = "warning"
)

// Issue describes a single validation finding for a Pipeline.
//
// Path is a dotted path into the config (e.g. "storage.kind",
// "transform[1].kind"). Message is human-readable.
type Issue struct {
	Severity IssueSeverity
	Path     string
	Message  string
}

// Error implements the error interface so an Issue can be treated as a single
// error in contexts that expect one.
func (i Issue) Error() string {
	return fmt.Sprintf("%s at %s: %s", i.Severity, i.Path, i.Message)
}

// knownTransforms lists the builtin transform kinds the pipeline can build.
var knownTransforms = map[string]struct{}{
	"dedupe":    {},
	"normalize": {},
	"coerce":    {},
	"prune":     {},
	"impute":    {},
}

// knownStorage lists the registered storage kinds plus "none".
var knownStorage = map[string]struct{}{
	"sqlite":   {},
	"postgres": {},
	"mysql":    {},
	"none":     {},
}

// ValidatePipeline performs static validation of a Pipeline.
//
// It does not mutate the pipeline. Instead it returns a slice of Issue values;
// callers decide whether to treat warnings as fatal.
func ValidatePipeline(p Pipeline) []Issue {
	var issues []Issue

	if strings.TrimSpace(p.Job) == "" {
		issues = append(issues, Issue{
			Severity: SeverityError,
			Path:     "job",
			Message:  "job must not be empty; it is used for metrics labeling and identifying runs",
		})
	}
	issues = append(issues, validateSource(p.Source)...)
	issues = append(issues, validateParser(p.Parser)...)
	issues = append(issues, validateTransforms(p.Transform)...)
	issues = append(issues, validateStorage(p.Storage)...)
	issues = append(issues, validateRuntime(p.Runtime)...)
	return issues
}

func validateSource(s Source) []Issue {
	var issues []Issue
	switch strings.TrimSpace(s.Kind) {
	case "":
		issues = append(issues, Issue{SeverityError, "source.kind", "source.kind must not be empty"})
	case "file":
		if strings.TrimSpace(s.File.Path) == "" {
			issues = append(issues, Issue{SeverityError, "source.file.path", "file source requires a path"})
		}
	case "http":
		if strings.TrimSpace(s.HTTP.URL) == "" {
			issues = append(issues, Issue{SeverityError, "source.http.url", "http source requires a url"})
		}
	default:
		// Unknown kinds are warnings for forward compatibility.
		issues = append(issues, Issue{SeverityWarning, "source.kind",
			fmt.Sprintf("unknown source kind %q", s.Kind)})
	}
	return issues
}

func validateParser(p Parser) []Issue {
	var issues []Issue
	switch strings.TrimSpace(p.Kind) {
	case "":
		issues = append(issues, Issue{SeverityError, "parser.kind", "parser.kind must not be empty"})
	case "csv":
	default:
		issues = append(issues, Issue{SeverityWarning, "parser.kind",
			fmt.Sprintf("unknown parser kind %q", p.Kind)})
	}
	return issues
}

func validateTransforms(ts []Transform) []Issue {
	var issues []Issue
	if len(ts) == 0 {
		issues = append(issues, Issue{SeverityWarning, "transform",
			"no transforms configured; input will be copied through unchanged"})
	}
	for i, t := range ts {
		path := fmt.Sprintf("transform[%d].kind", i)
		if strings.TrimSpace(t.Kind) == "" {
			issues = append(issues, Issue{SeverityError, path, "transform kind must not be empty"})
			continue
		}
		if _, ok := knownTransforms[t.Kind]; !ok {
			issues = append(issues, Issue{SeverityError, path,
				fmt.Sprintf("unknown transform kind %q", t.Kind)})
		}
	}
	return issues
}

func validateStorage(s Storage) []Issue {
	var issues []Issue
	kind := strings.TrimSpace(s.Kind)
	if kind == "" {
		issues = append(issues, Issue{SeverityWarning, "storage.kind",
			"storage.kind empty; defaulting to report-only run"})
		return issues
	}
	if _, ok := knownStorage[kind]; !ok {
		issues = append(issues, Issue{SeverityError, "storage.kind",
			fmt.Sprintf("unknown storage kind %q", s.Kind)})
		return issues
	}
	if kind == "none" {
		return issues
	}
	if strings.TrimSpace(s.DB.DSN) == "" {
		issues = append(issues, Issue{SeverityError, "storage.db.dsn",
			fmt.Sprintf("%s storage requires a dsn", kind)})
	}
	if strings.TrimSpace(s.DB.Table) == "" {
		issues = append(issues, Issue{SeverityError, "storage.db.table",
			fmt.Sprintf("%s storage requires a table", kind)})
	}
	return issues
}

func validateRuntime(r RuntimeConfig) []Issue {
	var issues []Issue
	if r.BatchSize < 0 {
		issues = append(issues, Issue{SeverityError, "runtime.batch_size", "batch_size must be >= 0"})
	}
	if r.ChannelBuffer < 0 {
		issues = append(issues, Issue{SeverityError, "runtime.channel_buffer", "channel_buffer must be >= 0"})
	}
	return issues
}
