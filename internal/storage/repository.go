// Package storage contains storage-agnostic contracts and utilities for
// persisting the cleaned layoffs table.
//
// Concrete backends (sqlite, postgres, mysql) register themselves with the
// factory in their init functions; callers import layoffs/internal/storage/all
// for the side effect and then stay fully backend-agnostic.
package storage

import (
	"context"
	"fmt"
	"sort"
	"sync"
)

// Repository is the minimal sink interface the pipeline needs.
type Repository interface {
	// EnsureTable creates the destination table if it does not exist.
	EnsureTable(ctx context.Context) error

	// CopyFrom bulk-inserts rows aligned to columns order and returns the
	// number of rows inserted. Each call is atomic: all rows in the batch are
	// committed together or not at all.
	CopyFrom(ctx context.Context, columns []string, rows [][]any) (int64, error)

	// Close releases the underlying connections.
	Close()
}

// Config carries backend-independent settings to a factory.
type Config struct {
	Kind    string   // registered backend name
	DSN     string   // backend-specific connection string
	Table   string   // destination table
	Columns []string // ordered destination columns
}

// Factory constructs a Repository for one backend kind.
type Factory func(ctx context.Context, cfg Config) (Repository, error)

var (
	mu        sync.RWMutex
	factories = map[string]Factory{}
)

// Register installs a backend factory under kind. Backends call this from
// init; a duplicate registration panics to surface wiring mistakes early.
func Register(kind string, f Factory) {
	mu.Lock()
	defer mu.Unlock()
	if _, dup := factories[kind]; dup {
		panic(fmt.Sprintf("storage: duplicate registration for %q", kind))
	}
	factories[kind] = f
}

// New opens a Repository for cfg.Kind.
func New(ctx context.Context, cfg Config) (Repository, error) {
	mu.RLock()
	f, ok := factories[cfg.Kind]
	mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("storage: unknown kind %q (registered: %v)", cfg.Kind, Kinds())
	}
	return f(ctx, cfg)
}

// Kinds returns the registered backend names, sorted.
func Kinds() []string {
	mu.RLock()
	defer mu.RUnlock()
	out := make([]string, 0, len(factories))
	for k := range factories {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
