// Package recordstore holds the pilots, drones and missions tables in memory
// and writes each whole table back to a persistence backend on every change.
package recordstore

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/Shamanth-8/drones/internal/constants"
	"github.com/Shamanth-8/drones/internal/logging"
	"github.com/Shamanth-8/drones/internal/metrics"
	"github.com/Shamanth-8/drones/internal/models/entities"
)

// Backend persists whole tables.
type Backend interface {
	Name() string
	// Load returns the stored table; a table never saved is returned empty.
	Load(ctx context.Context, table string) (entities.Table, error)
	Save(ctx context.Context, table entities.Table, revision int64) error
}

// Store is the in-memory source of truth for the three record tables.
type Store struct {
	mu       sync.RWMutex
	writeMu  sync.Mutex // serialises read-modify-write cycles
	tables   map[string]entities.Table
	revision int64
	epoch    string // unique per Store instance

	backend Backend
	metrics *metrics.MetricsRegistry
}

// New creates a store with empty tables. Call Load to read the backend.
func New(backend Backend, reg *metrics.MetricsRegistry) *Store {
	s := &Store{
		tables:  make(map[string]entities.Table, len(constants.AllTables)),
		epoch:   uuid.NewString(),
		backend: backend,
		metrics: reg,
	}
	for _, name := range constants.AllTables {
		s.tables[name] = entities.Table{Name: name}
	}
	return s
}

// NewFromTables builds a store preloaded with tables, for tests and tools.
func NewFromTables(backend Backend, tables ...entities.Table) *Store {
	s := New(backend, nil)
	for _, t := range tables {
		s.tables[t.Name] = t.Clone()
	}
	return s
}

// Load reads every table from the backend. A table that fails to load is
// left empty and its error is returned after the others are attempted.
func (s *Store) Load(ctx context.Context) error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	var firstErr error
	loaded := make(map[string]entities.Table, len(constants.AllTables))

	for _, name := range constants.AllTables {
		t, err := s.backend.Load(ctx, name)
		if err != nil {
			logging.Error("Failed to load table", "table", name, "backend", s.backend.Name(), "error", err)
			if firstErr == nil {
				firstErr = fmt.Errorf("load %s: %w", name, err)
			}
			t = entities.Table{}
		}
		t.Name = name
		loaded[name] = t
	}

	s.mu.Lock()
	s.tables = loaded
	s.revision++
	s.mu.Unlock()

	for name, t := range loaded {
		s.observeRows(name, len(t.Rows))
		logging.Info("Loaded table", "table", name, "rows", len(t.Rows), "backend", s.backend.Name())
	}
	return firstErr
}

// GetTable returns a deep copy of the named table.
func (s *Store) GetTable(name string) (entities.Table, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	t, ok := s.tables[name]
	if !ok {
		return entities.Table{}, fmt.Errorf("unknown table %q", name)
	}
	return t.Clone(), nil
}

// ReplaceTable swaps the in-memory table, then persists it. The in-memory
// copy stays replaced even when persistence fails; the error is returned.
func (s *Store) ReplaceTable(ctx context.Context, table entities.Table) error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()
	return s.replaceLocked(ctx, table)
}

// Update runs a read-modify-write cycle on one table. fn receives a copy;
// returning an error aborts without touching the store. Persistence errors
// are returned after the in-memory swap.
func (s *Store) Update(ctx context.Context, name string, fn func(t *entities.Table) error) error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	t, err := s.GetTable(name)
	if err != nil {
		return err
	}
	if err := fn(&t); err != nil {
		return err
	}
	return s.replaceLocked(ctx, t)
}

func (s *Store) replaceLocked(ctx context.Context, table entities.Table) error {
	if !isKnown(table.Name) {
		return fmt.Errorf("unknown table %q", table.Name)
	}

	s.mu.Lock()
	s.tables[table.Name] = table.Clone()
	s.revision++
	rev := s.revision
	s.mu.Unlock()

	s.observeRows(table.Name, len(table.Rows))
	if s.metrics != nil {
		s.metrics.StoreWritesTotal.WithLabelValues(table.Name).Inc()
	}

	if err := s.backend.Save(ctx, table, rev); err != nil {
		logging.Error("Failed to persist table", "table", table.Name, "backend", s.backend.Name(), "error", err)
		if s.metrics != nil {
			s.metrics.StoreWriteFailures.WithLabelValues(table.Name, s.backend.Name()).Inc()
		}
		return &PersistError{Table: table.Name, Err: err}
	}
	return nil
}

// PersistError reports a backend write that failed after the in-memory
// table was already replaced.
type PersistError struct {
	Table string
	Err   error
}

func (e *PersistError) Error() string {
	return fmt.Sprintf("persist %s: %v", e.Table, e.Err)
}

func (e *PersistError) Unwrap() error {
	return e.Err
}

// Revision increases on every load or replace.
func (s *Store) Revision() int64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.revision
}

// Version identifies the current table contents across processes sharing
// a cache: the instance epoch plus the revision. Revision alone restarts
// from zero in every process.
func (s *Store) Version() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return fmt.Sprintf("%s:%d", s.epoch, s.revision)
}

// Counts returns the in-memory row count of every table.
func (s *Store) Counts() map[string]int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make(map[string]int, len(s.tables))
	for name, t := range s.tables {
		out[name] = len(t.Rows)
	}
	return out
}

// BackendName identifies the persistence backend.
func (s *Store) BackendName() string {
	return s.backend.Name()
}

func (s *Store) observeRows(name string, n int) {
	if s.metrics != nil {
		s.metrics.TableRows.WithLabelValues(name).Set(float64(n))
	}
}

func isKnown(name string) bool {
	for _, t := range constants.AllTables {
		if t == name {
			return true
		}
	}
	return false
}
