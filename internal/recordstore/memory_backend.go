package recordstore

import (
	"context"
	"sync"

	"github.com/Shamanth-8/drones/internal/models/entities"
)

// MemoryBackend keeps saved tables in memory. SaveErr, when set, is
// returned from every Save so tests can exercise persistence failures.
type MemoryBackend struct {
	mu      sync.Mutex
	tables  map[string]entities.Table
	saves   int
	SaveErr error
}

func NewMemoryBackend(tables ...entities.Table) *MemoryBackend {
	b := &MemoryBackend{tables: make(map[string]entities.Table)}
	for _, t := range tables {
		b.tables[t.Name] = t.Clone()
	}
	return b
}

func (b *MemoryBackend) Name() string { return "memory" }

func (b *MemoryBackend) Load(_ context.Context, table string) (entities.Table, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if t, ok := b.tables[table]; ok {
		return t.Clone(), nil
	}
	return entities.Table{Name: table}, nil
}

func (b *MemoryBackend) Save(_ context.Context, table entities.Table, _ int64) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.SaveErr != nil {
		return b.SaveErr
	}
	b.tables[table.Name] = table.Clone()
	b.saves++
	return nil
}

// Saves counts successful saves.
func (b *MemoryBackend) Saves() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.saves
}
