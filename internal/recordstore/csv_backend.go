package recordstore

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/Shamanth-8/drones/internal/logging"
	"github.com/Shamanth-8/drones/internal/models/entities"
	"github.com/Shamanth-8/drones/internal/providers"
)

// CSVBackend keeps one CSV file per table.
type CSVBackend struct {
	files map[string]string
}

func NewCSVBackend(files map[string]string) *CSVBackend {
	return &CSVBackend{files: files}
}

func (b *CSVBackend) Name() string { return "csv" }

func (b *CSVBackend) path(table string) (string, error) {
	p, ok := b.files[table]
	if !ok || p == "" {
		return "", fmt.Errorf("no file configured for table %s", table)
	}
	return p, nil
}

// Load reads the table file. A missing file yields an empty table.
func (b *CSVBackend) Load(_ context.Context, table string) (entities.Table, error) {
	p, err := b.path(table)
	if err != nil {
		return entities.Table{}, err
	}

	f, err := os.Open(p)
	if errors.Is(err, os.ErrNotExist) {
		logging.Warn("Table file not found, starting empty", "table", table, "path", p)
		return entities.Table{Name: table}, nil
	}
	if err != nil {
		return entities.Table{}, err
	}
	defer f.Close()

	return providers.ReadCSVTable(table, f)
}

// Save rewrites the file through a temp file and rename.
func (b *CSVBackend) Save(_ context.Context, table entities.Table, _ int64) error {
	p, err := b.path(table.Name)
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	if err := providers.WriteCSVTable(&buf, table); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(filepath.Dir(p), filepath.Base(p)+".*.tmp")
	if err != nil {
		return err
	}
	if _, err := tmp.Write(buf.Bytes()); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	return os.Rename(tmp.Name(), p)
}
