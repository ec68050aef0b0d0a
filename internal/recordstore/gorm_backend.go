package recordstore

import (
	"context"

	"github.com/Shamanth-8/drones/internal/db/repositories"
	"github.com/Shamanth-8/drones/internal/models/entities"
)

// GormBackend stores tables in record_tables/record_rows (sqlite or postgres).
type GormBackend struct {
	repo   *repositories.RecordRepository
	driver string
}

func NewGormBackend(repo *repositories.RecordRepository, driver string) *GormBackend {
	return &GormBackend{repo: repo, driver: driver}
}

func (b *GormBackend) Name() string { return b.driver }

func (b *GormBackend) Load(ctx context.Context, table string) (entities.Table, error) {
	t, _, err := b.repo.LoadTable(ctx, table)
	return t, err
}

func (b *GormBackend) Save(ctx context.Context, table entities.Table, revision int64) error {
	return b.repo.SaveTable(ctx, table, revision)
}
