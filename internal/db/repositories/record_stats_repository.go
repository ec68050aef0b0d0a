package repositories

import (
	"context"

	"github.com/Shamanth-8/drones/internal/constants"

	"github.com/jmoiron/sqlx"
)

type tableCount struct {
	TableName string `db:"table_name"`
	RowCount  int    `db:"row_count"`
}

// RecordStatsRepo runs raw reporting queries over record_rows
type RecordStatsRepo struct {
	db *sqlx.DB
}

func NewRecordStatsRepo(db *sqlx.DB) *RecordStatsRepo {
	return &RecordStatsRepo{db}
}

// CountRows returns persisted row counts keyed by table name
func (r *RecordStatsRepo) CountRows(ctx context.Context) (map[string]int, error) {
	var counts []tableCount
	if err := r.db.SelectContext(ctx, &counts, constants.CountRowsByTable); err != nil {
		return nil, err
	}

	out := make(map[string]int, len(counts))
	for _, c := range counts {
		out[c.TableName] = c.RowCount
	}
	return out, nil
}

// Ping checks the underlying connection
func (r *RecordStatsRepo) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}
