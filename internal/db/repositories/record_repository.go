package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/Shamanth-8/drones/internal/constants"
	"github.com/Shamanth-8/drones/internal/models/entities"
	"github.com/Shamanth-8/drones/internal/models/gorm"

	gormlib "gorm.io/gorm"
)

// RecordRepository persists whole record tables in record_tables/record_rows
type RecordRepository struct {
	db *gormlib.DB
}

// NewRecordRepository creates a new record repository
func NewRecordRepository(db *gormlib.DB) *RecordRepository {
	return &RecordRepository{db: db}
}

// LoadTable returns the stored table. found is false when the table was
// never saved.
func (r *RecordRepository) LoadTable(ctx context.Context, name string) (table entities.Table, found bool, err error) {
	var header gorm.RecordTable
	err = r.db.WithContext(ctx).Where("name = ?", name).First(&header).Error
	if err != nil {
		if errors.Is(err, gormlib.ErrRecordNotFound) {
			return entities.Table{Name: name}, false, nil
		}
		return entities.Table{}, false, err
	}

	table = entities.Table{Name: name}
	if err := json.Unmarshal([]byte(header.Columns), &table.Columns); err != nil {
		return entities.Table{}, true, fmt.Errorf("decode columns of %s: %w", name, err)
	}

	var rows []gorm.RecordRow
	err = r.db.WithContext(ctx).
		Where("table_name = ?", name).
		Order("position ASC").
		Find(&rows).Error
	if err != nil {
		return entities.Table{}, true, err
	}

	table.Rows = make([]entities.Row, 0, len(rows))
	for _, row := range rows {
		var rec entities.Row
		if err := json.Unmarshal([]byte(row.Payload), &rec); err != nil {
			return entities.Table{}, true, fmt.Errorf("decode %s row %d: %w", name, row.Position, err)
		}
		table.Rows = append(table.Rows, rec)
	}
	return table, true, nil
}

// SaveTable replaces every stored row of the table in one transaction
func (r *RecordRepository) SaveTable(ctx context.Context, table entities.Table, revision int64) error {
	cols, err := json.Marshal(table.Columns)
	if err != nil {
		return err
	}

	rows := make([]gorm.RecordRow, 0, len(table.Rows))
	for i, rec := range table.Rows {
		payload, err := json.Marshal(rec)
		if err != nil {
			return fmt.Errorf("encode %s row %d: %w", table.Name, i, err)
		}
		rows = append(rows, gorm.RecordRow{
			Table:    table.Name,
			Position: i,
			RecordID: rec[constants.IDColumns[table.Name]],
			Payload:  string(payload),
		})
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gormlib.DB) error {
		header := gorm.RecordTable{Name: table.Name, Columns: string(cols), Revision: revision}
		if err := tx.Save(&header).Error; err != nil {
			return err
		}
		if err := tx.Where("table_name = ?", table.Name).Delete(&gorm.RecordRow{}).Error; err != nil {
			return err
		}
		if len(rows) == 0 {
			return nil
		}
		return tx.CreateInBatches(rows, 100).Error
	})
}
