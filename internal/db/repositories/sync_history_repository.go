package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/Shamanth-8/drones/internal/models/gorm"

	gormlib "gorm.io/gorm"
)

// SyncHistoryRepo handles sync history operations
type SyncHistoryRepo struct {
	db *gormlib.DB
}

// NewSyncHistoryRepo creates a new sync history repository
func NewSyncHistoryRepo(db *gormlib.DB) *SyncHistoryRepo {
	return &SyncHistoryRepo{db: db}
}

// RecordSync appends one sync attempt. syncErr may be nil.
func (r *SyncHistoryRepo) RecordSync(ctx context.Context, table, event, provider string, rows int, syncErr error) error {
	now := time.Now()

	entry := gorm.SyncHistory{
		Table:      table,
		Event:      event,
		Provider:   provider,
		Rows:       rows,
		LastSyncAt: &now,
	}
	if syncErr != nil {
		entry.Error = syncErr.Error()
	}

	return r.db.WithContext(ctx).Create(&entry).Error
}

// GetLastSyncTimeForEvent retrieves the most recent successful sync for a table and event
// Used to check if we should run initial sync on app restart
func (r *SyncHistoryRepo) GetLastSyncTimeForEvent(ctx context.Context, table, event string) (*time.Time, error) {
	var entry gorm.SyncHistory

	err := r.db.WithContext(ctx).
		Where("table_name = ? AND event = ? AND (error IS NULL OR error = '')", table, event).
		Order("last_sync_at DESC").
		First(&entry).Error

	if err != nil {
		if errors.Is(err, gormlib.ErrRecordNotFound) {
			return nil, nil // No sync history found
		}
		return nil, err
	}

	return entry.LastSyncAt, nil
}
