package gorm

import "time"

// SyncHistory tracks pushes and pulls against the remote provider
type SyncHistory struct {
	ID         uint       `gorm:"column:id;primaryKey;autoIncrement"`
	Table      string     `gorm:"column:table_name;type:varchar(32);not null"`
	Event      string     `gorm:"column:event;type:varchar(50);not null"`
	Provider   string     `gorm:"column:provider;type:varchar(32)"`
	Rows       int        `gorm:"column:row_count"`
	Error      string     `gorm:"column:error;type:text"`
	CreatedAt  time.Time  `gorm:"column:created_at;autoCreateTime"`
	LastSyncAt *time.Time `gorm:"column:last_sync_at"`
}

// TableName specifies the table name for GORM
func (SyncHistory) TableName() string {
	return "sync_history"
}
