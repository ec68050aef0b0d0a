package gorm

import "time"

// RecordTable stores the header of one record table so column order
// survives a round trip through the database.
type RecordTable struct {
	Name      string    `gorm:"column:name;primaryKey;type:varchar(32)"`
	Columns   string    `gorm:"column:columns;type:text;not null"` // JSON array
	Revision  int64     `gorm:"column:revision;not null;default:0"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

// TableName specifies the table name for GORM
func (RecordTable) TableName() string {
	return "record_tables"
}

// RecordRow is one row of a record table, stored as a JSON object.
type RecordRow struct {
	ID       uint   `gorm:"column:id;primaryKey;autoIncrement"`
	Table    string `gorm:"column:table_name;type:varchar(32);not null;index:idx_record_rows_table_pos,priority:1"`
	Position int    `gorm:"column:position;not null;index:idx_record_rows_table_pos,priority:2"`
	RecordID string `gorm:"column:record_id;type:varchar(64)"`
	Payload  string `gorm:"column:payload;type:text;not null"`
}

// TableName specifies the table name for GORM
func (RecordRow) TableName() string {
	return "record_rows"
}
