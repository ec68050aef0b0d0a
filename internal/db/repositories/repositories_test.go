package repositories

import (
	"context"
	"errors"
	"testing"

	"github.com/jmoiron/sqlx"
	"gorm.io/driver/sqlite"
	gormlib "gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/Shamanth-8/drones/internal/constants"
	"github.com/Shamanth-8/drones/internal/models/entities"
	"github.com/Shamanth-8/drones/internal/models/gorm"
)

func testDB(t *testing.T) *gormlib.DB {
	t.Helper()
	db, err := gormlib.Open(sqlite.Open(":memory:"), &gormlib.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("unwrap test db: %v", err)
	}
	// Every pooled connection to :memory: would be a separate database.
	sqlDB.SetMaxOpenConns(1)
	if err := db.AutoMigrate(&gorm.RecordTable{}, &gorm.RecordRow{}, &gorm.SyncHistory{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func pilotsTable() entities.Table {
	return entities.Table{
		Name:    constants.TablePilots,
		Columns: []string{"pilot_id", "name", "status", "notes"},
		Rows: []entities.Row{
			{"pilot_id": "P001", "name": "Arjun", "status": "Available", "notes": "x"},
			{"pilot_id": "P002", "name": "Neha", "status": "Assigned", "notes": ""},
		},
	}
}

func TestRecordRepository_LoadMissingTable(t *testing.T) {
	repo := NewRecordRepository(testDB(t))

	table, found, err := repo.LoadTable(context.Background(), constants.TableDrones)
	if err != nil {
		t.Fatalf("LoadTable() error: %v", err)
	}
	if found {
		t.Error("Expected table not found")
	}
	if table.Name != constants.TableDrones || len(table.Rows) != 0 {
		t.Errorf("Expected empty drones table, got %+v", table)
	}
}

func TestRecordRepository_SaveAndLoadPreservesOrder(t *testing.T) {
	repo := NewRecordRepository(testDB(t))
	ctx := context.Background()

	if err := repo.SaveTable(ctx, pilotsTable(), 1); err != nil {
		t.Fatalf("SaveTable() error: %v", err)
	}

	got, found, err := repo.LoadTable(ctx, constants.TablePilots)
	if err != nil || !found {
		t.Fatalf("LoadTable() found=%v err=%v", found, err)
	}
	if len(got.Columns) != 4 || got.Columns[3] != "notes" {
		t.Errorf("Expected columns preserved, got %v", got.Columns)
	}
	if len(got.Rows) != 2 || got.Rows[0]["pilot_id"] != "P001" || got.Rows[1]["pilot_id"] != "P002" {
		t.Errorf("Expected rows in source order, got %v", got.Rows)
	}
	if got.Rows[0]["notes"] != "x" {
		t.Errorf("Expected extra column value kept, got %q", got.Rows[0]["notes"])
	}
}

func TestRecordRepository_SaveReplacesRows(t *testing.T) {
	db := testDB(t)
	repo := NewRecordRepository(db)
	ctx := context.Background()

	if err := repo.SaveTable(ctx, pilotsTable(), 1); err != nil {
		t.Fatalf("SaveTable() error: %v", err)
	}
	smaller := pilotsTable()
	smaller.Rows = smaller.Rows[1:]
	if err := repo.SaveTable(ctx, smaller, 2); err != nil {
		t.Fatalf("SaveTable() error: %v", err)
	}

	var count int64
	db.Model(&gorm.RecordRow{}).Where("table_name = ?", constants.TablePilots).Count(&count)
	if count != 1 {
		t.Errorf("Expected 1 stored row after replace, got %d", count)
	}

	var header gorm.RecordTable
	db.First(&header, "name = ?", constants.TablePilots)
	if header.Revision != 2 {
		t.Errorf("Expected revision 2, got %d", header.Revision)
	}
}

func TestRecordStatsRepo_CountRows(t *testing.T) {
	db := testDB(t)
	repo := NewRecordRepository(db)
	ctx := context.Background()
	if err := repo.SaveTable(ctx, pilotsTable(), 1); err != nil {
		t.Fatalf("SaveTable() error: %v", err)
	}

	sqlDB, _ := db.DB()
	stats := NewRecordStatsRepo(sqlx.NewDb(sqlDB, "sqlite3"))
	if err := stats.Ping(ctx); err != nil {
		t.Fatalf("Ping() error: %v", err)
	}
	counts, err := stats.CountRows(ctx)
	if err != nil {
		t.Fatalf("CountRows() error: %v", err)
	}
	if counts[constants.TablePilots] != 2 {
		t.Errorf("Expected 2 pilot rows, got %d", counts[constants.TablePilots])
	}
	if _, ok := counts[constants.TableDrones]; ok {
		t.Error("Expected no drones entry")
	}
}

func TestSyncHistoryRepo(t *testing.T) {
	repo := NewSyncHistoryRepo(testDB(t))
	ctx := context.Background()

	last, err := repo.GetLastSyncTimeForEvent(ctx, constants.TablePilots, constants.SyncEventPull)
	if err != nil || last != nil {
		t.Fatalf("Expected no history, got %v, %v", last, err)
	}

	if err := repo.RecordSync(ctx, constants.TablePilots, constants.SyncEventPull, "airtable", 0, errors.New("boom")); err != nil {
		t.Fatalf("RecordSync() error: %v", err)
	}
	last, _ = repo.GetLastSyncTimeForEvent(ctx, constants.TablePilots, constants.SyncEventPull)
	if last != nil {
		t.Error("Expected failed sync to be ignored")
	}

	if err := repo.RecordSync(ctx, constants.TablePilots, constants.SyncEventPull, "airtable", 5, nil); err != nil {
		t.Fatalf("RecordSync() error: %v", err)
	}
	last, err = repo.GetLastSyncTimeForEvent(ctx, constants.TablePilots, constants.SyncEventPull)
	if err != nil || last == nil {
		t.Fatalf("Expected last sync time, got %v, %v", last, err)
	}
}
