package db

import (
	"context"
	"testing"
	"time"
)

func TestSQLiteMigrateAndWrap(t *testing.T) {
	gdb, err := InitSQLiteORM(":memory:")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	sqlDB, _ := gdb.DB()
	sqlDB.SetMaxOpenConns(1)
	defer sqlDB.Close()

	if err := Migrate(gdb); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	for _, table := range []string{"record_tables", "record_rows", "sync_history"} {
		if !gdb.Migrator().HasTable(table) {
			t.Errorf("Expected table %s after migrate", table)
		}
	}

	sqlxDB, err := WrapGorm(gdb, "sqlite3")
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if err := sqlxDB.PingContext(context.Background()); err != nil {
		t.Errorf("Expected shared pool to answer ping, got %v", err)
	}
}

func TestWaitForPostgres_GivesUp(t *testing.T) {
	err := WaitForPostgres("postgres://nobody:x@127.0.0.1:1/none?sslmode=disable&connect_timeout=1", 2, time.Millisecond)
	if err == nil {
		t.Error("Expected error for unreachable server")
	}
}
