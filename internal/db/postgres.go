package db

import (
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"gorm.io/gorm"

	"github.com/Shamanth-8/drones/internal/logging"
)

var DB *sqlx.DB

// WaitForPostgres retries a libpq connection while the server starts.
func WaitForPostgres(dsn string, attempts int, delay time.Duration) error {
	var err error

	for i := 0; i < attempts; i++ {
		var conn *sqlx.DB
		conn, err = sqlx.Connect("postgres", dsn)
		if err == nil {
			return conn.Close()
		}
		logging.Warn("Postgres not ready", "attempt", i+1, "error", err)
		time.Sleep(delay)
	}
	return fmt.Errorf("postgres unreachable after %d attempts: %w", attempts, err)
}

// WrapGorm exposes a GORM connection pool to sqlx for raw queries.
// driverName selects the bind style ("postgres" or "sqlite3").
func WrapGorm(g *gorm.DB, driverName string) (*sqlx.DB, error) {
	sqlDB, err := g.DB()
	if err != nil {
		return nil, fmt.Errorf("unwrap gorm pool: %w", err)
	}
	DB = sqlx.NewDb(sqlDB, driverName)
	return DB, nil
}
