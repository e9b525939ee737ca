package database

import (
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
)

// Supported SQL drivers
const (
	DriverSQLite   = "sqlite3"
	DriverPostgres = "postgres"
	DriverMySQL    = "mysql"
)

// Connect establishes a connection to the database and creates the schema
func Connect(driver, dsn string) (*sqlx.DB, error) {
	if driver == DriverSQLite && dsn != ":memory:" {
		// Create data directory if it doesn't exist
		if err := os.MkdirAll(filepath.Dir(dsn), 0755); err != nil {
			return nil, fmt.Errorf("failed to create data directory: %w", err)
		}
	}

	db, err := sqlx.Connect(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if driver == DriverSQLite {
		// SQLite doesn't support multiple writers, and :memory: is per connection
		db.SetMaxOpenConns(1)
		db.SetMaxIdleConns(1)
	} else {
		db.SetMaxOpenConns(10)
		db.SetMaxIdleConns(2)
	}

	if err := initializeSchema(db); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

// initializeSchema creates the snapshot table if it doesn't exist
func initializeSchema(db *sqlx.DB) error {
	var query string
	switch db.DriverName() {
	case DriverMySQL:
		query = `
			CREATE TABLE IF NOT EXISTS storage_state (
				name VARCHAR(64) PRIMARY KEY,
				document LONGTEXT NOT NULL,
				updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
			)
		`
	default:
		query = `
			CREATE TABLE IF NOT EXISTS storage_state (
				name TEXT PRIMARY KEY,
				document TEXT NOT NULL,
				updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
			)
		`
	}

	if _, err := db.Exec(query); err != nil {
		return fmt.Errorf("failed to create storage_state table: %w", err)
	}
	return nil
}
