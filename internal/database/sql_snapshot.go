package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// defaultSnapshotName is the row key of the document
const defaultSnapshotName = "cybercalc_storage_state"

// SQLSnapshotter keeps the JSON document in a single row of storage_state
type SQLSnapshotter struct {
	db   *sqlx.DB
	name string
}

// NewSQLSnapshotter stores the document in db under the default row key
func NewSQLSnapshotter(db *sqlx.DB) *SQLSnapshotter {
	return &SQLSnapshotter{db: db, name: defaultSnapshotName}
}

// OpenSQLSnapshotter connects to the database and prepares the schema
func OpenSQLSnapshotter(driver, dsn string) (*SQLSnapshotter, error) {
	db, err := Connect(driver, dsn)
	if err != nil {
		return nil, err
	}
	return NewSQLSnapshotter(db), nil
}

// Save upserts the document row
func (r *SQLSnapshotter) Save(ctx context.Context, s *State) error {
	data, err := Encode(s)
	if err != nil {
		return err
	}

	var query string
	switch r.db.DriverName() {
	case DriverMySQL:
		query = `
			INSERT INTO storage_state (name, document, updated_at)
			VALUES (?, ?, CURRENT_TIMESTAMP)
			ON DUPLICATE KEY UPDATE document = VALUES(document), updated_at = CURRENT_TIMESTAMP
		`
	default:
		// Both SQLite and PostgreSQL understand ON CONFLICT
		query = `
			INSERT INTO storage_state (name, document, updated_at)
			VALUES (?, ?, CURRENT_TIMESTAMP)
			ON CONFLICT (name) DO UPDATE SET document = excluded.document, updated_at = CURRENT_TIMESTAMP
		`
	}

	if _, err := r.db.ExecContext(ctx, r.db.Rebind(query), r.name, string(data)); err != nil {
		return fmt.Errorf("failed to save state: %w", err)
	}
	return nil
}

// Load reads the document row
func (r *SQLSnapshotter) Load(ctx context.Context) (*State, error) {
	var document string
	err := r.db.GetContext(ctx, &document, r.db.Rebind("SELECT document FROM storage_state WHERE name = ?"), r.name)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNoSnapshot
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load state: %w", err)
	}
	return Decode([]byte(document))
}

// Close closes the database connection
func (r *SQLSnapshotter) Close() error {
	return r.db.Close()
}
