package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// ErrUnsupportedDialect is returned by Migrate for an unknown driver name.
var ErrUnsupportedDialect = errors.New("unsupported sql dialect")

const createBookingsMySQL = `
CREATE TABLE IF NOT EXISTS bookings (
    id         BIGINT UNSIGNED NOT NULL AUTO_INCREMENT PRIMARY KEY,
    name       VARCHAR(255) NOT NULL,
    event_date VARCHAR(64)  NOT NULL,
    venue      VARCHAR(255) NOT NULL,
    email      VARCHAR(255) NOT NULL,
    package    VARCHAR(16)  NOT NULL,
    phone      VARCHAR(32)  NOT NULL DEFAULT '',
    status     VARCHAR(16)  NOT NULL DEFAULT 'PENDING',
    created_at DATETIME(6)  NOT NULL,
    INDEX idx_bookings_created_at (created_at)
) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4;`

const createBookingsSQLite = `
CREATE TABLE IF NOT EXISTS bookings (
    id         INTEGER PRIMARY KEY AUTOINCREMENT,
    name       TEXT     NOT NULL,
    event_date TEXT     NOT NULL,
    venue      TEXT     NOT NULL,
    email      TEXT     NOT NULL,
    package    TEXT     NOT NULL,
    phone      TEXT     NOT NULL DEFAULT '',
    status     TEXT     NOT NULL DEFAULT 'PENDING',
    created_at DATETIME NOT NULL
);`

// Migrate creates the bookings table if it does not exist.  It is safe to
// run on every start.
func Migrate(ctx context.Context, db *sql.DB, dialect string) error {
	if db == nil {
		return fmt.Errorf("database connection is nil, open it first")
	}
	var stmt string
	switch dialect {
	case DialectMySQL:
		stmt = createBookingsMySQL
	case DialectSQLite:
		stmt = createBookingsSQLite
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedDialect, dialect)
	}
	if _, err := db.ExecContext(ctx, stmt); err != nil {
		return fmt.Errorf("error running bookings table migration: %w", err)
	}
	return nil
}
