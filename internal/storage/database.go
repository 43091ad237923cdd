package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"  // Registers the postgres driver
	_ "modernc.org/sqlite" // Registers the sqlite driver
)

const (
	driverSQLite   = "sqlite"
	driverPostgres = "postgres"
)

// DB represents a wrapper around the SQL database connection.
type DB struct {
	conn   *sqlx.DB
	driver string
}

// Driver picks the SQL driver and DSN for a database URL. postgres:// and
// postgresql:// URLs go to PostgreSQL; anything else is a SQLite path.
func Driver(url string) (driver, dsn string) {
	switch {
	case strings.HasPrefix(url, "postgres://"), strings.HasPrefix(url, "postgresql://"):
		return driverPostgres, url
	case strings.HasPrefix(url, "sqlite://"):
		return driverSQLite, strings.TrimPrefix(url, "sqlite://")
	default:
		return driverSQLite, url
	}
}

// Open creates a new database connection and ensures the schema is up to date.
func Open(url string) (*DB, error) {
	driver, dsn := Driver(url)
	if driver == driverSQLite && dsn != ":memory:" && !strings.HasPrefix(dsn, "file:") {
		if err := os.MkdirAll(filepath.Dir(dsn), 0o755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	conn, err := sqlx.Connect(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if driver == driverSQLite {
		// SQLite doesn't support multiple writers.
		conn.SetMaxOpenConns(1)
		conn.SetMaxIdleConns(1)
		if _, err := conn.Exec("PRAGMA foreign_keys = ON"); err != nil {
			conn.Close()
			return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
		}
	}

	// Execute the schema to create tables if they don't exist.
	if _, err := conn.Exec(schema); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to apply schema: %w", err)
	}

	return &DB{conn: conn, driver: driver}, nil
}

// Close closes the database connection.
func (db *DB) Close() error {
	return db.conn.Close()
}

// Ping checks that the database is still reachable.
func (db *DB) Ping(ctx context.Context) error {
	return db.conn.PingContext(ctx)
}

// DriverName reports which SQL driver backs this connection.
func (db *DB) DriverName() string {
	return db.driver
}

func (db *DB) q(query string) string {
	return db.conn.Rebind(query)
}

func notFound(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}

func writeErr(action string, err error) error {
	return fmt.Errorf("%w: failed to %s: %w", ErrPersistence, action, err)
}

// expectRow turns an update or delete that touched nothing into ErrNotFound.
func expectRow(res sql.Result, what string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return writeErr("count affected rows for "+what, err)
	}
	if n == 0 {
		return fmt.Errorf("%s: %w", what, ErrNotFound)
	}
	return nil
}
