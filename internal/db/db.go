package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"mishura/migrations"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/database/sqlite"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"
)

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

func Connect(driver, databaseURL string) (*sqlx.DB, error) {
	db, err := sqlx.Connect(driver, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if driver == DriverSQLite {
		// one writer at a time; a single pooled connection keeps transactions from
		// failing with SQLITE_BUSY.
		db.SetMaxOpenConns(1)
	} else {
		db.SetMaxOpenConns(25)
		db.SetMaxIdleConns(5)
		db.SetConnMaxLifetime(30 * time.Minute)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return db, nil
}

// RunMigrations applies the schema for the connection's driver. An empty
// migrationsPath uses the schema embedded in the binary.
func RunMigrations(db *sqlx.DB, migrationsPath string) error {
	driverName := db.DriverName()

	var (
		dbDriver database.Driver
		err      error
	)
	switch driverName {
	case DriverSQLite:
		dbDriver, err = sqlite.WithInstance(db.DB, &sqlite.Config{})
	case DriverPostgres:
		dbDriver, err = postgres.WithInstance(db.DB, &postgres.Config{})
	default:
		return fmt.Errorf("unsupported database driver %q", driverName)
	}
	if err != nil {
		return fmt.Errorf("failed to create %s migration driver: %w", driverName, err)
	}

	var m *migrate.Migrate
	if migrationsPath != "" {
		absPath, err := filepath.Abs(filepath.Join(migrationsPath, driverName))
		if err != nil {
			return fmt.Errorf("failed to get absolute path: %w", err)
		}
		m, err = migrate.NewWithDatabaseInstance(fmt.Sprintf("file://%s", absPath), driverName, dbDriver)
		if err != nil {
			return fmt.Errorf("failed to create migrate instance: %w", err)
		}
	} else {
		src, err := iofs.New(migrations.FS, driverName)
		if err != nil {
			return fmt.Errorf("failed to open embedded migrations: %w", err)
		}
		m, err = migrate.NewWithInstance("iofs", src, driverName, dbDriver)
		if err != nil {
			return fmt.Errorf("failed to create migrate instance: %w", err)
		}
	}

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	return nil
}

func Exists(ctx context.Context, db *sqlx.DB, query string, args ...interface{}) (bool, error) {
	var exists bool
	err := db.GetContext(ctx, &exists, db.Rebind(query), args...)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	return exists, err
}

// Ping reports whether the database answers within the context deadline.
func Ping(ctx context.Context, db *sqlx.DB) error {
	var one int
	return db.GetContext(ctx, &one, "SELECT 1")
}

// Timestamp formats t the way both supported drivers compare against stored timestamps.
func Timestamp(t time.Time) string {
	return t.UTC().Format("2006-01-02 15:04:05")
}
