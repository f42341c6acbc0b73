// Package store is the DB collaborator: it owns the sqlite connection,
// applies schema migrations, and persists aggregated tiles. It is the
// only package in the module that talks to a database, an
// external-collaborator boundary the core pipeline never crosses.
package store

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"log"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	_ "modernc.org/sqlite"

	"github.com/halcyon-marine/aistrack/internal/aiserr"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// DB wraps a sqlite connection built from a Config.
type DB struct {
	*sql.DB
}

// Open connects to the sqlite database named by cfg and, once
// connected, exposes it for migration and query use. Hostname/port are
// validated as part of Config but sqlite itself is file-based; Name is
// used as the DSN (a path, or ":memory:" for ephemeral test databases).
func Open(cfg Config) (*DB, error) {
	sqlDB, err := sql.Open("sqlite", cfg.Name)
	if err != nil {
		return nil, aiserr.Wrap(aiserr.KindDatabaseError, "store.Open", "failed to open sqlite database", err)
	}
	if err := sqlDB.Ping(); err != nil {
		return nil, aiserr.Wrap(aiserr.KindDatabaseError, "store.Open", "failed to connect to sqlite database", err)
	}
	log.Printf("store: connected to %s", dsn(cfg))
	return &DB{sqlDB}, nil
}

// MigrateUp applies every pending migration embedded under migrations/.
func (db *DB) MigrateUp() error {
	sourceDriver, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return aiserr.Wrap(aiserr.KindDatabaseError, "MigrateUp", "failed to load embedded migrations", err)
	}
	driver, err := sqlite.WithInstance(db.DB, &sqlite.Config{})
	if err != nil {
		return aiserr.Wrap(aiserr.KindDatabaseError, "MigrateUp", "failed to create sqlite migrate driver", err)
	}
	m, err := migrate.NewWithInstance("iofs", sourceDriver, "sqlite", driver)
	if err != nil {
		return aiserr.Wrap(aiserr.KindDatabaseError, "MigrateUp", "failed to create migrate instance", err)
	}
	// m.Close() is skipped: the sqlite driver's Close() would also close
	// db.DB, which this DB continues to own after migration.
	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return aiserr.Wrap(aiserr.KindDatabaseError, "MigrateUp", "migration failed", err)
	}
	return nil
}

// dsn renders a connection string for logging purposes only — it never
// includes the password.
func dsn(cfg Config) string {
	return fmt.Sprintf("%s@%s:%d/%s", cfg.Username, cfg.Hostname, cfg.Port, cfg.Name)
}
