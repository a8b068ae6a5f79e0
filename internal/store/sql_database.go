package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/blerimk/schoolroster/internal/config"
	"github.com/blerimk/schoolroster/internal/logger"
	"github.com/blerimk/schoolroster/migrations"
)

// DB wraps the shared connection pool together with the driver-specific
// error classifier. Every repository call runs a single statement on the
// pool; acquisition and release of the underlying connection are scoped to
// that statement and deterministic on every exit path.
type DB struct {
	*sql.DB
	driver             string
	errorClassificator ErrorClassificator
	logger             *logger.Logger
}

// NewConnect opens the backend selected by cfg.Driver and verifies it with
// a ping. Any failure here is fatal at startup; no screen is shown before
// the database is reachable.
func NewConnect(ctx context.Context, cfg config.DB, log *logger.Logger) (*DB, error) {
	switch cfg.Driver {
	case config.DriverPostgres:
		return NewConnectPostgres(ctx, cfg, log)
	case config.DriverSQLite:
		return NewConnectSQLite(ctx, cfg, log)
	default:
		return nil, fmt.Errorf("unknown database driver %q", cfg.Driver)
	}
}

// Migrate ensures the schema exists. Idempotent; see the migrations package.
func (db *DB) Migrate() error {
	return migrations.Migrate(db.DB, db.driver)
}
