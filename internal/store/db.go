// Package store is the Postgres/Redis persistence layer: it implements the
// solver's Loader contract, persists generated schedules, and serializes
// concurrent generation requests for the same year-month. The core solver
// package never imports this one.
package store

import (
	"context"
	"embed"
	"fmt"
	"io/fs"
	"sort"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// DB wraps a pgx connection pool and the logger threaded in from
// cmd/roster/main.go, so migration progress shows up in the same
// console+file streams as the rest of the CLI.
type DB struct {
	pool   *pgxpool.Pool
	logger *zap.Logger
}

// NewDB opens a connection pool against connString, verifies connectivity
// with a ping, and attaches logger for migration/lifecycle events. Passing
// a nil logger is fine — every log call below is guarded.
func NewDB(ctx context.Context, connString string, logger *zap.Logger) (*DB, error) {
	pool, err := pgxpool.New(ctx, connString)
	if err != nil {
		return nil, fmt.Errorf("store: open connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("store: ping database: %w", err)
	}

	if logger != nil {
		logger.Debug("database connection established")
	}
	return &DB{pool: pool, logger: logger}, nil
}

// Close releases the underlying connection pool.
func (db *DB) Close() {
	if db.logger != nil {
		db.logger.Debug("closing database connection pool")
	}
	db.pool.Close()
}

// RunMigrations applies every embedded *.sql file in lexical filename
// order, logging each one as it runs so a slow or hanging migration is
// visible in the CLI's log file rather than silent.
func (db *DB) RunMigrations(ctx context.Context) error {
	names, err := sortedMigrationNames()
	if err != nil {
		return err
	}

	for _, name := range names {
		start := time.Now()
		content, err := fs.ReadFile(migrationsFS, "migrations/"+name)
		if err != nil {
			return fmt.Errorf("store: read migration %s: %w", name, err)
		}

		if _, err := db.pool.Exec(ctx, string(content)); err != nil {
			return fmt.Errorf("store: apply migration %s: %w", name, err)
		}

		if db.logger != nil {
			db.logger.Info("applied migration",
				zap.String("file", name),
				zap.Duration("elapsed", time.Since(start)))
		}
	}

	return nil
}

// sortedMigrationNames lists the embedded migration filenames in the order
// they must run.
func sortedMigrationNames() ([]string, error) {
	entries, err := fs.ReadDir(migrationsFS, "migrations")
	if err != nil {
		return nil, fmt.Errorf("store: read migrations directory: %w", err)
	}

	var names []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".sql") {
			continue
		}
		names = append(names, entry.Name())
	}
	sort.Strings(names)
	return names, nil
}
