// Package testdb provides database helpers for tests and local development
// harnesses: opening a connection, applying the embedded migrations, running
// a test inside a rolled-back transaction, and resetting all table state.
//
// Nothing in this package is used by production request handling.
package testdb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/greenrise/greenrise-api/internal/platform/postgres"
	_ "github.com/jackc/pgx/v5/stdlib" // pgx driver
	"github.com/stretchr/testify/require"
)

// DatabaseURLEnv names the variable pointing tests at an existing database.
// When it is unset, integration tests start a disposable container instead.
const DatabaseURLEnv = "GREENRISE_TEST_DATABASE_URL"

// TestTimeout bounds individual test database operations.
const TestTimeout = 30 * time.Second

// resetTables lists every application table, truncated by ResetDatabase.
var resetTables = []string{"hortalicas", "users"}

// DatabaseURLFromEnv returns the configured test database URL, or "".
func DatabaseURLFromEnv() string {
	return os.Getenv(DatabaseURLEnv)
}

// Open connects to dbURL with the pgx driver and verifies the connection.
func Open(ctx context.Context, dbURL string) (*sql.DB, error) {
	db, err := sql.Open("pgx", dbURL)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, TestTimeout)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	return db, nil
}

// ApplyMigrations brings the schema up to date using the embedded migrations.
func ApplyMigrations(ctx context.Context, db *sql.DB, logger *slog.Logger) error {
	return postgres.Migrate(ctx, db, "up", logger)
}

// ResetDatabase removes every row from the application tables. It is
// idempotent and safe to call on an empty database.
func ResetDatabase(ctx context.Context, db *sql.DB) error {
	query := "TRUNCATE TABLE "
	for i, table := range resetTables {
		if i > 0 {
			query += ", "
		}
		query += table
	}

	if _, err := db.ExecContext(ctx, query); err != nil {
		return fmt.Errorf("failed to reset database: %w", err)
	}
	return nil
}

// WithTx runs fn inside a transaction that is always rolled back, so tests
// leave no data behind.
func WithTx(t *testing.T, db *sql.DB, fn func(t *testing.T, tx *sql.Tx)) {
	t.Helper()

	tx, err := db.Begin()
	require.NoError(t, err, "failed to begin transaction")

	defer func() {
		if err := tx.Rollback(); err != nil && !errors.Is(err, sql.ErrTxDone) {
			t.Logf("warning: failed to roll back transaction: %v", err)
		}
	}()

	fn(t, tx)
}
