//go:build integration

package testdb

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	tc "github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

const (
	postgresImage    = "postgres:16-alpine"
	postgresUser     = "greenrise"
	postgresPassword = "greenrise"
	postgresDB       = "greenrise_test"
)

// StartPostgres launches a disposable PostgreSQL container and returns its
// connection URL together with a function that terminates it.
func StartPostgres(ctx context.Context) (string, func(), error) {
	req := tc.ContainerRequest{
		Image:        postgresImage,
		ExposedPorts: []string{"5432/tcp"},
		Env: map[string]string{
			"POSTGRES_USER":     postgresUser,
			"POSTGRES_PASSWORD": postgresPassword,
			"POSTGRES_DB":       postgresDB,
		},
		// The server restarts once after initdb, so the ready line appears twice.
		WaitingFor: wait.ForLog("database system is ready to accept connections").
			WithOccurrence(2).
			WithStartupTimeout(60 * time.Second),
	}

	container, err := tc.GenericContainer(ctx, tc.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		return "", nil, fmt.Errorf("failed to start postgres container: %w", err)
	}

	terminate := func() { _ = container.Terminate(context.Background()) }

	host, err := container.Host(ctx)
	if err != nil {
		terminate()
		return "", nil, fmt.Errorf("failed to get container host: %w", err)
	}
	port, err := container.MappedPort(ctx, "5432/tcp")
	if err != nil {
		terminate()
		return "", nil, fmt.Errorf("failed to get mapped port: %w", err)
	}

	url := fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		postgresUser, postgresPassword, host, port.Port(), postgresDB)
	return url, terminate, nil
}

// Setup returns a migrated database for an integration test. It uses the
// database named by DatabaseURLEnv when set and a fresh container otherwise.
// All tables are reset before the database is handed to the test.
func Setup(t *testing.T) *sql.DB {
	t.Helper()
	ctx := context.Background()

	dbURL := DatabaseURLFromEnv()
	if dbURL == "" {
		url, terminate, err := StartPostgres(ctx)
		require.NoError(t, err)
		t.Cleanup(terminate)
		dbURL = url
	}

	db, err := Open(ctx, dbURL)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	require.NoError(t, ApplyMigrations(ctx, db, slog.Default()))
	require.NoError(t, ResetDatabase(ctx, db))
	return db
}
