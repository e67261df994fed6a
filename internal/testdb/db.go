package testdb

import (
	"context"
	"database/sql"
	"errors"
	"os"
	"sync"
	"testing"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/phrazzld/zen-api/internal/platform/postgres"
	"github.com/stretchr/testify/require"
)

// TestTimeout bounds connection checks against the test database.
const TestTimeout = 5 * time.Second

var (
	migrateOnce sync.Once
	migrateErr  error
)

// GetTestDatabaseURL reads DATABASE_URL, then ZEN_TEST_DB_URL.
func GetTestDatabaseURL() string {
	for _, key := range []string{"DATABASE_URL", "ZEN_TEST_DB_URL"} {
		if v := os.Getenv(key); v != "" {
			return v
		}
	}
	return ""
}

func IsIntegrationTestEnvironment() bool {
	return GetTestDatabaseURL() != ""
}

// Open returns a migrated connection to the test database, or skips t when
// none is configured. Migrations run once per test binary.
func Open(t *testing.T) *sql.DB {
	t.Helper()

	url := GetTestDatabaseURL()
	if url == "" {
		t.Skip("integration test: set DATABASE_URL to run")
	}

	db, err := sql.Open("pgx", url)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	ctx, cancel := context.WithTimeout(context.Background(), TestTimeout)
	defer cancel()
	require.NoError(t, db.PingContext(ctx), "test database unreachable")

	migrateOnce.Do(func() {
		migrateErr = postgres.Migrate(context.Background(), db, "up", nil)
	})
	require.NoError(t, migrateErr, "migrating test database")
	return db
}

// WithTx runs fn inside a transaction that is always rolled back.
func WithTx(t *testing.T, db *sql.DB, fn func(t *testing.T, tx *sql.Tx)) {
	t.Helper()

	tx, err := db.Begin()
	require.NoError(t, err)
	defer func() {
		if err := tx.Rollback(); err != nil && !errors.Is(err, sql.ErrTxDone) {
			t.Logf("rollback: %v", err)
		}
	}()

	fn(t, tx)
}
