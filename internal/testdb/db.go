package testdb

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/board-api/internal/platform/sqlstore"
	"github.com/stretchr/testify/require"
)

// EnvTestDatabaseURL names the variable that points tests at a real database.
const EnvTestDatabaseURL = "BOARD_TEST_DATABASE_URL"

// GetTestDatabaseURL returns the configured test database URL, or a URL for
// a new uniquely named in-memory SQLite database.
func GetTestDatabaseURL() string {
	if url := os.Getenv(EnvTestDatabaseURL); url != "" {
		return url
	}
	return fmt.Sprintf("file:board-%s?mode=memory&cache=shared", uuid.NewString())
}

// GetTestDB opens and migrates a test database.
func GetTestDB(ctx context.Context) (*sqlstore.DB, error) {
	db, err := sqlstore.Open(ctx, GetTestDatabaseURL(), sqlstore.PoolConfig{MaxOpenConns: 5, MaxIdleConns: 2})
	if err != nil {
		return nil, err
	}

	migrator, err := sqlstore.NewMigrator(db.DB, db.Dialect, slog.New(slog.NewTextHandler(io.Discard, nil)))
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	if err := migrator.Up(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}

	return db, nil
}

// GetTestDBWithT is GetTestDB that fails the test on error and closes the
// database when the test finishes.
func GetTestDBWithT(t *testing.T) *sqlstore.DB {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	db, err := GetTestDB(ctx)
	require.NoError(t, err, "failed to set up test database")

	t.Cleanup(func() {
		_ = db.Close()
	})
	return db
}

// WithTx runs fn inside a transaction that is always rolled back.
func WithTx(t *testing.T, db *sqlstore.DB, fn func(t *testing.T, tx *sql.Tx)) {
	t.Helper()

	tx, err := db.BeginTx(context.Background(), nil)
	require.NoError(t, err, "failed to begin transaction")

	defer func() {
		_ = tx.Rollback()
	}()

	fn(t, tx)
}
