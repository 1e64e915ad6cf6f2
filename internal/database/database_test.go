package database

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenRequiresDSN(t *testing.T) {
	_, err := Open(context.Background(), Options{Driver: DriverPostgres})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DSN is required")
}

func TestOpenUnknownDriver(t *testing.T) {
	_, err := Open(context.Background(), Options{Driver: "mysql", DSN: "root@/userdir"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unsupported database driver "mysql"`)
}

func TestOpenSQLiteAndHealthCheck(t *testing.T) {
	ctx := context.Background()
	db, err := Open(ctx, Options{
		Driver: DriverSQLite,
		DSN:    filepath.Join(t.TempDir(), "health.db"),
	})
	if err != nil {
		t.Skipf("sqlite not available, skipping: %v", err)
		return
	}

	checker := NewHealthChecker(db)
	assert.Equal(t, "database", checker.Name())
	assert.True(t, checker.IsCritical())
	assert.NoError(t, checker.HealthCheck(ctx))

	require.NoError(t, db.Close())
	assert.Error(t, checker.HealthCheck(ctx), "a closed database is unhealthy")
}
