package health

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func passing(name string, critical bool) CheckFunc {
	return CheckFunc{CheckName: name, Critical: critical, Fn: func(ctx context.Context) error { return nil }}
}

func failing(name string, critical bool, err error) CheckFunc {
	return CheckFunc{CheckName: name, Critical: critical, Fn: func(ctx context.Context) error { return err }}
}

func TestManager_AllHealthy(t *testing.T) {
	m := NewManager(zap.NewNop())
	m.AddChecker(passing("database", true))
	m.AddChecker(passing("directory", false))

	results, err := m.Run(context.Background())
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, "database", results[0].Name)
	assert.True(t, results[0].Critical)
	assert.True(t, results[0].Healthy())
	assert.Equal(t, "directory", results[1].Name)
	assert.True(t, results[1].Healthy())
}

func TestManager_NonCriticalFailureDoesNotFailRun(t *testing.T) {
	m := NewManager(nil)
	m.AddChecker(passing("database", true))
	m.AddChecker(failing("directory", false, errors.New("directory holds no users")))

	results, err := m.Run(context.Background())
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.False(t, results[1].Healthy())
	assert.Equal(t, "directory holds no users", results[1].Error)
}

func TestManager_CriticalFailureFailsRun(t *testing.T) {
	m := NewManager(zap.NewNop())
	m.AddChecker(failing("database", true, errors.New("connection refused")))
	m.AddChecker(passing("directory", false))

	results, err := m.Run(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "database: connection refused")
	require.Len(t, results, 2, "every checker runs even after a critical failure")
	assert.False(t, results[0].Healthy())
	assert.True(t, results[1].Healthy())
}

func TestManager_NoCheckers(t *testing.T) {
	results, err := NewManager(nil).Run(context.Background())
	require.NoError(t, err)
	assert.Empty(t, results)
}
