//go:build integration

package db

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestApplyMigrationsIsIdempotent(t *testing.T) {
	pool, closePool := CreateTestPool()
	defer closePool()

	version, err := ApplyMigrations(pool.Config().ConnString())
	require.NoError(t, err)
	require.Equal(t, uint(1), version)
}
