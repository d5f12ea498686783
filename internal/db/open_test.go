package db

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tailorshop/internal/config"
)

func TestOpen(t *testing.T) {
	gormDB, err := Open(&config.Config{DBDriver: "sqlite", SQLitePath: ":memory:"})
	require.NoError(t, err)
	sqlDB, err := gormDB.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	defer sqlDB.Close()

	require.NoError(t, Migrate(gormDB, false))
	for _, m := range Models() {
		assert.True(t, gormDB.Migrator().HasTable(m))
	}
	require.NoError(t, Migrate(gormDB, true))

	_, err = Open(&config.Config{DBDriver: "oracle"})
	assert.ErrorContains(t, err, "unsupported DB_DRIVER")
}
