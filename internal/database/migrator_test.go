package database

import (
	"io/fs"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrateURL(t *testing.T) {
	assert.Equal(t, "pgx5://u:p@db:5432/resto?sslmode=disable", migrateURL("postgres://u:p@db:5432/resto?sslmode=disable"))
	assert.Equal(t, "pgx5://db/resto", migrateURL("postgresql://db/resto"))
	assert.Equal(t, "pgx5://db/resto", migrateURL("pgx5://db/resto"))
}

func TestMigrationsArePaired(t *testing.T) {
	ups, err := fs.Glob(migrationsFS, "migrations/*.up.sql")
	require.NoError(t, err)
	downs, err := fs.Glob(migrationsFS, "migrations/*.down.sql")
	require.NoError(t, err)

	require.NotEmpty(t, ups)
	assert.Len(t, downs, len(ups))
}
