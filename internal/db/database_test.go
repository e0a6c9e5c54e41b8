package db

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Skotchmaster/post_shop/internal/models"
)

func TestOpen_SQLiteAndMigrate(t *testing.T) {
	ctx := context.Background()

	db, err := Open(ctx, "sqlite", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = Close(db) })

	require.NoError(t, Migrate(db))
	require.NoError(t, Ping(ctx, db))

	for _, m := range models.All() {
		assert.True(t, db.Migrator().HasTable(m))
	}
}

func TestOpen_Errors(t *testing.T) {
	ctx := context.Background()

	_, err := Open(ctx, "sqlite", "")
	require.Error(t, err)

	_, err = Open(ctx, "mysql", "dsn")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported database driver")
}
