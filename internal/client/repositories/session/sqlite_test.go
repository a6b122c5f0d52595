package session

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/require"

	_ "modernc.org/sqlite"
)

func setupDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", "file:sessionrepo?mode=memory&cache=shared")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.Exec(`
CREATE TABLE IF NOT EXISTS session (
  key   TEXT PRIMARY KEY,
  value BLOB NOT NULL
);
`)
	require.NoError(t, err)
	_, err = db.Exec(`DELETE FROM session`)
	require.NoError(t, err)
	return db
}

func TestGetMissingKeyReturnsNil(t *testing.T) {
	repo := NewSQLiteRepository(setupDB(t))

	v, err := repo.Get(context.Background(), "credential")
	require.NoError(t, err)
	require.Nil(t, v)
}

func TestSetAndGet(t *testing.T) {
	repo := NewSQLiteRepository(setupDB(t))
	ctx := context.Background()

	require.NoError(t, repo.Set(ctx, "credential", []byte("tok123")))

	v, err := repo.Get(ctx, "credential")
	require.NoError(t, err)
	require.Equal(t, []byte("tok123"), v)
}

func TestSetOverwrites(t *testing.T) {
	repo := NewSQLiteRepository(setupDB(t))
	ctx := context.Background()

	require.NoError(t, repo.Set(ctx, "credential", []byte("old")))
	require.NoError(t, repo.Set(ctx, "credential", []byte("new")))

	v, err := repo.Get(ctx, "credential")
	require.NoError(t, err)
	require.Equal(t, []byte("new"), v)
}

func TestDelete(t *testing.T) {
	repo := NewSQLiteRepository(setupDB(t))
	ctx := context.Background()

	require.NoError(t, repo.Set(ctx, "credential", []byte("tok123")))
	require.NoError(t, repo.Delete(ctx, "credential"))

	v, err := repo.Get(ctx, "credential")
	require.NoError(t, err)
	require.Nil(t, v)

	// Deleting an absent key is a no-op.
	require.NoError(t, repo.Delete(ctx, "credential"))
}

func TestClear(t *testing.T) {
	repo := NewSQLiteRepository(setupDB(t))
	ctx := context.Background()

	require.NoError(t, repo.Set(ctx, "credential", []byte("tok123")))
	require.NoError(t, repo.Set(ctx, "other", []byte("x")))
	require.NoError(t, repo.Clear(ctx))

	v, err := repo.Get(ctx, "credential")
	require.NoError(t, err)
	require.Nil(t, v)
}
