package credentials

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"
)

func setupDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.Exec(`CREATE TABLE metadata (key TEXT PRIMARY KEY, value TEXT NOT NULL);`)
	require.NoError(t, err)
	return db
}

func TestToken_EmptyWhenUnset(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))

	token, err := r.Token(context.Background())
	require.NoError(t, err)
	require.Equal(t, "", token)
}

func TestSetToken_PersistsAndReplaces(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))
	ctx := context.Background()

	require.NoError(t, r.SetToken(ctx, "t1"))
	token, err := r.Token(ctx)
	require.NoError(t, err)
	require.Equal(t, "t1", token)

	require.NoError(t, r.SetToken(ctx, "t2"))
	token, err = r.Token(ctx)
	require.NoError(t, err)
	require.Equal(t, "t2", token)
}

func TestClear_RemovesPersistedRow(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteRepository(db)
	ctx := context.Background()

	require.NoError(t, r.SetToken(ctx, "t1"))
	require.NoError(t, r.Clear(ctx))

	token, err := r.Token(ctx)
	require.NoError(t, err)
	require.Equal(t, "", token)

	var n int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM metadata`).Scan(&n))
	require.Equal(t, 0, n)
}
