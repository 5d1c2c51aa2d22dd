package overlay

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
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.Exec(`
CREATE TABLE overlays (
  user_key TEXT NOT NULL,
  field    TEXT NOT NULL,
  value    TEXT NOT NULL,
  PRIMARY KEY (user_key, field)
);`)
	require.NoError(t, err)
	return db
}

func TestGet_EmptyForUnknownUser(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))

	got, err := r.Get(context.Background(), "u-1")
	require.NoError(t, err)
	require.Empty(t, got)
}

func TestSet_FiltersToAllowList(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))
	ctx := context.Background()

	err := r.Set(ctx, "u-1", map[string]string{
		"avatar_index": "2",
		"bio":          "hi",
		"total_shakes": "999",
	})
	require.NoError(t, err)

	got, err := r.Get(ctx, "u-1")
	require.NoError(t, err)
	require.Equal(t, map[string]string{"avatar_index": "2", "bio": "hi"}, got)
}

func TestSet_EmptyAfterFilterDeletesEntry(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteRepository(db)
	ctx := context.Background()

	require.NoError(t, r.Set(ctx, "u-1", map[string]string{"bio": "hi"}))
	require.NoError(t, r.Set(ctx, "u-1", map[string]string{"not_allowed": "x"}))

	var n int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM overlays WHERE user_key = 'u-1'`).Scan(&n))
	require.Equal(t, 0, n)
}

func TestSet_ReplacesPreviousOverlay(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))
	ctx := context.Background()

	require.NoError(t, r.Set(ctx, "u-1", map[string]string{"bio": "old", "phone": "1"}))
	require.NoError(t, r.Set(ctx, "u-1", map[string]string{"bio": "new"}))

	got, err := r.Get(ctx, "u-1")
	require.NoError(t, err)
	require.Equal(t, map[string]string{"bio": "new"}, got)
}

func TestOverlays_NamespacedByUserKey(t *testing.T) {
	r := NewSQLiteRepository(setupDB(t))
	ctx := context.Background()

	require.NoError(t, r.Set(ctx, "u-1", map[string]string{"bio": "first"}))
	require.NoError(t, r.Set(ctx, "u-2", map[string]string{"bio": "second"}))
	require.NoError(t, r.Clear(ctx, "u-1"))

	got, err := r.Get(ctx, "u-1")
	require.NoError(t, err)
	require.Empty(t, got)

	got, err = r.Get(ctx, "u-2")
	require.NoError(t, err)
	require.Equal(t, map[string]string{"bio": "second"}, got)
}
