// FILE: lixenwraith/dotenv/adaptor/sqlstore/sqlstore_test.go
package sqlstore

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/lixenwraith/dotenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestPutAndGet(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.Put("PORT", int64(8080)))
	require.NoError(t, s.Put("DEBUG", true))
	require.NoError(t, s.Put("EMPTY", nil))

	v, found, err := s.Get(ctx, "PORT")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "8080", v)

	v, found, err = s.Get(ctx, "EMPTY")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Nil(t, v)

	_, found, err = s.Get(ctx, "MISSING")
	require.NoError(t, err)
	assert.False(t, found)

	// Upsert replaces the row
	require.NoError(t, s.Put("PORT", "9090"))
	all, err := s.All(ctx)
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"PORT": "9090", "DEBUG": "true", "EMPTY": nil}, all)
}

func TestAsAdaptor(t *testing.T) {
	s := openTestStore(t)

	env := dotenv.New(
		dotenv.WithEnviron(func() []string { return nil }),
		dotenv.WithStrict(true),
		dotenv.WithAdaptor("sqlite", s),
	)
	env.Convert("PORT").ToInt()
	env.Convert("OPTIONAL").ToBoolOrNull()

	_, err := env.Parse("PORT=8080\nNAME='demo app'\nOPTIONAL=maybe", "")
	require.NoError(t, err)

	all, err := s.All(context.Background())
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"PORT": "8080", "NAME": "demo app", "OPTIONAL": nil}, all)
}

func TestOpenFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state", "dotenv.db")

	s, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, s.Put("KEY", "value"))
	require.NoError(t, s.Close())

	s, err = Open(path)
	require.NoError(t, err)
	defer s.Close()

	v, found, err := s.Get(context.Background(), "KEY")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "value", v)
}

func TestNewSharedDB(t *testing.T) {
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	defer db.Close()

	_, err = New(db, "bad-table")
	assert.Error(t, err)

	s, err := New(db, "settings")
	require.NoError(t, err)
	require.NoError(t, s.Put("A", "1"))

	// Close leaves a caller owned db open
	require.NoError(t, s.Close())
	require.NoError(t, db.Ping())

	var n int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM settings`).Scan(&n))
	assert.Equal(t, 1, n)
}
