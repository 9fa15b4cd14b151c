package sqlitestore

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Makepad-fr/shoplist/internal/store"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := New(":memory:", nil)
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestNew_CreatesDirectory(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "subdir", "nested", "shoplist.db")

	s, err := New(dbPath, nil)
	require.NoError(t, err)
	defer s.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("database file was not created in nested directory")
	}
}

func TestGet_NotFound(t *testing.T) {
	s := newTestStore(t)
	_, err := s.Get(context.Background(), "nope")
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestSet_Upsert(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.Set(ctx, "shoplist.items", []byte(`[{"id":"1"}]`)))
	require.NoError(t, s.Set(ctx, "shoplist.items", []byte(`[]`)))

	got, err := s.Get(ctx, "shoplist.items")
	require.NoError(t, err)
	assert.Equal(t, `[]`, string(got))
}

func TestSet_EmptyValue(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.Set(ctx, "k", nil))
	got, err := s.Get(ctx, "k")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestPersistsAcrossReopen(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "shoplist.db")
	ctx := context.Background()

	s, err := New(dbPath, nil)
	require.NoError(t, err)
	require.NoError(t, s.Set(ctx, "k", []byte("v")))
	require.NoError(t, s.Close())

	s, err = New(dbPath, nil)
	require.NoError(t, err)
	defer s.Close()

	got, err := s.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "v", string(got))
}
