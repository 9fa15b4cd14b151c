package jsonstore

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Makepad-fr/shoplist/internal/store"
)

func TestGet_Missing(t *testing.T) {
	s := New(t.TempDir())
	_, err := s.Get(context.Background(), "shoplist.items")
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestSetGet_RoundTrip(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "data")
	s := New(dir)
	ctx := context.Background()

	require.NoError(t, s.Set(ctx, "shoplist.items", []byte(`[{"id":"a","name":"Milk"}]`)))

	got, err := s.Get(ctx, "shoplist.items")
	require.NoError(t, err)

	var v []map[string]string
	require.NoError(t, json.Unmarshal(got, &v))
	assert.Equal(t, "Milk", v[0]["name"])

	// the file is indented for humans
	raw, err := os.ReadFile(filepath.Join(dir, "shoplist.items.json"))
	require.NoError(t, err)
	assert.Contains(t, string(raw), "\n  ")
}

func TestSet_Overwrites(t *testing.T) {
	s := New(t.TempDir())
	ctx := context.Background()

	require.NoError(t, s.Set(ctx, "k", []byte(`[1]`)))
	require.NoError(t, s.Set(ctx, "k", []byte(`[]`)))

	got, err := s.Get(ctx, "k")
	require.NoError(t, err)
	assert.JSONEq(t, `[]`, string(got))
}

func TestSet_NonJSONKeptVerbatim(t *testing.T) {
	s := New(t.TempDir())
	ctx := context.Background()

	require.NoError(t, s.Set(ctx, "k", []byte("not json")))
	got, err := s.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "not json", string(got))
}

func TestInvalidKey(t *testing.T) {
	s := New(t.TempDir())
	ctx := context.Background()

	for _, k := range []string{"", "../escape", `a\b`, ".."} {
		assert.Error(t, s.Set(ctx, k, []byte("x")), k)
		_, err := s.Get(ctx, k)
		assert.Error(t, err, k)
	}
}

func TestNoTempFilesLeft(t *testing.T) {
	dir := t.TempDir()
	s := New(dir)
	require.NoError(t, s.Set(context.Background(), "k", []byte(`{}`)))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "k.json", entries[0].Name())
}
