package memstore

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Makepad-fr/shoplist/internal/store"
)

func TestStore(t *testing.T) {
	s := New()
	ctx := context.Background()

	_, err := s.Get(ctx, "k")
	assert.ErrorIs(t, err, store.ErrNotFound)

	v := []byte("one")
	require.NoError(t, s.Set(ctx, "k", v))
	v[0] = 'X' // caller's slice must not alias the stored value

	got, err := s.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "one", string(got))

	require.NoError(t, s.Set(ctx, "k", []byte("two")))
	got, _ = s.Get(ctx, "k")
	assert.Equal(t, "two", string(got))
	assert.Equal(t, 2, s.Sets())
}

func TestStore_InjectedErrors(t *testing.T) {
	s := New()
	ctx := context.Background()
	boom := errors.New("boom")

	s.SetErr = boom
	assert.ErrorIs(t, s.Set(ctx, "k", []byte("x")), boom)
	assert.Equal(t, 1, s.Sets())

	s.SetErr = nil
	require.NoError(t, s.Set(ctx, "k", []byte("x")))

	s.GetErr = boom
	_, err := s.Get(ctx, "k")
	assert.ErrorIs(t, err, boom)
}
