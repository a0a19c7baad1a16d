package cryptostore

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ecomsuite/storefront-client/internal/adapters/filestore"
	"github.com/ecomsuite/storefront-client/internal/ports"
)

func newStores(t *testing.T) (*Store, *filestore.Store) {
	t.Helper()
	inner, err := filestore.New(filepath.Join(t.TempDir(), "state.json"))
	require.NoError(t, err)
	s, err := New(inner, "correct horse battery staple")
	require.NoError(t, err)
	return s, inner
}

func TestStore_RoundTrip(t *testing.T) {
	s, _ := newStores(t)
	ctx := context.Background()

	require.NoError(t, s.Set(ctx, "session", []byte(`{"token":"secret-token"}`)))

	got, err := s.Get(ctx, "session")
	require.NoError(t, err)
	assert.Equal(t, []byte(`{"token":"secret-token"}`), got)
}

func TestStore_CiphertextAtRest(t *testing.T) {
	s, inner := newStores(t)
	ctx := context.Background()

	require.NoError(t, s.Set(ctx, "session", []byte("secret-token")))

	raw, err := inner.Get(ctx, "session")
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "secret-token")
}

func TestStore_WrongPassphraseFails(t *testing.T) {
	inner, err := filestore.New(filepath.Join(t.TempDir(), "state.json"))
	require.NoError(t, err)

	first, err := New(inner, "passphrase-one")
	require.NoError(t, err)
	require.NoError(t, first.Set(context.Background(), "k", []byte("v")))

	second, err := New(inner, "passphrase-two")
	require.NoError(t, err)

	_, err = second.Get(context.Background(), "k")
	assert.Error(t, err)
}

func TestStore_MissingKeyPassesThrough(t *testing.T) {
	s, _ := newStores(t)

	_, err := s.Get(context.Background(), "absent")
	assert.ErrorIs(t, err, ports.ErrKeyNotFound)
}

func TestNew_Validation(t *testing.T) {
	inner, err := filestore.New(filepath.Join(t.TempDir(), "state.json"))
	require.NoError(t, err)

	_, err = New(nil, "pass")
	assert.Error(t, err)

	_, err = New(inner, "")
	assert.Error(t, err)
}
