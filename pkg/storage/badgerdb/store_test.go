// Copyright © 2023 Crypto Coin World

package badgerdb

import (
	"bytes"
	"context"
	"io/ioutil"
	"os"
	"testing"

	"github.com/crypto-coin-world/ipvc/pkg/errors"
	"github.com/crypto-coin-world/ipvc/pkg/storage"
	"github.com/crypto-coin-world/ipvc/pkg/storage/status"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupStore(t testing.TB) (*Store, func()) {
	t.Helper()

	dir, err := ioutil.TempDir("", "ipvc-badger-tst")
	require.NoError(t, err)

	bs, err := New(dir)
	require.NoError(t, err)

	ctx := context.Background()
	require.NoError(t, bs.Put(ctx, "sixteentons", bytes.NewBufferString("this is the text")))
	require.NoError(t, bs.Put(ctx, "seventeentons", bytes.NewBufferString("this is the text for another thing")))

	return bs, func() {
		bs.Close()
		os.RemoveAll(dir)
	}
}

func TestBadgerHas(t *testing.T) {
	bs, cleanup := setupStore(t)
	defer cleanup()

	has, err := bs.Has(context.Background(), "sixteentons")
	require.NoError(t, err)
	assert.True(t, has)

	has, err = bs.Has(context.Background(), "fifteentons")
	require.NoError(t, err)
	assert.False(t, has)
}

func TestBadgerGetPut(t *testing.T) {
	bs, cleanup := setupStore(t)
	defer cleanup()

	b, err := storage.ReadAll(context.Background(), bs, "sixteentons")
	require.NoError(t, err)
	assert.Equal(t, "this is the text", string(b))

	_, err = bs.Get(context.Background(), "fifteentons")
	require.Error(t, err)
	assert.True(t, errors.Is(err, status.ErrNotFound))

	require.NoError(t, bs.Put(context.Background(), "sixteentons", bytes.NewBufferString("rewritten")))
	b, err = storage.ReadAll(context.Background(), bs, "sixteentons")
	require.NoError(t, err)
	assert.Equal(t, "rewritten", string(b))
}

func TestBadgerKeysDelete(t *testing.T) {
	bs, cleanup := setupStore(t)
	defer cleanup()

	keys, err := bs.Keys(context.Background())
	require.NoError(t, err)
	assert.Len(t, keys, 2)

	require.NoError(t, bs.Delete(context.Background(), "sixteentons"))
	keys, err = bs.Keys(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"seventeentons"}, keys)

	require.NoError(t, bs.Clear(context.Background()))
	keys, err = bs.Keys(context.Background())
	require.NoError(t, err)
	assert.Empty(t, keys)
}

func TestBadgerClose(t *testing.T) {
	bs, cleanup := setupStore(t)
	defer cleanup()

	require.NoError(t, bs.Close())
	require.NoError(t, bs.Close())
}
