package mfs

import (
	"context"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/crypto-coin-world/ipvc/pkg/errors"
	"github.com/crypto-coin-world/ipvc/pkg/mfs/status"
	"github.com/crypto-coin-world/ipvc/pkg/storage"
	"github.com/crypto-coin-world/ipvc/pkg/storage/localfs"
)

func setupFs(t testing.TB) (Fs, storage.Store) {
	t.Helper()
	store := localfs.New(afero.NewMemMapFs())
	fs, err := New(context.Background(), store)
	require.NoError(t, err)
	return fs, store
}

func TestWriteReadStat(t *testing.T) {
	fs, _ := setupFs(t)
	ctx := context.Background()

	require.NoError(t, fs.Write(ctx, "/docs/readme.txt", []byte("hello")))

	b, err := fs.Read(ctx, "/docs/readme.txt")
	require.NoError(t, err)
	assert.Equal(t, "hello", string(b))

	info, err := fs.Stat(ctx, "/docs/readme.txt")
	require.NoError(t, err)
	assert.Equal(t, "readme.txt", info.Name)
	assert.False(t, info.Dir)
	assert.Equal(t, int64(5), info.Size)
	assert.False(t, info.Key.IsZero())

	dir, err := fs.Stat(ctx, "/docs")
	require.NoError(t, err)
	assert.True(t, dir.Dir)
	assert.Equal(t, int64(5), dir.Size)

	root, err := fs.Stat(ctx, "/")
	require.NoError(t, err)
	assert.True(t, root.Dir)
	assert.Equal(t, "/", root.Name)

	_, err = fs.Read(ctx, "/docs")
	require.Error(t, err)
	assert.True(t, errors.Is(err, status.ErrIsDir))

	_, err = fs.Stat(ctx, "/docs/missing")
	require.Error(t, err)
	assert.True(t, errors.Is(err, status.ErrNotFound))

	has, err := fs.Has(ctx, "/docs/readme.txt")
	require.NoError(t, err)
	assert.True(t, has)
	has, err = fs.Has(ctx, "/docs/missing")
	require.NoError(t, err)
	assert.False(t, has)
}

func TestWriteFlags(t *testing.T) {
	fs, _ := setupFs(t)
	ctx := context.Background()

	err := fs.Write(ctx, "/f", []byte("x"), NoCreate())
	require.Error(t, err)
	assert.True(t, errors.Is(err, status.ErrNotFound))

	require.NoError(t, fs.Write(ctx, "/f", []byte("0123456789")))
	require.NoError(t, fs.Write(ctx, "/f", []byte("abc"), NoTruncate()))

	b, err := fs.Read(ctx, "/f")
	require.NoError(t, err)
	assert.Equal(t, "abc3456789", string(b))

	require.NoError(t, fs.Write(ctx, "/f", []byte("abc")))
	b, err = fs.Read(ctx, "/f")
	require.NoError(t, err)
	assert.Equal(t, "abc", string(b))

	// a directory cannot be rewritten as a file
	require.NoError(t, fs.Mkdir(ctx, "/d", false))
	err = fs.Write(ctx, "/d", []byte("x"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, status.ErrIsDir))
}

func TestMkdirList(t *testing.T) {
	fs, _ := setupFs(t)
	ctx := context.Background()

	require.NoError(t, fs.Mkdir(ctx, "/a/b/c", true))
	require.NoError(t, fs.Write(ctx, "/a/b/zfile", []byte("z")))
	require.NoError(t, fs.Write(ctx, "/a/b/afile", []byte("a")))

	infos, err := fs.List(ctx, "/a/b")
	require.NoError(t, err)
	require.Len(t, infos, 3)
	assert.Equal(t, "afile", infos[0].Name)
	assert.Equal(t, "c", infos[1].Name)
	assert.True(t, infos[1].Dir)
	assert.Equal(t, "zfile", infos[2].Name)

	// without parents, intermediate directories are required
	err = fs.Mkdir(ctx, "/x/y", false)
	require.Error(t, err)
	assert.True(t, errors.Is(err, status.ErrNotFound))

	// existing directory: only an error without parents
	err = fs.Mkdir(ctx, "/a/b", false)
	require.Error(t, err)
	assert.True(t, errors.Is(err, status.ErrExists))
	require.NoError(t, fs.Mkdir(ctx, "/a/b", true))

	// a file blocks a directory of the same name
	err = fs.Mkdir(ctx, "/a/b/zfile", true)
	require.Error(t, err)
	assert.True(t, errors.Is(err, status.ErrNotDir))

	_, err = fs.List(ctx, "/a/b/zfile")
	require.Error(t, err)
	assert.True(t, errors.Is(err, status.ErrNotDir))
}

func TestCopyIsReferenceCopy(t *testing.T) {
	fs, _ := setupFs(t)
	ctx := context.Background()

	require.NoError(t, fs.Write(ctx, "/src/one", []byte("one")))
	require.NoError(t, fs.Write(ctx, "/src/two", []byte("two")))

	before, err := fs.Stat(ctx, "/src")
	require.NoError(t, err)

	require.NoError(t, fs.Copy(ctx, "/src", "/dup"))

	dup, err := fs.Stat(ctx, "/dup")
	require.NoError(t, err)
	assert.Equal(t, before.Key, dup.Key)

	// mutating the copy leaves the original untouched
	require.NoError(t, fs.Write(ctx, "/dup/three", []byte("three")))
	after, err := fs.Stat(ctx, "/src")
	require.NoError(t, err)
	assert.Equal(t, before.Key, after.Key)

	changed, err := fs.Stat(ctx, "/dup")
	require.NoError(t, err)
	assert.NotEqual(t, before.Key, changed.Key)

	b, err := fs.Read(ctx, "/dup/one")
	require.NoError(t, err)
	assert.Equal(t, "one", string(b))
}

func TestImmutableObjectPaths(t *testing.T) {
	fs, _ := setupFs(t)
	ctx := context.Background()

	require.NoError(t, fs.Write(ctx, "/tree/file", []byte("pinned")))
	snap, err := fs.Flush(ctx, "/tree")
	require.NoError(t, err)

	// the object path keeps resolving after the mutable path changes
	require.NoError(t, fs.Write(ctx, "/tree/file", []byte("changed")))

	b, err := fs.Read(ctx, ObjectPath(snap, "file"))
	require.NoError(t, err)
	assert.Equal(t, "pinned", string(b))

	infos, err := fs.List(ctx, ObjectPath(snap))
	require.NoError(t, err)
	require.Len(t, infos, 1)
	assert.Equal(t, "file", infos[0].Name)

	// immutable paths reject writes
	err = fs.Write(ctx, ObjectPath(snap, "file"), []byte("nope"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, status.ErrInvalidPath))
	err = fs.Remove(ctx, ObjectPath(snap, "file"), false)
	require.Error(t, err)
	assert.True(t, errors.Is(err, status.ErrInvalidPath))

	// copying out of an immutable path works
	require.NoError(t, fs.Copy(ctx, ObjectPath(snap, "file"), "/restored"))
	b, err = fs.Read(ctx, "/restored")
	require.NoError(t, err)
	assert.Equal(t, "pinned", string(b))
}

func TestRemove(t *testing.T) {
	fs, _ := setupFs(t)
	ctx := context.Background()

	require.NoError(t, fs.Write(ctx, "/d/f", []byte("f")))

	err := fs.Remove(ctx, "/d", false)
	require.Error(t, err)
	assert.True(t, errors.Is(err, status.ErrIsDir))

	require.NoError(t, fs.Remove(ctx, "/d/f", false))
	has, err := fs.Has(ctx, "/d/f")
	require.NoError(t, err)
	assert.False(t, has)

	require.NoError(t, fs.Remove(ctx, "/d", true))
	has, err = fs.Has(ctx, "/d")
	require.NoError(t, err)
	assert.False(t, has)

	err = fs.Remove(ctx, "/d", true)
	require.Error(t, err)
	assert.True(t, errors.Is(err, status.ErrNotFound))
}

func TestMove(t *testing.T) {
	fs, _ := setupFs(t)
	ctx := context.Background()

	require.NoError(t, fs.Write(ctx, "/from/f", []byte("f")))
	require.NoError(t, fs.Move(ctx, "/from", "/to"))

	has, err := fs.Has(ctx, "/from")
	require.NoError(t, err)
	assert.False(t, has)

	b, err := fs.Read(ctx, "/to/f")
	require.NoError(t, err)
	assert.Equal(t, "f", string(b))

	err = fs.Move(ctx, "/to", "/to/inner")
	require.Error(t, err)
	assert.True(t, errors.Is(err, status.ErrInvalidPath))
}

func TestPathValidation(t *testing.T) {
	fs, _ := setupFs(t)
	ctx := context.Background()

	_, err := fs.Stat(ctx, "relative/path")
	require.Error(t, err)
	assert.True(t, errors.Is(err, status.ErrInvalidPath))

	_, err = fs.Stat(ctx, "")
	require.Error(t, err)
	assert.True(t, errors.Is(err, status.ErrInvalidPath))

	err = fs.Write(ctx, "/", []byte("x"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, status.ErrInvalidPath))

	_, err = fs.Stat(ctx, "/ipfs")
	require.Error(t, err)
	assert.True(t, errors.Is(err, status.ErrInvalidPath))

	_, err = fs.Stat(ctx, "/ipfs/notahexkey")
	require.Error(t, err)
	assert.True(t, errors.Is(err, status.ErrInvalidPath))

	// cleaned paths resolve the same object
	require.NoError(t, fs.Write(ctx, "/a/f", []byte("x")))
	i1, err := fs.Stat(ctx, "/a/f")
	require.NoError(t, err)
	i2, err := fs.Stat(ctx, "/a//f/")
	require.NoError(t, err)
	assert.Equal(t, i1.Key, i2.Key)
}

func TestPersistence(t *testing.T) {
	store := localfs.New(afero.NewMemMapFs())
	ctx := context.Background()

	fs1, err := New(ctx, store)
	require.NoError(t, err)
	require.NoError(t, fs1.Write(ctx, "/kept/file", []byte("survives reopen")))
	want, err := fs1.Flush(ctx, "/")
	require.NoError(t, err)

	fs2, err := New(ctx, store)
	require.NoError(t, err)
	got, err := fs2.Flush(ctx, "/")
	require.NoError(t, err)
	assert.Equal(t, want, got)

	b, err := fs2.Read(ctx, "/kept/file")
	require.NoError(t, err)
	assert.Equal(t, "survives reopen", string(b))
}
