package vcs

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"

	"github.com/crypto-coin-world/ipvc/pkg/mfs"
	"github.com/crypto-coin-world/ipvc/pkg/storage/localfs"
)

const testRoot = "/tmp/ipvc/repo"

func setupRuntime(t testing.TB) *Runtime {
	t.Helper()
	fs, err := mfs.New(context.Background(), localfs.New(afero.NewMemMapFs()))
	require.NoError(t, err)
	return New(fs, LocalFs(afero.NewMemMapFs()), Namespace("/test"))
}

// setupRepo initializes a repository over two seed files
func setupRepo(t testing.TB) (*Runtime, *Repo) {
	t.Helper()
	rt := setupRuntime(t)
	writeLocal(t, rt, testRoot, "file1.txt", "file1 content\n")
	writeLocal(t, rt, testRoot, "dir/file2.txt", "file2 content\n")
	r, err := rt.InitRepo(context.Background(), testRoot)
	require.NoError(t, err)
	return rt, r
}

func writeLocal(t testing.TB, rt *Runtime, root, rel, content string) {
	t.Helper()
	abs := filepath.Join(root, filepath.FromSlash(rel))
	require.NoError(t, rt.local.MkdirAll(filepath.Dir(abs), 0755))
	require.NoError(t, afero.WriteFile(rt.local, abs, []byte(content), 0644))
}

// touchLocal pins a file's mtime so modification detection does not
// hinge on clock resolution
func touchLocal(t testing.TB, rt *Runtime, root, rel string, at time.Time) {
	t.Helper()
	abs := filepath.Join(root, filepath.FromSlash(rel))
	require.NoError(t, rt.local.Chtimes(abs, at, at))
}

func readLocal(t testing.TB, rt *Runtime, root, rel string) string {
	t.Helper()
	b, err := afero.ReadFile(rt.local, filepath.Join(root, filepath.FromSlash(rel)))
	require.NoError(t, err)
	return string(b)
}

func localMtime(t testing.TB, rt *Runtime, root, rel string) time.Time {
	t.Helper()
	fi, err := rt.local.Stat(filepath.Join(root, filepath.FromSlash(rel)))
	require.NoError(t, err)
	return fi.ModTime()
}
