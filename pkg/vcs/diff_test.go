package vcs

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/crypto-coin-world/ipvc/pkg/model"
)

func TestDiffRefsAgainstStage(t *testing.T) {
	_, r := setupRepo(t)
	ctx := context.Background()

	// an empty from ref diffs against the stage
	changes, err := r.DiffRefs(ctx, "@workspace", "")
	require.NoError(t, err)
	require.Len(t, changes, 2)
	assert.Equal(t, model.ChangeAdded, changes[0].Type)
	assert.Equal(t, "dir/file2.txt", changes[0].Path)
	assert.Equal(t, "file1.txt", changes[1].Path)
}

func TestDiffRefsBetweenCommits(t *testing.T) {
	rt, r := setupRepo(t)
	ctx := context.Background()

	_, err := r.Add(ctx)
	require.NoError(t, err)
	_, err = r.Commit(ctx, "first")
	require.NoError(t, err)

	writeLocal(t, rt, testRoot, "file1.txt", "second version\n")
	touchLocal(t, rt, testRoot, "file1.txt", time.Now().Add(time.Second))
	writeLocal(t, rt, testRoot, "extra.txt", "new file\n")
	_, err = r.Add(ctx)
	require.NoError(t, err)
	_, err = r.Commit(ctx, "second")
	require.NoError(t, err)

	changes, err := r.DiffRefs(ctx, "@head", "@head~")
	require.NoError(t, err)
	require.Len(t, changes, 2)
	assert.Equal(t, model.ChangeAdded, changes[0].Type)
	assert.Equal(t, "extra.txt", changes[0].Path)
	assert.Equal(t, model.ChangeModified, changes[1].Type)
	assert.Equal(t, "file1.txt", changes[1].Path)

	// the reverse direction flips the report
	reverse, err := r.DiffRefs(ctx, "@head~", "@head")
	require.NoError(t, err)
	require.Len(t, reverse, 2)
	assert.Equal(t, model.ChangeRemoved, reverse[0].Type)
	assert.Equal(t, "extra.txt", reverse[0].Path)

	same, err := r.DiffRefs(ctx, "@head", "@head")
	require.NoError(t, err)
	assert.Empty(t, same)
}

func TestDiffRefsSubPath(t *testing.T) {
	rt, r := setupRepo(t)
	ctx := context.Background()

	_, err := r.Add(ctx)
	require.NoError(t, err)
	_, err = r.Commit(ctx, "first")
	require.NoError(t, err)

	writeLocal(t, rt, testRoot, "dir/file2.txt", "changed\n")
	touchLocal(t, rt, testRoot, "dir/file2.txt", time.Now().Add(time.Second))

	changes, err := r.DiffRefs(ctx, "@workspace/dir", "@head/dir")
	require.NoError(t, err)
	require.Len(t, changes, 1)
	assert.Equal(t, model.ChangeModified, changes[0].Type)
	assert.Equal(t, "file2.txt", changes[0].Path)
}

func TestDiffRefsByHash(t *testing.T) {
	_, r := setupRepo(t)
	ctx := context.Background()

	_, err := r.Add(ctx)
	require.NoError(t, err)
	_, err = r.Commit(ctx, "first")
	require.NoError(t, err)

	hist, err := r.History(ctx)
	require.NoError(t, err)
	require.Len(t, hist, 1)

	changes, err := r.DiffRefs(ctx, "@head", "@"+hist[0].Key.String())
	require.NoError(t, err)
	assert.Empty(t, changes)
}

func TestDiffContentRendering(t *testing.T) {
	rt, r := setupRepo(t)
	ctx := context.Background()

	_, err := r.Add(ctx)
	require.NoError(t, err)
	_, err = r.Commit(ctx, "first")
	require.NoError(t, err)

	writeLocal(t, rt, testRoot, "file1.txt", "second version\n")
	touchLocal(t, rt, testRoot, "file1.txt", time.Now().Add(time.Second))
	writeLocal(t, rt, testRoot, "extra.txt", "new file\n")
	require.NoError(t, rt.local.Remove(testRoot+"/dir/file2.txt"))
	_, err = r.Add(ctx)
	require.NoError(t, err)
	_, err = r.Commit(ctx, "second")
	require.NoError(t, err)

	out, err := r.DiffContent(ctx, "@head", "@head~")
	require.NoError(t, err)

	// modified files diff side by side
	assert.Contains(t, out, "--- file1.txt")
	assert.Contains(t, out, "+++ file1.txt")
	assert.Contains(t, out, "-file1 content")
	assert.Contains(t, out, "+second version")

	// added and removed files diff against /dev/null
	assert.Contains(t, out, "--- /dev/null")
	assert.Contains(t, out, "+++ extra.txt")
	assert.Contains(t, out, "+new file")
	assert.Contains(t, out, "--- dir/file2.txt")
	assert.Contains(t, out, "+++ /dev/null")
	assert.Contains(t, out, "-file2 content")
}

func TestChangeSetRendering(t *testing.T) {
	_, r := setupRepo(t)
	ctx := context.Background()

	changes, err := r.DiffRefs(ctx, "@workspace", "@stage")
	require.NoError(t, err)
	require.Len(t, changes, 2)

	rendered := changes.Render()
	assert.Contains(t, rendered, "+ dir/file2.txt ")
	assert.Contains(t, rendered, "+ file1.txt ")
}
