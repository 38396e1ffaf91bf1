package vcs

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/crypto-coin-world/ipvc/pkg/errors"
	"github.com/crypto-coin-world/ipvc/pkg/model"
	"github.com/crypto-coin-world/ipvc/pkg/vcs/status"
)

func TestAddAll(t *testing.T) {
	_, r := setupRepo(t)
	ctx := context.Background()

	changes, err := r.Add(ctx)
	require.NoError(t, err)
	require.Len(t, changes, 2)
	assert.Equal(t, model.ChangeAdded, changes[0].Type)
	assert.Equal(t, "dir/file2.txt", changes[0].Path)
	assert.Equal(t, "file1.txt", changes[1].Path)

	staged, unstaged, _, err := r.StageStatus(ctx)
	require.NoError(t, err)
	require.Len(t, staged, 2)
	assert.Empty(t, unstaged)

	// adding again is a no-op
	changes, err = r.Add(ctx)
	require.NoError(t, err)
	assert.Empty(t, changes)
}

func TestAddPath(t *testing.T) {
	_, r := setupRepo(t)
	ctx := context.Background()

	changes, err := r.Add(ctx, testRoot+"/dir")
	require.NoError(t, err)
	require.Len(t, changes, 1)
	assert.Equal(t, "dir/file2.txt", changes[0].Path)

	staged, unstaged, _, err := r.StageStatus(ctx)
	require.NoError(t, err)
	require.Len(t, staged, 1)
	assert.Equal(t, "dir/file2.txt", staged[0].Path)
	require.Len(t, unstaged, 1)
	assert.Equal(t, "file1.txt", unstaged[0].Path)
}

func TestAddOutsideRepo(t *testing.T) {
	_, r := setupRepo(t)

	_, err := r.Add(context.Background(), "/somewhere/else")
	require.Error(t, err)
	assert.True(t, errors.Is(err, status.ErrPathOutsideRepo))
}

func TestUnstage(t *testing.T) {
	_, r := setupRepo(t)
	ctx := context.Background()

	_, err := r.Add(ctx)
	require.NoError(t, err)

	changes, err := r.Unstage(ctx)
	require.NoError(t, err)
	require.Len(t, changes, 2)
	assert.Equal(t, model.ChangeRemoved, changes[0].Type)
	assert.Equal(t, "dir/file2.txt", changes[0].Path)

	staged, unstaged, _, err := r.StageStatus(ctx)
	require.NoError(t, err)
	assert.Empty(t, staged)
	require.Len(t, unstaged, 2)
}

func TestAddRemoval(t *testing.T) {
	rt, r := setupRepo(t)
	ctx := context.Background()

	_, err := r.Add(ctx)
	require.NoError(t, err)
	_, err = r.Commit(ctx, "base")
	require.NoError(t, err)

	require.NoError(t, rt.local.Remove(testRoot+"/file1.txt"))
	changes, err := r.Add(ctx)
	require.NoError(t, err)
	require.Len(t, changes, 1)
	assert.Equal(t, model.ChangeRemoved, changes[0].Type)
	assert.Equal(t, "file1.txt", changes[0].Path)

	staged, unstaged, _, err := r.StageStatus(ctx)
	require.NoError(t, err)
	require.Len(t, staged, 1)
	assert.Equal(t, model.ChangeRemoved, staged[0].Type)
	assert.Empty(t, unstaged)
}

func TestStageDiff(t *testing.T) {
	rt, r := setupRepo(t)
	ctx := context.Background()

	_, err := r.Add(ctx)
	require.NoError(t, err)
	_, err = r.Commit(ctx, "base")
	require.NoError(t, err)

	writeLocal(t, rt, testRoot, "file1.txt", "changed content\n")
	touchLocal(t, rt, testRoot, "file1.txt", time.Now().Add(time.Second))
	_, err = r.Add(ctx)
	require.NoError(t, err)

	diff, err := r.StageDiff(ctx)
	require.NoError(t, err)
	assert.Contains(t, diff, "--- file1.txt")
	assert.Contains(t, diff, "+++ file1.txt")
	assert.Contains(t, diff, "-file1 content")
	assert.Contains(t, diff, "+changed content")
}

func TestStageDiffDuringMerge(t *testing.T) {
	_, r := setupRepo(t)
	ctx := context.Background()

	_, err := r.Add(ctx)
	require.NoError(t, err)
	_, err = r.Commit(ctx, "base")
	require.NoError(t, err)
	require.NoError(t, r.CreateBranch(ctx, "feature", "", true))
	require.NoError(t, r.BeginMerge(ctx, "feature"))

	_, err = r.StageDiff(ctx)
	require.Error(t, err)
	assert.True(t, errors.Is(err, status.ErrMergePending))

	// the pending state shows up in the status report as well
	_, _, pending, err := r.StageStatus(ctx)
	require.NoError(t, err)
	assert.True(t, pending)
}
