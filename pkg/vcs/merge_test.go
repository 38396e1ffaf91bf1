package vcs

import (
	"context"
	"testing"
	"time"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/crypto-coin-world/ipvc/pkg/errors"
	"github.com/crypto-coin-world/ipvc/pkg/vcs/status"
)

func TestBeginMergeValidation(t *testing.T) {
	_, r := setupRepo(t)
	ctx := context.Background()

	_, err := r.Add(ctx)
	require.NoError(t, err)
	_, err = r.Commit(ctx, "base")
	require.NoError(t, err)

	err = r.BeginMerge(ctx, "master")
	require.Error(t, err)
	assert.True(t, errors.Is(err, status.ErrValidation))

	err = r.BeginMerge(ctx, "ghost")
	require.Error(t, err)
	assert.True(t, errors.Is(err, status.ErrNotFound))

	require.NoError(t, r.CreateBranch(ctx, "feature", "", true))
	require.NoError(t, r.BeginMerge(ctx, "feature"))
	err = r.BeginMerge(ctx, "feature")
	require.Error(t, err)
	assert.True(t, errors.Is(err, status.ErrValidation))
}

func TestAbortMerge(t *testing.T) {
	rt, r := setupRepo(t)
	ctx := context.Background()

	_, err := r.Add(ctx)
	require.NoError(t, err)
	_, err = r.Commit(ctx, "base")
	require.NoError(t, err)
	require.NoError(t, r.CreateBranch(ctx, "feature", "", true))

	require.NoError(t, r.BeginMerge(ctx, "feature"))

	// local edits made during the merge go away on abort
	writeLocal(t, rt, testRoot, "file1.txt", "conflicted\n")
	touchLocal(t, rt, testRoot, "file1.txt", time.Now().Add(2*time.Second))
	writeLocal(t, rt, testRoot, "scratch.txt", "temporary\n")
	_, err = r.Add(ctx)
	require.NoError(t, err)

	require.NoError(t, r.AbortMerge(ctx))

	assert.Equal(t, "file1 content\n", readLocal(t, rt, testRoot, "file1.txt"))
	exists, err := afero.Exists(rt.local, testRoot+"/scratch.txt")
	require.NoError(t, err)
	assert.False(t, exists)

	pending, err := r.MergePending(ctx)
	require.NoError(t, err)
	assert.False(t, pending)

	staged, unstaged, _, err := r.StageStatus(ctx)
	require.NoError(t, err)
	assert.Empty(t, staged)
	assert.Empty(t, unstaged)
}

func TestAbortMergeWithoutMerge(t *testing.T) {
	_, r := setupRepo(t)

	err := r.AbortMerge(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, status.ErrValidation))
}

func TestReplayOffsetLifecycle(t *testing.T) {
	_, r := setupRepo(t)
	ctx := context.Background()

	offset, ok, err := r.ReplayOffset(ctx)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Zero(t, offset)

	err = r.SetReplayOffset(ctx, 2)
	require.Error(t, err)
	assert.True(t, errors.Is(err, status.ErrValidation))

	err = r.CompleteReplay(ctx)
	require.Error(t, err)
	assert.True(t, errors.Is(err, status.ErrValidation))
}

func TestUnimplementedOperations(t *testing.T) {
	_, r := setupRepo(t)
	ctx := context.Background()

	err := r.Merge(ctx, "other")
	require.Error(t, err)
	assert.True(t, errors.Is(err, status.ErrNotImplemented))

	err = r.Pull(ctx, "other", true)
	require.Error(t, err)
	assert.True(t, errors.Is(err, status.ErrNotImplemented))

	err = r.Uncommit(ctx)
	require.Error(t, err)
	assert.True(t, errors.Is(err, status.ErrNotImplemented))
}
