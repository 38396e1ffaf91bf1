package vcs

import (
	"context"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/crypto-coin-world/ipvc/pkg/errors"
	mfsstatus "github.com/crypto-coin-world/ipvc/pkg/mfs/status"
	"github.com/crypto-coin-world/ipvc/pkg/model"
	"github.com/crypto-coin-world/ipvc/pkg/vcs/status"
)

// MergePending reports whether a merge is in progress on the active
// branch
func (r *Repo) MergePending(ctx context.Context) (bool, error) {
	r.lk.RLock()
	defer r.lk.RUnlock()
	branch, err := r.activeBranch(ctx)
	if err != nil {
		return false, err
	}
	return r.rt.fs.Has(ctx, model.GetMergeParentMarkerPath(r.rt.ns, r.root, branch))
}

// BeginMerge opens a merge from another branch: records their head as
// the pending merge parent and snapshots the stage and workspace so
// the merge can be aborted. The next commit becomes the merge commit.
func (r *Repo) BeginMerge(ctx context.Context, their string) error {
	r.lk.Lock()
	defer r.lk.Unlock()
	branch, err := r.sync(ctx)
	if err != nil {
		return err
	}
	return r.beginMergeState(ctx, branch, their)
}

// BeginReplay opens a replay of another branch's commits on top of
// this one: merge bookkeeping plus an offset tracking how many of
// their commits have been replayed so far
func (r *Repo) BeginReplay(ctx context.Context, their string, offset int) error {
	r.lk.Lock()
	defer r.lk.Unlock()
	branch, err := r.sync(ctx)
	if err != nil {
		return err
	}
	if err := r.beginMergeState(ctx, branch, their); err != nil {
		return err
	}
	return r.writeReplayOffset(ctx, branch, offset)
}

// SetReplayOffset advances the replay position. Fails when no replay
// is in progress.
func (r *Repo) SetReplayOffset(ctx context.Context, offset int) error {
	r.lk.Lock()
	defer r.lk.Unlock()
	branch, err := r.activeBranch(ctx)
	if err != nil {
		return err
	}
	ok, err := r.rt.fs.Has(ctx, model.GetReplayOffsetPath(r.rt.ns, r.root, branch))
	if err != nil {
		return err
	}
	if !ok {
		return status.ErrValidation.WrapMessage("no replay in progress")
	}
	return r.writeReplayOffset(ctx, branch, offset)
}

// ReplayOffset returns the replay position and whether a replay is in
// progress at all
func (r *Repo) ReplayOffset(ctx context.Context) (int, bool, error) {
	r.lk.RLock()
	defer r.lk.RUnlock()
	branch, err := r.activeBranch(ctx)
	if err != nil {
		return 0, false, err
	}
	b, err := r.rt.fs.Read(ctx, model.GetReplayOffsetPath(r.rt.ns, r.root, branch))
	if err != nil {
		if errors.Is(err, mfsstatus.ErrNotFound) {
			return 0, false, nil
		}
		return 0, false, err
	}
	offset, err := strconv.Atoi(strings.TrimSpace(string(b)))
	if err != nil {
		return 0, false, status.ErrValidation.WrapMessage("replay offset %q: %v", string(b), err)
	}
	return offset, true, nil
}

// CompleteReplay closes a replay, dropping the offset, the merge
// parent marker and the backups. The commits made during the replay
// stay.
func (r *Repo) CompleteReplay(ctx context.Context) error {
	r.lk.Lock()
	defer r.lk.Unlock()
	branch, err := r.activeBranch(ctx)
	if err != nil {
		return err
	}
	ok, err := r.rt.fs.Has(ctx, model.GetReplayOffsetPath(r.rt.ns, r.root, branch))
	if err != nil {
		return err
	}
	if !ok {
		return status.ErrValidation.WrapMessage("no replay in progress")
	}
	if err := r.clearMergeState(ctx, branch); err != nil {
		return err
	}
	r.rt.l.Info("completed replay", zap.String("branch", branch))
	return nil
}

// AbortMerge rolls a pending merge back: the stage and workspace
// return to their snapshots, the working copy is restored, and the
// merge bookkeeping goes away
func (r *Repo) AbortMerge(ctx context.Context) error {
	r.lk.Lock()
	defer r.lk.Unlock()
	branch, err := r.activeBranch(ctx)
	if err != nil {
		return err
	}
	ok, err := r.rt.fs.Has(ctx, model.GetMergeParentMarkerPath(r.rt.ns, r.root, branch))
	if err != nil {
		return err
	}
	if !ok {
		return status.ErrValidation.WrapMessage("no merge in progress")
	}
	restores := []struct{ from, to string }{
		{model.GetStageBackupPath(r.rt.ns, r.root, branch), model.GetTreePath(r.rt.ns, r.root, branch, model.TreeStage)},
		{model.GetWorkspaceBackupPath(r.rt.ns, r.root, branch), model.GetTreePath(r.rt.ns, r.root, branch, model.TreeWorkspace)},
	}
	for _, mv := range restores {
		ok, err := r.rt.fs.Has(ctx, mv.from)
		if err != nil {
			return err
		}
		if !ok {
			continue
		}
		if err := r.rt.fs.Remove(ctx, mv.to, true); err != nil && !errors.Is(err, mfsstatus.ErrNotFound) {
			return err
		}
		if err := r.rt.fs.Copy(ctx, mv.from, mv.to); err != nil {
			return err
		}
	}
	if err := r.restoreLocal(ctx, branch, true); err != nil {
		return err
	}
	if err := r.clearMergeState(ctx, branch); err != nil {
		return err
	}
	r.rt.l.Info("aborted merge", zap.String("branch", branch))
	return nil
}

// Merge will run a three way merge against another branch once
// implemented. BeginMerge, the stage and Commit cover the manual
// path today.
func (r *Repo) Merge(ctx context.Context, their string) error {
	return status.ErrNotImplemented.WrapMessage("merge")
}

// Pull will merge or replay a branch into the active one once
// implemented
func (r *Repo) Pull(ctx context.Context, their string, replay bool) error {
	return status.ErrNotImplemented.WrapMessage("pull")
}

func (r *Repo) beginMergeState(ctx context.Context, branch, their string) error {
	if their == branch {
		return status.ErrValidation.WrapMessage("cannot merge branch %q into itself", branch)
	}
	marker := model.GetMergeParentMarkerPath(r.rt.ns, r.root, branch)
	pending, err := r.rt.fs.Has(ctx, marker)
	if err != nil {
		return err
	}
	if pending {
		return status.ErrValidation.WrapMessage("a merge is already in progress on %q", branch)
	}
	ok, err := r.branchExists(ctx, their)
	if err != nil {
		return err
	}
	if !ok {
		return status.ErrNotFound.WrapMessage("no branch named %q", their)
	}
	if err := r.rt.fs.Copy(ctx, model.GetTreePath(r.rt.ns, r.root, their, model.TreeHead), marker); err != nil {
		return err
	}
	if err := r.rt.fs.Copy(ctx,
		model.GetTreePath(r.rt.ns, r.root, branch, model.TreeStage),
		model.GetStageBackupPath(r.rt.ns, r.root, branch)); err != nil {
		return err
	}
	if err := r.rt.fs.Copy(ctx,
		model.GetTreePath(r.rt.ns, r.root, branch, model.TreeWorkspace),
		model.GetWorkspaceBackupPath(r.rt.ns, r.root, branch)); err != nil {
		return err
	}
	r.rt.l.Info("merge opened",
		zap.String("branch", branch),
		zap.String("their", their))
	return nil
}

func (r *Repo) writeReplayOffset(ctx context.Context, branch string, offset int) error {
	return r.rt.fs.Write(ctx,
		model.GetReplayOffsetPath(r.rt.ns, r.root, branch),
		[]byte(strconv.Itoa(offset)))
}

// clearMergeState drops every merge marker that exists, tolerating
// ones that do not
func (r *Repo) clearMergeState(ctx context.Context, branch string) error {
	for _, pth := range []string{
		model.GetReplayOffsetPath(r.rt.ns, r.root, branch),
		model.GetMergeParentMarkerPath(r.rt.ns, r.root, branch),
		model.GetStageBackupPath(r.rt.ns, r.root, branch),
		model.GetWorkspaceBackupPath(r.rt.ns, r.root, branch),
	} {
		if err := r.rt.fs.Remove(ctx, pth, true); err != nil && !errors.Is(err, mfsstatus.ErrNotFound) {
			return err
		}
	}
	return nil
}
