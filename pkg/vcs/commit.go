package vcs

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/crypto-coin-world/ipvc/pkg/dag"
	"github.com/crypto-coin-world/ipvc/pkg/errors"
	"github.com/crypto-coin-world/ipvc/pkg/mfs"
	mfsstatus "github.com/crypto-coin-world/ipvc/pkg/mfs/status"
	"github.com/crypto-coin-world/ipvc/pkg/model"
	"github.com/crypto-coin-world/ipvc/pkg/vcs/status"
)

// Commit turns the stage into a new head commit with the given
// message. The author is taken from the repository params. Returns
// the key of the new commit.
func (r *Repo) Commit(ctx context.Context, message string) (dag.Key, error) {
	r.lk.Lock()
	defer r.lk.Unlock()
	branch, err := r.sync(ctx)
	if err != nil {
		return dag.Key{}, err
	}
	if err := model.ValidateCommitMessage(strings.TrimSpace(message)); err != nil {
		return dag.Key{}, status.ErrValidation.WrapMessage("%v", err)
	}
	params, err := r.rt.Params(ctx)
	if err != nil {
		return dag.Key{}, err
	}
	isMerge, isReplay, err := r.pendingState(ctx, branch)
	if err != nil {
		return dag.Key{}, err
	}
	meta := model.NewCommitMetadata(message, params.Author, isMerge && !isReplay)
	meta.IsReplay = isReplay
	return r.commit(ctx, branch, *meta, isMerge, isReplay)
}

// CommitWithMetadata is Commit with caller-provided metadata. Used by
// replays, which re-commit with the original message, author and
// timestamp rather than minting fresh ones.
func (r *Repo) CommitWithMetadata(ctx context.Context, meta model.CommitMetadata) (dag.Key, error) {
	r.lk.Lock()
	defer r.lk.Unlock()
	branch, err := r.sync(ctx)
	if err != nil {
		return dag.Key{}, err
	}
	if err := model.ValidateCommitMessage(strings.TrimSpace(meta.Message)); err != nil {
		return dag.Key{}, status.ErrValidation.WrapMessage("%v", err)
	}
	isMerge, isReplay, err := r.pendingState(ctx, branch)
	if err != nil {
		return dag.Key{}, err
	}
	meta.IsMerge = isMerge && !isReplay
	meta.IsReplay = isReplay
	return r.commit(ctx, branch, meta, isMerge, isReplay)
}

// Uncommit will rewind head to its parent commit once implemented
func (r *Repo) Uncommit(ctx context.Context) error {
	return status.ErrNotImplemented.WrapMessage("uncommit")
}

// pendingState derives the nature of the next commit from the branch
// markers: a merge parent marker makes it a merge commit, a replay
// offset makes it a replay commit instead.
func (r *Repo) pendingState(ctx context.Context, branch string) (isMerge, isReplay bool, err error) {
	isMerge, err = r.rt.fs.Has(ctx, model.GetMergeParentMarkerPath(r.rt.ns, r.root, branch))
	if err != nil {
		return false, false, err
	}
	isReplay, err = r.rt.fs.Has(ctx, model.GetReplayOffsetPath(r.rt.ns, r.root, branch))
	if err != nil {
		return false, false, err
	}
	return isMerge, isReplay, nil
}

func (r *Repo) commit(ctx context.Context, branch string, meta model.CommitMetadata, isMerge, isReplay bool) (dag.Key, error) {
	headFiles := model.GetFilesPath(r.rt.ns, r.root, branch, model.TreeHead)
	stageFiles := model.GetFilesPath(r.rt.ns, r.root, branch, model.TreeStage)

	changes, err := r.diffPaths(ctx, headFiles, stageFiles)
	if err != nil {
		return dag.Key{}, err
	}
	if len(changes) == 0 && !isMerge && !isReplay {
		return dag.Key{}, status.ErrNothingToCommit
	}

	headTree := model.GetTreePath(r.rt.ns, r.root, branch, model.TreeHead)
	stageTree := model.GetTreePath(r.rt.ns, r.root, branch, model.TreeStage)
	headInfo, err := r.rt.fs.Stat(ctx, headTree)
	if err != nil {
		return dag.Key{}, err
	}
	stageInfo, err := r.rt.fs.Stat(ctx, stageTree)
	if err != nil {
		return dag.Key{}, err
	}
	// The stage tree still carries the previous commit's metadata and
	// parent links, so equal keys mean nothing was staged since.
	if headInfo.Key == stageInfo.Key {
		return dag.Key{}, status.ErrNothingToCommit
	}

	prevHead := headInfo.Key
	if err := r.rt.fs.Remove(ctx, headTree, true); err != nil {
		return dag.Key{}, err
	}
	if err := r.rt.fs.Copy(ctx, stageTree, headTree); err != nil {
		return dag.Key{}, err
	}
	parentPath := model.GetHeadParentPath(r.rt.ns, r.root, branch)
	if err := r.rt.fs.Copy(ctx, mfs.ObjectPath(prevHead), parentPath); err != nil {
		return dag.Key{}, err
	}

	marker := model.GetMergeParentMarkerPath(r.rt.ns, r.root, branch)
	if isMerge && !isReplay {
		if err := r.rt.fs.Copy(ctx, marker, model.GetHeadMergeParentPath(r.rt.ns, r.root, branch)); err != nil {
			return dag.Key{}, err
		}
		for _, pth := range []string{
			marker,
			model.GetStageBackupPath(r.rt.ns, r.root, branch),
			model.GetWorkspaceBackupPath(r.rt.ns, r.root, branch),
		} {
			if err := r.rt.fs.Remove(ctx, pth, true); err != nil && !errors.Is(err, mfsstatus.ErrNotFound) {
				return dag.Key{}, err
			}
		}
	}
	// A replay keeps its markers: they carry the state for the commits
	// still to be replayed, and CompleteReplay clears them.

	blob, err := model.MarshalCommitMetadata(&meta)
	if err != nil {
		return dag.Key{}, err
	}
	if err := r.rt.fs.Write(ctx, model.GetCommitMetadataPath(r.rt.ns, r.root, branch), blob); err != nil {
		return dag.Key{}, err
	}

	newInfo, err := r.rt.fs.Stat(ctx, headTree)
	if err != nil {
		return dag.Key{}, err
	}
	r.rt.l.Info("committed",
		zap.String("branch", branch),
		zap.Stringer("commit", newInfo.Key),
		zap.Bool("merge", meta.IsMerge),
		zap.Bool("replay", meta.IsReplay))
	return newInfo.Key, nil
}
