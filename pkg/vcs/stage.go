package vcs

import (
	"context"

	"go.uber.org/zap"

	"github.com/crypto-coin-world/ipvc/pkg/model"
	"github.com/crypto-coin-world/ipvc/pkg/vcs/status"
)

// Add stages the workspace changes under each local path. With no
// paths the whole repository is staged. Reports what changed on the
// stage; an empty report is not an error.
func (r *Repo) Add(ctx context.Context, fsPaths ...string) (model.ChangeSet, error) {
	r.lk.Lock()
	defer r.lk.Unlock()
	branch, err := r.sync(ctx)
	if err != nil {
		return nil, err
	}
	return r.transferAll(ctx, branch, model.TreeWorkspace, model.TreeStage, fsPaths)
}

// Unstage reverts the staged subtrees under each local path back to
// their committed state, by copying from head into stage
func (r *Repo) Unstage(ctx context.Context, fsPaths ...string) (model.ChangeSet, error) {
	r.lk.Lock()
	defer r.lk.Unlock()
	branch, err := r.sync(ctx)
	if err != nil {
		return nil, err
	}
	return r.transferAll(ctx, branch, model.TreeHead, model.TreeStage, fsPaths)
}

// StageStatus reports the staged changes (head vs stage), the unstaged
// changes (stage vs workspace), and whether a merge is pending
func (r *Repo) StageStatus(ctx context.Context) (staged, unstaged model.ChangeSet, mergePending bool, err error) {
	r.lk.Lock()
	defer r.lk.Unlock()
	branch, err := r.sync(ctx)
	if err != nil {
		return nil, nil, false, err
	}
	mergePending, err = r.rt.fs.Has(ctx, model.GetMergeParentMarkerPath(r.rt.ns, r.root, branch))
	if err != nil {
		return nil, nil, false, err
	}
	staged, err = r.diffPaths(ctx,
		model.GetFilesPath(r.rt.ns, r.root, branch, model.TreeHead),
		model.GetFilesPath(r.rt.ns, r.root, branch, model.TreeStage))
	if err != nil {
		return nil, nil, false, err
	}
	unstaged, err = r.diffPaths(ctx,
		model.GetFilesPath(r.rt.ns, r.root, branch, model.TreeStage),
		model.GetFilesPath(r.rt.ns, r.root, branch, model.TreeWorkspace))
	if err != nil {
		return nil, nil, false, err
	}
	return staged, unstaged, mergePending, nil
}

// StageDiff renders the staged changes (head vs stage) as unified
// content diffs. While a merge is pending it reports ErrMergePending
// instead: the next commit will be the merge commit.
func (r *Repo) StageDiff(ctx context.Context) (string, error) {
	r.lk.Lock()
	defer r.lk.Unlock()
	branch, err := r.sync(ctx)
	if err != nil {
		return "", err
	}
	pending, err := r.rt.fs.Has(ctx, model.GetMergeParentMarkerPath(r.rt.ns, r.root, branch))
	if err != nil {
		return "", err
	}
	if pending {
		return "", status.ErrMergePending
	}
	changes, err := r.diffPaths(ctx,
		model.GetFilesPath(r.rt.ns, r.root, branch, model.TreeHead),
		model.GetFilesPath(r.rt.ns, r.root, branch, model.TreeStage))
	if err != nil {
		return "", err
	}
	return r.renderContentDiff(ctx, changes)
}

func (r *Repo) transferAll(ctx context.Context, branch, fromTree, toTree string, fsPaths []string) (model.ChangeSet, error) {
	if len(fsPaths) == 0 {
		fsPaths = []string{r.root}
	}
	all := model.ChangeSet{}
	for _, p := range fsPaths {
		rel, err := r.relPath(p)
		if err != nil {
			return nil, err
		}
		cs, err := r.transferSubtree(ctx, branch, fromTree, toTree, rel)
		if err != nil {
			return nil, err
		}
		all = append(all, cs...)
	}
	all.Sort()
	return all, nil
}

// transferSubtree replaces the subtree under sub in toTree with the
// one from fromTree: reference copy of the file tree, matching
// rewrite of the file metadata. The report lists what changed in
// toTree.
func (r *Repo) transferSubtree(ctx context.Context, branch, fromTree, toTree, sub string) (model.ChangeSet, error) {
	fromPath := joinSub(model.GetFilesPath(r.rt.ns, r.root, branch, fromTree), sub)
	toPath := joinSub(model.GetFilesPath(r.rt.ns, r.root, branch, toTree), sub)

	changes, err := r.diffPaths(ctx, toPath, fromPath)
	if err != nil {
		return nil, err
	}
	// report repository-relative paths even for subtree transfers
	for i := range changes {
		changes[i].Path = joinSub(sub, changes[i].Path)
	}

	toOK, err := r.rt.fs.Has(ctx, toPath)
	if err != nil {
		return nil, err
	}
	if toOK {
		if err := r.rt.fs.Remove(ctx, toPath, true); err != nil {
			return nil, err
		}
	}
	fromOK, err := r.rt.fs.Has(ctx, fromPath)
	if err != nil {
		return nil, err
	}
	if fromOK {
		if err := r.rt.fs.Copy(ctx, fromPath, toPath); err != nil {
			return nil, err
		}
	}

	fromMeta, err := r.readFilesMetadata(ctx, branch, fromTree)
	if err != nil {
		return nil, err
	}
	toMeta, err := r.readFilesMetadata(ctx, branch, toTree)
	if err != nil {
		return nil, err
	}
	if err := r.writeFilesMetadata(ctx, branch, toTree, toMeta.ReplaceUnder(sub, fromMeta)); err != nil {
		return nil, err
	}

	r.rt.l.Debug("transferred subtree",
		zap.String("branch", branch),
		zap.String("from", fromTree),
		zap.String("to", toTree),
		zap.String("sub", sub),
		zap.Int("changes", len(changes)))
	return changes, nil
}
