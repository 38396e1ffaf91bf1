package vcs

import (
	"context"

	"github.com/crypto-coin-world/ipvc/pkg/dag"
	"github.com/crypto-coin-world/ipvc/pkg/errors"
	"github.com/crypto-coin-world/ipvc/pkg/mfs"
	mfsstatus "github.com/crypto-coin-world/ipvc/pkg/mfs/status"
	"github.com/crypto-coin-world/ipvc/pkg/model"
)

// CommitInfo is one history entry: the commit root, the key of its
// file tree, and its metadata
type CommitInfo struct {
	Key      dag.Key
	FilesKey dag.Key
	Meta     *model.CommitMetadata
}

// History walks the active branch's commits from the tip backwards
// along first parents. Merge second parents are recorded in the
// commits but not traversed. A branch with no commits yet has empty
// history.
func (r *Repo) History(ctx context.Context) ([]CommitInfo, error) {
	r.lk.RLock()
	defer r.lk.RUnlock()
	branch, err := r.activeBranch(ctx)
	if err != nil {
		return nil, err
	}
	head, err := r.rt.fs.Stat(ctx, model.GetTreePath(r.rt.ns, r.root, branch, model.TreeHead))
	if err != nil {
		return nil, err
	}

	var out []CommitInfo
	cur := head.Key
	for {
		blob, err := r.rt.fs.Read(ctx, mfs.ObjectPath(cur, model.CommitMetadataName()))
		if err != nil {
			// the tree before the first commit carries no metadata
			if errors.Is(err, mfsstatus.ErrNotFound) {
				return out, nil
			}
			return nil, err
		}
		meta, err := model.UnmarshalCommitMetadata(blob)
		if err != nil {
			return nil, err
		}
		files, err := r.rt.fs.Stat(ctx, mfs.ObjectPath(cur, model.CommitFilesPath("")))
		if err != nil {
			return nil, err
		}
		out = append(out, CommitInfo{Key: cur, FilesKey: files.Key, Meta: meta})

		parent, err := r.rt.fs.Stat(ctx, mfs.ObjectPath(cur, model.CommitParentName()))
		if err != nil {
			if errors.Is(err, mfsstatus.ErrNotFound) {
				return out, nil
			}
			return nil, err
		}
		cur = parent.Key
	}
}
