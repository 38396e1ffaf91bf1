package vcs

import (
	"context"

	"github.com/crypto-coin-world/ipvc/pkg/dag"
	"github.com/crypto-coin-world/ipvc/pkg/mfs"
	"github.com/crypto-coin-world/ipvc/pkg/model"
	"github.com/crypto-coin-world/ipvc/pkg/vcs/status"
)

func parseRef(refpath string) (model.RefSpec, error) {
	spec, err := model.ParseRefPath(refpath)
	if err != nil {
		return model.RefSpec{}, status.ErrValidation.WrapMessage("ref %q: %v", refpath, err)
	}
	return spec, nil
}

func (r *Repo) branchExists(ctx context.Context, name string) (bool, error) {
	return r.rt.fs.Has(ctx, model.GetBranchPath(r.rt.ns, r.root, name))
}

// resolveFiles maps a parsed ref onto the store path of the file tree
// it addresses. Tree refs resolve on branch, the active branch.
// Branch-or-hash bases consult the branch list first: a known branch
// name wins, then a well formed key addresses an immutable commit,
// anything else fails validation.
func (r *Repo) resolveFiles(ctx context.Context, branch string, spec model.RefSpec) (string, error) {
	if spec.IsTree() {
		return joinSub(model.GetFilesPath(r.rt.ns, r.root, branch, spec.TreeSpec()), spec.Sub), nil
	}
	ok, err := r.branchExists(ctx, spec.Base)
	if err != nil {
		return "", err
	}
	if ok {
		return joinSub(model.GetFilesPath(r.rt.ns, r.root, spec.Base, model.TreeHead), spec.Sub), nil
	}
	if dag.IsKeyString(spec.Base) {
		key, kerr := dag.KeyFromString(spec.Base)
		if kerr != nil {
			return "", status.ErrValidation.WrapMessage("ref %q: %v", spec.Base, kerr)
		}
		return mfs.ObjectPath(key, model.CommitFilesPath(spec.Sub)), nil
	}
	return "", status.ErrValidation.WrapMessage("%q is neither a branch nor a commit", spec.Base)
}

// resolveCommit maps a parsed ref onto the store path of a commit
// root. Refs with subpaths do not name commits.
func (r *Repo) resolveCommit(ctx context.Context, branch string, spec model.RefSpec) (string, error) {
	if spec.Sub != "" {
		return "", status.ErrValidation.WrapMessage("ref %q does not name a commit", spec.String())
	}
	if spec.IsTree() {
		return model.GetTreePath(r.rt.ns, r.root, branch, spec.TreeSpec()), nil
	}
	ok, err := r.branchExists(ctx, spec.Base)
	if err != nil {
		return "", err
	}
	if ok {
		return model.GetTreePath(r.rt.ns, r.root, spec.Base, model.TreeHead), nil
	}
	if dag.IsKeyString(spec.Base) {
		key, kerr := dag.KeyFromString(spec.Base)
		if kerr != nil {
			return "", status.ErrValidation.WrapMessage("ref %q: %v", spec.Base, kerr)
		}
		return mfs.ObjectPath(key), nil
	}
	return "", status.ErrValidation.WrapMessage("%q is neither a branch nor a commit", spec.Base)
}

func joinSub(pth, sub string) string {
	switch {
	case sub == "":
		return pth
	case pth == "":
		return sub
	}
	return pth + "/" + sub
}
