package vcs

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/crypto-coin-world/ipvc/pkg/errors"
	mfsstatus "github.com/crypto-coin-world/ipvc/pkg/mfs/status"
	"github.com/crypto-coin-world/ipvc/pkg/model"
	"github.com/crypto-coin-world/ipvc/pkg/vcs/status"
)

// CreateBranch makes a new branch from a ref and checks it out unless
// noCheckout is set. An empty fromRef branches from the current head,
// carrying the stage and workspace along; any other ref seeds all
// three trees from that commit.
func (r *Repo) CreateBranch(ctx context.Context, name, fromRef string, noCheckout bool) error {
	r.lk.Lock()
	defer r.lk.Unlock()
	branch, err := r.sync(ctx)
	if err != nil {
		return err
	}
	if err := model.ValidateBranchName(name); err != nil {
		return status.ErrValidation.WrapMessage("branch name %q: %v", name, err)
	}
	ok, err := r.branchExists(ctx, name)
	if err != nil {
		return err
	}
	if ok {
		return status.ErrValidation.WrapMessage("branch %q already exists", name)
	}

	if fromRef == "" {
		fromRef = "@" + model.TreeHead
	}
	spec, err := parseRef(fromRef)
	if err != nil {
		return err
	}
	if spec.Base == model.TreeHead && len(spec.Hops) == 0 && spec.Sub == "" {
		// Branching from the tip carries the whole branch state over,
		// uncommitted stage and workspace included.
		if err := r.rt.fs.Copy(ctx,
			model.GetBranchPath(r.rt.ns, r.root, branch),
			model.GetBranchPath(r.rt.ns, r.root, name)); err != nil {
			return err
		}
	} else {
		commitPath, err := r.resolveCommit(ctx, branch, spec)
		if err != nil {
			return err
		}
		ok, err := r.rt.fs.Has(ctx, commitPath)
		if err != nil {
			return err
		}
		if !ok {
			return status.ErrNotFound.WrapMessage("no such commit %q", fromRef)
		}
		// The head tree keeps the full commit so history keeps
		// walking; stage and workspace only need the bundle.
		if err := r.rt.fs.Copy(ctx, commitPath, model.GetTreePath(r.rt.ns, r.root, name, model.TreeHead)); err != nil {
			return err
		}
		bundle := commitPath + "/" + model.CommitBundlePath()
		for _, tree := range []string{model.TreeStage, model.TreeWorkspace} {
			if err := r.rt.fs.Copy(ctx, bundle, model.GetBundlePath(r.rt.ns, r.root, name, tree)); err != nil {
				return err
			}
		}
	}
	r.rt.l.Info("created branch",
		zap.String("branch", name),
		zap.String("from", fromRef))

	if noCheckout {
		return nil
	}
	return r.checkoutLocked(ctx, name, true)
}

// Checkout switches the working copy over to another branch. With
// withTimestamps, restored files get their recorded mtimes back so a
// later checkout of the first branch does not see them all modified.
func (r *Repo) Checkout(ctx context.Context, name string, withTimestamps bool) error {
	r.lk.Lock()
	defer r.lk.Unlock()
	if _, err := r.sync(ctx); err != nil {
		return err
	}
	return r.checkoutLocked(ctx, name, withTimestamps)
}

func (r *Repo) checkoutLocked(ctx context.Context, name string, withTimestamps bool) error {
	ok, err := r.branchExists(ctx, name)
	if err != nil {
		return err
	}
	if !ok {
		return status.ErrNotFound.WrapMessage("no branch named %q", name)
	}
	if err := r.rt.fs.Write(ctx, model.GetActiveBranchPath(r.rt.ns, r.root), []byte(name)); err != nil {
		return err
	}
	if err := r.restoreLocal(ctx, name, withTimestamps); err != nil {
		return err
	}
	r.rt.l.Info("checked out branch", zap.String("branch", name))
	return nil
}

// ActiveBranch names the branch the working copy is on
func (r *Repo) ActiveBranch(ctx context.Context) (string, error) {
	r.lk.RLock()
	defer r.lk.RUnlock()
	return r.activeBranch(ctx)
}

// ListBranches names every branch of the repository, sorted
func (r *Repo) ListBranches(ctx context.Context) ([]string, error) {
	r.lk.RLock()
	defer r.lk.RUnlock()
	entries, err := r.rt.fs.List(ctx, model.GetBranchesPath(r.rt.ns, r.root))
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name)
	}
	return names, nil
}

// Show renders what a ref points at: directory refs list their
// entries, file refs return their content, and browser mode returns
// a gateway URL for the object instead
func (r *Repo) Show(ctx context.Context, refpath string, browser bool) (string, error) {
	r.lk.RLock()
	defer r.lk.RUnlock()
	spec, err := parseRef(refpath)
	if err != nil {
		return "", err
	}
	branch, err := r.activeBranch(ctx)
	if err != nil {
		return "", err
	}
	pth, err := r.resolveFiles(ctx, branch, spec)
	if err != nil {
		return "", err
	}
	info, err := r.rt.fs.Stat(ctx, pth)
	if err != nil {
		if errors.Is(err, mfsstatus.ErrNotFound) {
			return "", status.ErrNotFound.WrapMessage("no such ref %q", refpath)
		}
		return "", err
	}
	if browser {
		return r.rt.gateway + "/ipfs/" + info.Key.String(), nil
	}
	if info.Dir {
		entries, err := r.rt.fs.List(ctx, pth)
		if err != nil {
			return "", err
		}
		names := make([]string, 0, len(entries))
		for _, e := range entries {
			names = append(names, e.Name)
		}
		return strings.Join(names, "\n"), nil
	}
	data, err := r.rt.fs.Read(ctx, pth)
	if err != nil {
		return "", err
	}
	return string(data), nil
}
