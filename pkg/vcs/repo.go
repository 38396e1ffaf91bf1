package vcs

import (
	"context"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/crypto-coin-world/ipvc/pkg/dag"
	"github.com/crypto-coin-world/ipvc/pkg/errors"
	mfsstatus "github.com/crypto-coin-world/ipvc/pkg/mfs/status"
	"github.com/crypto-coin-world/ipvc/pkg/model"
	"github.com/crypto-coin-world/ipvc/pkg/vcs/status"
)

// RepoInfo describes one repository known to the namespace
type RepoInfo struct {
	Root string
	Key  dag.Key
}

// Repo is a handle on one repository, bound to its local file system
// root. Handles are cheap; all of them for the same root share a lock.
type Repo struct {
	rt   *Runtime
	root string
	lk   *sync.RWMutex
}

// Root returns the repository's local file system root
func (r *Repo) Root() string {
	return r.root
}

func (rt *Runtime) repoHandle(root string) *Repo {
	return &Repo{rt: rt, root: root, lk: rt.locks.forRepo(model.RepoID(root))}
}

// InitRepo creates a repository rooted at root: a master branch with
// empty head, stage and workspace trees, the active branch pointer,
// and a first workspace sync picking up whatever already sits under
// root. Fails when another repository covers root or sits below it.
func (rt *Runtime) InitRepo(ctx context.Context, root string) (*Repo, error) {
	root, err := cleanAbsPath(root)
	if err != nil {
		return nil, err
	}
	repos, err := rt.ListRepos(ctx)
	if err != nil {
		return nil, err
	}
	for _, ri := range repos {
		switch {
		case ri.Root == root:
			return nil, status.ErrRepoExists.WrapMessage("a repository already exists here at %s", ri.Root)
		case fsPathIsUnder(root, ri.Root):
			return nil, status.ErrRepoExists.WrapMessage("a repository already exists upstream from here at %s", ri.Root)
		case fsPathIsUnder(ri.Root, root):
			return nil, status.ErrRepoExists.WrapMessage("a repository already exists downstream from here at %s", ri.Root)
		}
	}

	r := rt.repoHandle(root)
	r.lk.Lock()
	defer r.lk.Unlock()

	// Empty trees up front: every later diff runs against an existing
	// folder instead of special casing absence.
	for _, tree := range []string{model.TreeStage, model.TreeWorkspace, model.TreeHead} {
		if err := rt.fs.Mkdir(ctx, model.GetFilesPath(rt.ns, root, model.DefaultBranch, tree), true); err != nil {
			return nil, err
		}
	}
	if err := rt.fs.Write(ctx, model.GetActiveBranchPath(rt.ns, root), []byte(model.DefaultBranch)); err != nil {
		return nil, err
	}
	if _, err := r.sync(ctx); err != nil {
		return nil, err
	}
	rt.l.Info("initialized repository", zap.String("root", root))
	return r, nil
}

// OpenRepo finds the repository covering dir. When repositories nest
// in the store from older layouts, the deepest covering root wins.
func (rt *Runtime) OpenRepo(ctx context.Context, dir string) (*Repo, error) {
	root, err := rt.findRepoRoot(ctx, dir)
	if err != nil {
		return nil, err
	}
	if root == "" {
		return nil, status.ErrNoRepo
	}
	return rt.repoHandle(root), nil
}

// ListRepos enumerates every repository in the namespace, sorted by
// local root
func (rt *Runtime) ListRepos(ctx context.Context) ([]RepoInfo, error) {
	reposPath := model.GetReposPath(rt.ns)
	ok, err := rt.fs.Has(ctx, reposPath)
	if err != nil || !ok {
		return nil, err
	}
	entries, err := rt.fs.List(ctx, reposPath)
	if err != nil {
		return nil, err
	}
	out := make([]RepoInfo, 0, len(entries))
	for _, e := range entries {
		root, derr := model.FsRootFromRepoID(e.Name)
		if derr != nil {
			rt.l.Warn("skipping undecodable repo entry", zap.String("name", e.Name), zap.Error(derr))
			continue
		}
		out = append(out, RepoInfo{Root: root, Key: e.Key})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Root < out[j].Root })
	return out, nil
}

// RemoveRepo drops the repository covering dir from the store and
// returns the hash of the removed state. Local files are left alone.
func (rt *Runtime) RemoveRepo(ctx context.Context, dir string) (dag.Key, error) {
	root, err := rt.findRepoRoot(ctx, dir)
	if err != nil {
		return dag.Key{}, err
	}
	if root == "" {
		return dag.Key{}, status.ErrNoRepo.WrapMessage("no ipvc repository at %s", dir)
	}

	r := rt.repoHandle(root)
	r.lk.Lock()
	defer r.lk.Unlock()

	repoPath := model.GetRepoPath(rt.ns, root)
	info, err := rt.fs.Stat(ctx, repoPath)
	if err != nil {
		return dag.Key{}, err
	}
	if err := rt.fs.Remove(ctx, repoPath, true); err != nil {
		return dag.Key{}, err
	}
	rt.l.Info("removed repository", zap.String("root", root), zap.Stringer("state", info.Key))
	return info.Key, nil
}

// MoveRepo relocates a repository: the local directory moves on the
// file system and the stored state moves to the layout name of the new
// root
func (rt *Runtime) MoveRepo(ctx context.Context, from, to string) error {
	fromRoot, err := rt.findRepoRoot(ctx, from)
	if err != nil {
		return err
	}
	if fromRoot == "" {
		return status.ErrNoRepo.WrapMessage("no ipvc repository at %s", from)
	}
	to, err = cleanAbsPath(to)
	if err != nil {
		return err
	}
	repos, err := rt.ListRepos(ctx)
	if err != nil {
		return err
	}
	for _, ri := range repos {
		if ri.Root == fromRoot {
			continue
		}
		if ri.Root == to || fsPathIsUnder(to, ri.Root) || fsPathIsUnder(ri.Root, to) {
			return status.ErrRepoExists.WrapMessage("there is already a repository above or below %s", to)
		}
	}

	r := rt.repoHandle(fromRoot)
	r.lk.Lock()
	defer r.lk.Unlock()

	if err := rt.local.Rename(fromRoot, to); err != nil {
		return status.ErrValidation.WrapMessage("unable to move directory to %s: %v", to, err)
	}
	if err := rt.fs.Move(ctx, model.GetRepoPath(rt.ns, fromRoot), model.GetRepoPath(rt.ns, to)); err != nil {
		return err
	}
	rt.l.Info("moved repository", zap.String("from", fromRoot), zap.String("to", to))
	return nil
}

// Params reads the namespace-global parameters, zero valued when none
// were ever written
func (rt *Runtime) Params(ctx context.Context) (*model.Params, error) {
	b, err := rt.fs.Read(ctx, model.GetParamsPath(rt.ns))
	if err != nil {
		if errors.Is(err, mfsstatus.ErrNotFound) {
			return &model.Params{}, nil
		}
		return nil, err
	}
	return model.UnmarshalParams(b)
}

// SetAuthor records the author stamped into commit metadata
func (rt *Runtime) SetAuthor(ctx context.Context, author string) error {
	p, err := rt.Params(ctx)
	if err != nil {
		return err
	}
	p.Author = author
	b, err := model.MarshalParams(p)
	if err != nil {
		return err
	}
	return rt.fs.Write(ctx, model.GetParamsPath(rt.ns), b)
}

func (rt *Runtime) findRepoRoot(ctx context.Context, dir string) (string, error) {
	dir, err := cleanAbsPath(dir)
	if err != nil {
		return "", err
	}
	repos, err := rt.ListRepos(ctx)
	if err != nil {
		return "", err
	}
	var best string
	for _, ri := range repos {
		if (ri.Root == dir || fsPathIsUnder(dir, ri.Root)) && len(ri.Root) > len(best) {
			best = ri.Root
		}
	}
	return best, nil
}

// relPath resolves fsPath to a slash separated path relative to the
// repository root. The root itself resolves to "".
func (r *Repo) relPath(fsPath string) (string, error) {
	p, err := cleanAbsPath(fsPath)
	if err != nil {
		return "", err
	}
	if p == r.root {
		return "", nil
	}
	if !fsPathIsUnder(p, r.root) {
		return "", status.ErrPathOutsideRepo.WrapMessage("%s", fsPath)
	}
	rel := strings.TrimPrefix(p[len(r.root):], string(filepath.Separator))
	return filepath.ToSlash(rel), nil
}

// absPath turns a repository-relative path back into a local file
// system path
func (r *Repo) absPath(rel string) string {
	if rel == "" {
		return r.root
	}
	return filepath.Join(r.root, filepath.FromSlash(rel))
}

func cleanAbsPath(p string) (string, error) {
	if p == "" || !filepath.IsAbs(p) {
		return "", status.ErrValidation.WrapMessage("path %q is not absolute", p)
	}
	return filepath.Clean(p), nil
}

// fsPathIsUnder reports whether p sits strictly below base
func fsPathIsUnder(p, base string) bool {
	if base == string(filepath.Separator) {
		return p != base
	}
	return strings.HasPrefix(p, base+string(filepath.Separator))
}
