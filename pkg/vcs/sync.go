package vcs

import (
	"context"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/spf13/afero"
	"go.uber.org/zap"

	"github.com/crypto-coin-world/ipvc/pkg/errors"
	mfsstatus "github.com/crypto-coin-world/ipvc/pkg/mfs/status"
	"github.com/crypto-coin-world/ipvc/pkg/model"
)

// sync brings the active branch's workspace tree in line with the
// local file system. The stored per-file mtimes decide what needs
// rewriting, so unchanged files are never re-read or re-hashed.
// Returns the active branch. Callers hold the repository lock.
func (r *Repo) sync(ctx context.Context) (string, error) {
	branch, err := r.activeBranch(ctx)
	if err != nil {
		return "", err
	}
	meta, err := r.readFilesMetadata(ctx, branch, model.TreeWorkspace)
	if err != nil {
		return "", err
	}
	added, removed, modified, err := r.workspaceChanges("", meta, true)
	if err != nil {
		return "", err
	}

	filesRoot := model.GetFilesPath(r.rt.ns, r.root, branch, model.TreeWorkspace)
	for _, rel := range removed {
		if err := r.rt.fs.Remove(ctx, filesRoot+"/"+rel, true); err != nil && !errors.Is(err, mfsstatus.ErrNotFound) {
			return "", err
		}
		delete(meta, rel)
	}
	for _, rel := range append(added, modified...) {
		data, rerr := afero.ReadFile(r.rt.local, r.absPath(rel))
		if rerr != nil {
			return "", rerr
		}
		werr := r.rt.fs.Write(ctx, filesRoot+"/"+rel, data)
		if errors.Is(werr, mfsstatus.ErrIsDir) {
			// a directory got replaced by a file locally
			if werr = r.rt.fs.Remove(ctx, filesRoot+"/"+rel, true); werr == nil {
				werr = r.rt.fs.Write(ctx, filesRoot+"/"+rel, data)
			}
		}
		if werr != nil {
			return "", werr
		}
	}
	if err := r.writeFilesMetadata(ctx, branch, model.TreeWorkspace, meta); err != nil {
		return "", err
	}

	if len(added)+len(removed)+len(modified) > 0 {
		r.rt.l.Debug("workspace synced",
			zap.String("branch", branch),
			zap.Int("added", len(added)),
			zap.Int("removed", len(removed)),
			zap.Int("modified", len(modified)))
	}
	return branch, nil
}

// restoreLocal reconciles the local file system with a branch's
// workspace tree: local-only files go away, files missing or stale
// against the stored metadata are written out, stamped with their
// recorded mtimes unless timestamps are disabled.
func (r *Repo) restoreLocal(ctx context.Context, branch string, withTimestamps bool) error {
	meta, err := r.readFilesMetadata(ctx, branch, model.TreeWorkspace)
	if err != nil {
		return err
	}
	added, removed, modified, err := r.workspaceChanges("", meta, false)
	if err != nil {
		return err
	}

	for _, rel := range added {
		if err := r.rt.local.Remove(r.absPath(rel)); err != nil {
			return err
		}
	}
	filesRoot := model.GetFilesPath(r.rt.ns, r.root, branch, model.TreeWorkspace)
	for _, rel := range append(removed, modified...) {
		data, rerr := r.rt.fs.Read(ctx, filesRoot+"/"+rel)
		if rerr != nil {
			return rerr
		}
		abs := r.absPath(rel)
		if err := r.rt.local.MkdirAll(filepath.Dir(abs), 0755); err != nil {
			return err
		}
		if err := afero.WriteFile(r.rt.local, abs, data, 0644); err != nil {
			return err
		}
		if withTimestamps {
			ts := time.Unix(0, meta[rel].Timestamp)
			if err := r.rt.local.Chtimes(abs, ts, ts); err != nil {
				return err
			}
		}
	}
	return nil
}

// workspaceChanges compares the local files below addPath (relative,
// "" for the whole repository) against the stored metadata. The
// returned slices hold repo-relative paths, sorted. With updateMeta
// set, entries for files now on disk are restamped with their current
// mtimes.
func (r *Repo) workspaceChanges(addPath string, meta model.FilesMetadata, updateMeta bool) (added, removed, modified []string, err error) {
	local := map[string]int64{}
	walkRoot := r.absPath(addPath)
	fi, serr := r.rt.local.Stat(walkRoot)
	switch {
	case serr != nil && os.IsNotExist(serr):
		// nothing on disk below addPath
	case serr != nil:
		return nil, nil, nil, serr
	case !fi.IsDir():
		local[addPath] = fi.ModTime().UnixNano()
	default:
		werr := afero.Walk(r.rt.local, walkRoot, func(pth string, info os.FileInfo, werr error) error {
			if werr != nil {
				return werr
			}
			if info.IsDir() {
				return nil
			}
			rel, rerr := r.relPath(pth)
			if rerr != nil {
				return rerr
			}
			local[rel] = info.ModTime().UnixNano()
			return nil
		})
		if werr != nil {
			return nil, nil, nil, werr
		}
	}

	for rel, ts := range local {
		old, ok := meta[rel]
		switch {
		case !ok:
			added = append(added, rel)
		case old.Timestamp != ts:
			modified = append(modified, rel)
		}
		if updateMeta {
			meta[rel] = model.FileMetadata{Timestamp: ts}
		}
	}
	for rel := range meta {
		if !model.PathIsUnder(rel, addPath) {
			continue
		}
		if _, ok := local[rel]; !ok {
			removed = append(removed, rel)
		}
	}
	sort.Strings(added)
	sort.Strings(removed)
	sort.Strings(modified)
	return added, removed, modified, nil
}

func (r *Repo) activeBranch(ctx context.Context) (string, error) {
	b, err := r.rt.fs.Read(ctx, model.GetActiveBranchPath(r.rt.ns, r.root))
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func (r *Repo) readFilesMetadata(ctx context.Context, branch, tree string) (model.FilesMetadata, error) {
	b, err := r.rt.fs.Read(ctx, model.GetFilesMetadataPath(r.rt.ns, r.root, branch, tree))
	if err != nil {
		if errors.Is(err, mfsstatus.ErrNotFound) {
			return model.FilesMetadata{}, nil
		}
		return nil, err
	}
	return model.UnmarshalFilesMetadata(b)
}

func (r *Repo) writeFilesMetadata(ctx context.Context, branch, tree string, meta model.FilesMetadata) error {
	b, err := model.MarshalFilesMetadata(meta)
	if err != nil {
		return err
	}
	return r.rt.fs.Write(ctx, model.GetFilesMetadataPath(r.rt.ns, r.root, branch, tree), b)
}
