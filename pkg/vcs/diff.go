package vcs

import (
	"context"
	"strings"

	"github.com/pmezard/go-difflib/difflib"

	"github.com/crypto-coin-world/ipvc/pkg/errors"
	"github.com/crypto-coin-world/ipvc/pkg/mfs"
	mfsstatus "github.com/crypto-coin-world/ipvc/pkg/mfs/status"
	"github.com/crypto-coin-world/ipvc/pkg/model"
)

// DiffRefs reports the changes between two refs: what happens going
// from fromRef to toRef. An empty fromRef defaults to the stage tree
// at the same subpath as toRef.
func (r *Repo) DiffRefs(ctx context.Context, toRef, fromRef string) (model.ChangeSet, error) {
	r.lk.Lock()
	defer r.lk.Unlock()
	branch, err := r.sync(ctx)
	if err != nil {
		return nil, err
	}
	fromPath, toPath, err := r.resolveDiffRefs(ctx, branch, toRef, fromRef)
	if err != nil {
		return nil, err
	}
	return r.diffPaths(ctx, fromPath, toPath)
}

// DiffContent renders the changes between two refs as unified diffs of
// file content
func (r *Repo) DiffContent(ctx context.Context, toRef, fromRef string) (string, error) {
	r.lk.Lock()
	defer r.lk.Unlock()
	branch, err := r.sync(ctx)
	if err != nil {
		return "", err
	}
	fromPath, toPath, err := r.resolveDiffRefs(ctx, branch, toRef, fromRef)
	if err != nil {
		return "", err
	}
	changes, err := r.diffPaths(ctx, fromPath, toPath)
	if err != nil {
		return "", err
	}
	return r.renderContentDiff(ctx, changes)
}

func (r *Repo) resolveDiffRefs(ctx context.Context, branch, toRef, fromRef string) (fromPath, toPath string, err error) {
	toSpec, err := parseRef(toRef)
	if err != nil {
		return "", "", err
	}
	var fromSpec model.RefSpec
	if fromRef == "" {
		// diff a single ref against the stage at the same subpath
		fromSpec = model.RefSpec{Base: model.TreeStage, Sub: toSpec.Sub}
	} else {
		fromSpec, err = parseRef(fromRef)
		if err != nil {
			return "", "", err
		}
	}
	fromPath, err = r.resolveFiles(ctx, branch, fromSpec)
	if err != nil {
		return "", "", err
	}
	toPath, err = r.resolveFiles(ctx, branch, toSpec)
	if err != nil {
		return "", "", err
	}
	return fromPath, toPath, nil
}

// diffPaths walks two file trees and reports per-file changes going
// from fromPath to toPath. An absent tree diffs as an empty one.
func (r *Repo) diffPaths(ctx context.Context, fromPath, toPath string) (model.ChangeSet, error) {
	fromInfo, fromErr := r.rt.fs.Stat(ctx, fromPath)
	if fromErr != nil && !errors.Is(fromErr, mfsstatus.ErrNotFound) {
		return nil, fromErr
	}
	toInfo, toErr := r.rt.fs.Stat(ctx, toPath)
	if toErr != nil && !errors.Is(toErr, mfsstatus.ErrNotFound) {
		return nil, toErr
	}

	cs := model.ChangeSet{}
	switch {
	case fromErr != nil && toErr != nil:
	case fromErr != nil:
		if err := r.collectSide(ctx, toPath, toInfo, "", model.ChangeAdded, &cs); err != nil {
			return nil, err
		}
	case toErr != nil:
		if err := r.collectSide(ctx, fromPath, fromInfo, "", model.ChangeRemoved, &cs); err != nil {
			return nil, err
		}
	default:
		if err := r.diffNodes(ctx, fromPath, fromInfo, toPath, toInfo, "", &cs); err != nil {
			return nil, err
		}
	}
	cs.Sort()
	return cs, nil
}

func (r *Repo) diffNodes(ctx context.Context, fromPath string, from mfs.Info, toPath string, to mfs.Info, rel string, out *model.ChangeSet) error {
	if from.Key == to.Key {
		return nil
	}
	switch {
	case !from.Dir && !to.Dir:
		*out = append(*out, model.Change{Type: model.ChangeModified, Path: rel, Before: from.Key, After: to.Key})
		return nil
	case !from.Dir:
		*out = append(*out, model.Change{Type: model.ChangeRemoved, Path: rel, Before: from.Key})
		return r.collectSide(ctx, toPath, to, rel, model.ChangeAdded, out)
	case !to.Dir:
		if err := r.collectSide(ctx, fromPath, from, rel, model.ChangeRemoved, out); err != nil {
			return err
		}
		*out = append(*out, model.Change{Type: model.ChangeAdded, Path: rel, After: to.Key})
		return nil
	}

	fromKids, err := r.rt.fs.List(ctx, fromPath)
	if err != nil {
		return err
	}
	toKids, err := r.rt.fs.List(ctx, toPath)
	if err != nil {
		return err
	}

	// both listings are name-ordered
	i, j := 0, 0
	for i < len(fromKids) || j < len(toKids) {
		switch {
		case j >= len(toKids) || (i < len(fromKids) && fromKids[i].Name < toKids[j].Name):
			kid := fromKids[i]
			if err := r.collectSide(ctx, fromPath+"/"+kid.Name, kid, joinSub(rel, kid.Name), model.ChangeRemoved, out); err != nil {
				return err
			}
			i++
		case i >= len(fromKids) || toKids[j].Name < fromKids[i].Name:
			kid := toKids[j]
			if err := r.collectSide(ctx, toPath+"/"+kid.Name, kid, joinSub(rel, kid.Name), model.ChangeAdded, out); err != nil {
				return err
			}
			j++
		default:
			if err := r.diffNodes(ctx,
				fromPath+"/"+fromKids[i].Name, fromKids[i],
				toPath+"/"+toKids[j].Name, toKids[j],
				joinSub(rel, fromKids[i].Name), out); err != nil {
				return err
			}
			i++
			j++
		}
	}
	return nil
}

// collectSide reports every file under a one-sided subtree
func (r *Repo) collectSide(ctx context.Context, pth string, info mfs.Info, rel string, kind model.ChangeKind, out *model.ChangeSet) error {
	if !info.Dir {
		c := model.Change{Type: kind, Path: rel}
		if kind == model.ChangeRemoved {
			c.Before = info.Key
		} else {
			c.After = info.Key
		}
		*out = append(*out, c)
		return nil
	}
	kids, err := r.rt.fs.List(ctx, pth)
	if err != nil {
		return err
	}
	for _, kid := range kids {
		if err := r.collectSide(ctx, pth+"/"+kid.Name, kid, joinSub(rel, kid.Name), kind, out); err != nil {
			return err
		}
	}
	return nil
}

// renderContentDiff turns a change report into unified diffs of the
// file contents on each side
func (r *Repo) renderContentDiff(ctx context.Context, changes model.ChangeSet) (string, error) {
	var b strings.Builder
	for _, c := range changes {
		var fromLines, toLines []string
		fromFile, toFile := "/dev/null", "/dev/null"
		if c.Type != model.ChangeAdded {
			data, err := r.rt.fs.Read(ctx, mfs.ObjectPath(c.Before))
			if err != nil {
				return "", err
			}
			fromLines = difflib.SplitLines(string(data))
			fromFile = c.Path
		}
		if c.Type != model.ChangeRemoved {
			data, err := r.rt.fs.Read(ctx, mfs.ObjectPath(c.After))
			if err != nil {
				return "", err
			}
			toLines = difflib.SplitLines(string(data))
			toFile = c.Path
		}
		text, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
			A:        fromLines,
			B:        toLines,
			FromFile: fromFile,
			ToFile:   toFile,
			Context:  3,
		})
		if err != nil {
			return "", err
		}
		b.WriteString(text)
	}
	return b.String(), nil
}
