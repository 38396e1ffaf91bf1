package mfs

import (
	"bytes"
	"context"
	"sync"

	lru "github.com/hashicorp/golang-lru"
	"go.uber.org/zap"

	"github.com/crypto-coin-world/ipvc/pkg/dag"
	"github.com/crypto-coin-world/ipvc/pkg/errors"
	"github.com/crypto-coin-world/ipvc/pkg/mfs/status"
	"github.com/crypto-coin-world/ipvc/pkg/storage"
	storagestatus "github.com/crypto-coin-world/ipvc/pkg/storage/status"
)

const (
	rootPointerKey = "root"
	nodeKeyPrefix  = "nodes/"
	blobKeyPrefix  = "blobs/"

	defaultCacheSize = 4096
)

// New opens the namespace persisted in the given object store,
// bootstrapping an empty one on first use.
func New(ctx context.Context, store storage.Store, opts ...Option) (Fs, error) {
	o := &objectFs{
		store:     store,
		hasher:    dag.New(),
		l:         zap.NewNop(),
		cacheSize: defaultCacheSize,
	}
	for _, apply := range opts {
		apply(o)
	}
	cache, err := lru.New(o.cacheSize)
	if err != nil {
		return nil, err
	}
	o.cache = cache
	if err := o.loadRoot(ctx); err != nil {
		return nil, err
	}
	return o, nil
}

type objectFs struct {
	store     storage.Store
	hasher    *dag.Maker
	l         *zap.Logger
	cacheSize int
	cache     *lru.Cache

	mu   sync.RWMutex
	root dag.Key
}

func (o *objectFs) loadRoot(ctx context.Context) error {
	has, err := o.store.Has(ctx, rootPointerKey)
	if err != nil {
		return err
	}
	if has {
		b, rerr := storage.ReadAll(ctx, o.store, rootPointerKey)
		if rerr != nil {
			return rerr
		}
		k, kerr := dag.KeyFromString(string(bytes.TrimSpace(b)))
		if kerr != nil {
			return kerr
		}
		o.root = k
		return nil
	}
	k, _, err := o.putNode(ctx, dag.NewDirNode())
	if err != nil {
		return err
	}
	o.root = k
	return o.store.Put(ctx, rootPointerKey, bytes.NewReader([]byte(k.String())))
}

func (o *objectFs) currentRoot() dag.Key {
	o.mu.RLock()
	defer o.mu.RUnlock()
	return o.root
}

func (o *objectFs) persistRoot(ctx context.Context, k dag.Key) error {
	if err := o.store.Put(ctx, rootPointerKey, bytes.NewReader([]byte(k.String()))); err != nil {
		return err
	}
	o.root = k
	return nil
}

// putNode persists the canonical encoding of a node, returning its key
// and the node with its cumulative size settled.
func (o *objectFs) putNode(ctx context.Context, n *dag.Node) (dag.Key, *dag.Node, error) {
	key, data, err := o.hasher.HashNode(n)
	if err != nil {
		return dag.Key{}, nil, err
	}
	storeKey := nodeKeyPrefix + key.String()
	if _, hit := o.cache.Get(key.String()); !hit {
		has, herr := o.store.Has(ctx, storeKey)
		if herr != nil {
			return dag.Key{}, nil, herr
		}
		if !has {
			if err = o.store.Put(ctx, storeKey, bytes.NewReader(data)); err != nil {
				return dag.Key{}, nil, err
			}
		}
		o.cache.Add(key.String(), n)
	}
	return key, n, nil
}

func (o *objectFs) getNode(ctx context.Context, key dag.Key) (*dag.Node, error) {
	if cached, hit := o.cache.Get(key.String()); hit {
		return cached.(*dag.Node), nil
	}
	data, err := storage.ReadAll(ctx, o.store, nodeKeyPrefix+key.String())
	if err != nil {
		if errors.Is(err, storagestatus.ErrNotFound) {
			return nil, status.ErrNotFound.WrapMessage("object %s", key)
		}
		return nil, err
	}
	n, err := dag.UnmarshalNode(data)
	if err != nil {
		return nil, err
	}
	o.cache.Add(key.String(), n)
	return n, nil
}

func (o *objectFs) putBlob(ctx context.Context, data []byte) (dag.Key, error) {
	key, err := o.hasher.Sum(data)
	if err != nil {
		return dag.Key{}, err
	}
	storeKey := blobKeyPrefix + key.String()
	has, err := o.store.Has(ctx, storeKey)
	if err != nil {
		return dag.Key{}, err
	}
	if !has {
		if err = o.store.Put(ctx, storeKey, bytes.NewReader(data)); err != nil {
			return dag.Key{}, err
		}
	}
	return key, nil
}

func (o *objectFs) getBlob(ctx context.Context, key dag.Key) ([]byte, error) {
	data, err := storage.ReadAll(ctx, o.store, blobKeyPrefix+key.String())
	if err != nil && errors.Is(err, storagestatus.ErrNotFound) {
		return nil, status.ErrNotFound.WrapMessage("blob %s", key)
	}
	return data, err
}

// resolveFrom walks a parsed path down from the given namespace root
func (o *objectFs) resolveFrom(ctx context.Context, root dag.Key, pth string, t target) (dag.Key, *dag.Node, error) {
	at := root
	if t.immutable() {
		at = t.object
	}
	node, err := o.getNode(ctx, at)
	if err != nil {
		return dag.Key{}, nil, err
	}
	for _, seg := range t.segs {
		if !node.IsDir() {
			return dag.Key{}, nil, status.ErrNotDir.WrapMessage("%q", pth)
		}
		link := node.Lookup(seg)
		if link == nil {
			return dag.Key{}, nil, status.ErrNotFound.WrapMessage("%q", pth)
		}
		at = link.Key
		if node, err = o.getNode(ctx, at); err != nil {
			return dag.Key{}, nil, err
		}
	}
	return at, node, nil
}

type linkEdit struct {
	link    *dag.Link // nil unlinks the target
	parents bool
}

// applyAt rebuilds the spine from dirKey along segs, returning the new
// directory key. Untouched siblings keep their hashes: this is what
// makes copies and rewrites structurally shared.
func (o *objectFs) applyAt(ctx context.Context, dirKey dag.Key, pth string, segs []string, e linkEdit) (dag.Key, *dag.Node, error) {
	node, err := o.getNode(ctx, dirKey)
	if err != nil {
		return dag.Key{}, nil, err
	}
	if !node.IsDir() {
		return dag.Key{}, nil, status.ErrNotDir.WrapMessage("%q", pth)
	}
	cp := node.Clone()

	if len(segs) == 1 {
		if e.link == nil {
			if !cp.RemoveLink(segs[0]) {
				return dag.Key{}, nil, status.ErrNotFound.WrapMessage("%q", pth)
			}
		} else {
			l := *e.link
			l.Name = segs[0]
			cp.SetLink(l)
		}
		return o.putNode(ctx, cp)
	}

	var childKey dag.Key
	child := cp.Lookup(segs[0])
	switch {
	case child == nil && e.link != nil && e.parents:
		ck, _, perr := o.putNode(ctx, dag.NewDirNode())
		if perr != nil {
			return dag.Key{}, nil, perr
		}
		childKey = ck
	case child == nil:
		return dag.Key{}, nil, status.ErrNotFound.WrapMessage("%q", pth)
	case !child.Dir:
		return dag.Key{}, nil, status.ErrNotDir.WrapMessage("%q", pth)
	default:
		childKey = child.Key
	}

	newKey, newNode, err := o.applyAt(ctx, childKey, pth, segs[1:], e)
	if err != nil {
		return dag.Key{}, nil, err
	}
	cp.SetLink(dag.Link{Name: segs[0], Key: newKey, Dir: true, Size: newNode.Size})
	return o.putNode(ctx, cp)
}

// mutableTarget parses a path that must address the mutable namespace,
// below its root
func mutableTarget(pth string) (target, error) {
	t, err := parsePath(pth)
	if err != nil {
		return target{}, err
	}
	if t.immutable() {
		return target{}, status.ErrInvalidPath.WrapMessage("%q addresses an immutable object", pth)
	}
	if len(t.segs) == 0 {
		return target{}, status.ErrInvalidPath.WrapMessage("cannot rewrite the namespace root")
	}
	return t, nil
}

func (o *objectFs) Has(ctx context.Context, pth string) (bool, error) {
	_, err := o.Stat(ctx, pth)
	if err != nil {
		if errors.Is(err, status.ErrNotFound) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (o *objectFs) Stat(ctx context.Context, pth string) (Info, error) {
	t, err := parsePath(pth)
	if err != nil {
		return Info{}, err
	}
	key, node, err := o.resolveFrom(ctx, o.currentRoot(), pth, t)
	if err != nil {
		return Info{}, err
	}
	return Info{
		Name: baseName(t.segs),
		Key:  key,
		Dir:  node.IsDir(),
		Size: node.Size,
	}, nil
}

func (o *objectFs) Read(ctx context.Context, pth string) ([]byte, error) {
	t, err := parsePath(pth)
	if err != nil {
		return nil, err
	}
	_, node, err := o.resolveFrom(ctx, o.currentRoot(), pth, t)
	if err != nil {
		return nil, err
	}
	if node.IsDir() {
		return nil, status.ErrIsDir.WrapMessage("%q", pth)
	}
	return o.getBlob(ctx, node.Blob)
}

func (o *objectFs) List(ctx context.Context, pth string) ([]Info, error) {
	t, err := parsePath(pth)
	if err != nil {
		return nil, err
	}
	_, node, err := o.resolveFrom(ctx, o.currentRoot(), pth, t)
	if err != nil {
		return nil, err
	}
	if !node.IsDir() {
		return nil, status.ErrNotDir.WrapMessage("%q", pth)
	}
	infos := make([]Info, 0, len(node.Links))
	for _, l := range node.Links {
		infos = append(infos, Info{Name: l.Name, Key: l.Key, Dir: l.Dir, Size: l.Size})
	}
	return infos, nil
}

func (o *objectFs) Flush(ctx context.Context, pth string) (dag.Key, error) {
	info, err := o.Stat(ctx, pth)
	if err != nil {
		return dag.Key{}, err
	}
	return info.Key, nil
}

func (o *objectFs) Write(ctx context.Context, pth string, data []byte, opts ...WriteOption) error {
	flags := writeFlags{create: true, truncate: true}
	for _, apply := range opts {
		apply(&flags)
	}
	t, err := mutableTarget(pth)
	if err != nil {
		return err
	}

	o.mu.Lock()
	defer o.mu.Unlock()

	_, node, rerr := o.resolveFrom(ctx, o.root, pth, t)
	switch {
	case rerr != nil && errors.Is(rerr, status.ErrNotFound):
		if !flags.create {
			return rerr
		}
	case rerr != nil:
		return rerr
	case node.IsDir():
		return status.ErrIsDir.WrapMessage("%q", pth)
	case !flags.truncate:
		old, berr := o.getBlob(ctx, node.Blob)
		if berr != nil {
			return berr
		}
		if len(old) > len(data) {
			merged := make([]byte, len(old))
			copy(merged, data)
			copy(merged[len(data):], old[len(data):])
			data = merged
		}
	}

	blobKey, err := o.putBlob(ctx, data)
	if err != nil {
		return err
	}
	fileKey, fileNode, err := o.putNode(ctx, dag.NewFileNode(blobKey, int64(len(data))))
	if err != nil {
		return err
	}
	newRoot, _, err := o.applyAt(ctx, o.root, pth, t.segs, linkEdit{
		link:    &dag.Link{Key: fileKey, Size: fileNode.Size},
		parents: true,
	})
	if err != nil {
		return err
	}
	o.l.Debug("mfs write", zap.String("path", pth), zap.Int("bytes", len(data)))
	return o.persistRoot(ctx, newRoot)
}

func (o *objectFs) Copy(ctx context.Context, src, dst string) error {
	srcT, err := parsePath(src)
	if err != nil {
		return err
	}
	dstT, err := mutableTarget(dst)
	if err != nil {
		return err
	}

	o.mu.Lock()
	defer o.mu.Unlock()

	key, node, err := o.resolveFrom(ctx, o.root, src, srcT)
	if err != nil {
		return err
	}
	newRoot, _, err := o.applyAt(ctx, o.root, dst, dstT.segs, linkEdit{
		link:    &dag.Link{Key: key, Dir: node.IsDir(), Size: node.Size},
		parents: true,
	})
	if err != nil {
		return err
	}
	o.l.Debug("mfs copy", zap.String("src", src), zap.String("dst", dst), zap.Stringer("object", key))
	return o.persistRoot(ctx, newRoot)
}

func (o *objectFs) Move(ctx context.Context, src, dst string) error {
	srcT, err := mutableTarget(src)
	if err != nil {
		return err
	}
	dstT, err := mutableTarget(dst)
	if err != nil {
		return err
	}
	if isPrefix(srcT.segs, dstT.segs) {
		return status.ErrInvalidPath.WrapMessage("destination %q is inside source %q", dst, src)
	}

	o.mu.Lock()
	defer o.mu.Unlock()

	key, node, err := o.resolveFrom(ctx, o.root, src, srcT)
	if err != nil {
		return err
	}
	linked, _, err := o.applyAt(ctx, o.root, dst, dstT.segs, linkEdit{
		link:    &dag.Link{Key: key, Dir: node.IsDir(), Size: node.Size},
		parents: true,
	})
	if err != nil {
		return err
	}
	newRoot, _, err := o.applyAt(ctx, linked, src, srcT.segs, linkEdit{})
	if err != nil {
		return err
	}
	o.l.Debug("mfs move", zap.String("src", src), zap.String("dst", dst))
	return o.persistRoot(ctx, newRoot)
}

func (o *objectFs) Remove(ctx context.Context, pth string, recursive bool) error {
	t, err := mutableTarget(pth)
	if err != nil {
		return err
	}

	o.mu.Lock()
	defer o.mu.Unlock()

	_, node, err := o.resolveFrom(ctx, o.root, pth, t)
	if err != nil {
		return err
	}
	if node.IsDir() && !recursive {
		return status.ErrIsDir.WrapMessage("%q, use recursive removal", pth)
	}
	newRoot, _, err := o.applyAt(ctx, o.root, pth, t.segs, linkEdit{})
	if err != nil {
		return err
	}
	o.l.Debug("mfs remove", zap.String("path", pth))
	return o.persistRoot(ctx, newRoot)
}

func (o *objectFs) Mkdir(ctx context.Context, pth string, parents bool) error {
	t, err := mutableTarget(pth)
	if err != nil {
		return err
	}

	o.mu.Lock()
	defer o.mu.Unlock()

	_, existing, rerr := o.resolveFrom(ctx, o.root, pth, t)
	if rerr == nil {
		if !existing.IsDir() {
			return status.ErrNotDir.WrapMessage("%q", pth)
		}
		if parents {
			return nil
		}
		return status.ErrExists.WrapMessage("%q", pth)
	}
	if !errors.Is(rerr, status.ErrNotFound) {
		return rerr
	}

	dirKey, dirNode, err := o.putNode(ctx, dag.NewDirNode())
	if err != nil {
		return err
	}
	newRoot, _, err := o.applyAt(ctx, o.root, pth, t.segs, linkEdit{
		link:    &dag.Link{Key: dirKey, Dir: true, Size: dirNode.Size},
		parents: parents,
	})
	if err != nil {
		return err
	}
	o.l.Debug("mfs mkdir", zap.String("path", pth))
	return o.persistRoot(ctx, newRoot)
}

func isPrefix(prefix, segs []string) bool {
	if len(segs) < len(prefix) {
		return false
	}
	for i := range prefix {
		if segs[i] != prefix[i] {
			return false
		}
	}
	return true
}
