package mfs

import (
	gopath "path"
	"strings"

	"github.com/crypto-coin-world/ipvc/pkg/dag"
	"github.com/crypto-coin-world/ipvc/pkg/mfs/status"
)

// target is a parsed namespace path: either rooted at the mutable
// namespace root, or at an immutable object key.
type target struct {
	object dag.Key
	segs   []string
}

func (t target) immutable() bool {
	return !t.object.IsZero()
}

func splitPath(pth string) ([]string, error) {
	if pth == "" || !strings.HasPrefix(pth, "/") {
		return nil, status.ErrInvalidPath.WrapMessage("%q is not absolute", pth)
	}
	cleaned := gopath.Clean(pth)
	if cleaned == "/" {
		return []string{}, nil
	}
	return strings.Split(strings.TrimPrefix(cleaned, "/"), "/"), nil
}

// parsePath validates a path and splits off the immutable object key
// when the path starts with the object prefix.
func parsePath(pth string) (target, error) {
	segs, err := splitPath(pth)
	if err != nil {
		return target{}, err
	}
	if len(segs) >= 1 && "/"+segs[0] == ObjectPrefix {
		if len(segs) < 2 {
			return target{}, status.ErrInvalidPath.WrapMessage("%q misses an object key", pth)
		}
		key, kerr := dag.KeyFromString(segs[1])
		if kerr != nil {
			return target{}, status.ErrInvalidPath.WrapMessage("%q has a malformed object key", pth)
		}
		return target{object: key, segs: segs[2:]}, nil
	}
	return target{segs: segs}, nil
}

func baseName(segs []string) string {
	if len(segs) == 0 {
		return "/"
	}
	return segs[len(segs)-1]
}
