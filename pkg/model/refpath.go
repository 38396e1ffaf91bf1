package model

import (
	gopath "path"
	"strings"
)

const (
	// HopParent follows a commit's parent link
	HopParent = parentLinkName

	// HopMergeParent follows a commit's merge_parent link
	HopMergeParent = mergeParentLinkName
)

// RefSpec is a parsed reference path. Base names one of the reserved
// trees, a branch, or a commit hash; Hops are parent links to follow
// from Base; Sub addresses a path beneath the referenced file tree.
type RefSpec struct {
	Base string
	Hops []string
	Sub  string
}

// ParseRefPath parses a reference of the form
//
//	@head~^/myfolder/myfile.txt
//	@stage
//	@somebranch/myfolder
//	@{commit-hash}/myfolder
//	myfolder/myfile.txt
//
// A leading @ introduces a ref; without one the whole argument is a
// path in the active branch's workspace. Each ~ suffix follows one
// parent link, each ^ one merge_parent link, in order of appearance.
// Suffixes only apply to the reserved tree names.
func ParseRefPath(refpath string) (RefSpec, error) {
	if refpath == "" {
		return RefSpec{}, InvalidRef
	}
	if !strings.HasPrefix(refpath, "@") {
		return RefSpec{Base: TreeWorkspace, Sub: cleanSub(refpath)}, nil
	}

	ref := refpath[1:]
	var sub string
	if i := strings.Index(ref, "/"); i >= 0 {
		ref, sub = ref[:i], cleanSub(ref[i+1:])
	}
	if ref == "" {
		return RefSpec{}, InvalidRef
	}

	base := ref
	var hops []string
	if i := strings.IndexAny(ref, "~^"); i >= 0 {
		base = ref[:i]
		for _, r := range ref[i:] {
			switch r {
			case '~':
				hops = append(hops, HopParent)
			case '^':
				hops = append(hops, HopMergeParent)
			default:
				return RefSpec{}, InvalidRef
			}
		}
		if !isReservedTree(base) {
			// branch names and hashes take no suffixes
			return RefSpec{}, InvalidRef
		}
	}
	return RefSpec{Base: base, Hops: hops, Sub: sub}, nil
}

// IsTree reports whether the ref names one of the active branch's
// reserved trees
func (r RefSpec) IsTree() bool {
	return isReservedTree(r.Base)
}

// TreeSpec renders the base and hops as a tree path fragment,
// e.g. "head/parent/merge_parent"
func (r RefSpec) TreeSpec() string {
	if len(r.Hops) == 0 {
		return r.Base
	}
	return r.Base + "/" + strings.Join(r.Hops, "/")
}

func (r RefSpec) String() string {
	var b strings.Builder
	b.WriteString("@")
	b.WriteString(r.Base)
	for _, hop := range r.Hops {
		switch hop {
		case HopMergeParent:
			b.WriteString("^")
		default:
			b.WriteString("~")
		}
	}
	if r.Sub != "" {
		b.WriteString("/")
		b.WriteString(r.Sub)
	}
	return b.String()
}

func isReservedTree(name string) bool {
	switch name {
	case TreeHead, TreeStage, TreeWorkspace:
		return true
	}
	return false
}

func cleanSub(sub string) string {
	cleaned := gopath.Clean("/" + sub)
	return strings.TrimPrefix(cleaned, "/")
}
