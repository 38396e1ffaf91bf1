// Package model holds the pure data of the version control layer:
// namespace layout paths, refpath grammar, commit metadata, change sets
// and validation rules. Nothing in here talks to a store.
package model

import (
	"encoding/hex"
	gopath "path"
	"strings"
)

const (
	// DefaultNamespace roots the layout at the top of the object namespace
	DefaultNamespace = "/"

	// DefaultBranch is the branch created by repository init
	DefaultBranch = "master"

	// TreeHead is the committed tree of a branch
	TreeHead = "head"

	// TreeStage is the tree holding changes staged for the next commit
	TreeStage = "stage"

	// TreeWorkspace is the tree mirroring the local file system
	TreeWorkspace = "workspace"
)

const (
	layoutDirName        = "ipvc"
	reposDirName         = "repos"
	branchesDirName      = "branches"
	bundleDirName        = "bundle"
	filesName            = "files"
	filesMetadataName    = "files_metadata"
	activeBranchFileName = "active_branch_name"
	commitMetadataName   = "commit_metadata"
	parentLinkName       = "parent"
	mergeParentLinkName  = "merge_parent"
	replayOffsetName     = "replay_offset"
	stageBackupName      = "merge_stage_backup"
	workspaceBackupName  = "merge_workspace_backup"
	paramsFileName       = "params.json"
)

// RepoID is the layout name of a repository, derived from its local
// file system root
func RepoID(fsRoot string) string {
	return hex.EncodeToString([]byte(fsRoot))
}

// FsRootFromRepoID decodes a layout name back into the repository's
// local file system root
func FsRootFromRepoID(id string) (string, error) {
	b, err := hex.DecodeString(id)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// GetBasePath is the root of everything ipvc keeps in the namespace
func GetBasePath(ns string) string {
	return gopath.Join("/", ns, layoutDirName)
}

// GetParamsPath holds namespace-global parameters
func GetParamsPath(ns string) string {
	return gopath.Join(GetBasePath(ns), paramsFileName)
}

// GetReposPath lists every repository known to the namespace
func GetReposPath(ns string) string {
	return gopath.Join(GetBasePath(ns), reposDirName)
}

// GetRepoPath is the top of one repository's state
func GetRepoPath(ns, fsRoot string) string {
	return gopath.Join(GetReposPath(ns), RepoID(fsRoot))
}

// GetActiveBranchPath is the file naming the branch checked out in the
// local file system
func GetActiveBranchPath(ns, fsRoot string) string {
	return gopath.Join(GetRepoPath(ns, fsRoot), activeBranchFileName)
}

// GetBranchesPath holds one directory per branch
func GetBranchesPath(ns, fsRoot string) string {
	return gopath.Join(GetRepoPath(ns, fsRoot), branchesDirName)
}

// GetBranchPath is the top of one branch
func GetBranchPath(ns, fsRoot, branch string) string {
	return gopath.Join(GetBranchesPath(ns, fsRoot), branch)
}

// GetTreePath addresses one of a branch's trees. The tree may carry
// parent hops, e.g. "head/parent/merge_parent".
func GetTreePath(ns, fsRoot, branch, tree string) string {
	return gopath.Join(GetBranchPath(ns, fsRoot, branch), tree)
}

// GetBundlePath is the bundle beneath a tree
func GetBundlePath(ns, fsRoot, branch, tree string) string {
	return gopath.Join(GetTreePath(ns, fsRoot, branch, tree), bundleDirName)
}

// GetFilesPath is the file tree beneath a bundle
func GetFilesPath(ns, fsRoot, branch, tree string) string {
	return gopath.Join(GetBundlePath(ns, fsRoot, branch, tree), filesName)
}

// GetFilesMetadataPath is the local file system bookkeeping beneath a
// bundle
func GetFilesMetadataPath(ns, fsRoot, branch, tree string) string {
	return gopath.Join(GetBundlePath(ns, fsRoot, branch, tree), filesMetadataName)
}

// GetCommitMetadataPath is the metadata written into a committed head
func GetCommitMetadataPath(ns, fsRoot, branch string) string {
	return gopath.Join(GetTreePath(ns, fsRoot, branch, TreeHead), commitMetadataName)
}

// GetHeadParentPath links a committed head to its predecessor
func GetHeadParentPath(ns, fsRoot, branch string) string {
	return gopath.Join(GetTreePath(ns, fsRoot, branch, TreeHead), parentLinkName)
}

// GetHeadMergeParentPath links a merge commit to the merged-in head
func GetHeadMergeParentPath(ns, fsRoot, branch string) string {
	return gopath.Join(GetTreePath(ns, fsRoot, branch, TreeHead), mergeParentLinkName)
}

// GetMergeParentMarkerPath marks an in-progress merge on a branch
func GetMergeParentMarkerPath(ns, fsRoot, branch string) string {
	return gopath.Join(GetBranchPath(ns, fsRoot, branch), mergeParentLinkName)
}

// GetReplayOffsetPath marks an in-progress replay on a branch
func GetReplayOffsetPath(ns, fsRoot, branch string) string {
	return gopath.Join(GetBranchPath(ns, fsRoot, branch), replayOffsetName)
}

// GetStageBackupPath preserves the stage tree while a merge is pending
func GetStageBackupPath(ns, fsRoot, branch string) string {
	return gopath.Join(GetBranchPath(ns, fsRoot, branch), stageBackupName)
}

// GetWorkspaceBackupPath preserves the workspace tree while a merge is
// pending
func GetWorkspaceBackupPath(ns, fsRoot, branch string) string {
	return gopath.Join(GetBranchPath(ns, fsRoot, branch), workspaceBackupName)
}

// CommitFilesPath addresses the file tree inside an immutable commit
// object, relative to the commit root
func CommitFilesPath(sub string) string {
	if sub == "" {
		return gopath.Join(bundleDirName, filesName)
	}
	return gopath.Join(bundleDirName, filesName, sub)
}

// CommitBundlePath is the bundle directory inside an immutable commit
// object, relative to the commit root
func CommitBundlePath() string {
	return bundleDirName
}

// CommitMetadataName is the metadata file inside an immutable commit
// object, relative to the commit root
func CommitMetadataName() string {
	return commitMetadataName
}

// CommitParentName is the parent link inside an immutable commit
// object, relative to the commit root
func CommitParentName() string {
	return parentLinkName
}

// CommitMergeParentName is the second parent link inside an immutable
// commit object, present on merge commits only
func CommitMergeParentName() string {
	return mergeParentLinkName
}

// SplitTreeSub splits a slash separated path into its first component
// and the rest
func SplitTreeSub(pth string) (first, rest string) {
	trimmed := strings.Trim(pth, "/")
	if i := strings.Index(trimmed, "/"); i >= 0 {
		return trimmed[:i], trimmed[i+1:]
	}
	return trimmed, ""
}
