// Package model describes the base objects manipulated by ipvc.
//
// The package exposes a model for metadata and the layout of the
// object namespace.
//
// The object model for ipvc is composed of:
//
//  Repos:
//    An ipvc repository is analogous to a git repo. A repo covers one
//    local directory and is identified by the hash of its absolute path.
//
//  Branches:
//    A branch is an independent line of history. Each branch carries
//    three trees: the workspace (a mirror of the covered directory),
//    the stage (changes selected for the next commit) and the head
//    (the tree of the last commit).
//
//  Commits:
//    A commit is a point in time read-only view of a branch, composed
//    of a file tree, a metadata object and links to its parents.
//    This is analogous to a commit in git.
//
//  Refpaths:
//    A refpath names a tree or a file inside one, like
//    "@head~/data/a.txt". Branch names, head, stage and workspace are
//    all valid bases.
package model
