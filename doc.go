/*
Package ipvc provides CLI tooling to version file trees over a content
addressed store.

The primary goal of ipvc is to bring a git-like workflow (stage, commit,
branch, diff) to plain directories, while keeping all version bookkeeping
as immutable trees in an object store rather than in dot files spread
under the versioned directory.
*/
package ipvc
