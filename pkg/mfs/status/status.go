// Package status declares error constants returned by the mutable
// file system layer.
package status

import "github.com/crypto-coin-world/ipvc/pkg/errors"

var (
	// ErrNotFound indicates the path does not resolve to an object
	ErrNotFound = errors.New("no such file or directory")

	// ErrExists indicates the path already resolves to an object
	ErrExists = errors.New("file already exists")

	// ErrNotDir indicates a directory operation hit a file node
	ErrNotDir = errors.New("not a directory")

	// ErrIsDir indicates a file operation hit a directory node
	ErrIsDir = errors.New("is a directory")

	// ErrInvalidPath indicates a malformed path, or a write through an
	// immutable object path
	ErrInvalidPath = errors.New("invalid path")
)
