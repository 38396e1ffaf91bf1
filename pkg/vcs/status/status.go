// Copyright © 2023 Crypto Coin World

// Package status declares the error constants returned by the version
// control operations in pkg/vcs.
//
// NOTE: such constants are located in a separate package to avoid
// creating undue cyclical dependencies between pkg/vcs and its
// callers.
package status

import "github.com/crypto-coin-world/ipvc/pkg/errors"

var (
	// Sentinel errors returned by the version control engine

	// ErrValidation indicates a rejected name, message or argument.
	// Validation always runs before any mutation.
	ErrValidation = errors.New("validation failed")

	// ErrNotFound indicates an unknown branch or a ref that does not
	// resolve
	ErrNotFound = errors.New("not found")

	// ErrNothingToCommit indicates that stage and head are identical
	ErrNothingToCommit = errors.New("nothing to commit")

	// ErrPathOutsideRepo indicates a path argument that does not
	// resolve under the repository root
	ErrPathOutsideRepo = errors.New("path outside repository")

	// ErrMergePending signals an in-progress merge. It is advisory:
	// operations that report it still complete.
	ErrMergePending = errors.New("merge in progress")

	// ErrNoRepo indicates that no repository covers the working
	// directory
	ErrNoRepo = errors.New("no ipvc repository here")

	// ErrRepoExists indicates an init colliding with an existing
	// repository
	ErrRepoExists = errors.New("repository already exists")

	// ErrNotImplemented tells that an operation is a recognized verb
	// without an implementation yet
	ErrNotImplemented = errors.New("not implemented")
)
