// Package mfs maintains a mutable, path addressed namespace over the
// immutable object graph. Mutable paths are absolute and rooted in a
// single namespace; paths of the form /ipfs/<key>[/subpath] address
// immutable objects directly and never change. Copies are reference
// copies: the destination relinks the source hash, it never duplicates
// content.
package mfs

import (
	"context"

	"github.com/crypto-coin-world/ipvc/pkg/dag"
)

// ObjectPrefix roots the immutable object paths
const ObjectPrefix = "/ipfs"

// Info describes one object in the namespace
type Info struct {
	Name string
	Key  dag.Key
	Dir  bool
	Size int64
}

// Fs is the namespace contract the version control engine builds on
type Fs interface {
	// Has reports existence without erroring on absence
	Has(ctx context.Context, pth string) (bool, error)

	// Stat resolves a path to its object
	Stat(ctx context.Context, pth string) (Info, error)

	// Read returns file content
	Read(ctx context.Context, pth string) ([]byte, error)

	// Write sets file content, creating and truncating by default
	Write(ctx context.Context, pth string, data []byte, opts ...WriteOption) error

	// Copy relinks src (mutable or immutable path) at dst, replacing
	// dst if present. O(1) regardless of subtree size.
	Copy(ctx context.Context, src, dst string) error

	// Move relinks src at dst and drops the source link
	Move(ctx context.Context, src, dst string) error

	// Remove unlinks a file, or a directory when recursive is set
	Remove(ctx context.Context, pth string, recursive bool) error

	// Mkdir creates a directory, with intermediate directories when
	// parents is set
	Mkdir(ctx context.Context, pth string, parents bool) error

	// List returns the name-ordered children of a directory
	List(ctx context.Context, pth string) ([]Info, error)

	// Flush returns the key of the subtree rooted at pth
	Flush(ctx context.Context, pth string) (dag.Key, error)
}

// ObjectPath builds an immutable path for a key, with an optional
// subpath below it
func ObjectPath(key dag.Key, sub ...string) string {
	p := ObjectPrefix + "/" + key.String()
	for _, s := range sub {
		if s != "" {
			p += "/" + s
		}
	}
	return p
}
