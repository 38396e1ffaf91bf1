package mfs

import (
	"github.com/crypto-coin-world/ipvc/pkg/dag"
	"go.uber.org/zap"
)

// Option alters the behavior of the namespace
type Option func(*objectFs)

// Logger specifies a logger for this namespace
func Logger(l *zap.Logger) Option {
	return func(o *objectFs) {
		if l != nil {
			o.l = l
		}
	}
}

// NodeCacheSize overrides the size of the decoded node LRU cache
func NodeCacheSize(sz int) Option {
	return func(o *objectFs) {
		if sz > 0 {
			o.cacheSize = sz
		}
	}
}

// Hasher overrides hashing parameters, e.g. the leaf size
func Hasher(m *dag.Maker) Option {
	return func(o *objectFs) {
		if m != nil {
			o.hasher = m
		}
	}
}

// WriteOption alters Write semantics
type WriteOption func(*writeFlags)

type writeFlags struct {
	create   bool
	truncate bool
}

// NoCreate fails the write when the file does not exist yet
func NoCreate() WriteOption {
	return func(w *writeFlags) {
		w.create = false
	}
}

// NoTruncate overlays data at the start of an existing file, keeping
// its tail
func NoTruncate() WriteOption {
	return func(w *writeFlags) {
		w.truncate = false
	}
}
