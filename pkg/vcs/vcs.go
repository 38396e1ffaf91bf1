// Package vcs implements the version control engine: repository
// lifecycle, branches with workspace/stage/head trees, staging,
// commits with parent linkage, diffs, merge state and history, all
// over a content addressed namespace.
package vcs

import (
	"sync"

	"github.com/spf13/afero"
	"go.uber.org/zap"

	"github.com/crypto-coin-world/ipvc/pkg/mfs"
	"github.com/crypto-coin-world/ipvc/pkg/model"
)

// DefaultGateway is where browser mode points object URLs by default
const DefaultGateway = "http://localhost:8080"

// Runtime ties the object namespace, the local file system and the
// engine settings together. All repository handles share one runtime.
type Runtime struct {
	fs      mfs.Fs
	local   afero.Fs
	ns      string
	gateway string
	l       *zap.Logger
	locks   lockRegistry
}

// Option sets a runtime setting
type Option func(*Runtime)

// Namespace roots the layout below ns instead of the namespace root
func Namespace(ns string) Option {
	return func(r *Runtime) {
		if ns != "" {
			r.ns = ns
		}
	}
}

// LocalFs sets the file system that holds working copies
func LocalFs(fs afero.Fs) Option {
	return func(r *Runtime) {
		if fs != nil {
			r.local = fs
		}
	}
}

// Logger sets the runtime logger
func Logger(l *zap.Logger) Option {
	return func(r *Runtime) {
		if l != nil {
			r.l = l
		}
	}
}

// Gateway sets the URL prefix browser mode uses for object links
func Gateway(url string) Option {
	return func(r *Runtime) {
		if url != "" {
			r.gateway = url
		}
	}
}

// New creates a version control runtime over an object namespace
func New(fs mfs.Fs, opts ...Option) *Runtime {
	r := &Runtime{
		fs:      fs,
		local:   afero.NewOsFs(),
		ns:      model.DefaultNamespace,
		gateway: DefaultGateway,
		l:       zap.NewNop(),
	}
	for _, apply := range opts {
		apply(r)
	}
	return r
}

// lockRegistry hands out one lock per repository. Mutating operations
// take it exclusively for their whole duration so that two mutations
// against the same repository never interleave; read-only operations
// share it.
type lockRegistry struct {
	mu    sync.Mutex
	locks map[string]*sync.RWMutex
}

func (l *lockRegistry) forRepo(id string) *sync.RWMutex {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.locks == nil {
		l.locks = map[string]*sync.RWMutex{}
	}
	lk, ok := l.locks[id]
	if !ok {
		lk = &sync.RWMutex{}
		l.locks[id] = lk
	}
	return lk
}
