package cmd

import (
	"context"
	"os"
	"path/filepath"

	opentracing "github.com/opentracing/opentracing-go"

	"github.com/crypto-coin-world/ipvc/pkg/mfs"
	"github.com/crypto-coin-world/ipvc/pkg/storage"
	"github.com/crypto-coin-world/ipvc/pkg/storage/badgerdb"
	"github.com/crypto-coin-world/ipvc/pkg/vcs"
	"github.com/crypto-coin-world/ipvc/pkg/zlog"
)

// storeLocation is the directory of the local object store, from the
// flag or config, defaulting under the user's home
func storeLocation() string {
	if ipvcFlags.root.store != "" {
		return ipvcFlags.root.store
	}
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return filepath.Join(home, ".ipvc", "store")
}

func logLevel() string {
	if ipvcFlags.root.logLevel == "" {
		return zlog.LogLevelNone
	}
	return ipvcFlags.root.logLevel
}

// initRuntime opens the object store and builds the version control
// runtime over it. The returned closer releases the store.
func initRuntime(ctx context.Context) (*vcs.Runtime, func()) {
	logger, err := zlog.GetLogger(logLevel())
	if err != nil {
		wrapFatalln("prepare logger", err)
		return nil, nil
	}
	store, err := badgerdb.New(storeLocation())
	if err != nil {
		wrapFatalln("open object store at "+storeLocation(), err)
		return nil, nil
	}
	fs, err := mfs.New(ctx, storage.Instrument(opentracing.GlobalTracer(), logger, store), mfs.Logger(logger))
	if err != nil {
		_ = store.Close()
		wrapFatalln("load object namespace", err)
		return nil, nil
	}
	rt := vcs.New(fs,
		vcs.Namespace(ipvcFlags.root.namespace),
		vcs.Gateway(ipvcFlags.root.gateway),
		vcs.Logger(logger),
	)
	return rt, func() { _ = store.Close() }
}

// initRepo opens the repository covering the current working directory
func initRepo(ctx context.Context) (*vcs.Repo, func()) {
	rt, done := initRuntime(ctx)
	dir, err := os.Getwd()
	if err != nil {
		done()
		wrapFatalln("resolve working directory", err)
		return nil, nil
	}
	repo, err := rt.OpenRepo(ctx, dir)
	if err != nil {
		done()
		wrapFatalln("open repository", err)
		return nil, nil
	}
	return repo, done
}

// workingPath resolves an optional positional path argument, defaulting
// to the current working directory
func workingPath(args []string) string {
	if len(args) > 0 {
		return absolutePath(args[0])
	}
	dir, err := os.Getwd()
	if err != nil {
		wrapFatalln("resolve working directory", err)
		return ""
	}
	return dir
}

func absolutePath(arg string) string {
	abs, err := filepath.Abs(arg)
	if err != nil {
		wrapFatalln("resolve path "+arg, err)
		return ""
	}
	return abs
}

func absolutePaths(args []string) []string {
	out := make([]string, 0, len(args))
	for _, a := range args {
		out = append(out, absolutePath(a))
	}
	return out
}
