// Copyright © 2023 Crypto Coin World

// Package badgerdb provides an object store backed by an embedded
// badger key/value database. It keeps the whole object graph in a
// single directory without spraying one file per object, which matters
// once a repository accumulates many small nodes.
package badgerdb

import (
	"bytes"
	"context"
	"io"
	"io/ioutil"
	"os"
	"sync"

	"github.com/dgraph-io/badger"

	"github.com/crypto-coin-world/ipvc/pkg/storage"
	"github.com/crypto-coin-world/ipvc/pkg/storage/status"
)

func makeBadgerDb(dir string) (*badger.DB, error) {
	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, err
	}
	bopts := badger.DefaultOptions
	bopts.Dir = dir
	bopts.ValueDir = dir

	return badger.Open(bopts)
}

func badgerRewriteError(err error) error {
	switch err {
	case badger.ErrKeyNotFound:
		return status.ErrNotFound
	case badger.ErrEmptyKey:
		return status.ErrInvalidResource
	default:
		return err
	}
}

// New opens (creating if needed) a badger backed object store at dir.
// Callers owning the process lifecycle should Close it.
func New(dir string) (*Store, error) {
	db, err := makeBadgerDb(dir)
	if err != nil {
		return nil, err
	}
	return &Store{dir: dir, db: db}, nil
}

// Store is a storage.Store over a badger database.
type Store struct {
	dir   string
	db    *badger.DB
	close sync.Once
}

var _ storage.Store = &Store{}

// Close releases the underlying database. Safe to call more than once.
func (b *Store) Close() error {
	var err error
	b.close.Do(func() {
		if b.db != nil {
			err = b.db.Close()
			if err == nil {
				b.db = nil
			}
		}
	})
	return err
}

func (b *Store) String() string {
	return "badger@" + b.dir
}

func (b *Store) Has(ctx context.Context, key string) (bool, error) {
	verr := b.db.View(func(txn *badger.Txn) error {
		_, err := txn.Get([]byte(key))
		return badgerRewriteError(err)
	})
	if verr == nil {
		return true, nil
	}
	if verr == status.ErrNotFound {
		return false, nil
	}
	return false, verr
}

func (b *Store) Get(ctx context.Context, key string) (io.ReadCloser, error) {
	var value []byte
	verr := b.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(key))
		if err != nil {
			return badgerRewriteError(err)
		}
		data, err := item.Value()
		if err != nil {
			return badgerRewriteError(err)
		}
		value = append(value, data...)
		return nil
	})
	if verr != nil {
		if verr == status.ErrNotFound {
			return nil, status.ErrNotFound.WrapMessage("key %q", key)
		}
		return nil, verr
	}
	return ioutil.NopCloser(bytes.NewReader(value)), nil
}

func (b *Store) Put(ctx context.Context, key string, source io.Reader) error {
	data, err := ioutil.ReadAll(source)
	if err != nil {
		return err
	}
	return b.db.Update(func(txn *badger.Txn) error {
		return badgerRewriteError(txn.Set([]byte(key), data))
	})
}

func (b *Store) Delete(ctx context.Context, key string) error {
	// deleting an absent key just writes a tombstone, matching the
	// tolerant semantics of the other backends
	return b.db.Update(func(txn *badger.Txn) error {
		return badgerRewriteError(txn.Delete([]byte(key)))
	})
}

func (b *Store) Keys(ctx context.Context) ([]string, error) {
	var keys []string
	verr := b.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false

		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			keys = append(keys, string(it.Item().Key()))
		}
		return nil
	})
	if verr != nil {
		return nil, verr
	}
	return keys, nil
}

func (b *Store) Clear(ctx context.Context) error {
	keys, err := b.Keys(ctx)
	if err != nil {
		return err
	}
	return b.db.Update(func(txn *badger.Txn) error {
		for _, key := range keys {
			if err := txn.Delete([]byte(key)); err != nil {
				return badgerRewriteError(err)
			}
		}
		return nil
	})
}
