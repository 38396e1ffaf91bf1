// Copyright © 2023 Crypto Coin World

package storage

import (
	"bytes"
	"context"
	"io"
	"io/ioutil"
)

// Store implementations know how to persist opaque objects under string keys.
//
// Typically this is something file system-like. Examples are a local
// directory, an embedded K/V database, S3 or GCS buckets. Implementations
// are assumed to be fairly simple: no transactions, no partial reads.
type Store interface {
	String() string
	Has(context.Context, string) (bool, error)
	Get(context.Context, string) (io.ReadCloser, error)
	Put(context.Context, string, io.Reader) error
	Delete(context.Context, string) error
	Keys(context.Context) ([]string, error)
	Clear(context.Context) error
}

// PipeIO copies a reader out to a writer with a fixed buffer.
func PipeIO(writer io.Writer, reader io.Reader) (n int64, err error) {
	pw := make([]byte, 32*1024)
	return io.CopyBuffer(writer, reader, pw)
}

// ReadAll fetches an object and slurps it into memory.
func ReadAll(ctx context.Context, store Store, key string) ([]byte, error) {
	rdr, err := store.Get(ctx, key)
	if err != nil {
		return nil, err
	}
	defer rdr.Close()
	return ioutil.ReadAll(rdr)
}

// ReadTee reads an object and duplicates it to a destination store under
// another key, returning the bytes read.
func ReadTee(ctx context.Context, sStore Store, source string, dStore Store, destination string) ([]byte, error) {
	object, err := ReadAll(ctx, sStore, source)
	if err != nil {
		return nil, err
	}
	if err = dStore.Put(ctx, destination, bytes.NewReader(object)); err != nil {
		return nil, err
	}
	return object, nil
}
