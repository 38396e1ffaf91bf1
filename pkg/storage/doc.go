// Copyright © 2023 Crypto Coin World

// Package storage declares the flat key/value contract that backs the
// object graph, and decorators around it.
//
// This package supports the following backends:
//   - local file system (afero)
//   - badger embedded K/V database
//   - S3 (AWS)
//   - GCS (Google)
package storage
