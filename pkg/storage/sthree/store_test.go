// Copyright © 2023 Crypto Coin World

package sthree

import (
	"bytes"
	"context"
	"errors"
	"io/ioutil"
	"testing"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/awserr"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3manager"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/crypto-coin-world/ipvc/internal/rand"
	"github.com/crypto-coin-world/ipvc/pkg/storage"
	"github.com/crypto-coin-world/ipvc/pkg/storage/status"
)

func TestS3APIErrors(t *testing.T) {
	// mapping to sentinels does not need a live bucket
	mk := func(code string, statusCode int) awserr.RequestFailure {
		return awserr.NewRequestFailure(awserr.New(code, code, nil), statusCode, "req-1")
	}

	require.NoError(t, toSentinelErrors(nil))

	err := toSentinelErrors(mk("NoSuchKey", 404))
	assert.True(t, errors.Is(err, status.ErrNotFound))

	err = toSentinelErrors(mk("InvalidBucketName", 400))
	assert.True(t, errors.Is(err, status.ErrInvalidResource))

	err = toSentinelErrors(mk("SignatureDoesNotMatch", 403))
	assert.True(t, errors.Is(err, status.ErrForbidden))

	err = toSentinelErrors(mk("AccessDenied", 401))
	assert.True(t, errors.Is(err, status.ErrUnauthorized))

	err = toSentinelErrors(mk("SlowDown", 503))
	assert.True(t, errors.Is(err, status.ErrStorageAPI))

	// non-AWS errors pass through untouched
	plain := errors.New("plain")
	assert.Equal(t, plain, toSentinelErrors(plain))
}

func TestS3Store(t *testing.T) {
	bs, cleanup := setupStore(t)
	defer cleanup()

	ctx := context.Background()

	has, err := bs.Has(ctx, "sixteentons")
	require.NoError(t, err)
	require.True(t, has)

	has, err = bs.Has(ctx, "fifteentons")
	require.NoError(t, err)
	require.False(t, has)

	rdr, err := bs.Get(ctx, "sixteentons")
	require.NoError(t, err)
	b, err := ioutil.ReadAll(rdr)
	require.NoError(t, err)
	require.NoError(t, rdr.Close())
	assert.Equal(t, "this is the text", string(b))

	_, err = bs.Get(ctx, "fifteentons")
	require.Error(t, err)
	assert.True(t, errors.Is(err, status.ErrNotFound))

	keys, err := bs.Keys(ctx)
	require.NoError(t, err)
	require.Len(t, keys, 2)

	require.NoError(t, bs.Put(ctx, "eighteentons", bytes.NewBufferString("here we go once again")))
	rdr, err = bs.Get(ctx, "eighteentons")
	require.NoError(t, err)
	b, err = ioutil.ReadAll(rdr)
	require.NoError(t, err)
	require.NoError(t, rdr.Close())
	assert.Equal(t, "here we go once again", string(b))

	require.NoError(t, bs.Delete(ctx, "seventeentons"))
	keys, _ = bs.Keys(ctx)
	assert.Len(t, keys, 2)

	require.NoError(t, bs.Clear(ctx))
	keys, _ = bs.Keys(ctx)
	require.Empty(t, keys)
}

func setupStore(t testing.TB) (storage.Store, func()) {
	t.Helper()

	bid := rand.LetterString(15)
	bucket := aws.String(bid)

	minioConfig := &aws.Config{
		Credentials:      credentials.NewStaticCredentials("access-key", "secret-key-thing", ""),
		Region:           aws.String("us-west-2"),
		Endpoint:         aws.String("http://127.0.0.1:9000"),
		S3ForcePathStyle: aws.Bool(true),
	}
	sess, err := session.NewSession(minioConfig)
	require.NoError(t, err)
	cl := s3.New(sess)

	if _, err = cl.ListBuckets(&s3.ListBucketsInput{}); err != nil {
		t.Skipf("minio is not running: %v", err)
	}

	_, err = cl.CreateBucket(&s3.CreateBucketInput{
		Bucket: bucket,
		CreateBucketConfiguration: &s3.CreateBucketConfiguration{
			LocationConstraint: aws.String("us-west-2"),
		},
	})
	require.NoError(t, err)

	cleanup := func() {
		_, _ = cl.DeleteBucket(&s3.DeleteBucketInput{
			Bucket: bucket,
		})
	}

	up := s3manager.NewUploader(sess)
	_, err = up.UploadWithContext(aws.BackgroundContext(), &s3manager.UploadInput{
		Body:   bytes.NewBufferString("this is the text"),
		Bucket: bucket,
		Key:    aws.String("sixteentons"),
	})
	require.NoError(t, err)

	_, err = up.UploadWithContext(aws.BackgroundContext(), &s3manager.UploadInput{
		Body:   bytes.NewBufferString("this is the text for another thing"),
		Bucket: bucket,
		Key:    aws.String("seventeentons"),
	})
	require.NoError(t, err)
	return New(Bucket(*bucket), AWSConfig(minioConfig)), cleanup
}
