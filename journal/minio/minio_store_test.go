package minio

import (
	"context"
	"testing"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/vanigo/journal"
)

func TestStore_KeyMapping(t *testing.T) {
	client, err := minio.New("localhost:9000", &minio.Options{
		Creds: credentials.NewStaticV4("minioadmin", "minioadmin", ""),
	})
	require.NoError(t, err)

	store := NewStore(client, "bucket", "runs/2026-08")
	assert.Equal(t, "runs/2026-08/improvement-00000001", store.key("improvement-00000001"))
	assert.Equal(t, "runs/2026-08/accepted", store.key("accepted"))

	// No root prefix means keys pass through unchanged.
	flat := NewStore(client, "bucket", "")
	assert.Equal(t, "accepted", flat.key("accepted"))
}

// TestStore_Integration requires a running MinIO instance.
// Skip if not available.
func TestStore_Integration(t *testing.T) {
	endpoint := "localhost:9000"
	accessKey := "minioadmin"
	secretKey := "minioadmin"
	bucket := "test-vanigo"

	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(accessKey, secretKey, ""),
		Secure: false,
	})
	if err != nil {
		t.Skipf("MinIO client creation failed: %v", err)
	}

	ctx := context.Background()

	// Check if MinIO is reachable
	_, err = client.ListBuckets(ctx)
	if err != nil {
		t.Skipf("MinIO not available: %v", err)
	}

	// Ensure bucket exists
	exists, err := client.BucketExists(ctx, bucket)
	require.NoError(t, err)
	if !exists {
		err = client.MakeBucket(ctx, bucket, minio.MakeBucketOptions{})
		require.NoError(t, err)
	}

	store := NewStore(client, bucket, "test-prefix/")

	// Put and Get
	data := []byte("5abc -> deadbeef")
	err = store.Put(ctx, "improvement-00000001", data)
	require.NoError(t, err)

	got, err := store.Get(ctx, "improvement-00000001")
	require.NoError(t, err)
	require.Equal(t, data, got)

	// Missing records translate to the journal sentinel
	_, err = store.Get(ctx, "improvement-99999999")
	require.ErrorIs(t, err, journal.ErrNotFound)

	// List strips the root prefix
	names, err := store.List(ctx, "improvement-")
	require.NoError(t, err)
	assert.Contains(t, names, "improvement-00000001")

	// Delete, idempotently
	err = store.Delete(ctx, "improvement-00000001")
	require.NoError(t, err)
	err = store.Delete(ctx, "improvement-00000001")
	require.NoError(t, err)

	_, err = store.Get(ctx, "improvement-00000001")
	require.ErrorIs(t, err, journal.ErrNotFound)
}
