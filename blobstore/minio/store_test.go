package minio

import (
	"context"
	"io"
	"os"
	"testing"

	"github.com/hupe1980/agnostic/blobstore"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// TestStoreIntegration requires a running MinIO instance.
func TestStoreIntegration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping MinIO integration test in short mode")
	}

	client, err := Dial(
		getenv("MINIO_ENDPOINT", "localhost:9000"),
		getenv("MINIO_ACCESS_KEY", "minioadmin"),
		getenv("MINIO_SECRET_KEY", "minioadmin"),
		false,
	)
	if err != nil {
		t.Skipf("MinIO client creation failed: %v", err)
	}

	ctx := context.Background()

	if _, err := client.ListBuckets(ctx); err != nil {
		t.Skipf("MinIO not available: %v", err)
	}

	bucket := "test-agnostic"
	require.NoError(t, EnsureBucket(ctx, client, bucket))

	store := NewStore(client, bucket, "test-prefix/")

	data := []byte("hello minio world")
	require.NoError(t, store.Put(ctx, "test.txt", data))

	b, err := store.Open(ctx, "test.txt")
	require.NoError(t, err)
	assert.Equal(t, int64(len(data)), b.Size())
	require.NoError(t, b.Close())

	got, err := blobstore.ReadAll(ctx, store, "test.txt")
	require.NoError(t, err)
	assert.Equal(t, data, got)

	w, err := store.Create(ctx, "stream.vtk")
	require.NoError(t, err)
	_, err = io.WriteString(w, "streamed")
	require.NoError(t, err)
	require.NoError(t, w.Close())

	names, err := store.List(ctx, "")
	require.NoError(t, err)
	assert.Contains(t, names, "test.txt")
	assert.Contains(t, names, "stream.vtk")

	require.NoError(t, store.Delete(ctx, "test.txt"))
	require.NoError(t, store.Delete(ctx, "stream.vtk"))

	_, err = store.Open(ctx, "test.txt")
	require.ErrorIs(t, err, blobstore.ErrNotFound)
}

func TestDialRejectsBadEndpoint(t *testing.T) {
	_, err := Dial("http://bad endpoint", "a", "b", false)
	require.Error(t, err)
}
