package s3

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/hupe1980/agnostic/blobstore"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIntegration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping S3 integration test in short mode")
	}

	bucket := os.Getenv("S3_BUCKET")
	if bucket == "" {
		t.Skip("S3_BUCKET not set")
	}

	ctx := context.Background()

	cfg, err := config.LoadDefaultConfig(ctx)
	require.NoError(t, err)

	store := NewStore(s3.NewFromConfig(cfg), bucket, "agnostic-test-"+time.Now().Format("20060102150405"))

	require.NoError(t, store.Put(ctx, "report.json", []byte(`{"ok":true}`)))
	defer func() { _ = store.Delete(ctx, "report.json") }()

	data, err := blobstore.ReadAll(ctx, store, "report.json")
	require.NoError(t, err)
	assert.Equal(t, `{"ok":true}`, string(data))

	names, err := store.List(ctx, "")
	require.NoError(t, err)
	assert.Contains(t, names, "report.json")
}
