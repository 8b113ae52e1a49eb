package s3

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"sort"
	"strings"
	"sync"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/hupe1980/agnostic/blobstore"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeClient is an in-memory S3 bucket.
type fakeClient struct {
	mu        sync.Mutex
	objects   map[string][]byte
	checksums map[string]string
	uploads   map[string]map[int32][]byte
	nextID    int
	multipart int
}

func newFakeClient() *fakeClient {
	return &fakeClient{
		objects:   make(map[string][]byte),
		checksums: make(map[string]string),
		uploads:   make(map[string]map[int32][]byte),
	}
}

func (f *fakeClient) PutObject(_ context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	data, err := io.ReadAll(in.Body)
	if err != nil {
		return nil, err
	}
	if sum := aws.ToString(in.ChecksumCRC32C); sum != "" && sum != computeCRC32C(data) {
		return nil, fmt.Errorf("checksum mismatch")
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	f.objects[aws.ToString(in.Key)] = data
	f.checksums[aws.ToString(in.Key)] = aws.ToString(in.ChecksumCRC32C)
	return &s3.PutObjectOutput{}, nil
}

func (f *fakeClient) CreateMultipartUpload(_ context.Context, _ *s3.CreateMultipartUploadInput, _ ...func(*s3.Options)) (*s3.CreateMultipartUploadOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	id := fmt.Sprintf("upload-%d", f.nextID)
	f.uploads[id] = make(map[int32][]byte)
	f.multipart++
	return &s3.CreateMultipartUploadOutput{UploadId: aws.String(id)}, nil
}

func (f *fakeClient) UploadPart(_ context.Context, in *s3.UploadPartInput, _ ...func(*s3.Options)) (*s3.UploadPartOutput, error) {
	data, err := io.ReadAll(in.Body)
	if err != nil {
		return nil, err
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	parts, ok := f.uploads[aws.ToString(in.UploadId)]
	if !ok {
		return nil, fmt.Errorf("no such upload")
	}
	n := aws.ToInt32(in.PartNumber)
	parts[n] = data
	return &s3.UploadPartOutput{ETag: aws.String(fmt.Sprintf("etag-%d", n))}, nil
}

func (f *fakeClient) CompleteMultipartUpload(_ context.Context, in *s3.CompleteMultipartUploadInput, _ ...func(*s3.Options)) (*s3.CompleteMultipartUploadOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	id := aws.ToString(in.UploadId)
	parts, ok := f.uploads[id]
	if !ok {
		return nil, fmt.Errorf("no such upload")
	}

	nums := make([]int32, 0, len(parts))
	for n := range parts {
		nums = append(nums, n)
	}
	sort.Slice(nums, func(i, j int) bool { return nums[i] < nums[j] })

	var buf bytes.Buffer
	for _, n := range nums {
		buf.Write(parts[n])
	}
	f.objects[aws.ToString(in.Key)] = buf.Bytes()
	delete(f.uploads, id)
	return &s3.CompleteMultipartUploadOutput{}, nil
}

func (f *fakeClient) AbortMultipartUpload(_ context.Context, in *s3.AbortMultipartUploadInput, _ ...func(*s3.Options)) (*s3.AbortMultipartUploadOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.uploads, aws.ToString(in.UploadId))
	return &s3.AbortMultipartUploadOutput{}, nil
}

func (f *fakeClient) ListObjectsV2(_ context.Context, in *s3.ListObjectsV2Input, _ ...func(*s3.Options)) (*s3.ListObjectsV2Output, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := &s3.ListObjectsV2Output{}
	for k := range f.objects {
		if strings.HasPrefix(k, aws.ToString(in.Prefix)) {
			out.Contents = append(out.Contents, types.Object{Key: aws.String(k)})
		}
	}
	return out, nil
}

func (f *fakeClient) GetObject(_ context.Context, in *s3.GetObjectInput, _ ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	data, ok := f.objects[aws.ToString(in.Key)]
	if !ok {
		return nil, &types.NoSuchKey{}
	}
	return &s3.GetObjectOutput{Body: io.NopCloser(bytes.NewReader(data))}, nil
}

func (f *fakeClient) HeadObject(_ context.Context, in *s3.HeadObjectInput, _ ...func(*s3.Options)) (*s3.HeadObjectOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	data, ok := f.objects[aws.ToString(in.Key)]
	if !ok {
		return nil, &types.NotFound{}
	}
	return &s3.HeadObjectOutput{ContentLength: aws.Int64(int64(len(data)))}, nil
}

func (f *fakeClient) DeleteObject(_ context.Context, in *s3.DeleteObjectInput, _ ...func(*s3.Options)) (*s3.DeleteObjectOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.objects, aws.ToString(in.Key))
	return &s3.DeleteObjectOutput{}, nil
}

func TestStore(t *testing.T) {
	ctx := context.Background()
	client := newFakeClient()
	store := NewStore(client, "bucket", "runs")

	_, err := store.Open(ctx, "missing")
	require.ErrorIs(t, err, blobstore.ErrNotFound)

	require.NoError(t, store.Put(ctx, "magnitude/16/report.json", []byte(`{"n":16}`)))
	assert.Contains(t, client.objects, "runs/magnitude/16/report.json")
	assert.Equal(t, computeCRC32C([]byte(`{"n":16}`)), client.checksums["runs/magnitude/16/report.json"])

	w, err := store.Create(ctx, "magnitude/16/vm.vtk")
	require.NoError(t, err)
	_, err = io.WriteString(w, "# vtk DataFile Version 3.0\n")
	require.NoError(t, err)
	require.NoError(t, w.Close())
	require.NoError(t, w.Close())

	data, err := blobstore.ReadAll(ctx, store, "magnitude/16/vm.vtk")
	require.NoError(t, err)
	assert.Equal(t, "# vtk DataFile Version 3.0\n", string(data))

	b, err := store.Open(ctx, "magnitude/16/report.json")
	require.NoError(t, err)
	assert.Equal(t, int64(8), b.Size())
	require.NoError(t, b.Close())

	names, err := store.List(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, []string{"magnitude/16/report.json", "magnitude/16/vm.vtk"}, names)

	names, err = store.List(ctx, "magnitude/16/v")
	require.NoError(t, err)
	assert.Equal(t, []string{"magnitude/16/vm.vtk"}, names)

	require.NoError(t, store.Delete(ctx, "magnitude/16/vm.vtk"))
	_, err = store.Open(ctx, "magnitude/16/vm.vtk")
	require.ErrorIs(t, err, blobstore.ErrNotFound)
}

func TestStoreMultipart(t *testing.T) {
	ctx := context.Background()
	client := newFakeClient()
	store := NewStore(client, "bucket", "", WithUploadConfig(UploadConfig{
		PartSize:    5 * 1024 * 1024,
		Concurrency: 2,
	}))

	payload := bytes.Repeat([]byte("0123456789abcdef"), 6*1024*1024/16+7)

	w, err := store.Create(ctx, "gradient/512/s.vtk")
	require.NoError(t, err)
	_, err = io.Copy(w, bytes.NewReader(payload))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	assert.Equal(t, 1, client.multipart)
	assert.Empty(t, client.uploads)

	data, err := blobstore.ReadAll(ctx, store, "gradient/512/s.vtk")
	require.NoError(t, err)
	assert.True(t, bytes.Equal(payload, data))
}

func TestStoreAbort(t *testing.T) {
	ctx := context.Background()
	client := newFakeClient()
	store := NewStore(client, "bucket", "runs")

	w, err := store.Create(ctx, "aborted")
	require.NoError(t, err)
	_, err = io.WriteString(w, "partial")
	require.NoError(t, err)
	require.NoError(t, w.Abort())
	require.NoError(t, w.Close())

	_, err = w.Write([]byte("late"))
	require.ErrorIs(t, err, io.ErrClosedPipe)

	_, err = store.Open(ctx, "aborted")
	require.ErrorIs(t, err, blobstore.ErrNotFound)
}

func TestComputeCRC32C(t *testing.T) {
	// CRC-32C check value for "123456789" is 0xE3069283.
	assert.Equal(t, "4waSgw==", computeCRC32C([]byte("123456789")))
}
