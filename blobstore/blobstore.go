package blobstore

import (
	"bytes"
	"context"
	"io"
	"os"
)

// ErrNotFound is matched by the error every Store returns for a missing
// blob.
var ErrNotFound = os.ErrNotExist

// Store reads and writes named immutable blobs.
type Store interface {
	// Put writes data as name in one step.
	Put(ctx context.Context, name string, data []byte) error
	// Create starts a streaming write. The blob becomes visible when the
	// returned writer is closed without error.
	Create(ctx context.Context, name string) (WritableBlob, error)
	// Open opens name for sequential reading.
	Open(ctx context.Context, name string) (Blob, error)
	Delete(ctx context.Context, name string) error
	// List returns the sorted names starting with prefix.
	List(ctx context.Context, prefix string) ([]string, error)
}

// Blob is an open blob.
type Blob interface {
	io.ReadCloser
	// Size returns the blob length in bytes.
	Size() int64
}

// WritableBlob is a blob being written.
type WritableBlob interface {
	io.WriteCloser
	// Abort discards the write. Close after Abort is a no-op.
	Abort() error
}

// ReadAll opens name and returns its content.
func ReadAll(ctx context.Context, s Store, name string) ([]byte, error) {
	b, err := s.Open(ctx, name)
	if err != nil {
		return nil, err
	}
	defer func() { _ = b.Close() }()

	buf := bytes.NewBuffer(make([]byte, 0, b.Size()))
	if _, err := buf.ReadFrom(b); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// bytesBlob is a Blob over an in-memory slice.
type bytesBlob struct {
	*bytes.Reader
}

// NewBytesBlob returns a Blob reading data.
func NewBytesBlob(data []byte) Blob {
	return bytesBlob{bytes.NewReader(data)}
}

func (bytesBlob) Close() error { return nil }
