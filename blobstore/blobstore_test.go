package blobstore

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func stores(t *testing.T) map[string]Store {
	t.Helper()
	return map[string]Store{
		"memory": NewMemoryStore(),
		"local":  NewLocalStore(filepath.Join(t.TempDir(), "blobs")),
	}
}

func TestStore(t *testing.T) {
	ctx := context.Background()

	for name, s := range stores(t) {
		t.Run(name, func(t *testing.T) {
			_, err := s.Open(ctx, "missing")
			require.ErrorIs(t, err, ErrNotFound)

			names, err := s.List(ctx, "")
			require.NoError(t, err)
			assert.Empty(t, names)

			require.NoError(t, s.Put(ctx, "runs/magnitude/vm.vtk", []byte("vm")))

			w, err := s.Create(ctx, "runs/gradient/gx.vtk")
			require.NoError(t, err)
			_, err = io.WriteString(w, "g")
			require.NoError(t, err)
			_, err = io.WriteString(w, "x")
			require.NoError(t, err)
			require.NoError(t, w.Close())
			require.NoError(t, w.Close())

			data, err := ReadAll(ctx, s, "runs/gradient/gx.vtk")
			require.NoError(t, err)
			assert.Equal(t, "gx", string(data))

			b, err := s.Open(ctx, "runs/magnitude/vm.vtk")
			require.NoError(t, err)
			assert.Equal(t, int64(2), b.Size())
			require.NoError(t, b.Close())

			names, err = s.List(ctx, "runs/")
			require.NoError(t, err)
			assert.Equal(t, []string{"runs/gradient/gx.vtk", "runs/magnitude/vm.vtk"}, names)

			names, err = s.List(ctx, "runs/magnitude")
			require.NoError(t, err)
			assert.Equal(t, []string{"runs/magnitude/vm.vtk"}, names)

			require.NoError(t, s.Delete(ctx, "runs/magnitude/vm.vtk"))
			require.NoError(t, s.Delete(ctx, "runs/magnitude/vm.vtk"))
			_, err = s.Open(ctx, "runs/magnitude/vm.vtk")
			require.ErrorIs(t, err, ErrNotFound)
		})
	}
}

func TestStoreAbort(t *testing.T) {
	ctx := context.Background()

	for name, s := range stores(t) {
		t.Run(name, func(t *testing.T) {
			w, err := s.Create(ctx, "aborted")
			require.NoError(t, err)
			_, err = w.Write([]byte("partial"))
			require.NoError(t, err)
			require.NoError(t, w.Abort())
			require.NoError(t, w.Close())

			_, err = w.Write([]byte("late"))
			require.Error(t, err)

			_, err = s.Open(ctx, "aborted")
			require.ErrorIs(t, err, ErrNotFound)

			names, err := s.List(ctx, "")
			require.NoError(t, err)
			assert.Empty(t, names)
		})
	}
}

func TestMemoryStoreCopies(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	data := []byte("abc")
	require.NoError(t, s.Put(ctx, "k", data))
	data[0] = 'x'

	got, err := ReadAll(ctx, s, "k")
	require.NoError(t, err)
	assert.Equal(t, "abc", string(got))
}

func TestLocalStoreLayout(t *testing.T) {
	ctx := context.Background()
	root := t.TempDir()
	s := NewLocalStore(root)
	assert.Equal(t, root, s.Root())

	require.NoError(t, s.Put(ctx, "a/b.txt", []byte("hello")))

	data, err := os.ReadFile(filepath.Join(root, "a", "b.txt"))
	require.NoError(t, err)
	assert.Equal(t, "hello", string(data))

	entries, err := os.ReadDir(filepath.Join(root, "a"))
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}
