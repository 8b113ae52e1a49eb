package report

import (
	"context"
	"fmt"
	"path"
	"sort"
	"strings"

	"github.com/hupe1980/agnostic/blobstore"
	"github.com/hupe1980/agnostic/codec"
	"github.com/hupe1980/agnostic/resource"
)

// BlobSink stores each report as its own blob under
// <prefix>/<program>/<size>/<started>.<codec>.json.
type BlobSink struct {
	store  blobstore.Store
	codec  codec.Codec
	rc     *resource.Controller
	prefix string
}

// NewBlobSink creates a sink writing to store. A nil rc leaves uploads
// unthrottled; a nil codec selects codec.Default.
func NewBlobSink(store blobstore.Store, prefix string, c codec.Codec, rc *resource.Controller) *BlobSink {
	if c == nil {
		c = codec.Default
	}
	return &BlobSink{
		store:  store,
		codec:  c,
		rc:     rc,
		prefix: prefix,
	}
}

// Name returns the blob name used for r.
func (s *BlobSink) Name(r *Report) string {
	stamp := r.Started.UTC().Format("20060102T150405.000000000Z")
	return path.Join(s.prefix, r.Run(), stamp+"."+s.codec.Name()+".json")
}

func (s *BlobSink) Publish(ctx context.Context, r *Report) error {
	data, err := Encode(s.codec, r)
	if err != nil {
		return err
	}

	name := s.Name(r)
	w, err := s.store.Create(ctx, name)
	if err != nil {
		return fmt.Errorf("create report %s: %w", name, err)
	}

	if _, err := resource.NewRateLimitedWriter(ctx, w, s.rc).Write(data); err != nil {
		_ = w.Abort()
		return fmt.Errorf("write report %s: %w", name, err)
	}
	return w.Close()
}

// List returns the stored reports of a run, oldest first.
func (s *BlobSink) List(ctx context.Context, program string, size int) ([]*Report, error) {
	probe := &Report{Program: program, Size: size}
	names, err := s.store.List(ctx, path.Join(s.prefix, probe.Run())+"/")
	if err != nil {
		return nil, err
	}
	sort.Strings(names)

	var out []*Report
	for _, name := range names {
		c := s.codec
		if parts := strings.Split(path.Base(name), "."); len(parts) >= 3 {
			if byName, ok := codec.ByName(parts[len(parts)-2]); ok {
				c = byName
			}
		}
		data, err := blobstore.ReadAll(ctx, s.store, name)
		if err != nil {
			return nil, err
		}
		r, err := Decode(c, data)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
		out = append(out, r)
	}
	return out, nil
}
