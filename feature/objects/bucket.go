package objects

import (
	"context"
	"errors"
	"fmt"
	"iter"
	"strings"

	"parity-check/core/storage"

	"github.com/minio/minio-go/v7"
	"go.uber.org/zap"
)

// ErrStorage is wrapped by every listing, download and removal failure.
var ErrStorage = errors.New("object storage failure")

// DefaultPageSize is the number of keys requested per listing page.
const DefaultPageSize = 1000

// Ref points at one object in the export bucket.
type Ref struct {
	Bucket string `json:"bucket"`
	Key    string `json:"key"`
	Size   int64  `json:"size"`
}

// Bucket runs listing, download and cleanup against one bucket.
type Bucket struct {
	client   storage.Client
	name     string
	pageSize int
	log      *zap.Logger
}

// NewBucket wraps client for bucket name. A pageSize <= 0 uses DefaultPageSize.
func NewBucket(client storage.Client, name string, pageSize int, log *zap.Logger) *Bucket {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	return &Bucket{client: client, name: name, pageSize: pageSize, log: log}
}

// Name returns the bucket name.
func (b *Bucket) Name() string {
	return b.name
}

// Check verifies the bucket is reachable and exists.
func (b *Bucket) Check(ctx context.Context) error {
	exists, err := b.client.BucketExists(ctx, b.name)
	if err != nil {
		return fmt.Errorf("%w: check bucket %s: %w", ErrStorage, b.name, err)
	}
	if !exists {
		return fmt.Errorf("%w: bucket %s does not exist", ErrStorage, b.name)
	}
	return nil
}

// List returns the objects whose key starts with prefix, in key order.
//
// The sequence is lazy: pages are requested while it is consumed and until the
// listing is exhausted. Stopping early cancels the listing. Ranging over the
// sequence again starts a new listing from the first page. A listing error is
// yielded once and ends the sequence. Directory markers are skipped.
func (b *Bucket) List(ctx context.Context, prefix string) iter.Seq2[Ref, error] {
	return func(yield func(Ref, error) bool) {
		ctx, cancel := context.WithCancel(ctx)
		defer cancel()

		opts := minio.ListObjectsOptions{
			Prefix:    prefix,
			Recursive: true,
			MaxKeys:   b.pageSize,
		}

		for obj := range b.client.ListObjects(ctx, b.name, opts) {
			if obj.Err != nil {
				yield(Ref{}, fmt.Errorf("%w: list s3://%s/%s: %w", ErrStorage, b.name, prefix, obj.Err))
				return
			}
			if strings.HasSuffix(obj.Key, "/") {
				continue
			}
			if !yield(Ref{Bucket: b.name, Key: obj.Key, Size: obj.Size}, nil) {
				return
			}
		}
	}
}

// Collect drains seq into a slice, stopping at the first error.
func Collect(seq iter.Seq2[Ref, error]) ([]Ref, error) {
	refs := []Ref{}
	for ref, err := range seq {
		if err != nil {
			return nil, err
		}
		refs = append(refs, ref)
	}
	return refs, nil
}

// Keys returns the keys of refs in order.
func Keys(refs []Ref) []string {
	keys := make([]string, len(refs))
	for i, ref := range refs {
		keys[i] = ref.Key
	}
	return keys
}

// Remove deletes every object under prefix and returns how many were submitted.
func (b *Bucket) Remove(ctx context.Context, prefix string) (int, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var (
		submitted int
		listErr   error
		objectsCh = make(chan minio.ObjectInfo)
		done      = make(chan struct{})
	)

	// RemoveObjects consumes a channel, so the listing feeds it from a goroutine
	go func() {
		defer close(done)
		defer close(objectsCh)
		for ref, err := range b.List(ctx, prefix) {
			if err != nil {
				listErr = err
				return
			}
			select {
			case objectsCh <- minio.ObjectInfo{Key: ref.Key}:
				submitted++
			case <-ctx.Done():
				return
			}
		}
	}()

	var errs []error
	for rerr := range b.client.RemoveObjects(ctx, b.name, objectsCh, minio.RemoveObjectsOptions{}) {
		errs = append(errs, fmt.Errorf("%w: remove %s: %w", ErrStorage, rerr.ObjectName, rerr.Err))
	}
	cancel()
	<-done

	if listErr != nil {
		errs = append(errs, listErr)
	}
	if err := errors.Join(errs...); err != nil {
		return submitted, err
	}

	b.log.Info("Removed exported objects", zap.String("bucket", b.name), zap.String("prefix", prefix), zap.Int("count", submitted))
	return submitted, nil
}
