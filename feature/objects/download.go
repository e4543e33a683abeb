package objects

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"parity-check/core/utils"

	"github.com/minio/minio-go/v7"
	"go.uber.org/zap"
)

// Download fetches keys into folder, one after another, and returns the local
// paths in key order. A key containing slashes lands in matching subfolders.
// The first failure aborts the download.
func (b *Bucket) Download(ctx context.Context, keys []string, folder string) ([]string, error) {
	root, err := utils.PrepareFolder(folder, false)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrStorage, err)
	}

	paths := make([]string, 0, len(keys))
	for _, key := range keys {
		rel := filepath.FromSlash(key)
		if !filepath.IsLocal(rel) {
			return nil, fmt.Errorf("%w: key %q escapes download folder", ErrStorage, key)
		}
		path := filepath.Join(root, rel)

		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("%w: create folder for %s: %w", ErrStorage, key, err)
		}

		b.log.Debug("Downloading file", zap.String("key", key), zap.String("path", path))
		if err := b.client.FGetObject(ctx, b.name, key, path, minio.GetObjectOptions{}); err != nil {
			return nil, fmt.Errorf("%w: download s3://%s/%s: %w", ErrStorage, b.name, key, err)
		}
		paths = append(paths, path)
	}

	b.log.Info("Downloaded files", zap.String("bucket", b.name), zap.String("folder", root), zap.Int("count", len(paths)))
	return paths, nil
}
