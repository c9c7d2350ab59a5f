// Package storage 客户文件的对象存储。配置了 STORAGE_ENDPOINT 时使用 S3 兼容存储，
// 否则退回内存存储（开发和测试用）。
package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"time"

	"github.com/BerniceZTT/client_crm/config"
)

// ErrObjectNotFound 对象不存在
var ErrObjectNotFound = errors.New("文件不存在")

// BlobStore 对象存储接口
type BlobStore interface {
	Upload(ctx context.Context, bucket, objectPath string, r io.Reader, size int64, contentType string) error
	Download(ctx context.Context, bucket, objectPath string) (io.ReadCloser, error)
	Remove(ctx context.Context, bucket string, objectPaths ...string) error
}

// ObjectPath 对象路径：{client_id}/{毫秒时间戳}-{原始文件名}
func ObjectPath(clientID, fileName string, now time.Time) string {
	return fmt.Sprintf("%s/%d-%s", clientID, now.UnixMilli(), path.Base(fileName))
}

// NewBlobStore 按配置创建存储，并确保桶存在
func NewBlobStore(ctx context.Context, cfg config.StorageConfig) (BlobStore, error) {
	if cfg.Endpoint == "" {
		return NewMemoryStore(), nil
	}

	store, err := NewMinioStore(cfg)
	if err != nil {
		return nil, err
	}
	if err := store.EnsureBucket(ctx, cfg.Bucket); err != nil {
		return nil, err
	}
	return store, nil
}
