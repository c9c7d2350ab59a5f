package storage

import (
	"context"
	"fmt"
	"io"

	"github.com/BerniceZTT/client_crm/config"
	"github.com/BerniceZTT/client_crm/utils"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// objectClient MinioStore 用到的最小客户端接口，便于测试替换
type objectClient interface {
	PutObject(ctx context.Context, bucket, name string, r io.Reader, size int64, contentType string) error
	GetObject(ctx context.Context, bucket, name string) (io.ReadCloser, error)
	RemoveObject(ctx context.Context, bucket, name string) error
	BucketExists(ctx context.Context, bucket string) (bool, error)
	MakeBucket(ctx context.Context, bucket string) error
}

// minioClient 把 *minio.Client 适配为 objectClient
type minioClient struct {
	client *minio.Client
}

func (m *minioClient) PutObject(ctx context.Context, bucket, name string, r io.Reader, size int64, contentType string) error {
	_, err := m.client.PutObject(ctx, bucket, name, r, size, minio.PutObjectOptions{ContentType: contentType})
	return err
}

func (m *minioClient) GetObject(ctx context.Context, bucket, name string) (io.ReadCloser, error) {
	obj, err := m.client.GetObject(ctx, bucket, name, minio.GetObjectOptions{})
	if err != nil {
		return nil, err
	}
	// GetObject 不会立即请求，先 Stat 暴露不存在的错误
	if _, err := obj.Stat(); err != nil {
		obj.Close()
		return nil, err
	}
	return obj, nil
}

func (m *minioClient) RemoveObject(ctx context.Context, bucket, name string) error {
	return m.client.RemoveObject(ctx, bucket, name, minio.RemoveObjectOptions{})
}

func (m *minioClient) BucketExists(ctx context.Context, bucket string) (bool, error) {
	return m.client.BucketExists(ctx, bucket)
}

func (m *minioClient) MakeBucket(ctx context.Context, bucket string) error {
	return m.client.MakeBucket(ctx, bucket, minio.MakeBucketOptions{})
}

// MinioStore S3 兼容对象存储
type MinioStore struct {
	client objectClient
}

// NewMinioStore 创建 S3 客户端
func NewMinioStore(cfg config.StorageConfig) (*MinioStore, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("创建对象存储客户端失败: %w", err)
	}
	return &MinioStore{client: &minioClient{client: client}}, nil
}

// EnsureBucket 桶不存在时创建
func (s *MinioStore) EnsureBucket(ctx context.Context, bucket string) error {
	exists, err := s.client.BucketExists(ctx, bucket)
	if err != nil {
		return fmt.Errorf("检查存储桶失败: %w", err)
	}
	if exists {
		return nil
	}
	if err := s.client.MakeBucket(ctx, bucket); err != nil {
		return fmt.Errorf("创建存储桶失败: %w", err)
	}
	utils.Logger.Info().Str("bucket", bucket).Msg("已创建存储桶")
	return nil
}

// Upload 上传对象
func (s *MinioStore) Upload(ctx context.Context, bucket, objectPath string, r io.Reader, size int64, contentType string) error {
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	if err := s.client.PutObject(ctx, bucket, objectPath, r, size, contentType); err != nil {
		return fmt.Errorf("上传文件失败: %w", err)
	}
	return nil
}

// Download 下载对象，调用方负责关闭
func (s *MinioStore) Download(ctx context.Context, bucket, objectPath string) (io.ReadCloser, error) {
	rc, err := s.client.GetObject(ctx, bucket, objectPath)
	if err != nil {
		if minio.ToErrorResponse(err).Code == "NoSuchKey" {
			return nil, fmt.Errorf("%s: %w", objectPath, ErrObjectNotFound)
		}
		return nil, fmt.Errorf("下载文件失败: %w", err)
	}
	return rc, nil
}

// Remove 删除一个或多个对象
func (s *MinioStore) Remove(ctx context.Context, bucket string, objectPaths ...string) error {
	for _, p := range objectPaths {
		if err := s.client.RemoveObject(ctx, bucket, p); err != nil {
			return fmt.Errorf("删除文件 %s 失败: %w", p, err)
		}
	}
	return nil
}
