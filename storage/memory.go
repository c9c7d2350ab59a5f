package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"sync"
)

// MemoryStore 进程内存储
type MemoryStore struct {
	mu      sync.RWMutex
	objects map[string][]byte
}

// NewMemoryStore 创建内存存储
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{objects: make(map[string][]byte)}
}

func objectKey(bucket, objectPath string) string {
	return bucket + "/" + objectPath
}

// Upload 保存对象
func (s *MemoryStore) Upload(ctx context.Context, bucket, objectPath string, r io.Reader, size int64, contentType string) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return fmt.Errorf("读取上传内容失败: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.objects[objectKey(bucket, objectPath)] = data
	return nil
}

// Download 读取对象
func (s *MemoryStore) Download(ctx context.Context, bucket, objectPath string) (io.ReadCloser, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	data, ok := s.objects[objectKey(bucket, objectPath)]
	if !ok {
		return nil, fmt.Errorf("%s: %w", objectPath, ErrObjectNotFound)
	}
	return io.NopCloser(bytes.NewReader(data)), nil
}

// Remove 删除对象，不存在的路径忽略
func (s *MemoryStore) Remove(ctx context.Context, bucket string, objectPaths ...string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, p := range objectPaths {
		delete(s.objects, objectKey(bucket, p))
	}
	return nil
}

// Len 对象数量
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.objects)
}
